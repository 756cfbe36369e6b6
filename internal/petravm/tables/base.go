package tables

import "fmt"

// base implements the Height/PaddedHeight/Pad bookkeeping shared by
// every concrete table, mirroring the teacher's per-table height
// fields (processor_table.go's `height`/`paddedHeight`). Each table's Pad
// hands pad a dup callback, which pad calls once per added row.
type base struct {
	height       int
	paddedHeight int
}

func (b *base) Height() int       { return b.height }
func (b *base) PaddedHeight() int { return b.paddedHeight }

// pad extends the table to target rows. dup receives the index of the
// row to duplicate; a negative index means the table was empty to
// start with, so dup must append a zero-value row instead of indexing
// anything. After the first padding row is synthesized this way, later
// calls duplicate that row (index 0) rather than going negative again.
func (b *base) pad(target int, dup func(src int)) error {
	if target < b.height {
		return errPadTooSmall(b.height, target)
	}
	src := b.height - 1
	for i := b.height; i < target; i++ {
		dup(src)
		if src < 0 {
			src = i
		}
	}
	b.paddedHeight = target
	return nil
}

func errPadTooSmall(height, target int) error {
	return fmt.Errorf("tables: target height %d smaller than current height %d", target, height)
}
