package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
)

// B32Table is the constraint table for B32_MUL/B32_MULI: tower-field
// multiplication over F32, grounded on field.F32.Mul as the identity
// each row must satisfy.
type B32Table struct {
	base

	IsImm      []bool
	Val1, Val2 []field.F32
	Result     []field.F32
}

func NewB32Table(rows []events.B32Op) *B32Table {
	t := &B32Table{base: base{height: len(rows)}}
	for _, r := range rows {
		t.IsImm = append(t.IsImm, r.IsImm)
		t.Val1 = append(t.Val1, r.Val1)
		if r.IsImm {
			t.Val2 = append(t.Val2, field.F32(r.Imm32))
		} else {
			t.Val2 = append(t.Val2, r.Val2)
		}
		t.Result = append(t.Result, r.Result)
	}
	return t
}

func (t *B32Table) ID() TableID { return B32TableID }

func (t *B32Table) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.IsImm = append(t.IsImm, false)
			t.Val1, t.Val2 = append(t.Val1, field.Zero), append(t.Val2, field.Zero)
			t.Result = append(t.Result, field.Zero)
			return
		}
		t.IsImm = append(t.IsImm, t.IsImm[src])
		t.Val1 = append(t.Val1, t.Val1[src])
		t.Val2 = append(t.Val2, t.Val2[src])
		t.Result = append(t.Result, t.Result[src])
	})
}

func (t *B32Table) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "result is tower-field product",
		Check: func(row int) bool {
			return t.Val1[row].Mul(t.Val2[row]) == t.Result[row]
		},
	}}
}

func (t *B32Table) TransitionConstraints() []Constraint { return nil }

// B128Table is the constraint table for B128_ADD/B128_MUL over F128,
// grounded on field.F128.Add/Mul.
type B128Table struct {
	base

	Opcode     []isa.Opcode
	Val1, Val2 []field.F128
	Result     []field.F128
}

func NewB128Table(rows []events.B128Op) *B128Table {
	t := &B128Table{base: base{height: len(rows)}}
	for _, r := range rows {
		t.Opcode = append(t.Opcode, r.Opcode)
		t.Val1 = append(t.Val1, r.Val1)
		t.Val2 = append(t.Val2, r.Val2)
		t.Result = append(t.Result, r.Result)
	}
	return t
}

func (t *B128Table) ID() TableID { return B128TableID }

func (t *B128Table) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.Opcode = append(t.Opcode, isa.B128_ADD)
			t.Val1, t.Val2 = append(t.Val1, field.ZeroF128), append(t.Val2, field.ZeroF128)
			t.Result = append(t.Result, field.ZeroF128)
			return
		}
		t.Opcode = append(t.Opcode, t.Opcode[src])
		t.Val1 = append(t.Val1, t.Val1[src])
		t.Val2 = append(t.Val2, t.Val2[src])
		t.Result = append(t.Result, t.Result[src])
	})
}

func (t *B128Table) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "result matches opcode over F128",
		Check: func(row int) bool {
			switch t.Opcode[row] {
			case isa.B128_ADD:
				return t.Val1[row].Add(t.Val2[row]) == t.Result[row]
			case isa.B128_MUL:
				return t.Val1[row].Mul(t.Val2[row]) == t.Result[row]
			default:
				return false
			}
		},
	}}
}

func (t *B128Table) TransitionConstraints() []Constraint { return nil }
