// Command petravm-run is PetraVM's JSON-lines CLI front door, grounded
// on cmd/vybium-vm-prover/main.go's stdin-lines shape: one JSON value per
// line, read in a fixed order, with progress and errors on stderr and
// the final result on stdout.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/petraprover/petravm/internal/petravm/debug"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
	"github.com/petraprover/petravm/pkg/petravm"
)

// instructionInput mirrors memory.InstructionRecord's JSON-friendly
// fields (advice and prover-only argument moves are resolved by the
// assembler this repository does not implement, so they are omitted).
type instructionInput struct {
	Opcode     uint16 `json:"opcode"`
	Arg0       uint16 `json:"arg0"`
	Arg1       uint16 `json:"arg1"`
	Arg2       uint16 `json:"arg2"`
	FieldPC    uint32 `json:"field_pc"`
	ProverOnly bool   `json:"prover_only"`
}

// programInput is line 1: the complete program image (spec §6, "Program
// image (assembler -> core)").
type programInput struct {
	Prom        []instructionInput `json:"prom"`
	FrameSizes  map[string]uint16  `json:"frame_sizes"`
	PcIndexProm map[string]uint32  `json:"pc_index_prom"`
	PcIndexInt  map[string]uint32  `json:"pc_index_integer"`
}

// runInput is line 3: run options.
type runInput struct {
	MaxSteps uint64 `json:"max_steps"`
	Debug    bool   `json:"debug"`
}

// runOutput is the single JSON value printed to stdout.
type runOutput struct {
	FinalPC        uint32         `json:"final_pc"`
	FinalFP        uint32         `json:"final_fp"`
	FinalTimestamp uint32         `json:"final_timestamp"`
	Steps          int            `json:"steps"`
	EventCounts    map[string]int `json:"event_counts"`
	Balanced       bool           `json:"balanced"`
	Imbalances     []string       `json:"imbalances,omitempty"`
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)

	program, err := readProgram(scanner)
	if err != nil {
		fatal(err.Error())
	}

	initialVROM, err := readInitialVROM(scanner)
	if err != nil {
		fatal(err.Error())
	}

	run, err := readRunOptions(scanner)
	if err != nil {
		fatal(err.Error())
	}

	cfg := petravm.DefaultConfig()
	if run.MaxSteps > 0 {
		cfg.WithMaxSteps(run.MaxSteps)
	}

	logStderr("running program...")
	vm, err := petravm.NewVM(program, initialVROM, cfg)
	if err != nil {
		fatal(err.Error())
	}

	result, err := vm.Run()
	if err != nil {
		fatal(err.Error())
	}
	logStderr(fmt.Sprintf("halted after %d instructions", result.Trace.TotalNonProverOnlyEvents()))

	if run.Debug {
		// Built from the completed run's own trace, so the VROM snapshot
		// folded into the fingerprint reflects every write that actually
		// happened, not an empty placeholder built before the run started.
		obs := debug.NewFingerprintObserver(os.Stderr, program, result.Trace.VROM)
		obs.OnHalt(field.F32(result.Boundary.FinalPC), result.Boundary.FinalFP)
	}

	out := runOutput{
		FinalPC:        result.Boundary.FinalPC,
		FinalFP:        result.Boundary.FinalFP,
		FinalTimestamp: result.Boundary.FinalTimestamp,
		Steps:          result.Trace.TotalNonProverOnlyEvents(),
		EventCounts:    eventCounts(result),
	}
	if imbalances := result.Validate(); len(imbalances) == 0 {
		out.Balanced = true
	} else {
		for _, e := range imbalances {
			out.Imbalances = append(out.Imbalances, e.Error())
		}
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(out); err != nil {
		fatal(fmt.Sprintf("failed to encode result: %v", err))
	}
}

func eventCounts(r *petravm.Result) map[string]int {
	t := r.Trace
	return map[string]int{
		"integer_op": len(t.IntegerOps),
		"shift":      len(t.Shifts),
		"b32":        len(t.B32Ops),
		"b128":       len(t.B128Ops),
		"branch":     len(t.Branches),
		"jump":       len(t.Jumps),
		"call":       len(t.Calls),
		"ret":        len(t.Rets),
		"move":       len(t.Moves),
		"ram":        len(t.Rams),
		"groestl":    len(t.Groestls),
		"misc":       len(t.Miscs),
	}
}

func readProgram(scanner *bufio.Scanner) (*petravm.Program, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("failed to read program: %v", scanner.Err())
	}
	var in programInput
	if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}

	records := make([]memory.InstructionRecord, len(in.Prom))
	for i, rec := range in.Prom {
		records[i] = memory.InstructionRecord{
			Opcode:     rec.Opcode,
			Arg0:       rec.Arg0,
			Arg1:       rec.Arg1,
			Arg2:       rec.Arg2,
			FieldPC:    field.F32(rec.FieldPC),
			ProverOnly: rec.ProverOnly,
		}
	}

	frameSizes := make(map[field.F32]uint16, len(in.FrameSizes))
	for k, v := range in.FrameSizes {
		fpc, err := parseFieldPC(k)
		if err != nil {
			return nil, fmt.Errorf("frame_sizes: %w", err)
		}
		frameSizes[fpc] = v
	}

	pcIndex := make(map[field.F32]isa.PCLocation, len(in.PcIndexProm))
	for k, promIdx := range in.PcIndexProm {
		fpc, err := parseFieldPC(k)
		if err != nil {
			return nil, fmt.Errorf("pc_index_prom: %w", err)
		}
		pcIndex[fpc] = isa.PCLocation{PromIndex: promIdx, IntegerPC: in.PcIndexInt[k]}
	}

	return &isa.Image{PROM: memory.NewPROM(records), FrameSizes: frameSizes, PCIndex: pcIndex}, nil
}

func parseFieldPC(s string) (field.F32, error) {
	var v uint32
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid field pc key %q: %w", s, err)
	}
	return field.F32(v), nil
}

func readInitialVROM(scanner *bufio.Scanner) ([]uint32, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("failed to read initial_vrom: %v", scanner.Err())
	}
	var words []uint32
	if err := json.Unmarshal(scanner.Bytes(), &words); err != nil {
		return nil, fmt.Errorf("failed to parse initial_vrom: %w", err)
	}
	return words, nil
}

func readRunOptions(scanner *bufio.Scanner) (runInput, error) {
	if !scanner.Scan() {
		// Run options are optional; default to zero value (use defaults).
		return runInput{}, nil
	}
	var in runInput
	if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
		return runInput{}, fmt.Errorf("failed to parse run options: %w", err)
	}
	return in, nil
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "petravm-run:", msg)
}

func fatal(msg string) {
	logStderr("error: " + msg)
	os.Exit(1)
}
