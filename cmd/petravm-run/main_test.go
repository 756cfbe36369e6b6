package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/petraprover/petravm/internal/petravm/isa"
)

func TestParseFieldPC(t *testing.T) {
	fpc, err := parseFieldPC("10")
	if err != nil {
		t.Fatalf("parseFieldPC: %v", err)
	}
	if uint32(fpc) != 10 {
		t.Fatalf("parseFieldPC(\"10\") = %d, want 10", uint32(fpc))
	}
	if _, err := parseFieldPC("not-a-number"); err == nil {
		t.Fatal("expected parseFieldPC to reject a non-numeric key")
	}
}

func TestReadProgramParsesMinimalProgram(t *testing.T) {
	input := `{"prom":[{"opcode":68,"arg0":0,"arg1":0,"arg2":0,"field_pc":1,"prover_only":false}],"frame_sizes":{},"pc_index_prom":{},"pc_index_integer":{}}` + "\n"
	scanner := bufio.NewScanner(strings.NewReader(input))

	program, err := readProgram(scanner)
	if err != nil {
		t.Fatalf("readProgram: %v", err)
	}
	if program.PROM.Len() != 1 {
		t.Fatalf("PROM.Len() = %d, want 1", program.PROM.Len())
	}
}

func TestReadInitialVROM(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("[0,0,5]\n"))
	words, err := readInitialVROM(scanner)
	if err != nil {
		t.Fatalf("readInitialVROM: %v", err)
	}
	if len(words) != 3 || words[2] != 5 {
		t.Fatalf("readInitialVROM = %v, want [0 0 5]", words)
	}
}

func TestReadRunOptionsDefaultsWhenAbsent(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader(""))
	run, err := readRunOptions(scanner)
	if err != nil {
		t.Fatalf("readRunOptions: %v", err)
	}
	if run.MaxSteps != 0 || run.Debug {
		t.Fatalf("expected zero-value defaults, got %+v", run)
	}
}

func TestPCLocationParsing(t *testing.T) {
	input := `{"prom":[],"frame_sizes":{},"pc_index_prom":{"10":3},"pc_index_integer":{"10":4}}` + "\n"
	scanner := bufio.NewScanner(strings.NewReader(input))

	program, err := readProgram(scanner)
	if err != nil {
		t.Fatalf("readProgram: %v", err)
	}
	loc, ok := program.PCIndex[10]
	if !ok {
		t.Fatal("expected pc_index entry for field pc 10")
	}
	if loc != (isa.PCLocation{PromIndex: 3, IntegerPC: 4}) {
		t.Fatalf("PCIndex[10] = %+v, want {3 4}", loc)
	}
}
