package disassemble

import (
	"strings"
	"testing"

	"github.com/aeyoll/lr35902/mmu"
)

func load(program ...uint8) mmu.Bank {
	b := mmu.NewFlatRAM()
	for i, v := range program {
		b.Write(uint16(i), v)
	}
	return b
}

func TestStepNOP(t *testing.T) {
	b := load(0x00)
	s, n := Step(0, b)
	if n != 1 || !strings.Contains(s, "NOP") {
		t.Fatalf("Step(NOP) = %q, %d", s, n)
	}
}

func TestStepLDRR(t *testing.T) {
	b := load(0x41) // LD B,C
	s, n := Step(0, b)
	if n != 1 || !strings.Contains(s, "LD B,C") {
		t.Fatalf("Step(LD B,C) = %q, %d", s, n)
	}
}

func TestStepHALT(t *testing.T) {
	b := load(0x76)
	s, n := Step(0, b)
	if n != 1 || !strings.Contains(s, "HALT") {
		t.Fatalf("Step(HALT) = %q, %d", s, n)
	}
}

func TestStepALUImmediate(t *testing.T) {
	b := load(0xC6, 0x05) // ADD A,5
	s, n := Step(0, b)
	if n != 2 || !strings.Contains(s, "ADD A,05") {
		t.Fatalf("Step(ADD A,d8) = %q, %d", s, n)
	}
}

func TestStepJumpAbsolute(t *testing.T) {
	b := load(0xC3, 0x34, 0x12) // JP 0x1234
	s, n := Step(0, b)
	if n != 3 || !strings.Contains(s, "JP 1234") {
		t.Fatalf("Step(JP a16) = %q, %d", s, n)
	}
}

func TestStepRelativeJumpTargetAccountsForInstructionLength(t *testing.T) {
	b := mmu.NewFlatRAM()
	mmu.Load(b, 0x0100, []byte{0x18, 0x02}) // JR +2, from PC=0x0100
	s, n := Step(0x0100, b)
	if n != 2 || !strings.Contains(s, "JR") || !strings.Contains(s, "0104") {
		t.Fatalf("Step(JR e8) = %q, %d, want target 0104", s, n)
	}
}

func TestStepCBBit(t *testing.T) {
	b := load(0xCB, 0x7C) // BIT 7,H
	s, n := Step(0, b)
	if n != 2 || !strings.Contains(s, "BIT 7,H") {
		t.Fatalf("Step(CB BIT) = %q, %d", s, n)
	}
}

func TestStepIllegalOpcodeMarkedUnimplemented(t *testing.T) {
	b := load(0xED)
	s, _ := Step(0, b)
	if !strings.Contains(s, "UNIMPLEMENTED") {
		t.Fatalf("Step(illegal) = %q, want UNIMPLEMENTED", s)
	}
}
