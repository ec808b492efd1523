package serial

import (
	"bytes"
	"testing"

	"github.com/aeyoll/lr35902/irq"
)

type fakeRequester struct {
	raised []irq.Interrupt
}

func (f *fakeRequester) RequestInterrupt(i irq.Interrupt) {
	f.raised = append(f.raised, i)
}

func TestTransferWritesSinkAndRaisesOnce(t *testing.T) {
	req := &fakeRequester{}
	var sink bytes.Buffer
	s := New(req, &sink)

	s.Write(SBAddr, 'A')
	s.Write(SCAddr, 0x81) // internal clock, start

	s.Tick(transferMCycles)

	if sink.String() != "A" {
		t.Fatalf("sink = %q, want %q", sink.String(), "A")
	}
	if len(req.raised) != 1 || req.raised[0] != irq.Serial {
		t.Fatalf("raised = %v, want exactly one Serial interrupt", req.raised)
	}
	if s.Read(SCAddr)&0x80 != 0 {
		t.Fatal("SC start bit should be cleared after the transfer completes")
	}
}

func TestNoTransferWithoutStartBit(t *testing.T) {
	req := &fakeRequester{}
	var sink bytes.Buffer
	s := New(req, &sink)
	s.Write(SBAddr, 'Z')
	s.Write(SCAddr, 0x01) // internal clock selected, start bit clear
	s.Tick(transferMCycles)
	if sink.Len() != 0 {
		t.Fatalf("sink = %q, want empty (no transfer started)", sink.String())
	}
}
