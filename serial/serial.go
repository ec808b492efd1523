// Package serial implements the LR35902's SB/SC serial port as a stub
// sufficient to run Blargg-style CPU test ROMs headlessly: they report
// PASS/FAIL text by repeatedly writing a character to SB and starting an
// internal-clock transfer via SC. There is no attempt to model link
// cable bit timing or an external clock source - that is explicitly out
// of scope.
package serial

import (
	"io"

	"github.com/aeyoll/lr35902/irq"
)

const (
	SBAddr = uint16(0xFF01)
	SCAddr = uint16(0xFF02)
)

// transferMCycles is the fixed, not cycle-accurate, budget a stubbed
// internal-clock transfer takes to complete.
const transferMCycles = 8

// Serial owns SB/SC and copies completed transfers to its sink, the
// io.Writer passed to New (io.Discard when that is nil). An embedder that
// wants to observe a test ROM's PASS/FAIL banner passes its own writer
// (e.g. os.Stdout).
type Serial struct {
	sb      uint8
	sc      uint8
	sink    io.Writer
	req     irq.Requester
	pending int // M-cycles remaining on an in-flight transfer, 0 if idle
}

// New returns a Serial that raises the Serial interrupt through req and
// writes completed bytes to sink. A nil sink discards output.
func New(req irq.Requester, sink io.Writer) *Serial {
	if sink == nil {
		sink = io.Discard
	}
	return &Serial{req: req, sink: sink}
}

// Read implements the register-level view the MMU layer dispatches
// FF01-FF02 to.
func (s *Serial) Read(addr uint16) uint8 {
	switch addr {
	case SBAddr:
		return s.sb
	case SCAddr:
		return s.sc | 0x7E
	}
	return 0xFF
}

// Write implements the register-level view the MMU layer dispatches
// FF01-FF02 to. Writing SC with bit 7 and bit 0 set (internal clock,
// start transfer) begins the stubbed transfer that Tick completes.
func (s *Serial) Write(addr uint16, v uint8) {
	switch addr {
	case SBAddr:
		s.sb = v
	case SCAddr:
		s.sc = v
		if v&0x81 == 0x81 {
			s.pending = transferMCycles
		}
	}
}

// Tick advances any in-flight transfer by mCycles M-cycles. On
// completion it writes SB to the sink, clears SC's start bit, and raises
// the Serial interrupt - exactly once per transfer.
func (s *Serial) Tick(mCycles int) {
	if s.pending == 0 {
		return
	}
	s.pending -= mCycles
	if s.pending <= 0 {
		s.pending = 0
		s.sc &^= 0x80
		_, _ = s.sink.Write([]byte{s.sb})
		s.req.RequestInterrupt(irq.Serial)
	}
}
