// Package joypad implements the LR35902's P1 register: an 8-button
// matrix multiplexed two rows at a time. It raises the Joypad interrupt
// on a high-to-low transition of any currently selected line and, when
// wired to a cpu.CPU, wakes the CPU from STOP the same way real hardware
// does.
package joypad

import "github.com/aeyoll/lr35902/irq"

const P1Addr = uint16(0xFF00)

// Button enumerates the eight physical buttons.
type Button int

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// resumer is implemented by *cpu.CPU; kept as a narrow interface here so
// joypad never imports cpu (cpu already imports irq, not the other way
// around).
type resumer interface {
	Resume()
}

// Joypad owns P1 and the logical pressed/released state of all eight
// buttons (true = pressed), independent of which half the game has
// currently selected for reading.
type Joypad struct {
	selectButtons   bool // P1 bit 5 as last written; false (cleared) selects the action buttons (A/B/Select/Start)
	selectDirection bool // P1 bit 4 as last written; false (cleared) selects the direction buttons
	pressed         [8]bool
	req             irq.Requester
	cpu             resumer
}

// New returns a Joypad that raises the Joypad interrupt through req and
// resumes cpu from STOP on a button edge. cpu may be nil if the embedder
// doesn't use STOP.
func New(req irq.Requester, cpu resumer) *Joypad {
	return &Joypad{req: req, cpu: cpu}
}

// Read implements the register-level view the MMU layer dispatches
// FF00 to. Bits 3:0 read back active-low: 0 means pressed.
func (j *Joypad) Read(addr uint16) uint8 {
	if addr != P1Addr {
		return 0xFF
	}
	v := uint8(0xC0) // bits 7:6 unused, read as 1; bits 5:4 set below
	if j.selectButtons {
		v |= 0x20
	}
	if j.selectDirection {
		v |= 0x10
	}
	var line [4]bool
	switch {
	case !j.selectButtons:
		line = [4]bool{j.pressed[A], j.pressed[B], j.pressed[Select], j.pressed[Start]}
	case !j.selectDirection:
		line = [4]bool{j.pressed[Right], j.pressed[Left], j.pressed[Up], j.pressed[Down]}
	}
	for bit, pressed := range line {
		if !pressed {
			v |= 1 << bit
		}
	}
	return v
}

// Write implements the register-level view the MMU layer dispatches
// FF00 to; only bits 5:4 (the row select) are writable.
func (j *Joypad) Write(addr uint16, v uint8) {
	if addr != P1Addr {
		return
	}
	j.selectButtons = v&0x20 != 0
	j.selectDirection = v&0x10 != 0
}

// SetButton updates the logical state of b. A transition from released
// to pressed on a currently-selected line raises the Joypad interrupt
// and, if the CPU is in STOP, resumes it.
func (j *Joypad) SetButton(b Button, pressedNow bool) {
	was := j.pressed[b]
	j.pressed[b] = pressedNow
	if was || !pressedNow {
		return
	}
	if j.selected(b) {
		j.req.RequestInterrupt(irq.Joypad)
		if j.cpu != nil {
			j.cpu.Resume()
		}
	}
}

func (j *Joypad) selected(b Button) bool {
	switch b {
	case A, B, Select, Start:
		return !j.selectButtons
	default:
		return !j.selectDirection
	}
}
