// Package system is the main logic for pulling together a runnable Game
// Boy memory map. The CPU core in the cpu package knows nothing about
// cartridges, VRAM, or I/O registers; this package is the controller
// that dispatches addresses to the right chip, the same role the
// teacher corpus's console packages (e.g. an Atari 2600's memory
// controller) play for their own CPUs.
package system

import (
	"io"
	"math/rand"
	"time"

	"github.com/aeyoll/lr35902/cartridge"
	"github.com/aeyoll/lr35902/cpu"
	"github.com/aeyoll/lr35902/joypad"
	"github.com/aeyoll/lr35902/mmu"
	"github.com/aeyoll/lr35902/serial"
	"github.com/aeyoll/lr35902/timer"
)

// System owns every chip needed to run a ROM: the CPU, its cartridge,
// and the timer/serial/joypad peripherals, wired together behind a
// single mmu.Bank.
type System struct {
	CPU    *cpu.CPU
	Timer  *timer.Timer
	Serial *serial.Serial
	Joypad *joypad.Joypad

	mem *controller
}

// controller implements mmu.Bank and is the address decoder: it owns
// VRAM/WRAM/OAM/HRAM/IE directly and routes everything else (cartridge
// ROM/RAM, the four peripheral I/O windows) to the chip that owns it.
type controller struct {
	cart *cartridge.Cartridge

	vram [0x2000]uint8
	wram [0x2000]uint8
	oam  [0x00A0]uint8
	hram [0x007F]uint8
	ie   uint8
	ifr  uint8

	timer  *timer.Timer
	serial *serial.Serial
	joypad *joypad.Joypad
}

// Read implements mmu.Bank.
func (m *controller) Read(addr uint16) uint8 {
	switch {
	case addr <= mmu.ROMnEnd:
		return m.cart.Read(addr)
	case addr >= mmu.VRAMStart && addr <= mmu.VRAMEnd:
		return m.vram[addr-mmu.VRAMStart]
	case addr >= mmu.ExtRAMStart && addr <= mmu.ExtRAMEnd:
		return m.cart.Read(addr)
	case addr >= mmu.WRAMStart && addr <= mmu.WRAMEnd:
		return m.wram[addr-mmu.WRAMStart]
	case addr >= mmu.EchoStart && addr <= mmu.EchoEnd:
		return m.wram[addr-mmu.EchoStart]
	case addr >= mmu.OAMStart && addr <= mmu.OAMEnd:
		return m.oam[addr-mmu.OAMStart]
	case addr >= mmu.UnusableStart && addr <= mmu.UnusableEnd:
		return 0xFF
	case addr == mmu.JoypadAddr:
		return m.joypad.Read(addr)
	case addr == mmu.SerialSBAddr || addr == mmu.SerialSCAddr:
		return m.serial.Read(addr)
	case addr >= mmu.TimerDIVAddr && addr <= mmu.TimerTACAddr:
		return m.timer.Read(addr)
	case addr == mmu.IFAddr:
		return m.ifr | 0xE0
	case addr >= mmu.HRAMStart && addr <= mmu.HRAMEnd:
		return m.hram[addr-mmu.HRAMStart]
	case addr == mmu.IEAddr:
		return m.ie
	}
	return 0xFF
}

// Write implements mmu.Bank.
func (m *controller) Write(addr uint16, v uint8) {
	switch {
	case addr <= mmu.ROMnEnd:
		m.cart.Write(addr, v)
	case addr >= mmu.VRAMStart && addr <= mmu.VRAMEnd:
		m.vram[addr-mmu.VRAMStart] = v
	case addr >= mmu.ExtRAMStart && addr <= mmu.ExtRAMEnd:
		m.cart.Write(addr, v)
	case addr >= mmu.WRAMStart && addr <= mmu.WRAMEnd:
		m.wram[addr-mmu.WRAMStart] = v
	case addr >= mmu.EchoStart && addr <= mmu.EchoEnd:
		m.wram[addr-mmu.EchoStart] = v
	case addr >= mmu.OAMStart && addr <= mmu.OAMEnd:
		m.oam[addr-mmu.OAMStart] = v
	case addr >= mmu.UnusableStart && addr <= mmu.UnusableEnd:
		// Unusable region: writes are discarded.
	case addr == mmu.JoypadAddr:
		m.joypad.Write(addr, v)
	case addr == mmu.SerialSBAddr || addr == mmu.SerialSCAddr:
		m.serial.Write(addr, v)
	case addr >= mmu.TimerDIVAddr && addr <= mmu.TimerTACAddr:
		m.timer.Write(addr, v)
	case addr == mmu.IFAddr:
		m.ifr = v & 0x1F
	case addr >= mmu.HRAMStart && addr <= mmu.HRAMEnd:
		m.hram[addr-mmu.HRAMStart] = v
	case addr == mmu.IEAddr:
		m.ie = v
	}
}

// PowerOn implements mmu.Bank. VRAM/WRAM/OAM/HRAM are randomized rather
// than zeroed, matching the teacher's own ram.PowerOn convention
// (memory/memory.go), so a test ROM that reads before it writes gets
// caught instead of silently observing a convenient zero. IE and IF are
// the one deliberate exception: real hardware's boot sequence leaves
// both clear, and cpu.pendingInterrupt depends on IF reading 0 so no
// stale interrupt fires before anything has requested one.
func (m *controller) PowerOn() {
	m.cart.PowerOn()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range m.vram {
		m.vram[i] = uint8(rnd.Intn(256))
	}
	for i := range m.wram {
		m.wram[i] = uint8(rnd.Intn(256))
	}
	for i := range m.oam {
		m.oam[i] = uint8(rnd.Intn(256))
	}
	for i := range m.hram {
		m.hram[i] = uint8(rnd.Intn(256))
	}
	m.ie = 0
	m.ifr = 0
}

// VRAM exposes the raw tile/map bytes for debugview; it is not part of
// the mmu.Bank contract.
func (m *controller) VRAM() *[0x2000]uint8 {
	return &m.vram
}

// New builds a System around the given cartridge ROM bytes and a serial
// output sink (nil discards serial output). The CPU starts in the usual
// post-boot register state with PC at the cartridge's entry point
// (0x0100), matching what the real boot ROM hands off to.
func New(rom []byte, serialSink io.Writer) (*System, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, err
	}
	mem := &controller{cart: cart}
	mem.PowerOn()

	c := cpu.New(mem)
	mem.timer = timer.New(c)
	mem.serial = serial.New(c, serialSink)
	mem.joypad = joypad.New(c, c)

	return &System{CPU: c, Timer: mem.timer, Serial: mem.serial, Joypad: mem.joypad, mem: mem}, nil
}

// Step executes one CPU instruction and ticks every peripheral by the
// M-cycles it consumed, preserving the ordering guarantee the cpu
// package documents: all of instruction N's side effects (including
// peripheral IF updates) are visible before Step is called again.
func (s *System) Step() (int, error) {
	n, err := s.CPU.Step()
	if n > 0 {
		s.Timer.Tick(n)
		s.Serial.Tick(n)
	}
	return n, err
}

// VRAM returns the raw VRAM bytes, for use by the debugview package.
func (s *System) VRAM() *[0x2000]uint8 {
	return s.mem.VRAM()
}
