// Package cartridge implements just enough of the LR35902 cartridge
// memory bank controller (MBC) protocol to load and run ROM-only and
// MBC1 images: the two types covering the large majority of published
// Game Boy test ROMs. MBC2/3/5, real-time-clock registers, and
// battery-backed save persistence are out of scope.
package cartridge

import "fmt"

// Header byte offsets, taken straight from the cartridge header layout
// every Game Boy ROM carries regardless of its own MBC type.
const (
	headerCartridgeType = 0x0147
	headerROMSize       = 0x0148
	headerRAMSize       = 0x0149
)

const romBankSize = 16 * 1024
const ramBankSize = 8 * 1024

// Cartridge implements mmu.Bank for the 0x0000-0x7FFF ROM window and the
// 0xA000-0xBFFF external RAM window. Addresses outside those ranges are
// not meaningful here and return 0xFF / discard writes - the system
// package never routes them here in the first place.
type Cartridge struct {
	rom      []byte
	ram      []byte
	mbc1     bool
	ramEnable bool
	romBank  uint8 // 1-based select register, 0 treated as 1
	ramBank  uint8
	bankMode uint8 // 0: ROM banking mode, 1: RAM banking mode (MBC1 only)
}

// Load inspects the cartridge header at 0x0147 and constructs a
// Cartridge appropriate to its declared MBC type. Returns an error for
// any type this package doesn't implement.
func Load(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("cartridge: image too short to contain a header (%d bytes)", len(rom))
	}
	c := &Cartridge{rom: rom, romBank: 1}
	switch rom[headerCartridgeType] {
	case 0x00:
		// ROM only.
	case 0x01, 0x02, 0x03:
		c.mbc1 = true
	default:
		return nil, fmt.Errorf("cartridge: unsupported MBC type 0x%02X", rom[headerCartridgeType])
	}
	c.ram = make([]byte, ramSizeFor(rom[headerRAMSize]))
	return c, nil
}

func ramSizeFor(code byte) int {
	switch code {
	case 0x01:
		return 2 * 1024
	case 0x02:
		return ramBankSize
	case 0x03:
		return 4 * ramBankSize
	case 0x04:
		return 16 * ramBankSize
	case 0x05:
		return 8 * ramBankSize
	default:
		return 0
	}
}

// Read implements mmu.Bank for the ROM and external RAM windows.
func (c *Cartridge) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return c.rom[addr]
	case addr <= 0x7FFF:
		bank := c.effectiveROMBank()
		off := int(bank)*romBankSize + int(addr-0x4000)
		if off >= len(c.rom) {
			return 0xFF
		}
		return c.rom[off]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !c.ramEnable || len(c.ram) == 0 {
			return 0xFF
		}
		off := int(c.effectiveRAMBank())*ramBankSize + int(addr-0xA000)
		if off >= len(c.ram) {
			return 0xFF
		}
		return c.ram[off]
	}
	return 0xFF
}

// Write implements mmu.Bank. For ROM addresses this selects banks or
// toggles RAM enable/banking mode rather than storing data - that's the
// entire point of an MBC.
func (c *Cartridge) Write(addr uint16, v uint8) {
	switch {
	case !c.mbc1:
		// ROM-only carts ignore all writes to the ROM window and
		// have no switchable RAM banking to speak of.
		if addr >= 0xA000 && addr <= 0xBFFF && len(c.ram) > 0 {
			c.ram[addr-0xA000] = v
		}
	case addr <= 0x1FFF:
		c.ramEnable = v&0x0F == 0x0A
	case addr <= 0x3FFF:
		bank := v & 0x1F
		if bank == 0 {
			bank = 1
		}
		c.romBank = bank
	case addr <= 0x5FFF:
		c.ramBank = v & 0x03
	case addr <= 0x7FFF:
		c.bankMode = v & 0x01
	case addr >= 0xA000 && addr <= 0xBFFF:
		if c.ramEnable && len(c.ram) > 0 {
			off := int(c.effectiveRAMBank())*ramBankSize + int(addr-0xA000)
			if off < len(c.ram) {
				c.ram[off] = v
			}
		}
	}
}

// PowerOn implements mmu.Bank; cartridge contents are fixed at Load time
// and external RAM starts zeroed rather than randomized, matching most
// battery-backed SRAM behavior on first insertion.
func (c *Cartridge) PowerOn() {
	for i := range c.ram {
		c.ram[i] = 0
	}
	c.romBank = 1
	c.ramBank = 0
	c.bankMode = 0
	c.ramEnable = false
}

func (c *Cartridge) effectiveROMBank() uint8 {
	return c.romBank
}

func (c *Cartridge) effectiveRAMBank() uint8 {
	if !c.mbc1 || c.bankMode == 0 {
		return 0
	}
	return c.ramBank
}
