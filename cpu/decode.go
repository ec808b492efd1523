package cpu

// Register index order used by both the LD r,r' block (0x40-0x7F) and the
// ALU-op block (0x80-0xBF): B,C,D,E,H,L,(HL),A. Index 6 means "through
// HL", not a register at all, and costs an extra memory cycle wherever it
// appears.
const regHLIndirect = 6

func (c *CPU) getReg8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case regHLIndirect:
		return c.read8(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case regHLIndirect:
		c.write8(c.HL(), v)
	default:
		c.A = v
	}
}

// rp returns one of BC/DE/HL/SP selected by a two-bit index, the table
// used by LD rr,d16 / INC rr / DEC rr / ADD HL,rr.
func (c *CPU) rp(idx uint8) uint16 {
	switch idx & 0x3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setRP(idx uint8, v uint16) {
	switch idx & 0x3 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// rp2 is the PUSH/POP register table: BC,DE,HL,AF (SP's slot is AF here,
// not SP itself).
func (c *CPU) rp2(idx uint8) uint16 {
	switch idx & 0x3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.AF()
	}
}

func (c *CPU) setRP2(idx uint8, v uint16) {
	switch idx & 0x3 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SetAF(v)
	}
}

// cond evaluates one of the four branch conditions NZ,Z,NC,C selected by a
// two-bit index.
func (c *CPU) cond(idx uint8) bool {
	switch idx & 0x3 {
	case 0:
		return !c.flag(FlagZ)
	case 1:
		return c.flag(FlagZ)
	case 2:
		return !c.flag(FlagC)
	default:
		return c.flag(FlagC)
	}
}

// dispatch decodes and executes the single opcode op, fetched from pc. It
// returns the M-cycle cost of the instruction (including any immediate
// bytes it fetches) or an IllegalOpcode error.
func (c *CPU) dispatch(op uint8, pc uint16) (int, error) {
	// 0x40-0x7F: the 8x8 LD r,r' block, with 0x76 carved out as HALT.
	if op >= 0x40 && op <= 0x7F {
		if op == 0x76 {
			return c.iHALT(), nil
		}
		dst := (op >> 3) & 0x7
		src := op & 0x7
		v := c.getReg8(src)
		c.setReg8(dst, v)
		if dst == regHLIndirect || src == regHLIndirect {
			return 2, nil
		}
		return 1, nil
	}

	// 0x80-0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r.
	if op >= 0x80 && op <= 0xBF {
		group := (op >> 3) & 0x7
		src := op & 0x7
		v := c.getReg8(src)
		c.aluOp(group, v)
		if src == regHLIndirect {
			return 2, nil
		}
		return 1, nil
	}

	switch op {
	case 0x00: // NOP
		return 1, nil
	case 0x01: // LD BC,d16
		c.SetBC(c.fetch16())
		return 3, nil
	case 0x02: // LD (BC),A
		c.write8(c.BC(), c.A)
		return 2, nil
	case 0x03: // INC BC
		c.SetBC(c.BC() + 1)
		return 2, nil
	case 0x04: // INC B
		v, f := inc8(c.B)
		c.B = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x05: // DEC B
		v, f := dec8(c.B)
		c.B = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x06: // LD B,d8
		c.B = c.fetch8()
		return 2, nil
	case 0x07: // RLCA
		v, f := rlc(c.A)
		c.A = v
		c.applyFlags(Flags{Z: false, C: f.C}, true, true, true, true)
		return 1, nil
	case 0x08: // LD (a16),SP
		c.write16(c.fetch16(), c.SP)
		return 5, nil
	case 0x09: // ADD HL,BC
		v, f := addHL(c.HL(), c.BC())
		c.SetHL(v)
		c.applyFlags(f, false, true, true, true)
		return 2, nil
	case 0x0A: // LD A,(BC)
		c.A = c.read8(c.BC())
		return 2, nil
	case 0x0B: // DEC BC
		c.SetBC(c.BC() - 1)
		return 2, nil
	case 0x0C: // INC C
		v, f := inc8(c.C)
		c.C = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x0D: // DEC C
		v, f := dec8(c.C)
		c.C = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x0E: // LD C,d8
		c.C = c.fetch8()
		return 2, nil
	case 0x0F: // RRCA
		v, f := rrc(c.A)
		c.A = v
		c.applyFlags(Flags{Z: false, C: f.C}, true, true, true, true)
		return 1, nil

	case 0x10: // STOP 0
		c.fetch8() // consumes the trailing 0x00
		c.stopped = true
		return 1, nil
	case 0x11: // LD DE,d16
		c.SetDE(c.fetch16())
		return 3, nil
	case 0x12: // LD (DE),A
		c.write8(c.DE(), c.A)
		return 2, nil
	case 0x13: // INC DE
		c.SetDE(c.DE() + 1)
		return 2, nil
	case 0x14: // INC D
		v, f := inc8(c.D)
		c.D = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x15: // DEC D
		v, f := dec8(c.D)
		c.D = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x16: // LD D,d8
		c.D = c.fetch8()
		return 2, nil
	case 0x17: // RLA
		v, f := rl(c.A, c.flag(FlagC))
		c.A = v
		c.applyFlags(Flags{Z: false, C: f.C}, true, true, true, true)
		return 1, nil
	case 0x18: // JR r8
		c.jr()
		return 3, nil
	case 0x19: // ADD HL,DE
		v, f := addHL(c.HL(), c.DE())
		c.SetHL(v)
		c.applyFlags(f, false, true, true, true)
		return 2, nil
	case 0x1A: // LD A,(DE)
		c.A = c.read8(c.DE())
		return 2, nil
	case 0x1B: // DEC DE
		c.SetDE(c.DE() - 1)
		return 2, nil
	case 0x1C: // INC E
		v, f := inc8(c.E)
		c.E = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x1D: // DEC E
		v, f := dec8(c.E)
		c.E = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x1E: // LD E,d8
		c.E = c.fetch8()
		return 2, nil
	case 0x1F: // RRA
		v, f := rr(c.A, c.flag(FlagC))
		c.A = v
		c.applyFlags(Flags{Z: false, C: f.C}, true, true, true, true)
		return 1, nil

	case 0x20: // JR NZ,r8
		if c.cond(0) {
			c.jr()
			return 3, nil
		}
		c.fetch8()
		return 2, nil
	case 0x21: // LD HL,d16
		c.SetHL(c.fetch16())
		return 3, nil
	case 0x22: // LD (HL+),A
		hl := c.HL()
		c.write8(hl, c.A)
		c.SetHL(hl + 1)
		return 2, nil
	case 0x23: // INC HL
		c.SetHL(c.HL() + 1)
		return 2, nil
	case 0x24: // INC H
		v, f := inc8(c.H)
		c.H = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x25: // DEC H
		v, f := dec8(c.H)
		c.H = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x26: // LD H,d8
		c.H = c.fetch8()
		return 2, nil
	case 0x27: // DAA
		v, f := daa(c.A, Flags{N: c.flag(FlagN), H: c.flag(FlagH), C: c.flag(FlagC)})
		c.A = v
		c.applyFlags(f, true, false, true, true)
		return 1, nil
	case 0x28: // JR Z,r8
		if c.cond(1) {
			c.jr()
			return 3, nil
		}
		c.fetch8()
		return 2, nil
	case 0x29: // ADD HL,HL
		v, f := addHL(c.HL(), c.HL())
		c.SetHL(v)
		c.applyFlags(f, false, true, true, true)
		return 2, nil
	case 0x2A: // LD A,(HL+)
		hl := c.HL()
		c.A = c.read8(hl)
		c.SetHL(hl + 1)
		return 2, nil
	case 0x2B: // DEC HL
		c.SetHL(c.HL() - 1)
		return 2, nil
	case 0x2C: // INC L
		v, f := inc8(c.L)
		c.L = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x2D: // DEC L
		v, f := dec8(c.L)
		c.L = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x2E: // LD L,d8
		c.L = c.fetch8()
		return 2, nil
	case 0x2F: // CPL
		c.A = cpl(c.A)
		c.setFlag(FlagN, true)
		c.setFlag(FlagH, true)
		return 1, nil

	case 0x30: // JR NC,r8
		if c.cond(2) {
			c.jr()
			return 3, nil
		}
		c.fetch8()
		return 2, nil
	case 0x31: // LD SP,d16
		c.SP = c.fetch16()
		return 3, nil
	case 0x32: // LD (HL-),A
		hl := c.HL()
		c.write8(hl, c.A)
		c.SetHL(hl - 1)
		return 2, nil
	case 0x33: // INC SP
		c.SP++
		return 2, nil
	case 0x34: // INC (HL)
		hl := c.HL()
		v, f := inc8(c.read8(hl))
		c.write8(hl, v)
		c.applyFlags(f, true, true, true, false)
		return 3, nil
	case 0x35: // DEC (HL)
		hl := c.HL()
		v, f := dec8(c.read8(hl))
		c.write8(hl, v)
		c.applyFlags(f, true, true, true, false)
		return 3, nil
	case 0x36: // LD (HL),d8
		c.write8(c.HL(), c.fetch8())
		return 3, nil
	case 0x37: // SCF
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, true)
		return 1, nil
	case 0x38: // JR C,r8
		if c.cond(3) {
			c.jr()
			return 3, nil
		}
		c.fetch8()
		return 2, nil
	case 0x39: // ADD HL,SP
		v, f := addHL(c.HL(), c.SP)
		c.SetHL(v)
		c.applyFlags(f, false, true, true, true)
		return 2, nil
	case 0x3A: // LD A,(HL-)
		hl := c.HL()
		c.A = c.read8(hl)
		c.SetHL(hl - 1)
		return 2, nil
	case 0x3B: // DEC SP
		c.SP--
		return 2, nil
	case 0x3C: // INC A
		v, f := inc8(c.A)
		c.A = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x3D: // DEC A
		v, f := dec8(c.A)
		c.A = v
		c.applyFlags(f, true, true, true, false)
		return 1, nil
	case 0x3E: // LD A,d8
		c.A = c.fetch8()
		return 2, nil
	case 0x3F: // CCF
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, !c.flag(FlagC))
		return 1, nil

	case 0xC0: // RET NZ
		if c.cond(0) {
			c.PC = c.pop16()
			return 5, nil
		}
		return 2, nil
	case 0xC1: // POP BC
		c.SetBC(c.pop16())
		return 3, nil
	case 0xC2: // JP NZ,a16
		addr := c.fetch16()
		if c.cond(0) {
			c.PC = addr
			return 4, nil
		}
		return 3, nil
	case 0xC3: // JP a16
		c.PC = c.fetch16()
		return 4, nil
	case 0xC4: // CALL NZ,a16
		addr := c.fetch16()
		if c.cond(0) {
			c.push16(c.PC)
			c.PC = addr
			return 6, nil
		}
		return 3, nil
	case 0xC5: // PUSH BC
		c.push16(c.BC())
		return 4, nil
	case 0xC6: // ADD A,d8
		c.aluOp(0, c.fetch8())
		return 2, nil
	case 0xC7: // RST 00H
		c.rst(0x00)
		return 4, nil
	case 0xC8: // RET Z
		if c.cond(1) {
			c.PC = c.pop16()
			return 5, nil
		}
		return 2, nil
	case 0xC9: // RET
		c.PC = c.pop16()
		return 4, nil
	case 0xCA: // JP Z,a16
		addr := c.fetch16()
		if c.cond(1) {
			c.PC = addr
			return 4, nil
		}
		return 3, nil
	case 0xCB: // PREFIX CB
		cbOp := c.fetch8()
		return c.dispatchCB(cbOp, pc)
	case 0xCC: // CALL Z,a16
		addr := c.fetch16()
		if c.cond(1) {
			c.push16(c.PC)
			c.PC = addr
			return 6, nil
		}
		return 3, nil
	case 0xCD: // CALL a16
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 6, nil
	case 0xCE: // ADC A,d8
		c.aluOp(1, c.fetch8())
		return 2, nil
	case 0xCF: // RST 08H
		c.rst(0x08)
		return 4, nil

	case 0xD0: // RET NC
		if c.cond(2) {
			c.PC = c.pop16()
			return 5, nil
		}
		return 2, nil
	case 0xD1: // POP DE
		c.SetDE(c.pop16())
		return 3, nil
	case 0xD2: // JP NC,a16
		addr := c.fetch16()
		if c.cond(2) {
			c.PC = addr
			return 4, nil
		}
		return 3, nil
	case 0xD4: // CALL NC,a16
		addr := c.fetch16()
		if c.cond(2) {
			c.push16(c.PC)
			c.PC = addr
			return 6, nil
		}
		return 3, nil
	case 0xD5: // PUSH DE
		c.push16(c.DE())
		return 4, nil
	case 0xD6: // SUB d8
		c.aluOp(2, c.fetch8())
		return 2, nil
	case 0xD7: // RST 10H
		c.rst(0x10)
		return 4, nil
	case 0xD8: // RET C
		if c.cond(3) {
			c.PC = c.pop16()
			return 5, nil
		}
		return 2, nil
	case 0xD9: // RETI
		c.PC = c.pop16()
		c.ime = true
		c.imePending = 0
		return 4, nil
	case 0xDA: // JP C,a16
		addr := c.fetch16()
		if c.cond(3) {
			c.PC = addr
			return 4, nil
		}
		return 3, nil
	case 0xDC: // CALL C,a16
		addr := c.fetch16()
		if c.cond(3) {
			c.push16(c.PC)
			c.PC = addr
			return 6, nil
		}
		return 3, nil
	case 0xDE: // SBC A,d8
		c.aluOp(3, c.fetch8())
		return 2, nil
	case 0xDF: // RST 18H
		c.rst(0x18)
		return 4, nil

	case 0xE0: // LDH (a8),A
		addr := uint16(0xFF00) + uint16(c.fetch8())
		c.write8(addr, c.A)
		return 3, nil
	case 0xE1: // POP HL
		c.SetHL(c.pop16())
		return 3, nil
	case 0xE2: // LD (C),A
		c.write8(uint16(0xFF00)+uint16(c.C), c.A)
		return 2, nil
	case 0xE5: // PUSH HL
		c.push16(c.HL())
		return 4, nil
	case 0xE6: // AND d8
		c.aluOp(4, c.fetch8())
		return 2, nil
	case 0xE7: // RST 20H
		c.rst(0x20)
		return 4, nil
	case 0xE8: // ADD SP,r8
		e8 := c.fetch8()
		v, f := addSPSigned(c.SP, e8)
		c.SP = v
		c.applyFlags(f, true, true, true, true)
		return 4, nil
	case 0xE9: // JP (HL)
		c.PC = c.HL()
		return 1, nil
	case 0xEA: // LD (a16),A
		c.write8(c.fetch16(), c.A)
		return 4, nil
	case 0xEE: // XOR d8
		c.aluOp(5, c.fetch8())
		return 2, nil
	case 0xEF: // RST 28H
		c.rst(0x28)
		return 4, nil

	case 0xF0: // LDH A,(a8)
		addr := uint16(0xFF00) + uint16(c.fetch8())
		c.A = c.read8(addr)
		return 3, nil
	case 0xF1: // POP AF
		c.SetAF(c.pop16())
		return 3, nil
	case 0xF2: // LD A,(C)
		c.A = c.read8(uint16(0xFF00) + uint16(c.C))
		return 2, nil
	case 0xF3: // DI
		c.ime = false
		c.imePending = 0
		return 1, nil
	case 0xF5: // PUSH AF
		c.push16(c.AF())
		return 4, nil
	case 0xF6: // OR d8
		c.aluOp(6, c.fetch8())
		return 2, nil
	case 0xF7: // RST 30H
		c.rst(0x30)
		return 4, nil
	case 0xF8: // LD HL,SP+r8
		e8 := c.fetch8()
		v, f := addSPSigned(c.SP, e8)
		c.SetHL(v)
		c.applyFlags(f, true, true, true, true)
		return 3, nil
	case 0xF9: // LD SP,HL
		c.SP = c.HL()
		return 2, nil
	case 0xFA: // LD A,(a16)
		c.A = c.read8(c.fetch16())
		return 4, nil
	case 0xFB: // EI
		// Takes effect after the *next* instruction; see Step's
		// imePending handling.
		c.imePending = 2
		return 1, nil
	case 0xFE: // CP d8
		c.aluOp(7, c.fetch8())
		return 2, nil
	case 0xFF: // RST 38H
		c.rst(0x38)
		return 4, nil
	}

	return 0, IllegalOpcode{Opcode: op, PC: pc}
}

// aluOp applies one of the eight ADD/ADC/SUB/SBC/AND/XOR/OR/CP operations
// (selected the same way the 0x80-0xBF block and the d8-immediate forms
// both select it) against A and operand v.
func (c *CPU) aluOp(group uint8, v uint8) {
	switch group & 0x7 {
	case 0: // ADD
		r, f := add8(c.A, v)
		c.A = r
		c.applyAllFlags(f)
	case 1: // ADC
		r, f := adc8(c.A, v, c.flag(FlagC))
		c.A = r
		c.applyAllFlags(f)
	case 2: // SUB
		r, f := sub8(c.A, v)
		c.A = r
		c.applyAllFlags(f)
	case 3: // SBC
		r, f := sbc8(c.A, v, c.flag(FlagC))
		c.A = r
		c.applyAllFlags(f)
	case 4: // AND
		r, f := and8(c.A, v)
		c.A = r
		c.applyAllFlags(f)
	case 5: // XOR
		r, f := xor8(c.A, v)
		c.A = r
		c.applyAllFlags(f)
	case 6: // OR
		r, f := or8(c.A, v)
		c.A = r
		c.applyAllFlags(f)
	case 7: // CP
		f := cp8(c.A, v)
		c.applyAllFlags(f)
	}
}

// jr performs the common tail of every JR instruction: fetch the signed
// e8 offset and add it (sign-extended) to PC, which at this point already
// points past the e8 byte. Treating e8 as unsigned is the classic bug
// this must not reproduce.
func (c *CPU) jr() {
	e8 := c.fetch8()
	offset := int16(int8(e8))
	c.PC = uint16(int32(c.PC) + int32(offset))
}

// rst pushes the current PC and jumps to one of the eight fixed RST
// vectors.
func (c *CPU) rst(vector uint16) {
	c.push16(c.PC)
	c.PC = vector
}

// iHALT implements the HALT opcode's entry into the paused state,
// including the well-known HALT bug: if IME=0 but an interrupt is
// already pending at the moment HALT executes, the CPU does not actually
// halt - it immediately falls through, but the *next* opcode fetch fails
// to advance PC, so that opcode byte is executed twice.
func (c *CPU) iHALT() int {
	_, pending := c.pendingInterrupt()
	if !c.ime && pending {
		c.haltBug = true
		return 1
	}
	c.halted = true
	return 1
}
