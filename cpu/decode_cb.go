package cpu

// dispatchCB decodes and executes a single CB-prefixed opcode. The CB
// page is a clean 4x4 grid: bits 7:6 select the operation family, bits
// 5:3 select either the rotate/shift variant (family 0) or the bit index
// (families 1-3 - BIT/RES/SET), and bits 2:0 select the register (or
// (HL)) the same way the base page's LD r,r' block does.
//
// The returned cycle count already includes the one M-cycle spent
// fetching this CB opcode byte itself, per the timing table: 2 for a
// register target, 3 for BIT b,(HL), 4 for RES/SET/rotate b,(HL).
func (c *CPU) dispatchCB(op uint8, pc uint16) (int, error) {
	family := op >> 6
	bit := (op >> 3) & 0x7
	reg := op & 0x7
	indirect := reg == regHLIndirect

	switch family {
	case 0: // rotate/shift family, selected by bit (reused as the op index here)
		v := c.getReg8(reg)
		var r uint8
		var f Flags
		switch bit {
		case 0:
			r, f = rlc(v)
		case 1:
			r, f = rrc(v)
		case 2:
			r, f = rl(v, c.flag(FlagC))
		case 3:
			r, f = rr(v, c.flag(FlagC))
		case 4:
			r, f = sla(v)
		case 5:
			r, f = sra(v)
		case 6:
			r, f = swap(v)
		default: // 7: SRL
			r, f = srl(v)
		}
		c.setReg8(reg, r)
		c.applyAllFlags(f)
		if indirect {
			return 4, nil
		}
		return 2, nil

	case 1: // BIT b,r
		v := c.getReg8(reg)
		f := bitTest(v, bit)
		c.applyFlags(f, true, true, true, false)
		if indirect {
			return 3, nil
		}
		return 2, nil

	case 2: // RES b,r
		v := c.getReg8(reg)
		c.setReg8(reg, resBit(v, bit))
		if indirect {
			return 4, nil
		}
		return 2, nil

	default: // 3: SET b,r
		v := c.getReg8(reg)
		c.setReg8(reg, setBit(v, bit))
		if indirect {
			return 4, nil
		}
		return 2, nil
	}
}
