// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher64/hardware/cpu/registers"
)

// operand returns the register to use for shift and rotate instructions. the
// accumulator for implied addressing and the scratch register loaded with
// value otherwise
func (mc *CPU) operand(defn *instructions.Definition, value uint8) *registers.Register {
	if defn.Effect == instructions.RMW {
		mc.acc8.Load(value)
		return &mc.acc8
	}
	return &mc.A
}

// operate performs the instruction on the data. the returned value is the
// value to be written back to memory by RMW instructions
func (mc *CPU) operate(defn *instructions.Definition, address uint16, value uint8) (uint8, error) {
	var err error

	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		// +1 cycle
		err = mc.push(mc.A.Value())

	case instructions.Pla:
		// +1 cycle
		err = mc.phantomStackRead()
		if err != nil {
			return value, err
		}

		// +1 cycle
		value, err = mc.pull()
		mc.A.Load(value)
		mc.setNZ(mc.A)

	case instructions.Php:
		// the pushed status register always has the break bit set
		// +1 cycle
		err = mc.push(mc.Status.Value() | registers.BreakBit)

	case instructions.Plp:
		// +1 cycle
		err = mc.phantomStackRead()
		if err != nil {
			return value, err
		}

		// +1 cycle
		value, err = mc.pull()
		mc.Status.Load(value)

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.setNZ(mc.A)

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.setNZ(mc.X)

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.setNZ(mc.Y)

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.setNZ(mc.A)

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.setNZ(mc.X)

	case instructions.Txs:
		// does not affect status register
		mc.SP.Load(mc.X.Value())

	case instructions.Eor:
		mc.A.EOR(value)
		mc.setNZ(mc.A)

	case instructions.Ora:
		mc.A.ORA(value)
		mc.setNZ(mc.A)

	case instructions.And:
		mc.A.AND(value)
		mc.setNZ(mc.A)

	case instructions.Lda:
		mc.A.Load(value)
		mc.setNZ(mc.A)

	case instructions.Ldx:
		mc.X.Load(value)
		mc.setNZ(mc.X)

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.setNZ(mc.Y)

	case instructions.Sta:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value())

	case instructions.Stx:
		// +1 cycle
		err = mc.write8Bit(address, mc.X.Value())

	case instructions.Sty:
		// +1 cycle
		err = mc.write8Bit(address, mc.Y.Value())

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.setNZ(mc.X)

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.setNZ(mc.Y)

	case instructions.Dex:
		mc.X.Add(0xff, false)
		mc.setNZ(mc.X)

	case instructions.Dey:
		mc.Y.Add(0xff, false)
		mc.setNZ(mc.Y)

	case instructions.Asl:
		r := mc.operand(defn, value)
		mc.Status.Carry = r.ASL()
		mc.setNZ(*r)
		value = r.Value()

	case instructions.Lsr:
		r := mc.operand(defn, value)
		mc.Status.Carry = r.LSR()
		mc.setNZ(*r)
		value = r.Value()

	case instructions.Rol:
		r := mc.operand(defn, value)
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		mc.setNZ(*r)
		value = r.Value()

	case instructions.Ror:
		r := mc.operand(defn, value)
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		mc.setNZ(*r)
		value = r.Value()

	case instructions.Adc:
		mc.adc(value)

	case instructions.Sbc, instructions.SBC:
		mc.sbc(value)

	case instructions.Inc:
		mc.acc8.Load(value)
		mc.acc8.Add(1, false)
		mc.setNZ(mc.acc8)
		value = mc.acc8.Value()

	case instructions.Dec:
		mc.acc8.Load(value)
		mc.acc8.Add(0xff, false)
		mc.setNZ(mc.acc8)
		value = mc.acc8.Value()

	case instructions.Cmp:
		mc.compare(mc.A, value)

	case instructions.Cpx:
		mc.compare(mc.X, value)

	case instructions.Cpy:
		mc.compare(mc.Y, value)

	case instructions.Bit:
		mc.acc8.Load(value)
		mc.Status.Sign = mc.acc8.IsNegative()
		mc.Status.Overflow = mc.acc8.IsBitV()
		mc.acc8.AND(mc.A.Value())
		mc.Status.Zero = mc.acc8.IsZero()

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		err = mc.branch(!mc.Status.Carry, address)

	case instructions.Bcs:
		err = mc.branch(mc.Status.Carry, address)

	case instructions.Beq:
		err = mc.branch(mc.Status.Zero, address)

	case instructions.Bmi:
		err = mc.branch(mc.Status.Sign, address)

	case instructions.Bne:
		err = mc.branch(!mc.Status.Zero, address)

	case instructions.Bpl:
		err = mc.branch(!mc.Status.Sign, address)

	case instructions.Bvc:
		err = mc.branch(!mc.Status.Overflow, address)

	case instructions.Bvs:
		err = mc.branch(mc.Status.Overflow, address)

	case instructions.Jsr:
		err = mc.jsr()

	case instructions.Rts:
		// +1 cycle
		err = mc.phantomStackRead()
		if err != nil {
			return value, err
		}

		// +2 cycles
		var lo, hi uint8
		lo, err = mc.pull()
		if err != nil {
			return value, err
		}
		hi, err = mc.pull()
		if err != nil {
			return value, err
		}
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

		// the PC is incremented in a cycle of its own
		// +1 cycle
		_, err = mc.read8Bit(mc.PC.Address())
		mc.PC.Add(1)

	case instructions.Brk:
		// +3 cycles
		err = mc.push(mc.PC.Hi())
		if err != nil {
			return value, err
		}
		err = mc.push(mc.PC.Lo())
		if err != nil {
			return value, err
		}
		err = mc.push(mc.Status.Value() | registers.BreakBit)
		if err != nil {
			return value, err
		}

		mc.Status.InterruptDisable = true

		// +2 cycles
		var brkAddress uint16
		brkAddress, err = mc.read16Bit(IRQVector)
		mc.PC.Load(brkAddress)

	case instructions.Rti:
		// +1 cycle
		err = mc.phantomStackRead()
		if err != nil {
			return value, err
		}

		// pull status register (same effect as PLP)
		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return value, err
		}
		mc.Status.Load(value)

		// pull program counter. unlike RTS there is no need to add one to
		// the return address
		// +2 cycles
		var lo, hi uint8
		lo, err = mc.pull()
		if err != nil {
			return value, err
		}
		hi, err = mc.pull()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	// undocumented instructions

	case instructions.NOP:
		// does nothing but the operand is read as normal

	case instructions.LAX:
		mc.A.Load(value)
		mc.X.Load(value)
		mc.setNZ(mc.A)

	case instructions.SAX:
		mc.acc8.Load(mc.A.Value())
		mc.acc8.AND(mc.X.Value())

		// +1 cycle
		err = mc.write8Bit(address, mc.acc8.Value())

	case instructions.DCP:
		// decrease value...
		mc.acc8.Load(value)
		mc.acc8.Add(0xff, false)
		value = mc.acc8.Value()

		// ... and compare with the A register
		mc.compare(mc.A, value)

	case instructions.ISC:
		// increase value...
		mc.acc8.Load(value)
		mc.acc8.Add(1, false)
		value = mc.acc8.Value()

		// ... and subtract from the A register
		mc.sbc(value)

	case instructions.SLO:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.ASL()
		value = mc.acc8.Value()
		mc.A.ORA(value)
		mc.setNZ(mc.A)

	case instructions.RLA:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.ROL(mc.Status.Carry)
		value = mc.acc8.Value()
		mc.A.AND(value)
		mc.setNZ(mc.A)

	case instructions.SRE:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.LSR()
		value = mc.acc8.Value()
		mc.A.EOR(value)
		mc.setNZ(mc.A)

	case instructions.RRA:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.ROR(mc.Status.Carry)
		value = mc.acc8.Value()
		mc.adc(value)

	case instructions.ANC:
		mc.A.AND(value)
		mc.setNZ(mc.A)
		mc.Status.Carry = mc.Status.Sign

	case instructions.ALR:
		mc.A.AND(value)
		mc.Status.Carry = mc.A.LSR()
		mc.setNZ(mc.A)

	case instructions.ARR:
		mc.arr(value)

	case instructions.SBX:
		// the subtraction behaves like CMP as far as the carry flag is
		// concerned and decimal mode is ignored
		mc.acc8.Load(mc.A.Value())
		mc.acc8.AND(mc.X.Value())
		mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
		mc.X.Load(mc.acc8.Value())
		mc.setNZ(mc.X)

	case instructions.JAM:
		mc.Killed = true
	}

	return value, err
}

// jsr reads the operand of a JSR instruction around the pushing of the return
// address
func (mc *CPU) jsr() error {
	// +1 cycle
	err := mc.read8BitPC(loNibble)
	if err != nil {
		return err
	}

	// the current value of the PC is now the address of the last byte of
	// the instruction. RTS increments the PC when it is pulled from the stack

	// +1 cycle
	err = mc.phantomStackRead()
	if err != nil {
		return err
	}

	// +2 cycles
	err = mc.push(mc.PC.Hi())
	if err != nil {
		return err
	}
	err = mc.push(mc.PC.Lo())
	if err != nil {
		return err
	}

	// +1 cycle
	err = mc.read8BitPC(hiNibble)
	if err != nil {
		return err
	}

	mc.PC.Load(mc.LastResult.InstructionData)

	return nil
}

// arr is AND followed by ROR of the accumulator. the flags are set in an
// unusual way and decimal mode adds its own corrections
func (mc *CPU) arr(value uint8) {
	data := mc.A.Value() & value

	mc.A.Load(data)
	carry := mc.Status.Carry
	mc.A.ROR(carry)
	result := mc.A.Value()

	if !mc.Status.DecimalMode {
		mc.setNZ(mc.A)
		mc.Status.Carry = result&0x40 == 0x40
		mc.Status.Overflow = (result&0x40)^((result&0x20)<<1) != 0
		return
	}

	mc.Status.Sign = carry
	mc.Status.Zero = result == 0
	mc.Status.Overflow = (data^result)&0x40 == 0x40

	if data&0x0f+data&0x01 > 0x05 {
		result = result&0xf0 | (result+0x06)&0x0f
	}

	mc.Status.Carry = (uint16(data)+uint16(data&0x10))&0x1f0 > 0x50
	if mc.Status.Carry {
		result += 0x60
	}

	mc.A.Load(result)
}
