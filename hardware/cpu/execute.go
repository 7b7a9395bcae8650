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
	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher64/hardware/cpu/registers"
	"github.com/jetsetilly/gopher64/logger"
)

// ExecuteInstruction steps CPU forward one instruction. The basic process when
// executing an instruction is this:
//
//  1. service any pending interrupt instead of executing an instruction
//  2. read opcode and look up instruction definition
//  3. read operands (if any) according to the addressing mode of the instruction
//  4. using the operator as a guide, perform the instruction on the data
//
// All instructions take at least 2 cycles. After each bus access, including
// accesses whose result is discarded, the cycleCallback() function is run,
// thereby allowing the rest of the C64 hardware to operate.
//
// The cycleCallback argument should *never* be nil. Use the NilCycleCallback()
// function in this package if you want a nil effect.
//
// An unsupported opcode causes a panic with the UnsupportedOpcode pattern. A
// JAM opcode kills the CPU and an error with the Killed pattern is returned.
// The error is returned by every subsequent call until the CPU is Reset().
func (mc *CPU) ExecuteInstruction(cycleCallback func() error) error {
	if mc.Killed {
		return curated.Errorf(Killed, mc.LastResult.Defn.OpCode, mc.LastResult.Address)
	}

	// update cycle callback
	mc.cycleCallback = cycleCallback

	// prepare new round of results
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	// interrupts are polled at the instruction boundary. NMI has priority
	if mc.nmiPending {
		mc.nmiPending = false
		return mc.interrupt("NMI", NMIVector)
	}
	if mc.irq && !mc.pollDisable {
		return mc.interrupt("IRQ", IRQVector)
	}

	// the interrupt disable flag before the instruction is executed
	disableBefore := mc.Status.InterruptDisable

	// read next instruction
	// +1 cycle
	err := mc.read8BitPC(newOpcode)
	if err != nil {
		return err
	}

	defn := mc.LastResult.Defn
	if defn.Unsupported() {
		panic(curated.Errorf(UnsupportedOpcode, defn.OpCode, mc.LastResult.Address))
	}

	// address is the actual address to use to access memory (after any
	// indexing has taken place)
	var address uint16

	// value is read from the program for immediate/relative mode, and from
	// memory for all other modes except implied. for read-modify-write
	// instructions the value will change during execution and be written back
	// to memory
	var value uint8

	// get address to use when reading/writing from/to memory (note that in the
	// case of immediate addressing, we are actually getting the value to use
	// in the instruction, not the address)
	switch defn.AddressingMode {
	case instructions.Implied:
		if defn.Operator == instructions.Brk {
			// BRK is unusual in that it increases the PC by two bytes despite
			// being an implied addressing instruction
			// +1 cycle
			err = mc.read8BitPC(brk)
		} else {
			// phantom read of the next byte without incrementing the PC
			// +1 cycle
			_, err = mc.read8Bit(mc.PC.Address())
		}
		if err != nil {
			return err
		}

	case instructions.Immediate:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		value = uint8(mc.LastResult.InstructionData)

	case instructions.Relative:
		// relative addressing is only used for branch instructions. most of
		// the cycles for this addressing mode are consumed in branch()
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Absolute:
		// for JSR, addresses are read slightly differently so we defer this
		// part of the operation to the operator switch below
		if defn.Effect != instructions.Subroutine {
			// +2 cycles
			err = mc.read16BitPC()
			if err != nil {
				return err
			}
			address = mc.LastResult.InstructionData
		}

	case instructions.ZeroPage:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Indirect:
		// indirect addressing (without indexing) is only used for the JMP
		// instruction

		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		// the high byte of the address is read from the same page as the
		// low byte
		if indirectAddress&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = "indirect addressing bug (JMP bug)"
		}

		// +2 cycles
		var lo, hi uint8
		lo, err = mc.read8Bit(indirectAddress)
		if err != nil {
			return err
		}
		hi, err = mc.read8Bit(indirectAddress&0xff00 | uint16(uint8(indirectAddress)+1))
		if err != nil {
			return err
		}
		address = (uint16(hi) << 8) | uint16(lo)

	case instructions.IndexedIndirect: // x indexing
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		indirectAddress := uint8(mc.LastResult.InstructionData)

		// phantom read before adjusting the index
		// +1 cycle
		_, err = mc.read8Bit(uint16(indirectAddress))
		if err != nil {
			return err
		}

		// the indexed address never leaves the zero page
		// +2 cycles
		address, err = mc.read16BitZeroPage(indirectAddress + mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.IndirectIndexed: // y indexing
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}

		// +2 cycles
		var indexedAddress uint16
		indexedAddress, err = mc.read16BitZeroPage(uint8(mc.LastResult.InstructionData))
		if err != nil {
			return err
		}

		address, err = mc.indexed(defn, indexedAddress, mc.Y.Value())
		if err != nil {
			return err
		}

	case instructions.AbsoluteIndexedX:
		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}

		address, err = mc.indexed(defn, mc.LastResult.InstructionData, mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.AbsoluteIndexedY:
		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}

		address, err = mc.indexed(defn, mc.LastResult.InstructionData, mc.Y.Value())
		if err != nil {
			return err
		}

	case instructions.ZeroPageIndexedX:
		address, err = mc.zeroPageIndexed(mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.ZeroPageIndexedY:
		address, err = mc.zeroPageIndexed(mc.Y.Value())
		if err != nil {
			return err
		}
	}

	// read value from memory using address found in AddressingMode switch
	// above only when:
	// a) addressing mode is not 'implied' or 'immediate'
	//	- for immediate modes, we already have the value in lieu of an address
	//  - for implied modes, we don't need a value
	// b) instruction is 'Read' OR 'RMW'
	//  - for write modes, we only use the address to write a value we already have
	//  - for flow modes, the use of the address is very specific
	if !(defn.AddressingMode == instructions.Implied || defn.AddressingMode == instructions.Immediate) {
		switch defn.Effect {
		case instructions.Read:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}

		case instructions.RMW:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}

			// the unmodified value is written back while the new value is
			// being calculated
			// +1 cycle
			err = mc.write8Bit(address, value)
			if err != nil {
				return err
			}
		}
	}

	// actually perform instruction based on operator group
	value, err = mc.operate(defn, address, value)
	if err != nil {
		return err
	}

	// for RMW instructions: write altered value back to memory
	if defn.Effect == instructions.RMW {
		// +1 cycle
		err = mc.write8Bit(address, value)
		if err != nil {
			return err
		}
	}

	// CLI, SEI and PLP affect interrupts only after the next instruction
	switch defn.Operator {
	case instructions.Cli, instructions.Sei, instructions.Plp:
		mc.pollDisable = disableBefore
	default:
		mc.pollDisable = mc.Status.InterruptDisable
	}

	// finalise result
	mc.LastResult.Final = true

	if mc.Killed {
		logger.Logf(mc.perm, "CPU", "JAM instruction (%#02x) at (%#04x)", defn.OpCode, mc.LastResult.Address)
		return curated.Errorf(Killed, defn.OpCode, mc.LastResult.Address)
	}

	return nil
}

// indexed adds the index to the base address. the addition to the low byte
// takes one cycle, which is only spent if there is a carry into the high byte
// or if the instruction writes to memory
func (mc *CPU) indexed(defn *instructions.Definition, base uint16, index uint8) (uint16, error) {
	address := base + uint16(index)
	crossed := address&0xff00 != base&0xff00

	mc.LastResult.PageFault = defn.PageSensitive && crossed

	if crossed || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
		// phantom read from the address before the MSB has been corrected.
		// always happens for Write and RMW
		// +1 cycle
		_, err := mc.read8Bit(base&0xff00 | address&0x00ff)
		if err != nil {
			return 0, err
		}
	}

	return address, nil
}

// zeroPageIndexed reads the zero page operand and adds the index to it. the
// indexed address never leaves the zero page
func (mc *CPU) zeroPageIndexed(index uint8) (uint16, error) {
	// +1 cycle
	err := mc.read8BitPC(loNibble)
	if err != nil {
		return 0, err
	}

	// phantom read from base address before index adjustment
	// +1 cycle
	_, err = mc.read8Bit(mc.LastResult.InstructionData)
	if err != nil {
		return 0, err
	}

	indirectAddress := uint8(mc.LastResult.InstructionData)
	if uint16(indirectAddress)+uint16(index) > 0xff {
		mc.LastResult.CPUBug = "zero page index bug"
	}

	return uint16(indirectAddress + index), nil
}

// setNZ sets the zero and sign flags from the register
func (mc *CPU) setNZ(r registers.Register) {
	mc.Status.Zero = r.IsZero()
	mc.Status.Sign = r.IsNegative()
}

// adc adds value to the accumulator with carry, honouring decimal mode
func (mc *CPU) adc(value uint8) {
	if mc.Status.DecimalMode {
		mc.Status.Carry,
			mc.Status.Zero,
			mc.Status.Overflow,
			mc.Status.Sign = mc.A.AddDecimal(value, mc.Status.Carry)
	} else {
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.setNZ(mc.A)
	}
}

// sbc subtracts value from the accumulator with borrow, honouring decimal mode
func (mc *CPU) sbc(value uint8) {
	if mc.Status.DecimalMode {
		mc.Status.Carry,
			mc.Status.Zero,
			mc.Status.Overflow,
			mc.Status.Sign = mc.A.SubtractDecimal(value, mc.Status.Carry)
	} else {
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.setNZ(mc.A)
	}
}

// compare sets the flags as though value was subtracted from the register.
// maybe surprisingly, comparisons are binary even if decimal mode is active
func (mc *CPU) compare(r registers.Register, value uint8) {
	mc.acc8.Load(r.Value())
	mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
	mc.setNZ(mc.acc8)
}
