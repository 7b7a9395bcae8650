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
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/cpu/execution"
	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher64/hardware/cpu/registers"
	"github.com/jetsetilly/gopher64/logger"
)

// Sentinal error patterns.
const (
	UnsupportedOpcode = "cpu: unsupported opcode (%#02x) at (%#04x)"
	Killed            = "cpu: killed by opcode (%#02x) at (%#04x)"
)

// Addresses of the interrupt vectors.
const (
	NMIVector   = 0xfffa
	ResetVector = 0xfffc
	IRQVector   = 0xfffe
)

// base address of the stack
const stackPage = 0x0100

// Memory is the CPU's view of the system bus. Every access takes a single
// cycle.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// CPU implements the 6510 found in the C64. Register logic is implemented by
// the Register type in the registers sub-package.
type CPU struct {
	perm logger.Permission

	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.Register
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8 registers.Register

	mem          Memory
	instructions []*instructions.Definition

	// cycleCallback is called after every bus access
	cycleCallback func() error

	// controls whether the CPU can read from the bus. the VIC pulls the line
	// low when it needs the bus. writes are not affected
	RdyFlg bool

	// level of the IRQ line
	irq bool

	// an edge on the NMI line has been seen and not yet serviced
	nmiPending bool

	// the interrupt disable flag as it was when interrupts were last polled.
	// CLI, SEI and PLP change the flag too late for the poll at the end of
	// their own execution
	pollDisable bool

	// last result. the address field is guaranteed to be always valid except
	// when the CPU has just been reset
	LastResult execution.Result

	// the CPU has encountered a JAM instruction. requires a Reset()
	Killed bool
}

// NewCPU is the preferred method of initialisation for the CPU structure. The
// CPU must be Reset() before use.
func NewCPU(perm logger.Permission, mem Memory) *CPU {
	return &CPU{
		perm:         perm,
		mem:          mem,
		PC:           registers.NewProgramCounter(0),
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewRegister(0, "SP"),
		Status:       registers.NewStatusRegister(),
		acc8:         registers.NewRegister(0, "accumulator"),
		instructions: instructions.GetDefinitions(),
	}
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers and loads the PC with the reset vector.
// The reset vector is read immediately, without any cycles being consumed.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Killed = false

	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)

	// the reset sequence decrements the stack pointer three times without
	// writing to the stack
	mc.SP.Load(0xfd)

	mc.Status.Reset()
	mc.Status.InterruptDisable = true
	mc.pollDisable = true

	mc.irq = false
	mc.nmiPending = false
	mc.RdyFlg = true
	mc.cycleCallback = nil

	lo := mc.mem.Read(ResetVector)
	hi := mc.mem.Read(ResetVector + 1)
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
}

// LoadPC loads the contents of directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

// SetIRQ sets the level of the IRQ line. The IRQ is serviced at the next
// instruction boundary for as long as the line is held and interrupts are
// enabled.
func (mc *CPU) SetIRQ(level bool) {
	mc.irq = level
}

// TriggerNMI signals an edge on the NMI line. The NMI is serviced at the
// next instruction boundary.
func (mc *CPU) TriggerNMI() {
	mc.nmiPending = true
}

// read8Bit returns 8bit value from the specified address. the CPU is stalled
// for as long as the RDY flag is false
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	for !mc.RdyFlg {
		mc.LastResult.Stalls++
		err := mc.cycleCallback()
		if err != nil {
			return 0, err
		}
	}

	val := mc.mem.Read(address)

	// +1 cycle
	mc.LastResult.Cycles++
	err := mc.cycleCallback()
	if err != nil {
		return 0, err
	}

	return val, nil
}

// write8Bit writes 8 bits to the specified address. writes are never stalled
//
// side-effects:
//   - calls cycleCallback after memory write
func (mc *CPU) write8Bit(address uint16, value uint8) error {
	mc.mem.Write(address, value)

	// +1 cycle
	mc.LastResult.Cycles++
	return mc.cycleCallback()
}

// read 8bits from the PC location has a variety of additional side-effects
// depending on context.
type read8BitPCeffect int

const (
	brk read8BitPCeffect = iota
	newOpcode
	loNibble
	hiNibble
)

// read8BitPC reads 8 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback at end of function
//   - updates LastResult.ByteCount
//   - additional side effect updates LastResult as appropriate
func (mc *CPU) read8BitPC(effect read8BitPCeffect) error {
	v, err := mc.read8Bit(mc.PC.Address())

	// ignoring if program counter cycling
	mc.PC.Add(1)

	// bump the number of bytes read during instruction decode
	mc.LastResult.ByteCount++

	switch effect {
	case brk:
		// the BRK instruction causes the PC to advance by two but we don't
		// want to record that the padding byte has been read
		mc.LastResult.ByteCount--

	case newOpcode:
		mc.LastResult.Defn = mc.instructions[v]

	case loNibble:
		mc.LastResult.InstructionData = uint16(v)

	case hiNibble:
		mc.LastResult.InstructionData = (uint16(v) << 8) | mc.LastResult.InstructionData
	}

	return err
}

// read16BitPC reads 16 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback after each 8 bit read
//   - updates LastResult.ByteCount
//   - updates InstructionData field, once before each call to cycleCallback
func (mc *CPU) read16BitPC() error {
	err := mc.read8BitPC(loNibble)
	if err != nil {
		return err
	}
	return mc.read8BitPC(hiNibble)
}

// read16BitZeroPage reads a pointer from the zero page. the pointer wraps
// around within the zero page
//
// side-effects:
//   - calls cycleCallback after each 8bit read
func (mc *CPU) read16BitZeroPage(address uint8) (uint16, error) {
	lo, err := mc.read8Bit(uint16(address))
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(uint16(address + 1))
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// read16Bit returns 16bit value from the specified address
//
// side-effects:
//   - calls cycleCallback after each 8bit read
func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(address + 1)
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// push writes value to the stack and decrements the stack pointer
func (mc *CPU) push(value uint8) error {
	err := mc.write8Bit(stackPage|mc.SP.Address(), value)
	mc.SP.Add(0xff, false)
	return err
}

// pull increments the stack pointer and reads the value from the stack
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Add(1, false)
	return mc.read8Bit(stackPage | mc.SP.Address())
}

// the stack pointer is incremented in a cycle of its own. the value read is
// discarded
func (mc *CPU) phantomStackRead() error {
	_, err := mc.read8Bit(stackPage | mc.SP.Address())
	return err
}

func (mc *CPU) branch(flag bool, offset uint16) error {
	// note branching result
	mc.LastResult.BranchSuccess = flag

	if !flag {
		return nil
	}

	// phantom read of the next opcode
	// +1 cycle
	_, err := mc.read8Bit(mc.PC.Address())
	if err != nil {
		return err
	}

	// the offset is a signed 8bit value
	target := mc.PC.Address() + uint16(int8(offset))

	// check to see whether branching has crossed a page
	if target&0xff00 != mc.PC.Address()&0xff00 {
		mc.LastResult.PageFault = true

		// phantom read from the address before the MSB has been corrected
		// +1 cycle
		_, err = mc.read8Bit(mc.PC.Address()&0xff00 | target&0x00ff)
		if err != nil {
			return err
		}
	}

	mc.PC.Load(target)

	return nil
}

// interrupt performs the seven cycle interrupt sequence. the sequence is the
// same as the BRK instruction except that the PC is not advanced and the break
// bit is not set in the pushed status register
func (mc *CPU) interrupt(name string, vector uint16) error {
	mc.LastResult.Interrupt = name

	// the opcode of the next instruction is read and discarded twice
	// +2 cycles
	for range 2 {
		_, err := mc.read8Bit(mc.PC.Address())
		if err != nil {
			return err
		}
	}

	// +3 cycles
	err := mc.push(mc.PC.Hi())
	if err != nil {
		return err
	}
	err = mc.push(mc.PC.Lo())
	if err != nil {
		return err
	}
	err = mc.push(mc.Status.Value())
	if err != nil {
		return err
	}

	mc.Status.InterruptDisable = true

	// +2 cycles
	address, err := mc.read16Bit(vector)
	if err != nil {
		return err
	}
	mc.PC.Load(address)

	// the first instruction of the handler is always executed
	mc.pollDisable = true
	mc.LastResult.Final = true

	return nil
}

// NilCycleCallback can be provided as an argument to ExecuteInstruction().
// It's a convenience do-nothing function.
func NilCycleCallback() error {
	return nil
}
