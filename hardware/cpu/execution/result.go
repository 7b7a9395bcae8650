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

package execution

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
)

// Result records the state/result of each instruction executed on the CPU.
// Including the address it was read from, a reference to the instruction
// definition, and other execution details.
//
// The Result type is updated every cycle during the execution of the emulated
// CPU. As the execution continues, more information is acquired and detail
// added to the Result.
type Result struct {
	// address of the instruction. for interrupt sequences this is the
	// address of the instruction that would otherwise have been executed
	Address uint16

	// nil when the result is for an interrupt sequence
	Defn *instructions.Definition

	// the name of the interrupt sequence (IRQ or NMI). empty for
	// instructions
	Interrupt string

	// the number of bytes read during instruction decode
	ByteCount int

	// the actual number of cycles taken by the instruction. usually the same
	// as Defn.Cycles but in the case of page faults and branches, this value
	// may be different. stall cycles are not included
	Cycles int

	// number of cycles the CPU was stalled by the RDY line
	Stalls int

	// the actual data read from the instruction stream. the operand of the
	// instruction once Final is true
	InstructionData uint16

	// whether an extra cycle was required because of 8 bit adder overflow
	PageFault bool

	// whether a known buggy code path (in the emulated CPU) was triggered
	CPUBug string

	// whether branch instruction test passed (ie. branched) or not. testing
	// of this field should be used in conjunction with Defn.IsBranch()
	BranchSuccess bool

	// whether this data has been finalised. some of the fields in this
	// struct will be undefined if Final is false
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

// String returns the instruction in the form used by the instruction trace.
func (r Result) String() string {
	if r.Interrupt != "" {
		return fmt.Sprintf("%04x  %-9s %s", r.Address, "", r.Interrupt)
	}

	if r.Defn == nil {
		return fmt.Sprintf("%04x  ???", r.Address)
	}

	// raw bytes of the instruction
	var hex strings.Builder
	fmt.Fprintf(&hex, "%02x", r.Defn.OpCode)
	if r.Defn.Bytes > 1 {
		fmt.Fprintf(&hex, " %02x", uint8(r.InstructionData))
	}
	if r.Defn.Bytes > 2 {
		fmt.Fprintf(&hex, " %02x", uint8(r.InstructionData>>8))
	}

	mnemonic := r.Defn.Operator.String()

	operand := r.operand()
	if operand != "" {
		mnemonic = fmt.Sprintf("%s %s", mnemonic, operand)
	}

	return fmt.Sprintf("%04x  %-9s %s", r.Address, hex.String(), mnemonic)
}

func (r Result) operand() string {
	data := r.InstructionData

	switch r.Defn.AddressingMode {
	case instructions.Implied:
		return ""
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", data)
	case instructions.Relative:
		// branch target is relative to the address of the next instruction
		target := r.Address + 2 + uint16(int8(data))
		return fmt.Sprintf("$%04x", target)
	case instructions.Absolute:
		return fmt.Sprintf("$%04x", data)
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", data)
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", data)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("($%02x,X)", data)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("($%02x),Y", data)
	case instructions.AbsoluteIndexedX:
		return fmt.Sprintf("$%04x,X", data)
	case instructions.AbsoluteIndexedY:
		return fmt.Sprintf("$%04x,Y", data)
	case instructions.ZeroPageIndexedX:
		return fmt.Sprintf("$%02x,X", data)
	case instructions.ZeroPageIndexedY:
		return fmt.Sprintf("$%02x,Y", data)
	}

	return ""
}
