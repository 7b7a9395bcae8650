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

// Package cpu emulates the 6510 microprocessor found in the C64. Like all
// 8-bit processors of the era, the 6510 executes instructions according to
// the single byte value read from an address pointed to by the program
// counter. This single byte is the opcode and is looked up in the instruction
// table. The instruction definition for that opcode is then used to move
// execution of the program forward.
//
// The CPU type requires an implementation of the Memory interface. On the C64
// this is the MMU. The I/O port of the 6510 is emulated by the cpuport
// package, which the MMU maps to the first page of memory.
//
// The bread-and-butter of the CPU type is the ExecuteInstruction() function.
// Its sole argument is a callback function to be called after every bus
// access of the instruction.
//
//	mc := cpu.NewCPU(logger.Allow, mem)
//	mc.Reset()
//
//	numCycles := 0
//
//	for {
//		err := mc.ExecuteInstruction(func() error {
//			numCycles++
//			return nil
//		})
//		if err != nil {
//			break
//		}
//	}
//
// The C64 emulation uses the callback to advance the event scheduler by one
// cycle. The VIC and the CIAs run from the scheduler.
//
// The RdyFlg field is the RDY line of the CPU. While it is false reads from
// the bus are stalled, with the callback being called once for every stalled
// cycle. Writes are never stalled.
//
// Interrupts are requested with SetIRQ() and TriggerNMI() and are serviced at
// instruction boundaries. The LastResult field can be probed for information
// about the last instruction executed, or about the current instruction being
// executed if accessed from the callback function. See the execution package
// for more information.
package cpu
