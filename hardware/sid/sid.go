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

// Package sid defines how a sound chip is attached to the C64 bus. The
// synthesis of the sound chip is not part of Gopher64. A chip only needs to
// accept register writes, answer register reads and produce an output level
// when sampled.
//
// The Recorder type is the chip used by the command line. It keeps the
// register file, logs every register write and produces the level of the
// volume register as its output, which is how "digi" playback works on the
// real chip.
package sid

// NumRegisters is the number of registers in the address window of a SID.
// The registers are mirrored every 32 bytes.
const NumRegisters = 0x20

// Chip is implemented by any sound chip that can be attached to the bus. The
// register argument is already masked to the range of NumRegisters.
type Chip interface {
	Read(register uint8) uint8
	Write(register uint8, data uint8)
	Reset()
	Output() int16
}

// Null is the chip used when no SID is attached. Reads return 0xff and writes
// are ignored.
type Null struct{}

func (Null) String() string {
	return "no sid"
}

// Read implements the Chip interface.
func (Null) Read(register uint8) uint8 {
	return 0xff
}

// Write implements the Chip interface.
func (Null) Write(register uint8, data uint8) {
}

// Reset implements the Chip interface.
func (Null) Reset() {
}

// Output implements the Chip interface.
func (Null) Output() int16 {
	return 0
}
