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

package sid

import (
	"fmt"
	"io"
)

// Clock is the source of the cycle count used to stamp register writes. The
// scheduler implements this interface.
type Clock interface {
	Now() int64
}

// Register numbers that the Recorder treats specially.
const (
	regModeVolume = 0x18
	regPotX       = 0x19
	regPotY       = 0x1a
	regOsc3       = 0x1b
	regEnv3       = 0x1c
)

// Recorder is a sound chip that keeps a copy of the register file and writes
// a line to the log for every register write:
//
//	cycle register value
//
// The output of the chip is the level of the master volume register. Tunes
// that play samples by writing to the volume register are audible in the
// output. Tunes that use the oscillators are not.
type Recorder struct {
	name  string
	clk   Clock
	log   io.Writer
	regs  [NumRegisters]uint8
	bus   uint8
	count int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The log argument can be nil.
func NewRecorder(name string, clk Clock, log io.Writer) *Recorder {
	return &Recorder{
		name: name,
		clk:  clk,
		log:  log,
	}
}

func (r *Recorder) String() string {
	return r.name
}

// Read implements the Chip interface. Registers are write-only except for the
// paddle and voice 3 registers. Reads of write-only registers return the
// last value written to the chip.
func (r *Recorder) Read(register uint8) uint8 {
	switch register & (NumRegisters - 1) {
	case regPotX, regPotY:
		return 0xff
	case regOsc3, regEnv3:
		return 0x00
	}
	return r.bus
}

// Write implements the Chip interface.
func (r *Recorder) Write(register uint8, data uint8) {
	register &= NumRegisters - 1
	r.regs[register] = data
	r.bus = data
	r.count++
	if r.log != nil {
		fmt.Fprintf(r.log, "%d %s %02x %02x\n", r.clk.Now(), r.name, register, data)
	}
}

// Reset implements the Chip interface.
func (r *Recorder) Reset() {
	clear(r.regs[:])
	r.bus = 0
	r.count = 0
}

// Output implements the Chip interface. The four bit volume is scaled to the
// full range of int16.
func (r *Recorder) Output() int16 {
	v := int(r.regs[regModeVolume] & 0x0f)
	return int16(v*0x1111 - 0x8000)
}

// Register returns the last value written to the register.
func (r *Recorder) Register(register uint8) uint8 {
	return r.regs[register&(NumRegisters-1)]
}

// Writes returns the number of register writes since the last reset.
func (r *Recorder) Writes() int {
	return r.count
}
