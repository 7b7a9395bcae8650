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

// Package cpuport emulates the I/O port built into the 6510. The port is
// mapped to addresses $0000 (the data direction register) and $0001 (the data
// register). The lower three bits of the port control the bank switching of
// the C64. The port never switches banks itself. It reports the state of the
// bank switching bits to the PLA every time it is written to.
//
// Bits 6 and 7 of the port are not connected to anything in the C64. When
// they are configured as inputs the value read is the charge left on the
// floating pins. The charge decays to zero a fixed number of cycles after the
// pin was last driven.
package cpuport

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/memory/banks"
)

// Number of cycles before a floating bit of the port decays to zero.
const (
	FallOff6510 = 350000
	FallOff8500 = 1500000
)

// PLA is the component that decides which banks are visible from the state
// of the CPU port. It also knows the last value on the data bus and the
// current time.
type PLA interface {
	// SetCPUPort is called with the three bank switching bits whenever the
	// port is written to.
	SetCPUPort(state uint8)

	// LastReadByte returns the last value on the data bus.
	LastReadByte() uint8

	// Phi2Time returns the current cycle as seen from the CPU's phase.
	Phi2Time() int64
}

// floatingBit is one of the two bits of the port that decay when they are not
// being driven.
type floatingBit struct {
	bit uint8

	// the cycle after which the charge has decayed
	dataSetClk int64

	// the charge on the pin. either zero or the value of bit
	dataSet uint8

	// whether the charge is decaying. false if the bit has never been
	// charged or if the charge has already decayed
	isFallingOff bool
}

func (f *floatingBit) reset() {
	f.isFallingOff = false
	f.dataSet = 0
}

// read returns the charge on the pin at the specified time.
func (f *floatingBit) read(now int64) uint8 {
	if f.isFallingOff && f.dataSetClk < now {
		f.reset()
	}
	return f.dataSet
}

// write charges the pin with the bit from value.
func (f *floatingBit) write(now int64, value uint8, fallOff int64) {
	f.dataSetClk = now + fallOff
	f.dataSet = value & f.bit
	f.isFallingOff = true
}

// Port is the bank for the first page of memory. Addresses other than $0000
// and $0001 are passed through to RAM.
type Port struct {
	pla PLA
	ram banks.Bank

	fallOff int64

	// data direction register. a set bit is an output
	dir uint8

	// data register as written by the CPU
	data uint8

	// value returned when reading the data register
	dataRead uint8

	// value on the pins of the port
	procPortPins uint8

	bit6 floatingBit
	bit7 floatingBit
}

// NewPort is the preferred method of initialisation for the Port type. The
// fallOff argument is the number of cycles it takes for a floating bit to
// decay.
func NewPort(pla PLA, ram banks.Bank, fallOff int64) *Port {
	p := &Port{
		pla:     pla,
		ram:     ram,
		fallOff: fallOff,
		bit6:    floatingBit{bit: 0x40},
		bit7:    floatingBit{bit: 0x80},
	}
	return p
}

func (p *Port) String() string {
	return fmt.Sprintf("cpu port: dir=%02x data=%02x read=%02x", p.dir, p.data, p.dataRead)
}

// SetFallOff changes the number of cycles it takes for a floating bit to
// decay. A bit that is already decaying is not affected.
func (p *Port) SetFallOff(fallOff int64) {
	p.fallOff = fallOff
}

// Reset the port to the power-up state.
func (p *Port) Reset() {
	p.bit6.reset()
	p.bit7.reset()
	p.dir = 0x00
	p.data = 0x3f
	p.dataRead = 0x3f
	p.procPortPins = 0x3f
	p.updateCPUPort()
}

// State returns the value of the bank switching bits as seen by the PLA.
func (p *Port) State() uint8 {
	return (p.data | ^p.dir) & 0x07
}

// the processor port pins are driven by the data register for bits that are
// outputs. the input bits keep their previous value, except for the bits
// that are pulled up (bits 0, 1, 2 and 4)
func (p *Port) updateCPUPort() {
	p.procPortPins = (p.procPortPins & ^p.dir) | (p.data & p.dir)
	p.dataRead = (p.data | ^p.dir) & (p.procPortPins | 0x17)

	p.pla.SetCPUPort(p.State())

	// cassette sense line is an input with nothing connected
	if p.dir&0x20 == 0 {
		p.dataRead &= ^uint8(0x20)
	}
}

// Read implements the Bank interface.
func (p *Port) Read(address uint16) uint8 {
	switch address {
	case 0x0000:
		return p.dir
	case 0x0001:
		retval := p.dataRead

		// bits 6 and 7 are the charge on the pins when they are inputs
		if p.dir&0x40 == 0 {
			retval &= ^uint8(0x40)
			retval |= p.bit6.read(p.pla.Phi2Time())
		}
		if p.dir&0x80 == 0 {
			retval &= ^uint8(0x80)
			retval |= p.bit7.read(p.pla.Phi2Time())
		}

		return retval
	}

	return p.ram.Read(address)
}

// Write implements the Bank interface.
func (p *Port) Write(address uint16, data uint8) {
	switch address {
	case 0x0000:
		if p.dir != data {
			// when a floating bit changes from output to input the pin is
			// charged with the last value output on it
			if p.dir&0x40 != 0 && data&0x40 == 0 {
				p.bit6.write(p.pla.Phi2Time(), p.data, p.fallOff)
			}
			if p.dir&0x80 != 0 && data&0x80 == 0 {
				p.bit7.write(p.pla.Phi2Time(), p.data, p.fallOff)
			}
			p.dir = data
		}
		p.updateCPUPort()

		// the RAM underneath receives the last value on the bus rather than
		// the value written
		p.ram.Write(address, p.pla.LastReadByte())
		return

	case 0x0001:
		// writing to an output bit charges the pin
		if p.dir&0x40 != 0 {
			p.bit6.write(p.pla.Phi2Time(), data, p.fallOff)
		}
		if p.dir&0x80 != 0 {
			p.bit7.write(p.pla.Phi2Time(), data, p.fallOff)
		}

		p.data = data
		p.updateCPUPort()

		p.ram.Write(address, p.pla.LastReadByte())
		return
	}

	p.ram.Write(address, data)
}
