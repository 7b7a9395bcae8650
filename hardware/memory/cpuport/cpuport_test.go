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

package cpuport_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/memory/banks"
	"github.com/jetsetilly/gopher64/hardware/memory/cpuport"
	"github.com/jetsetilly/gopher64/test"
)

// stands in for the MMU
type pla struct {
	state    uint8
	reports  int
	lastByte uint8
	now      int64
}

func (p *pla) SetCPUPort(state uint8) {
	p.state = state
	p.reports++
}

func (p *pla) LastReadByte() uint8 {
	return p.lastByte
}

func (p *pla) Phi2Time() int64 {
	return p.now
}

func newPort() (*cpuport.Port, *pla, *banks.SystemRAM) {
	p := &pla{}
	ram := banks.NewSystemRAM()
	port := cpuport.NewPort(p, ram, cpuport.FallOff6510)
	port.Reset()
	return port, p, ram
}

func TestReset(t *testing.T) {
	port, p, _ := newPort()

	test.ExpectEquality(t, port.Read(0x0000), uint8(0x00))

	// all inputs. bit 5 reads as zero because nothing drives it
	test.ExpectEquality(t, port.Read(0x0001), uint8(0x1f))

	// all bank switching bits are pulled up
	test.ExpectEquality(t, p.state, uint8(0x07))
	test.ExpectEquality(t, p.reports, 1)
}

func TestBankSwitchReporting(t *testing.T) {
	port, p, _ := newPort()

	// the usual kernal initialisation
	port.Write(0x0000, 0x2f)
	port.Write(0x0001, 0x37)
	test.ExpectEquality(t, p.state, uint8(0x07))

	// switch out BASIC
	port.Write(0x0001, 0x36)
	test.ExpectEquality(t, p.state, uint8(0x06))

	// all RAM
	port.Write(0x0001, 0x30)
	test.ExpectEquality(t, p.state, uint8(0x00))

	// every write is reported even if nothing changes
	n := p.reports
	port.Write(0x0001, 0x30)
	test.ExpectEquality(t, p.reports, n+1)

	// input bits are pulled up whatever the data register says
	port.Write(0x0000, 0x2c)
	test.ExpectEquality(t, p.state, uint8(0x03))
}

func TestUnderlyingRAM(t *testing.T) {
	port, p, ram := newPort()

	// writes to the port put the last value on the bus into RAM
	p.lastByte = 0xa5
	port.Write(0x0001, 0x37)
	test.ExpectEquality(t, ram.Read(0x0001), uint8(0xa5))

	p.lastByte = 0x5a
	port.Write(0x0000, 0x2f)
	test.ExpectEquality(t, ram.Read(0x0000), uint8(0x5a))

	// other addresses in the page are plain RAM
	port.Write(0x0002, 0x42)
	test.ExpectEquality(t, port.Read(0x0002), uint8(0x42))
	port.Write(0x00ff, 0x24)
	test.ExpectEquality(t, port.Read(0x00ff), uint8(0x24))
}

func TestDecay(t *testing.T) {
	port, p, _ := newPort()

	// drive bit 7 high
	port.Write(0x0000, 0x80)
	port.Write(0x0001, 0x80)
	test.ExpectEquality(t, port.Read(0x0001)&0x80, uint8(0x80))

	// switch bit 7 to input. the pin is charged with the previous output
	p.now = 1000
	port.Write(0x0000, 0x00)
	test.ExpectEquality(t, port.Read(0x0001)&0x80, uint8(0x80))

	// still charged at the end of the fall off period
	p.now = 1000 + cpuport.FallOff6510
	test.ExpectEquality(t, port.Read(0x0001)&0x80, uint8(0x80))

	// and decayed after it
	p.now = 1000 + cpuport.FallOff6510 + 1
	test.ExpectEquality(t, port.Read(0x0001)&0x80, uint8(0x00))

	// stays decayed
	p.now += 10
	test.ExpectEquality(t, port.Read(0x0001)&0x80, uint8(0x00))
}

func TestDecayChargedByDataWrite(t *testing.T) {
	port, p, _ := newPort()

	// bit 6 is an output when the data register is written and is charged
	// again when it becomes an input
	port.Write(0x0000, 0x40)
	p.now = 500
	port.Write(0x0001, 0x40)

	p.now = 600
	port.Write(0x0000, 0x00)
	p.now = 600 + cpuport.FallOff6510
	test.ExpectEquality(t, port.Read(0x0001)&0x40, uint8(0x40))

	// a write of zero to an output bit discharges it
	port.Write(0x0000, 0x40)
	port.Write(0x0001, 0x00)
	port.Write(0x0000, 0x00)
	test.ExpectEquality(t, port.Read(0x0001)&0x40, uint8(0x00))
}

func TestDecay8500(t *testing.T) {
	port, p, _ := newPort()
	port.SetFallOff(cpuport.FallOff8500)

	port.Write(0x0000, 0xc0)
	port.Write(0x0001, 0xc0)
	port.Write(0x0000, 0x00)
	test.ExpectEquality(t, port.Read(0x0001)&0xc0, uint8(0xc0))

	// still charged where a 6510 would have decayed
	p.now = cpuport.FallOff6510 + 1
	test.ExpectEquality(t, port.Read(0x0001)&0xc0, uint8(0xc0))

	p.now = cpuport.FallOff8500 + 1
	test.ExpectEquality(t, port.Read(0x0001)&0xc0, uint8(0x00))
}

func TestResetClearsDecay(t *testing.T) {
	port, _, _ := newPort()

	port.Write(0x0000, 0xc0)
	port.Write(0x0001, 0xc0)
	port.Write(0x0000, 0x00)
	test.ExpectEquality(t, port.Read(0x0001)&0xc0, uint8(0xc0))

	port.Reset()
	test.ExpectEquality(t, port.Read(0x0001)&0xc0, uint8(0x00))
}
