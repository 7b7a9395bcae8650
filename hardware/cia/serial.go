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

package cia

// serialPort shifts the serial data register out on the SP pin. In output
// mode one bit is sent for every two underflows of timer A. Nothing is
// connected to the pins of either CIA so input mode never receives data.
type serialPort struct {
	// timer A underflows left in the current byte. zero when idle
	count int

	// a byte is waiting in the serial data register
	loaded bool

	done func()
}

func (sp *serialPort) reset() {
	sp.count = 0
	sp.loaded = false
}

// start is called when SDR is written in output mode
func (sp *serialPort) start() {
	sp.loaded = true
}

// switchDirection is called when bit 6 of CRA changes. any transfer in
// progress is abandoned
func (sp *serialPort) switchDirection() {
	sp.reset()
}

// handle is called for every underflow of timer A in output mode
func (sp *serialPort) handle() {
	if sp.count == 0 {
		if !sp.loaded {
			return
		}
		sp.loaded = false
		sp.count = 16
	}

	sp.count--
	if sp.count == 0 {
		sp.done()
	}
}
