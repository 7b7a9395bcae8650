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

import "github.com/jetsetilly/gopher64/hardware/scheduler"

// Interrupt sources. These are the bits of the ICR.
const (
	InterruptUnderflowA = 0x01
	InterruptUnderflowB = 0x02
	InterruptAlarm      = 0x04
	InterruptSP         = 0x08
	InterruptFlag       = 0x10
	InterruptRequest    = 0x80
)

// interruptSource is the ICR of the CIA. Sources are latched in the data
// register and the interrupt is requested when a latched source is also
// enabled in the mask.
type interruptSource struct {
	sch *scheduler.Scheduler
	env Environment

	// the interrupt is requested one cycle after the source is triggered on
	// the 6526 and immediately on the 8521
	delayed bool
	event   *scheduler.Event

	icr uint8
	idr uint8
}

func newInterruptSource(name string, sch *scheduler.Scheduler, env Environment) *interruptSource {
	is := &interruptSource{
		sch:     sch,
		env:     env,
		delayed: true,
	}
	is.event = scheduler.NewEvent(name, func() {
		if is.idr&InterruptRequest == 0 {
			is.idr |= InterruptRequest
			is.env.Interrupt(true)
		}
	})
	return is
}

func (is *interruptSource) reset() {
	is.icr = 0
	is.idr = 0
	is.sch.Cancel(is.event)
}

func (is *interruptSource) triggered() bool {
	return is.idr&InterruptRequest != 0
}

func (is *interruptSource) request() {
	if is.triggered() || is.sch.IsPending(is.event) {
		return
	}
	if is.idr&is.icr == 0 {
		return
	}
	if is.delayed {
		is.sch.Schedule(is.event, 1, scheduler.PHI1)
	} else {
		is.sch.Schedule(is.event, 0, scheduler.PHI1)
	}
}

// trigger latches the source and requests the interrupt if it is enabled.
func (is *interruptSource) trigger(source uint8) {
	is.idr |= source
	is.request()
}

// set changes the mask. bit 7 of the data says whether the other bits are
// set or cleared.
func (is *interruptSource) set(data uint8) {
	if data&0x80 != 0 {
		is.icr |= data & 0x7f
	} else {
		is.icr &= ^data
	}
	is.request()
}

// clear returns the data register and clears it. the interrupt is released.
func (is *interruptSource) clear() uint8 {
	old := is.idr
	is.sch.Cancel(is.event)
	if is.triggered() {
		is.env.Interrupt(false)
	}
	is.idr = 0
	return old
}
