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

// indexes into the clock, latch and alarm arrays of the tod type
const (
	todTenths = iota
	todSeconds
	todMinutes
	todHours
)

// tod is the time of day clock. The registers count tenths, seconds, minutes
// and hours in BCD. The clock is advanced by the mains frequency on the TOD
// pin, divided by five or six depending on bit 7 of CRA.
type tod struct {
	sch   *scheduler.Scheduler
	event *scheduler.Event

	// cycles between pulses on the TOD pin, with seven bits of fraction
	period int64
	cycles int64

	// pulses since the tenths register last advanced. three bits wide
	tickCounter uint8

	clock [4]uint8
	latch [4]uint8
	alarm [4]uint8

	isLatched bool
	isStopped bool

	// control registers of the parent CIA
	regs *[0x10]uint8

	alarmed func()
}

func newTOD(name string, sch *scheduler.Scheduler, regs *[0x10]uint8, alarmed func()) *tod {
	t := &tod{
		sch:     sch,
		regs:    regs,
		alarmed: alarmed,
	}
	t.event = scheduler.NewEvent(name, t.tick)
	return t
}

// setPeriod sets the number of cycles between pulses on the TOD pin. A
// period of zero stops the pulses.
func (t *tod) setPeriod(cycles uint) {
	t.period = int64(cycles) << 7
	if t.period == 0 {
		t.sch.Cancel(t.event)
	} else if !t.sch.IsPending(t.event) {
		t.sch.Schedule(t.event, 0, scheduler.PHI1)
	}
}

func (t *tod) reset() {
	t.cycles = 0
	t.tickCounter = 0

	clear(t.clock[:])
	t.clock[todHours] = 1
	t.latch = t.clock
	clear(t.alarm[:])

	t.isLatched = false
	t.isStopped = true

	if t.period > 0 {
		t.sch.Schedule(t.event, 0, scheduler.PHI1)
	}
}

// reading the hours register latches the clock until the tenths register is
// read
func (t *tod) read(reg int) uint8 {
	if !t.isLatched {
		t.latch = t.clock
	}
	switch reg {
	case todTenths:
		t.isLatched = false
	case todHours:
		t.isLatched = true
	}
	return t.latch[reg]
}

// bit 7 of CRB selects whether the alarm or the clock is written. writing
// the hours register stops the clock until the tenths register is written
func (t *tod) write(reg int, data uint8) {
	setAlarm := t.regs[CRB]&0x80 != 0

	switch reg {
	case todTenths:
		data &= 0x0f
	case todSeconds, todMinutes:
		data &= 0x7f
	case todHours:
		data &= 0x9f
		// the AM/PM flag flips when twelve o'clock is written to the clock
		if data&0x1f == 0x12 && !setAlarm {
			data ^= 0x80
		}
	}

	changed := false
	if setAlarm {
		if t.alarm[reg] != data {
			changed = true
			t.alarm[reg] = data
		}
	} else {
		switch reg {
		case todTenths:
			if t.isStopped {
				t.tickCounter = 0
				t.isStopped = false
			}
		case todHours:
			t.isStopped = true
		}
		if t.clock[reg] != data {
			changed = true
			t.clock[reg] = data
		}
	}

	if changed {
		t.checkAlarm()
	}
}

// tick is called for every pulse on the TOD pin
func (t *tod) tick() {
	t.cycles += t.period
	t.sch.Schedule(t.event, int(t.cycles>>7), scheduler.PHI1)
	t.cycles &= 0x7f

	if t.isStopped {
		return
	}

	t.tickCounter = (t.tickCounter + 1) & 0x07

	divider := uint8(6)
	if t.regs[CRA]&0x80 != 0 {
		divider = 5
	}
	if t.tickCounter == divider {
		t.tickCounter = 0
		t.advance()
	}
}

// advance the clock by a tenth of a second. every digit is a four bit
// counter so invalid BCD values count up to the carry
func (t *tod) advance() {
	t0 := t.clock[todTenths] & 0x0f
	t1 := t.clock[todSeconds] & 0x0f
	t2 := (t.clock[todSeconds] >> 4) & 0x0f
	t3 := t.clock[todMinutes] & 0x0f
	t4 := (t.clock[todMinutes] >> 4) & 0x0f
	t5 := t.clock[todHours] & 0x0f
	t6 := (t.clock[todHours] >> 4) & 0x01
	pm := t.clock[todHours] & 0x80

	t0 = (t0 + 1) & 0x0f
	if t0 == 10 {
		t0 = 0
		t1 = (t1 + 1) & 0x0f
		if t1 == 10 {
			t1 = 0
			t2 = (t2 + 1) & 0x07
			if t2 == 6 {
				t2 = 0
				t3 = (t3 + 1) & 0x0f
				if t3 == 10 {
					t3 = 0
					t4 = (t4 + 1) & 0x07
					if t4 == 6 {
						t4 = 0
						t5 = (t5 + 1) & 0x0f
						if t6 != 0 {
							// eleven to twelve flips AM/PM. twelve wraps to one
							if t5 == 2 {
								pm ^= 0x80
							}
							if t5 == 3 {
								t5 = 1
								t6 = 0
							}
						} else if t5 == 10 {
							t5 = 0
							t6 = 1
						}
					}
				}
			}
		}
	}

	t.clock[todTenths] = t0
	t.clock[todSeconds] = t1 | t2<<4
	t.clock[todMinutes] = t3 | t4<<4
	t.clock[todHours] = t5 | t6<<4 | pm

	t.checkAlarm()
}

func (t *tod) checkAlarm() {
	if t.alarm == t.clock {
		t.alarmed()
	}
}
