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

// The state of a timer is a set of flags. The low byte follows the layout of
// the control register. The flags in the higher bytes are the control bits
// delayed by one and two cycles.
const (
	ciatCRStart   = 0x01
	ciatStep      = 0x04
	ciatCROneShot = 0x08
	ciatCRFLoad   = 0x10
	ciatPhi2In    = 0x20
	ciatCRMask    = ciatCRStart | ciatCROneShot | ciatCRFLoad | ciatPhi2In

	ciatCount2 = 0x100
	ciatCount3 = 0x200

	ciatOneShot0 = 0x08 << 8
	ciatOneShot  = 0x08 << 16
	ciatLoad1    = 0x10 << 8
	ciatLoad     = 0x10 << 16

	ciatOut = 0x80000000
)

// timer is one of the two interval timers.
type timer struct {
	sch *scheduler.Scheduler

	event         *scheduler.Event
	cycleSkipping *scheduler.Event

	// the cycle from which the counter is decremented without the event
	// running. zero if the event is running every cycle and -1 if the timer
	// is stopped
	pauseTime int64

	pbToggle    bool
	counter     uint16
	latch       uint16
	lastControl uint8
	state       uint32

	underflow func()
}

func newTimer(name string, sch *scheduler.Scheduler, underflow func()) *timer {
	t := &timer{
		sch:       sch,
		underflow: underflow,
	}
	t.event = scheduler.NewEvent(name, func() {
		t.clock()
		t.reschedule()
	})
	t.cycleSkipping = scheduler.NewEvent(name+" skip", func() {
		elapsed := t.sch.Time(scheduler.PHI1) - t.pauseTime
		t.pauseTime = 0
		t.counter -= uint16(elapsed)
		t.clock()
		t.reschedule()
	})
	return t
}

func (t *timer) reset() {
	t.sch.Cancel(t.event)
	t.sch.Cancel(t.cycleSkipping)
	t.counter = 0xffff
	t.latch = 0xffff
	t.pbToggle = false
	t.state = 0
	t.lastControl = 0
	t.pauseTime = 0
	t.sch.Schedule(t.event, 1, scheduler.PHI1)
}

func (t *timer) setControlRegister(cr uint8) {
	t.state &= ^uint32(ciatCRMask)
	t.state |= (uint32(cr) & ciatCRMask) ^ ciatPhi2In
	t.lastControl = cr
}

// syncWithCPU brings the counter up to date before the CPU accesses the
// timer. the timer must be woken with wakeUpAfterSyncWithCPU() afterwards
func (t *timer) syncWithCPU() {
	if t.pauseTime > 0 {
		t.sch.Cancel(t.cycleSkipping)
		elapsed := t.sch.Time(scheduler.PHI2) - t.pauseTime

		// the timer may have decided to sleep from the next cycle. in which
		// case nothing has happened yet
		if elapsed >= 0 {
			t.counter -= uint16(elapsed)
			t.clock()
		}
	}

	if t.pauseTime == 0 {
		t.sch.Cancel(t.event)
	}

	t.pauseTime = -1
}

func (t *timer) wakeUpAfterSyncWithCPU() {
	t.pauseTime = 0
	t.sch.Schedule(t.event, 0, scheduler.PHI1)
}

func (t *timer) latchLo(data uint8) {
	t.latch = (t.latch & 0xff00) | uint16(data)
	if t.state&ciatLoad != 0 {
		t.counter = t.latch
	}
}

func (t *timer) latchHi(data uint8) {
	t.latch = (t.latch & 0x00ff) | uint16(data)<<8
	if t.state&ciatLoad != 0 {
		t.counter = t.latch
	} else if t.state&ciatCRStart == 0 {
		// a stopped timer is reloaded
		t.state |= ciatLoad1
	}
}

// cascade is called when timer B counts the underflows of timer A. it is
// equivalent to the CPU writing to the control register
func (t *timer) cascade() {
	t.syncWithCPU()
	t.state |= ciatStep
	t.wakeUpAfterSyncWithCPU()
}

func (t *timer) started() bool {
	return t.state&ciatCRStart != 0
}

// pb returns the value of the timer's output on port B, either as a toggle or
// as a pulse depending on bit 2 of the control register
func (t *timer) pb(cr uint8) bool {
	if cr&0x04 != 0 {
		return t.pbToggle
	}
	return t.state&ciatOut != 0
}

func (t *timer) clock() {
	if t.state&ciatCount3 != 0 {
		t.counter--
	}

	adj := t.state & (ciatCRStart | ciatCROneShot | ciatPhi2In)
	if t.state&(ciatCRStart|ciatPhi2In) == ciatCRStart|ciatPhi2In {
		adj |= ciatCount2
	}
	if t.state&ciatCount2 != 0 || t.state&(ciatStep|ciatCRStart) == ciatStep|ciatCRStart {
		adj |= ciatCount3
	}

	// CR_FLOAD -> LOAD1 -> LOAD and CR_ONESHOT -> ONESHOT0 -> ONESHOT
	adj |= (t.state & (ciatCRFLoad | ciatCROneShot | ciatLoad1 | ciatOneShot0)) << 8
	t.state = adj

	if t.counter == 0 && t.state&ciatCount3 != 0 {
		t.state |= ciatLoad | ciatOut

		if t.state&(ciatOneShot|ciatOneShot0) != 0 {
			t.state &= ^uint32(ciatCRStart | ciatCount2)
		}

		// with bits 1 and 2 of the control register set the port B output
		// toggles on every underflow
		toggle := t.lastControl&0x06 == 0x06
		t.pbToggle = toggle && !t.pbToggle

		t.underflow()
	}

	if t.state&ciatLoad != 0 {
		t.counter = t.latch
		t.state &= ^uint32(ciatCount3)
	}
}

func (t *timer) reschedule() {
	// flags that only pass through the state machine
	const unwanted = ciatOut | ciatCRFLoad | ciatLoad1 | ciatLoad
	if t.state&unwanted != 0 {
		t.sch.ScheduleRelative(t.event, 1)
		return
	}

	if t.state&ciatCount3 != 0 {
		// steady counting. skip to just before the next underflow
		const wanted = ciatCRStart | ciatPhi2In | ciatCount2 | ciatCount3
		if t.counter > 2 && t.state&wanted == wanted {
			t.pauseTime = t.sch.Time(scheduler.PHI1) + 1
			t.sch.ScheduleRelative(t.cycleSkipping, int(t.counter)-1)
			return
		}

		t.sch.ScheduleRelative(t.event, 1)
		return
	}

	// the timer is stopped unless it is about to start counting
	const unwanted1 = ciatCRStart | ciatPhi2In
	const unwanted2 = ciatCRStart | ciatStep
	if t.state&unwanted1 == unwanted1 || t.state&unwanted2 == unwanted2 {
		t.sch.ScheduleRelative(t.event, 1)
		return
	}

	t.pauseTime = -1
}
