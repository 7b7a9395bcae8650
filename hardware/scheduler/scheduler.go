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

package scheduler

import (
	"strings"

	"github.com/jetsetilly/gopher64/curated"
)

// Sentinal error patterns. These are programming errors and are raised as
// panics.
const (
	NegativeDelay = "scheduler: negative delay (%d cycles) for event %s"
	NilEvent      = "scheduler: nil event"
)

// Phase of the system clock.
type Phase int

// List of valid Phase values.
const (
	PHI1 Phase = iota
	PHI2
)

func (p Phase) String() string {
	if p == PHI1 {
		return "PHI1"
	}
	return "PHI2"
}

// Scheduler is the time-ordered queue of events.
type Scheduler struct {
	// head of the event list
	first *Event

	// current time in half-cycles
	currentTime int64
}

// NewScheduler is the preferred method of initialisation for the Scheduler type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (sch *Scheduler) String() string {
	s := strings.Builder{}
	for ev := sch.first; ev != nil; ev = ev.next {
		s.WriteString(ev.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Reset removes all events from the queue and sets time back to zero.
func (sch *Scheduler) Reset() {
	ev := sch.first
	for ev != nil {
		n := ev.next
		ev.next = nil
		ev.pending = false
		ev = n
	}
	sch.first = nil
	sch.currentTime = 0
}

// Schedule an event to occur on the specified phase, at least the specified
// number of cycles in the future. A delay of zero fires the event on the next
// matching phase, which may be the current half-cycle. In that case the event
// is still queued and only fires on the next call to Clock().
func (sch *Scheduler) Schedule(ev *Event, cycles int, phase Phase) {
	if cycles < 0 {
		panic(curated.Errorf(NegativeDelay, cycles, ev))
	}
	sch.insert(ev, sch.currentTime+((sch.currentTime&1)^int64(phase))+int64(cycles)<<1)
}

// ScheduleRelative schedules an event on the current phase the specified
// number of cycles in the future.
func (sch *Scheduler) ScheduleRelative(ev *Event, cycles int) {
	if cycles < 0 {
		panic(curated.Errorf(NegativeDelay, cycles, ev))
	}
	sch.insert(ev, sch.currentTime+int64(cycles)<<1)
}

// insert event at the specified time. the event is placed after any event
// with the same trigger time.
func (sch *Scheduler) insert(ev *Event, triggerTime int64) {
	if ev == nil {
		panic(curated.Errorf(NilEvent))
	}

	if ev.pending {
		sch.Cancel(ev)
	}

	ev.triggerTime = triggerTime
	ev.pending = true

	// find the first event with a later trigger time
	link := &sch.first
	for *link != nil && (*link).triggerTime <= triggerTime {
		link = &(*link).next
	}
	ev.next = *link
	*link = ev
}

// Cancel removes the event from the queue. Cancelling an event that is not
// pending has no effect.
func (sch *Scheduler) Cancel(ev *Event) {
	if ev == nil || !ev.pending {
		return
	}

	link := &sch.first
	for *link != nil {
		if *link == ev {
			*link = ev.next
			break
		}
		link = &(*link).next
	}

	ev.next = nil
	ev.pending = false
}

// IsPending returns true if the event is in the queue.
func (sch *Scheduler) IsPending(ev *Event) bool {
	return ev.pending
}

// Clock advances time to the next event in the queue and runs its payload.
// Returns false if there are no events in the queue.
func (sch *Scheduler) Clock() bool {
	ev := sch.first
	if ev == nil {
		return false
	}

	sch.first = ev.next
	ev.next = nil
	ev.pending = false

	sch.currentTime = ev.triggerTime
	ev.payload()

	return true
}

// Remaining returns the number of half-cycles before the event fires. Returns
// -1 if the event is not pending.
func (sch *Scheduler) Remaining(ev *Event) int64 {
	if !ev.pending {
		return -1
	}
	return ev.triggerTime - sch.currentTime
}

// Time returns the current cycle as seen from the specified phase. During
// PHI2 a PHI1 observer sees the next cycle, because the next PHI1 will be in
// the next cycle.
func (sch *Scheduler) Time(phase Phase) int64 {
	return (sch.currentTime + int64(phase^1)) >> 1
}

// Now returns the current cycle.
func (sch *Scheduler) Now() int64 {
	return sch.currentTime >> 1
}

// Phase returns the current phase of the system clock.
func (sch *Scheduler) Phase() Phase {
	return Phase(sch.currentTime & 1)
}
