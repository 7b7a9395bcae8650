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

// Package scheduler conceptualises the passing of time inside the C64. Time
// only advances when the Scheduler fires the next pending Event. There is no
// other clock.
//
// Time is counted in half-cycles. Every cycle of the system clock has two
// phases: PHI1, when the VIC-II has the bus, and PHI2, when the CPU has the
// bus. An event is scheduled to happen a number of cycles in the future on a
// specific phase:
//
//	sch.Schedule(ev, 1, scheduler.PHI2)
//
// The event will be fired on the PHI2 phase of the next cycle. If the
// scheduler is currently in the PHI1 phase, the same call with a delay of zero
// will fire the event in the PHI2 phase of the current cycle.
//
// Events are held in a list ordered by trigger time. Events with the same
// trigger time are fired in the order they were scheduled.
//
// Events are long-lived objects and are owned by the subsystem that created
// them. The usual pattern is for the payload of an event to reschedule the
// same event, creating a periodic process that decides for itself how long to
// sleep between activations:
//
//	ev = scheduler.NewEvent("timer", func() {
//		delay := doSomething()
//		sch.Schedule(ev, delay, scheduler.PHI1)
//	})
//
// Scheduling an event that is already pending moves it to the new trigger
// time. There is never more than one instance of an event in the list.
package scheduler
