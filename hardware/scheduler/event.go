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
	"fmt"
	"strings"
)

// Event is a payload that is to be run at a future time. Events are created
// once by the subsystem that owns them and scheduled as many times as
// required.
type Event struct {
	label   string
	payload func()

	// absolute time, in half-cycles, at which the payload will be run
	triggerTime int64

	// the next event in the scheduler's list
	next *Event

	// whether the event is currently in the scheduler's list
	pending bool
}

// NewEvent is the preferred method of initialisation for the Event type.
func NewEvent(label string, payload func()) *Event {
	return &Event{
		label:   label,
		payload: payload,
	}
}

// Label returns the label given to the event when it was created.
func (ev *Event) Label() string {
	return ev.label
}

func (ev *Event) String() string {
	label := strings.TrimSpace(ev.label)
	if label == "" {
		label = "[unlabelled event]"
	}
	if !ev.pending {
		return label
	}
	return fmt.Sprintf("%s @ %d.%d", label, ev.triggerTime>>1, ev.triggerTime&1)
}
