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

package hardware

import (
	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/govern"
)

// While the continueCheck() function only runs at the end of a CPU instruction
// it can still be expensive to do a full continue check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Sentinal error patterns.
const (
	UnsupportedState = "c64: unsupported emulation state (%s) in Run() function"
)

// recoverCurated turns a panic with a curated error into a returned error.
// the panics of the hardware packages are programming errors and end the
// session but not the program. any other panic is passed on
func recoverCurated(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok && curated.IsAny(e) {
			*err = e
			return
		}
		panic(r)
	}
}

// Run sets the emulation running as quickly as possible. The continueCheck()
// function is called after every instruction. Run() returns when the check
// returns govern.Ending or govern.Initialising, or when the CPU is killed.
func (c64 *C64) Run(continueCheck func() (govern.State, error)) (err error) {
	defer recoverCurated(&err)

	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			err := c64.CPU.ExecuteInstruction(c64.cycle)
			if err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf(UnsupportedState, state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles runs the emulation until at least the specified number of
// cycles have passed. The final instruction is always completed so the
// emulation can overshoot by a few cycles.
func (c64 *C64) RunForCycles(cycles int64) error {
	target := c64.Time() + cycles
	return c64.Run(func() (govern.State, error) {
		if c64.Time() >= target {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
}

// RunForSeconds runs the emulation for the specified number of seconds of
// emulated time.
func (c64 *C64) RunForSeconds(seconds float64) error {
	return c64.RunForCycles(int64(seconds * c64.CPUFrequency()))
}
