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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/govern"
	"github.com/jetsetilly/gopher64/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// Result of a performance check.
type Result struct {
	// real time the measurement ran for
	Duration time.Duration

	// emulated time during the measurement
	Cycles  int64
	Seconds float64
}

// Speed is the speed of the emulation as a multiple of a real C64.
func (r Result) Speed() float64 {
	return r.Seconds / r.Duration.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%.2fx real speed (%d cycles in %.2f seconds)", r.Speed(), r.Cycles, r.Duration.Seconds())
}

// Check the performance of the emulator. The emulation runs for the leadtime
// before measurement starts and then for the duration. The C64 should have a
// tune installed.
func Check(output io.Writer, profile Profile, c64 *hardware.C64, leadtime time.Duration, duration time.Duration) (Result, error) {
	var result Result
	var start int64

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// duration has elapsed
		timerChan := make(chan bool, 2)
		time.AfterFunc(leadtime, func() {
			timerChan <- false
			time.AfterFunc(duration, func() {
				timerChan <- true
			})
		})

		// checking the timerChan is relatively expensive
		performanceBrake := 0

		return c64.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}
				start = c64.Time()
			default:
			}
			return govern.Running, nil
		})
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return result, curated.Errorf("performance: %v", err)
	}

	result.Duration = duration
	result.Cycles = c64.Time() - start
	result.Seconds = float64(result.Cycles) / c64.CPUFrequency()

	if output != nil {
		fmt.Fprintln(output, result)
	}

	return result, nil
}
