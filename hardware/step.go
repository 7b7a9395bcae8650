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

// Step the emulator state one CPU instruction. The cycleCallback function is
// called after every CPU cycle, once the rest of the machine has caught up
// with the CPU. It can be nil. Panics caused by curated errors are returned
// as errors, as they are by Run().
//
// The rest of the machine is driven by the scheduler. After every bus access
// the CPU yields to the cycle() function, which runs every event up to and
// including the next PHI2. The VIC and the CIAs are therefore always up to
// date when the CPU next touches the bus.
func (c64 *C64) Step(cycleCallback func() error) (err error) {
	defer recoverCurated(&err)

	cycle := c64.cycle
	if cycleCallback != nil {
		cycle = func() error {
			if err := c64.cycle(); err != nil {
				return err
			}
			return cycleCallback()
		}
	}

	return c64.CPU.ExecuteInstruction(cycle)
}
