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

package loader

import (
	"testing"

	"github.com/jetsetilly/gopher64/test"
)

func TestDriverIdleLoop(t *testing.T) {
	tunes := []Tune{
		{LoadAddr: 0x1000, InitAddr: 0x1000, PlayAddr: 0x1003, Compatibility: C64, Speed: SpeedVBI},
		{LoadAddr: 0x1000, InitAddr: 0x1000, PlayAddr: 0x1003, Compatibility: C64, Speed: SpeedCIA},
		{LoadAddr: 0x1000, InitAddr: 0x1000, Compatibility: C64},
		{LoadAddr: 0x1000, InitAddr: 0x1000, Compatibility: R64},
	}

	for i, tune := range tunes {
		for _, ntsc := range []bool{false, true} {
			code, idle := driverFor(tune, ntsc)
			test.ExpectSuccess(t, len(code) <= DriverSize, i)
			test.DemandSuccess(t, idle > DriverOrigin, i)

			// the idle loop is a jump to itself
			o := int(idle - DriverOrigin)
			test.DemandSuccess(t, o+3 <= len(code), i)
			test.ExpectEquality(t, code[o], uint8(0x4c), i)
			test.ExpectEquality(t, code[o+1], uint8(idle), i)
			test.ExpectEquality(t, code[o+2], uint8(idle>>8), i)
		}
	}
}
