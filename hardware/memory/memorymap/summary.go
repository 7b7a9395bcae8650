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

package memorymap

import (
	"fmt"
	"strings"
)

// Summary returns a single multiline string detailing all the readable areas
// in memory for the bank switching state. Useful for reference.
func Summary(port uint8) string {
	s := strings.Builder{}

	start := 0
	current := MapAddress(0, port, true)

	for p := 1; p < NumPages; p++ {
		area := MapAddress(uint16(p<<PageShift), port, true)
		if area != current {
			s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", start<<PageShift, (p<<PageShift)-1, current))
			current = area
			start = p
		}
	}

	s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", start<<PageShift, Memtop, current))

	return s.String()
}
