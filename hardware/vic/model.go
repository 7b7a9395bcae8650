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

package vic

import "github.com/jetsetilly/gopher64/curated"

// Sentinal error patterns.
const (
	UnknownModel = "vic: unknown model (%d)"
)

// Model is a revision of the VIC-II.
type Model int

// List of valid Model values.
const (
	MOS6567R56A Model = iota // old NTSC
	MOS6567R8                // NTSC-M
	MOS6569                  // PAL-B
	MOS6572                  // PAL-N
	MOS6573                  // PAL-M
)

func (m Model) String() string {
	switch m {
	case MOS6567R56A:
		return "MOS6567R56A"
	case MOS6567R8:
		return "MOS6567R8"
	case MOS6569:
		return "MOS6569"
	case MOS6572:
		return "MOS6572"
	case MOS6573:
		return "MOS6573"
	}
	return "unknown"
}

// the geometry and action table of each revision
type modelData struct {
	rasterLines   int
	cyclesPerLine int
	clock         func(*VIC) int64
}

var models = [...]modelData{
	MOS6567R56A: {rasterLines: 262, cyclesPerLine: 64, clock: (*VIC).clockOldNTSC},
	MOS6567R8:   {rasterLines: 263, cyclesPerLine: 65, clock: (*VIC).clockNTSC},
	MOS6569:     {rasterLines: 312, cyclesPerLine: 63, clock: (*VIC).clockPAL},
	MOS6572:     {rasterLines: 312, cyclesPerLine: 65, clock: (*VIC).clockNTSC},
	MOS6573:     {rasterLines: 263, cyclesPerLine: 65, clock: (*VIC).clockNTSC},
}

func lookupModel(m Model) modelData {
	if m < 0 || int(m) >= len(models) {
		panic(curated.Errorf(UnknownModel, int(m)))
	}
	return models[m]
}

// Geometry returns the number of raster lines and the number of cycles per
// line for the model.
func (m Model) Geometry() (rasterLines int, cyclesPerLine int) {
	d := lookupModel(m)
	return d.rasterLines, d.cyclesPerLine
}
