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
	"strings"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/vic"
)

// Sentinal error patterns.
const (
	UnknownModel = "c64: unknown model (%s)"
)

// Model is a variant of the C64. The model decides the revision of the VIC
// and the frequency of the CPU.
type Model int

// List of valid Model values.
const (
	PALB Model = iota
	NTSCM
	OldNTSCM
	PALN
	PALM
)

type modelData struct {
	name        string
	vic         vic.Model
	colourBurst float64
	divider     float64
	mains       int
}

var models = [...]modelData{
	PALB:     {name: "PAL-B", vic: vic.MOS6569, colourBurst: 4433618.75, divider: 18, mains: 50},
	NTSCM:    {name: "NTSC-M", vic: vic.MOS6567R8, colourBurst: 3579545.455, divider: 14, mains: 60},
	OldNTSCM: {name: "OLD-NTSC-M", vic: vic.MOS6567R56A, colourBurst: 3579545.455, divider: 14, mains: 60},
	PALN:     {name: "PAL-N", vic: vic.MOS6572, colourBurst: 3582056.25, divider: 14, mains: 50},
	PALM:     {name: "PAL-M", vic: vic.MOS6573, colourBurst: 3575611.49, divider: 14, mains: 50},
}

func lookupModel(m Model) modelData {
	if m < 0 || int(m) >= len(models) {
		panic(curated.Errorf(UnknownModel, m))
	}
	return models[m]
}

func (m Model) String() string {
	if m < 0 || int(m) >= len(models) {
		return "unknown"
	}
	return models[m].name
}

// ParseModel returns the model named by s. The comparison is not case
// sensitive.
func ParseModel(s string) (Model, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for m, d := range models {
		if d.name == s {
			return Model(m), nil
		}
	}
	return PALB, curated.Errorf(UnknownModel, s)
}

// VIC returns the revision of the VIC fitted to the model.
func (m Model) VIC() vic.Model {
	return lookupModel(m).vic
}

// CPUFrequency returns the frequency of the CPU clock in Hz. The clock is
// derived from the colour burst frequency of the video standard.
func (m Model) CPUFrequency() float64 {
	d := lookupModel(m)
	return d.colourBurst * 4 / d.divider
}

// PowerFrequency returns the mains frequency of the model in Hz.
func (m Model) PowerFrequency() int {
	return lookupModel(m).mains
}

// IsNTSC returns true if the model uses the NTSC raster geometry.
func (m Model) IsNTSC() bool {
	lines, _ := m.VIC().Geometry()
	return lines < 312
}
