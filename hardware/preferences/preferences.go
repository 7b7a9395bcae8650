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

// Package preferences holds the hardware preferences of the C64. Values can
// be changed on the command line with a preference group (see the prefs
// package). Preferences are never saved to disk.
package preferences

import (
	"sync/atomic"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/cia"
	"github.com/jetsetilly/gopher64/hardware/memory/cpuport"
	"github.com/jetsetilly/gopher64/prefs"
)

// Default values for the hardware preferences.
const (
	DefaultModel    = "PAL-B"
	DefaultFallOff  = cpuport.FallOff6510
	DefaultCIAModel = "6526"
	DefaultPowerUp  = true
)

// LivePreferences are copies of preference values that are updated
// automatically when the preference changes.
//
// For performance critical situations these values should be preferred to the
// prefs values in Preferences.
type LivePreferences struct {
	FallOff atomic.Int64
}

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	group *prefs.Group

	// Prefer live values in performance critical code
	Live LivePreferences

	// the C64 model. one of PAL-B, NTSC-M, OLD-NTSC-M, PAL-N or PAL-M
	Model prefs.String

	// the number of cycles before a floating bit of the CPU port decays
	FallOff prefs.Int

	// the revision of both CIAs. 6526 or 8521
	CIAModel prefs.String

	// fill RAM with the power-up pattern on reset. RAM is zeroed if this is
	// false
	PowerUpPattern prefs.Bool
}

func (p *Preferences) String() string {
	return p.group.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values specified in the current command line group are
// applied.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		group: prefs.NewGroup(),
	}

	p.FallOff.SetHookPre(func(v prefs.Value) error {
		if v.(int64) < 0 {
			return curated.Errorf("preferences: fall off cannot be negative")
		}
		return nil
	})
	p.FallOff.SetHookPost(func(v prefs.Value) error {
		p.Live.FallOff.Store(v.(int64))
		return nil
	})

	p.CIAModel.SetHookPre(func(v prefs.Value) error {
		_, err := cia.ParseModel(v.(string))
		return err
	})

	p.SetDefaults()

	err := p.group.Add("c64.model", &p.Model)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.group.Add("c64.cpuport.falloff", &p.FallOff)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.group.Add("c64.cia.model", &p.CIAModel)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.group.Add("c64.ram.powerup", &p.PowerUpPattern)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	err = p.group.ApplyCommandLine()
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.Model.Set(DefaultModel)
	_ = p.FallOff.Set(DefaultFallOff)
	_ = p.CIAModel.Set(DefaultCIAModel)
	_ = p.PowerUpPattern.Set(DefaultPowerUp)
}

// CIA returns the CIA model named by the CIAModel preference.
func (p *Preferences) CIA() cia.Model {
	m, _ := cia.ParseModel(p.CIAModel.String())
	return m
}
