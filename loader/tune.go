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
	"fmt"

	"github.com/jetsetilly/gopher64/curated"
)

// Sentinal error patterns for tune validation.
const (
	EmptyImage     = "loader: program image is empty"
	ShortPRG       = "loader: PRG image is too short (%d bytes)"
	ImageTooLarge  = "loader: program does not fit in memory ($%04x + %d bytes)"
	DriverOverlap  = "loader: program overlaps the driver at $%04x"
	BadInitAddress = "loader: init address ($%04x) is outside the program"
	BadPlayAddress = "loader: play address ($%04x) is outside the program"
)

// Compatibility describes the environment a tune expects to be called from.
type Compatibility int

// List of valid Compatibility values.
const (
	// init is called once and play is called once per frame
	C64 Compatibility = iota

	// the tune is a real C64 program. init is called and never returns, or
	// returns to an idle loop. the play address is ignored
	R64

	// the tune is a BASIC program. it is started with RUN and the subtune
	// number is placed where the program expects to find it
	BASIC
)

func (c Compatibility) String() string {
	switch c {
	case C64:
		return "C64"
	case R64:
		return "R64"
	case BASIC:
		return "BASIC"
	}
	return fmt.Sprintf("unknown compatibility (%d)", int(c))
}

// Speed is the source of the interrupt that calls play.
type Speed int

// List of valid Speed values.
const (
	// the VIC raster interrupt. once per frame
	SpeedVBI Speed = iota

	// timer A of CIA1, set for sixty calls per second
	SpeedCIA
)

// Tune is a program image and the information needed to run it.
type Tune struct {
	// program image without the load address
	Data []uint8

	// the address in memory of the first byte of Data
	LoadAddr uint16

	// address of the init routine. zero means the same as LoadAddr. not
	// used by BASIC tunes
	InitAddr uint16

	// address of the play routine. zero means that the tune installs its
	// own interrupt handler during init
	PlayAddr uint16

	// the zero based song number passed to init in the accumulator
	Song uint8

	Compatibility Compatibility
	Speed         Speed
}

// LoadPRG splits a PRG image into the load address and the program image. The
// init address of the returned tune is the load address.
func LoadPRG(data []uint8) (Tune, error) {
	if len(data) < 3 {
		return Tune{}, curated.Errorf(ShortPRG, len(data))
	}
	addr := uint16(data[0]) | uint16(data[1])<<8
	return Tune{
		Data:     data[2:],
		LoadAddr: addr,
		InitAddr: addr,
	}, nil
}

func (t Tune) String() string {
	return fmt.Sprintf("load=$%04x-$%04x init=$%04x play=$%04x song=%d %s",
		t.LoadAddr, int(t.LoadAddr)+len(t.Data)-1, t.initAddr(), t.PlayAddr, t.Song, t.Compatibility)
}

func (t Tune) initAddr() uint16 {
	if t.Compatibility == BASIC {
		return basicInit
	}
	if t.InitAddr == 0 {
		return t.LoadAddr
	}
	return t.InitAddr
}

func (t Tune) contains(address uint16) bool {
	return int(address) >= int(t.LoadAddr) && int(address) < int(t.LoadAddr)+len(t.Data)
}

// Validate checks that the tune can be installed.
func (t Tune) Validate() error {
	if len(t.Data) == 0 {
		return curated.Errorf(EmptyImage)
	}

	end := int(t.LoadAddr) + len(t.Data)
	if end > 0x10000 {
		return curated.Errorf(ImageTooLarge, t.LoadAddr, len(t.Data))
	}

	if int(t.LoadAddr) < DriverOrigin+DriverSize && end > DriverOrigin {
		return curated.Errorf(DriverOverlap, DriverOrigin)
	}

	// BASIC tunes are started by the interpreter
	if t.Compatibility == BASIC {
		return nil
	}

	if !t.contains(t.initAddr()) {
		return curated.Errorf(BadInitAddress, t.initAddr())
	}

	if t.Compatibility == C64 && t.PlayAddr != 0 && !t.contains(t.PlayAddr) {
		return curated.Errorf(BadPlayAddress, t.PlayAddr)
	}

	return nil
}
