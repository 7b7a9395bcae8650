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

package banks

import (
	"fmt"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/sid"
)

// SidBank attaches a single SID chip to the bus. The chip's registers are
// mirrored throughout the bank.
type SidBank struct {
	chip sid.Chip
}

// NewSidBank is the preferred method of initialisation for the SidBank type.
// The bank has no chip attached.
func NewSidBank() *SidBank {
	return &SidBank{chip: sid.Null{}}
}

func (b *SidBank) String() string {
	return fmt.Sprintf("sid (%v)", b.chip)
}

// SetSID attaches a chip to the bank. A nil chip detaches any chip currently
// attached.
func (b *SidBank) SetSID(chip sid.Chip) {
	if chip == nil {
		b.chip = sid.Null{}
		return
	}
	b.chip = chip
}

// SID returns the attached chip.
func (b *SidBank) SID() sid.Chip {
	return b.chip
}

// Read implements the Bank interface.
func (b *SidBank) Read(address uint16) uint8 {
	return b.chip.Read(uint8(address) & (sid.NumRegisters - 1))
}

// Write implements the Bank interface.
func (b *SidBank) Write(address uint16, data uint8) {
	b.chip.Write(uint8(address)&(sid.NumRegisters-1), data)
}

// ExtraSidMapperSize is the number of SID windows in a 256 byte IO slot.
const ExtraSidMapperSize = 8

// ExtraSidBank allows additional SID chips to be placed in an IO slot. The
// slot is divided into eight windows of 32 bytes. Each window maps to a SID
// chip or to the bank that occupied the slot before any chips were added.
type ExtraSidBank struct {
	mapper [ExtraSidMapperSize]Bank
	sids   []sid.Chip
}

// NewExtraSidBank is the preferred method of initialisation for the
// ExtraSidBank type.
func NewExtraSidBank() *ExtraSidBank {
	return &ExtraSidBank{}
}

func (b *ExtraSidBank) String() string {
	return fmt.Sprintf("extra sid (%d)", len(b.sids))
}

func mapperIndex(address uint16) int {
	return int(address>>5) & (ExtraSidMapperSize - 1)
}

// ResetSIDMapper points every window at the fallback bank and forgets any SID
// chips that have been added.
func (b *ExtraSidBank) ResetSIDMapper(fallback Bank) {
	for i := range b.mapper {
		b.mapper[i] = fallback
	}
	b.sids = b.sids[:0]
}

// AddSID maps the window containing the address to the chip.
func (b *ExtraSidBank) AddSID(chip sid.Chip, address uint16) {
	bank := NewSidBank()
	bank.SetSID(chip)
	b.MapWindow(mapperIndex(address), bank)
	b.sids = append(b.sids, chip)
}

// MapWindow maps the numbered window directly to a bank. An index outside of
// the table is a programming error and causes a panic.
func (b *ExtraSidBank) MapWindow(idx int, bank Bank) {
	if idx < 0 || idx >= ExtraSidMapperSize {
		panic(curated.Errorf(ExtraSidIndex, idx))
	}
	b.mapper[idx] = bank
}

// SIDs returns the chips that have been added to the bank.
func (b *ExtraSidBank) SIDs() []sid.Chip {
	return b.sids
}

// Reset all the chips in the bank.
func (b *ExtraSidBank) Reset() {
	for _, s := range b.sids {
		s.Reset()
	}
}

// Read implements the Bank interface.
func (b *ExtraSidBank) Read(address uint16) uint8 {
	return b.mapper[mapperIndex(address)].Read(address)
}

// Write implements the Bank interface.
func (b *ExtraSidBank) Write(address uint16, data uint8) {
	b.mapper[mapperIndex(address)].Write(address, data)
}
