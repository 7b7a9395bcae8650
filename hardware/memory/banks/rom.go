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
	"github.com/jetsetilly/gopher64/curated"
)

// opcode used when writing a trap into a ROM
const opcodeJMP = 0x4c

// rom is the common implementation for the ROM banks. The original image is
// never changed. The patched image is the one that is read from the bus and
// is the one that traps are written to.
type rom struct {
	name     string
	original []uint8
	patched  []uint8
	mask     uint16
}

func newROM(name string, size int) rom {
	return rom{
		name:     name,
		original: make([]uint8, size),
		patched:  make([]uint8, size),
		mask:     uint16(size - 1),
	}
}

func (r *rom) String() string {
	return r.name
}

// Read implements the Bank interface.
func (r *rom) Read(address uint16) uint8 {
	return r.patched[address&r.mask]
}

// Write implements the Bank interface. Writes to ROM are ignored.
func (r *rom) Write(address uint16, data uint8) {
}

// Size returns the size of the ROM in bytes.
func (r *rom) Size() int {
	return len(r.original)
}

// set the original image and reset the patched image to match. the image must
// be exactly the size of the ROM.
func (r *rom) set(image []uint8) error {
	if len(image) != len(r.original) {
		return curated.Errorf(WrongSize, r.name, len(r.original), len(image))
	}
	copy(r.original, image)
	copy(r.patched, image)
	return nil
}

// Restore removes all patches from the ROM.
func (r *rom) Restore() {
	copy(r.patched, r.original)
}

// Patch writes data into the patched image at the address. The original image
// is unchanged and can be restored with Restore() or RestorePatch().
func (r *rom) Patch(address uint16, data ...uint8) {
	for i, d := range data {
		r.patched[(address+uint16(i))&r.mask] = d
	}
}

// RestorePatch restores length bytes at the address from the original image.
func (r *rom) RestorePatch(address uint16, length int) {
	for i := 0; i < length; i++ {
		a := (address + uint16(i)) & r.mask
		r.patched[a] = r.original[a]
	}
}

// InstallTrap writes a JMP instruction to the target address at the specified
// address in the ROM.
func (r *rom) InstallTrap(address uint16, target uint16) {
	r.Patch(address, opcodeJMP, uint8(target), uint8(target>>8))
}

// RestoreTrap undoes the effect of InstallTrap() at the address.
func (r *rom) RestoreTrap(address uint16) {
	r.RestorePatch(address, 3)
}

// Sizes of the ROMs in the C64.
const (
	KernalSize    = 0x2000
	BasicSize     = 0x2000
	CharacterSize = 0x1000
)

// KernalROM is the 8k operating system ROM visible at $E000.
type KernalROM struct {
	rom
}

// NewKernalROM is the preferred method of initialisation for the KernalROM
// type. The ROM contains the built-in minimal kernal.
func NewKernalROM() *KernalROM {
	k := &KernalROM{rom: newROM("kernal", KernalSize)}
	_ = k.Set(nil)
	return k
}

// Set the kernal image. A nil image installs a minimal kernal that is enough
// to drive a tune from an IRQ. It has:
//
//	an IRQ entry point at $FFA0 that pushes A, X and Y and jumps through ($0314)
//	the IRQ exit at $EA81 that pulls Y, X and A and returns from the interrupt
//	a jam instruction at $EA39 which the reset and NMI vectors point to
//
// Tunes that rely on kernal routines need a real kernal image.
func (k *KernalROM) Set(image []uint8) error {
	if image != nil {
		return k.set(image)
	}

	clear(k.original)

	// IRQ entry: PHA; TXA; PHA; TYA; PHA; JMP ($0314)
	copy(k.original[0xffa0&k.mask:], []uint8{0x48, 0x8a, 0x48, 0x98, 0x48, 0x6c, 0x14, 0x03})

	// IRQ exit: PLA; TAY; PLA; TAX; PLA; RTI
	copy(k.original[0xea81&k.mask:], []uint8{0x68, 0xa8, 0x68, 0xaa, 0x68, 0x40})

	// halt
	k.original[0xea39&k.mask] = 0x02

	// NMI, RESET and IRQ vectors
	copy(k.original[0xfffa&k.mask:], []uint8{0x39, 0xea, 0x39, 0xea, 0xa0, 0xff})

	copy(k.patched, k.original)
	return nil
}

// InstallResetHook changes the reset vector so that the CPU starts at the
// specified address.
func (k *KernalROM) InstallResetHook(address uint16) {
	k.Patch(0xfffc, uint8(address), uint8(address>>8))
}

// ResetVector returns the current (possibly hooked) reset vector.
func (k *KernalROM) ResetVector() uint16 {
	return uint16(k.Read(0xfffc)) | uint16(k.Read(0xfffd))<<8
}

// BasicROM is the 8k BASIC interpreter ROM visible at $A000.
type BasicROM struct {
	rom
}

// NewBasicROM is the preferred method of initialisation for the BasicROM
// type. The ROM is empty until Set() is called.
func NewBasicROM() *BasicROM {
	return &BasicROM{rom: newROM("basic", BasicSize)}
}

// Set the BASIC image.
func (b *BasicROM) Set(image []uint8) error {
	return b.set(image)
}

// address of warm start entry and the unused area used by SetSubtune()
const (
	basicWarmStart = 0xa7ae
	basicSubtune   = 0xbf53
)

// InstallTrap writes a jump to the address at the BASIC warm start entry
// point.
func (b *BasicROM) InstallTrap(address uint16) {
	b.rom.InstallTrap(basicWarmStart, address)
}

// RestoreTrap removes the trap at the BASIC warm start entry point.
func (b *BasicROM) RestoreTrap() {
	b.rom.RestoreTrap(basicWarmStart)
}

// SetSubtune patches a short routine into an unused area of the BASIC ROM and
// traps the warm start so that the routine runs first. The routine stores the
// subtune number in the A register save location ($030C) and then does the
// equivalent of RUN:
//
//	LDA #subtune
//	STA $030C
//	JSR $A82C
//	JMP $A7B1
func (b *BasicROM) SetSubtune(subtune uint8) {
	b.Patch(basicSubtune,
		0xa9, subtune,
		0x8d, 0x0c, 0x03,
		0x20, 0x2c, 0xa8,
		0x4c, 0xb1, 0xa7,
	)
	b.InstallTrap(basicSubtune)
}

// RestoreSubtune removes the effect of SetSubtune().
func (b *BasicROM) RestoreSubtune() {
	b.RestorePatch(basicSubtune, 11)
	b.RestoreTrap()
}

// CharacterROM is the 4k character generator ROM visible at $D000 when the IO
// area is switched out.
type CharacterROM struct {
	rom
}

// NewCharacterROM is the preferred method of initialisation for the
// CharacterROM type.
func NewCharacterROM() *CharacterROM {
	return &CharacterROM{rom: newROM("character", CharacterSize)}
}

// Set the character image.
func (c *CharacterROM) Set(image []uint8) error {
	return c.set(image)
}
