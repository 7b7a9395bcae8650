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

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case CPUPort:
		return "CPU Port"
	case RAM:
		return "RAM"
	case Basic:
		return "Basic"
	case IO:
		return "IO"
	case Character:
		return "Character"
	case Kernal:
		return "Kernal"
	}

	return "undefined"
}

// The different memory areas in the C64.
const (
	Undefined Area = iota
	CPUPort
	RAM
	Basic
	IO
	Character
	Kernal
)

// The origin and memory top for each switchable area of memory.
const (
	OriginCPUPort   = uint16(0x0000)
	MemtopCPUPort   = uint16(0x0fff)
	OriginBasic     = uint16(0xa000)
	MemtopBasic     = uint16(0xbfff)
	OriginIO        = uint16(0xd000)
	MemtopIO        = uint16(0xdfff)
	OriginCharacter = uint16(0xd000)
	MemtopCharacter = uint16(0xdfff)
	OriginKernal    = uint16(0xe000)
	MemtopKernal    = uint16(0xffff)
)

// Memtop is the top most address of memory in the C64.
const Memtop = uint16(0xffff)

// The bus map is divided into sixteen 4k pages. The page of an address is
// found by shifting the address by PageShift.
const (
	PageShift = 12
	NumPages  = 16
)

// The IO area is divided into sixteen slots of 256 bytes. The slot of an
// address is found by shifting and masking.
const (
	IOSlotShift = 8
	IOSlotMask  = 0x0f
	NumIOSlots  = 16
)

// IOSlot returns the IO slot number for an address in the IO area.
func IOSlot(address uint16) int {
	return int(address>>IOSlotShift) & IOSlotMask
}

// The IO slots occupied by each device.
const (
	SlotVIC      = 0x0
	SlotSID      = 0x4
	SlotColorRAM = 0x8
	SlotCIA1     = 0xc
	SlotCIA2     = 0xd
	SlotIO1      = 0xe
	SlotIO2      = 0xf
)

// Addresses of the interrupt vectors and other fixed locations in the ROMs.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)

	// BASIC warm start. The entry point used when BASIC is re-entered from
	// RUN/STOP-RESTORE and by the kernal after a reset
	BasicWarmStart = uint16(0xa7ae)

	// unused area at the top of the BASIC ROM. a subtune selector can be
	// patched in here
	BasicSubtune = uint16(0xbf53)

	// the indirect IRQ vector in RAM used by the kernal's IRQ entry
	IRQVectorRAM = uint16(0x0314)
)

// The three bits of the CPU port that control the bank switching.
const (
	LORAM  = uint8(0x01)
	HIRAM  = uint8(0x02)
	CHAREN = uint8(0x04)

	// mask for the bank switching bits
	BankBits = LORAM | HIRAM | CHAREN
)

// MapAddress decodes the area of memory that is visible for the address,
// given the state of the bank switching bits. Reads and writes are decoded
// differently because writes to a ROM area go to the RAM underneath.
func MapAddress(address uint16, port uint8, read bool) Area {
	loram := port&LORAM == LORAM
	hiram := port&HIRAM == HIRAM
	charen := port&CHAREN == CHAREN

	switch address >> PageShift {
	case 0x0:
		return CPUPort
	case 0xa, 0xb:
		if read && loram && hiram {
			return Basic
		}
	case 0xd:
		if charen && (loram || hiram) {
			return IO
		}
		if read && !charen && (loram || hiram) {
			return Character
		}
	case 0xe, 0xf:
		if read && hiram {
			return Kernal
		}
	}

	return RAM
}
