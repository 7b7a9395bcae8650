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

// The per-cycle actions of each revision. Each function performs the actions
// for the current line cycle and returns the number of cycles until the next
// cycle with an action. Long stretches of the line with nothing to do are
// skipped in one step.
//
// The order of the sprite DMA slots differs between the revisions with 63,
// 64 and 65 cycles per line. The MOS6567R8, MOS6572 and MOS6573 share the
// same table.

// MOS6569.
func (vic *VIC) clockPAL() int64 {
	var delay int64 = 1

	switch vic.lineCycle {
	case 0:
		vic.checkVBlank()
		vic.endDMA(2)
	case 1:
		vic.vBlank()
		vic.startDMA(5)
		if !vic.sprites.isDMA(0xf8) {
			delay = 10
		}
	case 2:
		vic.endDMA(3)
	case 3:
		vic.startDMA(6)
	case 4:
		vic.endDMA(4)
	case 5:
		vic.startDMA(7)
	case 6:
		vic.endDMA(5)
		if vic.sprites.isDMA(0xc0) {
			delay = 2
		} else {
			delay = 5
		}
	case 7:
	case 8:
		vic.endDMA(6)
		delay = 2
	case 9:
	case 10:
		vic.endDMA7()
	case 11:
		vic.startBadLine()
		delay = 3
	case 12:
		delay = 2
	case 13:
	case 14:
		vic.sprites.updateMc()
	case 15:
		vic.sprites.updateMcBase()
		delay = 39
	case 54:
		vic.sprites.checkDMA(vic.rasterY)
		vic.startDMA0()
	case 55:
		vic.sprites.checkDMA(vic.rasterY)
		vic.sprites.checkExp()
		vic.startDMA0()
	case 56:
		vic.startDMA(1)
	case 57:
		vic.sprites.checkDisplay()
		if !vic.sprites.isDMA(0x1f) {
			delay = 6
		}
	case 58:
		vic.startDMA(2)
	case 59:
		vic.endDMA(0)
	case 60:
		vic.startDMA(3)
	case 61:
		vic.endDMA(1)
	case 62:
		vic.startDMA(4)
	default:
		delay = int64(54 - vic.lineCycle)
	}

	return delay
}

// MOS6567R8, MOS6572 and MOS6573.
func (vic *VIC) clockNTSC() int64 {
	var delay int64 = 1

	switch vic.lineCycle {
	case 0:
		vic.checkVBlank()
		vic.startDMA(5)
	case 1:
		vic.vBlank()
		vic.endDMA(3)
		if !vic.sprites.isDMA(0xf0) {
			delay = 10
		}
	case 2:
		vic.startDMA(6)
	case 3:
		vic.endDMA(4)
	case 4:
		vic.startDMA(7)
	case 5:
		vic.endDMA(5)
		if vic.sprites.isDMA(0xc0) {
			delay = 2
		} else {
			delay = 6
		}
	case 6:
	case 7:
		vic.endDMA(6)
		delay = 2
	case 8:
	case 9:
		vic.endDMA7()
		delay = 2
	case 10:
	case 11:
		vic.startBadLine()
		delay = 3
	case 12:
		delay = 2
	case 13:
	case 14:
		vic.sprites.updateMc()
	case 15:
		vic.sprites.updateMcBase()
		delay = 39
	case 54:
		vic.setBA(true)
	case 55:
		vic.sprites.checkDMA(vic.rasterY)
		vic.sprites.checkExp()
		vic.startDMA0()
	case 56:
		vic.sprites.checkDMA(vic.rasterY)
		vic.startDMA0()
	case 57:
		vic.startDMA(1)
	case 58:
		vic.sprites.checkDisplay()
		if !vic.sprites.isDMA(0x1f) {
			delay = 7
		}
	case 59:
		vic.startDMA(2)
	case 60:
		vic.endDMA(0)
	case 61:
		vic.startDMA(3)
	case 62:
		vic.endDMA(1)
	case 63:
		vic.startDMA(4)
	case 64:
		vic.endDMA(2)
	default:
		delay = int64(54 - vic.lineCycle)
	}

	return delay
}

// MOS6567R56A.
func (vic *VIC) clockOldNTSC() int64 {
	var delay int64 = 1

	switch vic.lineCycle {
	case 0:
		vic.checkVBlank()
		vic.endDMA(2)
	case 1:
		vic.vBlank()
		vic.startDMA(5)
		if !vic.sprites.isDMA(0xf8) {
			delay = 10
		}
	case 2:
		vic.endDMA(3)
	case 3:
		vic.startDMA(6)
	case 4:
		vic.endDMA(4)
	case 5:
		vic.startDMA(7)
	case 6:
		vic.endDMA(5)
		if vic.sprites.isDMA(0xc0) {
			delay = 2
		} else {
			delay = 5
		}
	case 7:
	case 8:
		vic.endDMA(6)
		delay = 2
	case 9:
	case 10:
		vic.endDMA7()
	case 11:
		vic.startBadLine()
		delay = 3
	case 12:
		delay = 2
	case 13:
	case 14:
		vic.sprites.updateMc()
	case 15:
		vic.sprites.updateMcBase()
		delay = 39
	case 54:
		vic.setBA(true)
	case 55:
		vic.sprites.checkDMA(vic.rasterY)
		vic.sprites.checkExp()
		vic.startDMA0()
	case 56:
		vic.sprites.checkDMA(vic.rasterY)
		vic.startDMA0()
	case 57:
		vic.sprites.checkDisplay()
		vic.startDMA(1)
		if vic.sprites.isDMA(0x1f) {
			delay = 2
		} else {
			delay = 7
		}
	case 58:
	case 59:
		vic.startDMA(2)
	case 60:
		vic.endDMA(0)
	case 61:
		vic.startDMA(3)
	case 62:
		vic.endDMA(1)
	case 63:
		vic.startDMA(4)
	default:
		delay = int64(54 - vic.lineCycle)
	}

	return delay
}
