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

// lightpen latches the raster position when the light pen line is asserted.
// Only one latch happens per frame.
type lightpen struct {
	lastLine      int
	cyclesPerLine int

	x uint8
	y uint8

	isTriggered bool
}

func (lp *lightpen) setScreenSize(rasterLines int, cyclesPerLine int) {
	lp.lastLine = rasterLines - 1
	lp.cyclesPerLine = cyclesPerLine
}

func (lp *lightpen) reset() {
	lp.x = 0
	lp.y = 0
	lp.isTriggered = false
}

func (lp *lightpen) getX() uint8 {
	return lp.x
}

func (lp *lightpen) getY() uint8 {
	return lp.y
}

// the X coordinate is counted in units of two pixels and starts 13 cycles
// into the line. on chips with 65 cycles the counter does not advance in
// cycle 61
func (lp *lightpen) xpos(lineCycle int) int {
	if lineCycle < 13 {
		lineCycle += lp.cyclesPerLine
	}
	lineCycle -= 13

	if lp.cyclesPerLine == 65 && lineCycle > 61-13 {
		lineCycle--
	}

	return lineCycle << 2
}

// retrigger latches the fixed position used when the pen is still asserted
// at the start of a frame. returns true if the IRQ flag should be raised
func (lp *lightpen) retrigger() bool {
	if lp.isTriggered {
		return false
	}
	lp.isTriggered = true

	if lp.cyclesPerLine == 65 {
		lp.x = 0xd5
	} else {
		lp.x = 0xd1
	}
	lp.y = uint8(lp.lastLine)

	return true
}

// trigger latches the current position. returns true if the IRQ flag should be
// raised
func (lp *lightpen) trigger(lineCycle int, rasterY int) bool {
	if lp.isTriggered {
		return false
	}
	lp.isTriggered = true

	// the last line does not latch, except in the first cycle
	if rasterY == lp.lastLine && lineCycle > 0 {
		return false
	}

	lp.x = uint8(lp.xpos(lineCycle) + 2)
	lp.y = uint8(rasterY)

	return true
}

func (lp *lightpen) untrigger() {
	lp.isTriggered = false
}
