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

// Package vic emulates the bus timing of the MOS 656x video chip (the VIC-II).
// Pixels are not generated. What is emulated are the side effects of the chip
// that a program running on the CPU can observe:
//
//   - the raster counter and the raster compare interrupt
//   - bad lines, during which the VIC takes the bus from the CPU
//   - sprite DMA, which also takes the bus
//   - the light pen latch
//
// The VIC is driven by a single event on the scheduler. Rather than running
// every cycle, the event works out how many cycles can pass before something
// interesting happens and schedules itself for then. Any access to the
// registers first brings the VIC up to date with the Sync() function, so the
// values seen by the CPU are never stale.
//
// Five revisions of the chip are supported. The revisions differ in the
// number of raster lines, the number of cycles per line and in the order of
// the sprite DMA in each line. The per-cycle actions for each revision are in
// tables.go.
//
// The VIC communicates with the rest of the machine through the Environment
// interface. The IRQ line and the BA (bus available) line are the only
// outputs.
package vic
