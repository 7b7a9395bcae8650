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

const numSprites = 8

// sprites tracks the DMA state of the eight sprites. Only the counters that
// decide when a sprite fetches data are emulated.
type sprites struct {
	// the VIC's register file. the enable and Y expansion registers are read
	// directly from it
	regs *[0x40]uint8

	// one bit per sprite
	expFlop uint
	dma     uint

	mcBase [numSprites]uint8
	mc     [numSprites]uint8
}

func (s *sprites) reset() {
	s.expFlop = 0xff
	s.dma = 0
	clear(s.mcBase[:])
	clear(s.mc[:])
}

// advance the data counter of every sprite that is fetching data
func (s *sprites) updateMc() {
	for i := range numSprites {
		if s.dma&(1<<i) != 0 {
			s.mc[i] = (s.mc[i] + 3) & 0x3f
		}
	}
}

// copy the data counter to the base counter and stop DMA for sprites that
// have finished
func (s *sprites) updateMcBase() {
	for i := range numSprites {
		mask := uint(1) << i
		if s.expFlop&mask != 0 {
			s.mcBase[i] = s.mc[i]
			if s.mcBase[i] == 0x3f {
				s.dma &= ^mask
			}
		}
	}
}

// flip the expansion flip flop of expanded sprites that are fetching data
func (s *sprites) checkExp() {
	s.expFlop ^= s.dma & uint(s.regs[RegSpriteYExp])
}

func (s *sprites) checkDisplay() {
	copy(s.mc[:], s.mcBase[:])
}

// start DMA for enabled sprites whose Y coordinate matches the raster line
func (s *sprites) checkDMA(rasterY int) {
	y := uint8(rasterY)
	enable := s.regs[RegSpriteEn]
	for i := range numSprites {
		mask := uint(1) << i
		if enable&uint8(mask) != 0 && y == s.regs[(i<<1)+1] && s.dma&mask == 0 {
			s.dma |= mask
			s.mcBase[i] = 0
			s.expFlop |= mask
		}
	}
}

// clearing the Y expansion bit of a sprite in the middle of its expanded
// line corrupts the data counter
func (s *sprites) lineCrunch(data uint8, lineCycle int) {
	for i := range numSprites {
		mask := uint(1) << i
		if data&uint8(mask) == 0 && s.expFlop&mask == 0 {
			if lineCycle == 14 {
				mc := s.mc[i]
				mcBase := s.mcBase[i]
				s.mc[i] = (0x2a & (mcBase & mc)) | (0x15 & (mcBase | mc))
			}
			s.expFlop |= mask
		}
	}
}

func (s *sprites) isDMA(val uint) bool {
	return s.dma&val != 0
}
