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

// SystemRAM is the 64k of RAM in the C64.
type SystemRAM struct {
	ram [0x10000]uint8
}

// NewSystemRAM is the preferred method of initialisation for the SystemRAM
// type. The RAM contains the power-up pattern.
func NewSystemRAM() *SystemRAM {
	r := &SystemRAM{}
	r.Reset()
	return r
}

func (r *SystemRAM) String() string {
	return "RAM"
}

// Reset fills RAM with the power-up pattern. The C64's RAM does not power up
// to zero. Each 16k quadrant starts with the opposite value to the previous
// one and every 8 byte group has four bytes of the opposite value at offset
// 2. The first 8 bytes are:
//
//	00 00 ff ff ff ff 00 00
//
// and the first 8 bytes of the next quadrant ($4000) are:
//
//	ff ff 00 00 00 00 ff ff
func (r *SystemRAM) Reset() {
	v := uint8(0x00)
	for q := 0; q < len(r.ram); q += 0x4000 {
		quadrant := r.ram[q : q+0x4000]
		for i := range quadrant {
			quadrant[i] = v
		}
		v = ^v
		for i := 0x02; i < len(quadrant); i += 0x08 {
			quadrant[i] = v
			quadrant[i+1] = v
			quadrant[i+2] = v
			quadrant[i+3] = v
		}
	}
}

// Clear fills RAM with zero. Used when the power-up pattern is disabled in the
// preferences.
func (r *SystemRAM) Clear() {
	clear(r.ram[:])
}

// Read implements the Bank interface.
func (r *SystemRAM) Read(address uint16) uint8 {
	return r.ram[address]
}

// Write implements the Bank interface.
func (r *SystemRAM) Write(address uint16, data uint8) {
	r.ram[address] = data
}

// Fill writes value to length bytes starting at the start address. The fill
// wraps at the end of memory.
func (r *SystemRAM) Fill(start uint16, value uint8, length int) {
	for i := 0; i < length; i++ {
		r.ram[start+uint16(i)] = value
	}
}

// Load copies data into RAM starting at the start address. Returns the number
// of bytes copied, which will be less than len(data) if data would run past
// the end of memory.
func (r *SystemRAM) Load(start uint16, data []uint8) int {
	return copy(r.ram[start:], data)
}
