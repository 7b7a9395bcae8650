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

// Package memorymap describes the layout of the C64 address space. The
// MapAddress() function is the PLA's decision table. It decides which area of
// memory is visible at an address for the three bank switching bits of the
// CPU port.
//
// The package also defines the addresses of the fixed locations in the ROMs
// that are patched when a tune is installed.
package memorymap
