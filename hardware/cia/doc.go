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

// Package cia emulates the MOS 6526 and MOS 8521 complex interface adaptors.
// The C64 has two. The first drives the IRQ line of the CPU and the second
// drives the NMI line.
//
// The two interval timers are emulated exactly, because many tunes use a
// timer rather than the raster interrupt to drive the play routine. The
// timers are driven by events on the scheduler and skip the cycles in which
// nothing but the counter changes.
//
// The time of day clock counts in BCD from pulses on the TOD pin, which the
// C64 drives from the mains frequency. The alarm raises an interrupt. The
// serial port shifts out in output mode and raises an interrupt after each
// byte. Nothing is connected to the serial pins so no data is received.
package cia
