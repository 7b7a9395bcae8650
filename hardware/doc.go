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

// Package hardware is the base package for the C64 emulation. It and its
// sub-packages contain everything required to run the code of a SID tune.
//
// The C64 type is the root of the emulation and contains external references
// to all the C64 sub-systems. From here, the emulation can either be started
// to run continuously (with optional callback to check for continuation) or
// it can be stepped instruction by instruction.
//
// Time is kept by the scheduler. The CPU drives the scheduler forward one
// cycle for every bus access and the VIC and CIAs run as scheduled events.
package hardware
