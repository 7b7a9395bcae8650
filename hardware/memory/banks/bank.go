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

// Package banks contains the memory mapped devices of the C64 as seen from
// the bus. Every bank implements the Bank interface and is placed in the
// MMU's bus map or in one of the IO bank's slots.
//
// Reads and writes never fail. What happens for an address that a bank has no
// storage for is defined by the bank. ROM writes are ignored and the
// disconnected bus returns the last value on the bus, for example.
package banks

// Sentinal error patterns.
const (
	// returned when a ROM image of the wrong size is supplied. this is an
	// error in the input data and is reported to the loader
	WrongSize = "banks: %s image must be %d bytes (got %d)"

	// raised as a panic when the extra SID table is indexed out of range.
	// this is a programming error
	ExtraSidIndex = "banks: extra sid index out of range (%d)"
)

// Bank is implemented by every memory mapped device. The address is the full
// 16 bit bus address. Banks are responsible for masking the address into the
// range of their storage.
type Bank interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// LastByte is implemented by the component that knows the last value on the
// data bus. Used by the DisconnectedBusBank.
type LastByte interface {
	LastReadByte() uint8
}
