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

import (
	"github.com/jetsetilly/gopher64/hardware/memory/memorymap"
)

// IOBank is the 4k IO area at $D000. It is divided into sixteen slots of 256
// bytes, each of which is another Bank.
type IOBank struct {
	slots [memorymap.NumIOSlots]Bank
}

// NewIOBank is the preferred method of initialisation for the IOBank type.
// Every slot is initialised with the unmapped bank.
func NewIOBank(unmapped Bank) *IOBank {
	io := &IOBank{}
	for i := range io.slots {
		io.slots[i] = unmapped
	}
	return io
}

func (io *IOBank) String() string {
	return "IO"
}

// SetBank places a bank in the numbered slot.
func (io *IOBank) SetBank(slot int, bank Bank) {
	io.slots[slot] = bank
}

// GetBank returns the bank in the numbered slot.
func (io *IOBank) GetBank(slot int) Bank {
	return io.slots[slot]
}

// Read implements the Bank interface.
func (io *IOBank) Read(address uint16) uint8 {
	return io.slots[memorymap.IOSlot(address)].Read(address)
}

// Write implements the Bank interface.
func (io *IOBank) Write(address uint16, data uint8) {
	io.slots[memorymap.IOSlot(address)].Write(address, data)
}

// DisconnectedBusBank is an area of memory with nothing attached. Reading
// returns whatever value was last on the data bus.
type DisconnectedBusBank struct {
	bus LastByte
}

// NewDisconnectedBusBank is the preferred method of initialisation for the
// DisconnectedBusBank type.
func NewDisconnectedBusBank(bus LastByte) *DisconnectedBusBank {
	return &DisconnectedBusBank{bus: bus}
}

func (d *DisconnectedBusBank) String() string {
	return "disconnected"
}

// Read implements the Bank interface.
func (d *DisconnectedBusBank) Read(address uint16) uint8 {
	return d.bus.LastReadByte()
}

// Write implements the Bank interface. Writes are ignored.
func (d *DisconnectedBusBank) Write(address uint16, data uint8) {
}

// ColorRAM is the 1k of four bit RAM at $D800.
type ColorRAM struct {
	ram [0x400]uint8
}

// NewColorRAM is the preferred method of initialisation for the ColorRAM type.
func NewColorRAM() *ColorRAM {
	return &ColorRAM{}
}

func (c *ColorRAM) String() string {
	return "color RAM"
}

// Reset clears color RAM.
func (c *ColorRAM) Reset() {
	clear(c.ram[:])
}

// Read implements the Bank interface. The upper four bits are not connected
// and are returned as zero.
func (c *ColorRAM) Read(address uint16) uint8 {
	return c.ram[address&0x3ff]
}

// Write implements the Bank interface. Only the lower four bits are stored.
func (c *ColorRAM) Write(address uint16, data uint8) {
	c.ram[address&0x3ff] = data & 0x0f
}
