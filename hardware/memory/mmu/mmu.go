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

// Package mmu is the bus dispatcher of the C64. Every access by the CPU goes
// through the MMU, which routes it to exactly one bank.
//
// The MMU keeps two tables of sixteen banks, one for reads and one for
// writes, indexed by the top four bits of the address. The tables are rebuilt
// whenever the CPU port reports a change to the bank switching bits. This is
// the job done by the PLA in the real machine.
//
// The MMU also remembers the last value read from the data bus, which is what
// is read from an address with nothing attached.
package mmu

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/memory/banks"
	"github.com/jetsetilly/gopher64/hardware/memory/cpuport"
	"github.com/jetsetilly/gopher64/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// MMU implements the cpuport.PLA interface.
type MMU struct {
	sch *scheduler.Scheduler

	readMap  [memorymap.NumPages]banks.Bank
	writeMap [memorymap.NumPages]banks.Bank

	// the state of the bank switching bits most recently reported by the CPU
	// port
	port uint8

	// the last value on the data bus
	lastReadByte uint8

	RAM       *banks.SystemRAM
	Port      *cpuport.Port
	Kernal    *banks.KernalROM
	Basic     *banks.BasicROM
	Character *banks.CharacterROM
	IO        *banks.IOBank

	// the bank used for unmapped IO slots
	Disconnected *banks.DisconnectedBusBank

	// whether RAM is filled with the power-up pattern on reset
	powerUpPattern bool
}

// NewMMU is the preferred method of initialisation for the MMU type. The IO
// bank is created with all slots unmapped. Devices are added to the IO bank by
// the caller.
func NewMMU(sch *scheduler.Scheduler, fallOff int64) *MMU {
	mmu := &MMU{
		sch:            sch,
		RAM:            banks.NewSystemRAM(),
		Kernal:         banks.NewKernalROM(),
		Basic:          banks.NewBasicROM(),
		Character:      banks.NewCharacterROM(),
		powerUpPattern: true,
	}

	mmu.Port = cpuport.NewPort(mmu, mmu.RAM, fallOff)
	mmu.Disconnected = banks.NewDisconnectedBusBank(mmu)
	mmu.IO = banks.NewIOBank(mmu.Disconnected)

	mmu.readMap[0] = mmu.Port
	mmu.writeMap[0] = mmu.Port
	mmu.SetCPUPort(memorymap.BankBits)

	return mmu
}

func (mmu *MMU) String() string {
	return fmt.Sprintf("port=%d bus=%02x", mmu.port, mmu.lastReadByte)
}

// SetPowerUpPattern sets whether RAM is filled with the power-up pattern or
// with zero on reset.
func (mmu *MMU) SetPowerUpPattern(set bool) {
	mmu.powerUpPattern = set
}

// Reset the MMU and all the banks it owns. ROM patches are removed, RAM is
// refilled and the CPU port is returned to its power-up state.
func (mmu *MMU) Reset() {
	mmu.Kernal.Restore()
	mmu.Basic.Restore()
	mmu.Character.Restore()

	if mmu.powerUpPattern {
		mmu.RAM.Reset()
	} else {
		mmu.RAM.Clear()
	}

	mmu.lastReadByte = 0
	mmu.Port.Reset()
}

// SetCPUPort implements the cpuport.PLA interface. The read and write tables
// are rebuilt for the three bank switching bits.
func (mmu *MMU) SetCPUPort(state uint8) {
	mmu.port = state & memorymap.BankBits

	for p := 1; p < memorymap.NumPages; p++ {
		address := uint16(p << memorymap.PageShift)
		mmu.readMap[p] = mmu.bank(memorymap.MapAddress(address, mmu.port, true))
		mmu.writeMap[p] = mmu.bank(memorymap.MapAddress(address, mmu.port, false))
	}
}

func (mmu *MMU) bank(area memorymap.Area) banks.Bank {
	switch area {
	case memorymap.Basic:
		return mmu.Basic
	case memorymap.IO:
		return mmu.IO
	case memorymap.Character:
		return mmu.Character
	case memorymap.Kernal:
		return mmu.Kernal
	case memorymap.CPUPort:
		return mmu.Port
	}
	return mmu.RAM
}

// CPUPort returns the state of the bank switching bits.
func (mmu *MMU) CPUPort() uint8 {
	return mmu.port
}

// LastReadByte implements the cpuport.PLA and banks.LastByte interfaces.
func (mmu *MMU) LastReadByte() uint8 {
	return mmu.lastReadByte
}

// Phi2Time implements the cpuport.PLA interface.
func (mmu *MMU) Phi2Time() int64 {
	return mmu.sch.Time(scheduler.PHI2)
}

// Read is the CPU's view of memory.
func (mmu *MMU) Read(address uint16) uint8 {
	mmu.lastReadByte = mmu.readMap[address>>memorymap.PageShift].Read(address)
	return mmu.lastReadByte
}

// Write is the CPU's view of memory. Writes do not change the last read byte.
func (mmu *MMU) Write(address uint16, data uint8) {
	mmu.writeMap[address>>memorymap.PageShift].Write(address, data)
}

// ReadBank returns the bank that a read of the address will be routed to.
func (mmu *MMU) ReadBank(address uint16) banks.Bank {
	return mmu.readMap[address>>memorymap.PageShift]
}

// SetKernal replaces the kernal image. A nil image installs the built-in
// kernal.
func (mmu *MMU) SetKernal(image []uint8) error {
	return mmu.Kernal.Set(image)
}

// SetBasic replaces the BASIC image.
func (mmu *MMU) SetBasic(image []uint8) error {
	return mmu.Basic.Set(image)
}

// SetCharacter replaces the character generator image.
func (mmu *MMU) SetCharacter(image []uint8) error {
	return mmu.Character.Set(image)
}

// InstallResetHook points the kernal reset vector at the address.
func (mmu *MMU) InstallResetHook(address uint16) {
	mmu.Kernal.InstallResetHook(address)
}

// InstallBasicTrap replaces the BASIC warm start with a jump to the address.
func (mmu *MMU) InstallBasicTrap(address uint16) {
	mmu.Basic.InstallTrap(address)
}

// SetBasicSubtune installs the BASIC subtune selector.
func (mmu *MMU) SetBasicSubtune(subtune uint8) {
	mmu.Basic.SetSubtune(subtune)
}

// FillRAM writes value to length bytes of RAM.
func (mmu *MMU) FillRAM(start uint16, value uint8, length int) {
	mmu.RAM.Fill(start, value, length)
}

// LoadRAM copies data into RAM. Returns the number of bytes copied.
func (mmu *MMU) LoadRAM(start uint16, data []uint8) int {
	return mmu.RAM.Load(start, data)
}

// WriteMemByte writes directly to RAM.
func (mmu *MMU) WriteMemByte(address uint16, data uint8) {
	mmu.RAM.Write(address, data)
}

// WriteMemWord writes a little-endian word directly to RAM.
func (mmu *MMU) WriteMemWord(address uint16, data uint16) {
	mmu.RAM.Write(address, uint8(data))
	mmu.RAM.Write(address+1, uint8(data>>8))
}

// ReadMemByte reads directly from RAM.
func (mmu *MMU) ReadMemByte(address uint16) uint8 {
	return mmu.RAM.Read(address)
}
