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

package mmu_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/memory/banks"
	"github.com/jetsetilly/gopher64/hardware/memory/cpuport"
	"github.com/jetsetilly/gopher64/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher64/hardware/memory/mmu"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/test"
)

func newMMU(t *testing.T) *mmu.MMU {
	t.Helper()
	m := mmu.NewMMU(scheduler.NewScheduler(), cpuport.FallOff6510)

	basic := make([]uint8, banks.BasicSize)
	for i := range basic {
		basic[i] = 0xbb
	}
	test.DemandSuccess(t, m.SetBasic(basic))

	char := make([]uint8, banks.CharacterSize)
	for i := range char {
		char[i] = 0xcc
	}
	test.DemandSuccess(t, m.SetCharacter(char))

	m.IO.SetBank(memorymap.SlotColorRAM, banks.NewColorRAM())

	m.Reset()
	return m
}

func TestPowerUpMap(t *testing.T) {
	m := newMMU(t)

	test.ExpectEquality(t, m.CPUPort(), memorymap.BankBits)
	test.ExpectEquality(t, m.ReadBank(0x0000), banks.Bank(m.Port))
	test.ExpectEquality(t, m.ReadBank(0x1000), banks.Bank(m.RAM))
	test.ExpectEquality(t, m.ReadBank(0xa000), banks.Bank(m.Basic))
	test.ExpectEquality(t, m.ReadBank(0xd000), banks.Bank(m.IO))
	test.ExpectEquality(t, m.ReadBank(0xe000), banks.Bank(m.Kernal))

	// writes to ROM areas go to RAM
	m.Write(0xa000, 0x12)
	m.Write(0xe000, 0x34)
	test.ExpectEquality(t, m.RAM.Read(0xa000), uint8(0x12))
	test.ExpectEquality(t, m.RAM.Read(0xe000), uint8(0x34))
	test.ExpectInequality(t, m.Read(0xa000), uint8(0x12))
}

func TestBankSwitching(t *testing.T) {
	m := newMMU(t)

	m.Write(0x0000, 0x2f)

	m.Write(0x0001, 0x37)
	test.ExpectEquality(t, m.Read(0xa000), uint8(0xbb))
	test.ExpectEquality(t, m.ReadBank(0xd000), banks.Bank(m.IO))

	// BASIC out
	m.Write(0x0001, 0x36)
	test.ExpectEquality(t, m.ReadBank(0xa000), banks.Bank(m.RAM))
	test.ExpectEquality(t, m.ReadBank(0xe000), banks.Bank(m.Kernal))

	// character ROM in place of IO
	m.Write(0x0001, 0x33)
	test.ExpectEquality(t, m.Read(0xd000), uint8(0xcc))

	// IO but no ROMs
	m.Write(0x0001, 0x35)
	test.ExpectEquality(t, m.ReadBank(0xa000), banks.Bank(m.RAM))
	test.ExpectEquality(t, m.ReadBank(0xd000), banks.Bank(m.IO))
	test.ExpectEquality(t, m.ReadBank(0xe000), banks.Bank(m.RAM))

	// all RAM
	m.Write(0x0001, 0x34)
	test.ExpectEquality(t, m.ReadBank(0xd000), banks.Bank(m.RAM))
	m.Write(0x0001, 0x30)
	test.ExpectEquality(t, m.ReadBank(0xd000), banks.Bank(m.RAM))
}

func TestWriteUnderROM(t *testing.T) {
	m := newMMU(t)
	m.Write(0x0000, 0x2f)

	m.Write(0xa123, 0x42)
	test.ExpectEquality(t, m.Read(0xa123), uint8(0xbb))
	test.ExpectEquality(t, m.ReadMemByte(0xa123), uint8(0x42))

	m.Write(0x0001, 0x36)
	test.ExpectEquality(t, m.Read(0xa123), uint8(0x42))

	// writes to $D000 with the character ROM visible go to RAM
	m.Write(0x0001, 0x33)
	m.Write(0xd010, 0x99)
	test.ExpectEquality(t, m.Read(0xd010), uint8(0xcc))
	m.Write(0x0001, 0x34)
	test.ExpectEquality(t, m.Read(0xd010), uint8(0x99))
}

func TestDisconnectedBus(t *testing.T) {
	m := newMMU(t)

	m.WriteMemByte(0x1234, 0x6e)
	test.ExpectEquality(t, m.Read(0x1234), uint8(0x6e))
	test.ExpectEquality(t, m.LastReadByte(), uint8(0x6e))

	// CIA slots are not attached in this test
	test.ExpectEquality(t, m.Read(0xdc00), uint8(0x6e))

	// writes do not change the bus byte
	m.Write(0x2000, 0x11)
	test.ExpectEquality(t, m.Read(0xdd00), uint8(0x6e))

	// color RAM is attached
	m.Write(0xd800, 0xf3)
	test.ExpectEquality(t, m.Read(0xd800), uint8(0x03))
	test.ExpectEquality(t, m.Read(0xdc00), uint8(0x03))
}

func TestPortWritesBusByteToRAM(t *testing.T) {
	m := newMMU(t)

	m.WriteMemByte(0x4000, 0x5d)
	_ = m.Read(0x4000)
	m.Write(0x0001, 0x37)
	test.ExpectEquality(t, m.ReadMemByte(0x0001), uint8(0x5d))
	test.ExpectEquality(t, m.Read(0x0001)&0x07, uint8(0x07))
}

func TestLoaderHelpers(t *testing.T) {
	m := newMMU(t)

	m.FillRAM(0x0400, 0x20, 1000)
	test.ExpectEquality(t, m.Read(0x0400), uint8(0x20))
	test.ExpectEquality(t, m.Read(0x07e7), uint8(0x20))

	n := m.LoadRAM(0x1000, []uint8{0xa9, 0x00, 0x60})
	test.ExpectEquality(t, n, 3)
	test.ExpectEquality(t, m.Read(0x1002), uint8(0x60))

	m.WriteMemWord(0x0314, 0xea31)
	test.ExpectEquality(t, m.ReadMemByte(0x0314), uint8(0x31))
	test.ExpectEquality(t, m.ReadMemByte(0x0315), uint8(0xea))

	m.InstallResetHook(0x0334)
	test.ExpectEquality(t, m.Read(memorymap.Reset), uint8(0x34))
	test.ExpectEquality(t, m.Read(memorymap.Reset+1), uint8(0x03))

	m.InstallBasicTrap(0xc000)
	test.ExpectEquality(t, m.Read(memorymap.BasicWarmStart), uint8(0x4c))

	m.SetBasicSubtune(2)
	test.ExpectEquality(t, m.Read(memorymap.BasicSubtune+1), uint8(0x02))

	// reset undoes the patches
	m.Reset()
	test.ExpectEquality(t, m.Read(memorymap.BasicWarmStart), uint8(0xbb))
	test.ExpectEquality(t, m.Read(memorymap.Reset), uint8(0x39))

	err := m.SetKernal(make([]uint8, 10))
	test.ExpectSuccess(t, curated.Is(err, banks.WrongSize))
}

func TestResetWithoutPattern(t *testing.T) {
	m := newMMU(t)
	test.ExpectEquality(t, m.ReadMemByte(0x0002), uint8(0xff))

	m.SetPowerUpPattern(false)
	m.Reset()
	test.ExpectEquality(t, m.ReadMemByte(0x0002), uint8(0x00))
}
