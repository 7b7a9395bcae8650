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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/govern"
	"github.com/jetsetilly/gopher64/hardware"
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/test"
)

const driver = 0x0334

func newC64(t *testing.T) *hardware.C64 {
	t.Helper()
	c64, err := hardware.NewC64(nil)
	test.DemandSuccess(t, err)
	c64.SetQuiet(true)
	c64.Reset()
	return c64
}

// boot places the code in RAM and resets the CPU so that it starts executing
// the code
func boot(c64 *hardware.C64, code ...uint8) {
	c64.Mem.LoadRAM(driver, code)
	c64.Mem.InstallResetHook(driver)
	c64.ResetCPU()
}

func TestModels(t *testing.T) {
	m, err := hardware.ParseModel("pal-b")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, hardware.PALB)
	test.ExpectApproximate(t, m.CPUFrequency(), 985248.6, 0.00001)
	test.ExpectEquality(t, m.VIC(), vic.MOS6569)
	test.ExpectEquality(t, m.PowerFrequency(), 50)
	test.ExpectFailure(t, m.IsNTSC())

	m, err = hardware.ParseModel("NTSC-M")
	test.ExpectSuccess(t, err)
	test.ExpectApproximate(t, m.CPUFrequency(), 1022727.3, 0.00001)
	test.ExpectEquality(t, m.VIC(), vic.MOS6567R8)
	test.ExpectSuccess(t, m.IsNTSC())

	m, err = hardware.ParseModel("OLD-NTSC-M")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.VIC(), vic.MOS6567R56A)

	m, err = hardware.ParseModel("PAL-N")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.VIC(), vic.MOS6572)
	test.ExpectApproximate(t, m.CPUFrequency(), 1023444.6, 0.00001)
	test.ExpectFailure(t, m.IsNTSC())

	m, err = hardware.ParseModel("PAL-M")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.VIC(), vic.MOS6573)
	test.ExpectEquality(t, m.PowerFrequency(), 50)

	_, err = hardware.ParseModel("VIC-20")
	test.ExpectSuccess(t, curated.Is(err, hardware.UnknownModel))
}

func TestSetModel(t *testing.T) {
	c64 := newC64(t)
	test.ExpectEquality(t, c64.Model(), hardware.PALB)
	test.ExpectEquality(t, c64.VIC.Model(), vic.MOS6569)

	c64.SetModel(hardware.NTSCM)
	test.ExpectEquality(t, c64.VIC.Model(), vic.MOS6567R8)
	test.ExpectApproximate(t, c64.CPUFrequency(), 1022727.3, 0.00001)

	rec := test.ExpectPanic(t, func() {
		c64.SetModel(hardware.Model(100))
	})
	err, ok := rec.(error)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnknownModel))
}

func TestModelPreference(t *testing.T) {
	c64 := newC64(t)
	test.ExpectFailure(t, c64.Prefs.Model.Set("C128"))
	test.ExpectSuccess(t, c64.Prefs.Model.Set("pal-n"))
}

func TestIOLayout(t *testing.T) {
	c64 := newC64(t)

	// color RAM
	c64.Mem.Write(0xd800, 0xff)
	test.ExpectEquality(t, c64.Mem.Read(0xd800), uint8(0x0f))

	// no SID attached
	test.ExpectEquality(t, c64.Mem.Read(0xd41b), uint8(0xff))

	// SID registers are mirrored
	r := sid.NewRecorder("base", c64.Scheduler, nil)
	c64.SetBaseSID(r)
	c64.Mem.Write(0xd7f8, 0x0c)
	test.ExpectEquality(t, r.Register(0x18), uint8(0x0c))

	// the expansion slots return the last value read from the bus
	c64.Mem.Read(0xd800)
	test.ExpectEquality(t, c64.Mem.Read(0xde00), uint8(0x0f))
	test.ExpectEquality(t, c64.Mem.Read(0xdfff), uint8(0x0f))

	// CIA registers are mirrored every 16 bytes
	c64.Mem.Write(0xdc12, 0x55)
	test.ExpectEquality(t, c64.Mem.Read(0xdc02), uint8(0x55))
	c64.Mem.Write(0xdd03, 0xaa)
	test.ExpectEquality(t, c64.Mem.Read(0xdd33), uint8(0xaa))

	// VIC registers are mirrored every 64 bytes
	c64.Mem.Write(0xd01a, 0x01)
	test.ExpectEquality(t, c64.Mem.Read(0xd05a), uint8(0xf1))
}

func TestExtraSID(t *testing.T) {
	c64 := newC64(t)

	base := sid.NewRecorder("base", c64.Scheduler, nil)
	c64.SetBaseSID(base)

	for _, a := range []uint16{0xc400, 0xd000, 0xd3e0, 0xd800, 0xdc00, 0xdd00, 0xe420} {
		err := c64.AddExtraSID(sid.NewRecorder("bad", c64.Scheduler, nil), a)
		test.ExpectSuccess(t, curated.Is(err, hardware.ExtraSIDAddress), a)
	}

	second := sid.NewRecorder("second", c64.Scheduler, nil)
	test.ExpectSuccess(t, c64.AddExtraSID(second, 0xd420))
	third := sid.NewRecorder("third", c64.Scheduler, nil)
	test.ExpectSuccess(t, c64.AddExtraSID(third, 0xde00))
	test.ExpectEquality(t, len(c64.SIDs()), 3)

	c64.Mem.Write(0xd438, 0x03)
	test.ExpectEquality(t, second.Register(0x18), uint8(0x03))

	// the rest of the slot still reaches the base SID
	c64.Mem.Write(0xd418, 0x05)
	test.ExpectEquality(t, base.Register(0x18), uint8(0x05))
	c64.Mem.Write(0xd458, 0x06)
	test.ExpectEquality(t, base.Register(0x18), uint8(0x06))
	test.ExpectEquality(t, second.Register(0x18), uint8(0x03))

	c64.Mem.Write(0xde18, 0x07)
	test.ExpectEquality(t, third.Register(0x18), uint8(0x07))

	// the rest of the expansion slot is still disconnected
	c64.Mem.Read(0xd800)
	test.ExpectEquality(t, c64.Mem.Read(0xde20), c64.Mem.Read(0xd800))

	// outputs of all chips are mixed
	mix := (int(base.Output()) + int(second.Output()) + int(third.Output())) / 3
	test.ExpectEquality(t, c64.Output(), int16(mix))

	c64.RemoveExtraSIDs()
	test.ExpectEquality(t, len(c64.SIDs()), 1)
	c64.Mem.Write(0xd438, 0x08)
	test.ExpectEquality(t, base.Register(0x18), uint8(0x08))
	test.ExpectEquality(t, second.Register(0x18), uint8(0x03))
}

func TestBasicTrap(t *testing.T) {
	c64 := newC64(t)

	// RAM holds the power-up pattern
	test.ExpectEquality(t, c64.Mem.ReadMemByte(0x0000), uint8(0x00))
	test.ExpectEquality(t, c64.Mem.ReadMemByte(0x0002), uint8(0xff))
	test.ExpectEquality(t, c64.Mem.ReadMemByte(0x4000), uint8(0xff))

	// the reset routine jumps to the BASIC warm start
	boot(c64, 0x4c, 0xae, 0xa7)
	c64.Mem.InstallBasicTrap(0xc000)

	// halt at the trap target
	c64.Mem.WriteMemByte(0xc000, 0x02)

	err := c64.Run(nil)
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))
	test.ExpectEquality(t, c64.CPU.LastResult.Address, uint16(0xc000))
}

func TestBuiltinKernal(t *testing.T) {
	c64 := newC64(t)

	// the reset routine of the built-in kernal halts the CPU
	test.ExpectEquality(t, c64.CPU.PC.Address(), uint16(0xea39))
	err := c64.Run(nil)
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))

	// the CPU stays killed
	err = c64.Step(nil)
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))
}

func TestRecoverUnsupportedOpcode(t *testing.T) {
	c64 := newC64(t)
	boot(c64, 0xea, 0x8b, 0x00)

	err := c64.Run(nil)
	test.ExpectSuccess(t, curated.Is(err, cpu.UnsupportedOpcode))
}

func TestContinueCheck(t *testing.T) {
	c64 := newC64(t)

	// JMP $0334
	boot(c64, 0x4c, 0x34, 0x03)

	var n int
	err := c64.Run(func() (govern.State, error) {
		n++
		if n == 10 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 10)
	test.ExpectEquality(t, c64.Time(), int64(30))

	// a paused emulation does not advance
	n = 0
	err = c64.Run(func() (govern.State, error) {
		n++
		if n == 10 {
			return govern.Ending, nil
		}
		return govern.Paused, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c64.Time(), int64(33))
}

func TestRunForCycles(t *testing.T) {
	c64 := newC64(t)
	boot(c64, 0x4c, 0x34, 0x03)

	test.ExpectSuccess(t, c64.RunForCycles(3000))
	test.ExpectEquality(t, c64.Time(), int64(3000))

	c64.Reset()
	boot(c64, 0x4c, 0x34, 0x03)
	test.ExpectSuccess(t, c64.RunForSeconds(1.0))
	test.ExpectApproximate(t, c64.Seconds(), 1.0, 0.0001)
}

func TestRasterIRQ(t *testing.T) {
	c64 := newC64(t)

	code := []uint8{
		0x78,       // SEI
		0xa9, 0x01, // LDA #$01
		0x8d, 0x1a, 0xd0, // STA $D01A
		0xa9, 0x30, //       LDA #$30
		0x8d, 0x12, 0xd0, // STA $D012
		0xa9, 0x1b, //       LDA #$1B
		0x8d, 0x11, 0xd0, // STA $D011
		0xa9, 0x60, //       LDA #$60
		0x8d, 0x14, 0x03, // STA $0314
		0xa9, 0x03, //       LDA #$03
		0x8d, 0x15, 0x03, // STA $0315
		0x58,             // CLI
		0x4c, 0x58, 0x03, // JMP $0358
	}
	handler := []uint8{
		0xee, 0x19, 0xd0, // INC $D019
		0xe6, 0x02, //       INC $02
		0x68, //             PLA
		0xa8, //             TAY
		0x68, //             PLA
		0xaa, //             TAX
		0x68, //             PLA
		0x40, //             RTI
	}

	boot(c64, code...)
	c64.Mem.LoadRAM(0x0358, []uint8{0x4c, 0x58, 0x03})
	c64.Mem.LoadRAM(0x0360, handler)
	c64.Mem.WriteMemByte(0x02, 0x00)

	// one interrupt per frame
	const frame = 63 * 312
	test.ExpectSuccess(t, c64.RunForCycles(frame*3))
	test.ExpectEquality(t, c64.Mem.ReadMemByte(0x02), uint8(3))

	// the interrupt has been acknowledged
	test.ExpectEquality(t, c64.Mem.Read(0xd019)&0x81, uint8(0x00))
}

func TestCIA2NMI(t *testing.T) {
	c64 := newC64(t)

	code := []uint8{
		0xa9, 0x10, //       LDA #$10
		0x8d, 0x04, 0xdd, // STA $DD04
		0xa9, 0x00, //       LDA #$00
		0x8d, 0x05, 0xdd, // STA $DD05
		0xa9, 0x81, //       LDA #$81
		0x8d, 0x0d, 0xdd, // STA $DD0D
		0xa9, 0x11, //       LDA #$11
		0x8d, 0x0e, 0xdd, // STA $DD0E
		0x4c, 0x48, 0x03, // JMP $0348
	}
	boot(c64, code...)

	// the NMI vector of the built-in kernal points to a halt
	err := c64.RunForCycles(1000)
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))
	test.ExpectEquality(t, c64.CPU.LastResult.Address, uint16(0xea39))
}

func TestLightpen(t *testing.T) {
	c64 := newC64(t)

	code := []uint8{
		0xad, 0x12, 0xd0, // LDA $D012
		0xc9, 0x40, //       CMP #$40
		0xd0, 0xf9, //       BNE $0334
		0xa9, 0x10, //       LDA #$10
		0x8d, 0x03, 0xdc, // STA $DC03
		0xa9, 0x00, //       LDA #$00
		0x8d, 0x01, 0xdc, // STA $DC01
		0xea,             // NOP
		0xad, 0x19, 0xd0, // LDA $D019
		0x85, 0x02, //       STA $02
		0xad, 0x14, 0xd0, // LDA $D014
		0x85, 0x03, //       STA $03
		0x02, //             JAM
	}
	boot(c64, code...)

	err := c64.Run(nil)
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))
	test.ExpectEquality(t, c64.Mem.ReadMemByte(0x02)&0x08, uint8(0x08))
	test.ExpectEquality(t, c64.Mem.ReadMemByte(0x03), uint8(0x40))
}

func TestResetCPUDuringDMA(t *testing.T) {
	c64 := newC64(t)

	// enable bad lines and wait for the VIC to take the bus
	c64.VIC.Write(0xd011, 0x1b)
	for c64.VIC.State().BA {
		c64.Scheduler.Clock()
	}

	// the CPU is stalled straight after the reset
	c64.ResetCPU()
	test.ExpectFailure(t, c64.CPU.RdyFlg)

	for !c64.VIC.State().BA {
		c64.Scheduler.Clock()
	}
	test.ExpectSuccess(t, c64.CPU.RdyFlg)

	// and the next bad line is not missed
	for c64.VIC.State().BA {
		c64.Scheduler.Clock()
	}
	test.ExpectFailure(t, c64.CPU.RdyFlg)
}

func TestTODFollowsMains(t *testing.T) {
	c64 := newC64(t)
	boot(c64, 0x4c, 0x34, 0x03)

	// tell CIA1 it is running at 50Hz and start the clock
	c64.CIA1.Write(0xdc0e, 0x80)
	c64.CIA1.Write(0xdc08, 0x00)

	test.ExpectSuccess(t, c64.RunForSeconds(1.05))
	test.ExpectEquality(t, c64.CIA1.Read(0xdc0b), uint8(0x01))
	test.ExpectEquality(t, c64.CIA1.Read(0xdc0a), uint8(0x00))
	test.ExpectEquality(t, c64.CIA1.Read(0xdc09), uint8(0x01))
	test.ExpectEquality(t, c64.CIA1.Read(0xdc08), uint8(0x00))
}
