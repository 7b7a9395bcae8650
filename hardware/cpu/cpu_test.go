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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/test"
)

const origin = 0x0200

type access struct {
	address uint16
	data    uint8
}

type mockMem struct {
	internal [0x10000]uint8
	writes   []access
}

func (mem *mockMem) Read(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) Write(address uint16, data uint8) {
	mem.writes = append(mem.writes, access{address: address, data: data})
	mem.internal[address] = data
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) putVector(vector uint16, address uint16) {
	mem.internal[vector] = uint8(address)
	mem.internal[vector+1] = uint8(address >> 8)
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	test.ExpectEquality(t, mem.internal[address], value, address)
}

// newCPU returns a CPU that has been reset. programs start at origin. IRQ
// handlers at $0300 and NMI handlers at $0400
func newCPU() (*cpu.CPU, *mockMem) {
	mem := &mockMem{}
	mem.putVector(cpu.ResetVector, origin)
	mem.putVector(cpu.IRQVector, 0x0300)
	mem.putVector(cpu.NMIVector, 0x0400)
	mc := cpu.NewCPU(logger.Allow, mem)
	mc.Reset()
	return mc, mem
}

// step executes a single instruction and checks that the result is
// consistent with the instruction definition
func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()

	var callbacks int
	err := mc.ExecuteInstruction(func() error {
		callbacks++
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
	test.ExpectEquality(t, callbacks, mc.LastResult.Cycles)
}

func TestReset(t *testing.T) {
	mc, _ := newCPU()
	test.ExpectEquality(t, mc.PC.Address(), origin)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzc")
	test.ExpectSuccess(t, mc.RdyFlg)
	test.ExpectEquality(t, mc.String(), "PC=0200 A=00 X=00 Y=00 SP=fd SR=sv-dIzc")
}

func TestStatusInstructions(t *testing.T) {
	mc, mem := newCPU()

	// SEC; CLC; CLI; SEI; SED; CLD; CLV
	mem.putInstructions(origin, 0x38, 0x18, 0x58, 0x78, 0xf8, 0xd8, 0xb8, 0x08, 0x28)
	step(t, mc) // SEC
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzC")
	step(t, mc) // CLC
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzc")
	step(t, mc) // CLI
	test.ExpectEquality(t, mc.Status.String(), "sv-dizc")
	step(t, mc) // SEI
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzc")
	step(t, mc) // SED
	test.ExpectEquality(t, mc.Status.String(), "sv-DIzc")
	step(t, mc) // CLD
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzc")
	step(t, mc) // CLV
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzc")

	// PHP; PLP
	step(t, mc) // PHP
	test.ExpectEquality(t, mc.SP.Value(), 0xfc)

	// the pushed status register has the break bit set
	mem.assert(t, 0x01fd, 0x34)

	// mangle status register
	mc.Status.Sign = true
	mc.Status.Overflow = true

	// restore status register
	step(t, mc) // PLP
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.String(), "sv-dIzc")
}

func TestArithmetic(t *testing.T) {
	mc, mem := newCPU()

	// LDA #1; ADC #10; SEC; SBC #8
	mem.putInstructions(origin, 0xa9, 1, 0x69, 10, 0x38, 0xe9, 8)
	step(t, mc) // LDA #1
	step(t, mc) // ADC #10
	test.ExpectEquality(t, mc.A.Value(), 11)
	step(t, mc) // SEC
	step(t, mc) // SBC #8
	test.ExpectEquality(t, mc.A.Value(), 3)
	test.ExpectSuccess(t, mc.Status.Carry)

	// overflow
	mc, mem = newCPU()

	// LDA #$7f; ADC #1; CLV
	mem.putInstructions(origin, 0xa9, 0x7f, 0x69, 0x01, 0xb8)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectEquality(t, mc.Status.String(), "SV-dIzc")
	step(t, mc)
	test.ExpectEquality(t, mc.Status.String(), "Sv-dIzc")
}

func TestDecimalMode(t *testing.T) {
	mc, mem := newCPU()

	// SED; LDA #$09; CLC; ADC #$01; SEC; SBC #$01; ADC #$99; CLD
	mem.putInstructions(origin, 0xf8, 0xa9, 0x09, 0x18, 0x69, 0x01, 0x38, 0xe9, 0x01, 0x69, 0x91, 0xd8)
	step(t, mc) // SED
	step(t, mc) // LDA #$09
	step(t, mc) // CLC
	step(t, mc) // ADC #$01
	test.ExpectEquality(t, mc.A.Value(), 0x10)
	test.ExpectFailure(t, mc.Status.Carry)
	step(t, mc) // SEC
	step(t, mc) // SBC #$01
	test.ExpectEquality(t, mc.A.Value(), 0x09)
	test.ExpectSuccess(t, mc.Status.Carry)
	step(t, mc) // ADC #$91
	test.ExpectEquality(t, mc.A.Value(), 0x01)
	test.ExpectSuccess(t, mc.Status.Carry)
	step(t, mc) // CLD
	test.ExpectFailure(t, mc.Status.DecimalMode)
}

func TestBitwiseInstructions(t *testing.T) {
	mc, mem := newCPU()

	// ORA #$ff; EOR #$f0; AND #$01; ASL A; LSR A; LSR A; ROR A; ROL A
	mem.putInstructions(origin, 0x09, 0xff, 0x49, 0xf0, 0x29, 0x01, 0x0a, 0x4a, 0x4a, 0x6a, 0x2a)
	step(t, mc) // ORA #$FF
	test.ExpectEquality(t, mc.A.Value(), 0xff)
	test.ExpectSuccess(t, mc.Status.Sign)
	step(t, mc) // EOR #$F0
	test.ExpectEquality(t, mc.A.Value(), 0x0f)
	step(t, mc) // AND #$01
	test.ExpectEquality(t, mc.A.Value(), 0x01)
	step(t, mc) // ASL A
	test.ExpectEquality(t, mc.A.Value(), 0x02)
	step(t, mc) // LSR A
	test.ExpectEquality(t, mc.A.Value(), 0x01)
	test.ExpectFailure(t, mc.Status.Carry)
	step(t, mc) // LSR A
	test.ExpectEquality(t, mc.A.Value(), 0x00)
	test.ExpectSuccess(t, mc.Status.Carry)
	test.ExpectSuccess(t, mc.Status.Zero)
	step(t, mc) // ROR A
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectFailure(t, mc.Status.Carry)
	step(t, mc) // ROL A
	test.ExpectEquality(t, mc.A.Value(), 0x00)
	test.ExpectSuccess(t, mc.Status.Carry)

	// BIT $10
	mc, mem = newCPU()
	mem.internal[0x10] = 0xc0
	mem.putInstructions(origin, 0xa9, 0x01, 0x24, 0x10)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Status.String(), "SV-dIZc")
}

func TestAddressingModes(t *testing.T) {
	mc, mem := newCPU()

	mem.internal[0x20] = 0x00
	mem.internal[0x21] = 0x30
	mem.internal[0x22] = 0xff
	mem.internal[0x23] = 0x30
	mem.internal[0x3000] = 0x11
	mem.internal[0x3002] = 0x5a
	mem.internal[0x3101] = 0x77

	// pointer wraps around in zero page
	mem.internal[0xff] = 0x00
	mem.internal[0x00] = 0x40
	mem.internal[0x4000] = 0x99

	o := mem.putInstructions(origin, 0xa2, 0x04) // LDX #$04
	o = mem.putInstructions(o, 0xa9, 0xab)       // LDA #$AB
	o = mem.putInstructions(o, 0x95, 0x10)       // STA $10,X
	o = mem.putInstructions(o, 0xa0, 0x02)       // LDY #$02
	o = mem.putInstructions(o, 0x99, 0x00, 0x10) // STA $1000,Y
	o = mem.putInstructions(o, 0xb1, 0x20)       // LDA ($20),Y
	o = mem.putInstructions(o, 0xb1, 0x22)       // LDA ($22),Y
	o = mem.putInstructions(o, 0xa1, 0x1c)       // LDA ($1C),X
	o = mem.putInstructions(o, 0xa2, 0x00)       // LDX #$00
	o = mem.putInstructions(o, 0xa1, 0xff)       // LDA ($FF,X)
	o = mem.putInstructions(o, 0xa2, 0xff)       // LDX #$FF
	o = mem.putInstructions(o, 0xb5, 0x15)       // LDA $15,X
	mem.putInstructions(o, 0xbd, 0x02, 0x30)     // LDA $3002,X

	step(t, mc) // LDX #$04
	step(t, mc) // LDA #$AB
	step(t, mc) // STA $10,X
	mem.assert(t, 0x14, 0xab)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)

	step(t, mc) // LDY #$02
	step(t, mc) // STA $1000,Y
	mem.assert(t, 0x1002, 0xab)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)

	step(t, mc) // LDA ($20),Y
	test.ExpectEquality(t, mc.A.Value(), 0x5a)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)

	step(t, mc) // LDA ($22),Y
	test.ExpectEquality(t, mc.A.Value(), 0x77)
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)
	test.ExpectSuccess(t, mc.LastResult.PageFault)

	step(t, mc) // LDA ($1C,X)
	test.ExpectEquality(t, mc.A.Value(), 0x11)
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)

	step(t, mc) // LDX #$00
	step(t, mc) // LDA ($FF,X)
	test.ExpectEquality(t, mc.A.Value(), 0x99)

	// zero page indexing wraps around in zero page
	step(t, mc) // LDX #$FF
	step(t, mc) // LDA $15,X
	test.ExpectEquality(t, mc.A.Value(), 0xab)
	test.ExpectInequality(t, mc.LastResult.CPUBug, "")

	step(t, mc) // LDA $3002,X
	test.ExpectEquality(t, mc.A.Value(), 0x77)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)
	test.ExpectSuccess(t, mc.LastResult.PageFault)
}

func TestReadModifyWrite(t *testing.T) {
	mc, mem := newCPU()
	mem.internal[0x1000] = 0x41

	// INC $1000
	mem.putInstructions(origin, 0xee, 0x00, 0x10)
	step(t, mc)
	mem.assert(t, 0x1000, 0x42)
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)

	// the unmodified value is written before the modified value
	test.DemandEquality(t, len(mem.writes), 2)
	test.ExpectEquality(t, mem.writes[0], access{address: 0x1000, data: 0x41})
	test.ExpectEquality(t, mem.writes[1], access{address: 0x1000, data: 0x42})
}

func TestBranching(t *testing.T) {
	mc, mem := newCPU()

	// LDX #$03; DEX; BNE $fd
	mem.putInstructions(origin, 0xa2, 0x03, 0xca, 0xd0, 0xfd)
	step(t, mc) // LDX #$03
	for i := range 2 {
		step(t, mc) // DEX
		step(t, mc) // BNE
		test.ExpectSuccess(t, mc.LastResult.BranchSuccess, i)
		test.ExpectEquality(t, mc.LastResult.Cycles, 3, i)
		test.ExpectEquality(t, mc.PC.Address(), 0x0202, i)
	}
	step(t, mc) // DEX
	step(t, mc) // BNE
	test.ExpectFailure(t, mc.LastResult.BranchSuccess)
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)
	test.ExpectEquality(t, mc.PC.Address(), 0x0205)

	// forward branch over a page boundary
	mem.putInstructions(0x02f0, 0xf0, 0x20)
	mc.LoadPC(0x02f0)
	mc.Status.Zero = true
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x0312)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)
	test.ExpectSuccess(t, mc.LastResult.PageFault)

	// backward branch over a page boundary
	mem.putInstructions(0x0300, 0xd0, 0xf0)
	mc.LoadPC(0x0300)
	mc.Status.Zero = false
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x02f2)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)
}

func TestSubroutines(t *testing.T) {
	mc, mem := newCPU()

	// JSR $0300
	mem.putInstructions(origin, 0x20, 0x00, 0x03)

	// RTS
	mem.putInstructions(0x0300, 0x60)

	step(t, mc) // JSR
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)
	test.ExpectEquality(t, mc.SP.Value(), 0xfb)
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)

	// return address is the last byte of the JSR instruction
	mem.assert(t, 0x01fd, 0x02)
	mem.assert(t, 0x01fc, 0x02)

	step(t, mc) // RTS
	test.ExpectEquality(t, mc.PC.Address(), 0x0203)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)
}

func TestJumps(t *testing.T) {
	mc, mem := newCPU()
	mem.internal[0x30ff] = 0x34
	mem.internal[0x3000] = 0x12
	mem.internal[0x3100] = 0x56

	// JMP ($30FF)
	mem.putInstructions(origin, 0x6c, 0xff, 0x30)
	step(t, mc)

	// high byte is read from the start of the same page
	test.ExpectEquality(t, mc.PC.Address(), 0x1234)
	test.ExpectInequality(t, mc.LastResult.CPUBug, "")

	// JMP $0200
	mem.putInstructions(0x1234, 0x4c, 0x00, 0x02)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), origin)
	test.ExpectEquality(t, mc.LastResult.Cycles, 3)
}

func TestBreak(t *testing.T) {
	mc, mem := newCPU()

	// CLI; BRK; padding
	mem.putInstructions(origin, 0x58, 0x00, 0xea)

	// RTI
	mem.putInstructions(0x0300, 0x40)

	step(t, mc) // CLI
	step(t, mc) // BRK
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)
	test.ExpectEquality(t, mc.SP.Value(), 0xfa)
	test.ExpectSuccess(t, mc.Status.InterruptDisable)
	mem.assert(t, 0x01fd, 0x02)
	mem.assert(t, 0x01fc, 0x03)
	mem.assert(t, 0x01fb, 0x30)

	step(t, mc) // RTI
	test.ExpectEquality(t, mc.PC.Address(), 0x0203)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.String(), "sv-dizc")
}

func TestUndocumented(t *testing.T) {
	mc, mem := newCPU()

	o := mem.putInstructions(origin, 0xa7, 0x10) // LAX $10
	o = mem.putInstructions(o, 0x87, 0x11)       // SAX $11
	o = mem.putInstructions(o, 0xc7, 0x12)       // DCP $12
	o = mem.putInstructions(o, 0xe7, 0x13)       // ISC $13
	o = mem.putInstructions(o, 0x07, 0x14)       // SLO $14
	o = mem.putInstructions(o, 0x27, 0x15)       // RLA $15
	o = mem.putInstructions(o, 0x47, 0x16)       // SRE $16
	o = mem.putInstructions(o, 0x67, 0x17)       // RRA $17
	o = mem.putInstructions(o, 0x0b, 0x80)       // ANC #$80
	o = mem.putInstructions(o, 0x4b, 0x03)       // ALR #$03
	o = mem.putInstructions(o, 0x6b, 0xff)       // ARR #$FF
	o = mem.putInstructions(o, 0xcb, 0x02)       // SBX #$02
	o = mem.putInstructions(o, 0xeb, 0x01)       // SBC #$01
	mem.putInstructions(o, 0x1c, 0xff, 0x10)     // NOP $10FF,X

	mem.internal[0x10] = 0x80
	mem.internal[0x12] = 0x05
	mem.internal[0x13] = 0x01
	mem.internal[0x14] = 0x81
	mem.internal[0x15] = 0x40
	mem.internal[0x16] = 0x03
	mem.internal[0x17] = 0x02

	step(t, mc) // LAX $10
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectEquality(t, mc.X.Value(), 0x80)
	test.ExpectSuccess(t, mc.Status.Sign)

	mc.A.Load(0xf0)
	mc.X.Load(0x3c)
	step(t, mc) // SAX $11
	mem.assert(t, 0x11, 0x30)

	mc.A.Load(0x04)
	step(t, mc) // DCP $12
	mem.assert(t, 0x12, 0x04)
	test.ExpectSuccess(t, mc.Status.Zero)
	test.ExpectSuccess(t, mc.Status.Carry)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)

	mc.A.Load(0x05)
	step(t, mc) // ISC $13
	mem.assert(t, 0x13, 0x02)
	test.ExpectEquality(t, mc.A.Value(), 0x03)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.A.Load(0x02)
	step(t, mc) // SLO $14
	mem.assert(t, 0x14, 0x02)
	test.ExpectEquality(t, mc.A.Value(), 0x02)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.A.Load(0xff)
	mc.Status.Carry = false
	step(t, mc) // RLA $15
	mem.assert(t, 0x15, 0x80)
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectFailure(t, mc.Status.Carry)

	mc.A.Load(0x01)
	step(t, mc) // SRE $16
	mem.assert(t, 0x16, 0x01)
	test.ExpectEquality(t, mc.A.Value(), 0x00)
	test.ExpectSuccess(t, mc.Status.Zero)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.A.Load(0x10)
	step(t, mc) // RRA $17
	mem.assert(t, 0x17, 0x81)
	test.ExpectEquality(t, mc.A.Value(), 0x91)
	test.ExpectFailure(t, mc.Status.Carry)

	mc.A.Load(0xff)
	step(t, mc) // ANC #$80
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.A.Load(0xff)
	step(t, mc) // ALR #$03
	test.ExpectEquality(t, mc.A.Value(), 0x01)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.A.Load(0xc0)
	mc.Status.Carry = true
	step(t, mc) // ARR #$FF
	test.ExpectEquality(t, mc.A.Value(), 0xe0)
	test.ExpectSuccess(t, mc.Status.Carry)
	test.ExpectFailure(t, mc.Status.Overflow)

	mc.A.Load(0x0f)
	mc.X.Load(0x05)
	step(t, mc) // SBX #$02
	test.ExpectEquality(t, mc.X.Value(), 0x03)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.A.Load(0x05)
	step(t, mc) // SBC #$01
	test.ExpectEquality(t, mc.A.Value(), 0x04)

	mc.X.Load(0x01)
	step(t, mc) // NOP $10FF,X
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)
}

func TestJAM(t *testing.T) {
	mc, mem := newCPU()
	mem.putInstructions(origin, 0x02)

	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))
	test.ExpectSuccess(t, mc.Killed)
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)

	// the CPU stays killed without consuming any cycles
	var callbacks int
	err = mc.ExecuteInstruction(func() error {
		callbacks++
		return nil
	})
	test.ExpectSuccess(t, curated.Is(err, cpu.Killed))
	test.ExpectEquality(t, callbacks, 0)

	mc.Reset()
	test.ExpectFailure(t, mc.Killed)
}

func TestUnsupportedOpcode(t *testing.T) {
	mc, mem := newCPU()

	// XAA is unstable on real hardware
	mem.putInstructions(origin, 0x8b, 0xff)

	rec := test.ExpectPanic(t, func() {
		_ = mc.ExecuteInstruction(cpu.NilCycleCallback)
	})
	err, ok := rec.(error)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, cpu.UnsupportedOpcode))
}

func TestIRQ(t *testing.T) {
	mc, mem := newCPU()

	// NOP; CLI; NOP; NOP
	mem.putInstructions(origin, 0xea, 0x58, 0xea, 0xea)
	mem.putInstructions(0x0300, 0xea)

	mc.SetIRQ(true)

	step(t, mc) // NOP (interrupts disabled)
	test.ExpectEquality(t, mc.LastResult.Interrupt, "")
	step(t, mc) // CLI
	test.ExpectEquality(t, mc.LastResult.Interrupt, "")

	// the instruction after CLI is always executed
	step(t, mc) // NOP
	test.ExpectEquality(t, mc.LastResult.Interrupt, "")
	test.ExpectEquality(t, mc.PC.Address(), 0x0203)

	step(t, mc) // IRQ
	test.ExpectEquality(t, mc.LastResult.Interrupt, "IRQ")
	test.ExpectEquality(t, mc.LastResult.Cycles, 7)
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)
	test.ExpectSuccess(t, mc.Status.InterruptDisable)

	// return address is the interrupted instruction and the break bit is not
	// set in the pushed status register
	mem.assert(t, 0x01fd, 0x02)
	mem.assert(t, 0x01fc, 0x03)
	mem.assert(t, 0x01fb, 0x20)

	step(t, mc) // NOP in handler
	test.ExpectEquality(t, mc.LastResult.Interrupt, "")
}

func TestIRQIsLevelTriggered(t *testing.T) {
	mc, mem := newCPU()

	// CLI; NOP; NOP
	mem.putInstructions(origin, 0x58, 0xea, 0xea)

	step(t, mc) // CLI
	step(t, mc) // NOP

	// the line is released before the interrupt is serviced
	mc.SetIRQ(true)
	mc.SetIRQ(false)
	step(t, mc) // NOP
	test.ExpectEquality(t, mc.LastResult.Interrupt, "")
	test.ExpectEquality(t, mc.PC.Address(), 0x0203)
}

func TestSEIDelay(t *testing.T) {
	mc, mem := newCPU()

	// CLI; NOP; SEI; NOP
	mem.putInstructions(origin, 0x58, 0xea, 0x78, 0xea)

	step(t, mc) // CLI
	step(t, mc) // NOP
	step(t, mc) // SEI

	// an IRQ arriving during SEI is still serviced
	mc.SetIRQ(true)
	step(t, mc)
	test.ExpectEquality(t, mc.LastResult.Interrupt, "IRQ")

	// status register pushed with the interrupt disable flag set by SEI
	mem.assert(t, 0x01fb, 0x24)
	mem.assert(t, 0x01fc, 0x03)
}

func TestNMI(t *testing.T) {
	mc, mem := newCPU()
	mem.putInstructions(origin, 0xea)
	mem.putInstructions(0x0400, 0xea, 0xea)

	// NMI is not masked by the interrupt disable flag
	mc.TriggerNMI()
	step(t, mc)
	test.ExpectEquality(t, mc.LastResult.Interrupt, "NMI")
	test.ExpectEquality(t, mc.PC.Address(), 0x0400)

	// NMI is edge triggered and only serviced once
	step(t, mc)
	test.ExpectEquality(t, mc.LastResult.Interrupt, "")
	test.ExpectEquality(t, mc.PC.Address(), 0x0401)
}

func TestRDY(t *testing.T) {
	mc, mem := newCPU()

	// LDA #$01; STA $1000
	mem.putInstructions(origin, 0xa9, 0x01, 0x8d, 0x00, 0x10)

	// reads are stalled until RDY is released
	mc.RdyFlg = false
	var callbacks int
	err := mc.ExecuteInstruction(func() error {
		callbacks++
		if callbacks == 3 {
			mc.RdyFlg = true
		}
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mc.LastResult.Stalls, 3)
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)
	test.ExpectEquality(t, callbacks, 5)
	test.ExpectSuccess(t, mc.LastResult.IsValid())

	// writes are not stalled
	callbacks = 0
	err = mc.ExecuteInstruction(func() error {
		callbacks++
		if callbacks == 3 {
			mc.RdyFlg = false
		}
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mc.LastResult.Stalls, 0)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)
	mem.assert(t, 0x1000, 0x01)
}

func TestResultString(t *testing.T) {
	mc, mem := newCPU()

	// LDA #$01; STA $1000; BNE $0202
	mem.putInstructions(origin, 0xa9, 0x01, 0x8d, 0x00, 0x10, 0xd0, 0xfb)

	step(t, mc)
	test.ExpectEquality(t, mc.LastResult.String(), "0200  a9 01     LDA #$01")
	step(t, mc)
	test.ExpectEquality(t, mc.LastResult.String(), "0202  8d 00 10  STA $1000")
	step(t, mc)
	test.ExpectEquality(t, mc.LastResult.String(), "0205  d0 fb     BNE $0202")
}
