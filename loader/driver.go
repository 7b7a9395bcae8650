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

package loader

// The driver is placed in the cassette buffer.
const (
	DriverOrigin = 0x0334
	DriverSize   = 0x00cc
)

// Raster line of the interrupt that calls play. The line is in the vertical
// blank on every revision of the VIC.
const (
	RasterLinePAL  = 0x137
	RasterLineNTSC = 0x105
)

// Value for timer A of CIA1 for sixty interrupts per second.
const (
	TimerPAL  = 0x4025
	TimerNTSC = 0x4295
)

// the default bank switching value. BASIC, kernal and IO are all visible
const defaultBank = 0x37

// BankValue returns the value written to the CPU port before a routine at
// the address is called. The routine must be able to see the RAM it is in.
// Tunes that need a real C64 environment run with the default banks.
func BankValue(compat Compatibility, address uint16) uint8 {
	if compat == R64 || compat == BASIC || address == 0 {
		return defaultBank
	}
	switch {
	case address < 0xa000:
		return 0x37
	case address < 0xd000:
		return 0x36
	case address >= 0xe000:
		return 0x35
	}
	return 0x34
}

// assembler is just enough to write the driver
type assembler struct {
	origin uint16
	code   []uint8
}

func (a *assembler) pc() uint16 {
	return a.origin + uint16(len(a.code))
}

func (a *assembler) emit(b ...uint8) {
	a.code = append(a.code, b...)
}

func (a *assembler) emitAbs(opcode uint8, address uint16) {
	a.emit(opcode, uint8(address), uint8(address>>8))
}

func (a *assembler) ldaImm(v uint8) {
	a.emit(0xa9, v)
}

func (a *assembler) staAbs(address uint16) {
	a.emitAbs(0x8d, address)
}

// the subtune selector installed in the BASIC ROM, after the instruction
// that loads the accumulator
const basicInit = 0xbf55

// driverFor assembles the driver for the tune. also returns the address of
// the idle loop.
func driverFor(t Tune, ntsc bool) ([]uint8, uint16) {
	a := &assembler{origin: DriverOrigin}

	// machine state expected by every tune
	a.emit(0x78)       // SEI
	a.emit(0xd8)       // CLD
	a.emit(0xa2, 0xff) // LDX #$FF
	a.emit(0x9a)       // TXS
	a.ldaImm(0x2f)
	a.emit(0x85, 0x00) // STA $00
	a.ldaImm(defaultBank)
	a.emit(0x85, 0x01) // STA $01

	// silence every interrupt source
	a.ldaImm(0x7f)
	a.staAbs(0xdc0d)
	a.staAbs(0xdd0d)
	a.emitAbs(0xad, 0xdc0d) // LDA $DC0D
	a.emitAbs(0xad, 0xdd0d) // LDA $DD0D
	a.ldaImm(0x00)
	a.staAbs(0xd01a)
	a.ldaImm(0xff)
	a.staAbs(0xd019)

	// init
	a.ldaImm(BankValue(t.Compatibility, t.initAddr()))
	a.emit(0x85, 0x01) // STA $01
	a.ldaImm(t.Song)
	a.emit(0xa2, 0x00)            // LDX #$00
	a.emit(0xa0, 0x00)            // LDY #$00
	a.emitAbs(0x20, t.initAddr()) // JSR init
	a.emit(0x78)                  // SEI
	a.ldaImm(defaultBank)
	a.emit(0x85, 0x01) // STA $01

	// tunes without a play routine have installed their own interrupt
	// handler
	if t.Compatibility != C64 || t.PlayAddr == 0 {
		a.emit(0x58) // CLI
		idle := a.pc()
		a.emitAbs(0x4c, idle)
		return a.code, idle
	}

	switch t.Speed {
	case SpeedCIA:
		timer := uint16(TimerPAL)
		if ntsc {
			timer = TimerNTSC
		}
		a.ldaImm(uint8(timer))
		a.staAbs(0xdc04)
		a.ldaImm(uint8(timer >> 8))
		a.staAbs(0xdc05)
		a.ldaImm(0x81)
		a.staAbs(0xdc0d)
		a.ldaImm(0x11)
		a.staAbs(0xdc0e)
	default:
		line := uint16(RasterLinePAL)
		if ntsc {
			line = RasterLineNTSC
		}
		a.ldaImm(uint8(line))
		a.staAbs(0xd012)
		a.ldaImm(0x1b | uint8(line>>8)<<7)
		a.staAbs(0xd011)
		a.ldaImm(0x01)
		a.staAbs(0xd01a)
	}

	vectorLo := len(a.code) + 1
	a.ldaImm(0x00)
	a.staAbs(0x0314)
	vectorHi := len(a.code) + 1
	a.ldaImm(0x00)
	a.staAbs(0x0315)
	a.emit(0x58) // CLI

	idle := a.pc()
	a.emitAbs(0x4c, idle) // JMP idle

	// interrupt handler. the kernal has already saved the registers
	handler := a.pc()
	a.code[vectorLo] = uint8(handler)
	a.code[vectorHi] = uint8(handler >> 8)

	a.ldaImm(0xff)
	a.staAbs(0xd019)
	a.emitAbs(0xad, 0xdc0d) // LDA $DC0D
	a.emit(0xa5, 0x01)      // LDA $01
	a.emit(0x48)            // PHA
	a.ldaImm(BankValue(t.Compatibility, t.PlayAddr))
	a.emit(0x85, 0x01)          // STA $01
	a.emitAbs(0x20, t.PlayAddr) // JSR play
	a.emit(0x68)                // PLA
	a.emit(0x85, 0x01)          // STA $01
	a.emitAbs(0x4c, 0xea81)     // JMP $EA81

	return a.code, idle
}
