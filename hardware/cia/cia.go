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

package cia

import (
	"fmt"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// Sentinal error patterns.
const (
	UnknownModel = "cia: unknown model (%s)"
)

// Model is a revision of the CIA.
type Model int

// List of valid Model values.
const (
	MOS6526 Model = iota
	MOS8521
)

func (m Model) String() string {
	switch m {
	case MOS6526:
		return "6526"
	case MOS8521:
		return "8521"
	}
	return "unknown"
}

// ParseModel returns the model named by s, which is the part number without
// the MOS prefix.
func ParseModel(s string) (Model, error) {
	switch s {
	case "6526", "MOS6526":
		return MOS6526, nil
	case "8521", "MOS8521":
		return MOS8521, nil
	}
	return MOS6526, curated.Errorf(UnknownModel, s)
}

// Environment is the part of the machine that the CIA drives.
type Environment interface {
	// Interrupt sets the state of the CIA's interrupt line
	Interrupt(state bool)
}

// Register numbers.
const (
	PRA    = 0x0
	PRB    = 0x1
	DDRA   = 0x2
	DDRB   = 0x3
	TAL    = 0x4
	TAH    = 0x5
	TBL    = 0x6
	TBH    = 0x7
	TODTen = 0x8
	TODSec = 0x9
	TODMin = 0xa
	TODHr  = 0xb
	SDR    = 0xc
	ICR    = 0xd
	CRA    = 0xe
	CRB    = 0xf
)

// CIA is a single complex interface adaptor.
type CIA struct {
	name string
	sch  *scheduler.Scheduler

	model Model
	regs  [0x10]uint8

	timerA    *timer
	timerB    *timer
	interrupt *interruptSource
	tod       *tod
	serial    *serialPort

	// timer B counting the underflows of timer A
	bTick *scheduler.Event

	// called with the value of the port B pins whenever port B is written to
	portB func(pins uint8)
}

// NewCIA is the preferred method of initialisation for the CIA type.
func NewCIA(name string, sch *scheduler.Scheduler, env Environment) *CIA {
	cia := &CIA{
		name: name,
		sch:  sch,
	}
	cia.timerA = newTimer(name+" timer A", sch, cia.underflowA)
	cia.timerB = newTimer(name+" timer B", sch, cia.underflowB)
	cia.interrupt = newInterruptSource(name+" interrupt", sch, env)
	cia.tod = newTOD(name+" TOD", sch, &cia.regs, func() {
		cia.interrupt.trigger(InterruptAlarm)
	})
	cia.serial = &serialPort{done: func() {
		cia.interrupt.trigger(InterruptSP)
	}}
	cia.bTick = scheduler.NewEvent(name+" B counts A", cia.timerB.cascade)
	cia.Reset()
	return cia
}

func (cia *CIA) String() string {
	return fmt.Sprintf("%s (%s) TA=%04x TB=%04x ICR=%02x",
		cia.name, cia.model, cia.timerA.counter, cia.timerB.counter, cia.interrupt.idr)
}

// SetModel changes the revision of the CIA.
func (cia *CIA) SetModel(model Model) {
	cia.model = model
	cia.interrupt.delayed = model == MOS6526
}

// SetTODRate sets the number of CPU cycles between pulses on the TOD pin. The
// pin is driven by the mains frequency.
func (cia *CIA) SetTODRate(cycles uint) {
	cia.tod.setPeriod(cycles)
}

// AttachPortB sets the function to be called when port B changes.
func (cia *CIA) AttachPortB(f func(pins uint8)) {
	cia.portB = f
}

// Reset the CIA.
func (cia *CIA) Reset() {
	clear(cia.regs[:])
	cia.timerA.reset()
	cia.timerB.reset()
	cia.interrupt.reset()
	cia.tod.reset()
	cia.serial.reset()
	cia.sch.Cancel(cia.bTick)
}

func (cia *CIA) underflowA() {
	cia.interrupt.trigger(InterruptUnderflowA)
	if cia.regs[CRA]&0x40 != 0 {
		cia.serial.handle()
	}
	if cia.regs[CRB]&0x41 == 0x41 && cia.timerB.started() {
		cia.sch.Schedule(cia.bTick, 0, scheduler.PHI2)
	}
}

func (cia *CIA) underflowB() {
	cia.interrupt.trigger(InterruptUnderflowB)
}

// Timers returns the current value of the two timers.
func (cia *CIA) Timers() (uint16, uint16) {
	cia.timerA.syncWithCPU()
	cia.timerA.wakeUpAfterSyncWithCPU()
	cia.timerB.syncWithCPU()
	cia.timerB.wakeUpAfterSyncWithCPU()
	return cia.timerA.counter, cia.timerB.counter
}

// the timers can drive bits 6 and 7 of port B
func (cia *CIA) adjustDataPort(data uint8) uint8 {
	if cia.regs[CRA]&0x02 != 0 {
		data &= 0xbf
		if cia.timerA.pb(cia.regs[CRA]) {
			data |= 0x40
		}
	}
	if cia.regs[CRB]&0x02 != 0 {
		data &= 0x7f
		if cia.timerB.pb(cia.regs[CRB]) {
			data |= 0x80
		}
	}
	return data
}

// Read implements the banks.Bank interface. Registers are mirrored every 16
// bytes.
func (cia *CIA) Read(address uint16) uint8 {
	reg := address & 0x0f

	cia.timerA.syncWithCPU()
	cia.timerA.wakeUpAfterSyncWithCPU()
	cia.timerB.syncWithCPU()
	cia.timerB.wakeUpAfterSyncWithCPU()

	switch reg {
	case PRA:
		return cia.regs[PRA] | ^cia.regs[DDRA]
	case PRB:
		return cia.adjustDataPort(cia.regs[PRB] | ^cia.regs[DDRB])
	case TAL:
		return uint8(cia.timerA.counter)
	case TAH:
		return uint8(cia.timerA.counter >> 8)
	case TBL:
		return uint8(cia.timerB.counter)
	case TBH:
		return uint8(cia.timerB.counter >> 8)
	case TODTen, TODSec, TODMin, TODHr:
		return cia.tod.read(int(reg - TODTen))
	case ICR:
		return cia.interrupt.clear()
	case CRA:
		return (cia.regs[CRA] & 0xee) | uint8(cia.timerA.state&0x01)
	case CRB:
		return (cia.regs[CRB] & 0xee) | uint8(cia.timerB.state&0x01)
	}

	return cia.regs[reg]
}

// Write implements the banks.Bank interface.
func (cia *CIA) Write(address uint16, data uint8) {
	reg := address & 0x0f

	cia.timerA.syncWithCPU()
	cia.timerB.syncWithCPU()

	old := cia.regs[reg]
	cia.regs[reg] = data

	switch reg {
	case PRB, DDRB:
		if cia.portB != nil {
			cia.portB(cia.regs[PRB] | ^cia.regs[DDRB])
		}
	case TAL:
		cia.timerA.latchLo(data)
	case TAH:
		cia.timerA.latchHi(data)
	case TBL:
		cia.timerB.latchLo(data)
	case TBH:
		cia.timerB.latchHi(data)
	case TODTen, TODSec, TODMin, TODHr:
		cia.tod.write(int(reg-TODTen), data)
	case SDR:
		if cia.regs[CRA]&0x40 != 0 {
			cia.serial.start()
		}
	case ICR:
		cia.interrupt.set(data)
	case CRA:
		if (data^old)&0x40 != 0 {
			cia.serial.switchDirection()
		}
		// starting the timer resets the port B toggle
		if data&0x01 != 0 && old&0x01 == 0 {
			cia.timerA.pbToggle = true
		}
		cia.timerA.setControlRegister(data)
	case CRB:
		if data&0x01 != 0 && old&0x01 == 0 {
			cia.timerB.pbToggle = true
		}
		// bit 6 selects counting of timer A underflows, in which case the
		// timer does not count PHI2
		cia.timerB.setControlRegister(data | (data&0x40)>>1)
	}

	cia.timerA.wakeUpAfterSyncWithCPU()
	cia.timerB.wakeUpAfterSyncWithCPU()
}
