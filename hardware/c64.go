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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/cia"
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/memory/banks"
	"github.com/jetsetilly/gopher64/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher64/hardware/memory/mmu"
	"github.com/jetsetilly/gopher64/hardware/preferences"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/prefs"
)

// Sentinal error patterns.
const (
	ExtraSIDAddress = "c64: cannot place extra SID at %#04x"
)

// C64 struct is the root of the emulated machine.
type C64 struct {
	Prefs *preferences.Preferences

	Scheduler *scheduler.Scheduler
	Mem       *mmu.MMU
	CPU       *cpu.CPU
	VIC       *vic.VIC
	CIA1      *cia.CIA
	CIA2      *cia.CIA
	ColorRAM  *banks.ColorRAM
	SID       *banks.SidBank

	// banks placed in IO slots to hold extra SID chips. nil if the slot has
	// no extra chip
	extraSIDs [memorymap.NumIOSlots]*banks.ExtraSidBank

	model Model

	// the number of devices holding the IRQ line low
	irqCount int

	// the last value of the BA line
	oldBA bool

	// the state of the light pen line. true when the line is low
	lightpen bool

	// the CPU cycle event and whether it has fired
	tick   *scheduler.Event
	ticked bool

	// logging is suppressed if quiet is true
	quiet bool
}

// the IRQ line is shared by the VIC and CIA1
type irqLine struct {
	c64 *C64
}

func (l irqLine) Interrupt(state bool) {
	l.c64.interrupt(state)
}

// the VIC also drives the BA line
type vicLines struct {
	irqLine
}

func (l vicLines) SetBA(state bool) {
	l.c64.setBA(state)
}

// CIA2 drives the NMI line
type nmiLine struct {
	c64 *C64
}

func (l nmiLine) Interrupt(state bool) {
	if state {
		l.c64.CPU.TriggerNMI()
	}
}

// NewC64 creates a new C64 and everything associated with the hardware. A nil
// preferences argument creates a new set of preferences.
//
// The C64 must be Reset() before use.
func NewC64(p *preferences.Preferences) (*C64, error) {
	var err error

	if p == nil {
		p, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	model, err := ParseModel(p.Model.String())
	if err != nil {
		return nil, err
	}

	// only C64 model names are accepted by the model preference from now on
	p.Model.SetHookPre(func(v prefs.Value) error {
		_, err := ParseModel(v.(string))
		return err
	})

	c64 := &C64{
		Prefs:     p,
		Scheduler: scheduler.NewScheduler(),
		ColorRAM:  banks.NewColorRAM(),
		SID:       banks.NewSidBank(),
		oldBA:     true,
	}

	c64.Mem = mmu.NewMMU(c64.Scheduler, p.Live.FallOff.Load())
	c64.CPU = cpu.NewCPU(c64, c64.Mem)
	c64.VIC = vic.NewVIC(c64.Scheduler, vicLines{irqLine{c64: c64}})
	c64.CIA1 = cia.NewCIA("CIA1", c64.Scheduler, irqLine{c64: c64})
	c64.CIA2 = cia.NewCIA("CIA2", c64.Scheduler, nmiLine{c64: c64})
	c64.CIA1.AttachPortB(c64.setLightpen)

	c64.tick = scheduler.NewEvent("CPU", func() {
		c64.ticked = true
	})

	io := c64.Mem.IO
	for i := range 4 {
		io.SetBank(memorymap.SlotVIC+i, c64.VIC)
		io.SetBank(memorymap.SlotSID+i, c64.SID)
		io.SetBank(memorymap.SlotColorRAM+i, c64.ColorRAM)
	}
	io.SetBank(memorymap.SlotCIA1, c64.CIA1)
	io.SetBank(memorymap.SlotCIA2, c64.CIA2)
	io.SetBank(memorymap.SlotIO1, c64.Mem.Disconnected)
	io.SetBank(memorymap.SlotIO2, c64.Mem.Disconnected)

	c64.SetModel(model)

	return c64, nil
}

func (c64 *C64) String() string {
	return fmt.Sprintf("%s: %s", c64.model, c64.CPU)
}

// AllowLogging implements the logger.Permission interface.
func (c64 *C64) AllowLogging() bool {
	return !c64.quiet
}

// SetQuiet suppresses log entries from the C64 and its components.
func (c64 *C64) SetQuiet(quiet bool) {
	c64.quiet = quiet
}

// Model returns the current C64 model.
func (c64 *C64) Model() Model {
	return c64.model
}

// SetModel changes the C64 model. The VIC revision is changed and the VIC is
// reset. The TOD rate of the CIAs follows the mains frequency of the model.
func (c64 *C64) SetModel(model Model) {
	d := lookupModel(model)
	c64.model = model
	c64.VIC.Chip(d.vic)

	// the TOD clocks of both CIAs are driven by the mains
	rate := uint(model.CPUFrequency() / float64(model.PowerFrequency()))
	c64.CIA1.SetTODRate(rate)
	c64.CIA2.SetTODRate(rate)

	logger.Logf(c64, "C64", "model %s (VIC %s, CPU %.0fHz)", model, d.vic, model.CPUFrequency())
}

// CPUFrequency returns the frequency of the CPU clock in Hz.
func (c64 *C64) CPUFrequency() float64 {
	return c64.model.CPUFrequency()
}

// Time returns the number of cycles since the last reset.
func (c64 *C64) Time() int64 {
	return c64.Scheduler.Time(scheduler.PHI2)
}

// Seconds returns the time since the last reset in seconds.
func (c64 *C64) Seconds() float64 {
	return float64(c64.Time()) / c64.CPUFrequency()
}

// SetBaseSID attaches the SID chip at $D400. A nil chip removes any chip
// that is attached.
func (c64 *C64) SetBaseSID(chip sid.Chip) {
	c64.SID.SetSID(chip)
	if chip == nil {
		logger.Log(c64, "C64", "base SID removed")
		return
	}
	logger.Logf(c64, "C64", "base SID attached at $d400: %v", chip)
}

// AddExtraSID attaches another SID chip. The address must be in the area
// used by the base SID ($D400 to $D7FF) or in one of the two expansion slots
// ($DE00 to $DFFF). The chip occupies the 32 byte window that contains the
// address.
func (c64 *C64) AddExtraSID(chip sid.Chip, address uint16) error {
	if address&0xf000 != memorymap.OriginIO {
		return curated.Errorf(ExtraSIDAddress, address)
	}

	idx := memorymap.IOSlot(address)
	switch idx {
	case 0x4, 0x5, 0x6, 0x7, memorymap.SlotIO1, memorymap.SlotIO2:
	default:
		return curated.Errorf(ExtraSIDAddress, address)
	}

	b := c64.extraSIDs[idx]
	if b == nil {
		b = banks.NewExtraSidBank()
		b.ResetSIDMapper(c64.Mem.IO.GetBank(idx))
		c64.Mem.IO.SetBank(idx, b)
		c64.extraSIDs[idx] = b
	}
	b.AddSID(chip, address)

	logger.Logf(c64, "C64", "extra SID attached at $%04x: %v", address&0xffe0, chip)

	return nil
}

// RemoveExtraSIDs detaches every extra SID chip. The IO slots are returned to
// the banks that occupied them before the chips were added.
func (c64 *C64) RemoveExtraSIDs() {
	for idx, b := range c64.extraSIDs {
		if b == nil {
			continue
		}
		if idx >= memorymap.SlotIO1 {
			c64.Mem.IO.SetBank(idx, c64.Mem.Disconnected)
		} else {
			c64.Mem.IO.SetBank(idx, c64.SID)
		}
		c64.extraSIDs[idx] = nil
	}
}

// SIDs returns every attached SID chip. The base SID is first.
func (c64 *C64) SIDs() []sid.Chip {
	chips := []sid.Chip{c64.SID.SID()}
	for _, b := range c64.extraSIDs {
		if b != nil {
			chips = append(chips, b.SIDs()...)
		}
	}
	return chips
}

// Output is the mix of the output of every attached SID chip. Each chip
// contributes equally.
func (c64 *C64) Output() int16 {
	chips := c64.SIDs()
	var mix int
	for _, s := range chips {
		mix += int(s.Output())
	}
	return int16(mix / len(chips))
}

// Reset emulates the power being turned off and on again. The CPU is reset
// last so that it reads the reset vector from memory that has been reset.
func (c64 *C64) Reset() {
	c64.Mem.Port.SetFallOff(c64.Prefs.Live.FallOff.Load())
	c64.Mem.SetPowerUpPattern(c64.Prefs.PowerUpPattern.Get().(bool))
	c64.CIA1.SetModel(c64.Prefs.CIA())
	c64.CIA2.SetModel(c64.Prefs.CIA())

	c64.Scheduler.Reset()
	c64.CIA1.Reset()
	c64.CIA2.Reset()
	c64.VIC.Reset()
	c64.SID.SID().Reset()
	c64.ColorRAM.Reset()
	c64.Mem.Reset()
	for _, b := range c64.extraSIDs {
		if b != nil {
			b.Reset()
		}
	}

	c64.irqCount = 0
	c64.oldBA = true
	c64.lightpen = false

	c64.ResetCPU()
}

// ResetCPU resets the CPU without resetting the rest of the machine. The CPU
// sees the current state of the RDY and IRQ lines, so a reset during VIC DMA
// leaves the CPU stalled.
func (c64 *C64) ResetCPU() {
	c64.CPU.Reset()
	c64.CPU.RdyFlg = c64.oldBA
	c64.CPU.SetIRQ(c64.irqCount > 0)
}

// interrupt is called by the VIC and CIA1 when their interrupt line changes.
// the IRQ line of the CPU is low for as long as any device is holding it
func (c64 *C64) interrupt(state bool) {
	if state {
		c64.irqCount++
		if c64.irqCount == 1 {
			c64.CPU.SetIRQ(true)
		}
		return
	}

	if c64.irqCount > 0 {
		c64.irqCount--
		if c64.irqCount == 0 {
			c64.CPU.SetIRQ(false)
		}
	}
}

// setBA is called by the VIC when the BA line changes
func (c64 *C64) setBA(state bool) {
	if state == c64.oldBA {
		return
	}
	c64.oldBA = state
	c64.CPU.RdyFlg = state
}

// setLightpen is called when port B of CIA1 is written to. bit 4 of the port
// is connected to the light pen input of the VIC, which is active low
func (c64 *C64) setLightpen(pins uint8) {
	low := pins&0x10 == 0
	if low == c64.lightpen {
		return
	}
	c64.lightpen = low
	if low {
		c64.VIC.TriggerLightpen()
	} else {
		c64.VIC.ClearLightpen()
	}
}

// cycle advances the rest of the machine by one CPU cycle. it is the cycle
// callback for the CPU
func (c64 *C64) cycle() error {
	c64.ticked = false
	c64.Scheduler.Schedule(c64.tick, 1, scheduler.PHI2)
	for !c64.ticked {
		c64.Scheduler.Clock()
	}
	return nil
}
