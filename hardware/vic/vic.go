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

package vic

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// Environment is the part of the machine that the VIC drives.
type Environment interface {
	// Interrupt sets the state of the VIC's contribution to the IRQ line
	Interrupt(state bool)

	// SetBA sets the BA line. when BA is false the VIC wants the bus and the
	// CPU must stop at its next read
	SetBA(state bool)
}

// the cycle in which the VIC takes the bus on a bad line
const fetchCycle = 11

// number of character columns on the screen
const screenTextCols = 40

// the range of raster lines on which a bad line can occur
const (
	firstDMALine = 0x30
	lastDMALine  = 0xf7
)

// IRQ flags. Bit 7 of the flags register is set whenever the VIC is
// asserting the IRQ line.
const (
	IRQRaster   = 0x01
	IRQLightpen = 0x08
	irqAsserted = 0x80
)

// Register numbers with side effects.
const (
	RegControl1   = 0x11
	RegRaster     = 0x12
	RegLightpenX  = 0x13
	RegLightpenY  = 0x14
	RegSpriteEn   = 0x15
	RegSpriteYExp = 0x17
	RegIRQFlags   = 0x19
	RegIRQMask    = 0x1a
)

// VIC is the timing emulation of the VIC-II.
type VIC struct {
	sch *scheduler.Scheduler
	env Environment

	// the recurring raster event and the one-shot follow-up events
	event              *scheduler.Event
	badLineStateChange *scheduler.Event
	rasterYIrqEdge     *scheduler.Event
	lightpenTrigger    *scheduler.Event

	model         Model
	clock         func(*VIC) int64
	rasterLines   int
	cyclesPerLine int

	// the cycle the VIC was last brought up to date
	rasterClk int64

	lineCycle int
	rasterY   int
	yScroll   uint8

	areBadLinesEnabled  bool
	isBadLine           bool
	rasterYIrqCondition bool
	vBlanking           bool
	lpAsserted          bool

	irqFlags uint8
	irqMask  uint8

	// last value sent to the environment for the BA line
	ba bool

	lp      lightpen
	sprites sprites

	regs [0x40]uint8
}

// NewVIC is the preferred method of initialisation for the VIC type. The
// VIC is a MOS6569 (PAL-B) until Chip() is called.
func NewVIC(sch *scheduler.Scheduler, env Environment) *VIC {
	vic := &VIC{
		sch: sch,
		env: env,
		ba:  true,
	}
	vic.sprites.regs = &vic.regs

	vic.event = scheduler.NewEvent("VIC raster", vic.step)
	vic.badLineStateChange = scheduler.NewEvent("VIC bad line state change", func() {
		vic.setBA(!vic.isBadLine)
	})
	vic.rasterYIrqEdge = scheduler.NewEvent("VIC raster compare", func() {
		vic.rasterYIrqCondition = vic.rasterY == vic.rasterLineIrq()
	})
	vic.lightpenTrigger = scheduler.NewEvent("VIC light pen", func() {
		vic.Sync()
		if vic.lp.trigger(vic.lineCycle, vic.rasterY) {
			vic.activateIrqFlag(IRQLightpen)
		}
	})

	vic.Chip(MOS6569)
	return vic
}

func (vic *VIC) String() string {
	return fmt.Sprintf("%s line=%d cycle=%d badline=%v irq=%02x mask=%02x",
		vic.model, vic.rasterY, vic.lineCycle, vic.isBadLine, vic.irqFlags, vic.irqMask)
}

// Chip selects the revision of the VIC and resets it. An unknown model is a
// programming error and causes a panic.
func (vic *VIC) Chip(model Model) {
	d := lookupModel(model)
	vic.model = model
	vic.rasterLines = d.rasterLines
	vic.cyclesPerLine = d.cyclesPerLine
	vic.clock = d.clock
	vic.lp.setScreenSize(vic.rasterLines, vic.cyclesPerLine)
	vic.Reset()
}

// Model returns the currently selected revision.
func (vic *VIC) Model() Model {
	return vic.model
}

// Reset the VIC. The raster is placed on the last line of the frame so that
// the first frame starts after one line.
func (vic *VIC) Reset() {
	vic.irqFlags = 0
	vic.irqMask = 0
	vic.yScroll = 0
	vic.rasterY = vic.rasterLines - 1
	vic.lineCycle = 0
	vic.areBadLinesEnabled = false
	vic.isBadLine = false
	vic.rasterYIrqCondition = false
	vic.rasterClk = vic.sch.Time(scheduler.PHI1)
	vic.vBlanking = false
	vic.lpAsserted = false
	vic.ba = true

	clear(vic.regs[:])
	vic.lp.reset()
	vic.sprites.reset()

	vic.sch.Cancel(vic.badLineStateChange)
	vic.sch.Cancel(vic.rasterYIrqEdge)
	vic.sch.Cancel(vic.lightpenTrigger)
	vic.sch.Schedule(vic.event, 0, scheduler.PHI1)
}

// step is the payload of the raster event. The VIC is advanced by the number
// of cycles since it was last run, the action for the new line cycle is
// performed and the event is rescheduled for the next cycle of interest.
func (vic *VIC) step() {
	cycles := vic.sch.Time(vic.sch.Phase()) - vic.rasterClk

	var delay int64
	if cycles != 0 {
		vic.rasterClk += cycles
		vic.lineCycle = int((int64(vic.lineCycle) + cycles) % int64(vic.cyclesPerLine))
		delay = vic.clock(vic)
	} else {
		delay = 1
	}

	vic.sch.Schedule(vic.event, int(delay-int64(vic.sch.Phase())), scheduler.PHI1)
}

// Sync brings the VIC up to date with the current time.
func (vic *VIC) Sync() {
	vic.sch.Cancel(vic.event)
	vic.step()
}

// Read implements the banks.Bank interface. Registers are mirrored every 64
// bytes.
func (vic *VIC) Read(address uint16) uint8 {
	reg := uint8(address) & 0x3f

	vic.Sync()

	switch reg {
	case RegControl1:
		return (vic.regs[reg] & 0x7f) | uint8((vic.rasterY&0x100)>>1)
	case RegRaster:
		return uint8(vic.rasterY)
	case RegLightpenX:
		return vic.lp.getX()
	case RegLightpenY:
		return vic.lp.getY()
	case RegIRQFlags:
		return vic.irqFlags | 0x70
	case RegIRQMask:
		return vic.irqMask | 0xf0
	}

	if reg < 0x20 {
		return vic.regs[reg]
	}
	if reg < 0x2f {
		return vic.regs[reg] | 0xf0
	}
	return 0xff
}

// Write implements the banks.Bank interface.
func (vic *VIC) Write(address uint16, data uint8) {
	reg := uint8(address) & 0x3f

	vic.regs[reg] = data

	vic.Sync()

	switch reg {
	case RegControl1:
		vic.writeControl1(data)
		vic.sch.Schedule(vic.rasterYIrqEdge, 0, scheduler.PHI1)
	case RegRaster:
		vic.sch.Schedule(vic.rasterYIrqEdge, 0, scheduler.PHI1)
	case RegSpriteYExp:
		vic.sprites.lineCrunch(data, vic.lineCycle)
	case RegIRQFlags:
		vic.irqFlags &= (^data & 0x0f) | irqAsserted
		vic.handleIrqState()
	case RegIRQMask:
		vic.irqMask = data & 0x0f
		vic.handleIrqState()
	}
}

// a write to control register 1 can change whether the current line is a bad
// line. whether the change takes effect in the current line depends on the
// cycle of the write
func (vic *VIC) writeControl1(data uint8) {
	oldYScroll := vic.yScroll
	vic.yScroll = data & 0x07

	wasBadLinesEnabled := vic.areBadLinesEnabled

	// on the first DMA line DEN is sampled up to the fetch cycle. only a
	// write in the first cycle can disable bad lines
	if vic.rasterY == firstDMALine {
		switch {
		case vic.lineCycle == 0:
			vic.areBadLinesEnabled = vic.readDEN()
		case vic.lineCycle < fetchCycle && vic.readDEN():
			vic.areBadLinesEnabled = true
		}
	}

	if vic.oldRasterY() == firstDMALine && vic.readDEN() {
		vic.areBadLinesEnabled = true
	}

	if oldYScroll == vic.yScroll && wasBadLinesEnabled == vic.areBadLinesEnabled {
		return
	}
	if vic.rasterY < firstDMALine || vic.rasterY > lastDMALine {
		return
	}

	wasBadLine := wasBadLinesEnabled && int(oldYScroll) == vic.rasterY&0x07
	nowBadLine := vic.areBadLinesEnabled && int(vic.yScroll) == vic.rasterY&0x07
	if nowBadLine == wasBadLine {
		return
	}

	oldBadLine := vic.isBadLine

	if wasBadLine {
		if vic.lineCycle < fetchCycle {
			vic.isBadLine = false
		}
	} else {
		// a bad line can start during the fetch interval or after it, up
		// until the raster counter is incremented
		if vic.lineCycle <= fetchCycle+screenTextCols+6 {
			vic.isBadLine = true
		}
	}

	if vic.isBadLine != oldBadLine {
		vic.sch.Schedule(vic.badLineStateChange, 0, scheduler.PHI1)
	}
}

// TriggerLightpen is called when the light pen line goes low. The position is
// latched on the following cycle.
func (vic *VIC) TriggerLightpen() {
	vic.lpAsserted = true
	vic.sch.ScheduleRelative(vic.lightpenTrigger, 1)
}

// ClearLightpen is called when the light pen line goes high.
func (vic *VIC) ClearLightpen() {
	vic.lpAsserted = false
}

func (vic *VIC) handleIrqState() {
	if vic.irqFlags&vic.irqMask&0x0f != 0 {
		if vic.irqFlags&irqAsserted == 0 {
			vic.env.Interrupt(true)
			vic.irqFlags |= irqAsserted
		}
	} else if vic.irqFlags&irqAsserted != 0 {
		vic.env.Interrupt(false)
		vic.irqFlags &= ^uint8(irqAsserted)
	}
}

func (vic *VIC) activateIrqFlag(flag uint8) {
	vic.irqFlags |= flag
	vic.handleIrqState()
}

// the raster IRQ is raised on the transition of the raster line into equality
// with the compare value
func (vic *VIC) rasterYIrqEdgeDetector() {
	old := vic.rasterYIrqCondition
	vic.rasterYIrqCondition = vic.rasterY == vic.rasterLineIrq()
	if !old && vic.rasterYIrqCondition {
		vic.activateIrqFlag(IRQRaster)
	}
}

func (vic *VIC) rasterLineIrq() int {
	return int(vic.regs[RegRaster]) | int(vic.regs[RegControl1]&0x80)<<1
}

func (vic *VIC) readDEN() bool {
	return vic.regs[RegControl1]&0x10 == 0x10
}

func (vic *VIC) evaluateIsBadLine() bool {
	return vic.areBadLinesEnabled &&
		vic.rasterY >= firstDMALine && vic.rasterY <= lastDMALine &&
		vic.rasterY&0x07 == int(vic.yScroll)
}

func (vic *VIC) oldRasterY() int {
	if vic.rasterY > 0 {
		return vic.rasterY - 1
	}
	return vic.rasterLines - 1
}

// called in the first cycle of every line
func (vic *VIC) checkVBlank() {
	if vic.rasterY == vic.rasterLines-1 {
		vic.vBlanking = true
	}

	// DEN is checked in the first cycle of the line after the first DMA line
	if vic.rasterY == firstDMALine && !vic.areBadLinesEnabled && vic.readDEN() {
		vic.areBadLinesEnabled = true
	}

	if vic.rasterY == lastDMALine {
		vic.areBadLinesEnabled = false
	}

	vic.isBadLine = false

	if !vic.vBlanking {
		vic.rasterY++
		vic.rasterYIrqEdgeDetector()

		if vic.rasterY == firstDMALine && !vic.areBadLinesEnabled {
			vic.areBadLinesEnabled = vic.readDEN()
		}
	}

	if vic.evaluateIsBadLine() {
		vic.isBadLine = true
	}
}

// called in the second cycle of every line. the raster counter is reset to
// zero one cycle later than the other lines are incremented
func (vic *VIC) vBlank() {
	if !vic.vBlanking {
		return
	}

	vic.vBlanking = false
	vic.rasterY = 0
	vic.rasterYIrqEdgeDetector()
	vic.lp.untrigger()

	if vic.lpAsserted && vic.lp.retrigger() {
		vic.activateIrqFlag(IRQLightpen)
	}
}

func (vic *VIC) setBA(state bool) {
	vic.ba = state
	vic.env.SetBA(state)
}

func (vic *VIC) startDMA(n uint) {
	if vic.sprites.isDMA(0x01 << n) {
		vic.setBA(false)
	}
}

func (vic *VIC) startDMA0() {
	vic.setBA(!vic.sprites.isDMA(0x01))
}

func (vic *VIC) endDMA(n uint) {
	if !vic.sprites.isDMA(0x06 << n) {
		vic.setBA(true)
	}
}

func (vic *VIC) endDMA7() {
	vic.setBA(true)
}

func (vic *VIC) startBadLine() {
	if vic.isBadLine {
		vic.setBA(false)
	}
}

// State is a snapshot of the timing state of the VIC.
type State struct {
	Model              Model
	RasterY            int
	LineCycle          int
	RasterClk          int64
	AreBadLinesEnabled bool
	IsBadLine          bool
	VBlanking          bool
	IRQFlags           uint8
	IRQMask            uint8
	BA                 bool
	LightpenX          uint8
	LightpenY          uint8
	SpriteDMA          uint
}

// State returns a snapshot of the VIC. The VIC is synchronised first.
func (vic *VIC) State() State {
	vic.Sync()
	return State{
		Model:              vic.model,
		RasterY:            vic.rasterY,
		LineCycle:          vic.lineCycle,
		RasterClk:          vic.rasterClk,
		AreBadLinesEnabled: vic.areBadLinesEnabled,
		IsBadLine:          vic.isBadLine,
		VBlanking:          vic.vBlanking,
		IRQFlags:           vic.irqFlags,
		IRQMask:            vic.irqMask,
		BA:                 vic.ba,
		LightpenX:          vic.lp.getX(),
		LightpenY:          vic.lp.getY(),
		SpriteDMA:          vic.sprites.dma,
	}
}
