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

import (
	"github.com/jetsetilly/gopher64/hardware"
	"github.com/jetsetilly/gopher64/logger"
)

// the kernal variable that says whether the machine is PAL or NTSC
const palFlag = 0x02a6

// the memory cleared before a tune is installed. zero page, the stack and the
// kernal work area
const workArea = 0x0400

// Install resets the C64 and places the tune in memory. The next instruction
// executed by the CPU is the first instruction of the driver.
func Install(c64 *hardware.C64, tune Tune) error {
	if err := tune.Validate(); err != nil {
		return err
	}

	c64.Reset()

	c64.Mem.FillRAM(0x0000, 0x00, workArea)
	if c64.Model().IsNTSC() {
		c64.Mem.WriteMemByte(palFlag, 0)
	} else {
		c64.Mem.WriteMemByte(palFlag, 1)
	}

	c64.Mem.LoadRAM(tune.LoadAddr, tune.Data)
	logger.Logf(c64, "loader", "%s", tune)

	if tune.Compatibility == BASIC {
		// program pointers as they would be after LOAD
		end := tune.LoadAddr + uint16(len(tune.Data))
		c64.Mem.WriteMemWord(0x002b, tune.LoadAddr)
		c64.Mem.WriteMemWord(0x002d, end)
		c64.Mem.WriteMemWord(0x002f, end)
		c64.Mem.WriteMemWord(0x0031, end)
		c64.Mem.WriteMemWord(0x0033, 0xa000)
		c64.Mem.WriteMemWord(0x0037, 0xa000)

		// execution starts at the beginning of the program
		c64.Mem.WriteMemWord(0x007a, tune.LoadAddr-1)

		c64.Mem.SetBasicSubtune(tune.Song)
		logger.Logf(c64, "loader", "BASIC subtune %d", tune.Song)
	}

	driver, idle := driverFor(tune, c64.Model().IsNTSC())
	c64.Mem.LoadRAM(DriverOrigin, driver)
	logger.Logf(c64, "loader", "driver installed at $%04x (%d bytes)", DriverOrigin, len(driver))

	// programs that return to BASIC end up in the idle loop of the driver
	if tune.Compatibility != BASIC {
		c64.Mem.InstallBasicTrap(idle)
	}

	c64.Mem.InstallResetHook(DriverOrigin)
	c64.ResetCPU()

	return nil
}
