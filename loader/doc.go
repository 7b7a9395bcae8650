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

// Package loader places a tune in the memory of the C64 and installs the
// driver that calls it.
//
// A tune is a raw program image plus the addresses of its init and play
// routines. Container formats are not handled here. The File type loads the
// raw data from the local filesystem or over HTTP and LoadPRG() splits the
// load address from a PRG image:
//
//	f := loader.NewFile("tunes/Commando.prg")
//	err := f.Load()
//	tune, err := loader.LoadPRG(f.Data)
//	tune.PlayAddr = 0x1003
//	err = loader.Install(c64, tune)
//
// Install() resets the C64. The driver is written to the cassette buffer at
// $0334 and the kernal reset vector is pointed at it. The driver calls init
// with the song number in the accumulator and then calls play once per frame
// from a raster interrupt, or from a CIA timer interrupt if the tune asks for
// CIA speed.
//
// Tunes written for BASIC are started through the BASIC warm start instead.
// The subtune selector is installed in the BASIC ROM.
package loader
