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

// Package modalflag wraps the flag package of the standard library. It adds
// program modes, each with its own set of flags, and a flag type for 16 bit
// addresses.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments. Non-flag arguments are available afterwards through
// RemainingArgs() and GetArg():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	seconds := md.AddFloat64("seconds", 60, "length of time to run for")
//	p, err := md.Parse()
//
// A mode is a command line argument that selects a different way of running
// the program. Each mode can have its own flags and its own sub-modes. Modes
// are added with AddSubModes(). The first sub-mode is the default mode, used
// when the first argument after the flags is not one of the listed modes:
//
//	md.AddSubModes("RUN", "TRACE")
//	md.Parse()
//	switch md.Mode() {
//	case "TRACE":
//		md.NewMode()
//		initAddr := md.AddAddress("init", 0, "address of init routine")
//		md.Parse()
//		...
//	}
//
// Mode comparisons are case insensitive. Path() returns the modes selected so
// far, separated by a slash.
package modalflag
