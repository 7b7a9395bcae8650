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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectFailure and ExpectSuccess functions test for failure and success
// under generic conditions. The nil type is considered a success. This is
// because of how errors usually work (nil to indicate no error).
//
// The Expect*() functions report a failure and let the test continue. The
// Demand*() functions stop the test.
//
// ExpectPanic() is for the emulation core's programming errors, which are
// raised as panics with a curated error as the value.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. CompareWriter.Compare() can then be used to test
// for equality.
package test
