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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are identified by the
// pattern string used to create them rather than by their type.
//
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values in the same way as fmt.Errorf():
//
//	e := curated.Errorf(banks.WrongSize, "kernal", 8192, len(data))
//
//	if curated.Is(e, banks.WrongSize) {
//		fmt.Println("true")
//	}
//
// Packages that produce curated errors export the pattern as a const string.
// Comparing against the constant is how callers distinguish one failure from
// another.
//
// The Has() function checks whether the pattern appears anywhere in the error
// chain:
//
//	f := curated.Errorf("loader: %v", e)
//
//	curated.Has(f, banks.WrongSize) // true
//	curated.Is(f, banks.WrongSize)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. An uncurated error usually means an error from
// outside the project (the os package for example) has arrived without being
// wrapped.
//
// The Error() implementation normalises the message by removing adjacent
// duplicate parts of the chain. Parts are separated by the sub-string ": ". So
// wrapping an error "loader: bad address" in "loader: %v" produces the message
// "loader: bad address" and not "loader: loader: bad address". This removes the
// need to think too hard about where errors should be wrapped.
//
// Curated errors are also used as panic values for programming errors inside
// the emulation core. The hardware package recovers those panics at the
// session boundary and tests them with Is() like any other curated error.
package curated
