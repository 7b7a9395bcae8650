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

package registers

// the decimal functions return information about the zero and sign bits in
// addition to the carry and overflow. the cpu can use these values to set
// the status flags. this is different to binary addition/subtraction which
// only returns information for the carry and overflow flags.
//
// the behaviour is that of the NMOS 6502 family, as described in "Flags on
// Decimal mode in the NMOS 6502" v1.0 by Jorge Cwik. the zero flag is always
// the zero flag of the equivalent binary operation.

// AddDecimal adds value to register as though both registers are decimal
// representations. Returns new carry state, zero, overflow, sign bit
// information.
func (r *Register) AddDecimal(val uint8, carry bool) (rcarry, zero, overflow, sign bool) {
	a := int(r.value)
	v := int(val)

	c := 0
	if carry {
		c = 1
	}

	// "The Z flag is computed before performing any decimal adjust."
	zero = (a+v+c)&0xff == 0

	lo := (a & 0x0f) + (v & 0x0f) + c
	hi := (a & 0xf0) + (v & 0xf0)
	if lo > 0x09 {
		lo += 0x06
	}
	if lo > 0x0f {
		hi += 0x10
	}

	// "The N and V flags are computed after a decimal adjust of the low
	// nibble, but before adjusting the high nibble."
	sign = hi&0x80 == 0x80
	overflow = (hi^a)&0x80 == 0x80 && (a^v)&0x80 == 0

	if hi > 0x90 {
		hi += 0x60
	}
	rcarry = hi > 0xff

	r.value = uint8((lo & 0x0f) | (hi & 0xf0))

	return rcarry, zero, overflow, sign
}

// SubtractDecimal subtracts value from register as though both registers are
// decimal representations. Returns new carry state, zero, overflow, sign bit
// information. All flags are the same as for binary subtraction.
func (r *Register) SubtractDecimal(val uint8, carry bool) (rcarry, zero, overflow, sign bool) {
	a := int(r.value)
	v := int(val)

	// the carry flag is the inverse of borrow
	borrow := 1
	if carry {
		borrow = 0
	}

	bin := a - v - borrow
	rcarry = bin >= 0
	zero = bin&0xff == 0
	sign = bin&0x80 == 0x80
	overflow = (a^bin)&0x80 == 0x80 && (a^v)&0x80 == 0x80

	lo := (a & 0x0f) - (v & 0x0f) - borrow
	hi := (a & 0xf0) - (v & 0xf0)
	if lo&0x10 == 0x10 {
		lo -= 0x06
		hi -= 0x10
	}
	if hi&0x100 == 0x100 {
		hi -= 0x60
	}

	r.value = uint8((lo & 0x0f) | (hi & 0xf0))

	return rcarry, zero, overflow, sign
}
