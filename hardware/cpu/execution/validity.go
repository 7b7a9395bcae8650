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

package execution

import (
	"github.com/jetsetilly/gopher64/curated"
)

// Sentinal error patterns.
const (
	NotFinalised    = "cpu: execution not finalised"
	UnexpectedFault = "cpu: unexpected page fault"
	WrongByteCount  = "cpu: unexpected number of bytes read during decode (%d instead of %d)"
	WrongCycleCount = "cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)"
)

// IsValid checks whether the instance of Result contains information
// consistent with the instruction definition.
func (r Result) IsValid() error {
	if !r.Final {
		return curated.Errorf(NotFinalised)
	}

	// interrupt sequences always take seven cycles
	if r.Defn == nil {
		if r.Cycles != 7 {
			return curated.Errorf(WrongCycleCount, 0, r.Interrupt, r.Cycles, 7)
		}
		return nil
	}

	// is PageFault valid given content of Defn
	if !r.Defn.PageSensitive && r.PageFault {
		return curated.Errorf(UnexpectedFault)
	}

	// byte count
	if r.ByteCount != r.Defn.Bytes {
		return curated.Errorf(WrongByteCount, r.ByteCount, r.Defn.Bytes)
	}

	expected := r.Defn.Cycles
	if r.Defn.IsBranch() {
		if r.BranchSuccess {
			expected++
		}
		if r.PageFault {
			expected++
		}
	} else if r.PageFault {
		expected++
	}

	if r.Cycles != expected {
		return curated.Errorf(WrongCycleCount, r.Defn.OpCode, r.Defn.Operator, r.Cycles, expected)
	}

	return nil
}
