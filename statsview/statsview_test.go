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

package statsview_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/statsview"
	"github.com/jetsetilly/gopher64/test"
)

func TestLaunch(t *testing.T) {
	if statsview.Available() {
		t.Skip("statsview server would be started")
	}

	tw := &test.CompareWriter{}
	stop := statsview.Launch(tw)
	stop()
	test.ExpectSuccess(t, tw.Compare("stats server not available in this build\n"))
}
