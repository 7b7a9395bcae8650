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

package prefs_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopher64/prefs"
	"github.com/jetsetilly/gopher64/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("foo::bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// single value but with additional space
	prefs.PushCommandLineStack("   foo:: bar ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// more than one key/value in the prefs string. remaining string will
	// will be sorted
	prefs.PushCommandLineStack("foo::bar; baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux; foo::bar")

	// check invalid prefs string
	prefs.PushCommandLineStack("foo_bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// check (partically) invalid prefs string
	prefs.PushCommandLineStack("foo_bar;baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// get prefs value that doesn't exist after pushing a parially invalid prefs string
	prefs.PushCommandLineStack("foo::bar;baz_qux")
	ok, _ := prefs.GetCommandLinePref("baz")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

func TestCommandLineStack(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("foo::bar")

	// add another command line group
	prefs.PushCommandLineStack("baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

func TestGroup(t *testing.T) {
	var model prefs.String
	var falloff prefs.Int
	var powerup prefs.Bool

	model.Set("PAL-B")
	falloff.Set(350000)
	powerup.Set(true)

	g := prefs.NewGroup()
	test.ExpectSuccess(t, g.Add("c64.model", &model))
	test.ExpectSuccess(t, g.Add("c64.cpuport.falloff", &falloff))
	test.ExpectSuccess(t, g.Add("c64.ram.powerup", &powerup))
	test.ExpectFailure(t, g.Add("c64.model", &model))

	prefs.PushCommandLineStack("c64.model::NTSC-M; c64.cpuport.falloff::$16e360; c64.ram.powerup::false")
	test.ExpectSuccess(t, g.ApplyCommandLine())
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	test.ExpectEquality(t, model.String(), "NTSC-M")
	test.ExpectEquality(t, falloff.Get().(int), 1500000)
	test.ExpectEquality(t, powerup.Get().(bool), false)

	// unused values remain on the stack
	prefs.PushCommandLineStack("c64.model::PAL-N; foo::bar")
	test.ExpectSuccess(t, g.ApplyCommandLine())
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
	test.ExpectEquality(t, model.String(), "PAL-N")

	// bad value
	prefs.PushCommandLineStack("c64.cpuport.falloff::many")
	test.ExpectFailure(t, g.ApplyCommandLine())
	prefs.PopCommandLineStack()
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var seen int

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int64) < 0 {
			return errors.New("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		seen = int(nv.(int64))
		return nil
	})

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, seen, 10)
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 10)

	var f prefs.Float
	test.ExpectSuccess(t, f.Set("50.5"))
	test.ExpectEquality(t, f.String(), "50.5")
	test.ExpectFailure(t, f.Set(true))
}
