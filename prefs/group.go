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

package prefs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/gopher64/curated"
)

// Sentinal error patterns.
const (
	DuplicateKey = "prefs: duplicate key (%s)"
)

// Group is a named collection of preferences. Values in the group can be
// overridden by the most recent command line group (see
// PushCommandLineStack()).
type Group struct {
	entries map[string]Pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]Pref),
	}
}

// Add a preference to the group under the specified key.
func (g *Group) Add(key string, p Pref) error {
	if _, ok := g.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	g.entries[key] = p
	return nil
}

// ApplyCommandLine sets any value in the group that has been specified in the
// current command line group.
func (g *Group) ApplyCommandLine() error {
	for k, p := range g.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(BadValue, k, err)
			}
		}
	}
	return nil
}

// Get returns the preference with the specified key.
func (g *Group) Get(key string) (Pref, bool) {
	p, ok := g.entries[key]
	return p, ok
}

// String returns the group as a sorted list of key/value pairs, one per line.
func (g *Group) String() string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, g.entries[k].String()))
	}
	return s.String()
}
