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
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gopher64/curated"
)

// File is used to specify the file containing the tune data.
type File struct {
	// filename of the tune to load. can be a URL with an http or https scheme
	Filename string

	// expected hash of the loaded data. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will not reload
	// the data
	Data []byte
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile(filename string) File {
	return File{
		Filename: filename,
	}
}

// ShortName returns a shortened version of the filename.
func (f File) ShortName() string {
	name := path.Base(f.Filename)
	name = strings.TrimSuffix(name, path.Ext(f.Filename))
	return name
}

// HasLoaded returns true if Load() has been successfully called.
func (f File) HasLoaded() bool {
	return len(f.Data) > 0
}

// Load the tune data. Filenames with a URL scheme will use that method to
// load the data. Currently supported schemes are HTTP and local files.
func (f *File) Load() error {
	if len(f.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(f.Filename)
	if err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(f.Filename)
		if err != nil {
			return curated.Errorf("loader: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf("loader: %v", resp.Status)
		}

		f.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("loader: %v", err)
		}

	case "file":
		f.Data, err = os.ReadFile(f.Filename)
		if err != nil {
			return curated.Errorf("loader: %v", err)
		}

	default:
		return curated.Errorf("loader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(f.Data))

	// check for hash consistency
	if f.Hash != "" && f.Hash != hash {
		f.Data = nil
		return curated.Errorf("loader: %v", "unexpected hash value")
	}

	f.Hash = hash

	return nil
}
