// Copyright 2024 the vtk-dicom authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	typeDirectory uint8 = 1 << iota
	typeSymlink
)

// dirEntry is one directory entry. flags holds the classification bits that
// are set; mask holds the bits that have been determined. A bit set in mask
// but not in flags is a cached "no".
type dirEntry struct {
	name  string
	flags uint8
	mask  uint8
}

// readDirBatch is the number of names requested from the backend per call.
// Entries are appended, so the backing array grows geometrically with the
// entry count.
const readDirBatch = 256

// DirectoryLister enumerates the entries of one directory, excluding the
// self and parent pseudo-entries. Enumeration happens once, eagerly, at
// construction. Entry classification (directory, symlink) is lazy: the
// first query for an entry issues one metadata call and caches the answer,
// so repeated queries cost nothing and always agree.
//
// A DirectoryLister is not safe for concurrent use; each goroutine should
// own its own instance.
type DirectoryLister struct {
	fs      afero.Fs
	name    string
	err     Code
	entries []dirEntry
}

// NewDirectoryLister enumerates the entries of dirname on fs. If the
// directory cannot be opened, the error code is retrievable via GetError;
// otherwise GetError is Good, even for an empty directory.
func NewDirectoryLister(fs afero.Fs, dirname string) *DirectoryLister {
	d := &DirectoryLister{fs: fs, name: dirname}
	fi, err := fs.Stat(dirname)
	if err != nil {
		d.err = codeForPath(fs, dirname, err)
		return d
	}
	if !fi.IsDir() {
		d.err = DirectoryNotFound
		return d
	}
	f, err := fs.Open(dirname)
	if err != nil {
		d.err = codeForPath(fs, dirname, err)
		return d
	}
	defer f.Close()
	for {
		names, err := f.Readdirnames(readDirBatch)
		for _, name := range names {
			if name == "." || name == ".." {
				continue
			}
			d.entries = append(d.entries, dirEntry{name: name})
		}
		if err == io.EOF {
			return d
		}
		if err != nil {
			d.err = codeFromError(err)
			return d
		}
	}
}

// GetError returns the recorded error code (Good if no error).
func (d *DirectoryLister) GetError() Code {
	return d.err
}

// NumberOfFiles returns the number of enumerated entries.
func (d *DirectoryLister) NumberOfFiles() int {
	return len(d.entries)
}

// GetFile returns the name of entry i, or the empty string if i is out of
// range.
func (d *DirectoryLister) GetFile(i int) string {
	if i < 0 || i >= len(d.entries) {
		return ""
	}
	return d.entries[i].name
}

// IsDirectory reports whether entry i is a directory. The answer is
// determined with one stat call the first time it is requested for an entry
// and cached thereafter. Out-of-range i is false, with no side effects.
func (d *DirectoryLister) IsDirectory(i int) bool {
	if i < 0 || i >= len(d.entries) {
		return false
	}
	e := &d.entries[i]
	if e.mask&typeDirectory == 0 {
		if fi, err := d.fs.Stat(filepath.Join(d.name, e.name)); err == nil {
			if fi.IsDir() {
				e.flags |= typeDirectory
			}
			e.mask |= typeDirectory
		}
	}
	return e.flags&typeDirectory != 0
}

// IsSymlink reports whether entry i is a symbolic link. The answer is
// determined with one lstat call the first time it is requested for an
// entry and cached thereafter. A backend without lstat support (no
// afero.Lstater) cannot contain symlinks the lister could observe, so its
// entries classify as false. Out-of-range i is false, with no side effects.
func (d *DirectoryLister) IsSymlink(i int) bool {
	if i < 0 || i >= len(d.entries) {
		return false
	}
	e := &d.entries[i]
	if e.mask&typeSymlink == 0 {
		if lstater, ok := d.fs.(afero.Lstater); ok {
			fi, usedLstat, err := lstater.LstatIfPossible(filepath.Join(d.name, e.name))
			if err == nil {
				if usedLstat && fi.Mode()&os.ModeSymlink != 0 {
					e.flags |= typeSymlink
				}
				e.mask |= typeSymlink
			}
		} else {
			e.mask |= typeSymlink
		}
	}
	return e.flags&typeSymlink != 0
}
