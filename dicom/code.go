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
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Code is the normalized I/O error taxonomy shared by ByteStream and
// DirectoryLister. Every platform-specific error is mapped into exactly one
// of these values; callers never branch on a platform error.
type Code int

const (
	// Good means no error.
	Good Code = iota
	// Bad is an unspecified error.
	Bad
	// AccessDenied is a file permission error.
	AccessDenied
	// IsDirectory means the file could not be opened because a directory
	// with that name exists.
	IsDirectory
	// DirectoryNotFound means one of the directories in the path does not
	// exist.
	DirectoryNotFound
	// FileNotFound means the requested file (or directory) does not exist.
	FileNotFound
	// OutOfSpace means the disk is full or a quota was exceeded.
	OutOfSpace
)

func (c Code) String() string {
	switch c {
	case Good:
		return "Good"
	case Bad:
		return "Bad"
	case AccessDenied:
		return "AccessDenied"
	case IsDirectory:
		return "IsDirectory"
	case DirectoryNotFound:
		return "DirectoryNotFound"
	case FileNotFound:
		return "FileNotFound"
	case OutOfSpace:
		return "OutOfSpace"
	}
	return "Bad"
}

// codeFromError maps err into the taxonomy. Platform error numbers are
// handled by errnoCode (one mapping table per platform family); errors that
// carry no platform number, such as those from in-memory backends, fall
// back to the os sentinel values. Anything unrecognized is Bad.
func codeFromError(err error) Code {
	if err == nil {
		return Good
	}
	if c, ok := errnoCode(err); ok {
		return c
	}
	switch {
	case errors.Is(err, os.ErrPermission):
		return AccessDenied
	case errors.Is(err, os.ErrNotExist):
		return FileNotFound
	}
	return Bad
}

// codeForPath is codeFromError plus one disambiguation: POSIX reports a
// missing file and a missing parent directory with the same error, so when
// the target is missing, the parent is probed to decide between
// FileNotFound and DirectoryNotFound.
func codeForPath(fs afero.Fs, path string, err error) Code {
	code := codeFromError(err)
	if code != FileNotFound {
		return code
	}
	parent := filepath.Dir(path)
	if parent == path {
		return code
	}
	if fi, statErr := fs.Stat(parent); statErr != nil || !fi.IsDir() {
		return DirectoryNotFound
	}
	return FileNotFound
}
