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

//go:build unix

package dicom

import (
	"errors"
	"syscall"
)

// errnoCode maps a POSIX errno carried by err into the taxonomy. The second
// result is false when err carries no errno at all. This table is the only
// part of the error mapping that differs between platform families.
func errnoCode(err error) (Code, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return Good, false
	}
	switch errno {
	case syscall.EACCES, syscall.EPERM, syscall.EROFS:
		return AccessDenied, true
	case syscall.EISDIR:
		return IsDirectory, true
	case syscall.ENOTDIR:
		return DirectoryNotFound, true
	case syscall.ENOENT:
		return FileNotFound, true
	case syscall.ENOSPC, syscall.EDQUOT, syscall.EFBIG:
		return OutOfSpace, true
	}
	return Bad, true
}
