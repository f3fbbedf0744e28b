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

//go:build windows

package dicom

import (
	"errors"
	"syscall"
)

// System error numbers the syscall package does not export by name.
const (
	errorInvalidDrive   = syscall.Errno(15)  // ERROR_INVALID_DRIVE
	errorWriteProtect   = syscall.Errno(19)  // ERROR_WRITE_PROTECT
	errorHandleDiskFull = syscall.Errno(39)  // ERROR_HANDLE_DISK_FULL
	errorDiskFull       = syscall.Errno(112) // ERROR_DISK_FULL
	errorDirectory      = syscall.Errno(267) // ERROR_DIRECTORY
)

// errnoCode maps a Windows system error number carried by err into the
// taxonomy. The second result is false when err carries no error number at
// all. This table is the only part of the error mapping that differs
// between platform families.
func errnoCode(err error) (Code, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return Good, false
	}
	switch errno {
	case syscall.ERROR_ACCESS_DENIED, errorWriteProtect, syscall.EACCES, syscall.EPERM:
		return AccessDenied, true
	case syscall.ERROR_FILE_NOT_FOUND, syscall.ENOENT:
		return FileNotFound, true
	case syscall.ERROR_PATH_NOT_FOUND, errorInvalidDrive, errorDirectory, syscall.ENOTDIR:
		return DirectoryNotFound, true
	case syscall.EISDIR:
		return IsDirectory, true
	case errorDiskFull, errorHandleDiskFull, syscall.ENOSPC:
		return OutOfSpace, true
	}
	return Bad, true
}
