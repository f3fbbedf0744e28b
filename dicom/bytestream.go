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
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Mode is the file mode (input or output) of a ByteStream.
type Mode int

const (
	// ModeIn opens an existing file for reading. It never creates.
	ModeIn Mode = iota
	// ModeOut creates, or truncates, a file for writing.
	ModeOut
)

// Size is a file size or offset in bytes.
type Size uint64

// SizeUnknown is returned by GetSize when the size cannot be determined.
const SizeUnknown = Size(math.MaxUint64)

// ByteStream provides positioned read/write access to one open file. It has
// no knowledge of DICOM semantics; the parser and writer layers use it as
// their sole means of touching the filesystem.
//
// A ByteStream never returns platform errors: each operation reports its
// outcome through the returned count or boolean, and the normalized Code is
// available from GetError. A ByteStream is not safe for concurrent use;
// each goroutine should own its own instance.
type ByteStream struct {
	file afero.File
	err  Code
	eof  bool
}

// NewByteStream opens path on fs in the given mode. Construction either
// succeeds, leaving the stream usable, or records the error code retrievable
// via GetError; it never panics. Close must be called when done.
func NewByteStream(fs afero.Fs, path string, mode Mode) *ByteStream {
	bs := &ByteStream{}
	flag := os.O_RDONLY
	if mode == ModeOut {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		// Some backends create missing parent directories as a side effect
		// of O_CREATE. Check the parent up front so a missing one reports
		// DirectoryNotFound on every backend.
		if parent := filepath.Dir(path); parent != path {
			fi, statErr := fs.Stat(parent)
			switch {
			case statErr != nil && errors.Is(statErr, os.ErrNotExist):
				bs.err = DirectoryNotFound
				return bs
			case statErr != nil:
				bs.err = codeFromError(statErr)
				return bs
			case !fi.IsDir():
				bs.err = DirectoryNotFound
				return bs
			}
		}
	}
	f, err := fs.OpenFile(path, flag, 0o666)
	if err != nil {
		bs.err = codeForPath(fs, path, err)
		return bs
	}
	// POSIX allows a directory to be opened read-only and only fails the
	// subsequent read. Normalize so every backend reports the same thing.
	if fi, statErr := f.Stat(); statErr == nil && fi.IsDir() {
		f.Close()
		bs.err = IsDirectory
		return bs
	}
	bs.file = f
	return bs
}

// Read reads up to len(data) bytes at the current position, advancing it.
// A return of 0 signals either end-of-file or an error; callers distinguish
// via EndOfFile and GetError.
func (bs *ByteStream) Read(data []byte) int {
	if bs.file == nil {
		bs.fail(Bad)
		return 0
	}
	n, err := bs.file.Read(data)
	// Backends disagree on how a read beyond the end of the file reports:
	// os files return io.EOF, afero's in-memory files io.ErrUnexpectedEOF.
	// Both are the end-of-file condition, not an error.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		bs.eof = true
	} else if err != nil {
		bs.err = codeFromError(err)
	}
	return n
}

// Write writes len(data) bytes at the current position, advancing it, and
// returns the number of bytes actually written. A short write indicates an
// error, such as a full device; the code is available from GetError.
func (bs *ByteStream) Write(data []byte) int {
	if bs.file == nil {
		bs.fail(Bad)
		return 0
	}
	n, err := bs.file.Write(data)
	if err != nil {
		bs.err = codeFromError(err)
	} else if n < len(data) {
		bs.err = Bad
	}
	return n
}

// SetPosition moves the read/write position to offset bytes from the start
// of the file and reports success. Seeking past end-of-file is not itself
// an error: a subsequent read reports end-of-file, and a subsequent write
// may extend the file, backend permitting. A successful seek clears the
// end-of-file flag.
func (bs *ByteStream) SetPosition(offset Size) bool {
	if bs.file == nil {
		bs.fail(Bad)
		return false
	}
	if offset > Size(math.MaxInt64) {
		bs.err = Bad
		return false
	}
	if _, err := bs.file.Seek(int64(offset), io.SeekStart); err != nil {
		bs.err = codeFromError(err)
		return false
	}
	bs.eof = false
	return true
}

// GetSize returns the total size of the file in bytes, or SizeUnknown on
// error.
func (bs *ByteStream) GetSize() Size {
	if bs.file == nil {
		bs.fail(Bad)
		return SizeUnknown
	}
	fi, err := bs.file.Stat()
	if err != nil {
		bs.err = codeFromError(err)
		return SizeUnknown
	}
	return Size(fi.Size())
}

// EndOfFile reports whether the last read hit the end of the file.
func (bs *ByteStream) EndOfFile() bool {
	return bs.eof
}

// GetError returns the recorded error code (Good if no error).
func (bs *ByteStream) GetError() Code {
	return bs.err
}

// Close releases the underlying file. It is safe to call more than once;
// only the first call has an effect.
func (bs *ByteStream) Close() {
	if bs.file == nil {
		return
	}
	if err := bs.file.Close(); err != nil && bs.err == Good {
		bs.err = codeFromError(err)
	}
	bs.file = nil
}

// fail records code unless an error is already recorded.
func (bs *ByteStream) fail(code Code) {
	if bs.err == Good {
		bs.err = code
	}
}

// Access probes path for use in the given mode without opening it. It
// returns Good for an ordinary file, IsDirectory for a directory, and
// otherwise the code an open in that mode would record. In ModeOut a
// missing file is Good as long as its parent directory exists, since the
// open would create it.
func Access(fs afero.Fs, path string, mode Mode) Code {
	fi, err := fs.Stat(path)
	if err != nil {
		code := codeForPath(fs, path, err)
		if mode == ModeOut && code == FileNotFound {
			return Good
		}
		return code
	}
	if fi.IsDir() {
		return IsDirectory
	}
	return Good
}

// Remove deletes the named file, returning Good on success or the mapped
// error code.
func Remove(fs afero.Fs, path string) Code {
	if err := fs.Remove(path); err != nil {
		return codeForPath(fs, path, err)
	}
	return Good
}
