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
	"bytes"
	"os"
	"syscall"
	"testing"

	"github.com/spf13/afero"
)

// newTestFs returns a memory filesystem pre-populated with the given files.
func newTestFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, data := range files {
		if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
			t.Fatalf("writing %v: %v", path, err)
		}
	}
	return fs
}

func TestNewByteStream_errorMapping(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"/data/a.dcm": []byte("DICM")})
	tests := []struct {
		name string
		path string
		mode Mode
		want Code
	}{
		{"missing file", "/data/missing.dcm", ModeIn, FileNotFound},
		{"missing parent directory", "/nowhere/missing.dcm", ModeIn, DirectoryNotFound},
		{"missing parent directory for write", "/nowhere/out.dcm", ModeOut, DirectoryNotFound},
		{"directory opened for read", "/data", ModeIn, IsDirectory},
		{"ordinary file", "/data/a.dcm", ModeIn, Good},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bs := NewByteStream(fs, tc.path, tc.mode)
			defer bs.Close()
			if got := bs.GetError(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestByteStream_readWriteRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	payload := []byte("\x02\x00\x00\x00UL\x04\x00")

	out := NewByteStream(fs, "/out.dcm", ModeOut)
	if out.GetError() != Good {
		t.Fatalf("unexpected open error: %v", out.GetError())
	}
	if n := out.Write(payload); n != len(payload) {
		t.Fatalf("got %v bytes written, want %v", n, len(payload))
	}
	out.Close()

	in := NewByteStream(fs, "/out.dcm", ModeIn)
	defer in.Close()
	if got := in.GetSize(); got != Size(len(payload)) {
		t.Fatalf("got size %v, want %v", got, len(payload))
	}
	buf := make([]byte, len(payload))
	if n := in.Read(buf); n != len(payload) {
		t.Fatalf("got %v bytes read, want %v", n, len(payload))
	}
	if !bytes.Equal(buf, payload) {
		t.Fatalf("got %v, want %v", buf, payload)
	}
	if in.GetError() != Good {
		t.Fatalf("unexpected error after round trip: %v", in.GetError())
	}
}

func TestByteStream_endOfFile(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"/a.dcm": []byte("abcd")})
	bs := NewByteStream(fs, "/a.dcm", ModeIn)
	defer bs.Close()

	buf := make([]byte, 4)
	if n := bs.Read(buf); n != 4 {
		t.Fatalf("got %v bytes, want 4", n)
	}
	if n := bs.Read(buf); n != 0 {
		t.Fatalf("got %v bytes past end, want 0", n)
	}
	if !bs.EndOfFile() {
		t.Fatalf("got EndOfFile() == false past end, want true")
	}
	if bs.GetError() != Good {
		t.Fatalf("end of file recorded as error: %v", bs.GetError())
	}

	// Repositioning clears the end-of-file flag.
	if !bs.SetPosition(1) {
		t.Fatalf("SetPosition failed")
	}
	if bs.EndOfFile() {
		t.Fatalf("EndOfFile still set after SetPosition")
	}
	if n := bs.Read(buf[:2]); n != 2 || !bytes.Equal(buf[:2], []byte("bc")) {
		t.Fatalf("got %v %q after seek, want 2 %q", n, buf[:2], "bc")
	}
}

func TestByteStream_seekPastEnd(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"/a.dcm": []byte("abcd")})
	bs := NewByteStream(fs, "/a.dcm", ModeIn)
	defer bs.Close()

	if !bs.SetPosition(100) {
		t.Fatalf("seek past end reported failure")
	}
	if n := bs.Read(make([]byte, 1)); n != 0 {
		t.Fatalf("got %v bytes past end, want 0", n)
	}
	if !bs.EndOfFile() {
		t.Fatalf("got EndOfFile() == false after read past end")
	}
}

func TestByteStream_closeIsIdempotent(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"/a.dcm": []byte("abcd")})
	bs := NewByteStream(fs, "/a.dcm", ModeIn)
	bs.Close()
	bs.Close()
	if bs.GetError() != Good {
		t.Fatalf("double Close recorded error: %v", bs.GetError())
	}
	if n := bs.Read(make([]byte, 1)); n != 0 {
		t.Fatalf("got %v bytes from closed stream, want 0", n)
	}
	if bs.GetError() != Bad {
		t.Fatalf("got %v after read on closed stream, want Bad", bs.GetError())
	}
}

// enospcFs wraps a filesystem so that files it opens fail with ENOSPC after
// a fixed number of bytes, simulating a full device.
type enospcFs struct {
	afero.Fs
	capacity int
}

func (fs enospcFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := fs.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &enospcFile{File: f, remaining: fs.capacity}, nil
}

type enospcFile struct {
	afero.File
	remaining int
}

func (f *enospcFile) Write(p []byte) (int, error) {
	if len(p) <= f.remaining {
		f.remaining -= len(p)
		return f.File.Write(p)
	}
	n, _ := f.File.Write(p[:f.remaining])
	f.remaining = 0
	return n, &os.PathError{Op: "write", Path: f.Name(), Err: syscall.ENOSPC}
}

func TestByteStream_outOfSpace(t *testing.T) {
	fs := enospcFs{Fs: afero.NewMemMapFs(), capacity: 4}
	bs := NewByteStream(fs, "/out.dcm", ModeOut)
	if bs.GetError() != Good {
		t.Fatalf("unexpected open error: %v", bs.GetError())
	}
	defer bs.Close()

	n := bs.Write([]byte("abcdefgh"))
	if n >= 8 {
		t.Fatalf("got %v bytes written on full device, want a short write", n)
	}
	if got := bs.GetError(); got != OutOfSpace {
		t.Fatalf("got %v, want OutOfSpace", got)
	}
}

// denyFs wraps a filesystem so that every open fails with a permission
// error.
type denyFs struct {
	afero.Fs
}

func (fs denyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

func TestNewByteStream_accessDenied(t *testing.T) {
	fs := denyFs{newTestFs(t, map[string][]byte{"/a.dcm": []byte("abcd")})}
	bs := NewByteStream(fs, "/a.dcm", ModeIn)
	defer bs.Close()
	if got := bs.GetError(); got != AccessDenied {
		t.Fatalf("got %v, want AccessDenied", got)
	}
}

func TestAccess(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"/data/a.dcm": []byte("DICM")})
	tests := []struct {
		name string
		path string
		mode Mode
		want Code
	}{
		{"existing file for read", "/data/a.dcm", ModeIn, Good},
		{"existing file for write", "/data/a.dcm", ModeOut, Good},
		{"directory", "/data", ModeIn, IsDirectory},
		{"missing file for read", "/data/missing.dcm", ModeIn, FileNotFound},
		{"creatable file for write", "/data/new.dcm", ModeOut, Good},
		{"missing parent for write", "/nowhere/new.dcm", ModeOut, DirectoryNotFound},
		{"missing parent for read", "/nowhere/missing.dcm", ModeIn, DirectoryNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Access(fs, tc.path, tc.mode); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"/data/a.dcm": []byte("DICM")})
	if got := Remove(fs, "/data/a.dcm"); got != Good {
		t.Fatalf("got %v, want Good", got)
	}
	if got := Access(fs, "/data/a.dcm", ModeIn); got != FileNotFound {
		t.Fatalf("got %v after Remove, want FileNotFound", got)
	}
	if got := Remove(fs, "/data/a.dcm"); got != FileNotFound {
		t.Fatalf("got %v on second Remove, want FileNotFound", got)
	}
}
