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

import "testing"

func TestTag_String(t *testing.T) {
	got := NewTag(0x0010, 0x0010).String()
	want := "(0010,0010)"
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTag_ElementNumber(t *testing.T) {
	tag := Tag(0xFEDCBA98)
	if tag.ElementNumber() != 0xBA98 {
		t.Fatalf("got %v, want %v", tag.ElementNumber(), 0xBA98)
	}
}

func TestTag_GroupNumber(t *testing.T) {
	tag := Tag(0xFEDCBA98)
	if tag.GroupNumber() != 0xFEDC {
		t.Fatalf("got %v, want %v", tag.GroupNumber(), 0xFEDC)
	}
}

func TestNewTag(t *testing.T) {
	got := NewTag(0x0008, 0x0018)
	want := Tag(0x00080018)
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTag_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Tag
		want int
	}{
		{"equal", NewTag(0x0010, 0x0010), NewTag(0x0010, 0x0010), 0},
		{"element orders before", NewTag(0x0010, 0x0010), NewTag(0x0010, 0x0020), -1},
		{"group dominates element", NewTag(0x0010, 0xFFFF), NewTag(0x0020, 0x0000), -1},
		{"after", NewTag(0x7FE0, 0x0010), NewTag(0x0010, 0x0010), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Compare(tc.b); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTag_IsMetadataElement(t *testing.T) {
	if !NewTag(0x0002, 0x0010).IsMetadataElement() {
		t.Fatalf("got false, want true")
	}
	if NewTag(0x0008, 0x0018).IsMetadataElement() {
		t.Fatalf("got true, want false")
	}
}

func TestTag_IsPrivate(t *testing.T) {
	if !NewTag(0x0009, 0x0001).IsPrivate() {
		t.Fatalf("got false, want true")
	}
	if NewTag(0x0008, 0x0018).IsPrivate() {
		t.Fatalf("got true, want false")
	}
}
