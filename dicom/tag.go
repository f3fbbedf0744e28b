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

import "fmt"

// Tag is a unique identifier for a data element composed of a pair of
// numbers called the group number and the element number as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
//
// The least significant 16 bits is the element number. The most significant
// 16 bits is the group number. Tags order by their natural uint32 order,
// which is the standard's ascending (group, element) order.
type Tag uint32

// NewTag returns the Tag with the given group and element numbers.
func NewTag(group, element uint16) Tag {
	return Tag(uint32(group)<<16 | uint32(element))
}

// GroupNumber returns the group number component of the Tag.
func (t Tag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the Tag.
func (t Tag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsMetadataElement is true if and only if the tag belongs to the file meta
// information group.
func (t Tag) IsMetadataElement() bool {
	return t.GroupNumber() == uint16(0x0002)
}

// IsPrivate is true if and only if the tag has an odd group number.
func (t Tag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

// Compare returns -1, 0, or 1 depending on whether t orders before, equal
// to, or after o.
func (t Tag) Compare(o Tag) int {
	switch {
	case t < o:
		return -1
	case t > o:
		return 1
	}
	return 0
}

func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}
