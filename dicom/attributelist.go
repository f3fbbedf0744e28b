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
	"fmt"
	"io"
	"slices"
	"strings"
)

// DataElement is one (Tag, Value) pair of an attribute list.
type DataElement struct {
	Tag   Tag
	Value Value
}

// listStorage is the shared backing store of an AttributeList: a reference
// count and the data elements in strictly ascending tag order, each tag
// unique. refs counts the handles (and nested sequence items) referencing
// this storage and is at least 1 while any of them exists.
type listStorage struct {
	refs  int
	elems []DataElement
}

// clone returns fresh storage with refs == 1 holding the same elements.
// Scalar payloads are shared (values are immutable once set); nested
// attribute lists inside sequence payloads are re-referenced, not
// deep-cloned, so copy-on-write applies independently at every nesting
// level.
func (s *listStorage) clone() *listStorage {
	elems := make([]DataElement, len(s.elems))
	for i, e := range s.elems {
		elems[i] = DataElement{e.Tag, e.Value.shareNested()}
	}
	return &listStorage{refs: 1, elems: elems}
}

// release drops one reference to s. Dropping the last reference also drops
// the references the storage holds on nested lists through its sequence
// payloads. The walk uses an explicit work list so deeply nested sequences
// cannot overflow the call stack.
func (s *listStorage) release() {
	stack := []*listStorage{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.refs--
		if cur.refs > 0 {
			continue
		}
		for _, e := range cur.elems {
			if seq := e.Value.Sequence(); seq != nil {
				for _, item := range seq.Items {
					if item.storage != nil {
						stack = append(stack, item.storage)
					}
				}
			}
		}
	}
}

// releaseValue drops the references a stored value holds on nested lists.
// Values with scalar payloads hold none.
func releaseValue(v Value) {
	if seq := v.Sequence(); seq != nil {
		for _, item := range seq.Items {
			if item.storage != nil {
				item.storage.release()
			}
		}
	}
}

// search returns the index at which tag is or would be stored, and whether
// it is present.
func (s *listStorage) search(tag Tag) (int, bool) {
	return slices.BinarySearchFunc(s.elems, tag, func(e DataElement, t Tag) int {
		return e.Tag.Compare(t)
	})
}

// AttributeList is one level of a DICOM data set hierarchy: a tag-ordered
// collection of data elements, where a sequence-valued element contains
// further AttributeLists as items. The zero AttributeList is an empty list
// ready for use.
//
// An AttributeList is a handle to reference-counted shared storage. Copy
// returns a second handle sharing the same storage in O(1); mutating either
// handle afterward first clones the storage (copy-on-write), so a mutation
// through one handle is never observable through another. Plain Go
// assignment of an AttributeList does not participate in the reference
// count: the result is an alias of the same handle, and independent
// mutation of an alias is not isolated. Use Copy wherever an independently
// mutable list is wanted.
//
// The reference count is not atomic. Handles that share storage must not be
// mutated from more than one goroutine without external synchronization;
// concurrent reads are safe because read operations never touch the count.
type AttributeList struct {
	storage *listStorage
}

// listPair is a unit of deferred structural comparison between two lists.
type listPair struct {
	a, b AttributeList
}

// IsEmpty is true if and only if the handle owns no storage.
func (l AttributeList) IsEmpty() bool {
	return l.storage == nil
}

// GetNumberOfDataElements returns the number of data elements in O(1).
func (l AttributeList) GetNumberOfDataElements() int {
	if l.storage == nil {
		return 0
	}
	return len(l.storage.elems)
}

// Copy returns a new handle sharing this list's storage. No elements are
// duplicated; the shared storage is cloned lazily by the first mutation
// through either handle.
func (l AttributeList) Copy() AttributeList {
	if l.storage != nil {
		l.storage.refs++
	}
	return AttributeList{l.storage}
}

// Clear releases the handle's reference to its storage, leaving the handle
// empty. Other handles sharing the storage are unaffected.
func (l *AttributeList) Clear() {
	if l.storage != nil {
		l.storage.release()
		l.storage = nil
	}
}

// SetAttributeValue inserts or overwrites the data element for tag. If the
// storage is currently shared, it is first cloned into exclusively owned
// storage, so the mutation is never observable through other handles.
func (l *AttributeList) SetAttributeValue(tag Tag, v Value) {
	if l.storage == nil {
		l.storage = &listStorage{refs: 1, elems: []DataElement{{tag, v}}}
		return
	}
	if l.storage.refs > 1 {
		old := l.storage
		l.storage = old.clone()
		old.release()
	}
	s := l.storage
	i, found := s.search(tag)
	if found {
		old := s.elems[i].Value
		s.elems[i].Value = v
		releaseValue(old)
		return
	}
	s.elems = slices.Insert(s.elems, i, DataElement{tag, v})
}

// GetAttributeValue returns the value stored for tag and whether the tag is
// present. It never mutates the list. The returned value shares storage
// with the list and must be treated as read-only.
func (l AttributeList) GetAttributeValue(tag Tag) (Value, bool) {
	if l.storage == nil {
		return Value{}, false
	}
	i, found := l.storage.search(tag)
	if !found {
		return Value{}, false
	}
	return l.storage.elems[i].Value, true
}

// Elements returns a copy of the data elements in ascending tag order.
func (l AttributeList) Elements() []DataElement {
	if l.storage == nil {
		return nil
	}
	return slices.Clone(l.storage.elems)
}

// Iterator returns an iterator over the data elements in ascending tag
// order, starting from the first element. Mutating the list while an
// iteration is in progress invalidates the iteration; a fresh call to
// Iterator restarts from the beginning.
func (l AttributeList) Iterator() *DataElementIterator {
	if l.storage == nil {
		return &DataElementIterator{}
	}
	return &DataElementIterator{elems: l.storage.elems}
}

// Equal reports whether l and o have the same number of elements and, at
// every position in ascending tag order, equal tags and equal values, with
// value equality recursing into nested attribute lists. Equality is
// structural: two lists with distinct storage but identical content are
// equal. Neither operand is mutated.
func (l AttributeList) Equal(o AttributeList) bool {
	return listPairsEqual([]listPair{{l, o}})
}

// listPairsEqual drains a work list of list pairs, comparing each pair one
// level at a time and pushing nested sequence items back onto the list.
// The explicit work list keeps the call stack flat regardless of how deeply
// sequences nest.
func listPairsEqual(pending []listPair) bool {
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if p.a.storage == p.b.storage {
			continue
		}
		if p.a.GetNumberOfDataElements() != p.b.GetNumberOfDataElements() {
			return false
		}
		if p.a.storage == nil || p.b.storage == nil {
			continue
		}
		ae, be := p.a.storage.elems, p.b.storage.elems
		for i := range ae {
			if ae[i].Tag != be[i].Tag {
				return false
			}
			if !valueEqual(ae[i].Value, be[i].Value, &pending) {
				return false
			}
		}
	}
	return true
}

func (l AttributeList) String() string {
	return l.string(0)
}

func (l AttributeList) string(indentLvl int) string {
	indent := strings.Repeat("  ", indentLvl)
	if l.storage == nil {
		return indent + "{}"
	}
	lines := make([]string, 0, len(l.storage.elems))
	for _, e := range l.storage.elems {
		lines = append(lines, fmt.Sprintf("%s%v %v", indent, e.Tag, e.Value.string(indentLvl)))
	}
	return strings.Join(lines, "\n")
}

// DataElementIterator is an iterator over an AttributeList's data elements
// in ascending tag order.
type DataElementIterator struct {
	elems []DataElement
	pos   int
}

// NextElement returns the next data element. If there is no next element,
// the error io.EOF is returned.
func (it *DataElementIterator) NextElement() (DataElement, error) {
	if it.pos >= len(it.elems) {
		return DataElement{}, io.EOF
	}
	e := it.elems[it.pos]
	it.pos++
	return e, nil
}
