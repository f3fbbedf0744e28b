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
	"slices"
	"strings"
)

// Sequence models a DICOM sequence: an ordered list of items, each itself a
// full attribute collection.
type Sequence struct {
	Items []AttributeList
}

// Append adds an item to the end of the sequence.
func (seq *Sequence) Append(item AttributeList) {
	seq.Items = append(seq.Items, item)
}

func (seq *Sequence) String() string {
	return seq.string(0)
}

func (seq *Sequence) string(indentLvl int) string {
	lines := make([]string, 0, len(seq.Items))
	for _, item := range seq.Items {
		lines = append(lines, item.string(indentLvl+1))
	}
	return "\n" + strings.Join(lines, "\n")
}

// Value is the payload of a single data element. A Value holds exactly one
// of the following types:
//
//	[]string,
//	[]byte,
//	[]int16,
//	[]uint16,
//	[]int32,
//	[]uint32,
//	[]float32,
//	[]float64,
//	*Sequence
//
// Values are immutable once set: neither the package nor callers may modify
// the payload (or the slice it aliases) after construction. This is what
// allows a copy-on-write clone of an AttributeList to share payloads between
// the old and new storage without copying them.
//
// The zero Value holds no payload and is equal only to another zero Value.
type Value struct {
	data interface{}
}

// NewValue returns a Value holding data. It returns an error if data is not
// one of the types listed in the Value documentation.
func NewValue(data interface{}) (Value, error) {
	switch data.(type) {
	case []string, []byte, []int16, []uint16, []int32, []uint32,
		[]float32, []float64, *Sequence:
		return Value{data}, nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", data)
}

// MustNewValue is like NewValue but panics on an unsupported type. It is
// intended for value literals of statically known type.
func MustNewValue(data interface{}) Value {
	v, err := NewValue(data)
	if err != nil {
		panic(err)
	}
	return v
}

// NewSequenceValue returns a Value holding a sequence of the given items.
// The items are shared, not cloned: the value takes over the reference each
// handle holds, and releases it when the value is overwritten or its list is
// cleared. A caller that keeps using its own handle to mutate an item should
// pass item.Copy() instead.
func NewSequenceValue(items ...AttributeList) Value {
	return Value{&Sequence{Items: items}}
}

// Data returns the raw payload. The result must be treated as read-only.
func (v Value) Data() interface{} {
	return v.data
}

// IsSequence is true if and only if the payload is a *Sequence.
func (v Value) IsSequence() bool {
	_, ok := v.data.(*Sequence)
	return ok
}

// Sequence returns the sequence payload, or nil if the value does not hold
// a sequence.
func (v Value) Sequence() *Sequence {
	s, _ := v.data.(*Sequence)
	return s
}

// Equal reports whether v and o hold payloads of the same type with equal
// contents. Sequence payloads compare structurally: same number of items
// and pairwise equal items, recursing into nested attribute lists.
func (v Value) Equal(o Value) bool {
	var pending []listPair
	if !valueEqual(v, o, &pending) {
		return false
	}
	return listPairsEqual(pending)
}

// valueEqual compares the immediate payloads of a and b. Nested attribute
// lists are not descended into here; their pairs are pushed onto pending for
// the caller to drain. Keeping the recursion in an explicit work list bounds
// the call stack on adversarially deep sequence nesting.
func valueEqual(a, b Value, pending *[]listPair) bool {
	switch av := a.data.(type) {
	case nil:
		return b.data == nil
	case []string:
		bv, ok := b.data.([]string)
		return ok && slices.Equal(av, bv)
	case []byte:
		bv, ok := b.data.([]byte)
		return ok && slices.Equal(av, bv)
	case []int16:
		bv, ok := b.data.([]int16)
		return ok && slices.Equal(av, bv)
	case []uint16:
		bv, ok := b.data.([]uint16)
		return ok && slices.Equal(av, bv)
	case []int32:
		bv, ok := b.data.([]int32)
		return ok && slices.Equal(av, bv)
	case []uint32:
		bv, ok := b.data.([]uint32)
		return ok && slices.Equal(av, bv)
	case []float32:
		bv, ok := b.data.([]float32)
		return ok && slices.Equal(av, bv)
	case []float64:
		bv, ok := b.data.([]float64)
		return ok && slices.Equal(av, bv)
	case *Sequence:
		bv, ok := b.data.(*Sequence)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			*pending = append(*pending, listPair{av.Items[i], bv.Items[i]})
		}
		return true
	}
	return false
}

// shareNested returns a value suitable for storing in a fresh storage clone.
// Scalar payloads are immutable and shared as-is; sequence payloads get a
// new Sequence whose items re-reference (refcount bump) the same storages,
// so copy-on-write applies independently at every nesting level.
func (v Value) shareNested() Value {
	s, ok := v.data.(*Sequence)
	if !ok {
		return v
	}
	items := make([]AttributeList, len(s.Items))
	for i := range s.Items {
		items[i] = s.Items[i].Copy()
	}
	return Value{&Sequence{Items: items}}
}

func (v Value) String() string {
	return v.string(0)
}

func (v Value) string(indentLvl int) string {
	if s, ok := v.data.(*Sequence); ok {
		return s.string(indentLvl)
	}
	return fmt.Sprintf("%v", v.data)
}
