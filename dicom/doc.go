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

// Package dicom provides the in-memory data model and the platform I/O
// substrate of a DICOM toolkit. The data model is the AttributeList: a
// shared, reference-counted, copy-on-write, tag-ordered collection of data
// elements whose values may themselves contain nested AttributeLists
// (sequences), recursively. The I/O substrate is ByteStream (positioned
// read/write over a single open file) and DirectoryLister (directory
// enumeration with lazy, cached entry classification), both written against
// an afero.Fs backend and both reporting failures through a single closed
// error taxonomy (Code).
//
// Wire-format encoding and decoding (value representations, transfer
// syntaxes, pixel data) is handled by external components; this package makes
// no assumption about DICOM framing beyond the tag/value structure itself.
package dicom
