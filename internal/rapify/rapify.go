// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rapify serializes a simplify.Config to the binary "rapified"
// format described in §4.6: a length-prefixed, little-endian encoding with
// back-patched offsets for embedded classes. Writing happens entirely
// against an in-memory buffer — per §5's resource rule, the output sink
// never needs to be seekable, since every placeholder is patched before the
// buffer is flushed once.
package rapify

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/arma-tools/rapify/internal/simplify"
)

// Error reports a rapification failure: an entry or value type the binary
// format has no encoding for, or a scalar integer outside the i32 range.
// WriteTo returns a sink's own write error as is, not wrapped in Error.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// magic is the file's constant 11-byte preamble: the 4-byte "\x00raP" tag
// game-engine consumers key off of, followed by a fixed version/header
// field the format never varies (§6, §8 scenario 1).
var magic = []byte{0x00, 'r', 'a', 'P', 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00}

// entry kind tags, per §4.6.
const (
	kindClass       = 0
	kindValue       = 1
	kindArray       = 2
	kindExternClass = 3
	kindDeleteClass = 4
	kindArrayExpand = 5
)

// value-entry and array-elem sub tags, per §4.6.
const (
	subString = 0
	subFloat  = 1
	subInt32  = 2
	subArray  = 3
	subInt64  = 6
)

// pendingClass is a class-embedded entry whose 4-byte offset placeholder
// has been reserved but not yet back-patched, because its body hasn't been
// written yet: §4.6 requires the outer body to finish first.
type pendingClass struct {
	placeholder int
	class       simplify.Class
}

type writer struct {
	buf     bytes.Buffer
	pending []pendingClass
}

// Write serializes cfg to the rapified binary format and returns the
// complete buffer. Twice rapifying the same Config yields byte-identical
// output — entries are written in simplifier (source-declaration) order,
// and no part of the encoding depends on map iteration or wall-clock time.
func Write(cfg simplify.Config) ([]byte, error) {
	w := &writer{}
	w.buf.Write(magic)

	if err := w.writeClassBody("", cfg.Body); err != nil {
		return nil, err
	}

	// Class bodies are emitted breadth-first in the order their entries
	// were queued: the root's immediate children first, then each of
	// theirs, matching "recursively emit each embedded class body in
	// order" (§4.6) read as a FIFO rather than a depth-first recursion,
	// since nested pendingClass entries queue behind their siblings.
	for len(w.pending) > 0 {
		p := w.pending[0]
		w.pending = w.pending[1:]

		pos := w.buf.Len()
		patchUint32(w.buf.Bytes(), p.placeholder, uint32(pos))

		if err := w.writeClassBody(p.class.Parent, p.class.Body); err != nil {
			return nil, err
		}
	}

	w.buf.Write(le32(0)) // enums_offset: always absent for this pipeline
	return w.buf.Bytes(), nil
}

// WriteTo rapifies cfg and writes it to dst in a single call, per §5's
// write-once flush rule.
func WriteTo(dst io.Writer, cfg simplify.Config) (int64, error) {
	data, err := Write(cfg)
	if err != nil {
		return 0, err
	}
	n, err := dst.Write(data)
	return int64(n), err
}

// writeClassBody writes "class_body = parent:cstring entries:compressed_uint
// entry*". The root class body has an empty parent name.
func (w *writer) writeClassBody(parent string, body []simplify.Entry) error {
	w.writeCString(parent)
	w.writeVarint(uint64(len(body)))
	for _, e := range body {
		if err := w.writeEntry(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeEntry(e simplify.Entry) error {
	switch v := e.(type) {
	case simplify.Class:
		w.buf.WriteByte(kindClass)
		w.writeCString(v.Name)
		placeholder := w.buf.Len()
		w.buf.Write([]byte{0, 0, 0, 0})
		w.pending = append(w.pending, pendingClass{placeholder: placeholder, class: v})
		return nil

	case simplify.Value:
		return w.writeValue(v)

	case simplify.ExternClass:
		w.buf.WriteByte(kindExternClass)
		w.writeCString(v.Name)
		return nil

	case simplify.DeleteClass:
		w.buf.WriteByte(kindDeleteClass)
		w.writeCString(v.Name)
		return nil

	default:
		return &Error{Message: fmt.Sprintf("rapify: unknown entry type %T", e)}
	}
}

// writeValue encodes a Value entry. Array-valued properties use the
// dedicated array (kind=2) or array-expansion (kind=5) entry kinds rather
// than the value entry's own sub=3 "array_expansion" slot (§4.6); that slot
// exists in the format but this pipeline never produces it, since every
// array-shaped property is represented as its own Entry, not nested inside
// a scalar value entry.
func (w *writer) writeValue(v simplify.Value) error {
	if arr, ok := v.Value.(simplify.Array); ok {
		kind := byte(kindArray)
		if arr.Expand {
			kind = kindArrayExpand
		}
		w.buf.WriteByte(kind)
		w.writeCString(v.Name)
		return w.writeArrayPayload(arr.Values)
	}

	w.buf.WriteByte(kindValue)
	switch val := v.Value.(type) {
	case simplify.Str:
		w.buf.WriteByte(subString)
		w.writeCString(v.Name)
		w.writeCString(val.Value)
	case simplify.Float:
		w.buf.WriteByte(subFloat)
		w.writeCString(v.Name)
		w.writeF32(val.Value)
	case simplify.Int:
		if val.Value < math.MinInt32 || val.Value > math.MaxInt32 {
			return &Error{Message: fmt.Sprintf("rapify: %q: integer %d overflows the scalar i32 encoding", v.Name, val.Value)}
		}
		w.buf.WriteByte(subInt32)
		w.writeCString(v.Name)
		w.writeI32(int32(val.Value))
	default:
		return &Error{Message: fmt.Sprintf("rapify: %q: unsupported value type %T", v.Name, val)}
	}
	return nil
}

// writeArrayPayload writes "array_payload = elems:compressed_uint
// array_elem*".
func (w *writer) writeArrayPayload(values []simplify.Rapified) error {
	w.writeVarint(uint64(len(values)))
	for _, v := range values {
		if err := w.writeArrayElem(v); err != nil {
			return err
		}
	}
	return nil
}

// writeArrayElem writes one "array_elem = u8 sub, payload", choosing the
// wider i64 encoding (sub=6) only when the value's magnitude exceeds i32 —
// array elements, unlike scalar Values, have that escape hatch in §4.6.
func (w *writer) writeArrayElem(v simplify.Rapified) error {
	switch val := v.(type) {
	case simplify.Str:
		w.buf.WriteByte(subString)
		w.writeCString(val.Value)
	case simplify.Float:
		w.buf.WriteByte(subFloat)
		w.writeF32(val.Value)
	case simplify.Int:
		if val.Value >= math.MinInt32 && val.Value <= math.MaxInt32 {
			w.buf.WriteByte(subInt32)
			w.writeI32(int32(val.Value))
		} else {
			w.buf.WriteByte(subInt64)
			w.writeI64(val.Value)
		}
	case simplify.Array:
		w.buf.WriteByte(subArray)
		return w.writeArrayPayload(val.Values)
	default:
		return &Error{Message: fmt.Sprintf("rapify: unsupported array element type %T", val)}
	}
	return nil
}

func (w *writer) writeCString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

func (w *writer) writeVarint(n uint64) {
	w.buf.Write(protowire.AppendVarint(nil, n))
}

func (w *writer) writeF32(f float64) {
	w.buf.Write(protowire.AppendFixed32(nil, math.Float32bits(float32(f))))
}

func (w *writer) writeI32(n int32) {
	w.buf.Write(protowire.AppendFixed32(nil, uint32(n)))
}

func (w *writer) writeI64(n int64) {
	w.buf.Write(protowire.AppendFixed64(nil, uint64(n)))
}

func le32(n uint32) []byte {
	return protowire.AppendFixed32(nil, n)
}

func patchUint32(b []byte, offset int, v uint32) {
	patch := le32(v)
	copy(b[offset:offset+4], patch)
}
