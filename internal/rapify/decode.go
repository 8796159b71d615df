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

package rapify

import (
	"bytes"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/arma-tools/rapify/internal/simplify"
)

// decode reads back a rapified buffer's root class body. It is not part of
// the pipeline's own forward path — the consumer of rapified output is the
// out-of-scope game engine runtime (§1) — but it's the only way to state
// and check §8's round-trip properties, so it lives next to the writer it
// mirrors rather than only in _test.go.
func decode(data []byte) (simplify.Config, error) {
	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		return simplify.Config{}, &Error{Message: "rapify: bad magic"}
	}
	_, body, _, err := decodeClassBody(data, len(magic))
	if err != nil {
		return simplify.Config{}, err
	}
	return simplify.Config{Body: body}, nil
}

func decodeClassBody(data []byte, pos int) (parent string, entries []simplify.Entry, end int, err error) {
	parent, pos, err = decodeCString(data, pos)
	if err != nil {
		return "", nil, 0, err
	}
	count, n := protowire.ConsumeVarint(data[pos:])
	if n < 0 {
		return "", nil, 0, &Error{Message: "rapify: truncated entry count"}
	}
	pos += n

	entries = make([]simplify.Entry, 0, count)
	for i := uint64(0); i < count; i++ {
		var e simplify.Entry
		e, pos, err = decodeEntry(data, pos)
		if err != nil {
			return "", nil, 0, err
		}
		entries = append(entries, e)
	}
	return parent, entries, pos, nil
}

func decodeEntry(data []byte, pos int) (simplify.Entry, int, error) {
	if pos >= len(data) {
		return nil, 0, &Error{Message: "rapify: truncated entry"}
	}
	kind := data[pos]
	pos++

	switch kind {
	case kindClass:
		name, pos2, err := decodeCString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		u32, n := protowire.ConsumeFixed32(data[pos2:])
		if n < 0 {
			return nil, 0, &Error{Message: "rapify: truncated class offset"}
		}
		parent, body, _, err := decodeClassBody(data, int(u32))
		if err != nil {
			return nil, 0, err
		}
		return simplify.Class{Name: name, Parent: parent, Body: body}, pos2 + n, nil

	case kindValue:
		return decodeValue(data, pos)

	case kindArray, kindArrayExpand:
		name, pos2, err := decodeCString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		vals, pos3, err := decodeArrayPayload(data, pos2)
		if err != nil {
			return nil, 0, err
		}
		return simplify.Value{Name: name, Value: simplify.Array{Values: vals, Expand: kind == kindArrayExpand}}, pos3, nil

	case kindExternClass:
		name, pos2, err := decodeCString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		return simplify.ExternClass{Name: name}, pos2, nil

	case kindDeleteClass:
		name, pos2, err := decodeCString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		return simplify.DeleteClass{Name: name}, pos2, nil

	default:
		return nil, 0, &Error{Message: fmt.Sprintf("rapify: unknown entry kind %d", kind)}
	}
}

func decodeValue(data []byte, pos int) (simplify.Entry, int, error) {
	if pos >= len(data) {
		return nil, 0, &Error{Message: "rapify: truncated value entry"}
	}
	sub := data[pos]
	pos++
	name, pos, err := decodeCString(data, pos)
	if err != nil {
		return nil, 0, err
	}

	switch sub {
	case subString:
		s, pos, err := decodeCString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		return simplify.Value{Name: name, Value: simplify.Str{Value: s}}, pos, nil
	case subFloat:
		bits, n := protowire.ConsumeFixed32(data[pos:])
		if n < 0 {
			return nil, 0, &Error{Message: "rapify: truncated float value"}
		}
		return simplify.Value{Name: name, Value: simplify.Float{Value: float64(math.Float32frombits(bits))}}, pos + n, nil
	case subInt32:
		bits, n := protowire.ConsumeFixed32(data[pos:])
		if n < 0 {
			return nil, 0, &Error{Message: "rapify: truncated int value"}
		}
		return simplify.Value{Name: name, Value: simplify.Int{Value: int64(int32(bits))}}, pos + n, nil
	default:
		return nil, 0, &Error{Message: fmt.Sprintf("rapify: unsupported value sub-kind %d", sub)}
	}
}

func decodeArrayPayload(data []byte, pos int) ([]simplify.Rapified, int, error) {
	count, n := protowire.ConsumeVarint(data[pos:])
	if n < 0 {
		return nil, 0, &Error{Message: "rapify: truncated array count"}
	}
	pos += n

	vals := make([]simplify.Rapified, 0, count)
	for i := uint64(0); i < count; i++ {
		v, next, err := decodeArrayElem(data, pos)
		if err != nil {
			return nil, 0, err
		}
		vals = append(vals, v)
		pos = next
	}
	return vals, pos, nil
}

func decodeArrayElem(data []byte, pos int) (simplify.Rapified, int, error) {
	if pos >= len(data) {
		return nil, 0, &Error{Message: "rapify: truncated array element"}
	}
	sub := data[pos]
	pos++

	switch sub {
	case subString:
		s, pos, err := decodeCString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		return simplify.Str{Value: s}, pos, nil
	case subFloat:
		bits, n := protowire.ConsumeFixed32(data[pos:])
		if n < 0 {
			return nil, 0, &Error{Message: "rapify: truncated float element"}
		}
		return simplify.Float{Value: float64(math.Float32frombits(bits))}, pos + n, nil
	case subInt32:
		bits, n := protowire.ConsumeFixed32(data[pos:])
		if n < 0 {
			return nil, 0, &Error{Message: "rapify: truncated int element"}
		}
		return simplify.Int{Value: int64(int32(bits))}, pos + n, nil
	case subInt64:
		bits, n := protowire.ConsumeFixed64(data[pos:])
		if n < 0 {
			return nil, 0, &Error{Message: "rapify: truncated int64 element"}
		}
		return simplify.Int{Value: int64(bits)}, pos + n, nil
	case subArray:
		vals, pos, err := decodeArrayPayload(data, pos)
		if err != nil {
			return nil, 0, err
		}
		return simplify.Array{Values: vals}, pos, nil
	default:
		return nil, 0, &Error{Message: fmt.Sprintf("rapify: unknown array element sub-kind %d", sub)}
	}
}

func decodeCString(data []byte, pos int) (string, int, error) {
	end := bytes.IndexByte(data[pos:], 0)
	if end < 0 {
		return "", 0, &Error{Message: "rapify: unterminated cstring"}
	}
	return string(data[pos : pos+end]), pos + end + 1, nil
}
