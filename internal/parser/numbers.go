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

package parser

import "strconv"

// parseInteger converts a scanned integer lexeme, which may carry a "0x"
// prefix (hex) or a leading "-", to its numeric value.
func parseInteger(text string) (int64, error) {
	neg := false
	if len(text) > 0 && text[0] == '-' {
		neg = true
		text = text[1:]
	}
	var v int64
	var err error
	if len(text) > 1 && (text[1] == 'x' || text[1] == 'X') {
		v, err = strconv.ParseInt(text[2:], 16, 64)
	} else {
		v, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

// parseFloat converts a scanned float lexeme to its numeric value.
func parseFloat(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
