/*
MIT License

Copyright (c) 2025 Advanced Micro Devices, Inc.

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package userconfig encodes and decodes the raw_data payload carried by
// configuration artifacts. The framing is an external contract with
// workload pods and must not change: base64(json({"str": json(config)})).
package userconfig

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// rawDataEnvelope is the structure base64-encoded into the raw_data field.
// The config itself is nested a second time as a JSON-encoded string under
// "str", matching the payload workload pods already know how to decode.
type rawDataEnvelope struct {
	Str string `json:"str"`
}

// Encode produces the raw_data field value for a (possibly nil) config
// blob. config is treated as an already-JSON-encodable byte sequence; if
// it isn't valid JSON on its own it is still wrapped verbatim as a string,
// matching the source's permissive framing.
func Encode(config []byte) (string, error) {
	inner, err := json.Marshal(string(config))
	if err != nil {
		return "", fmt.Errorf("marshal inner config: %w", err)
	}
	envelope := fmt.Sprintf(`{"str": %s}`, inner)
	return base64.StdEncoding.EncodeToString([]byte(envelope)), nil
}

// Decode inverts Encode: base64-decode, then unwrap the "str" field.
func Decode(rawData string) ([]byte, error) {
	if rawData == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(rawData)
	if err != nil {
		return nil, fmt.Errorf("base64 decode raw_data: %w", err)
	}
	var envelope rawDataEnvelope
	if err := json.Unmarshal(decoded, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal raw_data envelope: %w", err)
	}
	return []byte(envelope.Str), nil
}
