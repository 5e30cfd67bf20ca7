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

package userconfig

import (
	"encoding/base64"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	original := []byte(`{"temperature": 0.7, "model": "foo"}`)

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(decoded) != string(original) {
		t.Errorf("Decode(Encode(x)) = %q, want %q", decoded, original)
	}
}

func TestEncode_EmptyConfig(t *testing.T) {
	encoded, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) error = %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Decode(Encode(nil)) = %q, want empty", decoded)
	}
}

func TestDecode_EmptyRawData(t *testing.T) {
	decoded, err := Decode("")
	if err != nil {
		t.Fatalf("Decode(\"\") error = %v", err)
	}
	if decoded != nil {
		t.Errorf("Decode(\"\") = %q, want nil", decoded)
	}
}

func TestDecode_InvalidBase64(t *testing.T) {
	if _, err := Decode("not valid base64!!"); err == nil {
		t.Error("Decode() error = nil, want error for invalid base64")
	}
}

func TestEncode_Framing(t *testing.T) {
	encoded, err := Encode([]byte("hello"))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("base64 decode of Encode() output failed: %v", err)
	}
	want := `{"str": "hello"}`
	if string(decoded) != want {
		t.Errorf("encoded envelope = %q, want %q", decoded, want)
	}
}
