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

package platform

import (
	"context"
	"testing"

	"github.com/eltociear/llm-engine/internal/constants"
)

func TestAtLeast126(t *testing.T) {
	cases := []struct {
		v    Version
		want bool
	}{
		{Version{Major: 1, Minor: 25}, false},
		{Version{Major: 1, Minor: 26}, true},
		{Version{Major: 1, Minor: 30}, true},
		{Version{Major: 2, Minor: 0}, true},
	}
	for _, c := range cases {
		if got := c.v.AtLeast126(); got != c.want {
			t.Errorf("Version%+v.AtLeast126() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestPlatformVersion_TestModeCachesFixedVersion(t *testing.T) {
	client, err := New(Config{TestMode: true, FixedVersion: "1.24"}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	v, err := client.PlatformVersion(context.Background())
	if err != nil {
		t.Fatalf("PlatformVersion() error = %v", err)
	}
	if v.Major != 1 || v.Minor != 24 {
		t.Errorf("PlatformVersion() = %+v, want {1 24}", v)
	}

	// A second call must hit the cache, not the (nil) discovery client.
	v2, err := client.PlatformVersion(context.Background())
	if err != nil {
		t.Fatalf("PlatformVersion() second call error = %v", err)
	}
	if v2 != v {
		t.Errorf("second PlatformVersion() = %+v, want cached %+v", v2, v)
	}
}

func TestPlatformVersion_EmptyFixedVersionDefaultsToStableBaseline(t *testing.T) {
	client, err := New(Config{TestMode: true}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	v, err := client.PlatformVersion(context.Background())
	if err != nil {
		t.Fatalf("PlatformVersion() error = %v", err)
	}
	if !v.AtLeast126() {
		t.Errorf("PlatformVersion() = %+v, want default baseline at or above 1.26", v)
	}
}

func TestAutoscalingAPIVersion_Crossover(t *testing.T) {
	stable, err := New(Config{TestMode: true, FixedVersion: "1.26"}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := stable.AutoscalingAPIVersion(context.Background())
	if err != nil {
		t.Fatalf("AutoscalingAPIVersion() error = %v", err)
	}
	if got != constants.AutoscalingAPIVersionStable {
		t.Errorf("AutoscalingAPIVersion() at 1.26 = %q, want %q", got, constants.AutoscalingAPIVersionStable)
	}

	beta, err := New(Config{TestMode: true, FixedVersion: "1.25"}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err = beta.AutoscalingAPIVersion(context.Background())
	if err != nil {
		t.Fatalf("AutoscalingAPIVersion() error = %v", err)
	}
	if got != constants.AutoscalingAPIVersionBeta {
		t.Errorf("AutoscalingAPIVersion() at 1.25 = %q, want %q", got, constants.AutoscalingAPIVersionBeta)
	}
}
