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
	"regexp"
	"strconv"

	"github.com/eltociear/llm-engine/internal/constants"
)

// Version is the subset of the platform's reported version this module
// cares about: whether the horizontal-autoscaler stable API (v2) is
// available, which landed in v1.26.
type Version struct {
	Major int
	Minor int
}

// AtLeast126 reports whether the platform is at or above v1.26, the
// cutover point for the horizontal-autoscaler API.
func (v Version) AtLeast126() bool {
	if v.Major != 1 {
		return v.Major > 1
	}
	return v.Minor >= 26
}

var minorDigits = regexp.MustCompile(`\d+`)

// PlatformVersion probes the platform's version on first call and caches
// the result for the lifetime of the facade. In test mode it returns
// Config.FixedVersion without making a real call.
func (c *Client) PlatformVersion(ctx context.Context) (Version, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.version != nil {
		return *c.version, nil
	}

	if c.cfg.TestMode {
		v := parseFixedVersion(c.cfg.FixedVersion)
		c.version = &v
		return v, nil
	}

	info, err := c.Disc.ServerVersion()
	if err != nil {
		return Version{}, err
	}

	v := Version{
		Major: atoiDigits(info.Major),
		Minor: atoiDigits(info.Minor),
	}
	c.version = &v
	return v, nil
}

// parseFixedVersion parses a "1.26" style literal used by test-mode
// configuration; an empty or malformed literal defaults to v1.26 (the
// stable-API baseline) so tests that don't care about the crossover don't
// have to specify one.
func parseFixedVersion(literal string) Version {
	matches := minorDigits.FindAllString(literal, 2)
	if len(matches) < 2 {
		return Version{Major: 1, Minor: 26}
	}
	major, _ := strconv.Atoi(matches[0])
	minor, _ := strconv.Atoi(matches[1])
	return Version{Major: major, Minor: minor}
}

// atoiDigits strips non-digit suffixes (e.g. the "+" in a GKE minor
// version like "26+") before parsing, returning 0 on failure.
func atoiDigits(s string) int {
	digits := minorDigits.FindString(s)
	n, _ := strconv.Atoi(digits)
	return n
}

// AutoscalingAPIVersion selects the horizontal-autoscaler template API
// version literal based on the cached platform version.
func (c *Client) AutoscalingAPIVersion(ctx context.Context) (string, error) {
	v, err := c.PlatformVersion(ctx)
	if err != nil {
		return "", err
	}
	if v.AtLeast126() {
		return constants.AutoscalingAPIVersionStable, nil
	}
	return constants.AutoscalingAPIVersionBeta, nil
}
