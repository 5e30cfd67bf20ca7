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

// Package naming derives the canonical object names every materialized
// endpoint object shares, and inverts that derivation when observing live
// objects back into an endpoint id.
package naming

import (
	"strings"

	"github.com/eltociear/llm-engine/internal/constants"
)

// ResourceGroupName returns the canonical name shared by (almost) every
// object an endpoint materializes: the fixed prefix plus the endpoint id
// with underscores replaced by hyphens.
func ResourceGroupName(endpointID string) string {
	return constants.NamePrefix + strings.ReplaceAll(endpointID, "_", "-")
}

// EndpointConfigName returns the name of the endpoint-config
// configuration artifact, which alone carries the suffix distinguishing
// it from the user app-config artifact sharing the resource group name.
func EndpointConfigName(endpointID string) string {
	return ResourceGroupName(endpointID) + constants.EndpointConfigSuffix
}

// ParseEndpointID inverts ResourceGroupName: given an object name, it
// reports the endpoint id it was derived from and whether the name
// actually followed the canonical scheme. Names that don't start with the
// canonical prefix are reported as legacy (ok=false) so getAll can report
// them under their own name rather than guessing at an id.
//
// The inverse of underscore->hyphen is itself hyphen->underscore; since
// the forward transform is lossy (both "_" and literal "-" in the
// original id collapse to "-"), this is a best-effort inverse, matching
// the source's own heuristic.
func ParseEndpointID(name string) (endpointID string, ok bool) {
	if !strings.HasPrefix(name, constants.NamePrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(name, constants.NamePrefix)
	rest = strings.TrimSuffix(rest, constants.EndpointConfigSuffix)
	if rest == "" {
		return "", false
	}
	return strings.ReplaceAll(rest, "-", "_"), true
}

// IsEndpointConfigName reports whether name carries the endpoint-config
// suffix.
func IsEndpointConfigName(name string) bool {
	return strings.HasSuffix(name, constants.EndpointConfigSuffix)
}
