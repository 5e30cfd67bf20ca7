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

// Package mergeutil centralizes the deep-merge used by custom-resource
// operators (vertical autoscaler, routing policy, destination policy) that
// don't support a reliable server-side patch: read the live object,
// deep-merge the desired body over it, then replace.
package mergeutil

import "dario.cat/mergo"

// MergeOver deep-merges desired into a copy of existing and returns the
// result. Scalar and mapping fields in desired take precedence over
// existing (mergo.WithOverride); slices are replaced wholesale rather than
// concatenated, matching the platform's own replace semantics for array
// fields.
func MergeOver(existing, desired map[string]interface{}) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(existing))
	for k, v := range existing {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, desired, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}
