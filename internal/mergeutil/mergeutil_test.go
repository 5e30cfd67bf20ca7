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

package mergeutil

import "testing"

func TestMergeOver_DesiredOverridesExisting(t *testing.T) {
	existing := map[string]interface{}{
		"spec": map[string]interface{}{
			"minReplicas": int64(1),
			"maxReplicas": int64(5),
		},
		"status": map[string]interface{}{
			"currentReplicas": int64(3),
		},
	}
	desired := map[string]interface{}{
		"spec": map[string]interface{}{
			"maxReplicas": int64(10),
		},
	}

	merged, err := MergeOver(existing, desired)
	if err != nil {
		t.Fatalf("MergeOver() error = %v", err)
	}

	spec := merged["spec"].(map[string]interface{})
	if spec["maxReplicas"] != int64(10) {
		t.Errorf("maxReplicas = %v, want 10 (desired should override)", spec["maxReplicas"])
	}
	if spec["minReplicas"] != int64(1) {
		t.Errorf("minReplicas = %v, want 1 (preserved from existing)", spec["minReplicas"])
	}
	if _, ok := merged["status"]; !ok {
		t.Error("status field from existing was dropped")
	}
}

func TestMergeOver_DoesNotMutateInputs(t *testing.T) {
	existing := map[string]interface{}{"a": "old"}
	desired := map[string]interface{}{"a": "new"}

	if _, err := MergeOver(existing, desired); err != nil {
		t.Fatalf("MergeOver() error = %v", err)
	}
	if existing["a"] != "old" {
		t.Errorf("existing was mutated: %v", existing["a"])
	}
}
