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

package endpointengine

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eltociear/llm-engine/internal/reconcileerr"
)

// intoObject converts a parsed template's object graph into a concrete Go
// type. Templates render a generic map; this is the one seam where that
// map becomes a typed Kubernetes object (or, for intoUnstructured below,
// stays an unstructured.Unstructured for kinds whose API version varies).
func intoObject(graph map[string]interface{}, obj interface{}) error {
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(graph, obj); err != nil {
		return reconcileerr.NewConfiguration("TemplateShapeMismatch", fmt.Sprintf("template graph did not match expected object shape: %v", err), err)
	}
	return nil
}

// intoUnstructured wraps a parsed template's object graph as
// unstructured.Unstructured, for kinds (horizontal autoscaler, vertical
// autoscaler, routing/destination policy) whose GroupVersionKind is
// decided at runtime rather than fixed at compile time.
func intoUnstructured(graph map[string]interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: graph}
}
