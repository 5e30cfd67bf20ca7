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

package templates

import (
	"os"
	"strings"
	"testing"

	"github.com/eltociear/llm-engine/internal/reconcileerr"
)

func TestLoad_PackedSubstitution(t *testing.T) {
	loader := Loader{Packed: map[string]string{
		"configmap": "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: ${name}\ndata:\n  key: ${value}\n",
	}}

	graph, err := loader.Load("configmap", map[string]string{"name": "foo", "value": "bar"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	metadata, ok := graph["metadata"].(map[string]interface{})
	if !ok || metadata["name"] != "foo" {
		t.Errorf("Load() metadata = %+v, want name=foo", graph["metadata"])
	}
}

func TestLoad_MissingTemplateIsConfigurationError(t *testing.T) {
	loader := Loader{Packed: map[string]string{}}
	_, err := loader.Load("nonexistent", nil)
	if reconcileerr.KindOf(err) != reconcileerr.KindConfiguration {
		t.Errorf("Load() on missing template kind = %v, want Configuration", reconcileerr.KindOf(err))
	}
}

func TestLoad_MissingParamReportsAllNames(t *testing.T) {
	loader := Loader{Packed: map[string]string{
		"t": "a: ${foo}\nb: ${bar}\nc: ${foo}\n",
	}}
	_, err := loader.Load("t", map[string]string{})
	if reconcileerr.KindOf(err) != reconcileerr.KindConfiguration {
		t.Fatalf("Load() kind = %v, want Configuration", reconcileerr.KindOf(err))
	}
	msg := err.Error()
	if !strings.Contains(msg, "foo") || !strings.Contains(msg, "bar") {
		t.Errorf("Load() error = %q, want it to name both missing params", msg)
	}
}

func TestLoad_DirTakesPrecedenceOverPacked(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/t.yaml", []byte("value: from-dir\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	loader := Loader{Dir: dir, Packed: map[string]string{"t": "value: from-packed\n"}}

	graph, err := loader.Load("t", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if graph["value"] != "from-dir" {
		t.Errorf("Load() value = %v, want from-dir", graph["value"])
	}
}
