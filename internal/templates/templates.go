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

// Package templates resolves a named template to an object graph,
// substituting caller-supplied parameters. Substitution is plain
// ${name} string replacement — no conditionals, no iteration. The
// substituted text is then parsed as YAML; a value that breaks the YAML
// structure surfaces as a parse failure carrying the substituted text.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/eltociear/llm-engine/internal/reconcileerr"
)

// placeholderPattern matches ${name} placeholders. Only word characters
// are permitted in a name, matching the fixed parameter-key vocabulary the
// resource-arguments builder produces.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// Loader resolves template keys to substituted, parsed object graphs.
// Templates are resolved from one of two sources: a filesystem directory
// if Dir is non-empty, else the Packed manifest. Dir takes precedence when
// both are configured.
type Loader struct {
	// Dir is a directory containing one file per template key, e.g.
	// Dir/deployment-runnable-image-sync-gpu.yaml.
	Dir string

	// Packed is the fallback manifest: a mapping from template key to raw
	// template text, used when Dir is empty.
	Packed map[string]string
}

// Load resolves templateKey, substitutes params into it, and parses the
// result as a structured object graph (a generic map, suitable for both
// typed conversion and unstructured.Unstructured construction downstream).
func (l Loader) Load(templateKey string, params map[string]string) (map[string]interface{}, error) {
	text, err := l.resolve(templateKey)
	if err != nil {
		return nil, err
	}

	substituted, err := substitute(text, params)
	if err != nil {
		return nil, reconcileerr.NewConfiguration("MissingTemplateParameter", err.Error(), err)
	}

	var graph map[string]interface{}
	if err := yaml.Unmarshal([]byte(substituted), &graph); err != nil {
		return nil, reconcileerr.NewConfiguration(
			"TemplateParseFailure",
			fmt.Sprintf("failed to parse template %q after substitution: %v\n--- substituted text ---\n%s", templateKey, err, substituted),
			err,
		)
	}
	return graph, nil
}

func (l Loader) resolve(templateKey string) (string, error) {
	if l.Dir != "" {
		path := filepath.Join(l.Dir, templateKey+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", reconcileerr.NewConfiguration(
				"TemplateNotFound",
				fmt.Sprintf("template %q not found under %s", templateKey, l.Dir),
				err,
			)
		}
		return string(data), nil
	}

	text, ok := l.Packed[templateKey]
	if !ok {
		return "", reconcileerr.NewConfiguration(
			"TemplateNotFound",
			fmt.Sprintf("template %q not found in packed manifest", templateKey),
			nil,
		)
	}
	return text, nil
}

// substitute replaces every ${name} placeholder in text with params[name].
// A placeholder whose name is absent from params is a configuration error;
// substitution does not proceed partially.
func substitute(text string, params map[string]string) (string, error) {
	var missing []string
	seen := make(map[string]bool)

	result := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := params[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			return match
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("template references undefined parameter(s): %s", strings.Join(missing, ", "))
	}
	return result, nil
}
