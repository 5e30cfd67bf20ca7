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

// Package operators implements, one file per object kind, the
// create-or-update ladder (create -> patch -> replace) and the delete
// ladder (canonical name -> legacy name -> treat-as-absent) every kind
// shares. This file holds the two ladders' generic shape; each kind's
// file supplies the type-specific Create/Patch/Replace/Delete closures.
package operators

import (
	"context"
	"strings"

	"github.com/eltociear/llm-engine/internal/constants"
	"github.com/eltociear/llm-engine/internal/platform"
	"github.com/eltociear/llm-engine/internal/reconcileerr"
)

// Ladder runs the create-or-update fallback sequence for one object kind.
// Every step is supplied by the caller so kind-specific quirks (keeping the
// live replica count on patch, deep-merge before replace) live in the kind's own
// file rather than here.
type Ladder struct {
	Create  func(ctx context.Context) error
	Patch   func(ctx context.Context) error
	Replace func(ctx context.Context) error

	// Kind names the object kind for error messages, e.g. "workload".
	Kind string
}

// Run executes the ladder: create, falling back to patch on conflict,
// falling back to replace on patch rejection. Any other error is fatal
// and surfaces as an infra error.
func (l Ladder) Run(ctx context.Context) error {
	err := l.Create(ctx)
	if err == nil {
		return nil
	}
	if !platform.IsAlreadyExists(err) {
		return reconcileerr.NewInfra("CreateFailed", "failed to create "+l.Kind, err)
	}

	err = l.Patch(ctx)
	if err == nil {
		return nil
	}
	if !platform.IsConflictOrInvalid(err) {
		return reconcileerr.NewInfra("PatchFailed", "failed to patch "+l.Kind, err)
	}

	if err := l.Replace(ctx); err != nil {
		return reconcileerr.NewInfra("ReplaceFailed", "failed to replace "+l.Kind, err)
	}
	return nil
}

// DeleteLadder runs the delete fallback sequence: canonical name, then
// legacy name, then treat-as-absent.
type DeleteLadder struct {
	Canonical func(ctx context.Context) error
	Legacy    func(ctx context.Context) error
	Kind      string
}

// Run executes the delete ladder. A not-found on both names is success
// (object already absent); any other error is fatal for this kind.
func (d DeleteLadder) Run(ctx context.Context) error {
	err := d.Canonical(ctx)
	if err == nil {
		return nil
	}
	if !platform.IsNotFound(err) {
		return reconcileerr.NewInfra("DeleteFailed", "failed to delete "+d.Kind+" by canonical name", err)
	}

	err = d.Legacy(ctx)
	if err == nil {
		return nil
	}
	if !platform.IsNotFound(err) {
		return reconcileerr.NewInfra("DeleteFailed", "failed to delete "+d.Kind+" by legacy name", err)
	}

	return nil
}

// isSpuriousConditionsError reports whether err is the horizontal
// autoscaler's spurious "conditions in body" validation error, which must
// be caught and treated as a successful patch rather than surfaced or
// sent down the replace path.
func isSpuriousConditionsError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), constants.ConditionsSpuriousValidationSubstring)
}
