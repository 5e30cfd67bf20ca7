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

package operators

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/eltociear/llm-engine/internal/platform"
)

// CreateOrUpdateConfigArtifact applies the create-or-update ladder for a
// configuration artifact ConfigMap. Unlike the workload, config artifacts
// are replaced in full on every update rather than patched: when create
// reports the artifact exists, both fallback steps issue a full-body
// replace (no field stripping) since the artifact has no fields an
// external controller owns.
func CreateOrUpdateConfigArtifact(ctx context.Context, pc *platform.Client, namespace string, desired *corev1.ConfigMap) error {
	desired.Namespace = namespace

	replace := func(ctx context.Context) error {
		existing := &corev1.ConfigMap{}
		if err := pc.Typed.Get(ctx, client.ObjectKeyFromObject(desired), existing); err != nil {
			return err
		}
		replaced := desired.DeepCopy()
		replaced.ResourceVersion = existing.ResourceVersion
		return pc.Typed.Update(ctx, replaced)
	}

	ladder := Ladder{
		Kind: "configuration artifact",
		Create: func(ctx context.Context) error {
			return pc.Typed.Create(ctx, desired.DeepCopy())
		},
		Patch:   replace,
		Replace: replace,
	}
	return ladder.Run(ctx)
}

// ReadConfigArtifact reads a configuration artifact by name, falling back
// to a legacy name on not-found.
func ReadConfigArtifact(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) (*corev1.ConfigMap, error) {
	obj := &corev1.ConfigMap{}
	err := pc.Typed.Get(ctx, client.ObjectKey{Namespace: namespace, Name: canonicalName}, obj)
	if err == nil {
		return obj, nil
	}
	if !apierrors.IsNotFound(err) || legacyName == "" || legacyName == canonicalName {
		return nil, err
	}
	err = pc.Typed.Get(ctx, client.ObjectKey{Namespace: namespace, Name: legacyName}, obj)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// ListConfigArtifacts lists configuration artifacts in namespace matching
// labelSelector, for the observer's label-selector-with-fallback lookup.
func ListConfigArtifacts(ctx context.Context, pc *platform.Client, namespace, labelSelector string) (*corev1.ConfigMapList, error) {
	list := &corev1.ConfigMapList{}
	opts := []client.ListOption{client.InNamespace(namespace)}
	if labelSelector != "" {
		selector, err := labels.Parse(labelSelector)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.MatchingLabelsSelector{Selector: selector})
	}
	if err := pc.Typed.List(ctx, list, opts...); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteConfigArtifact applies the delete ladder for one configuration
// artifact name.
func DeleteConfigArtifact(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) error {
	ladder := DeleteLadder{
		Kind: "configuration artifact",
		Canonical: func(ctx context.Context) error {
			return pc.Typed.Delete(ctx, &corev1.ConfigMap{ObjectMeta: objectMeta(namespace, canonicalName)})
		},
		Legacy: func(ctx context.Context) error {
			if legacyName == "" || legacyName == canonicalName {
				return apierrors.NewNotFound(corev1ConfigMapGR, legacyName)
			}
			return pc.Typed.Delete(ctx, &corev1.ConfigMap{ObjectMeta: objectMeta(namespace, legacyName)})
		},
	}
	return ladder.Run(ctx)
}
