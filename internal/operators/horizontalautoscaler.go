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

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/eltociear/llm-engine/internal/platform"
)

var hpaGroupResource = schema.GroupResource{Group: "autoscaling", Resource: "horizontalpodautoscalers"}

// hpaGVK builds the GroupVersionKind for the horizontal autoscaler at the
// given platform API version literal (autoscaling/v2 or
// autoscaling/v2beta2).
func hpaGVK(apiVersion string) schema.GroupVersionKind {
	gv, _ := schema.ParseGroupVersion(apiVersion)
	return schema.GroupVersionKind{Group: gv.Group, Version: gv.Version, Kind: "HorizontalPodAutoscaler"}
}

// CreateOrUpdateHorizontalAutoscaler applies the create-or-update ladder
// for the horizontal autoscaler, with two patch-time idiosyncrasies of the
// autoscaling API: a spurious "conditions in body" validation error on
// patch is caught and treated as success, and the whole ladder is retried
// once more after catching it (rather than trusting the first catch
// blindly), bounding the retry so a persistently misbehaving platform
// doesn't loop forever.
func CreateOrUpdateHorizontalAutoscaler(ctx context.Context, pc *platform.Client, namespace string, desired *unstructured.Unstructured) error {
	return createOrUpdateHPA(ctx, pc, namespace, desired, 1)
}

func createOrUpdateHPA(ctx context.Context, pc *platform.Client, namespace string, desired *unstructured.Unstructured, retriesLeft int) error {
	desired.SetNamespace(namespace)

	err := pc.Typed.Create(ctx, desired.DeepCopy())
	if err == nil {
		return nil
	}
	if !platform.IsAlreadyExists(err) {
		return infraErr("horizontal autoscaler", "CreateFailed", err)
	}

	existing := &unstructured.Unstructured{}
	existing.SetGroupVersionKind(desired.GroupVersionKind())
	if getErr := pc.Typed.Get(ctx, client.ObjectKeyFromObject(desired), existing); getErr != nil {
		return infraErr("horizontal autoscaler", "PatchFailed", getErr)
	}
	patched := desired.DeepCopy()
	patched.SetResourceVersion(existing.GetResourceVersion())
	err = pc.Typed.Patch(ctx, patched, client.MergeFrom(existing))
	if err == nil {
		return nil
	}
	if isSpuriousConditionsError(err) {
		if retriesLeft > 0 {
			return createOrUpdateHPA(ctx, pc, namespace, desired, retriesLeft-1)
		}
		return nil
	}
	if !platform.IsConflictOrInvalid(err) {
		return infraErr("horizontal autoscaler", "PatchFailed", err)
	}

	replaced := desired.DeepCopy()
	replaced.SetResourceVersion(existing.GetResourceVersion())
	if err := pc.Typed.Update(ctx, replaced); err != nil {
		return infraErr("horizontal autoscaler", "ReplaceFailed", err)
	}
	return nil
}

// ReadHorizontalAutoscaler reads the horizontal autoscaler by name at the
// given API version, falling back to legacyName on not-found.
func ReadHorizontalAutoscaler(ctx context.Context, pc *platform.Client, namespace, apiVersion, canonicalName, legacyName string) (*unstructured.Unstructured, error) {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(hpaGVK(apiVersion))
	err := pc.Typed.Get(ctx, client.ObjectKey{Namespace: namespace, Name: canonicalName}, obj)
	if err == nil {
		return obj, nil
	}
	if !apierrors.IsNotFound(err) || legacyName == "" || legacyName == canonicalName {
		return nil, err
	}
	obj = &unstructured.Unstructured{}
	obj.SetGroupVersionKind(hpaGVK(apiVersion))
	if err := pc.Typed.Get(ctx, client.ObjectKey{Namespace: namespace, Name: legacyName}, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ListHorizontalAutoscalers lists every horizontal autoscaler in
// namespace at the given API version, for the observer's getAll batch.
func ListHorizontalAutoscalers(ctx context.Context, pc *platform.Client, namespace, apiVersion string) (*unstructured.UnstructuredList, error) {
	list := &unstructured.UnstructuredList{}
	gvk := hpaGVK(apiVersion)
	list.SetGroupVersionKind(schema.GroupVersionKind{Group: gvk.Group, Version: gvk.Version, Kind: gvk.Kind + "List"})
	if err := pc.Typed.List(ctx, list, client.InNamespace(namespace)); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteHorizontalAutoscaler applies the delete ladder for the horizontal
// autoscaler.
func DeleteHorizontalAutoscaler(ctx context.Context, pc *platform.Client, namespace, apiVersion, canonicalName, legacyName string) error {
	del := func(name string) error {
		obj := &unstructured.Unstructured{}
		obj.SetGroupVersionKind(hpaGVK(apiVersion))
		obj.SetNamespace(namespace)
		obj.SetName(name)
		return pc.Typed.Delete(ctx, obj)
	}
	ladder := DeleteLadder{
		Kind:      "horizontal autoscaler",
		Canonical: func(ctx context.Context) error { return del(canonicalName) },
		Legacy: func(ctx context.Context) error {
			if legacyName == "" || legacyName == canonicalName {
				return apierrors.NewNotFound(hpaGroupResource, legacyName)
			}
			return del(legacyName)
		},
	}
	return ladder.Run(ctx)
}
