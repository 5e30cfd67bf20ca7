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

	"github.com/eltociear/llm-engine/internal/mergeutil"
	"github.com/eltociear/llm-engine/internal/platform"
)

// CustomResourceOperator drives the vertical autoscaler, routing policy,
// and destination policy kinds: custom resources that don't support a
// reliable server-side patch, so the create-or-update ladder's step 2 is
// read -> deep-merge -> replace rather than patch.
type CustomResourceOperator struct {
	GVR  schema.GroupVersionResource
	Kind string
}

// CreateOrUpdate applies the ladder: create, and on conflict read the
// existing object, deep-merge desired's fields over it, and replace.
func (o CustomResourceOperator) CreateOrUpdate(ctx context.Context, pc *platform.Client, namespace string, desired *unstructured.Unstructured) error {
	desired.SetNamespace(namespace)

	err := pc.CreateUnstructured(ctx, o.GVR, namespace, desired.DeepCopy())
	if err == nil {
		return nil
	}
	if !platform.IsAlreadyExists(err) {
		return infraErr(o.Kind, "CreateFailed", err)
	}

	existing, err := pc.ReadUnstructured(ctx, o.GVR, namespace, desired.GetName())
	if err != nil {
		return infraErr(o.Kind, "ReadBeforeMergeFailed", err)
	}

	merged, err := mergeutil.MergeOver(existing.Object, desired.Object)
	if err != nil {
		return infraErr(o.Kind, "MergeFailed", err)
	}
	replaceObj := &unstructured.Unstructured{Object: merged}
	replaceObj.SetResourceVersion(existing.GetResourceVersion())
	replaceObj.SetNamespace(namespace)
	replaceObj.SetName(desired.GetName())

	if err := pc.ReplaceUnstructured(ctx, o.GVR, namespace, replaceObj); err != nil {
		return infraErr(o.Kind, "ReplaceFailed", err)
	}
	return nil
}

// Read fetches the custom resource by canonical name, falling back to
// legacyName on not-found.
func (o CustomResourceOperator) Read(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) (*unstructured.Unstructured, error) {
	obj, err := pc.ReadUnstructured(ctx, o.GVR, namespace, canonicalName)
	if err == nil {
		return obj, nil
	}
	if !apierrors.IsNotFound(err) || legacyName == "" || legacyName == canonicalName {
		return nil, err
	}
	return pc.ReadUnstructured(ctx, o.GVR, namespace, legacyName)
}

// List lists every object of this kind in namespace.
func (o CustomResourceOperator) List(ctx context.Context, pc *platform.Client, namespace string) (*unstructured.UnstructuredList, error) {
	return pc.ListUnstructured(ctx, o.GVR, namespace, "")
}

// Delete applies the delete ladder for this custom-resource kind.
func (o CustomResourceOperator) Delete(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) error {
	ladder := DeleteLadder{
		Kind: o.Kind,
		Canonical: func(ctx context.Context) error {
			return pc.DeleteUnstructured(ctx, o.GVR, namespace, canonicalName)
		},
		Legacy: func(ctx context.Context) error {
			if legacyName == "" || legacyName == canonicalName {
				return apierrors.NewNotFound(schema.GroupResource{Group: o.GVR.Group, Resource: o.GVR.Resource}, legacyName)
			}
			return pc.DeleteUnstructured(ctx, o.GVR, namespace, legacyName)
		},
	}
	return ladder.Run(ctx)
}

// VerticalAutoscaler, RoutingPolicy, and DestinationPolicy are the three
// CustomResourceOperator instances the reconciler and observer use.
var (
	VerticalAutoscaler = CustomResourceOperator{GVR: platform.GVRVerticalAutoscaler, Kind: "vertical autoscaler"}
	RoutingPolicy      = CustomResourceOperator{GVR: platform.GVRRoutingPolicy, Kind: "routing policy"}
	DestinationPolicy  = CustomResourceOperator{GVR: platform.GVRDestinationPolicy, Kind: "destination policy"}
)
