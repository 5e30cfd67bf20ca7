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

	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/eltociear/llm-engine/internal/platform"
)

// CreateOrUpdateWorkload applies the create-or-update ladder for the
// workload Deployment. desired.Spec.Replicas is honored only on the
// initial create; every subsequent patch or replace carries the live
// object's replica count forward instead, so the autoscaler, not the
// reconciler, owns replica count during steady state.
func CreateOrUpdateWorkload(ctx context.Context, pc *platform.Client, namespace string, desired *appsv1.Deployment) error {
	desired.Namespace = namespace

	ladder := Ladder{
		Kind: "workload",
		Create: func(ctx context.Context) error {
			return pc.Typed.Create(ctx, desired.DeepCopy())
		},
		Patch: func(ctx context.Context) error {
			existing := &appsv1.Deployment{}
			if err := pc.Typed.Get(ctx, client.ObjectKeyFromObject(desired), existing); err != nil {
				return err
			}
			patched := desired.DeepCopy()
			patched.Spec.Replicas = existing.Spec.Replicas
			patched.ResourceVersion = existing.ResourceVersion
			return pc.Typed.Patch(ctx, patched, client.MergeFrom(existing))
		},
		Replace: func(ctx context.Context) error {
			existing := &appsv1.Deployment{}
			if err := pc.Typed.Get(ctx, client.ObjectKeyFromObject(desired), existing); err != nil {
				return err
			}
			replaced := desired.DeepCopy()
			replaced.Spec.Replicas = existing.Spec.Replicas
			replaced.ResourceVersion = existing.ResourceVersion
			return pc.Typed.Update(ctx, replaced)
		},
	}
	return ladder.Run(ctx)
}

// ReadWorkload reads the workload by name, falling back to legacyName on
// not-found. It returns the not-found error from the legacy lookup if
// both miss, so callers can classify it via platform.IsNotFound.
func ReadWorkload(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) (*appsv1.Deployment, error) {
	obj := &appsv1.Deployment{}
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

// ListWorkloads lists every workload Deployment in namespace, for the
// observer's getAll batch pass.
func ListWorkloads(ctx context.Context, pc *platform.Client, namespace string) (*appsv1.DeploymentList, error) {
	list := &appsv1.DeploymentList{}
	if err := pc.Typed.List(ctx, list, client.InNamespace(namespace)); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteWorkload applies the delete ladder: canonical name, then legacy
// name, then treat-as-absent.
func DeleteWorkload(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) error {
	ladder := DeleteLadder{
		Kind: "workload",
		Canonical: func(ctx context.Context) error {
			return pc.Typed.Delete(ctx, &appsv1.Deployment{ObjectMeta: objectMeta(namespace, canonicalName)})
		},
		Legacy: func(ctx context.Context) error {
			if legacyName == "" || legacyName == canonicalName {
				return apierrors.NewNotFound(appsv1GroupResource, legacyName)
			}
			return pc.Typed.Delete(ctx, &appsv1.Deployment{ObjectMeta: objectMeta(namespace, legacyName)})
		},
	}
	return ladder.Run(ctx)
}
