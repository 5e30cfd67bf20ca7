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
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/eltociear/llm-engine/internal/platform"
)

// CreateOrUpdateService applies the create-or-update ladder for the
// traffic service. Services carry an allocated ClusterIP; the patch and
// replace paths both preserve the existing one since it's immutable.
func CreateOrUpdateService(ctx context.Context, pc *platform.Client, namespace string, desired *corev1.Service) error {
	desired.Namespace = namespace

	ladder := Ladder{
		Kind: "traffic service",
		Create: func(ctx context.Context) error {
			return pc.Typed.Create(ctx, desired.DeepCopy())
		},
		Patch: func(ctx context.Context) error {
			existing := &corev1.Service{}
			if err := pc.Typed.Get(ctx, client.ObjectKeyFromObject(desired), existing); err != nil {
				return err
			}
			patched := desired.DeepCopy()
			patched.ResourceVersion = existing.ResourceVersion
			patched.Spec.ClusterIP = existing.Spec.ClusterIP
			return pc.Typed.Patch(ctx, patched, client.MergeFrom(existing))
		},
		Replace: func(ctx context.Context) error {
			existing := &corev1.Service{}
			if err := pc.Typed.Get(ctx, client.ObjectKeyFromObject(desired), existing); err != nil {
				return err
			}
			replaced := desired.DeepCopy()
			replaced.ResourceVersion = existing.ResourceVersion
			replaced.Spec.ClusterIP = existing.Spec.ClusterIP
			return pc.Typed.Update(ctx, replaced)
		},
	}
	return ladder.Run(ctx)
}

// DeleteService applies the delete ladder for the traffic service.
func DeleteService(ctx context.Context, pc *platform.Client, namespace, canonicalName, legacyName string) error {
	ladder := DeleteLadder{
		Kind: "traffic service",
		Canonical: func(ctx context.Context) error {
			return pc.Typed.Delete(ctx, &corev1.Service{ObjectMeta: objectMeta(namespace, canonicalName)})
		},
		Legacy: func(ctx context.Context) error {
			if legacyName == "" || legacyName == canonicalName {
				return apierrors.NewNotFound(corev1ServiceGR, legacyName)
			}
			return pc.Typed.Delete(ctx, &corev1.Service{ObjectMeta: objectMeta(namespace, legacyName)})
		},
	}
	return ladder.Run(ctx)
}
