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
	"context"
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	v1alpha1 "github.com/eltociear/llm-engine/api/v1alpha1"
	"github.com/eltociear/llm-engine/internal/naming"
)

func TestDelete_SyncEndpointRemovesEverything(t *testing.T) {
	endpointID := "end_5"
	groupName := naming.ResourceGroupName(endpointID)
	workload := observedWorkload(groupName)
	hpa := observedHPA(groupName, 1, 3, 1)
	appConfig := observedConfigArtifact(t, groupName, endpointID, groupName, nil)
	endpointConfig := observedConfigArtifact(t, naming.EndpointConfigName(endpointID), endpointID, groupName, nil)
	svc := &corev1.Service{ObjectMeta: metaOf(groupName)}

	f := newEngineFacade(t, nil, workload, hpa, appConfig, endpointConfig, svc)

	record := &v1alpha1.EndpointRecord{EndpointID: endpointID, Mode: v1alpha1.ExecutionModeSync}
	if err := f.Delete(context.Background(), record); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	ctx := context.Background()
	if err := f.Platform.Typed.Get(ctx, client.ObjectKey{Namespace: "ns", Name: groupName}, &corev1.Service{}); !apierrors.IsNotFound(err) {
		t.Errorf("service still present after Delete(), err = %v", err)
	}
	if err := f.Platform.Typed.Get(ctx, client.ObjectKey{Namespace: "ns", Name: groupName}, &corev1.ConfigMap{}); !apierrors.IsNotFound(err) {
		t.Errorf("app config artifact still present after Delete(), err = %v", err)
	}
}

func TestDelete_AsyncEndpointSkipsSyncOnlyResources(t *testing.T) {
	endpointID := "end_6"
	groupName := naming.ResourceGroupName(endpointID)
	workload := observedWorkload(groupName)
	// A sync-only service lingers from a prior bug; an async delete must
	// not attempt to remove it, since async endpoints never materialize one.
	svc := &corev1.Service{ObjectMeta: metaOf(groupName)}

	f := newEngineFacade(t, nil, workload, svc)

	record := &v1alpha1.EndpointRecord{EndpointID: endpointID, Mode: v1alpha1.ExecutionModeAsync}
	if err := f.Delete(context.Background(), record); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The service is untouched since the async path never reaches DeleteService.
	if err := f.Platform.Typed.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: groupName}, &corev1.Service{}); err != nil {
		t.Errorf("service should remain untouched by an async delete, Get() error = %v", err)
	}
}

func TestDelete_AbsentEndpointIsSuccess(t *testing.T) {
	f := newEngineFacade(t, nil)
	record := &v1alpha1.EndpointRecord{EndpointID: "end_never_existed", Mode: v1alpha1.ExecutionModeSync}
	if err := f.Delete(context.Background(), record); err != nil {
		t.Errorf("Delete() on an endpoint with nothing materialized error = %v, want nil", err)
	}
}

func TestDelete_FallsBackToLegacyName(t *testing.T) {
	legacy := observedWorkload("my-old-display-name")
	f := newEngineFacade(t, nil, legacy)

	record := &v1alpha1.EndpointRecord{EndpointID: "end_7", LegacyName: "my-old-display-name", Mode: v1alpha1.ExecutionModeAsync}
	if err := f.Delete(context.Background(), record); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	err := f.Platform.Typed.Get(context.Background(), client.ObjectKey{Namespace: "ns", Name: "my-old-display-name"}, &appsv1.Deployment{})
	if !apierrors.IsNotFound(err) {
		t.Errorf("legacy-named workload still present after Delete(), err = %v", err)
	}
}

func metaOf(name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{Name: name, Namespace: "ns"}
}
