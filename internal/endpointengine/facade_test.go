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
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	v1alpha1 "github.com/eltociear/llm-engine/api/v1alpha1"
	"github.com/eltociear/llm-engine/internal/platform"
	"github.com/eltociear/llm-engine/internal/templates"
)

// newEngineFacade wires a Facade over fake typed and dynamic clients: the
// typed scheme carries apps/v1, core/v1, and the stable-version horizontal
// autoscaler GVK as unstructured (mirroring how the reconciler itself
// drives it through pc.Typed); the dynamic client carries the three
// custom-resource kinds.
func newEngineFacade(t *testing.T, packed map[string]string, typedObjs ...runtime.Object) *Facade {
	t.Helper()
	return newEngineFacadeWithDynamic(t, packed, typedObjs, nil)
}

// newEngineFacadeWithDynamic is the general form: typedObjs seed the
// typed fake client (Deployment, Service, ConfigMap, and unstructured HPA
// objects all route through it), dynObjs seed the dynamic fake client
// backing the three custom-resource kinds.
func newEngineFacadeWithDynamic(t *testing.T, packed map[string]string, typedObjs []runtime.Object, dynObjs []runtime.Object) *Facade {
	t.Helper()
	scheme := runtime.NewScheme()
	if err := appsv1.AddToScheme(scheme); err != nil {
		t.Fatalf("AddToScheme(appsv1) error = %v", err)
	}
	if err := corev1.AddToScheme(scheme); err != nil {
		t.Fatalf("AddToScheme(corev1) error = %v", err)
	}
	hpaGVK := schema.GroupVersionKind{Group: "autoscaling", Version: "v2", Kind: "HorizontalPodAutoscaler"}
	hpaListGVK := schema.GroupVersionKind{Group: "autoscaling", Version: "v2", Kind: "HorizontalPodAutoscalerList"}
	scheme.AddKnownTypeWithName(hpaGVK, &unstructured.Unstructured{})
	scheme.AddKnownTypeWithName(hpaListGVK, &unstructured.UnstructuredList{})

	builder := fake.NewClientBuilder().WithScheme(scheme)
	for _, o := range typedObjs {
		builder = builder.WithRuntimeObjects(o)
	}
	typed := builder.Build()

	dynScheme := runtime.NewScheme()
	listKinds := map[schema.GroupVersionResource]string{
		platform.GVRVerticalAutoscaler: "VerticalPodAutoscalerList",
		platform.GVRRoutingPolicy:      "RoutingPolicyList",
		platform.GVRDestinationPolicy:  "DestinationPolicyList",
	}
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(dynScheme, listKinds, dynObjs...)

	pc, err := platform.New(platform.Config{TestMode: true, FixedVersion: "1.26"}, typed, dyn, nil)
	if err != nil {
		t.Fatalf("platform.New() error = %v", err)
	}

	return New(pc, templates.Loader{Packed: packed}, "ns")
}

func syncRecord() *v1alpha1.EndpointRecord {
	return &v1alpha1.EndpointRecord{
		EndpointID: "end_1",
		Mode:       v1alpha1.ExecutionModeSync,
		Bundle: v1alpha1.Bundle{
			Flavor: v1alpha1.BundleFlavorRunnableImage,
			Image:  &v1alpha1.ImageInfo{Repository: "repo/model", Tag: "v1"},
		},
		Resource: v1alpha1.ResourceRequest{CPUs: "2", Memory: "4Gi", Storage: "10Gi"},
		Scaling:  v1alpha1.ScalingRequest{MinWorkers: 1, MaxWorkers: 3, PerWorker: 5},
		AppConfig:      []byte(`{"a":1}`),
		EndpointConfig: []byte(`{"b":2}`),
	}
}

func asyncRecord() *v1alpha1.EndpointRecord {
	r := syncRecord()
	r.Mode = v1alpha1.ExecutionModeAsync
	return r
}

const deploymentTemplate = `
apiVersion: apps/v1
kind: Deployment
metadata:
  name: ${resourceGroupName}
spec:
  replicas: 1
  selector:
    matchLabels:
      app: ${resourceGroupName}
  template:
    metadata:
      labels:
        app: ${resourceGroupName}
    spec:
      containers:
      - name: main
        image: ${image}
        resources:
          requests:
            cpu: ${cpus}
            memory: ${memory}
`

const asyncDeploymentTemplate = `
apiVersion: apps/v1
kind: Deployment
metadata:
  name: ${resourceGroupName}
  annotations:
    celery.scaleml.autoscaler/minWorkers: "${minWorkers}"
    celery.scaleml.autoscaler/maxWorkers: "${maxWorkers}"
    celery.scaleml.autoscaler/perWorker: "${perWorker}"
spec:
  replicas: 1
  selector:
    matchLabels:
      app: ${resourceGroupName}
  template:
    metadata:
      labels:
        app: ${resourceGroupName}
    spec:
      containers:
      - name: main
        image: ${image}
        resources:
          requests:
            cpu: ${cpus}
            memory: ${memory}
`

const userConfigTemplate = `
apiVersion: v1
kind: ConfigMap
metadata:
  name: ${resourceGroupName}
data:
  endpointId: ${endpointId}
`

const hpaTemplate = `
apiVersion: ${platformApiVersion}
kind: HorizontalPodAutoscaler
metadata:
  name: ${resourceGroupName}
spec:
  minReplicas: ${minWorkers}
  maxReplicas: ${maxWorkers}
  metrics:
  - type: Pods
    pods:
      metric:
        name: concurrency
      target:
        type: AverageValue
        averageValue: "${perWorker}"
`

const serviceTemplate = `
apiVersion: v1
kind: Service
metadata:
  name: ${resourceGroupName}
spec:
  selector:
    app: ${resourceGroupName}
  ports:
  - port: 80
`

const verticalAutoscalerTemplate = `
apiVersion: autoscaling.k8s.io/v1
kind: VerticalPodAutoscaler
metadata:
  name: ${resourceGroupName}
spec:
  updatePolicy:
    updateMode: "Auto"
  resourcePolicy:
    containerPolicies:
    - containerName: main
      minAllowed:
        cpu: ${minCpu}
        memory: ${minMemory}
      maxAllowed:
        cpu: ${maxCpu}
        memory: ${maxMemory}
`

func fullPackedTemplates() map[string]string {
	return map[string]string{
		"deployment-runnable-image-sync-cpu":  deploymentTemplate,
		"deployment-runnable-image-async-cpu": asyncDeploymentTemplate,
		"user-config":                         userConfigTemplate,
		"endpoint-config":                     userConfigTemplate,
		"horizontal-pod-autoscaler":           hpaTemplate,
		"service":                             serviceTemplate,
		"vertical-pod-autoscaler":             verticalAutoscalerTemplate,
	}
}
