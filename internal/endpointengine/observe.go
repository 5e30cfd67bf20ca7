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
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"

	v1alpha1 "github.com/eltociear/llm-engine/api/v1alpha1"
	"github.com/eltociear/llm-engine/internal/constants"
	"github.com/eltociear/llm-engine/internal/naming"
	"github.com/eltociear/llm-engine/internal/operators"
	"github.com/eltociear/llm-engine/internal/reconcileerr"
	"github.com/eltociear/llm-engine/internal/userconfig"
)

// GetOne reads the live object graph for one endpoint and returns its
// canonical state.
func (f *Facade) GetOne(ctx context.Context, endpointID, legacyName string, mode v1alpha1.ExecutionMode) (*v1alpha1.CanonicalEndpointState, error) {
	groupName := naming.ResourceGroupName(endpointID)

	workload, err := operators.ReadWorkload(ctx, f.Platform, f.Namespace, groupName, legacyName)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, reconcileerr.NewNotFound("WorkloadNotFound", "no workload found under canonical or legacy name", err)
		}
		return nil, reconcileerr.NewInfra("ReadWorkloadFailed", "failed to read workload", err)
	}

	state := &v1alpha1.CanonicalEndpointState{
		EndpointID:     endpointID,
		IsLegacyName:   workload.Name != groupName,
		DeploymentName: workload.Name,
		Labels:         workload.Labels,
	}

	if err := populateCommonParams(workload, state); err != nil {
		return nil, err
	}

	if mode == v1alpha1.ExecutionModeSync || mode == v1alpha1.ExecutionModeStreaming {
		apiVersion, verr := f.Platform.AutoscalingAPIVersion(ctx)
		if verr != nil {
			return nil, reconcileerr.NewInfra("VersionProbeFailed", "failed to determine platform version", verr)
		}
		hpa, hErr := operators.ReadHorizontalAutoscaler(ctx, f.Platform, f.Namespace, apiVersion, groupName, legacyName)
		if hErr == nil {
			populateFromHPA(hpa, state)
		} else if !apierrors.IsNotFound(hErr) {
			return nil, reconcileerr.NewInfra("ReadHorizontalAutoscalerFailed", "failed to read horizontal autoscaler", hErr)
		}
	} else {
		populateFromAsyncAnnotations(workload, state)
	}

	vpa, vErr := operators.VerticalAutoscaler.Read(ctx, f.Platform, f.Namespace, groupName, legacyName)
	if vErr == nil {
		populateFromVPA(vpa, state)
	} else if !apierrors.IsNotFound(vErr) {
		return nil, reconcileerr.NewInfra("ReadVerticalAutoscalerFailed", "failed to read vertical autoscaler", vErr)
	}

	userConfig, ucErr := f.readUserConfigState(ctx, endpointID, workload.Name)
	if ucErr != nil {
		return nil, ucErr
	}
	state.UserConfig = *userConfig

	return state, nil
}

// populateCommonParams extracts resource requests, image, env-var
// read-back, gpuType, and priority-class-derived highPriority from the
// workload.
func populateCommonParams(workload *appsv1.Deployment, state *v1alpha1.CanonicalEndpointState) error {
	containers := workload.Spec.Template.Spec.Containers

	main := findContainer(containers, constants.MainContainerName)
	if main == nil {
		return reconcileerr.NewValidation("MissingMainContainer", "workload "+workload.Name+" has no container named \"main\"", nil)
	}

	state.Resource.CPUs = main.Resources.Requests.Cpu().String()
	state.Resource.Memory = main.Resources.Requests.Memory().String()
	if storage, ok := main.Resources.Requests[corev1.ResourceEphemeralStorage]; ok {
		state.Resource.Storage = storage.String()
	}
	if gpu, ok := main.Resources.Requests[constants.ResourceNameNvidiaGPU]; ok {
		state.Resource.GPUs = int(gpu.Value())
	}
	state.Image = main.Image

	state.Resource.GPUType = workload.Spec.Template.Spec.NodeSelector[constants.NodeSelectorGPUType]

	var llmEngine *corev1.Container
	for _, name := range constants.LLMEngineContainerNames {
		if c := findContainer(containers, name); c != nil {
			llmEngine = c
			break
		}
	}
	if llmEngine != nil {
		env := envMap(llmEngine.Env)
		state.AWSRole = envOr(env, constants.EnvAWSProfile, constants.DefaultAWSProfile())
		state.ResultsBucket = envOr(env, constants.EnvResultsS3Bucket, constants.DefaultResultsS3Bucket())
		if bundleURL, ok := env[constants.EnvBundleURL]; ok {
			state.Image = bundleURL
		} else {
			state.Image = main.Image
		}
		if raw, ok := env[constants.EnvPrewarm]; ok {
			parsed, err := strconv.ParseBool(raw)
			if err == nil {
				state.Prewarm = &parsed
			}
		}
	}

	if workload.Spec.Template.Spec.PriorityClassName == constants.HighPriorityClassName {
		state.HighPriority = true
	}

	state.Deployment.Available = int(workload.Status.AvailableReplicas)
	state.Deployment.Unavailable = int(workload.Status.UnavailableReplicas)

	return nil
}

func findContainer(containers []corev1.Container, name string) *corev1.Container {
	for i := range containers {
		if containers[i].Name == name {
			return &containers[i]
		}
	}
	return nil
}

func envMap(vars []corev1.EnvVar) map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

func envOr(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// populateFromAsyncAnnotations reads the celery.scaleml.autoscaler/*
// annotations async endpoints carry directly on the workload, since async
// endpoints have no horizontal autoscaler object.
func populateFromAsyncAnnotations(workload *appsv1.Deployment, state *v1alpha1.CanonicalEndpointState) {
	annotations := workload.Annotations
	state.Deployment.Min = atoiOrZero(annotations[constants.AnnotationAsyncMinWorkers])
	state.Deployment.Max = atoiOrZero(annotations[constants.AnnotationAsyncMaxWorkers])
	state.Deployment.PerWorker = atoiOrZero(annotations[constants.AnnotationAsyncPerWorker])
}

// populateFromHPA back-computes {max, min, perWorker} from the horizontal
// autoscaler, inverting exactly the forward transform reconcileHorizontalAutoscaler
// used to build it: a Pods-type metric whose target is an AverageValue
// quantity equal to perWorker.
func populateFromHPA(hpa *unstructured.Unstructured, state *v1alpha1.CanonicalEndpointState) {
	if min, ok, _ := unstructured.NestedInt64(hpa.Object, "spec", "minReplicas"); ok {
		state.Deployment.Min = int(min)
	}
	if max, ok, _ := unstructured.NestedInt64(hpa.Object, "spec", "maxReplicas"); ok {
		state.Deployment.Max = int(max)
	}

	metrics, ok, _ := unstructured.NestedSlice(hpa.Object, "spec", "metrics")
	if !ok {
		return
	}
	for _, m := range metrics {
		metric, ok := m.(map[string]interface{})
		if !ok {
			continue
		}
		if metric["type"] != "Pods" {
			continue
		}
		avgValue, ok, _ := unstructured.NestedString(metric, "pods", "target", "averageValue")
		if !ok {
			continue
		}
		if perWorker, err := strconv.Atoi(avgValue); err == nil {
			state.Deployment.PerWorker = perWorker
		}
		return
	}
}

// populateFromVPA fills in the {minCpu, maxCpu, minMemory, maxMemory}
// container policy for "main" and sets OptimizeCosts=true — presence of a
// vertical autoscaler is definitional for OptimizeCosts.
func populateFromVPA(vpa *unstructured.Unstructured, state *v1alpha1.CanonicalEndpointState) {
	state.Resource.OptimizeCosts = true

	policies, ok, _ := unstructured.NestedSlice(vpa.Object, "spec", "resourcePolicy", "containerPolicies")
	if !ok {
		return
	}
	for _, p := range policies {
		policy, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		name, _, _ := unstructured.NestedString(policy, "containerName")
		if name != constants.MainContainerName {
			continue
		}
		state.Resource.MinCPU, _, _ = unstructured.NestedString(policy, "minAllowed", "cpu")
		state.Resource.MaxCPU, _, _ = unstructured.NestedString(policy, "maxAllowed", "cpu")
		state.Resource.MinMemory, _, _ = unstructured.NestedString(policy, "minAllowed", "memory")
		state.Resource.MaxMemory, _, _ = unstructured.NestedString(policy, "maxAllowed", "memory")
		return
	}
}

// readUserConfigState lists configuration artifacts by endpoint_id label,
// falling back to deployment_name, and decodes each artifact's raw_data
// payload into the user/endpoint config slots by name suffix.
func (f *Facade) readUserConfigState(ctx context.Context, endpointID, deploymentName string) (*v1alpha1.UserConfigState, error) {
	list, err := operators.ListConfigArtifacts(ctx, f.Platform, f.Namespace, constants.LabelEndpointID+"="+endpointID)
	if err != nil {
		return nil, reconcileerr.NewInfra("ListConfigArtifactsFailed", "failed to list configuration artifacts", err)
	}
	if len(list.Items) == 0 {
		list, err = operators.ListConfigArtifacts(ctx, f.Platform, f.Namespace, constants.LabelDeploymentName+"="+deploymentName)
		if err != nil {
			return nil, reconcileerr.NewInfra("ListConfigArtifactsFailed", "failed to list configuration artifacts", err)
		}
	}

	state := &v1alpha1.UserConfigState{}
	for _, cm := range list.Items {
		raw, ok := cm.Data["raw_data"]
		if !ok {
			continue
		}
		decoded, err := userconfig.Decode(raw)
		if err != nil {
			continue
		}
		if naming.IsEndpointConfigName(cm.Name) {
			state.EndpointConfig = decoded
		} else {
			state.AppConfig = decoded
		}
	}
	return state, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// GetAll lists every workload and every autoscaler in one batch per kind,
// joins them by name, and applies the same derivation getOne does. Errors
// on any single endpoint are logged and do not abort the batch.
func (f *Facade) GetAll(ctx context.Context) ([]*v1alpha1.CanonicalEndpointState, error) {
	logger := log.FromContext(ctx)

	workloads, err := operators.ListWorkloads(ctx, f.Platform, f.Namespace)
	if err != nil {
		return nil, reconcileerr.NewInfra("ListWorkloadsFailed", "failed to list workloads", err)
	}

	apiVersion, err := f.Platform.AutoscalingAPIVersion(ctx)
	if err != nil {
		return nil, reconcileerr.NewInfra("VersionProbeFailed", "failed to determine platform version", err)
	}
	hpas, err := operators.ListHorizontalAutoscalers(ctx, f.Platform, f.Namespace, apiVersion)
	if err != nil {
		return nil, reconcileerr.NewInfra("ListHorizontalAutoscalersFailed", "failed to list horizontal autoscalers", err)
	}
	hpaByName := make(map[string]*unstructured.Unstructured, len(hpas.Items))
	for i := range hpas.Items {
		hpaByName[hpas.Items[i].GetName()] = &hpas.Items[i]
	}

	vpas, err := operators.VerticalAutoscaler.List(ctx, f.Platform, f.Namespace)
	if err != nil {
		return nil, reconcileerr.NewInfra("ListVerticalAutoscalersFailed", "failed to list vertical autoscalers", err)
	}
	vpaByName := make(map[string]*unstructured.Unstructured, len(vpas.Items))
	for i := range vpas.Items {
		vpaByName[vpas.Items[i].GetName()] = &vpas.Items[i]
	}

	seen := sets.New[string]()
	var results []*v1alpha1.CanonicalEndpointState

	for i := range workloads.Items {
		workload := &workloads.Items[i]
		if seen.Has(workload.Name) {
			continue
		}
		seen.Insert(workload.Name)

		endpointID, isCanonical := naming.ParseEndpointID(workload.Name)
		if !isCanonical {
			endpointID = workload.Name
		}

		state := &v1alpha1.CanonicalEndpointState{
			EndpointID:     endpointID,
			IsLegacyName:   !isCanonical,
			DeploymentName: workload.Name,
			Labels:         workload.Labels,
		}

		if err := populateCommonParams(workload, state); err != nil {
			logger.Info("skipping endpoint in batch observe", "workload", workload.Name, "error", err)
			continue
		}

		if hpa, ok := hpaByName[workload.Name]; ok {
			populateFromHPA(hpa, state)
		} else {
			populateFromAsyncAnnotations(workload, state)
		}

		if vpa, ok := vpaByName[workload.Name]; ok {
			populateFromVPA(vpa, state)
		}

		userConfig, err := f.readUserConfigState(ctx, endpointID, workload.Name)
		if err != nil {
			logger.Info("failed to read user config for endpoint in batch observe", "workload", workload.Name, "error", err)
		} else {
			state.UserConfig = *userConfig
		}

		results = append(results, state)
	}

	return results, nil
}
