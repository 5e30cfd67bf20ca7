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

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/log"

	v1alpha1 "github.com/eltociear/llm-engine/api/v1alpha1"
	"github.com/eltociear/llm-engine/internal/constants"
	"github.com/eltociear/llm-engine/internal/naming"
	"github.com/eltociear/llm-engine/internal/operators"
	"github.com/eltociear/llm-engine/internal/reconcileerr"
	"github.com/eltociear/llm-engine/internal/resourceargs"
	"github.com/eltociear/llm-engine/internal/userconfig"
)

// CreateOrUpdate materializes record into its object graph. The only
// ordering constraint honored here is that the workload is applied before
// anything that references it (horizontal autoscaler, traffic service);
// everything else is independent, so a fatal error from one object kind
// aborts the remaining steps rather than continuing to paper over a
// partially materialized endpoint.
func (f *Facade) CreateOrUpdate(ctx context.Context, record *v1alpha1.EndpointRecord, queue QueueMetadata) error {
	logger := log.FromContext(ctx).WithValues("endpointId", record.EndpointID)

	if err := validateRecord(record); err != nil {
		return err
	}

	groupName := naming.ResourceGroupName(record.EndpointID)

	if err := f.reconcileWorkload(ctx, record, groupName, queue); err != nil {
		return err
	}
	if err := f.reconcileConfigArtifacts(ctx, record, groupName, queue); err != nil {
		return err
	}

	if record.OptimizeCosts {
		if err := f.reconcileVerticalAutoscaler(ctx, record, groupName, queue); err != nil {
			return err
		}
	}

	if record.Mode == v1alpha1.ExecutionModeSync || record.Mode == v1alpha1.ExecutionModeStreaming {
		if err := f.reconcileHorizontalAutoscaler(ctx, record, groupName, queue); err != nil {
			return err
		}
		if err := f.reconcileTrafficService(ctx, record, groupName, queue); err != nil {
			return err
		}
		if err := f.reconcileRoutingAndDestinationPolicies(ctx, record, groupName, queue); err != nil {
			return err
		}
	}

	logger.V(1).Info("reconciled endpoint")
	return nil
}

func validateRecord(record *v1alpha1.EndpointRecord) error {
	switch record.Mode {
	case v1alpha1.ExecutionModeAsync, v1alpha1.ExecutionModeSync, v1alpha1.ExecutionModeStreaming:
	default:
		return reconcileerr.NewValidation("UnknownMode", "endpoint record has an unrecognized execution mode: "+string(record.Mode), nil)
	}
	if record.EndpointID == "" {
		return reconcileerr.NewValidation("MissingEndpointID", "endpoint record has no endpoint id", nil)
	}
	return nil
}

func (f *Facade) reconcileWorkload(ctx context.Context, record *v1alpha1.EndpointRecord, groupName string, queue QueueMetadata) error {
	templateName := resourceargs.WorkloadTemplateName(record)
	params, err := resourceargs.Build(record, queue.QueueName, queue.QueueURL, templateName, "")
	if err != nil {
		return err
	}

	graph, err := f.Templates.Load(templateName, params)
	if err != nil {
		return err
	}

	deployment := &appsv1.Deployment{}
	if err := intoObject(graph, deployment); err != nil {
		return err
	}
	deployment.Name = groupName

	if record.Bundle.Flavor.IsRunnable() {
		deployment = injectObservabilityEnv(deployment, observabilityValues(record))
	}

	return operators.CreateOrUpdateWorkload(ctx, f.Platform, f.Namespace, deployment)
}

func (f *Facade) reconcileConfigArtifacts(ctx context.Context, record *v1alpha1.EndpointRecord, groupName string, queue QueueMetadata) error {
	if err := f.reconcileOneConfigArtifact(ctx, record, groupName, resourceargs.TemplateUserConfig, record.AppConfig, queue); err != nil {
		return err
	}
	endpointConfigName := naming.EndpointConfigName(record.EndpointID)
	return f.reconcileOneConfigArtifact(ctx, record, endpointConfigName, resourceargs.TemplateEndpointConfig, record.EndpointConfig, queue)
}

func (f *Facade) reconcileOneConfigArtifact(ctx context.Context, record *v1alpha1.EndpointRecord, artifactName, templateName string, payload []byte, queue QueueMetadata) error {
	params, err := resourceargs.Build(record, queue.QueueName, queue.QueueURL, templateName, "")
	if err != nil {
		return err
	}
	params["resourceGroupName"] = artifactName

	rawData, err := userconfig.Encode(payload)
	if err != nil {
		return reconcileerr.NewConfiguration("RawDataEncodeFailed", "failed to encode configuration artifact payload", err)
	}
	params["rawData"] = rawData

	graph, err := f.Templates.Load(templateName, params)
	if err != nil {
		return err
	}

	configMap := &corev1.ConfigMap{}
	if err := intoObject(graph, configMap); err != nil {
		return err
	}
	configMap.Name = artifactName
	if configMap.Data == nil {
		configMap.Data = map[string]string{}
	}
	configMap.Data["raw_data"] = rawData
	if configMap.Labels == nil {
		configMap.Labels = map[string]string{}
	}
	configMap.Labels[constants.LabelEndpointID] = record.EndpointID
	configMap.Labels[constants.LabelDeploymentName] = groupNameOrLegacy(record)

	return operators.CreateOrUpdateConfigArtifact(ctx, f.Platform, f.Namespace, configMap)
}

func (f *Facade) reconcileVerticalAutoscaler(ctx context.Context, record *v1alpha1.EndpointRecord, groupName string, queue QueueMetadata) error {
	params, err := resourceargs.Build(record, queue.QueueName, queue.QueueURL, resourceargs.TemplateVerticalAutoscaler, "")
	if err != nil {
		return err
	}
	graph, err := f.Templates.Load(resourceargs.TemplateVerticalAutoscaler, params)
	if err != nil {
		return err
	}
	obj := intoUnstructured(graph)
	obj.SetName(groupName)
	return operators.VerticalAutoscaler.CreateOrUpdate(ctx, f.Platform, f.Namespace, obj)
}

func (f *Facade) reconcileHorizontalAutoscaler(ctx context.Context, record *v1alpha1.EndpointRecord, groupName string, queue QueueMetadata) error {
	apiVersion, err := f.Platform.AutoscalingAPIVersion(ctx)
	if err != nil {
		return reconcileerr.NewInfra("VersionProbeFailed", "failed to determine platform version for horizontal autoscaler API selection", err)
	}

	params, err := resourceargs.Build(record, queue.QueueName, queue.QueueURL, resourceargs.TemplateHorizontalAutoscaler, apiVersion)
	if err != nil {
		return err
	}
	graph, err := f.Templates.Load(resourceargs.TemplateHorizontalAutoscaler, params)
	if err != nil {
		return err
	}
	obj := intoUnstructured(graph)
	obj.SetAPIVersion(apiVersion)
	obj.SetKind("HorizontalPodAutoscaler")
	obj.SetName(groupName)

	return operators.CreateOrUpdateHorizontalAutoscaler(ctx, f.Platform, f.Namespace, obj)
}

func (f *Facade) reconcileTrafficService(ctx context.Context, record *v1alpha1.EndpointRecord, groupName string, queue QueueMetadata) error {
	params, err := resourceargs.Build(record, queue.QueueName, queue.QueueURL, resourceargs.TemplateService, "")
	if err != nil {
		return err
	}
	graph, err := f.Templates.Load(resourceargs.TemplateService, params)
	if err != nil {
		return err
	}
	svc := &corev1.Service{}
	if err := intoObject(graph, svc); err != nil {
		return err
	}
	svc.Name = groupName
	return operators.CreateOrUpdateService(ctx, f.Platform, f.Namespace, svc)
}

// reconcileRoutingAndDestinationPolicies applies the routing and
// destination policy templates where they exist. Both are optional in the
// sense that a deployment without those templates configured simply skips
// them rather than failing the reconcile.
func (f *Facade) reconcileRoutingAndDestinationPolicies(ctx context.Context, record *v1alpha1.EndpointRecord, groupName string, queue QueueMetadata) error {
	if err := f.reconcilePolicy(ctx, record, groupName, resourceargs.TemplateRoutingPolicy, operators.RoutingPolicy, queue); err != nil {
		return err
	}
	return f.reconcilePolicy(ctx, record, groupName, resourceargs.TemplateDestinationPolicy, operators.DestinationPolicy, queue)
}

func (f *Facade) reconcilePolicy(ctx context.Context, record *v1alpha1.EndpointRecord, groupName, templateName string, op operators.CustomResourceOperator, queue QueueMetadata) error {
	params, err := resourceargs.Build(record, queue.QueueName, queue.QueueURL, templateName, "")
	if err != nil {
		return err
	}
	graph, err := f.Templates.Load(templateName, params)
	if err != nil {
		if reconcileerr.KindOf(err) == reconcileerr.KindConfiguration {
			log.FromContext(ctx).V(1).Info("skipping optional template, not configured", "template", templateName)
			return nil
		}
		return err
	}
	obj := intoUnstructured(graph)
	obj.SetName(groupName)
	return op.CreateOrUpdate(ctx, f.Platform, f.Namespace, obj)
}

func observabilityValues(record *v1alpha1.EndpointRecord) map[string]string {
	return map[string]string{
		constants.EnvObservabilityService:      naming.ResourceGroupName(record.EndpointID),
		constants.EnvObservabilityEnv:          string(record.Mode),
		constants.EnvObservabilityVersion:      record.Bundle.Image.Reference(),
		constants.EnvObservabilityAgentHost:    "localhost",
		constants.EnvObservabilityTraceEnable:  "true",
	}
}

func groupNameOrLegacy(record *v1alpha1.EndpointRecord) string {
	if record.LegacyName != "" {
		return record.LegacyName
	}
	return naming.ResourceGroupName(record.EndpointID)
}
