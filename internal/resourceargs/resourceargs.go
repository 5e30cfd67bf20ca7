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

// Package resourceargs translates a logical endpoint record into the flat
// parameter bag a template expects, and selects which template a given
// endpoint shape resolves to.
package resourceargs

import (
	"fmt"
	"strconv"
	"strings"

	v1alpha1 "github.com/eltociear/llm-engine/api/v1alpha1"
	"github.com/eltociear/llm-engine/internal/naming"
	"github.com/eltociear/llm-engine/internal/reconcileerr"
)

// Fixed, non-tuple-selected template keys.
const (
	TemplateUserConfig           = "user-config"
	TemplateEndpointConfig       = "endpoint-config"
	TemplateHorizontalAutoscaler = "horizontal-pod-autoscaler"
	TemplateVerticalAutoscaler   = "vertical-pod-autoscaler"
	TemplateService              = "service"
	TemplateRoutingPolicy        = "routing-policy"
	TemplateDestinationPolicy    = "destination-policy"
)

// device reports "gpu" or "cpu" for the device axis of the template
// selection tuple.
func device(r v1alpha1.ResourceRequest) string {
	if r.GPUs > 0 {
		return "gpu"
	}
	return "cpu"
}

// WorkloadTemplateName selects the workload template key from the tuple
// (flavorClass, mode, device), e.g.
// "deployment-runnable-image-sync-gpu".
func WorkloadTemplateName(record *v1alpha1.EndpointRecord) string {
	return fmt.Sprintf("deployment-%s-%s-%s",
		record.Bundle.Flavor.ClassOf(),
		record.Mode,
		device(record.Resource),
	)
}

// requiredKeys enumerates, per template key family, the parameter keys
// that must be populated for the template to render correctly. Workload
// template keys share one required set regardless of the selected tuple.
var requiredKeys = map[string][]string{
	"deployment":                 {"resourceGroupName", "endpointId", "cpus", "memory", "storage", "minWorkers", "maxWorkers"},
	TemplateUserConfig:           {"resourceGroupName", "endpointId"},
	TemplateEndpointConfig:       {"resourceGroupName", "endpointId"},
	TemplateHorizontalAutoscaler: {"resourceGroupName", "minWorkers", "maxWorkers", "perWorker", "platformApiVersion"},
	TemplateVerticalAutoscaler:   {"resourceGroupName", "minCpu", "maxCpu", "minMemory", "maxMemory"},
	TemplateService:              {"resourceGroupName"},
	TemplateRoutingPolicy:        {"resourceGroupName"},
	TemplateDestinationPolicy:    {"resourceGroupName"},
}

// familyOf maps a concrete template key to the requiredKeys family it
// validates against; workload template keys vary by tuple but share one
// required-key family.
func familyOf(templateKey string) string {
	if strings.HasPrefix(templateKey, "deployment-") {
		return "deployment"
	}
	return templateKey
}

// Build translates an endpoint record plus call-scoped extras into the
// flat parameter bag for targetTemplateName. platformAPIVersion is only
// required (and only validated) for the horizontal-autoscaler template.
func Build(record *v1alpha1.EndpointRecord, queueName, queueURL, targetTemplateName, platformAPIVersion string) (map[string]string, error) {
	params := baseParams(record, queueName, queueURL)
	if platformAPIVersion != "" {
		params["platformApiVersion"] = platformAPIVersion
	}

	family := familyOf(targetTemplateName)
	required, ok := requiredKeys[family]
	if !ok {
		return nil, reconcileerr.NewConfiguration(
			"UnknownTemplateName",
			fmt.Sprintf("no required-key set registered for template %q", targetTemplateName),
			nil,
		)
	}

	var missing []string
	for _, key := range required {
		if params[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, reconcileerr.NewConfiguration(
			"MissingResourceArgument",
			fmt.Sprintf("template %q missing required parameter(s): %s", targetTemplateName, strings.Join(missing, ", ")),
			nil,
		)
	}
	return params, nil
}

// baseParams computes every value derivable from the record itself plus
// the call-scoped queue metadata, independent of which template will
// consume them. Build validates only the subset a given template needs.
func baseParams(record *v1alpha1.EndpointRecord, queueName, queueURL string) map[string]string {
	groupName := naming.ResourceGroupName(record.EndpointID)

	params := map[string]string{
		"resourceGroupName": groupName,
		"endpointId":        record.EndpointID,
		"mode":              string(record.Mode),
		"flavorClass":       string(record.Bundle.Flavor.ClassOf()),
		"queueName":         queueName,
		"queueUrl":          queueURL,
		"cpus":              record.Resource.CPUs,
		"memory":            record.Resource.Memory,
		"storage":           record.Resource.Storage,
		"gpus":              strconv.Itoa(record.Resource.GPUs),
		"gpuType":           record.Resource.GPUType,
		"minWorkers":        strconv.Itoa(record.Scaling.MinWorkers),
		"maxWorkers":        strconv.Itoa(record.Scaling.MaxWorkers),
		"perWorker":         strconv.Itoa(record.Scaling.PerWorker),
		"optimizeCosts":     strconv.FormatBool(record.OptimizeCosts),
		"highPriority":      strconv.FormatBool(record.HighPriority),
		"prewarm":           strconv.FormatBool(record.Prewarm),
		"image":             record.Bundle.Image.Reference(),
	}

	if record.OptimizeCosts {
		params["minCpu"] = record.Resource.CPUs
		params["maxCpu"] = record.Resource.CPUs
		params["minMemory"] = record.Resource.Memory
		params["maxMemory"] = record.Resource.Memory
	}

	return params
}
