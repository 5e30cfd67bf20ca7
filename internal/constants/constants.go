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

package constants

import (
	"os"
	"sync"
)

const (
	// resultsBucketEnvVar and awsProfileEnvVar name the environment
	// variables read to pick default values for workloads that don't set
	// RESULTS_S3_BUCKET / AWS_PROFILE themselves.
	resultsBucketEnvVar = "LLM_ENGINE_DEFAULT_RESULTS_BUCKET"
	awsProfileEnvVar    = "LLM_ENGINE_DEFAULT_AWS_PROFILE"

	// NamePrefix is the prefix every canonically named object shares.
	// resourceGroupName = NamePrefix + endpointId, with underscores
	// replaced by hyphens.
	NamePrefix = "llm-engine-endpoint-id-"

	// EndpointConfigSuffix distinguishes the internal endpoint-config
	// configuration artifact from the user app-config artifact, both of
	// which otherwise share the resource group name.
	EndpointConfigSuffix = "-endpoint-config"

	// HighPriorityClassName is the fixed priority class name applied to
	// workloads whose endpoint record sets HighPriority. Kept as a
	// literal rather than made configurable; the source hardcodes it.
	HighPriorityClassName = "llm-engine-high-priority"

	// MainContainerName is the container the workload template must
	// define; observability env vars are injected into it and its
	// resource requests are the common parameters the observer reads.
	MainContainerName = "main"
)

// LLMEngineContainerNames lists, in priority order, the container names
// the observer treats as "the llm-engine container" for env var read-back.
// The first one present on the workload wins.
var LLMEngineContainerNames = []string{"celery-forwarder", "http-forwarder", MainContainerName}

// Environment variables read back from a workload's llm-engine container,
// and written (for observability ones) into the main container on every
// reconcile of a runnable-image flavor.
const (
	EnvBundleURL       = "BUNDLE_URL"
	EnvAWSProfile      = "AWS_PROFILE"
	EnvResultsS3Bucket = "RESULTS_S3_BUCKET"
	EnvPrewarm         = "PREWARM"

	EnvObservabilityService     = "LLM_ENGINE_OBSERVABILITY_SERVICE"
	EnvObservabilityEnv         = "LLM_ENGINE_OBSERVABILITY_ENV"
	EnvObservabilityVersion     = "LLM_ENGINE_OBSERVABILITY_VERSION"
	EnvObservabilityAgentHost   = "LLM_ENGINE_OBSERVABILITY_AGENT_HOST"
	EnvObservabilityTraceEnable = "LLM_ENGINE_OBSERVABILITY_TRACE_ENABLED"
)

// ObservabilityEnvNames is the full set of env vars the reconciler
// replaces (not appends) on each reconcile of a runnable-image flavor, so
// repeated reconciles stay idempotent.
var ObservabilityEnvNames = []string{
	EnvObservabilityService,
	EnvObservabilityEnv,
	EnvObservabilityVersion,
	EnvObservabilityAgentHost,
	EnvObservabilityTraceEnable,
}

// Async autoscaling annotations read by the observer directly off the
// workload when mode is async (no horizontal autoscaler object exists).
const (
	AnnotationAsyncMinWorkers = "celery.scaleml.autoscaler/minWorkers"
	AnnotationAsyncMaxWorkers = "celery.scaleml.autoscaler/maxWorkers"
	AnnotationAsyncPerWorker  = "celery.scaleml.autoscaler/perWorker"
)

// Label selectors used by the observer to find an endpoint's
// configuration artifacts.
const (
	LabelEndpointID     = "endpoint_id"
	LabelDeploymentName = "deployment_name"
)

// GPU resource/selector names.
const (
	ResourceNameNvidiaGPU = "nvidia.com/gpu"
	NodeSelectorGPUType   = "accelerator"
)

// Horizontal-autoscaler API versions. The orchestrator-client facade
// selects between these based on the cached platform-version probe: the
// stable API from platform v1.26 onward, the beta API before it.
const (
	AutoscalingAPIVersionStable = "autoscaling/v2"
	AutoscalingAPIVersionBeta   = "autoscaling/v2beta2"
)

// ConditionsSpuriousValidationSubstring is the exact substring the
// horizontal-autoscaler patch path matches on to recognize the platform's
// spurious "conditions in body" validation error, which must be treated
// as success rather than surfaced.
const ConditionsSpuriousValidationSubstring = "conditions in body"

var (
	defaultsOnce           sync.Once
	defaultAWSProfile      string
	defaultResultsS3Bucket string
)

// loadDefaults reads the process-wide fallback values the observer
// substitutes for AWS_PROFILE / RESULTS_S3_BUCKET when a workload doesn't
// set them. Read once per process; there is no per-call override, and
// later changes to the environment are not seen.
func loadDefaults() {
	defaultAWSProfile = os.Getenv(awsProfileEnvVar)
	defaultResultsS3Bucket = os.Getenv(resultsBucketEnvVar)
}

// DefaultAWSProfile returns the process-wide AWS profile fallback.
func DefaultAWSProfile() string {
	defaultsOnce.Do(loadDefaults)
	return defaultAWSProfile
}

// DefaultResultsS3Bucket returns the process-wide results bucket fallback.
func DefaultResultsS3Bucket() string {
	defaultsOnce.Do(loadDefaults)
	return defaultResultsS3Bucket
}
