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

// Package v1alpha1 holds the plain (non-CRD) data types that flow through
// the endpoint resource reconciler: the caller-supplied endpoint record and
// the canonical state produced by observation.
package v1alpha1

// ExecutionMode is the endpoint's request-handling shape.
type ExecutionMode string

const (
	ExecutionModeAsync     ExecutionMode = "async"
	ExecutionModeSync      ExecutionMode = "sync"
	ExecutionModeStreaming ExecutionMode = "streaming"
)

// BundleFlavor discriminates how the endpoint's runtime is packaged.
// It shapes which workload template is selected.
type BundleFlavor string

const (
	BundleFlavorArtifact               BundleFlavor = "artifact"
	BundleFlavorRunnableImage          BundleFlavor = "runnableImage"
	BundleFlavorStreamingRunnableImage BundleFlavor = "streamingRunnableImage"
	BundleFlavorTritonRunnableImage    BundleFlavor = "tritonRunnableImage"
)

// FlavorClass is the coarser grouping used for template-name selection
// (see internal/resourceargs).
type FlavorClass string

const (
	FlavorClassArtifact                    FlavorClass = "artifact"
	FlavorClassRunnableImage               FlavorClass = "runnable-image"
	FlavorClassTritonEnhancedRunnableImage FlavorClass = "triton-enhanced-runnable-image"
)

// ClassOf reports the FlavorClass a BundleFlavor belongs to.
func (f BundleFlavor) ClassOf() FlavorClass {
	switch f {
	case BundleFlavorArtifact:
		return FlavorClassArtifact
	case BundleFlavorTritonRunnableImage:
		return FlavorClassTritonEnhancedRunnableImage
	default:
		// BundleFlavorRunnableImage and BundleFlavorStreamingRunnableImage
		// both select the plain runnable-image template family.
		return FlavorClassRunnableImage
	}
}

// IsRunnable reports whether the flavor carries a runnable container image
// (as opposed to an artifact loaded into a shared runtime image).
func (f BundleFlavor) IsRunnable() bool {
	switch f {
	case BundleFlavorRunnableImage, BundleFlavorStreamingRunnableImage, BundleFlavorTritonRunnableImage:
		return true
	default:
		return false
	}
}

// Bundle describes the packaged runtime an endpoint serves.
type Bundle struct {
	Flavor BundleFlavor

	// Image is populated for runnable flavors; it is the container image
	// reference the workload template renders into the `main` container.
	Image *ImageInfo
}

// ImageInfo is the subset of image metadata the workload template and the
// observer's read-back path need.
type ImageInfo struct {
	Repository string
	Tag        string
}

// Reference returns the "repository:tag" form used as a template parameter
// and as the BUNDLE_URL read-back fallback.
func (i *ImageInfo) Reference() string {
	if i == nil {
		return ""
	}
	if i.Tag == "" {
		return i.Repository
	}
	return i.Repository + ":" + i.Tag
}

// ResourceRequest is the per-replica resource ask for a workload.
type ResourceRequest struct {
	CPUs    string
	Memory  string
	Storage string
	GPUs    int
	GPUType string
}

// ScalingRequest carries the replica-count bounds and the async
// per-worker concurrency hint (celery.scaleml.autoscaler/* annotations,
// or the horizontal autoscaler's average-concurrency target for
// sync/streaming).
type ScalingRequest struct {
	MinWorkers int
	MaxWorkers int
	PerWorker  int
}

// EndpointRecord is the caller-supplied description of one logical
// managed inference service.
type EndpointRecord struct {
	EndpointID string

	// LegacyName is the endpoint's display name. Older endpoints may have
	// been materialized under this name before the canonical
	// resourceGroupName scheme existed; it must be accepted on read/delete.
	LegacyName string

	Mode   ExecutionMode
	Bundle Bundle

	Scaling  ScalingRequest
	Resource ResourceRequest

	Labels map[string]string

	OptimizeCosts bool
	HighPriority  bool
	Prewarm       bool

	// AppConfig and EndpointConfig are opaque caller-supplied config
	// blobs. They are carried through to configuration artifacts via the
	// raw_data framing (internal/userconfig) and are never interpreted
	// here.
	AppConfig      []byte
	EndpointConfig []byte
}

// DeploymentState is the scaling-related portion of canonical observed
// state.
type DeploymentState struct {
	Min       int
	Max       int
	PerWorker int

	Available   int
	Unavailable int
}

// ResourceState is the resource-request portion of canonical observed
// state, plus the vertical-autoscaler-derived cost-optimization flag.
type ResourceState struct {
	CPUs    string
	Memory  string
	Storage string
	GPUs    int
	GPUType string

	OptimizeCosts bool

	// MinCPU, MaxCPU, MinMemory, MaxMemory are populated only when a
	// vertical autoscaler is present, from its container policy for
	// `main`.
	MinCPU    string
	MaxCPU    string
	MinMemory string
	MaxMemory string
}

// UserConfigState holds the decoded configuration-artifact payloads.
// Either field may be nil if the corresponding artifact was not found.
type UserConfigState struct {
	AppConfig      []byte
	EndpointConfig []byte
}

// CanonicalEndpointState is what the observer produces for one endpoint:
// the inverse of what the reconciler materializes.
type CanonicalEndpointState struct {
	EndpointID string

	// IsLegacyName is set when this state was assembled from objects
	// found under a free-form legacy name rather than the canonical
	// resourceGroupName scheme (see internal/naming.ParseEndpointID).
	IsLegacyName bool

	DeploymentName string
	AWSRole        string
	ResultsBucket  string

	Labels       map[string]string
	Prewarm      *bool
	HighPriority bool

	Deployment DeploymentState
	Resource   ResourceState
	UserConfig UserConfigState

	Image string
}
