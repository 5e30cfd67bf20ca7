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

	"sigs.k8s.io/controller-runtime/pkg/log"

	v1alpha1 "github.com/eltociear/llm-engine/api/v1alpha1"
	"github.com/eltociear/llm-engine/internal/naming"
	"github.com/eltociear/llm-engine/internal/operators"
)

// Delete tears down every object an endpoint may have materialized. The
// aggregate succeeds iff every mandatory sub-delete succeeds; the vertical
// autoscaler and, for sync/streaming endpoints, the routing and
// destination policies are best-effort: their failures are logged but do
// not fail the aggregate.
func (f *Facade) Delete(ctx context.Context, record *v1alpha1.EndpointRecord) error {
	logger := log.FromContext(ctx).WithValues("endpointId", record.EndpointID)
	groupName := naming.ResourceGroupName(record.EndpointID)
	endpointConfigName := naming.EndpointConfigName(record.EndpointID)
	legacyEndpointConfigName := ""
	if record.LegacyName != "" {
		legacyEndpointConfigName = record.LegacyName + "-endpoint-config"
	}

	if err := operators.DeleteWorkload(ctx, f.Platform, f.Namespace, groupName, record.LegacyName); err != nil {
		return err
	}
	if err := operators.DeleteConfigArtifact(ctx, f.Platform, f.Namespace, groupName, record.LegacyName); err != nil {
		return err
	}
	if err := operators.DeleteConfigArtifact(ctx, f.Platform, f.Namespace, endpointConfigName, legacyEndpointConfigName); err != nil {
		return err
	}

	if err := operators.VerticalAutoscaler.Delete(ctx, f.Platform, f.Namespace, groupName, record.LegacyName); err != nil {
		logger.Info("best-effort vertical autoscaler delete failed", "error", err)
	}

	if record.Mode == v1alpha1.ExecutionModeSync || record.Mode == v1alpha1.ExecutionModeStreaming {
		if err := operators.DeleteService(ctx, f.Platform, f.Namespace, groupName, record.LegacyName); err != nil {
			return err
		}

		apiVersion, err := f.Platform.AutoscalingAPIVersion(ctx)
		if err != nil {
			return err
		}
		if err := operators.DeleteHorizontalAutoscaler(ctx, f.Platform, f.Namespace, apiVersion, groupName, record.LegacyName); err != nil {
			return err
		}

		if err := operators.RoutingPolicy.Delete(ctx, f.Platform, f.Namespace, groupName, record.LegacyName); err != nil {
			logger.Info("best-effort routing policy delete failed", "error", err)
		}
		if err := operators.DestinationPolicy.Delete(ctx, f.Platform, f.Namespace, groupName, record.LegacyName); err != nil {
			logger.Info("best-effort destination policy delete failed", "error", err)
		}
	}

	logger.V(1).Info("deleted endpoint")
	return nil
}
