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
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/eltociear/llm-engine/internal/constants"
)

// injectObservabilityEnv is a pure function (graph) -> graph: it returns a
// copy of deployment with the observability environment variables set on
// the main container, replacing any pre-existing observability variables
// so repeated reconciles stay idempotent instead of accumulating
// duplicate entries.
func injectObservabilityEnv(deployment *appsv1.Deployment, values map[string]string) *appsv1.Deployment {
	out := deployment.DeepCopy()
	for i := range out.Spec.Template.Spec.Containers {
		c := &out.Spec.Template.Spec.Containers[i]
		if c.Name != constants.MainContainerName {
			continue
		}
		c.Env = replaceObservabilityEnv(c.Env, values)
	}
	return out
}

func replaceObservabilityEnv(existing []corev1.EnvVar, values map[string]string) []corev1.EnvVar {
	observability := make(map[string]bool, len(constants.ObservabilityEnvNames))
	for _, name := range constants.ObservabilityEnvNames {
		observability[name] = true
	}

	result := make([]corev1.EnvVar, 0, len(existing)+len(values))
	for _, e := range existing {
		if observability[e.Name] {
			continue
		}
		result = append(result, e)
	}
	for _, name := range constants.ObservabilityEnvNames {
		if v, ok := values[name]; ok {
			result = append(result, corev1.EnvVar{Name: name, Value: v})
		}
	}
	return result
}
