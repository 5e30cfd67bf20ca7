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

// Package endpointengine is a narrow facade over four operations,
// createOrUpdate/getOne/getAll/delete, sitting in front of the
// reconciler (a pure function of endpoint record + queue metadata +
// platform version into a sequence of idempotent operator calls) and the
// observer (its inverse). The facade owns no control loop; it is invoked
// synchronously by a caller that owns persistence, queue provisioning, and
// the HTTP/CLI surface.
package endpointengine

import (
	"github.com/eltociear/llm-engine/internal/platform"
	"github.com/eltociear/llm-engine/internal/templates"
)

// Facade is the entry point this package exposes. Construct one per
// namespace/cluster context and reuse it; it carries no per-call mutable
// state beyond what platform.Client itself caches.
type Facade struct {
	Platform  *platform.Client
	Templates templates.Loader
	Namespace string
}

// New constructs a Facade over an already-initialized platform client and
// template loader.
func New(pc *platform.Client, loader templates.Loader, namespace string) *Facade {
	return &Facade{Platform: pc, Templates: loader, Namespace: namespace}
}

// QueueMetadata carries the optional queue name/URL inputs createOrUpdate
// needs for async endpoints; both fields are empty for sync/streaming
// endpoints, which don't reference a queue.
type QueueMetadata struct {
	QueueName string
	QueueURL  string
}
