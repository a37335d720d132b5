// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides the classifier abstraction for paperflow.
//
// The Classifier interface decouples the pipeline from any concrete model
// provider: the classify driver and the orchestrator depend only on this
// package, while ai/openai talks to OpenAI-compatible chat APIs and ai/mock
// serves tests.
//
// The reference taxonomy (primary area, secondary focus, application domain)
// lives here as well, since both prompt construction and digest grouping
// consult it.
package ai
