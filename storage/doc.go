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


// Package storage provides the storage abstraction layer for paperflow.
//
// This package defines repository interfaces that decouple storage
// implementation from pipeline logic. Three repositories cover the durable
// state the pipeline depends on:
//
//   - StatusRepository: stage markers, the coordination state that makes
//     runs resumable
//   - PaperRepository: fetched papers plus fetch-batch provenance
//   - ClassificationRepository: per-paper classification results with a
//     taxonomy index
//
// All repositories are keyed so that writes are overwrite-safe: re-running a
// stage for the same date rewrites identical records rather than duplicating
// them. No cross-record transactions are required.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces (not
// concrete types) to prevent coupling to a specific backend:
//
//	repo, err := badger.NewStatusRepository(backend)  // storage.StatusRepository
//
// # Serialization
//
// Keys are composite byte strings ordered for prefix scans; values are JSON
// documents (see serialization.go) so archives remain inspectable.
package storage
