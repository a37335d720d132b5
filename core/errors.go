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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPaper indicates a Paper failed validation.
	ErrInvalidPaper = errors.New("invalid paper")

	// ErrEmptyArxivId indicates the ArxivId field is empty.
	ErrEmptyArxivId = errors.New("arxiv id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidClassification indicates a Classification failed validation.
	ErrInvalidClassification = errors.New("invalid classification")

	// ErrEmptyPrimaryArea indicates the PrimaryArea label is empty.
	ErrEmptyPrimaryArea = errors.New("primary area cannot be empty")

	// ErrInvalidStage indicates an unknown pipeline stage name.
	ErrInvalidStage = errors.New("invalid stage")

	// ErrInvalidDayKey indicates a date string not in YYYY-MM-DD form.
	ErrInvalidDayKey = errors.New("invalid day key")
)
