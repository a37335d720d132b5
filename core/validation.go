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

import (
	"fmt"
	"time"
)

// ValidatePaper validates a Paper according to domain rules.
//
// Validation rules:
//   - ArxivId must not be empty
//   - Title must not be empty
//
// NOT validated:
//   - Summary (some arXiv entries ship without an abstract)
//   - Id (0 is replaced with IDFromContent(ArxivId) by the repository)
func ValidatePaper(paper *Paper) error {
	if paper == nil {
		return fmt.Errorf("%w: paper is nil", ErrInvalidPaper)
	}

	if paper.ArxivId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, ErrEmptyArxivId)
	}

	if paper.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, ErrEmptyTitle)
	}

	return nil
}

// ValidateClassification validates a Classification according to domain rules.
//
// Validation rules:
//   - PaperId must be set
//   - PrimaryArea must not be empty
//
// SecondaryFocus and ApplicationDomain may be empty; the taxonomy index
// substitutes "general" for empty segments when building archive keys.
func ValidateClassification(cls *Classification) error {
	if cls == nil {
		return fmt.Errorf("%w: classification is nil", ErrInvalidClassification)
	}

	if cls.PaperId == 0 {
		return fmt.Errorf("%w: paper id is zero", ErrInvalidClassification)
	}

	if cls.PrimaryArea == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClassification, ErrEmptyPrimaryArea)
	}

	return nil
}

// ValidateStage validates that a stage name is one of the known pipeline stages.
func ValidateStage(stage Stage) error {
	switch stage {
	case StageFetch, StageClassify, StageNotify:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStage, stage)
}

// ParseDayKey parses a YYYY-MM-DD date string into a UTC time.
func ParseDayKey(day string) (time.Time, error) {
	t, err := time.Parse(DayKeyFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, day)
	}
	return t.UTC(), nil
}
