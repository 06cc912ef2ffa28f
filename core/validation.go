// Copyright 2025 Genmind Contributors
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

import "fmt"

// ValidateFAQRecord validates a FAQRecord according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Answer must not be empty
//
// NOT validated:
//   - ID (0 is valid before a database sequence assigns one)
//   - Views (any non-negative count is valid; the type enforces it)
func ValidateFAQRecord(record *FAQRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFAQRecord)
	}

	if record.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQRecord, ErrEmptyQuestion)
	}

	if record.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQRecord, ErrEmptyAnswer)
	}

	return nil
}

// ValidateExtractedItem validates a candidate item after normalization.
//
// Validation rules:
//   - Question and Answer must not be empty
//   - Confidence must be within [0,1]
func ValidateExtractedItem(item *ExtractedItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidFAQRecord)
	}

	if item.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQRecord, ErrEmptyQuestion)
	}

	if item.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQRecord, ErrEmptyAnswer)
	}

	if item.Confidence < 0 || item.Confidence > 1 {
		return fmt.Errorf("%w: %w: value %v", ErrInvalidFAQRecord, ErrInvalidConfidence, item.Confidence)
	}

	return nil
}

// ValidateTenant validates a Tenant according to domain rules.
func ValidateTenant(tenant *Tenant) error {
	if tenant == nil {
		return fmt.Errorf("%w: tenant is nil", ErrInvalidTenant)
	}

	if tenant.Domain == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTenant, ErrEmptyTenantDomain)
	}

	return nil
}
