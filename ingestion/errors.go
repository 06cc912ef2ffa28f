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


package ingestion

import "errors"

var (
	// ErrFAQRepositoryRequired indicates a missing FAQ repository.
	ErrFAQRepositoryRequired = errors.New("FAQ repository is required")

	// ErrExtractorRequired indicates a missing extractor.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrSynchronizerRequired indicates a missing vector synchronizer.
	ErrSynchronizerRequired = errors.New("vector synchronizer is required")

	// ErrSourceFileRequired indicates a commit without a source file name.
	ErrSourceFileRequired = errors.New("source file name is required")

	// ErrTenantRequired indicates an operation without a tenant scope.
	ErrTenantRequired = errors.New("tenant is required")
)
