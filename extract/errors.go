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


package extract

import "errors"

var (
	// ErrPDFOpenFailed indicates that the PDF document could not be opened.
	ErrPDFOpenFailed = errors.New("failed to open PDF")

	// ErrPDFReadFailed indicates that a page's text layer could not be read.
	ErrPDFReadFailed = errors.New("failed to read PDF text")

	// ErrGenerationFailed indicates that the model call failed after all
	// retry attempts.
	ErrGenerationFailed = errors.New("model generation failed")

	// ErrInvalidMaxAttempts indicates an invalid retry configuration.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
