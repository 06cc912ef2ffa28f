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


package vectorsync

import "errors"

var (
	// ErrNoRecords indicates that a rebuild found nothing to index.
	ErrNoRecords = errors.New("no records to index")

	// ErrEmbeddingFailed indicates that the embedding call failed.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmbeddingCountMismatch indicates that the embedder returned a
	// different number of vectors than texts.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
