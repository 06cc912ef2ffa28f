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


// Package ai provides abstractions for the AI services used in genmind.
//
// This package defines interfaces for text embeddings and chat-model text
// generation. It follows the dependency inversion principle: the extraction
// pipeline, the vector index synchronizer and the retrieval engine depend on
// these abstractions rather than on a concrete model client, and clients are
// constructed once at startup and injected, never referenced as ambient
// global state.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in ai/openai return INTERFACE types to enforce
// abstraction. Test utility constructors in ai/mock return CONCRETE types to
// enable behavior injection and call-count assertions.
package ai
