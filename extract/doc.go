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


// Package extract turns PDF documents into deduplicated Q/A items.
//
// The pipeline runs in fixed stages:
//
//  1. PDF text extraction and cleanup (ExtractPDF, CleanText)
//  2. heading-based segmentation with short-section merging and
//     paragraph-boundary re-splitting (SplitSections)
//  3. per-section model extraction with retry (Extractor.ExtractSection)
//  4. normalization, confidence filtering and question-similarity
//     deduplication (PostFix, FilterByConfidence, Dedup)
//
// Sections are independent: one section failing all its retries loses
// that section's items but never the document.
package extract
