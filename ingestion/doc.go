// Package ingestion provides pipeline orchestration for turning documents
// into persisted FAQ records.
//
// The Pipeline type manages the ingestion workflow, including:
//   - Extracting candidate question/answer items from PDF documents
//   - Replacing a source file's records atomically in storage
//   - Refreshing the vector index asynchronously after each commit
//
// Extraction and commit are separate steps so extracted items can be
// reviewed or edited before they replace live records. Errors during
// async index refresh are logged but do not fail the commit operation.
package ingestion
