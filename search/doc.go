// Package search provides retrieval-augmented question answering over
// indexed FAQ records.
//
// The Engine type implements the query flow:
//   - Embed the question with the same model used for indexing
//   - Retrieve the nearest index entries for the tenant
//   - Synthesize an answer from the retrieved texts with a language model
//   - Attach a deduplicated, capped list of source citations
//
// The nearest match's view count is incremented as a side effect of each
// answered question. View counting and answer generation are decoupled:
// increment failures are logged and never surface in the answer.
package search
