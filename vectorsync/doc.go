// Package vectorsync keeps the vector index in step with the structured
// store.
//
// The structured store is the source of truth. Index writes happen after
// store commits, usually on a background worker, so there is a window
// where a freshly committed record is not yet searchable. That staleness
// is accepted; what is never accepted is an index entry whose id has no
// live record, which is why UpsertByIDs purges ids it cannot resolve.
//
// Three write shapes cover all callers:
//
//   - Rebuild: wholesale replacement, used after bulk edits or when the
//     snapshot is lost
//   - UpsertAll: re-embed a selection without touching other entries
//   - UpsertByIDs: targeted refresh after a commit touches known ids
package vectorsync
