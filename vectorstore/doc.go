// Package vectorstore provides the similarity index over FAQ embeddings.
//
// The index is brute-force cosine similarity over an in-memory entry set,
// keyed by FAQ record id. That keeps index entries joinable with the
// structured store: a rebuild re-embeds the same records under the same
// ids, and a targeted upsert replaces exactly the entries whose records
// changed.
//
// Persistence is a single snapshot file written atomically; see Save and
// Load. The synchronizer in package vectorsync owns when snapshots are
// taken.
package vectorstore
