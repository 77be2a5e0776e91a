// Package engine exposes the public stream-selection operations: availability
// probing, single-stream video/audio retrieval, and unified dual-branch
// retrieval over one shared provider round trip.
//
// The Extractor owns the retrying fetcher, the provider-client pool, the
// memoized quality normalizer, and the selection policy. Unified retrieval
// fans out to at most two concurrent branch tasks on a bounded pool, awaits
// each with a fixed timeout, and merges the tagged outcomes under a
// partial-failure policy: a failed or timed-out branch degrades to an empty
// result while the other requested branch still succeeds, and the call fails
// only when every requested branch comes back empty.
package engine
