// Package model holds the shared entities that flow through the
// duplicate-elimination pipeline: FileEntry, SizeBucket, AliasGroup,
// Candidate and DigestGroup.
package model

import "sort"

// FileEntry is a regular file discovered by the enumerator. It is
// immutable once created and carries no more than what the size
// bucketer needs.
type FileEntry struct {
	Path string
	Size int64
}

// SizeBucket groups every FileEntry sharing one exact byte size.
type SizeBucket struct {
	Size    int64
	Entries []FileEntry
}

// AliasGroup is a maximal set of paths the OS reports as the same
// underlying file (same device+inode, or the platform equivalent).
// It is immutable from construction and survives to the Reporter
// regardless of what happens in the hashing funnel.
type AliasGroup struct {
	Size  int64
	Paths []string
}

// Representative returns the deterministic representative path that
// enters the hashing funnel on behalf of this group: the
// lexicographically smallest path after a stable sort. The sort runs
// on a copy, so Paths keeps its original order.
func (g *AliasGroup) Representative() string {
	sorted := append([]string(nil), g.Paths...)
	sort.Strings(sorted)
	return sorted[0]
}

// Candidate is a representative file surviving to some point in the
// hashing funnel, carrying its most recent stage digest. Origin points
// back at the AliasGroup it was drawn from; alias.Candidates sets it
// for every group, a one-path group included. Origin is nil only for a
// Candidate built without an AliasGroup.
type Candidate struct {
	Path   string
	Size   int64
	Digest []byte
	Origin *AliasGroup
}

// DigestGroup is the transient per-stage grouping of Candidates that
// share one digest within one size class. It is only ever materialized
// with two or more members; singletons are dropped by the caller
// before a DigestGroup is built.
type DigestGroup struct {
	Digest     []byte
	Candidates []Candidate
}
