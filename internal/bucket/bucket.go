// Package bucket implements the Size Bucketer stage: it groups
// FileEntry values by exact byte size and drops buckets that can never
// collide with anything (exactly one member).
package bucket

import (
	"iter"
	"sort"

	"github.com/n2fs/dupfind/internal/model"
)

// Stats carries the run-level counters the Reporter prints before
// entering the hashing funnel.
type Stats struct {
	FilesFound int
	UniqueSize int
}

// Build consumes the enumerator's stream and returns every SizeBucket
// with two or more members, sorted ascending by size so downstream
// output is deterministic. Singleton buckets are folded into
// Stats.UniqueSize and discarded; they cannot collide with any other
// file, so they never reach the funnel.
func Build(entries iter.Seq[model.FileEntry]) ([]model.SizeBucket, Stats) {
	bySize := make(map[int64][]model.FileEntry)
	var stats Stats

	for e := range entries {
		stats.FilesFound++
		bySize[e.Size] = append(bySize[e.Size], e)
	}

	buckets := make([]model.SizeBucket, 0, len(bySize))
	for size, list := range bySize {
		if len(list) == 1 {
			stats.UniqueSize++
			continue
		}
		buckets = append(buckets, model.SizeBucket{Size: size, Entries: list})
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Size < buckets[j].Size })

	return buckets, stats
}
