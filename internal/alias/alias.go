// Package alias implements the Alias Coalescer stage: within a
// SizeBucket, it partitions paths into maximal AliasGroups using the OS
// notion of "same underlying file" (device+inode on unix, a
// conservative none-are-aliases fallback elsewhere) and hands back one
// representative Candidate per group for the hashing funnel.
package alias

import (
	"github.com/n2fs/dupfind/internal/model"
)

type identity struct {
	dev uint64
	ino uint64
}

// Coalesce partitions one size bucket into maximal alias groups. Paths
// whose identity cannot be determined (stat failure, disappeared file,
// unsupported platform) are treated as singleton alias groups; they
// still enter the funnel as ordinary Candidates, just without any known
// alias.
//
// Groups are heap-allocated individually, since Candidate.Origin keeps
// a pointer to its group all the way to the Reporter.
//
// Group order follows first-occurrence order in b.Entries.
func Coalesce(b model.SizeBucket) []*model.AliasGroup {
	indexByIdentity := make(map[identity]int, len(b.Entries))
	groups := make([]*model.AliasGroup, 0, len(b.Entries))

	for _, e := range b.Entries {
		id, ok := fileIdentity(e.Path)
		if !ok {
			groups = append(groups, &model.AliasGroup{Size: b.Size, Paths: []string{e.Path}})
			continue
		}

		if gi, seen := indexByIdentity[id]; seen {
			groups[gi].Paths = append(groups[gi].Paths, e.Path)
			continue
		}

		indexByIdentity[id] = len(groups)
		groups = append(groups, &model.AliasGroup{Size: b.Size, Paths: []string{e.Path}})
	}

	return groups
}

// Candidates turns each alias group into the single representative
// Candidate that enters the hashing funnel on the group's behalf.
func Candidates(groups []*model.AliasGroup) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(groups))
	for _, g := range groups {
		candidates = append(candidates, model.Candidate{
			Path:   g.Representative(),
			Size:   g.Size,
			Origin: g,
		})
	}
	return candidates
}

// Known reports whether a group is an OS-proven duplicate set worth
// reporting on its own, independent of content hashing.
func Known(g *model.AliasGroup) bool {
	return len(g.Paths) >= 2
}
