// Package report prints the stable stdout contract: progress counters,
// one "Eliminating by <stage>" line per stage entered, and one "same"
// line per emitted duplicate group.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/n2fs/dupfind/internal/model"
)

// Reporter writes the stdout contract to w.
type Reporter struct {
	w io.Writer
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Counters prints the three summary lines emitted before the funnel
// starts.
func (r *Reporter) Counters(filesFound, uniqueSize, toScan int) {
	fmt.Fprintf(r.w, "files found: %d\n", filesFound)
	fmt.Fprintf(r.w, "files with unique size: %d\n", uniqueSize)
	fmt.Fprintf(r.w, "files to scan: %d\n", toScan)
}

// StageProgress prints one "Eliminating by <stage>: N files" line per
// stage entered.
func (r *Reporter) StageProgress(stageName string, n int) {
	fmt.Fprintf(r.w, "Eliminating by %s: %d files\n", stageName, n)
}

// Groups emits every duplicate group discovered by the pipeline: the
// content-duplicate groups (each expanded with the alias paths of its
// member Candidates) and any alias group not already folded into a
// content group. All groups of both kinds are sorted together by size
// ascending then by their lexicographically smallest path, and paths
// within a group are sorted lexicographically.
func (r *Reporter) Groups(digestGroups []model.DigestGroup, aliasGroups []*model.AliasGroup) {
	type line struct {
		size  int64
		paths []string
	}

	consumed := make(map[*model.AliasGroup]bool)
	lines := make([]line, 0, len(digestGroups)+len(aliasGroups))

	for _, dg := range digestGroups {
		if len(dg.Candidates) < 2 {
			continue
		}
		seen := make(map[string]bool)
		var paths []string
		var size int64
		for _, c := range dg.Candidates {
			size = c.Size
			if c.Origin != nil {
				consumed[c.Origin] = true
				for _, p := range c.Origin.Paths {
					if !seen[p] {
						seen[p] = true
						paths = append(paths, p)
					}
				}
			} else if !seen[c.Path] {
				seen[c.Path] = true
				paths = append(paths, c.Path)
			}
		}
		if len(paths) >= 2 {
			lines = append(lines, line{size: size, paths: paths})
		}
	}

	for _, g := range aliasGroups {
		if consumed[g] || len(g.Paths) < 2 {
			continue
		}
		lines = append(lines, line{size: g.Size, paths: append([]string(nil), g.Paths...)})
	}

	for _, l := range lines {
		sort.Strings(l.paths)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].size != lines[j].size {
			return lines[i].size < lines[j].size
		}
		return lines[i].paths[0] < lines[j].paths[0]
	})

	for _, l := range lines {
		fmt.Fprintf(r.w, "same %s\n", strings.Join(l.paths, " "))
	}
}
