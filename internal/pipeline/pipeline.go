// Package pipeline wires the Enumerator, Size Bucketer, Alias
// Coalescer, Hashing Funnel and Reporter into one end-to-end
// duplicate-elimination run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/n2fs/dupfind/internal/alias"
	"github.com/n2fs/dupfind/internal/bucket"
	"github.com/n2fs/dupfind/internal/funnel"
	"github.com/n2fs/dupfind/internal/model"
	"github.com/n2fs/dupfind/internal/report"
	"github.com/n2fs/dupfind/internal/walk"
)

// Options configures one pipeline run. Zero-value Options is valid:
// Workers falls back to hardware parallelism and Algorithm falls back
// to the default digest.
type Options struct {
	Roots     []string
	Workers   int
	Algorithm string
}

// Run executes the full pipeline once and writes the stdout contract to
// reporter. It returns an error when none of the roots is a usable
// directory or when the funnel fails (e.g. an unknown digest
// algorithm); per-file enumeration and hashing failures never propagate
// here, they degrade per-file instead.
func Run(ctx context.Context, opts Options, reporter *report.Reporter) error {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	runID := uuid.NewString()
	runLog := log.WithField("run", runID)
	start := time.Now()

	validRoots, err := walk.ValidRoots(roots)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	buckets, stats := bucket.Build(walk.Enumerate(validRoots))
	runLog.WithFields(log.Fields{
		"files_found":       stats.FilesFound,
		"files_unique_size": stats.UniqueSize,
		"buckets":           len(buckets),
	}).Debug("pipeline: enumeration and bucketing complete")

	var allAliasGroups []*model.AliasGroup
	var allCandidates []model.Candidate

	for _, b := range buckets {
		groups := alias.Coalesce(b)
		allAliasGroups = append(allAliasGroups, groups...)
		allCandidates = append(allCandidates, alias.Candidates(groups)...)
	}

	reporter.Counters(stats.FilesFound, stats.UniqueSize, len(allCandidates))

	result, err := funnel.RunWithConfig(ctx, allCandidates, funnel.Config{
		Workers:   opts.Workers,
		Algorithm: opts.Algorithm,
		Progress:  reporter.StageProgress,
	})
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reporter.Groups(result.DigestGroups, allAliasGroups)

	runLog.WithFields(log.Fields{
		"duration":      time.Since(start),
		"digest_groups": len(result.DigestGroups),
	}).Debug("pipeline: run complete")

	return nil
}
