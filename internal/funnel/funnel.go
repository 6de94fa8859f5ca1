// Package funnel orchestrates the four-stage hashing funnel: S1 4KiB
// corners, S2 64KiB corners, S3 64KiB middle, S4 whole-file sequential.
// Each stage consumes the previous stage's survivors and keeps only
// Candidates whose digest collided with at least one other survivor of
// the same size.
package funnel

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/n2fs/dupfind/internal/digest"
	"github.com/n2fs/dupfind/internal/engine"
	"github.com/n2fs/dupfind/internal/model"
	"github.com/n2fs/dupfind/internal/sample"
)

// Stage names printed in the progress line.
const (
	Stage1Name = "4KiB corners"
	Stage2Name = "64KiB corners"
	Stage3Name = "64KiB middle"
	Stage4Name = "whole read"
)

type stageSpec struct {
	name       string
	strategy   sample.Strategy
	bufferSize int
}

var stages = []stageSpec{
	{name: Stage1Name, strategy: sample.Corners, bufferSize: 4 * 1024},
	{name: Stage2Name, strategy: sample.Corners, bufferSize: 64 * 1024},
	{name: Stage3Name, strategy: sample.Middle, bufferSize: 64 * 1024},
	{name: Stage4Name, strategy: sample.Sequential, bufferSize: 4 * 1024},
}

// Config controls the resources the funnel hands to the Parallel Hash
// Engine at every stage.
type Config struct {
	Workers   int
	Algorithm string
	// Progress, if non-nil, is called once per stage entered with the
	// stage name and the number of survivors entering it.
	Progress func(stageName string, survivors int)
}

// Result is the funnel's final output: S4 survivors grouped by their
// stage-4 digest within their original size class, ready for the
// Reporter.
type Result struct {
	DigestGroups []model.DigestGroup
}

// Run drives every Candidate through S1-S4 in order, terminating early
// once a stage's survivor set is empty, and returns the S4 digest
// groups.
func Run(ctx context.Context, candidates []model.Candidate) (Result, error) {
	return RunWithConfig(ctx, candidates, Config{})
}

// RunWithConfig is Run with explicit engine tuning, primarily so tests
// can force a small worker count or a specific digest algorithm.
func RunWithConfig(ctx context.Context, candidates []model.Candidate, cfg Config) (Result, error) {
	newHash, err := digest.Resolve(algorithmOrDefault(cfg.Algorithm))
	if err != nil {
		return Result{}, fmt.Errorf("funnel: %w", err)
	}

	survivors := candidates
	var lastGroups map[engine.Key][]model.Candidate

	for i, stage := range stages {
		if cfg.Progress != nil {
			cfg.Progress(stage.name, len(survivors))
		}
		if len(survivors) == 0 {
			return Result{}, nil
		}

		groups, err := engine.Run(ctx, survivors, engine.Config{
			Strategy:   stage.strategy,
			BufferSize: stage.bufferSize,
			Workers:    cfg.Workers,
			NewHash:    newHash,
		})
		if err != nil {
			return Result{}, fmt.Errorf("funnel: stage %q: %w", stage.name, err)
		}

		next := make([]model.Candidate, 0, len(survivors))
		for _, list := range groups {
			next = append(next, list...)
		}

		log.WithFields(log.Fields{
			"stage":    stage.name,
			"entered":  len(survivors),
			"survived": len(next),
			"groups":   len(groups),
		}).Debug("funnel: stage complete")

		survivors = next
		lastGroups = groups

		isLastStage := i == len(stages)-1
		if isLastStage {
			break
		}
		if len(survivors) == 0 {
			return Result{}, nil
		}
	}

	if len(survivors) == 0 {
		return Result{}, nil
	}

	digestGroups := make([]model.DigestGroup, 0, len(lastGroups))
	for _, list := range lastGroups {
		digestGroups = append(digestGroups, model.DigestGroup{
			Digest:     list[0].Digest,
			Candidates: list,
		})
	}

	return Result{DigestGroups: digestGroups}, nil
}

func algorithmOrDefault(name string) string {
	if name == "" {
		return digest.HighwayHash
	}
	return name
}
