// Package engine partitions one stage's survivor Candidates round-robin
// across hardware-parallelism workers, computes each Candidate's stage
// digest independently, and merges the per-worker collision maps into a
// single mapping scoped by (size, digest).
package engine

import (
	"context"
	"encoding/hex"
	"runtime"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/n2fs/dupfind/internal/digest"
	"github.com/n2fs/dupfind/internal/model"
	"github.com/n2fs/dupfind/internal/sample"
)

// Config carries the shared, read-only configuration every worker uses.
type Config struct {
	Strategy   sample.Strategy
	BufferSize int
	Workers    int
	NewHash    digest.Factory
}

// Key scopes digest collisions by size so files of different sizes
// never share a group. Exported so the funnel can key its own
// per-stage survivor maps the same way.
type Key struct {
	Size   int64
	Digest string
}

type groupKey = Key

// Run computes the stage digest for every candidate and returns the
// merged (size, digest) -> Candidates mapping, retaining only groups
// with two or more members. Each returned Candidate has Digest
// populated with the digest it was grouped under.
func Run(ctx context.Context, candidates []model.Candidate, cfg Config) (map[Key][]model.Candidate, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) && len(candidates) > 0 {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	partitions := partition(candidates, workers)

	perWorker := make([]map[groupKey][]model.Candidate, len(partitions))

	g, gctx := errgroup.WithContext(ctx)
	for i, part := range partitions {
		i, part := i, part
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			result, err := runWorker(i, part, cfg)
			if err != nil {
				return err
			}
			perWorker[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[Key][]model.Candidate)
	for _, wm := range perWorker {
		for k, list := range wm {
			merged[k] = append(merged[k], list...)
		}
	}

	survivors := make(map[Key][]model.Candidate, len(merged))
	for k, list := range merged {
		if len(list) < 2 {
			continue
		}
		survivors[k] = list
	}

	return survivors, nil
}

// partition distributes candidates into `workers` lists by round-robin
// over input order.
func partition(candidates []model.Candidate, workers int) [][]model.Candidate {
	parts := make([][]model.Candidate, workers)
	for i, c := range candidates {
		w := i % workers
		parts[w] = append(parts[w], c)
	}
	return parts
}

// runWorker independently opens each assigned file, hashes it with the
// stage's sampling strategy, and inserts it into a worker-local map.
// A hashing failure degrades to the sentinel digest instead of
// aborting the worker.
func runWorker(id int, part []model.Candidate, cfg Config) (map[groupKey][]model.Candidate, error) {
	if len(part) == 0 {
		return nil, nil
	}

	h, err := cfg.NewHash()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, cfg.BufferSize)
	local := make(map[groupKey][]model.Candidate, len(part))

	var totalBytes uint64
	for _, c := range part {
		totalBytes += uint64(c.Size)
	}
	log.WithFields(log.Fields{"worker": id, "files": len(part), "bytes": humanize.Bytes(totalBytes)}).Debug("engine: worker started")

	for _, c := range part {
		h.Reset()

		var digestBytes []byte
		if err := sample.Feed(h, c.Path, c.Size, cfg.Strategy, buf); err != nil {
			log.WithFields(log.Fields{"worker": id, "path": c.Path, "err": err}).Debug("engine: read failed, using sentinel digest")
			digestBytes = digest.Sentinel(h.Size())
		} else {
			digestBytes = h.Sum(nil)
		}

		c.Digest = digestBytes
		key := Key{Size: c.Size, Digest: hex.EncodeToString(digestBytes)}
		local[key] = append(local[key], c)
	}

	log.WithFields(log.Fields{"worker": id}).Debug("engine: worker finished")

	return local, nil
}
