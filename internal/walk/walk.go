// Package walk implements the Enumerator stage of the pipeline: a lazy,
// symlink-skipping, permission-tolerant recursive walk over one or more
// filesystem roots.
package walk

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/n2fs/dupfind/internal/model"
)

// ValidRoots stats every requested root and returns the subset that
// exist and are directories, logging a debug line for each one skipped.
// Returns an error only when none of the requested roots are usable.
func ValidRoots(roots []string) ([]string, error) {
	valid := make([]string, 0, len(roots))
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			log.WithField("root", root).Debug("skipping root: not a readable directory")
			continue
		}
		valid = append(valid, root)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no usable root among %v", roots)
	}
	return valid, nil
}

// Enumerate walks every root recursively and yields a FileEntry for
// each regular file it can stat. Callers should pass ValidRoots'
// output; Enumerate assumes each root has already been proven to be a
// readable directory and does not fail the whole run if a root turns
// out to be a dangling reference. Symlinks are never followed:
// fs.DirEntry.Type() is Lstat-based, so a symlink simply never matches
// IsRegular and is skipped. Directories that cannot be read due to
// permissions are skipped silently; the walk continues with sibling
// entries.
func Enumerate(roots []string) iter.Seq[model.FileEntry] {
	return func(yield func(model.FileEntry) bool) {
		for _, root := range roots {
			stop := false
			walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if stop {
					return filepath.SkipAll
				}
				if err != nil {
					log.WithFields(log.Fields{"path": path, "err": err}).Debug("enumerator: skipping unreadable entry")
					return nil
				}
				if d.IsDir() {
					return nil
				}
				if !d.Type().IsRegular() {
					return nil
				}

				fi, statErr := d.Info()
				if statErr != nil {
					log.WithFields(log.Fields{"path": path, "err": statErr}).Debug("enumerator: skipping entry with unreadable size")
					return nil
				}

				if !yield(model.FileEntry{Path: path, Size: fi.Size()}) {
					stop = true
					return filepath.SkipAll
				}
				return nil
			})
			if walkErr != nil {
				log.WithFields(log.Fields{"root": root, "err": walkErr}).Debug("enumerator: walk ended early")
			}
			if stop {
				return
			}
		}
	}
}
