// Package walker enumerates the files of a directory tree into scan targets.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ahrav/piisweep/internal/domain/scanning"
	"github.com/ahrav/piisweep/pkg/common/logger"
)

// Walker produces the flat list of regular files under a scan root. It does
// no filtering and reads no file contents; symlink-cycle protection is out of
// scope, traversal assumes an acyclic local file system.
type Walker struct {
	logger *logger.Logger
}

// New creates a Walker.
func New(log *logger.Logger) *Walker {
	return &Walker{logger: log.With("component", "walker")}
}

// Walk returns a ScanTarget for every regular file reachable from root by
// recursive descent, as absolute paths, in no particular order. Directories
// that cannot be read are skipped and logged rather than failing the run; an
// error is returned only when root itself cannot be resolved or read. An
// empty tree yields an empty slice.
func (w *Walker) Walk(ctx context.Context, root string) ([]scanning.ScanTarget, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving scan root: %w", err)
	}

	var targets []scanning.ScanTarget
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			w.logger.Warn(ctx, "Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		targets = append(targets, scanning.NewScanTarget(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}

	return targets, nil
}
