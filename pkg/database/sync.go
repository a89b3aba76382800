// pkg/database/sync.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmp/adrcore/pkg/object"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// Sync reads every archive file in dir (as produced by the out-of-scope
// AIXM/ADR parser: one file per Object, named by UUID) and saves each
// decoded Object in turn, adapting the teacher's pkg/aviation/db.go
// snapshot load to bbolt's incremental Save. The bulk save is not
// atomic: a file that fails to decode is logged and skipped, and a
// failed Save returns an error while the files saved before it stay
// saved. It returns the number of Objects saved. Independent files are decoded
// concurrently (golang.org/x/sync/errgroup, already a teacher dependency
// for its lower-level primitives); the Save calls themselves serialize
// through Database's own guard, so the parallelism only buys back decode
// time, not write time.
func (d *Database) Sync(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("database: sync %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	saved := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			obj, err := loadArchiveFile(path)
			if err != nil {
				d.log.Warnf("database: sync skipping %s: %v", path, err)
				return nil
			}
			if err := d.Save(obj); err != nil {
				return fmt.Errorf("sync %s: %w", path, err)
			}
			mu.Lock()
			saved++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return saved, err
	}
	return saved, nil
}

// loadArchiveFile decodes one object archive file. The UUID is derived
// from the file's basename (without extension) via adruuid.Parse, which
// falls back to deriving a name-based UUID for any non-canonical string
// the upstream parser might emit.
func loadArchiveFile(path string) (object.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	id := adruuid.Parse(base)

	return decodeObjectArchive(id, data)
}
