// Package library lists the beatmaps installed under the oshu home.
//
// The layout is one directory per song, holding the .osu files of its
// difficulties next to their audio and background files:
//
//	$OSHU_HOME/beatmaps/<song>/<difficulty>.osu
package library

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/automoto/oshu/beatmap"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Entry summarises one difficulty.
type Entry struct {
	Path     string
	Artist   string
	Title    string
	Version  string
	Creator  string
	Hits     int
	Duration float64
}

// Scan decodes every .osu file one level below root. Files that fail to
// decode are logged and left out; only an unreadable root is an error.
func Scan(ctx context.Context, root string, loader beatmap.Loader) ([]Entry, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read beatmap library: %w", err)
	}

	var paths []string
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(root, d.Name(), "*.osu"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}

	var (
		mu      sync.Mutex
		entries = make([]Entry, 0, len(paths))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := loader.Load(path)
			if err != nil {
				log.Warn("skipping beatmap", "path", path, "error", err)
				return nil
			}
			e := Entry{
				Path:     path,
				Artist:   b.Metadata.DisplayArtist(),
				Title:    b.Metadata.DisplayTitle(),
				Version:  b.Metadata.Version,
				Creator:  b.Metadata.Creator,
				Hits:     b.Len(),
				Duration: b.Duration(),
			}
			mu.Lock()
			entries = append(entries, e)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Artist, b.Artist),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.Version, b.Version),
			cmp.Compare(a.Path, b.Path),
		)
	})
	return entries, nil
}
