package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsmith"
	"golang.org/x/sync/errgroup"
)

// Ensure ContentScanner implements docsmith.ContentScanner at compile time.
var _ docsmith.ContentScanner = (*ContentScanner)(nil)

// ContentScanner hashes the files under a content directory.
type ContentScanner struct {
	Dir         string
	Concurrency int
}

// NewContentScanner returns a ContentScanner for dir.
func NewContentScanner(dir string) *ContentScanner {
	return &ContentScanner{Dir: dir, Concurrency: 8}
}

// Scan returns every regular file under Dir, skipping dot-files and
// dot-directories, sorted by slash-separated relative path. A missing
// directory yields no files.
func (s *ContentScanner) Scan(ctx context.Context) ([]*docsmith.ContentFile, error) {
	var paths []string
	err := filepath.WalkDir(s.Dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != s.Dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return []*docsmith.ContentFile{}, nil
	} else if err != nil {
		return nil, err
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	files := make([]*docsmith.ContentFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := s.hashFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *ContentScanner) hashFile(path string) (*docsmith.ContentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(s.Dir, path)
	if err != nil {
		return nil, err
	}
	return &docsmith.ContentFile{
		Path:     filepath.ToSlash(rel),
		Checksum: fmt.Sprintf("%016x", xxhash.Sum64(data)),
		ModTime:  info.ModTime().UTC(),
	}, nil
}
