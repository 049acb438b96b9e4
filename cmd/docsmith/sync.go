package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docsmith"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	pc, err := loadProject(deps)
	if err != nil {
		return err
	}

	deps.progress("scanning")
	files, err := deps.Scanner.Scan(deps.Ctx)
	if err != nil {
		deps.suggest("docsmith sync")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}

	changed, removed := applyScan(pc, files, deps.now())
	if changed > 0 || removed > 0 {
		if err := saveProject(deps, pc); err != nil {
			deps.suggest("docsmith sync")
			return err
		}
	}

	deps.suggest("docsmith build")
	fmt.Fprintf(deps.Stdout, "Synced %d files: %d changed, %d removed\n", len(files), changed, removed)
	return nil
}

// applyScan updates the content inventory with a scan result and returns the
// number of new or modified files and the number of files that disappeared.
// Any difference stamps the inventory's last content update with now.
func applyScan(pc *docsmith.ProjectContext, files []*docsmith.ContentFile, now time.Time) (changed, removed int) {
	pc.Normalize()

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Path] = true
		if pc.Content.Checksums[f.Path] == f.Checksum {
			continue
		}
		pc.Content.Checksums[f.Path] = f.Checksum
		pc.MarkGenerated(f.Path, f.ModTime.UTC())
		changed++
	}

	for path := range pc.Content.Checksums {
		if !present[path] {
			delete(pc.Content.Checksums, path)
			delete(pc.Content.GeneratedFiles, path)
			removed++
		}
	}

	if changed > 0 || removed > 0 {
		pc.Content.LastContentUpdate = &now
	}
	return changed, removed
}
