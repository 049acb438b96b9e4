package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Backup is a timestamped copy of a previous document version.
type Backup struct {
	Name string
	Path string
	Time time.Time
}

// ListBackups returns the backups in dir whose names start with prefix,
// newest first. Files without a parsable epoch-ms timestamp are ignored.
// A missing directory yields no backups.
func ListBackups(dir, prefix string) ([]*Backup, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var backups []*Backup
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		ms, ok := parseBackupMillis(e.Name(), prefix)
		if !ok {
			continue
		}
		backups = append(backups, &Backup{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Time: time.UnixMilli(ms).UTC(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Time.Equal(backups[j].Time) {
			return backups[i].Time.After(backups[j].Time)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// PruneBackups deletes all but the keep most recent backups matching prefix.
// The backup named protect is never deleted. Only files that already exist
// under their final name are considered, so a backup still being written is
// safe. It returns the paths it removed.
func PruneBackups(dir, prefix string, keep int, protect string) ([]string, error) {
	backups, err := ListBackups(dir, prefix)
	if err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}

	var removed []string
	var errs []error
	for i, b := range backups {
		if i < keep || b.Name == protect {
			continue
		}
		if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, b.Path)
	}
	return removed, errors.Join(errs...)
}

// nextBackupPath returns an unused backup path for now. The timestamp is
// moved past the newest existing backup so that name order always matches
// write order, even when writes land in the same millisecond.
func nextBackupPath(dir, prefix, ext string, now time.Time) string {
	ms := now.UnixMilli()
	if backups, _ := ListBackups(dir, prefix); len(backups) > 0 {
		if newest := backups[0].Time.UnixMilli(); newest >= ms {
			ms = newest + 1
		}
	}
	for {
		path := filepath.Join(dir, fmt.Sprintf("%s%d%s", prefix, ms, ext))
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path
		}
		ms++
	}
}

func parseBackupMillis(name, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(name, prefix)
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	ms, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || ms < 0 {
		return 0, false
	}
	return ms, true
}
