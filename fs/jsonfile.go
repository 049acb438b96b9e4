package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsmith"
)

// JSONFile reads and writes one JSON document with all-or-nothing semantics.
// The document is written to a temp file in the same directory and renamed
// over Path, so readers see either the old or the new version. Before each
// overwrite the previous version is copied into BackupDir.
type JSONFile struct {
	Path         string
	BackupDir    string // empty disables backups
	BackupPrefix string

	Options
}

// WriteResult describes a successful write.
type WriteResult struct {
	// Backup is the path of the copy taken of the previous version.
	Backup string

	// Degraded is true when the atomic rename failed and the document was
	// written in place instead. Such a write is not crash-safe.
	Degraded bool

	// Pruned lists backups removed by rotation.
	Pruned []string
}

// NewJSONFile returns a JSONFile for path.
func NewJSONFile(path, backupDir, backupPrefix string, opts Options) *JSONFile {
	return &JSONFile{
		Path:         path,
		BackupDir:    backupDir,
		BackupPrefix: backupPrefix,
		Options:      opts,
	}
}

// Read decodes the document into v.
// Returns ENOTFOUND if the file does not exist and ECORRUPT if it does not
// parse; v must be discarded in both cases.
func (f *JSONFile) Read(v any) error {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return docsmith.Errorf(docsmith.ENOTFOUND, "%s not found", filepath.Base(f.Path))
	} else if err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		f.logger().Warn("state file is not valid JSON, ignoring it",
			"path", f.Path,
			"err", err,
		)
		return docsmith.Errorf(docsmith.ECORRUPT, "%s is not valid JSON: %v", filepath.Base(f.Path), err)
	}
	return nil
}

// Write replaces the document with v.
// On any error before the rename the temp file is removed and Path is left
// untouched.
func (f *JSONFile) Write(v any) (*WriteResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", filepath.Base(f.Path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f.removeStaleTemps()

	tmp, err := writeTemp(dir, filepath.Base(f.Path)+".*.tmp", data)
	if err != nil {
		return nil, err
	}

	result := &WriteResult{}
	result.Backup, err = f.backup()
	if err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("backup %s: %w", filepath.Base(f.Path), err)
	}

	if err := f.rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		f.logger().Warn("atomic rename failed, writing in place",
			"path", f.Path,
			"err", err,
		)
		if werr := os.WriteFile(f.Path, data, 0644); werr != nil {
			return nil, fmt.Errorf("write %s: rename failed (%v) and direct write failed: %w", filepath.Base(f.Path), err, werr)
		}
		result.Degraded = true
	}
	syncDir(dir)

	if result.Backup != "" {
		pruned, err := PruneBackups(f.BackupDir, f.BackupPrefix, f.keep(), filepath.Base(result.Backup))
		if err != nil {
			f.logger().Warn("backup rotation failed", "dir", f.BackupDir, "err", err)
		}
		result.Pruned = pruned
	}

	return result, nil
}

func (f *JSONFile) rename(oldpath, newpath string) error {
	if f.Rename != nil {
		return f.Rename(oldpath, newpath)
	}
	return os.Rename(oldpath, newpath)
}

// backup copies the current document into BackupDir. It returns the empty
// string when there is nothing to back up.
func (f *JSONFile) backup() (string, error) {
	if f.BackupDir == "" {
		return "", nil
	}

	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	if !json.Valid(data) {
		f.logger().Warn("not backing up unreadable document", "path", f.Path)
		return "", nil
	}

	if err := os.MkdirAll(f.BackupDir, 0755); err != nil {
		return "", err
	}

	path := nextBackupPath(f.BackupDir, f.BackupPrefix, filepath.Ext(f.Path), f.now())

	// The temp name does not carry the prefix, so rotation never sees a
	// half-written backup.
	tmp, err := writeTemp(f.BackupDir, ".backup-*.tmp", data)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// degradedError returns an EDEGRADED error for a write that fell back to
// writing in place, and nil otherwise.
func degradedError(r *WriteResult, path string) error {
	if r == nil || !r.Degraded {
		return nil
	}
	return docsmith.Errorf(docsmith.EDEGRADED, "%s was written in place without an atomic rename", filepath.Base(path))
}

// removeStaleTemps deletes temp files left behind by an interrupted write.
func (f *JSONFile) removeStaleTemps() {
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(f.Path), filepath.Base(f.Path)+".*.tmp"))
	for _, m := range matches {
		_ = os.Remove(m)
	}
}

// writeTemp writes data to a new temp file in dir and syncs it to disk.
func writeTemp(dir, pattern string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// syncDir flushes directory metadata so a completed rename survives power loss.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
