package fs

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/docsmith"
)

// Ensure ContextService implements docsmith.ContextService at compile time.
var _ docsmith.ContextService = (*ContextService)(nil)

// ContextService implements docsmith.ContextService on top of a JSONFile.
type ContextService struct {
	file *JSONFile

	// DefaultName names the project when a corrupt document has no readable
	// backup. Defaults to the base name of the state directory's parent.
	DefaultName string

	Options
}

// NewContextService returns a ContextService for the layout.
func NewContextService(layout Layout, opts Options) *ContextService {
	return &ContextService{
		file:        NewJSONFile(layout.ContextPath(), layout.BackupDir(), ContextBackupPrefix, opts),
		DefaultName: filepath.Base(filepath.Dir(layout.Dir)),
		Options:     opts,
	}
}

// InitContext writes a brand-new project document. Errors are returned to
// the caller since a project that cannot be written cannot be created. A
// corrupt existing document is overwritten.
func (s *ContextService) InitContext(ctx context.Context, pc *docsmith.ProjectContext) error {
	if err := pc.Validate(); err != nil {
		return err
	}
	switch err := s.file.Read(docsmith.NewProjectContext()); docsmith.ErrorCode(err) {
	case "":
		return docsmith.Errorf(docsmith.ECONFLICT, "project already initialized")
	case docsmith.ECORRUPT:
		s.logger().Warn("replacing unreadable project context", "path", s.file.Path)
	case docsmith.ENOTFOUND:
	default:
		return err
	}

	pc.Normalize()
	now := s.now()
	pc.Project.CreatedAt = now
	pc.Project.LastUpdatedAt = now
	if pc.Project.Status == "" || pc.Project.Status == "uninitialized" {
		pc.Project.Status = "initialized"
	}

	res, err := s.file.Write(pc)
	if err != nil {
		return err
	}
	return degradedError(res, s.file.Path)
}

// LoadContext reads the project document. A corrupt document is recovered
// from the newest backup that parses and validates; without one the default
// document is returned. Either way the next save repairs the file.
func (s *ContextService) LoadContext(ctx context.Context) (*docsmith.ProjectContext, error) {
	pc := docsmith.NewProjectContext()
	if err := s.file.Read(pc); err != nil {
		if docsmith.ErrorCode(err) != docsmith.ECORRUPT {
			return nil, err
		}
		return s.fromBackup(), nil
	}
	pc.Normalize()
	return pc, nil
}

func (s *ContextService) fromBackup() *docsmith.ProjectContext {
	backups, err := ListBackups(s.file.BackupDir, ContextBackupPrefix)
	if err != nil {
		s.logger().Warn("cannot list project context backups", "dir", s.file.BackupDir, "err", err)
	}
	for _, b := range backups {
		pc := docsmith.NewProjectContext()
		if err := NewJSONFile(b.Path, "", "", s.Options).Read(pc); err != nil {
			continue
		}
		if pc.Validate() != nil {
			continue
		}
		pc.Normalize()
		s.logger().Warn("recovered project context from backup", "path", s.file.Path, "backup", b.Name)
		return pc
	}

	s.logger().Warn("no readable project context backup, using defaults", "path", s.file.Path)
	pc := docsmith.NewProjectContext()
	pc.Project.Name = s.DefaultName
	pc.Project.Status = "initialized"
	pc.Project.CreatedAt = s.now()
	return pc
}

// SaveContext overwrites the project document. LastUpdatedAt is only
// advanced when the write succeeds.
func (s *ContextService) SaveContext(ctx context.Context, pc *docsmith.ProjectContext) error {
	if err := pc.Validate(); err != nil {
		return err
	}

	doc := *pc
	doc.Project.LastUpdatedAt = s.now()
	res, err := s.file.Write(&doc)
	if err != nil {
		return err
	}
	pc.Project.LastUpdatedAt = doc.Project.LastUpdatedAt
	return degradedError(res, s.file.Path)
}
