package fs_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docsmith"
	"github.com/fwojciec/docsmith/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Project Context Persistence

func newTestContexts(t *testing.T, c *clock) (*fs.ContextService, fs.Layout) {
	t.Helper()
	layout := fs.NewLayout(filepath.Join(t.TempDir(), ".docsmith"))
	return fs.NewContextService(layout, fs.Options{Now: c.Now}), layout
}

func demoProject() *docsmith.ProjectContext {
	pc := docsmith.NewProjectContext()
	pc.Project.Name = "demo"
	return pc
}

func TestContextService_InitThenLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	svc, _ := newTestContexts(t, c)

	// When I initialize a project
	require.NoError(t, svc.InitContext(ctx, demoProject()))

	// Then loading returns it with timestamps set
	pc, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "demo", pc.Project.Name)
	assert.Equal(t, "initialized", pc.Project.Status)
	assert.Equal(t, docsmith.DefaultProjectType, pc.Project.Type)
	assert.True(t, c.now.Equal(pc.Project.CreatedAt))
	assert.True(t, c.now.Equal(pc.Project.LastUpdatedAt))
	assert.Nil(t, pc.Architecture.Theme)
	assert.NotNil(t, pc.Content.GeneratedFiles)
}

func TestContextService_InitTwiceConflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestContexts(t, newClock())
	require.NoError(t, svc.InitContext(ctx, demoProject()))

	err := svc.InitContext(ctx, demoProject())

	assert.Equal(t, docsmith.ECONFLICT, docsmith.ErrorCode(err))
}

func TestContextService_InitRequiresName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestContexts(t, newClock())

	err := svc.InitContext(context.Background(), docsmith.NewProjectContext())

	assert.Equal(t, docsmith.EINVALID, docsmith.ErrorCode(err))
}

func TestContextService_InitPropagatesWriteFailure(t *testing.T) {
	t.Parallel()

	// Given a state directory path that is occupied by a regular file
	dir := t.TempDir()
	blocker := filepath.Join(dir, ".docsmith")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	svc := fs.NewContextService(fs.NewLayout(blocker), fs.Options{})

	// When I initialize a project
	err := svc.InitContext(context.Background(), demoProject())

	// Then the failure reaches the caller
	require.Error(t, err)
}

func TestContextService_SaveStampsLastUpdatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	svc, layout := newTestContexts(t, c)
	require.NoError(t, svc.InitContext(ctx, demoProject()))

	// When I change the theme later
	c.Advance(time.Hour)
	pc, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	theme := "hugo-book"
	pc.Architecture.Theme = &theme
	require.NoError(t, svc.SaveContext(ctx, pc))

	// Then LastUpdatedAt moves but CreatedAt does not
	assert.True(t, c.now.Equal(pc.Project.LastUpdatedAt))
	got, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hugo-book", got.ThemeName())
	assert.True(t, c.now.Equal(got.Project.LastUpdatedAt))
	assert.True(t, c.now.Add(-time.Hour).Equal(got.Project.CreatedAt))

	// And the initial version was backed up
	backups, err := fs.ListBackups(layout.BackupDir(), fs.ContextBackupPrefix)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestContextService_LoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing project", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestContexts(t, newClock())

		_, err := svc.LoadContext(context.Background())

		assert.Equal(t, docsmith.ENOTFOUND, docsmith.ErrorCode(err))
	})

	t.Run("corrupt project without backups", func(t *testing.T) {
		t.Parallel()

		c := newClock()
		svc, layout := newTestContexts(t, c)
		require.NoError(t, os.MkdirAll(layout.Dir, 0755))
		require.NoError(t, os.WriteFile(layout.ContextPath(), []byte(`{"project":`), 0644))

		pc, err := svc.LoadContext(context.Background())

		require.NoError(t, err)
		assert.Equal(t, filepath.Base(filepath.Dir(layout.Dir)), pc.Project.Name)
		assert.Equal(t, "initialized", pc.Project.Status)
		assert.NoError(t, pc.Validate())
	})
}

func TestContextService_RecoversCorruptDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	svc, layout := newTestContexts(t, c)

	// Given a project whose theme was changed after init
	require.NoError(t, svc.InitContext(ctx, demoProject()))
	c.Advance(time.Minute)
	pc, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	theme := "hugo-book"
	pc.Architecture.Theme = &theme
	require.NoError(t, svc.SaveContext(ctx, pc))
	c.Advance(time.Minute)
	pc.Interactions.TotalCommands = 7
	require.NoError(t, svc.SaveContext(ctx, pc))

	// And the document was then truncated by a crash
	require.NoError(t, os.WriteFile(layout.ContextPath(), []byte(`{"project": {"na`), 0644))

	// When I load it
	got, err := svc.LoadContext(ctx)

	// Then the newest backup is returned
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Project.Name)
	assert.Equal(t, "hugo-book", got.ThemeName())
	assert.Zero(t, got.Interactions.TotalCommands)

	// And saving it repairs the file without backing up the corrupt copy
	before, err := fs.ListBackups(layout.BackupDir(), fs.ContextBackupPrefix)
	require.NoError(t, err)
	require.NoError(t, svc.SaveContext(ctx, got))
	after, err := fs.ListBackups(layout.BackupDir(), fs.ContextBackupPrefix)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	repaired, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hugo-book", repaired.ThemeName())
}

func TestContextService_RecoverySkipsUnreadableBackups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, layout := newTestContexts(t, newClock())
	require.NoError(t, svc.InitContext(ctx, demoProject()))
	pc, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.SaveContext(ctx, pc))

	// Given a newer backup that is itself damaged
	backups, err := fs.ListBackups(layout.BackupDir(), fs.ContextBackupPrefix)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	damaged := filepath.Join(layout.BackupDir(), fmt.Sprintf("%s%d.json", fs.ContextBackupPrefix, backups[0].Time.UnixMilli()+1))
	require.NoError(t, os.WriteFile(damaged, []byte("{"), 0644))
	require.NoError(t, os.WriteFile(layout.ContextPath(), []byte("{"), 0644))

	// When I load the corrupt document
	got, err := svc.LoadContext(ctx)

	// Then the older readable backup is used
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Project.Name)
}

func TestContextService_InitReplacesCorruptDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, layout := newTestContexts(t, newClock())
	require.NoError(t, os.MkdirAll(layout.Dir, 0755))
	require.NoError(t, os.WriteFile(layout.ContextPath(), []byte(`{"project": {"na`), 0644))

	require.NoError(t, svc.InitContext(ctx, demoProject()))

	pc, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "demo", pc.Project.Name)
}

func TestContextService_ReportsDegradedWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	layout := fs.NewLayout(filepath.Join(t.TempDir(), ".docsmith"))
	svc := fs.NewContextService(layout, fs.Options{
		Rename: func(oldpath, newpath string) error {
			return errors.New("invalid cross-device link")
		},
	})

	// When rename is unavailable, init still creates the project
	err := svc.InitContext(ctx, demoProject())
	assert.Equal(t, docsmith.EDEGRADED, docsmith.ErrorCode(err))

	// And saves report the degraded path while persisting the change
	pc, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	theme := "docsy"
	pc.Architecture.Theme = &theme
	err = svc.SaveContext(ctx, pc)
	assert.Equal(t, docsmith.EDEGRADED, docsmith.ErrorCode(err))

	got, err := svc.LoadContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "docsy", got.ThemeName())
}
