package pipeline

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabioluciano/profile-analyzer/internal/config"
	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
	"github.com/fabioluciano/profile-analyzer/internal/llm"
	"github.com/fabioluciano/profile-analyzer/internal/models"
)

type stubClient struct {
	starred  []models.Repository
	owned    []models.Repository
	events   []models.Event
	fetchErr error
}

func (s *stubClient) FetchUser(ctx context.Context, username string) (models.UserProfile, error) {
	if s.fetchErr != nil {
		return models.UserProfile{}, s.fetchErr
	}
	return models.UserProfile{Login: username}, nil
}

func (s *stubClient) FetchStarred(ctx context.Context, username string) ([]models.Repository, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.starred, nil
}

func (s *stubClient) FetchOwnedRepos(ctx context.Context, username string) ([]models.Repository, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.owned, nil
}

func (s *stubClient) FetchEvents(ctx context.Context, username string) ([]models.Event, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.events, nil
}

type stubStore struct {
	previous *models.Snapshot
	loadErr  error
	saveErr  error
	saved    *models.Snapshot
}

func (s *stubStore) Load() (*models.Snapshot, error) {
	return s.previous, s.loadErr
}

func (s *stubStore) Save(snap *models.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = snap
	return nil
}

type stubGenerator struct {
	content map[string]string
	err     error
	payload llm.Payload
	called  bool
}

func (s *stubGenerator) Generate(ctx context.Context, payload llm.Payload) (map[string]string, error) {
	s.called = true
	s.payload = payload
	if s.err != nil {
		return nil, s.err
	}
	return s.content, nil
}

type stubExporter struct {
	err     error
	written map[string]string
	called  bool
}

func (s *stubExporter) WriteReadmes(content map[string]string, languages []string) error {
	s.called = true
	if s.err != nil {
		return s.err
	}
	s.written = content
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testFixture() (*config.Config, *stubClient, *stubStore, *stubGenerator, *stubExporter) {
	cfg := config.Default()
	cfg.GitHub.Username = "octocat"

	client := &stubClient{
		starred: []models.Repository{
			{Owner: "alice", Name: "alpha", FullName: "alice/alpha", Language: "Go", Topics: []string{"cli"}},
		},
		owned: []models.Repository{
			{Owner: "octocat", Name: "hello", FullName: "octocat/hello", Language: "Go"},
		},
		events: []models.Event{
			{Type: "PushEvent", Repo: "octocat/hello", CommitMessages: []string{"init"}, CreatedAt: time.Now()},
		},
	}
	store := &stubStore{}
	generator := &stubGenerator{content: map[string]string{"pt-br": "# Perfil", "en": "# Profile"}}
	exporter := &stubExporter{}

	return cfg, client, store, generator, exporter
}

func TestRun_Success(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	result, err := o.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Starred)
	assert.Equal(t, 1, result.Owned)
	assert.Equal(t, 1, result.Events)

	// Generation saw the fetched snapshot and the configured window
	require.True(t, generator.called)
	assert.Equal(t, "octocat", generator.payload.Snapshot.User.Login)
	assert.Equal(t, cfg.Analysis.RecentDays, generator.payload.RecentDays)
	assert.Equal(t, cfg.Output.Languages, generator.payload.Languages)

	// Export got the generated content, and only then was the snapshot saved
	require.True(t, exporter.called)
	assert.Equal(t, generator.content, exporter.written)
	require.NotNil(t, store.saved)
	assert.Len(t, store.saved.Starred, 1)
}

func TestRun_FirstRunDiff(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	result, err := o.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.AddedStars)
	assert.True(t, generator.payload.Diff.FirstRun)
}

func TestRun_FetchErrorAbortsBeforeExport(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	client.fetchErr = apperrors.FetchError(assert.AnError, "boom")
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	result, err := o.Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeFetch, apperrors.GetType(err))
	assert.False(t, generator.called)
	assert.False(t, exporter.called)
	assert.Nil(t, store.saved)
}

func TestRun_GenerationErrorSkipsExportAndSave(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	generator.err = apperrors.GenerationError(assert.AnError, "model unavailable")
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	_, err := o.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeGeneration, apperrors.GetType(err))
	assert.False(t, exporter.called)
	assert.Nil(t, store.saved)
}

func TestRun_ExportErrorSkipsSave(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	exporter.err = apperrors.ExportError(assert.AnError, "disk full")
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	_, err := o.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExport, apperrors.GetType(err))
	// Baseline untouched: the next run diffs against the old snapshot
	assert.Nil(t, store.saved)
}

func TestRun_LoadErrorAborts(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	store.loadErr = apperrors.FileSystemError(assert.AnError, "corrupt snapshot")
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	_, err := o.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeFileSystem, apperrors.GetType(err))
	assert.False(t, generator.called)
}

func TestRun_DiffsAgainstPreviousSnapshot(t *testing.T) {
	cfg, client, store, generator, exporter := testFixture()
	store.previous = &models.Snapshot{
		Starred: []models.Repository{
			{Owner: "alice", Name: "alpha", FullName: "alice/alpha"},
			{Owner: "gone", Name: "repo", FullName: "gone/repo"},
		},
	}
	o := NewOrchestrator(cfg, client, store, generator, exporter, quietLogger())

	result, err := o.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, generator.payload.Diff.FirstRun)
	assert.Equal(t, 0, result.AddedStars)
	assert.Equal(t, 1, result.RemovedStars)
}
