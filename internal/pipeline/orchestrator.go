// Package pipeline sequences one analysis run:
// fetch -> diff -> generate -> export -> save snapshot.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fabioluciano/profile-analyzer/internal/analysis"
	"github.com/fabioluciano/profile-analyzer/internal/config"
	"github.com/fabioluciano/profile-analyzer/internal/llm"
	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// Stage names the step a run is in; any failure short-circuits to Failed.
type Stage string

const (
	StageFetching   Stage = "fetching"
	StageDiffing    Stage = "diffing"
	StageGenerating Stage = "generating"
	StageExporting  Stage = "exporting"
	StageSaving     Stage = "saving"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// DataClient is the read-only GitHub surface the pipeline needs.
type DataClient interface {
	FetchUser(ctx context.Context, username string) (models.UserProfile, error)
	FetchStarred(ctx context.Context, username string) ([]models.Repository, error)
	FetchOwnedRepos(ctx context.Context, username string) ([]models.Repository, error)
	FetchEvents(ctx context.Context, username string) ([]models.Event, error)
}

// SnapshotStore loads the previous baseline and saves the new one.
type SnapshotStore interface {
	Load() (*models.Snapshot, error)
	Save(*models.Snapshot) error
}

// Exporter writes the generated README variants.
type Exporter interface {
	WriteReadmes(content map[string]string, languages []string) error
}

// Orchestrator coordinates one run. Strictly sequential: each stage
// blocks on its I/O and any error aborts the run. Re-running after a
// failure refetches everything; there is no checkpointing.
type Orchestrator struct {
	cfg       *config.Config
	client    DataClient
	store     SnapshotStore
	generator llm.Generator
	exporter  Exporter
	logger    *logrus.Logger
	now       func() time.Time
}

// NewOrchestrator creates a pipeline orchestrator.
func NewOrchestrator(
	cfg *config.Config,
	client DataClient,
	store SnapshotStore,
	generator llm.Generator,
	exporter Exporter,
	logger *logrus.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		client:    client,
		store:     store,
		generator: generator,
		exporter:  exporter,
		logger:    logger,
		now:       time.Now,
	}
}

// Result summarizes a completed run.
type Result struct {
	RunID        string
	Starred      int
	Owned        int
	Events       int
	AddedStars   int
	RemovedStars int
	Trending     int
	Duration     time.Duration
}

// Run executes the whole pipeline once. The snapshot is saved only after
// every README variant was exported, so a failed run never advances the
// diff baseline.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	start := o.now()
	runID := uuid.New().String()
	username := o.cfg.GitHub.Username

	log := o.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"user":   username,
	})

	fail := func(stage Stage, err error) (*Result, error) {
		log.WithField("stage", string(stage)).WithError(err).Error("Run failed")
		return nil, err
	}

	// Fetching
	log.WithField("stage", string(StageFetching)).Info("Fetching GitHub data")

	user, err := o.client.FetchUser(ctx, username)
	if err != nil {
		return fail(StageFetching, err)
	}
	starred, err := o.client.FetchStarred(ctx, username)
	if err != nil {
		return fail(StageFetching, err)
	}
	owned, err := o.client.FetchOwnedRepos(ctx, username)
	if err != nil {
		return fail(StageFetching, err)
	}
	events, err := o.client.FetchEvents(ctx, username)
	if err != nil {
		return fail(StageFetching, err)
	}

	current := &models.Snapshot{
		Timestamp: start,
		User:      user,
		Starred:   starred,
		Owned:     owned,
		Events:    events,
	}
	log.WithFields(logrus.Fields{
		"starred": len(starred),
		"owned":   len(owned),
		"events":  len(events),
	}).Info("Fetch complete")

	// Diffing
	log.WithField("stage", string(StageDiffing)).Info("Comparing against previous snapshot")

	previous, err := o.store.Load()
	if err != nil {
		return fail(StageDiffing, err)
	}

	since := start.AddDate(0, 0, -o.cfg.Analysis.RecentDays)
	diff := analysis.Compute(current, previous, analysis.Options{
		TrendThreshold:  o.cfg.Analysis.TrendThreshold,
		ActivitySince:   since,
		MaxCommitDetail: o.cfg.Analysis.MaxRecentCommits,
	})
	log.WithFields(logrus.Fields{
		"first_run": diff.FirstRun,
		"added":     len(diff.Added),
		"removed":   len(diff.Removed),
		"trending":  len(diff.Trending),
	}).Info("Diff complete")

	// Generating
	log.WithField("stage", string(StageGenerating)).Info("Generating README content")

	content, err := o.generator.Generate(ctx, llm.Payload{
		Snapshot:         current,
		Diff:             diff,
		Languages:        o.cfg.Output.Languages,
		RecentSince:      since,
		RecentDays:       o.cfg.Analysis.RecentDays,
		MaxRecentStars:   o.cfg.Analysis.MaxRecentStars,
		MaxActiveRepos:   o.cfg.Analysis.MaxActiveRepos,
		MaxRecentCommits: o.cfg.Analysis.MaxRecentCommits,
	})
	if err != nil {
		return fail(StageGenerating, err)
	}

	// Exporting
	log.WithField("stage", string(StageExporting)).Info("Writing README files")

	if err := o.exporter.WriteReadmes(content, o.cfg.Output.Languages); err != nil {
		return fail(StageExporting, err)
	}

	// Saving
	log.WithField("stage", string(StageSaving)).Info("Saving snapshot")

	if err := o.store.Save(current); err != nil {
		return fail(StageSaving, err)
	}

	result := &Result{
		RunID:        runID,
		Starred:      len(starred),
		Owned:        len(owned),
		Events:       len(events),
		AddedStars:   len(diff.Added),
		RemovedStars: len(diff.Removed),
		Trending:     len(diff.Trending),
		Duration:     o.now().Sub(start),
	}

	log.WithFields(logrus.Fields{
		"stage":    string(StageDone),
		"duration": result.Duration.String(),
	}).Info("Run complete")

	return result, nil
}
