package updater_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lakshitcodes/DocuMed/internal/config"
	"github.com/lakshitcodes/DocuMed/internal/harvest"
	"github.com/lakshitcodes/DocuMed/internal/indexer"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/storage"
	storagemocks "github.com/lakshitcodes/DocuMed/internal/storage/mocks"
	"github.com/lakshitcodes/DocuMed/internal/updater"
	"github.com/lakshitcodes/DocuMed/internal/updater/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var (
	testNow     = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testSources = []config.Source{{Name: "PubMed", URL: config.DefaultSourceURL, Type: paper.SourcePubMed}}
	testRecords = []paper.Record{{Title: "A", Abstract: "x", Source: "PubMed"}, {Title: "B", Abstract: "y", Source: "PubMed"}}
)

type fixture struct {
	harvester *mocks.MockHarvester
	indexer   *mocks.MockRecordIndexer
	runs      *storagemocks.MockRunStore
	state     *updater.StateFile
	updater   *updater.Updater
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	state, err := updater.OpenStateFile(filepath.Join(t.TempDir(), "data", "update_state.json"))
	if err != nil {
		t.Fatalf("OpenStateFile() error = %v", err)
	}
	f := &fixture{
		harvester: mocks.NewMockHarvester(ctrl),
		indexer:   mocks.NewMockRecordIndexer(ctrl),
		runs:      storagemocks.NewMockRunStore(ctrl),
		state:     state,
	}
	f.updater = updater.New(f.harvester, f.indexer, f.runs, testSources, state, 12*time.Hour,
		updater.WithClock(func() time.Time { return testNow }))
	return f
}

func harvestResult() *harvest.Result {
	return &harvest.Result{
		Records: testRecords,
		Sources: []harvest.SourceReport{
			{Name: "PubMed", Type: paper.SourcePubMed, URL: config.DefaultSourceURL, Count: 2},
			{Name: "Nature", Type: paper.SourceNature, URL: "https://www.nature.com/x", Err: &harvest.SourceError{Source: "Nature", Err: errors.New("bad status 403")}},
		},
		SnapshotPath: "/tmp/papers_20240601.json",
	}
}

func TestUpdater_Run_Success(t *testing.T) {
	f := newFixture(t)

	f.harvester.EXPECT().Harvest(gomock.Any(), testSources).Return(harvestResult(), nil)
	f.indexer.EXPECT().IndexRecords(gomock.Any(), testRecords).Return(&indexer.IndexingStats{ChunksIndexed: 2}, nil)

	var recorded *storage.HarvestRun
	f.runs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *storage.HarvestRun) error {
		recorded = run
		return nil
	})

	report, err := f.updater.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if recorded == nil || recorded.ID == "" {
		t.Fatal("Run() did not record the harvest run")
	}
	if recorded.RecordCount != 2 || recorded.ChunkCount != 2 || recorded.Error != "" {
		t.Errorf("recorded run = %+v", recorded)
	}
	if len(recorded.Sources) != 2 || recorded.Sources[0].Type != "pubmed" || recorded.Sources[1].Error == "" {
		t.Errorf("recorded sources = %+v", recorded.Sources)
	}
	if report.Stats.ChunksIndexed != 2 {
		t.Errorf("report stats = %+v", report.Stats)
	}

	state := f.updater.State()
	if !state.LastUpdate.Equal(testNow) || !state.NextUpdate.Equal(testNow.Add(12*time.Hour)) {
		t.Errorf("State() = %+v", state)
	}

	data, err := os.ReadFile(f.state.Path())
	if err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	var onDisk map[string]string
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("state file is not JSON: %v", err)
	}
	if onDisk["last_update"] != "2024-06-01T12:00:00Z" || onDisk["next_update"] != "2024-06-02T00:00:00Z" {
		t.Errorf("state file = %s", data)
	}
}

func TestUpdater_Run_SnapshotFailureStillIndexes(t *testing.T) {
	f := newFixture(t)

	res := harvestResult()
	res.SnapshotPath = ""
	f.harvester.EXPECT().Harvest(gomock.Any(), gomock.Any()).Return(res, errors.New("failed to write snapshot: disk full"))
	f.indexer.EXPECT().IndexRecords(gomock.Any(), testRecords).Return(&indexer.IndexingStats{ChunksIndexed: 2}, nil)
	f.runs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *storage.HarvestRun) error {
		if run.Error == "" {
			t.Error("run should carry the snapshot error")
		}
		return nil
	})

	if _, err := f.updater.Run(context.Background()); err == nil {
		t.Fatal("Run() expected snapshot error, got nil")
	}
	if f.updater.State().LastUpdate.IsZero() {
		t.Error("schedule should advance once records are indexed")
	}
}

func TestUpdater_Run_IndexFailureKeepsSchedule(t *testing.T) {
	f := newFixture(t)

	f.harvester.EXPECT().Harvest(gomock.Any(), gomock.Any()).Return(harvestResult(), nil)
	f.indexer.EXPECT().IndexRecords(gomock.Any(), gomock.Any()).Return(&indexer.IndexingStats{}, errors.New("embedding service down"))
	f.runs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	if _, err := f.updater.Run(context.Background()); err == nil {
		t.Fatal("Run() expected error, got nil")
	}
	if !f.updater.State().LastUpdate.IsZero() {
		t.Error("schedule should not advance when indexing fails")
	}
	if _, err := os.Stat(f.state.Path()); !os.IsNotExist(err) {
		t.Errorf("state file should not exist, stat error = %v", err)
	}
}

func TestUpdater_RejectsConcurrentUpdates(t *testing.T) {
	f := newFixture(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.harvester.EXPECT().Harvest(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, []config.Source) (*harvest.Result, error) {
		close(entered)
		<-release
		return harvestResult(), nil
	}).Times(1)
	f.indexer.EXPECT().IndexRecords(gomock.Any(), gomock.Any()).Return(&indexer.IndexingStats{}, nil)
	f.runs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.updater.Run(context.Background())
		done <- err
	}()
	<-entered

	if !f.updater.InProgress() {
		t.Error("InProgress() = false during an update")
	}
	if _, err := f.updater.Run(context.Background()); !errors.Is(err, updater.ErrUpdateInProgress) {
		t.Errorf("second Run() error = %v, want ErrUpdateInProgress", err)
	}
	if err := f.updater.Trigger(context.Background()); !errors.Is(err, updater.ErrUpdateInProgress) {
		t.Errorf("Trigger() error = %v, want ErrUpdateInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if f.updater.InProgress() {
		t.Error("InProgress() = true after the update finished")
	}
}

func TestUpdater_Trigger_RunsInBackground(t *testing.T) {
	f := newFixture(t)

	recorded := make(chan struct{})
	f.harvester.EXPECT().Harvest(gomock.Any(), gomock.Any()).Return(harvestResult(), nil)
	f.indexer.EXPECT().IndexRecords(gomock.Any(), gomock.Any()).Return(&indexer.IndexingStats{}, nil)
	f.runs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *storage.HarvestRun) error {
		close(recorded)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	if err := f.updater.Trigger(ctx); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	// Cancelling the request context does not abort the update.
	cancel()

	select {
	case <-recorded:
	case <-time.After(5 * time.Second):
		t.Fatal("triggered update did not run")
	}
	// Let the update finish writing state before TempDir cleanup.
	deadline := time.Now().Add(5 * time.Second)
	for f.updater.InProgress() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.updater.State().LastUpdate.IsZero() {
		t.Error("triggered update did not save state")
	}
}

func TestUpdater_Start_RunsImmediatelyWhenDue(t *testing.T) {
	f := newFixture(t)

	recorded := make(chan struct{})
	f.harvester.EXPECT().Harvest(gomock.Any(), gomock.Any()).Return(harvestResult(), nil)
	f.indexer.EXPECT().IndexRecords(gomock.Any(), gomock.Any()).Return(&indexer.IndexingStats{}, nil)
	f.runs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *storage.HarvestRun) error {
		close(recorded)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := f.updater.Start(ctx)

	select {
	case <-recorded:
	case <-time.After(5 * time.Second):
		t.Fatal("startup update did not run")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("update loop did not stop")
	}
}

func TestUpdater_Start_WaitsForNextUpdate(t *testing.T) {
	f := newFixture(t)
	if err := f.state.Save(updater.State{LastUpdate: testNow, NextUpdate: testNow.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	// No harvest is expected before the context ends.

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	<-f.updater.Start(ctx)
}

func TestOpenStateFile(t *testing.T) {
	dir := t.TempDir()

	missing, err := updater.OpenStateFile(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("OpenStateFile() missing file error = %v", err)
	}
	if !missing.Current().NextUpdate.IsZero() {
		t.Error("missing state file should yield zero state")
	}

	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte(`{"last_update":"2024-05-31T00:00:00Z","next_update":"2024-05-31T12:00:00Z"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := updater.OpenStateFile(path)
	if err != nil {
		t.Fatalf("OpenStateFile() error = %v", err)
	}
	if want := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC); !loaded.Current().NextUpdate.Equal(want) {
		t.Errorf("NextUpdate = %v, want %v", loaded.Current().NextUpdate, want)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := updater.OpenStateFile(corrupt); err == nil {
		t.Error("OpenStateFile() with corrupt file should return error")
	}
}
