package persist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/menucraft/menucraft/internal/document"
)

// autosaveSchedule fires the background save sweep.
const autosaveSchedule = "@every 30s"

// AutoSaver periodically writes the open project to the store. Saves are
// skipped while the project is unchanged since the last successful write,
// so an idle editor does not churn the database.
type AutoSaver struct {
	projects *Projects
	current  func() *document.Project

	cron *cron.Cron

	mu        sync.Mutex
	lastSaved string // UpdatedAt of the last persisted revision
}

// NewAutoSaver wires an AutoSaver around a project source. current is
// called on every tick and may return nil when no project is open.
func NewAutoSaver(projects *Projects, current func() *document.Project) *AutoSaver {
	return &AutoSaver{
		projects: projects,
		current:  current,
		cron:     cron.New(),
	}
}

func (a *AutoSaver) Start() error {
	if _, err := a.cron.AddFunc(autosaveSchedule, a.tick); err != nil {
		return err
	}
	a.cron.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight save to finish.
func (a *AutoSaver) Stop() {
	<-a.cron.Stop().Done()
}

// Flush saves immediately, regardless of the schedule. Used on explicit
// save actions and on shutdown.
func (a *AutoSaver) Flush(ctx context.Context) error {
	proj := a.current()
	if proj == nil {
		return nil
	}
	if err := a.projects.Save(ctx, proj); err != nil {
		return err
	}
	a.mu.Lock()
	a.lastSaved = proj.UpdatedAt
	a.mu.Unlock()
	return nil
}

func (a *AutoSaver) tick() {
	proj := a.current()
	if proj == nil {
		return
	}
	a.mu.Lock()
	unchanged := proj.UpdatedAt == a.lastSaved
	a.mu.Unlock()
	if unchanged {
		return
	}
	if err := a.Flush(context.Background()); err != nil {
		// Autosave failures are logged, not surfaced; the next tick
		// retries and explicit saves still report errors to the user.
		slog.Error("autosave failed", "project", proj.ID, "error", err)
	}
}
