package persist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/menucraft/menucraft/internal/document"
)

func TestProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewProjects(NewMemory())

	proj := document.NewProject("Dinner Menu", document.ResolveFormat("A4", 0, 0))
	proj.Pages[0].Layers[0].Elements = append(proj.Pages[0].Layers[0].Elements,
		document.NewTextElement(40, 60))

	if err := p.Save(ctx, proj); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := p.Load(ctx, proj.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "Dinner Menu" {
		t.Fatalf("expected name round-tripped, got %q", got.Name)
	}
	if len(got.Pages) != 1 || len(got.Pages[0].Layers[0].Elements) != 1 {
		t.Fatalf("tree did not round-trip: %+v", got)
	}
	el := got.Pages[0].Layers[0].Elements[0]
	if el.Kind != document.ElementKindText || el.Text == nil || el.Text.FontSize != 64 {
		t.Fatalf("text payload did not round-trip: %+v", el)
	}
}

func TestLoadMissingProject(t *testing.T) {
	p := NewProjects(NewMemory())
	if _, err := p.Load(context.Background(), "proj_nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadCorruptValueNamesKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	if err := kv.Put(ctx, projectKey("proj_bad"), []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	_, err := NewProjects(kv).Load(ctx, "proj_bad")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "menucraft_project_proj_bad") {
		t.Fatalf("error should name the offending key, got %q", err)
	}
}

func TestListSummariesSkipsCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	p := NewProjects(kv)

	a := document.NewProject("Lunch", document.ResolveFormat("A5", 0, 0))
	b := document.NewProject("Dinner", document.ResolveFormat("A4", 0, 0))
	b.Pages = append(b.Pages, document.NewPage("Page 2", b.Pages[0].Format))
	if err := p.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := kv.Put(ctx, projectKey("proj_bad"), []byte("garbage")); err != nil {
		t.Fatal(err)
	}
	// An unrelated key in the store must not show up as a project.
	if err := kv.Put(ctx, "other_thing", []byte("{}")); err != nil {
		t.Fatal(err)
	}

	summaries, err := p.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	byID := map[string]Summary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	if got := byID[b.ID]; got.PageCount != 2 || got.FirstPage == nil {
		t.Fatalf("summary incomplete: %+v", got)
	}
	if got := byID[b.ID]; got.FirstPage.ID != b.Pages[0].ID {
		t.Fatalf("expected first page in summary, got %q", got.FirstPage.ID)
	}
}

func TestSummaryFirstPageIsDetached(t *testing.T) {
	ctx := context.Background()
	p := NewProjects(NewMemory())
	proj := document.NewProject("Menu", document.ResolveFormat("A4", 0, 0))
	if err := p.Save(ctx, proj); err != nil {
		t.Fatal(err)
	}

	summaries, err := p.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	summaries[0].FirstPage.Name = "mutated"

	got, err := p.Load(ctx, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pages[0].Name == "mutated" {
		t.Fatal("summary page aliases stored project")
	}
}

func TestAutoSaverFlushAndDirtyTracking(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	projects := NewProjects(kv)
	proj := document.NewProject("Menu", document.ResolveFormat("A4", 0, 0))

	saver := NewAutoSaver(projects, func() *document.Project { return proj })
	if err := saver.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := projects.Load(ctx, proj.ID); err != nil {
		t.Fatalf("expected project persisted, got %v", err)
	}

	// An unchanged project is skipped by the tick path.
	saver.tick()
	if saver.lastSaved != proj.UpdatedAt {
		t.Fatalf("dirty tracking out of sync: %q vs %q", saver.lastSaved, proj.UpdatedAt)
	}

	proj.Name = "Renamed"
	proj.UpdatedAt = "2026-01-01T00:00:00Z"
	saver.tick()
	got, err := projects.Load(ctx, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("expected tick to persist changes, got %q", got.Name)
	}
}
