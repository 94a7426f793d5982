package layout

import (
	"testing"

	"github.com/menucraft/menucraft/internal/document"
)

func newStoreWithProject(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.CreateProject("Menu", "A4", 0, 0)
	return s
}

func addText(t *testing.T, s *Store, x, y float64) string {
	t.Helper()
	page := s.ActivePage()
	id := s.AddElement(page.ID, page.Layers[0].ID, document.NewTextElement(x, y))
	if id == "" {
		t.Fatal("AddElement returned empty id")
	}
	return id
}

func TestCreateProjectOpensFirstPage(t *testing.T) {
	s := newStoreWithProject(t)
	if s.ActivePage() == nil {
		t.Fatal("expected active page after create")
	}
	if s.ActiveLayerID() != s.ActivePage().Layers[0].ID {
		t.Fatal("expected first layer active")
	}
	if s.CanUndo() {
		t.Fatal("fresh project must have empty history")
	}
}

func TestDeleteLastPageRefused(t *testing.T) {
	s := newStoreWithProject(t)
	s.DeletePage(s.ActivePageID())
	if len(s.Project().Pages) != 1 {
		t.Fatalf("expected last page kept, got %d pages", len(s.Project().Pages))
	}
}

func TestDeleteActivePageActivatesFirst(t *testing.T) {
	s := newStoreWithProject(t)
	first := s.ActivePageID()
	second := s.AddPage(nil)
	s.SetActivePage(second)
	addText(t, s, 1, 1)
	if !s.CanUndo() {
		t.Fatal("setup: expected history on second page")
	}

	s.DeletePage(second)
	if s.ActivePageID() != first {
		t.Fatalf("expected first page active, got %s", s.ActivePageID())
	}
	if s.CanUndo() {
		t.Fatal("history must reset when the active page is deleted")
	}
}

func TestAddPageInheritsActiveFormat(t *testing.T) {
	s := NewStore()
	s.CreateProject("Menu", "A5", 0, 0)
	id := s.AddPage(nil)
	page := s.PageByID(id)
	if page.Format.Name != "A5" {
		t.Fatalf("expected inherited A5 format, got %q", page.Format.Name)
	}
	if page.Name != "Page 2" {
		t.Fatalf("expected generated name, got %q", page.Name)
	}
}

func TestDuplicatePageFreshIDs(t *testing.T) {
	s := newStoreWithProject(t)
	elID := addText(t, s, 10, 10)
	srcID := s.ActivePageID()

	dupID := s.DuplicatePage(srcID)
	if dupID == "" || dupID == srcID {
		t.Fatalf("expected new page id, got %q", dupID)
	}
	dup := s.PageByID(dupID)
	src := s.PageByID(srcID)
	if dup.Layers[0].ID == src.Layers[0].ID {
		t.Fatal("duplicated layer kept the source id")
	}
	if dup.Layers[0].Elements[0].ID == elID {
		t.Fatal("duplicated element kept the source id")
	}
	// The copy sits right after the source.
	if s.Project().Pages[1].ID != dupID {
		t.Fatalf("expected copy at index 1, got %s", s.Project().Pages[1].ID)
	}

	// And is fully detached from it.
	dup.Layers[0].Elements[0].X = 777
	if src.Layers[0].Elements[0].X == 777 {
		t.Fatal("duplicate aliases the source page")
	}
}

func TestReorderPagesBoundsChecked(t *testing.T) {
	s := newStoreWithProject(t)
	p2 := s.AddPage(nil)
	p3 := s.AddPage(nil)

	s.ReorderPages(2, 0)
	if s.Project().Pages[0].ID != p3 {
		t.Fatalf("expected %s first after reorder", p3)
	}

	before := s.Project().UpdatedAt
	s.ReorderPages(5, 0)
	s.ReorderPages(0, 0)
	if s.Project().UpdatedAt != before {
		t.Fatal("no-op reorders must not touch the project")
	}
	_ = p2
}

func TestDeleteLastLayerRefused(t *testing.T) {
	s := newStoreWithProject(t)
	page := s.ActivePage()
	s.DeleteLayer(page.ID, page.Layers[0].ID)
	if len(s.ActivePage().Layers) != 1 {
		t.Fatal("expected last layer kept")
	}
}

func TestDeleteActiveLayerReassigns(t *testing.T) {
	s := newStoreWithProject(t)
	page := s.ActivePage()
	second := s.AddLayer(page.ID)
	s.SetActiveLayer(second)

	s.DeleteLayer(page.ID, second)
	if s.ActiveLayerID() != s.ActivePage().Layers[0].ID {
		t.Fatalf("expected active layer reassigned, got %s", s.ActiveLayerID())
	}
}

func TestMutationsOnMissingTargetsAreNoOps(t *testing.T) {
	s := newStoreWithProject(t)
	before := s.Project().UpdatedAt

	x := 5.0
	s.UpdateElement(s.ActivePageID(), "layer_missing", "elem_missing", ElementPatch{X: &x})
	s.DeleteElement("page_missing", "layer_missing", "elem_missing")
	s.SetActivePage("page_missing")
	s.SetActiveLayer("layer_missing")
	s.DuplicateElement(s.ActivePageID(), s.ActiveLayerID(), "elem_missing")

	if s.Project().UpdatedAt != before {
		t.Fatal("no-op mutations must not touch the project")
	}
	if s.CanUndo() {
		t.Fatal("no-op mutations must not record history")
	}
}

func TestUpdateElementShallowMerge(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 10, 20)
	page := s.ActivePage()

	x := 99.0
	s.UpdateElement(page.ID, page.Layers[0].ID, id, ElementPatch{X: &x})

	el, _ := s.ElementByID(page.ID, id)
	if el.X != 99 || el.Y != 20 {
		t.Fatalf("expected only x updated, got (%v, %v)", el.X, el.Y)
	}
	if el.Text.Content != "Text" {
		t.Fatal("unpatched payload must survive")
	}
}

func TestUpdateElementRejectsKindMismatch(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 0, 0)
	page := s.ActivePage()

	s.UpdateElement(page.ID, page.Layers[0].ID, id, ElementPatch{
		Image: &document.ImageElement{Source: "x.png"},
	})
	el, _ := s.ElementByID(page.ID, id)
	if el.Image != nil {
		t.Fatal("image payload must not attach to a text element")
	}
	if el.Text == nil {
		t.Fatal("text payload lost")
	}
}

func TestDuplicateElementOffsetAndOrder(t *testing.T) {
	s := newStoreWithProject(t)
	a := addText(t, s, 10, 20)
	b := addText(t, s, 30, 40)
	page := s.ActivePage()

	dupID := s.DuplicateElement(page.ID, page.Layers[0].ID, a)
	el, _ := s.ElementByID(page.ID, dupID)
	if el.X != 10+DuplicateOffset || el.Y != 20+DuplicateOffset {
		t.Fatalf("expected offset copy at (30, 40), got (%v, %v)", el.X, el.Y)
	}
	// Copy sits directly above the source in paint order.
	els := s.ActivePage().Layers[0].Elements
	if els[0].ID != a || els[1].ID != dupID || els[2].ID != b {
		t.Fatalf("unexpected paint order: %s %s %s", els[0].ID, els[1].ID, els[2].ID)
	}
}

func TestMoveElementBetweenLayers(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 0, 0)
	page := s.ActivePage()
	src := page.Layers[0].ID
	dst := s.AddLayer(page.ID)

	s.MoveElement(page.ID, src, dst, id)
	_, layerID := s.ElementByID(page.ID, id)
	if layerID != dst {
		t.Fatalf("expected element in layer %s, got %s", dst, layerID)
	}
	if n := len(s.ActivePage().Layers[0].Elements); n != 0 {
		t.Fatalf("expected source layer emptied, has %d", n)
	}
}

func TestHistoryBounded(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 0, 0)
	page := s.ActivePage()

	for i := 0; i < 60; i++ {
		x := float64(i)
		s.UpdateElement(page.ID, page.Layers[0].ID, id, ElementPatch{X: &x})
	}
	past, future := s.HistoryDepth()
	if past != 50 {
		t.Fatalf("expected undo stack capped at 50, got %d", past)
	}
	if future != 0 {
		t.Fatalf("expected empty redo stack, got %d", future)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 10, 10)
	page := s.ActivePage()

	x := 50.0
	s.UpdateElement(page.ID, page.Layers[0].ID, id, ElementPatch{X: &x})

	if !s.Undo() {
		t.Fatal("Undo returned false")
	}
	el, _ := s.ElementByID(page.ID, id)
	if el.X != 10 {
		t.Fatalf("expected x restored to 10, got %v", el.X)
	}
	if !s.Redo() {
		t.Fatal("Redo returned false")
	}
	el, _ = s.ElementByID(page.ID, id)
	if el.X != 50 {
		t.Fatalf("expected x back at 50, got %v", el.X)
	}

	// A new mutation clears the redo branch.
	s.Undo()
	y := 70.0
	s.UpdateElement(page.ID, page.Layers[0].ID, id, ElementPatch{Y: &y})
	if s.CanRedo() {
		t.Fatal("new mutation must clear the redo stack")
	}
}

func TestPageSwitchResetsHistory(t *testing.T) {
	s := newStoreWithProject(t)
	addText(t, s, 0, 0)
	second := s.AddPage(nil)

	s.SetActivePage(second)
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("history must reset on page switch")
	}
}

func TestCopyPasteDetachedWithOffset(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 100, 200)
	page := s.ActivePage()

	if n := s.Copy([]string{id}); n != 1 {
		t.Fatalf("expected 1 copied, got %d", n)
	}
	ids := s.Paste()
	if len(ids) != 1 || ids[0] == id {
		t.Fatalf("expected one fresh id, got %v", ids)
	}
	pasted, _ := s.ElementByID(page.ID, ids[0])
	if pasted.X != 100+DuplicateOffset || pasted.Y != 200+DuplicateOffset {
		t.Fatalf("expected paste at (120, 220), got (%v, %v)", pasted.X, pasted.Y)
	}

	// Mutating the paste leaves the original and the clipboard untouched.
	pasted.Text.Content = "mutated"
	orig, _ := s.ElementByID(page.ID, id)
	if orig.Text.Content != "Text" {
		t.Fatal("pasted element aliases the original")
	}
	second := s.Paste()
	again, _ := s.ElementByID(page.ID, second[0])
	if again.Text.Content != "Text" {
		t.Fatal("clipboard was mutated through a previous paste")
	}
}

func TestCutRemovesOriginals(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 0, 0)
	page := s.ActivePage()

	if n := s.Cut([]string{id}); n != 1 {
		t.Fatalf("expected 1 cut, got %d", n)
	}
	if el, _ := s.ElementByID(page.ID, id); el != nil {
		t.Fatal("expected original removed")
	}
	if s.ClipboardLen() != 1 {
		t.Fatalf("expected clipboard to hold the element, has %d", s.ClipboardLen())
	}

	// Cut is undoable; paste afterwards still works from the clipboard.
	s.Undo()
	if el, _ := s.ElementByID(page.ID, id); el == nil {
		t.Fatal("undo must restore the cut element")
	}
}

func TestPasteSurvivesPageSwitch(t *testing.T) {
	s := newStoreWithProject(t)
	id := addText(t, s, 10, 10)
	s.Copy([]string{id})

	second := s.AddPage(nil)
	s.SetActivePage(second)

	ids := s.Paste()
	if len(ids) != 1 {
		t.Fatalf("expected paste on the new page, got %v", ids)
	}
	if el, _ := s.ElementByID(second, ids[0]); el == nil {
		t.Fatal("pasted element missing from new page")
	}
}

func TestOpenReplacesStateWholesale(t *testing.T) {
	s := newStoreWithProject(t)
	addText(t, s, 0, 0)
	if !s.CanUndo() {
		t.Fatal("setup: expected history")
	}

	other := document.NewProject("Other", document.ResolveFormat("A3", 0, 0))
	s.Open(other)
	if s.Project().Name != "Other" {
		t.Fatalf("expected replacement project, got %q", s.Project().Name)
	}
	if s.ActivePageID() != other.Pages[0].ID {
		t.Fatal("expected first page of replacement active")
	}
	if s.CanUndo() {
		t.Fatal("history must reset on open")
	}
}
