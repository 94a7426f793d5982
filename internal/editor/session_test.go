package editor

import (
	"math"
	"testing"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/geom"
	"github.com/menucraft/menucraft/internal/layout"
	"github.com/menucraft/menucraft/internal/render"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	store := layout.NewStore()
	store.CreateProject("Menu", "A4", 0, 0)
	return NewSession(store, render.NewFontBank())
}

func addBox(t *testing.T, s *Session, x, y, w, h float64) string {
	t.Helper()
	page := s.store.ActivePage()
	el := document.NewTextElement(x, y)
	el.Width = w
	el.Height = h
	id := s.store.AddElement(page.ID, page.Layers[0].ID, el)
	if id == "" {
		t.Fatal("AddElement returned empty id")
	}
	return id
}

func TestClickSelectsTopmost(t *testing.T) {
	s := newTestSession(t)
	addBox(t, s, 10, 10, 100, 100)
	top := addBox(t, s, 50, 50, 100, 100)

	s.PointerDown(60, 60, Modifiers{})
	s.PointerUp(60, 60)

	sel := s.Selection()
	if len(sel) != 1 || sel[0] != top {
		t.Fatalf("expected topmost element %s selected, got %v", top, sel)
	}
}

func TestShiftToggleMembership(t *testing.T) {
	s := newTestSession(t)
	a := addBox(t, s, 0, 0, 40, 40)
	b := addBox(t, s, 100, 100, 40, 40)

	s.PointerDown(10, 10, Modifiers{})
	s.PointerUp(10, 10)
	s.PointerDown(110, 110, Modifiers{Shift: true})
	s.PointerUp(110, 110)

	if got := s.Selection(); len(got) != 2 {
		t.Fatalf("expected 2 selected after shift-click, got %v", got)
	}

	// A second shift-click on the same element removes it again.
	s.PointerDown(110, 110, Modifiers{Shift: true})
	s.PointerUp(110, 110)
	got := s.Selection()
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected only %s selected, got %v", a, got)
	}
	_ = b
}

func TestLockedElementIgnoredByHitTest(t *testing.T) {
	s := newTestSession(t)
	under := addBox(t, s, 10, 10, 100, 100)
	over := addBox(t, s, 10, 10, 100, 100)
	page := s.store.ActivePage()
	locked := true
	s.store.UpdateElement(page.ID, page.Layers[0].ID, over, layout.ElementPatch{Locked: &locked})

	s.PointerDown(50, 50, Modifiers{})
	s.PointerUp(50, 50)

	sel := s.Selection()
	if len(sel) != 1 || sel[0] != under {
		t.Fatalf("expected locked element skipped, selected %v", sel)
	}
}

func TestRubberBandSelectsFullyContainedOnly(t *testing.T) {
	s := newTestSession(t)
	inside := addBox(t, s, 100, 100, 50, 50)
	addBox(t, s, 500, 500, 50, 50)             // outside
	straddling := addBox(t, s, 280, 280, 100, 100) // crosses the box edge

	s.PointerDown(50, 50, Modifiers{})
	s.PointerMove(300, 300)
	s.PointerUp(300, 300)

	sel := s.Selection()
	if len(sel) != 1 || sel[0] != inside {
		t.Fatalf("expected only fully contained element %s, got %v", inside, sel)
	}
	_ = straddling
}

func TestTinyDragClearsSelectionWithoutBand(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 100, 100, 50, 50)
	s.PointerDown(110, 110, Modifiers{})
	s.PointerUp(110, 110)
	if len(s.Selection()) != 1 {
		t.Fatal("setup: element not selected")
	}

	// A release within the drag threshold never turns into a band select,
	// even when it would contain an element.
	s.PointerDown(50, 50, Modifiers{})
	s.PointerMove(52, 52)
	s.PointerUp(52, 52)
	if got := s.Selection(); len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}
	_ = id
}

func TestDragCommitsOnRelease(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 10, 20, 100, 50)
	page := s.store.ActivePage()

	s.PointerDown(50, 40, Modifiers{})
	s.PointerMove(90, 100)

	// Mid-drag the committed geometry is untouched; only the transient
	// rect moves.
	el, _ := s.store.ElementByID(page.ID, id)
	if el.X != 10 || el.Y != 20 {
		t.Fatalf("committed geometry moved mid-drag: (%v, %v)", el.X, el.Y)
	}
	if r, ok := s.transient[id]; !ok || r.X != 50 || r.Y != 80 {
		t.Fatalf("expected transient rect at (50, 80), got %+v", r)
	}

	s.PointerUp(90, 100)
	el, _ = s.store.ElementByID(page.ID, id)
	if el.X != 50 || el.Y != 80 {
		t.Fatalf("expected element at (50, 80) after release, got (%v, %v)", el.X, el.Y)
	}
	if s.mode != ModeIdle {
		t.Fatalf("expected idle mode after release, got %v", s.mode)
	}
}

func TestMoveDeleteUndoScenario(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 10, 20, 100, 50)
	page := s.store.ActivePage()

	s.PointerDown(50, 40, Modifiers{})
	s.PointerMove(90, 100)
	s.PointerUp(90, 100) // element now at (50, 80)

	s.KeyDown("Delete")
	if el, _ := s.store.ElementByID(page.ID, id); el != nil {
		t.Fatal("expected element deleted")
	}
	if len(s.Selection()) != 0 {
		t.Fatal("expected selection cleared after delete")
	}

	s.store.Undo()
	el, _ := s.store.ElementByID(page.ID, id)
	if el == nil {
		t.Fatal("expected element restored by undo")
	}
	if el.X != 50 || el.Y != 80 {
		t.Fatalf("expected moved position (50, 80) after undo of delete, got (%v, %v)", el.X, el.Y)
	}

	s.store.Undo()
	el, _ = s.store.ElementByID(page.ID, id)
	if el == nil || el.X != 10 || el.Y != 20 {
		t.Fatalf("expected original position (10, 20) after second undo, got %+v", el)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 10, 20, 100, 50)
	page := s.store.ActivePage()

	s.PointerDown(50, 40, Modifiers{})
	s.PointerMove(200, 200)
	s.KeyDown("Escape")

	if s.mode != ModeIdle {
		t.Fatalf("expected idle after escape, got %v", s.mode)
	}
	el, _ := s.store.ElementByID(page.ID, id)
	if el.X != 10 || el.Y != 20 {
		t.Fatalf("escape must not commit: got (%v, %v)", el.X, el.Y)
	}
	if s.store.CanUndo() {
		t.Fatal("cancelled drag must not record history")
	}

	// The release after a cancelled gesture is inert.
	s.PointerUp(200, 200)
	el, _ = s.store.ElementByID(page.ID, id)
	if el.X != 10 || el.Y != 20 {
		t.Fatalf("release after escape moved element: (%v, %v)", el.X, el.Y)
	}
}

func TestResizeOppositeCornerFixed(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 100, 100, 200, 100)
	s.selectExclusively(id)
	page := s.store.ActivePage()

	// Grab the SE handle and pull outward; NW corner must not move.
	s.PointerDown(300, 200, Modifiers{})
	if s.mode != ModeResizing || s.resizeHandle != HandleSE {
		t.Fatalf("expected SE resize, got mode=%v handle=%v", s.mode, s.resizeHandle)
	}
	s.PointerMove(350, 260)
	s.PointerUp(350, 260)

	el, _ := s.store.ElementByID(page.ID, id)
	if el.X != 100 || el.Y != 100 {
		t.Fatalf("NW corner moved during SE resize: (%v, %v)", el.X, el.Y)
	}
	if el.Width != 250 || el.Height != 160 {
		t.Fatalf("expected 250x160, got %vx%v", el.Width, el.Height)
	}
}

func TestResizeClampNonText(t *testing.T) {
	start := geom.Rect{X: 100, Y: 100, Width: 200, Height: 100}
	// Drag the SE handle past the NW corner; both dimensions clamp at the
	// floor and the NW corner stays fixed.
	got := resizeRect(start, HandleSE, 50, 50, minElementSize, minElementSize)
	want := geom.Rect{X: 100, Y: 100, Width: minElementSize, Height: minElementSize}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// Clamping via the NW handle keeps the SE corner fixed instead.
	got = resizeRect(start, HandleNW, 400, 300, minElementSize, minElementSize)
	if got.X+got.Width != 300 || got.Y+got.Height != 200 {
		t.Fatalf("SE corner moved during NW clamp: %+v", got)
	}
}

func TestTextResizeFloorFitsGlyphAndLine(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 100, 100, 373, 68)
	page := s.store.ActivePage()
	el, _ := s.store.ElementByID(page.ID, id)

	minW, minH := s.minSize(el)
	face := s.fonts.Face(el.Text.FontFamily, el.Text.FontStyle, el.Text.FontSize)
	wantW := render.Measure(face, "W", 0) + 2*el.Text.Padding
	wantH := el.Text.FontSize*el.Text.LineHeight + 2*el.Text.Padding
	if math.Abs(minW-wantW) > 0.01 || math.Abs(minH-wantH) > 0.01 {
		t.Fatalf("expected floor (%v, %v), got (%v, %v)", wantW, wantH, minW, minH)
	}
	if minW <= 0 || minH <= 0 {
		t.Fatalf("degenerate text floor: (%v, %v)", minW, minH)
	}

	s.selectExclusively(id)
	s.PointerDown(473, 168, Modifiers{}) // SE handle
	s.PointerMove(100, 100)              // collapse attempt
	s.PointerUp(100, 100)

	el, _ = s.store.ElementByID(page.ID, id)
	if el.Width < minW || el.Height < minH {
		t.Fatalf("text box shrank below floor: %vx%v < %vx%v", el.Width, el.Height, minW, minH)
	}
}

func TestZoomKeepsPivotFixed(t *testing.T) {
	s := newTestSession(t)
	s.Wheel(400, 300, 0, -120, true)

	v := s.Viewport()
	if v.Zoom <= 1 {
		t.Fatalf("expected zoom in, got %v", v.Zoom)
	}
	// The page point under the pivot before the zoom must still be under
	// it afterwards.
	px, py := v.ToPage(400, 300)
	sx, sy := v.ToScreen(px, py)
	if math.Abs(sx-400) > 1e-9 || math.Abs(sy-300) > 1e-9 {
		t.Fatalf("pivot drifted to (%v, %v)", sx, sy)
	}
}

func TestZoomClamped(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 100; i++ {
		s.Wheel(0, 0, 0, -500, true)
	}
	if z := s.Viewport().Zoom; z != geom.MaxZoom {
		t.Fatalf("expected zoom clamped at %v, got %v", geom.MaxZoom, z)
	}
	for i := 0; i < 100; i++ {
		s.Wheel(0, 0, 0, 500, true)
	}
	if z := s.Viewport().Zoom; z != geom.MinZoom {
		t.Fatalf("expected zoom clamped at %v, got %v", geom.MinZoom, z)
	}
}

func TestTextToolPlacesElementOnce(t *testing.T) {
	s := newTestSession(t)
	page := s.store.ActivePage()

	s.SetTool(ToolText)
	s.PointerDown(150, 200, Modifiers{})
	s.PointerUp(150, 200)

	if s.Tool() != ToolSelect {
		t.Fatal("expected tool to revert to select after placement")
	}
	sel := s.Selection()
	if len(sel) != 1 {
		t.Fatalf("expected new element selected, got %v", sel)
	}
	el, _ := s.store.ElementByID(page.ID, sel[0])
	if el == nil || el.Kind != document.ElementKindText {
		t.Fatalf("expected a text element, got %+v", el)
	}
	if el.X != 150 || el.Y != 200 {
		t.Fatalf("expected placement at click point, got (%v, %v)", el.X, el.Y)
	}
	if el.Width != 373 || el.Height != 68 {
		t.Fatalf("unexpected creation size %vx%v", el.Width, el.Height)
	}

	// Clicking an existing text element with the tool selects instead of
	// stacking a second element on top.
	s.SetTool(ToolText)
	s.PointerDown(160, 210, Modifiers{})
	s.PointerUp(160, 210)
	count := 0
	for _, l := range page.Layers {
		count += len(l.Elements)
	}
	if count != 1 {
		t.Fatalf("expected 1 element, got %d", count)
	}
}

func TestPageSwitchResetsSelection(t *testing.T) {
	s := newTestSession(t)
	id := addBox(t, s, 10, 10, 50, 50)
	s.PointerDown(20, 20, Modifiers{})
	s.PointerUp(20, 20)
	if len(s.Selection()) != 1 {
		t.Fatal("setup: element not selected")
	}

	second := s.store.AddPage(nil)
	s.SetActivePage(second)

	if got := s.Selection(); len(got) != 0 {
		t.Fatalf("expected selection cleared on page switch, got %v", got)
	}
	if s.store.CanUndo() {
		t.Fatal("expected history reset on page switch")
	}
	_ = id
}
