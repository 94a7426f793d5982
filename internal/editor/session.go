package editor

import (
	"math"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/geom"
	"github.com/menucraft/menucraft/internal/layout"
	"github.com/menucraft/menucraft/internal/render"
)

type Tool string

const (
	ToolSelect Tool = "select"
	ToolText   Tool = "text"
)

// Mode is the single interaction state; at most one gesture is ever in
// flight, which this enumeration guarantees structurally.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSelecting
	ModeDragging
	ModeResizing
)

// Modifiers carries the keyboard state accompanying a pointer event.
type Modifiers struct {
	// Shift toggles membership in a multi-selection.
	Shift bool
}

const (
	// dragThreshold is the minimum screen-space Manhattan distance before
	// a rubber-band release selects instead of just clearing.
	dragThreshold = 5.0
	// minElementSize is the resize floor for non-text elements.
	minElementSize = 20.0
)

// Session interprets pointer and keyboard input against the active page.
// It owns the selection, the viewport, and the transient (uncommitted)
// geometry of an in-flight drag or resize; the document store is only
// mutated on pointer release.
type Session struct {
	store *layout.Store
	fonts *render.FontBank

	view geom.Viewport
	tool Tool
	mode Mode

	selection []string
	selected  map[string]bool
	hoverID   string

	downX, downY float64 // pointer-down position, screen space
	pageX, pageY float64 // pointer-down position, page space
	startRects   map[string]geom.Rect
	transient    map[string]geom.Rect
	resizeID     string
	resizeHandle Handle
	band         *geom.Rect
}

func NewSession(store *layout.Store, fonts *render.FontBank) *Session {
	return &Session{
		store:    store,
		fonts:    fonts,
		view:     geom.NewViewport(),
		tool:     ToolSelect,
		selected: make(map[string]bool),
	}
}

func (s *Session) Store() *layout.Store    { return s.store }
func (s *Session) Viewport() geom.Viewport { return s.view }
func (s *Session) Mode() Mode              { return s.mode }
func (s *Session) Tool() Tool              { return s.tool }

func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.hoverID = ""
}

// Selection returns the selected element ids in selection order.
func (s *Session) Selection() []string {
	return append([]string(nil), s.selection...)
}

// SetActivePage switches pages and resets selection, transient state and
// (via the store) edit history.
func (s *Session) SetActivePage(pageID string) {
	s.store.SetActivePage(pageID)
	s.clearSelection()
	s.resetGesture()
}

// RenderOptions assembles the overlay state for the rendering pipeline,
// which consults transient geometry before committed state.
func (s *Session) RenderOptions(margin float64) render.Options {
	sel := make(map[string]bool, len(s.selected))
	for id := range s.selected {
		sel[id] = true
	}
	return render.Options{
		Scale:      s.view.Zoom,
		Margin:     margin,
		Transient:  s.transient,
		Selection:  sel,
		HoverID:    s.hoverID,
		RubberBand: s.band,
	}
}

// --- Pointer events ---

func (s *Session) PointerDown(sx, sy float64, mods Modifiers) {
	page := s.store.ActivePage()
	if page == nil {
		return
	}
	px, py := s.view.ToPage(sx, sy)
	s.downX, s.downY = sx, sy
	s.pageX, s.pageY = px, py

	if s.tool == ToolText {
		s.placeText(page, px, py)
		return
	}

	// A resize handle of the sole selected element wins over anything
	// underneath it.
	if len(s.selection) == 1 {
		if el, _ := s.store.ElementByID(page.ID, s.selection[0]); el != nil {
			if h := handleAt(elementBounds(el), px, py, handleTolerance/s.view.Zoom); h != HandleNone {
				s.mode = ModeResizing
				s.resizeID = el.ID
				s.resizeHandle = h
				s.startRects = map[string]geom.Rect{el.ID: elementRect(el)}
				s.transient = map[string]geom.Rect{el.ID: elementRect(el)}
				return
			}
		}
	}

	hit := s.hitTest(page, px, py)
	if hit == "" {
		// Empty page area: clear selection and start a rubber band.
		s.clearSelection()
		s.mode = ModeSelecting
		s.band = &geom.Rect{X: px, Y: py}
		return
	}

	if mods.Shift {
		s.toggleSelected(hit)
		return
	}

	if !s.selected[hit] {
		s.selectExclusively(hit)
	}

	// Pointer-down on a selected element begins a drag of the whole
	// selection; geometry stays transient until release.
	s.mode = ModeDragging
	s.startRects = make(map[string]geom.Rect, len(s.selection))
	s.transient = make(map[string]geom.Rect, len(s.selection))
	for _, id := range s.selection {
		if el, _ := s.store.ElementByID(page.ID, id); el != nil {
			s.startRects[id] = elementRect(el)
			s.transient[id] = elementRect(el)
		}
	}
}

func (s *Session) PointerMove(sx, sy float64) {
	page := s.store.ActivePage()
	if page == nil {
		return
	}
	px, py := s.view.ToPage(sx, sy)

	switch s.mode {
	case ModeIdle:
		if s.tool == ToolSelect {
			s.hoverID = s.hitTest(page, px, py)
		}

	case ModeDragging:
		dx := px - s.pageX
		dy := py - s.pageY
		for id, start := range s.startRects {
			s.transient[id] = geom.Rect{X: start.X + dx, Y: start.Y + dy, Width: start.Width, Height: start.Height}
		}

	case ModeResizing:
		start, ok := s.startRects[s.resizeID]
		if !ok {
			return
		}
		el, _ := s.store.ElementByID(page.ID, s.resizeID)
		minW, minH := s.minSize(el)
		s.transient[s.resizeID] = resizeRect(start, s.resizeHandle, px, py, minW, minH)

	case ModeSelecting:
		box := geom.FromCorners(s.pageX, s.pageY, px, py)
		s.band = &box
	}
}

func (s *Session) PointerUp(sx, sy float64) {
	page := s.store.ActivePage()
	if page == nil {
		s.resetGesture()
		return
	}

	switch s.mode {
	case ModeDragging:
		for id, rect := range s.transient {
			start := s.startRects[id]
			if rect.X == start.X && rect.Y == start.Y {
				continue
			}
			if _, layerID := s.store.ElementByID(page.ID, id); layerID != "" {
				x, y := rect.X, rect.Y
				s.store.UpdateElement(page.ID, layerID, id, layout.ElementPatch{X: &x, Y: &y})
			}
		}

	case ModeResizing:
		if rect, ok := s.transient[s.resizeID]; ok {
			start := s.startRects[s.resizeID]
			if rect != start {
				if _, layerID := s.store.ElementByID(page.ID, s.resizeID); layerID != "" {
					x, y, w, h := rect.X, rect.Y, rect.Width, rect.Height
					s.store.UpdateElement(page.ID, layerID, s.resizeID, layout.ElementPatch{
						X: &x, Y: &y, Width: &w, Height: &h,
					})
				}
			}
		}

	case ModeSelecting:
		manhattan := math.Abs(sx-s.downX) + math.Abs(sy-s.downY)
		if s.band != nil && manhattan > dragThreshold {
			s.selectContained(page, *s.band)
		}
	}

	s.resetGesture()
}

// --- Keyboard events ---

// KeyDown handles editor keys while the canvas has focus.
func (s *Session) KeyDown(key string) {
	switch key {
	case "Delete", "Backspace":
		s.deleteSelection()
	case "Escape":
		// Cancel an in-flight gesture without committing anything; the
		// document still holds the pre-gesture geometry.
		if s.mode != ModeIdle {
			s.resetGesture()
		}
	}
}

func (s *Session) deleteSelection() {
	page := s.store.ActivePage()
	if page == nil || len(s.selection) == 0 {
		return
	}
	for _, id := range s.selection {
		if _, layerID := s.store.ElementByID(page.ID, id); layerID != "" {
			s.store.DeleteElement(page.ID, layerID, id)
		}
	}
	s.clearSelection()
}

// --- Wheel / zoom ---

// Wheel pans the view, or zooms around the pointer when the pinch modifier
// (ctrl-style gesture) is held.
func (s *Session) Wheel(sx, sy, deltaX, deltaY float64, pinch bool) {
	if pinch {
		factor := math.Exp(-deltaY * 0.002)
		s.view.ZoomAt(sx, sy, factor)
		return
	}
	s.view.Pan(-deltaX, -deltaY)
}

// --- Selection bookkeeping ---

func (s *Session) selectExclusively(id string) {
	s.selection = []string{id}
	s.selected = map[string]bool{id: true}
}

func (s *Session) toggleSelected(id string) {
	if s.selected[id] {
		delete(s.selected, id)
		for i, cur := range s.selection {
			if cur == id {
				s.selection = append(s.selection[:i], s.selection[i+1:]...)
				break
			}
		}
		return
	}
	s.selected[id] = true
	s.selection = append(s.selection, id)
}

func (s *Session) clearSelection() {
	s.selection = nil
	s.selected = make(map[string]bool)
	s.hoverID = ""
}

// selectContained selects exactly the elements whose bounding box lies
// fully inside the normalized box, in page space.
func (s *Session) selectContained(page *document.Page, box geom.Rect) {
	s.clearSelection()
	for li := range page.Layers {
		layer := &page.Layers[li]
		if !layer.Visible || layer.Locked {
			continue
		}
		for ei := range layer.Elements {
			el := &layer.Elements[ei]
			if !el.Visible || el.Locked {
				continue
			}
			if box.ContainsRect(elementBounds(el)) {
				s.selected[el.ID] = true
				s.selection = append(s.selection, el.ID)
			}
		}
	}
}

func (s *Session) resetGesture() {
	s.mode = ModeIdle
	s.startRects = nil
	s.transient = nil
	s.resizeID = ""
	s.resizeHandle = HandleNone
	s.band = nil
}

// placeText handles a click with the text tool: clicking an existing text
// element selects it; clicking empty page area creates a new text element
// with the creation defaults, then reverts to the select tool.
func (s *Session) placeText(page *document.Page, px, py float64) {
	if hit := s.hitTest(page, px, py); hit != "" {
		if el, _ := s.store.ElementByID(page.ID, hit); el != nil && el.Kind == document.ElementKindText {
			s.selectExclusively(hit)
			s.tool = ToolSelect
			return
		}
	}
	layerID := s.store.ActiveLayerID()
	if layerID == "" && len(page.Layers) > 0 {
		layerID = page.Layers[0].ID
	}
	id := s.store.AddElement(page.ID, layerID, document.NewTextElement(px, py))
	if id != "" {
		s.selectExclusively(id)
	}
	s.tool = ToolSelect
}

// minSize computes the resize floor for an element. Text boxes can never
// shrink below fitting one widest glyph plus padding, nor below one line
// height; other kinds use a fixed floor.
func (s *Session) minSize(el *document.Element) (minW, minH float64) {
	if el == nil || el.Kind != document.ElementKindText || el.Text == nil {
		return minElementSize, minElementSize
	}
	t := el.Text
	face := s.fonts.Face(t.FontFamily, t.FontStyle, t.FontSize)
	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.2
	}
	minW = render.Measure(face, "W", t.LetterSpacing) + 2*t.Padding
	minH = t.FontSize*lineHeight + 2*t.Padding
	return minW, minH
}
