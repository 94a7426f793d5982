package layout

import (
	"fmt"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/typeid"
)

// Store is the single source of truth for the open layout project and all
// structural edits. Mutations either apply to the whole tree consistently or
// leave it unchanged: operations targeting a nonexistent page/layer/element
// are silent no-ops, never errors. Callers check existence via selectors
// before offering UI actions.
type Store struct {
	project       *document.Project
	activePageID  string
	activeLayerID string

	history   history
	clipboard []document.Element
}

func NewStore() *Store {
	return &Store{}
}

// CreateProject builds a fresh project with one default page and layer, sets
// it active, and resets edit history to that page. Custom formats carry the
// print size in millimeters.
func (s *Store) CreateProject(name, formatName string, customWidthMM, customHeightMM float64) *document.Project {
	format := document.ResolveFormat(formatName, customWidthMM, customHeightMM)
	proj := document.NewProject(name, format)
	s.Open(proj)
	return proj
}

// Open replaces the in-memory state wholesale with the given project and
// resets the active page, selection-relevant state and history.
func (s *Store) Open(proj *document.Project) {
	s.project = proj
	s.activePageID = ""
	s.activeLayerID = ""
	if proj != nil && len(proj.Pages) > 0 {
		s.activePageID = proj.Pages[0].ID
		if len(proj.Pages[0].Layers) > 0 {
			s.activeLayerID = proj.Pages[0].Layers[0].ID
		}
	}
	s.resetHistory()
}

// --- Selectors ---

func (s *Store) Project() *document.Project { return s.project }

func (s *Store) ActivePageID() string { return s.activePageID }

func (s *Store) ActiveLayerID() string { return s.activeLayerID }

// ActivePage returns the active page, or nil when no project is open.
func (s *Store) ActivePage() *document.Page {
	return s.pageByID(s.activePageID)
}

func (s *Store) PageByID(id string) *document.Page {
	return s.pageByID(id)
}

// ElementByID finds an element anywhere on the given page, returning the
// owning layer's id.
func (s *Store) ElementByID(pageID, elementID string) (*document.Element, string) {
	page := s.pageByID(pageID)
	if page == nil {
		return nil, ""
	}
	for li := range page.Layers {
		layer := &page.Layers[li]
		for ei := range layer.Elements {
			if layer.Elements[ei].ID == elementID {
				return &layer.Elements[ei], layer.ID
			}
		}
	}
	return nil, ""
}

func (s *Store) pageByID(id string) *document.Page {
	if s.project == nil || id == "" {
		return nil
	}
	for i := range s.project.Pages {
		if s.project.Pages[i].ID == id {
			return &s.project.Pages[i]
		}
	}
	return nil
}

func (s *Store) pageIndex(id string) int {
	if s.project == nil {
		return -1
	}
	for i := range s.project.Pages {
		if s.project.Pages[i].ID == id {
			return i
		}
	}
	return -1
}

func layerIndex(page *document.Page, layerID string) int {
	for i := range page.Layers {
		if page.Layers[i].ID == layerID {
			return i
		}
	}
	return -1
}

func elementIndex(layer *document.Layer, elementID string) int {
	for i := range layer.Elements {
		if layer.Elements[i].ID == elementID {
			return i
		}
	}
	return -1
}

func (s *Store) touch() {
	if s.project != nil {
		s.project.UpdatedAt = document.Timestamp()
	}
}

// --- Project / page mutations ---

func (s *Store) RenameProject(name string) {
	if s.project == nil || name == "" {
		return
	}
	s.project.Name = name
	s.touch()
}

// SetActivePage switches the editor to another page. Edit history is reset
// to that page's current snapshot; cross-page undo is not supported.
func (s *Store) SetActivePage(pageID string) {
	page := s.pageByID(pageID)
	if page == nil || pageID == s.activePageID {
		return
	}
	s.activePageID = pageID
	s.activeLayerID = ""
	if len(page.Layers) > 0 {
		s.activeLayerID = page.Layers[0].ID
	}
	s.resetHistory()
}

// SetActiveLayer designates the layer that receives pasted and newly placed
// elements.
func (s *Store) SetActiveLayer(layerID string) {
	page := s.ActivePage()
	if page == nil || layerIndex(page, layerID) < 0 {
		return
	}
	s.activeLayerID = layerID
}

// AddPage appends a page. Without an explicit format the new page inherits
// the active (or first) page's format, falling back to the default preset.
func (s *Store) AddPage(formatOverride *document.Format) string {
	if s.project == nil {
		return ""
	}
	var format document.Format
	switch {
	case formatOverride != nil:
		format = *formatOverride
	case s.ActivePage() != nil:
		format = s.ActivePage().Format
	case len(s.project.Pages) > 0:
		format = s.project.Pages[0].Format
	default:
		format = document.ResolveFormat(document.DefaultFormatName, 0, 0)
	}
	page := document.NewPage(fmt.Sprintf("Page %d", len(s.project.Pages)+1), format)
	s.project.Pages = append(s.project.Pages, page)
	s.touch()
	return page.ID
}

// DeletePage removes a page; deleting the last page is refused. If the
// deleted page was active, the new first page becomes active.
func (s *Store) DeletePage(pageID string) {
	if s.project == nil || len(s.project.Pages) <= 1 {
		return
	}
	idx := s.pageIndex(pageID)
	if idx < 0 {
		return
	}
	s.project.Pages = append(s.project.Pages[:idx], s.project.Pages[idx+1:]...)
	s.touch()
	if pageID == s.activePageID {
		first := s.project.Pages[0]
		s.activePageID = first.ID
		s.activeLayerID = ""
		if len(first.Layers) > 0 {
			s.activeLayerID = first.Layers[0].ID
		}
		s.resetHistory()
	}
}

// DuplicatePage deep-clones a page and inserts the copy right after the
// source.
func (s *Store) DuplicatePage(pageID string) string {
	idx := s.pageIndex(pageID)
	if idx < 0 {
		return ""
	}
	clone := s.project.Pages[idx].Clone()
	clone.ID = typeid.NewPageID()
	clone.Name = s.project.Pages[idx].Name + " copy"
	for li := range clone.Layers {
		clone.Layers[li].ID = typeid.NewLayerID()
		for ei := range clone.Layers[li].Elements {
			clone.Layers[li].Elements[ei].ID = typeid.NewElementID()
		}
	}
	s.project.Pages = append(s.project.Pages, document.Page{})
	copy(s.project.Pages[idx+2:], s.project.Pages[idx+1:])
	s.project.Pages[idx+1] = clone
	s.touch()
	return clone.ID
}

// ReorderPages moves a page between positions. Equal or out-of-range
// indices are no-ops.
func (s *Store) ReorderPages(from, to int) {
	if s.project == nil {
		return
	}
	s.project.Pages = reorder(s.project.Pages, from, to, func() { s.touch() })
}

// reorder moves a slice entry from one index to another, invoking onMove
// only when something actually changed.
func reorder[T any](items []T, from, to int, onMove func()) []T {
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return items
	}
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items, *new(T))
	copy(items[to+1:], items[to:])
	items[to] = moved
	onMove()
	return items
}
