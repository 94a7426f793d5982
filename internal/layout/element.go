package layout

import (
	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/typeid"
)

// DuplicateOffset is the position delta applied to duplicated and pasted
// elements so the copy stays visible as distinct from the original.
const DuplicateOffset = 20.0

// AddElement assigns a fresh id and appends the element to the layer's
// paint order, making it topmost within that layer.
func (s *Store) AddElement(pageID, layerID string, el document.Element) string {
	page := s.pageByID(pageID)
	if page == nil {
		return ""
	}
	idx := layerIndex(page, layerID)
	if idx < 0 {
		return ""
	}
	s.recordHistory(pageID)
	el.ID = typeid.NewElementID()
	page.Layers[idx].Elements = append(page.Layers[idx].Elements, el)
	s.touch()
	return el.ID
}

// ElementPatch is a partial element update; nil fields are left untouched.
// Kind payloads replace the whole payload when set. Cross-field consistency
// (e.g. size minimums) is the interaction layer's responsibility.
type ElementPatch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	ScaleX   *float64
	ScaleY   *float64
	Opacity  *float64
	Locked   *bool
	Visible  *bool

	Text  *document.TextElement
	Image *document.ImageElement
	Data  *document.DataElement
}

// UpdateElement shallow-merges the patch into the element.
func (s *Store) UpdateElement(pageID, layerID, elementID string, patch ElementPatch) {
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	li := layerIndex(page, layerID)
	if li < 0 {
		return
	}
	ei := elementIndex(&page.Layers[li], elementID)
	if ei < 0 {
		return
	}
	s.recordHistory(pageID)
	el := &page.Layers[li].Elements[ei]
	if patch.X != nil {
		el.X = *patch.X
	}
	if patch.Y != nil {
		el.Y = *patch.Y
	}
	if patch.Width != nil {
		el.Width = *patch.Width
	}
	if patch.Height != nil {
		el.Height = *patch.Height
	}
	if patch.Rotation != nil {
		el.Rotation = *patch.Rotation
	}
	if patch.ScaleX != nil {
		el.ScaleX = *patch.ScaleX
	}
	if patch.ScaleY != nil {
		el.ScaleY = *patch.ScaleY
	}
	if patch.Opacity != nil {
		el.Opacity = *patch.Opacity
	}
	if patch.Locked != nil {
		el.Locked = *patch.Locked
	}
	if patch.Visible != nil {
		el.Visible = *patch.Visible
	}
	if patch.Text != nil && el.Kind == document.ElementKindText {
		el.Text = patch.Text
	}
	if patch.Image != nil && el.Kind == document.ElementKindImage {
		el.Image = patch.Image
	}
	if patch.Data != nil && el.Kind == document.ElementKindData {
		el.Data = patch.Data
	}
	s.touch()
}

// DeleteElement removes an element from its layer.
func (s *Store) DeleteElement(pageID, layerID, elementID string) {
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	li := layerIndex(page, layerID)
	if li < 0 {
		return
	}
	ei := elementIndex(&page.Layers[li], elementID)
	if ei < 0 {
		return
	}
	s.recordHistory(pageID)
	layer := &page.Layers[li]
	layer.Elements = append(layer.Elements[:ei], layer.Elements[ei+1:]...)
	s.touch()
}

// MoveElement atomically removes the element from its source layer and
// appends it to the destination layer.
func (s *Store) MoveElement(pageID, fromLayerID, toLayerID, elementID string) {
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	fromIdx := layerIndex(page, fromLayerID)
	toIdx := layerIndex(page, toLayerID)
	if fromIdx < 0 || toIdx < 0 {
		return
	}
	ei := elementIndex(&page.Layers[fromIdx], elementID)
	if ei < 0 {
		return
	}
	s.recordHistory(pageID)
	el := page.Layers[fromIdx].Elements[ei]
	page.Layers[fromIdx].Elements = append(page.Layers[fromIdx].Elements[:ei], page.Layers[fromIdx].Elements[ei+1:]...)
	page.Layers[toIdx].Elements = append(page.Layers[toIdx].Elements, el)
	s.touch()
}

// DuplicateElement deep-clones an element, offsets it by DuplicateOffset,
// and inserts the copy right after the source in the layer's paint order.
func (s *Store) DuplicateElement(pageID, layerID, elementID string) string {
	page := s.pageByID(pageID)
	if page == nil {
		return ""
	}
	li := layerIndex(page, layerID)
	if li < 0 {
		return ""
	}
	layer := &page.Layers[li]
	ei := elementIndex(layer, elementID)
	if ei < 0 {
		return ""
	}
	s.recordHistory(pageID)
	clone := layer.Elements[ei].Clone()
	clone.ID = typeid.NewElementID()
	clone.X += DuplicateOffset
	clone.Y += DuplicateOffset
	layer.Elements = append(layer.Elements, document.Element{})
	copy(layer.Elements[ei+2:], layer.Elements[ei+1:])
	layer.Elements[ei+1] = clone
	s.touch()
	return clone.ID
}

// ReorderElements moves an element between positions in the layer's paint
// order.
func (s *Store) ReorderElements(pageID, layerID string, from, to int) {
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	li := layerIndex(page, layerID)
	if li < 0 {
		return
	}
	layer := &page.Layers[li]
	if from != to && from >= 0 && to >= 0 && from < len(layer.Elements) && to < len(layer.Elements) {
		s.recordHistory(pageID)
	}
	layer.Elements = reorder(layer.Elements, from, to, func() { s.touch() })
}
