package layout

import (
	"fmt"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/typeid"
)

// AddLayer appends an empty layer to the page and returns its id.
func (s *Store) AddLayer(pageID string) string {
	page := s.pageByID(pageID)
	if page == nil {
		return ""
	}
	s.recordHistory(pageID)
	layer := document.NewLayer(fmt.Sprintf("Layer %d", len(page.Layers)+1))
	page.Layers = append(page.Layers, layer)
	s.touch()
	return layer.ID
}

// DeleteLayer removes a layer. A page always retains at least one layer;
// deleting the last one is refused.
func (s *Store) DeleteLayer(pageID, layerID string) {
	page := s.pageByID(pageID)
	if page == nil || len(page.Layers) <= 1 {
		return
	}
	idx := layerIndex(page, layerID)
	if idx < 0 {
		return
	}
	s.recordHistory(pageID)
	page.Layers = append(page.Layers[:idx], page.Layers[idx+1:]...)
	if s.activeLayerID == layerID {
		s.activeLayerID = page.Layers[0].ID
	}
	s.touch()
}

// DuplicateLayer deep-clones a layer (fresh ids throughout) and inserts the
// copy right after the source.
func (s *Store) DuplicateLayer(pageID, layerID string) string {
	page := s.pageByID(pageID)
	if page == nil {
		return ""
	}
	idx := layerIndex(page, layerID)
	if idx < 0 {
		return ""
	}
	s.recordHistory(pageID)
	clone := page.Layers[idx].Clone()
	clone.ID = typeid.NewLayerID()
	clone.Name = page.Layers[idx].Name + " copy"
	for ei := range clone.Elements {
		clone.Elements[ei].ID = typeid.NewElementID()
	}
	page.Layers = append(page.Layers, document.Layer{})
	copy(page.Layers[idx+2:], page.Layers[idx+1:])
	page.Layers[idx+1] = clone
	s.touch()
	return clone.ID
}

// ReorderLayers moves a layer between positions in the page's paint order.
func (s *Store) ReorderLayers(pageID string, from, to int) {
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	if from != to && from >= 0 && to >= 0 && from < len(page.Layers) && to < len(page.Layers) {
		s.recordHistory(pageID)
	}
	page.Layers = reorder(page.Layers, from, to, func() { s.touch() })
}

// UpdateLayer applies a partial update to a layer's own attributes.
func (s *Store) UpdateLayer(pageID, layerID string, patch LayerPatch) {
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	idx := layerIndex(page, layerID)
	if idx < 0 {
		return
	}
	s.recordHistory(pageID)
	layer := &page.Layers[idx]
	if patch.Name != nil {
		layer.Name = *patch.Name
	}
	if patch.Visible != nil {
		layer.Visible = *patch.Visible
	}
	if patch.Locked != nil {
		layer.Locked = *patch.Locked
	}
	if patch.Opacity != nil {
		layer.Opacity = *patch.Opacity
	}
	s.touch()
}

// LayerPatch is a partial layer update; nil fields are left untouched.
type LayerPatch struct {
	Name    *string
	Visible *bool
	Locked  *bool
	Opacity *float64
}
