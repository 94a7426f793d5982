package layout

import (
	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/typeid"
)

// Copy deep-clones the named elements (from whichever layers of the active
// page currently hold them) into the clipboard. The clipboard never shares
// references with the live document.
func (s *Store) Copy(elementIDs []string) int {
	page := s.ActivePage()
	if page == nil || len(elementIDs) == 0 {
		return 0
	}
	wanted := make(map[string]bool, len(elementIDs))
	for _, id := range elementIDs {
		wanted[id] = true
	}
	var copied []document.Element
	for li := range page.Layers {
		for ei := range page.Layers[li].Elements {
			if wanted[page.Layers[li].Elements[ei].ID] {
				copied = append(copied, page.Layers[li].Elements[ei].Clone())
			}
		}
	}
	if len(copied) == 0 {
		return 0
	}
	s.clipboard = copied
	return len(copied)
}

// Cut copies the elements and removes the originals.
func (s *Store) Cut(elementIDs []string) int {
	n := s.Copy(elementIDs)
	if n == 0 {
		return 0
	}
	page := s.ActivePage()
	s.recordHistory(page.ID)
	wanted := make(map[string]bool, len(elementIDs))
	for _, id := range elementIDs {
		wanted[id] = true
	}
	for li := range page.Layers {
		layer := &page.Layers[li]
		kept := layer.Elements[:0]
		for _, el := range layer.Elements {
			if !wanted[el.ID] {
				kept = append(kept, el)
			}
		}
		layer.Elements = kept
	}
	s.touch()
	return n
}

// Paste inserts deep clones of the clipboard into the active layer (or the
// first layer when none is designated). Pasted elements get fresh ids and a
// (+20, +20) position offset. Returns the new ids.
func (s *Store) Paste() []string {
	page := s.ActivePage()
	if page == nil || len(s.clipboard) == 0 || len(page.Layers) == 0 {
		return nil
	}
	li := layerIndex(page, s.activeLayerID)
	if li < 0 {
		li = 0
	}
	s.recordHistory(page.ID)
	ids := make([]string, 0, len(s.clipboard))
	for _, el := range s.clipboard {
		clone := el.Clone()
		clone.ID = typeid.NewElementID()
		clone.X += DuplicateOffset
		clone.Y += DuplicateOffset
		page.Layers[li].Elements = append(page.Layers[li].Elements, clone)
		ids = append(ids, clone.ID)
	}
	s.touch()
	return ids
}

// ClipboardLen returns the number of elements held by the clipboard.
func (s *Store) ClipboardLen() int { return len(s.clipboard) }
