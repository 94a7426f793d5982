package layout

import "github.com/menucraft/menucraft/internal/document"

// maxHistory caps the number of retained past page snapshots; the oldest
// entries are dropped beyond it.
const maxHistory = 50

// history is an undo/redo stack of page snapshots. The "present" state is
// the live active page inside the project tree; past and future hold deep
// clones. Switching the active page resets the stacks — cross-page undo is
// not supported.
type history struct {
	past   []document.Page
	future []document.Page
}

func (s *Store) resetHistory() {
	s.history = history{}
}

// recordHistory pushes the active page's current snapshot onto the undo
// stack and clears the redo stack. Mutations targeting pages other than the
// active one are not undoable.
func (s *Store) recordHistory(pageID string) {
	if pageID != s.activePageID {
		return
	}
	page := s.pageByID(pageID)
	if page == nil {
		return
	}
	s.history.past = append(s.history.past, page.Clone())
	if len(s.history.past) > maxHistory {
		s.history.past = s.history.past[len(s.history.past)-maxHistory:]
	}
	s.history.future = nil
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool { return len(s.history.past) > 0 }

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool { return len(s.history.future) > 0 }

// Undo restores the previous snapshot of the active page, pushing the
// current state onto the redo stack.
func (s *Store) Undo() bool {
	if len(s.history.past) == 0 {
		return false
	}
	idx := s.pageIndex(s.activePageID)
	if idx < 0 {
		return false
	}
	current := s.project.Pages[idx].Clone()
	s.history.future = append(s.history.future, current)

	restored := s.history.past[len(s.history.past)-1]
	s.history.past = s.history.past[:len(s.history.past)-1]
	s.project.Pages[idx] = restored
	s.touch()
	return true
}

// Redo is the mirror of Undo.
func (s *Store) Redo() bool {
	if len(s.history.future) == 0 {
		return false
	}
	idx := s.pageIndex(s.activePageID)
	if idx < 0 {
		return false
	}
	current := s.project.Pages[idx].Clone()
	s.history.past = append(s.history.past, current)
	if len(s.history.past) > maxHistory {
		s.history.past = s.history.past[len(s.history.past)-maxHistory:]
	}

	restored := s.history.future[len(s.history.future)-1]
	s.history.future = s.history.future[:len(s.history.future)-1]
	s.project.Pages[idx] = restored
	s.touch()
	return true
}

// HistoryDepth returns the current undo and redo stack sizes.
func (s *Store) HistoryDepth() (past, future int) {
	return len(s.history.past), len(s.history.future)
}
