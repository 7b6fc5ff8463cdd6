package model

// WindowMap is a window collection keyed by id that iterates in insertion order.
type WindowMap struct {
	ids  []uint64
	byID map[uint64]*Window
}

// Set inserts w, or replaces the window with the same id in place.
func (m *WindowMap) Set(w *Window) {
	if m.byID == nil {
		m.byID = make(map[uint64]*Window)
	}
	if _, ok := m.byID[w.ID]; !ok {
		m.ids = append(m.ids, w.ID)
	}
	m.byID[w.ID] = w
}

func (m *WindowMap) Get(id uint64) (*Window, bool) {
	w, ok := m.byID[id]
	return w, ok
}

// Delete removes the window with id, keeping the order of the rest.
func (m *WindowMap) Delete(id uint64) bool {
	if _, ok := m.byID[id]; !ok {
		return false
	}
	delete(m.byID, id)
	for i, v := range m.ids {
		if v == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
	return true
}

func (m *WindowMap) Len() int { return len(m.ids) }

// First returns the earliest inserted window, or nil.
func (m *WindowMap) First() *Window {
	if len(m.ids) == 0 {
		return nil
	}
	return m.byID[m.ids[0]]
}

// All returns the windows in insertion order.
func (m *WindowMap) All() []*Window {
	out := make([]*Window, 0, len(m.ids))
	for _, id := range m.ids {
		out = append(out, m.byID[id])
	}
	return out
}
