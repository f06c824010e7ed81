package scene

import (
	"sort"

	"github.com/example/glassboard/internal/geom"
)

// Store owns the canvas objects in paint order together with the selection.
// The last object paints on top and wins hit tests.
type Store struct {
	objects  []*Object
	primary  int
	selected map[int]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{primary: -1, selected: map[int]struct{}{}}
}

// Len returns the number of objects.
func (s *Store) Len() int { return len(s.objects) }

// At returns the object at index i.
func (s *Store) At(i int) *Object { return s.objects[i] }

// Objects returns the objects in paint order. The slice must not be
// modified.
func (s *Store) Objects() []*Object { return s.objects }

// Append adds o on top and returns its index.
func (s *Store) Append(o *Object) int {
	s.objects = append(s.objects, o)
	return len(s.objects) - 1
}

// IndexOf returns the index of o or -1.
func (s *Store) IndexOf(o *Object) int {
	for i, v := range s.objects {
		if v == o {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the object at i. A primary selection at or after i is
// cleared; the multi-selection drops i and shifts later indices down.
func (s *Store) RemoveAt(i int) {
	if i < 0 || i >= len(s.objects) {
		return
	}
	copy(s.objects[i:], s.objects[i+1:])
	s.objects[len(s.objects)-1] = nil
	s.objects = s.objects[:len(s.objects)-1]
	if s.primary >= i {
		s.primary = -1
	}
	next := make(map[int]struct{}, len(s.selected))
	for j := range s.selected {
		switch {
		case j < i:
			next[j] = struct{}{}
		case j > i:
			next[j-1] = struct{}{}
		}
	}
	s.selected = next
}

// Remove deletes o if present.
func (s *Store) Remove(o *Object) {
	s.RemoveAt(s.IndexOf(o))
}

// RemoveSelected deletes every selected object and the primary.
func (s *Store) RemoveSelected() int {
	idx := s.Selected()
	if p, ok := s.Primary(); ok && !s.IsSelected(p) {
		idx = append(idx, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	for _, i := range idx {
		s.RemoveAt(i)
	}
	s.ClearSelection()
	return len(idx)
}

// Clear removes every object and the selection.
func (s *Store) Clear() {
	s.objects = nil
	s.ClearSelection()
}

// Dimensions returns the width and height of o, explicit or by kind.
func (s *Store) Dimensions(o *Object) (float64, float64) { return o.Size() }

// HitTest returns the topmost object whose bounds contain p.
func (s *Store) HitTest(p geom.Point) (int, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].Bounds().Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// CentresIn returns the indices of objects whose centre lies in r.
func (s *Store) CentresIn(r geom.Rect) []int {
	var out []int
	for i, o := range s.objects {
		if r.Contains(o.Centre()) {
			out = append(out, i)
		}
	}
	return out
}

// Primary returns the primary selection.
func (s *Store) Primary() (int, bool) {
	if s.primary < 0 || s.primary >= len(s.objects) {
		return -1, false
	}
	return s.primary, true
}

// PrimaryObject returns the primary selection or nil.
func (s *Store) PrimaryObject() *Object {
	if i, ok := s.Primary(); ok {
		return s.objects[i]
	}
	return nil
}

// SetPrimary makes i the primary selection and adds it to the
// multi-selection.
func (s *Store) SetPrimary(i int) {
	if i < 0 || i >= len(s.objects) {
		s.primary = -1
		return
	}
	s.primary = i
	s.selected[i] = struct{}{}
}

// Select makes i the only selected object.
func (s *Store) Select(i int) {
	s.ClearSelection()
	s.SetPrimary(i)
}

// ClearPrimary drops the primary selection but keeps the multi-selection.
func (s *Store) ClearPrimary() { s.primary = -1 }

// Selected returns the multi-selection in ascending order.
func (s *Store) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SelectedObjects returns the multi-selected objects in paint order.
func (s *Store) SelectedObjects() []*Object {
	idx := s.Selected()
	out := make([]*Object, len(idx))
	for k, i := range idx {
		out[k] = s.objects[i]
	}
	return out
}

// IsSelected reports whether i is in the multi-selection.
func (s *Store) IsSelected(i int) bool {
	_, ok := s.selected[i]
	return ok
}

// SetSelected replaces the multi-selection and clears the primary.
func (s *Store) SetSelected(idx []int) {
	s.ClearSelection()
	for _, i := range idx {
		if i >= 0 && i < len(s.objects) {
			s.selected[i] = struct{}{}
		}
	}
}

// ToggleSelected flips membership of i. Removing the primary also clears
// it.
func (s *Store) ToggleSelected(i int) {
	if s.IsSelected(i) {
		delete(s.selected, i)
		if s.primary == i {
			s.primary = -1
		}
		return
	}
	s.SetPrimary(i)
}

// ClearSelection drops the primary and the multi-selection.
func (s *Store) ClearSelection() {
	s.primary = -1
	s.selected = map[int]struct{}{}
}
