package thread

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// ExpandState is the view state of the reply toggles, kept apart from the
// immutable comment tree. Nodes are expanded unless collapsed here.
type ExpandState struct {
	collapsed mapset.Set[int64]
}

func NewExpandState() *ExpandState {
	return &ExpandState{collapsed: mapset.NewSet[int64]()}
}

func (e *ExpandState) Expanded(id int64) bool {
	return !e.collapsed.Contains(id)
}

// Toggle flips a node and returns whether it is now expanded.
func (e *ExpandState) Toggle(id int64) bool {
	if e.collapsed.Contains(id) {
		e.collapsed.Remove(id)
		return true
	}
	e.collapsed.Add(id)
	return false
}

func (e *ExpandState) Collapse(id int64) {
	e.collapsed.Add(id)
}

func (e *ExpandState) Expand(id int64) {
	e.collapsed.Remove(id)
}
