package session

// RenderTracking remembers the catalog messages last sent to a user so they
// can be deleted before the next render.
type RenderTracking struct {
	ItemMessageIDs []int
	// PaginationMessageID is zero when no controls message is tracked.
	PaginationMessageID int
}

// All returns every tracked message id, items first.
func (t RenderTracking) All() []int {
	ids := append([]int(nil), t.ItemMessageIDs...)
	if t.PaginationMessageID != 0 {
		ids = append(ids, t.PaginationMessageID)
	}
	return ids
}

// Record replaces the tracked ids.
func (t *RenderTracking) Record(items []int, pagination int) {
	t.ItemMessageIDs = append([]int(nil), items...)
	t.PaginationMessageID = pagination
}

// Reset forgets all tracked ids.
func (t *RenderTracking) Reset() {
	t.ItemMessageIDs = nil
	t.PaginationMessageID = 0
}
