package session

// MenuID names one renderable screen.
type MenuID string

const (
	MenuMain       MenuID = "main"
	MenuFilters    MenuID = "filters"
	MenuBrands     MenuID = "brands"
	MenuSizes      MenuID = "sizes"
	MenuAdmin      MenuID = "admin"
	MenuRemoveList MenuID = "remove_shoes"
	MenuAdminList  MenuID = "admin_list_shoes"
)

// MenuStack records the screens a user walked through for back navigation.
type MenuStack struct {
	items []MenuID
}

// Enter pushes id unless it already sits on top.
func (s *MenuStack) Enter(id MenuID) {
	if n := len(s.items); n > 0 && s.items[n-1] == id {
		return
	}
	s.items = append(s.items, id)
}

// Back pops the current screen and returns the one below it. With one screen
// or none left the stack is kept and MenuMain is returned.
func (s *MenuStack) Back() MenuID {
	if len(s.items) <= 1 {
		return MenuMain
	}
	s.items = s.items[:len(s.items)-1]
	return s.items[len(s.items)-1]
}

// Top returns the current screen, or MenuMain on an empty stack.
func (s *MenuStack) Top() MenuID {
	if len(s.items) == 0 {
		return MenuMain
	}
	return s.items[len(s.items)-1]
}

// Len returns the stack depth.
func (s *MenuStack) Len() int { return len(s.items) }

// Items returns a copy of the stack, bottom first.
func (s *MenuStack) Items() []MenuID {
	return append([]MenuID(nil), s.items...)
}
