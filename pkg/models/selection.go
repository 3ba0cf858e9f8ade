package models

// Selection points at the entity currently being edited, or at nothing.
// The workspace uses it for the active file and the canvas for the selected
// block; each owner keeps it pointing at something that exists.
type Selection struct {
	id  string
	set bool
}

// Select returns a selection pointing at id.
func Select(id string) Selection {
	return Selection{id: id, set: true}
}

// ID returns the selected id and whether anything is selected.
func (s Selection) ID() (string, bool) {
	return s.id, s.set
}

// Is reports whether id is the selected entity.
func (s Selection) Is(id string) bool {
	return s.set && s.id == id
}

func (s Selection) Empty() bool {
	return !s.set
}

// String returns the selected id, or "" when nothing is selected.
func (s Selection) String() string {
	return s.id
}
