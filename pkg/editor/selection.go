package editor

import "github.com/vanderheijden86/lumina/pkg/model"

// Selection holds at most one block id. The zero value is empty.
// It never caches the block itself; Resolve looks it up in the current
// forest each time.
type Selection struct {
	id string
}

// Set selects id. An empty id clears the selection.
func (s Selection) Set(id string) Selection {
	return Selection{id: id}
}

// Clear returns an empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// ID returns the selected id, if any.
func (s Selection) ID() (string, bool) {
	return s.id, s.id != ""
}

// IsSelected reports whether id is the selected block.
func (s Selection) IsSelected(id string) bool {
	return s.id != "" && s.id == id
}

// Resolve finds the selected block in forest.
func (s Selection) Resolve(forest model.Document) (*model.Block, bool) {
	if s.id == "" {
		return nil, false
	}
	return model.FindByID(forest, s.id)
}
