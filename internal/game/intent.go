package game

import "github.com/jaminalder/codex-binoxxo/internal/domain"

// Intent is a user action. The set is closed: only the types in this file
// implement it.
type Intent interface {
	Name() string
	intent()
}

// Toggle cycles the cell at (Col, Row) through Empty, X, O.
type Toggle struct {
	Col, Row int
}

// NewGame replaces the board with a fresh puzzle of the given difficulty.
type NewGame struct {
	Difficulty domain.Difficulty
}

// Clear empties every editable cell.
type Clear struct{}

// ToggleLanguage switches to the next language.
type ToggleLanguage struct{}

// ToggleHelper flips move-validity hinting.
type ToggleHelper struct{}

func (Toggle) Name() string         { return "toggle" }
func (NewGame) Name() string        { return "new_game" }
func (Clear) Name() string          { return "clear" }
func (ToggleLanguage) Name() string { return "toggle_language" }
func (ToggleHelper) Name() string   { return "toggle_helper" }

func (Toggle) intent()         {}
func (NewGame) intent()        {}
func (Clear) intent()          {}
func (ToggleLanguage) intent() {}
func (ToggleHelper) intent()   {}
