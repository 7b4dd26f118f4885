// Package game holds the puzzle controller: the per-session state, the closed
// set of intents and the reducer that applies them.
package game

import (
	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
)

// Engine is the puzzle generator and rule checker the controller consumes.
type Engine interface {
	GeneratePuzzle(size, guesses int) *domain.Board
	IsBoardFull(b *domain.Board) bool
	IsBoardValid(b *domain.Board) bool
	IsMoveValid(b *domain.Board, col, row int) bool
}

// Settings storage keys. Each setting is persisted under its own key.
const (
	DifficultyKey = "binoxxo-difficulty"
	LanguageKey   = "binoxxo-language"
	HelperKey     = "binoxxo-helper"
)

// State is everything one session needs. Board and Mask are replaced
// together, so the mask always matches the board it was derived from.
type State struct {
	Board     *domain.Board
	Mask      domain.Mask
	Settings  domain.Settings
	Resources *i18n.ResourceManager
}

// NewState generates the first puzzle for settings.Difficulty.
func NewState(engine Engine, settings domain.Settings, resources *i18n.ResourceManager) *State {
	if !settings.Difficulty.Valid() {
		settings.Difficulty = domain.Easy
	}
	size, guesses := settings.Difficulty.Params()
	board := engine.GeneratePuzzle(size, guesses)
	return &State{
		Board:     board,
		Mask:      domain.DeriveMask(board),
		Settings:  settings,
		Resources: resources,
	}
}

// Bundle returns the translations of the active language.
func (st *State) Bundle() *i18n.Bundle {
	return st.Resources.Bundle(st.Settings.Language.String())
}
