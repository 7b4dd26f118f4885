package game

import (
	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/domain"
)

// Persist is a settings write the caller should perform after Update.
type Persist struct {
	Key   string
	Value any
}

// Reducer applies intents to a State. It never performs I/O; settings
// changes are returned as Persist effects.
type Reducer struct {
	engine Engine
	log    zerolog.Logger
}

func NewReducer(engine Engine, log zerolog.Logger) *Reducer {
	return &Reducer{engine: engine, log: log}
}

// Update mutates st according to in and returns the writes to persist.
// Intents that do not apply (locked or out-of-range cells, unknown values)
// leave st untouched.
func (r *Reducer) Update(st *State, in Intent) []Persist {
	switch in := in.(type) {
	case Toggle:
		r.toggle(st, in.Col, in.Row)
		return nil

	case NewGame:
		if !in.Difficulty.Valid() {
			r.log.Debug().Int("difficulty", int(in.Difficulty)).Msg("new game with unknown difficulty ignored")
			return nil
		}
		size, guesses := in.Difficulty.Params()
		board := r.engine.GeneratePuzzle(size, guesses)
		st.Board = board
		st.Mask = domain.DeriveMask(board)
		st.Settings.Difficulty = in.Difficulty
		return []Persist{{Key: DifficultyKey, Value: in.Difficulty}}

	case Clear:
		n := st.Board.Size()
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				if st.Mask.IsEditable(col, row) {
					st.Board.Clear(col, row)
				}
			}
		}
		return nil

	case ToggleLanguage:
		st.Settings.Language = st.Settings.Language.Next()
		return []Persist{{Key: LanguageKey, Value: st.Settings.Language}}

	case ToggleHelper:
		st.Settings.Helper = st.Settings.Helper.Toggle()
		return []Persist{{Key: HelperKey, Value: st.Settings.Helper}}
	}

	r.log.Debug().Msgf("ignoring intent %T", in)
	return nil
}

func (r *Reducer) toggle(st *State, col, row int) {
	if !st.Board.InBounds(col, row) {
		r.log.Debug().Int("col", col).Int("row", row).Int("size", st.Board.Size()).Msg("toggle out of range")
		return
	}
	if !st.Mask.IsEditable(col, row) {
		return
	}
	switch st.Board.Get(col, row) {
	case domain.Empty:
		st.Board.Set(col, row, domain.X)
	case domain.X:
		st.Board.Set(col, row, domain.O)
	default:
		st.Board.Clear(col, row)
	}
}
