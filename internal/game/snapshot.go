package game

import "github.com/jaminalder/codex-binoxxo/internal/domain"

// Cell is one board cell as renderers see it.
type Cell struct {
	Col, Row  int
	Field     domain.Field
	Editable  bool
	MoveValid bool
	// Error asks the renderer to highlight the cell as a rule violation.
	Error bool
}

// Snapshot is a read-only copy of a State with the derived facts renderers
// need. It shares nothing with the State it came from.
type Snapshot struct {
	Size       int
	Rows       [][]Cell
	Full       bool
	Valid      bool
	Solved     bool
	Difficulty domain.Difficulty
	Language   domain.Language
	Helper     domain.Helper
}

func (st *State) Snapshot(engine Engine) Snapshot {
	n := st.Board.Size()
	helper := st.Settings.Helper.On()
	rows := make([][]Cell, n)
	for row := 0; row < n; row++ {
		rows[row] = make([]Cell, n)
		for col := 0; col < n; col++ {
			f := st.Board.Get(col, row)
			editable := st.Mask.IsEditable(col, row)
			valid := engine.IsMoveValid(st.Board, col, row)
			rows[row][col] = Cell{
				Col:       col,
				Row:       row,
				Field:     f,
				Editable:  editable,
				MoveValid: valid,
				Error:     helper && editable && f != domain.Empty && !valid,
			}
		}
	}
	full := engine.IsBoardFull(st.Board)
	valid := engine.IsBoardValid(st.Board)
	return Snapshot{
		Size:       n,
		Rows:       rows,
		Full:       full,
		Valid:      valid,
		Solved:     full && valid,
		Difficulty: st.Settings.Difficulty,
		Language:   st.Settings.Language,
		Helper:     st.Settings.Helper,
	}
}
