// Package binoxxo implements the puzzle rules, a propagating solver and the
// puzzle generator that the game core consumes.
//
// Rules for a size x size board (size even):
//   - no more than two equal symbols next to each other in a row or column
//   - every row and column holds size/2 X and size/2 O
//   - no two full rows and no two full columns are identical
package binoxxo

import "github.com/jaminalder/codex-binoxxo/internal/domain"

// IsBoardFull reports whether no cell is empty.
func IsBoardFull(b *domain.Board) bool {
	n := b.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if b.Get(col, row) == domain.Empty {
				return false
			}
		}
	}
	return true
}

// IsBoardValid checks every row and column against the rules for their
// current content. A partially filled board can be valid.
func IsBoardValid(b *domain.Board) bool {
	n := b.Size()
	for i := 0; i < n; i++ {
		if !lineValid(b, rowLine, i) || !lineValid(b, colLine, i) {
			return false
		}
	}
	for i := 0; i < n; i++ {
		if !lineUnique(b, rowLine, i) || !lineUnique(b, colLine, i) {
			return false
		}
	}
	return true
}

// IsMoveValid checks the row and column through (col, row). It is defined
// for every cell, empty or not.
func IsMoveValid(b *domain.Board, col, row int) bool {
	if !b.InBounds(col, row) {
		return false
	}
	return lineValid(b, rowLine, row) &&
		lineValid(b, colLine, col) &&
		lineUnique(b, rowLine, row) &&
		lineUnique(b, colLine, col)
}

type axis bool

const (
	rowLine axis = false
	colLine axis = true
)

// at returns the k-th cell of line i along the axis.
func at(b *domain.Board, a axis, i, k int) domain.Field {
	if a == colLine {
		return b.Get(i, k)
	}
	return b.Get(k, i)
}

// lineValid rejects triples and symbols exceeding half the line.
func lineValid(b *domain.Board, a axis, i int) bool {
	n := b.Size()
	xs, os := 0, 0
	for k := 0; k < n; k++ {
		f := at(b, a, i, k)
		switch f {
		case domain.X:
			xs++
		case domain.O:
			os++
		default:
			continue
		}
		if k >= 2 && at(b, a, i, k-1) == f && at(b, a, i, k-2) == f {
			return false
		}
	}
	return xs <= n/2 && os <= n/2
}

func lineFull(b *domain.Board, a axis, i int) bool {
	for k := 0; k < b.Size(); k++ {
		if at(b, a, i, k) == domain.Empty {
			return false
		}
	}
	return true
}

func lineEqual(b *domain.Board, a axis, i, j int) bool {
	for k := 0; k < b.Size(); k++ {
		if at(b, a, i, k) != at(b, a, j, k) {
			return false
		}
	}
	return true
}

// lineUnique reports false when line i is full and another full line along
// the same axis matches it.
func lineUnique(b *domain.Board, a axis, i int) bool {
	if !lineFull(b, a, i) {
		return true
	}
	for j := 0; j < b.Size(); j++ {
		if j != i && lineFull(b, a, j) && lineEqual(b, a, i, j) {
			return false
		}
	}
	return true
}
