package domain

import (
	"errors"
	"strings"
)

// Field represents a board cell state.
type Field uint8

const (
	Empty Field = iota
	X
	O
)

func (f Field) String() string {
	switch f {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Errors returned by board helpers.
var (
	ErrMalformedBoard = errors.New("malformed board")
)

// Board is a size x size grid stored row-major.
type Board struct {
	size  int
	cells []Field
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) *Board {
	if size < 0 {
		size = 0
	}
	return &Board{size: size, cells: make([]Field, size*size)}
}

func (b *Board) Size() int { return b.size }

// InBounds reports whether (col, row) addresses a cell of b.
func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < b.size && row < b.size
}

func (b *Board) Get(col, row int) Field {
	return b.cells[row*b.size+col]
}

// Set stores f at (col, row). Setting Empty is the same as Clear.
func (b *Board) Set(col, row int, f Field) {
	b.cells[row*b.size+col] = f
}

func (b *Board) Clear(col, row int) {
	b.cells[row*b.size+col] = Empty
}

func (b *Board) Clone() *Board {
	out := &Board{size: b.size, cells: make([]Field, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

func (b *Board) Equal(o *Board) bool {
	if o == nil || b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders one line per row using X, O and _ for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			switch b.Get(col, row) {
			case X:
				sb.WriteByte('X')
			case O:
				sb.WriteByte('O')
			default:
				sb.WriteByte('_')
			}
		}
		if row < b.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard is the inverse of String. Blank lines and surrounding spaces are ignored.
func ParseBoard(s string) (*Board, error) {
	var lines []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	b := NewBoard(len(lines))
	for row, ln := range lines {
		if len(ln) != len(lines) {
			return nil, ErrMalformedBoard
		}
		for col, ch := range ln {
			switch ch {
			case 'X', 'x':
				b.Set(col, row, X)
			case 'O', 'o':
				b.Set(col, row, O)
			case '_', '.':
			default:
				return nil, ErrMalformedBoard
			}
		}
	}
	return b, nil
}
