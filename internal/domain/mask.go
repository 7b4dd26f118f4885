package domain

// Mask records which cells the player may change. It is derived once from a
// freshly generated board and never recomputed afterwards.
type Mask struct {
	size     int
	editable []bool
}

// DeriveMask marks every cell that is empty in b as editable.
func DeriveMask(b *Board) Mask {
	size := b.Size()
	editable := make([]bool, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			editable[col+size*row] = b.Get(col, row) == Empty
		}
	}
	return Mask{size: size, editable: editable}
}

func (m Mask) Size() int { return m.size }

// IsEditable reports false for coordinates outside the mask.
func (m Mask) IsEditable(col, row int) bool {
	if col < 0 || row < 0 || col >= m.size || row >= m.size {
		return false
	}
	return m.editable[col+m.size*row]
}
