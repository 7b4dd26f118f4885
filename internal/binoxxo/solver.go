package binoxxo

import "github.com/jaminalder/codex-binoxxo/internal/domain"

// Unlimited disables the guess budget of Solve.
const Unlimited = -1

// Result summarises a Solve run.
type Result struct {
	// Solutions found, never more than the requested limit.
	Solutions int
	// Guesses is the number of branch points the search used.
	Guesses int
	// Exhausted is set when the guess budget ran out before the search
	// finished; Solutions is then a lower bound.
	Exhausted bool
	// Solution holds the first solution found, if any.
	Solution *domain.Board
}

// Unique reports whether the search proved exactly one solution.
func (r Result) Unique() bool { return r.Solutions == 1 && !r.Exhausted }

// Solve counts completions of b, stopping at limit (zero or less counts
// all). Forced cells are filled by propagation; every remaining branch point
// costs one guess. A negative budget means no limit. b is not modified.
func Solve(b *domain.Board, limit, budget int) Result {
	s := &search{limit: limit, budget: budget}
	s.run(b.Clone())
	return Result{
		Solutions: s.found,
		Guesses:   s.used,
		Exhausted: s.exhausted,
		Solution:  s.first,
	}
}

type search struct {
	limit, budget int
	used, found   int
	exhausted     bool
	first         *domain.Board
}

func (s *search) done() bool {
	return s.exhausted || (s.limit > 0 && s.found >= s.limit)
}

func (s *search) run(b *domain.Board) {
	if s.done() || !propagate(b) {
		return
	}
	col, row, ok := firstEmpty(b)
	if !ok {
		if IsBoardValid(b) {
			s.found++
			if s.first == nil {
				s.first = b
			}
		}
		return
	}
	if s.budget >= 0 && s.used >= s.budget {
		s.exhausted = true
		return
	}
	s.used++
	for _, f := range [...]domain.Field{domain.X, domain.O} {
		if s.done() {
			return
		}
		next := b.Clone()
		next.Set(col, row, f)
		if IsMoveValid(next, col, row) {
			s.run(next)
		}
	}
}

// propagate fills every cell that admits only one symbol until nothing
// changes. Pair, gap and count rules all reduce to "the other symbol would
// break a line". Returns false on contradiction.
func propagate(b *domain.Board) bool {
	n := b.Size()
	for {
		changed := false
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				if b.Get(col, row) != domain.Empty {
					continue
				}
				xOK := fits(b, col, row, domain.X)
				oOK := fits(b, col, row, domain.O)
				switch {
				case !xOK && !oOK:
					return false
				case xOK && !oOK:
					b.Set(col, row, domain.X)
					changed = true
				case oOK && !xOK:
					b.Set(col, row, domain.O)
					changed = true
				}
			}
		}
		if !changed {
			return true
		}
	}
}

func fits(b *domain.Board, col, row int, f domain.Field) bool {
	b.Set(col, row, f)
	ok := IsMoveValid(b, col, row)
	b.Clear(col, row)
	return ok
}

func firstEmpty(b *domain.Board) (col, row int, ok bool) {
	n := b.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if b.Get(col, row) == domain.Empty {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}
