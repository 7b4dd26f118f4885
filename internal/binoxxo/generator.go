package binoxxo

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/metrics"
)

// Engine generates puzzles and answers rule queries. It is safe for
// concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an engine whose puzzles are reproducible for a given seed.
func New(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// GeneratePuzzle returns a uniquely solvable board of the given size. Cells
// are cleared as long as the solver can still prove uniqueness with at most
// guesses branch points, so a larger budget leaves fewer givens.
func (e *Engine) GeneratePuzzle(size, guesses int) *domain.Board {
	if size <= 0 || size%2 != 0 {
		panic(fmt.Sprintf("binoxxo: board size %d must be positive and even", size))
	}
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	puzzle := e.fill(domain.NewBoard(size))
	if puzzle == nil {
		// every even size has a solution, so this is unreachable
		panic(fmt.Sprintf("binoxxo: no solution for size %d", size))
	}
	for _, i := range e.rng.Perm(size * size) {
		col, row := i%size, i/size
		f := puzzle.Get(col, row)
		puzzle.Clear(col, row)
		if !Solve(puzzle, 2, guesses).Unique() {
			puzzle.Set(col, row, f)
		}
	}

	metrics.PuzzlesGenerated.WithLabelValues(strconv.Itoa(size)).Inc()
	metrics.PuzzleGeneration.Observe(time.Since(start).Seconds())
	return puzzle
}

// fill completes b to a random full solution, or returns nil.
func (e *Engine) fill(b *domain.Board) *domain.Board {
	if !propagate(b) {
		return nil
	}
	col, row, ok := firstEmpty(b)
	if !ok {
		if IsBoardValid(b) {
			return b
		}
		return nil
	}
	order := [2]domain.Field{domain.X, domain.O}
	if e.rng.Intn(2) == 1 {
		order[0], order[1] = order[1], order[0]
	}
	for _, f := range order {
		next := b.Clone()
		next.Set(col, row, f)
		if !IsMoveValid(next, col, row) {
			continue
		}
		if done := e.fill(next); done != nil {
			return done
		}
	}
	return nil
}

func (e *Engine) IsBoardFull(b *domain.Board) bool { return IsBoardFull(b) }

func (e *Engine) IsBoardValid(b *domain.Board) bool { return IsBoardValid(b) }

func (e *Engine) IsMoveValid(b *domain.Board, col, row int) bool {
	return IsMoveValid(b, col, row)
}
