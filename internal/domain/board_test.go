package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

// helper to build a board from its String form
func mustParse(t *testing.T, s string) *Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard(%q) failed: %v", s, err)
	}
	return b
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard(6)
	if b.Size() != 6 {
		t.Fatalf("expected size 6, got %d", b.Size())
	}
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			if f := b.Get(col, row); f != Empty {
				t.Fatalf("expected empty board, cell (%d,%d) = %v", col, row, f)
			}
		}
	}
}

func TestSetGetClearAddressedByColRow(t *testing.T) {
	b := NewBoard(4)
	b.Set(3, 1, X)
	if b.Get(3, 1) != X {
		t.Fatalf("expected X at col 3 row 1")
	}
	if b.Get(1, 3) != Empty {
		t.Fatalf("col/row must not be swapped")
	}
	b.Set(3, 1, O)
	if b.Get(3, 1) != O {
		t.Fatalf("expected O after overwrite")
	}
	b.Clear(3, 1)
	if b.Get(3, 1) != Empty {
		t.Fatalf("expected Empty after Clear")
	}
}

func TestInBounds(t *testing.T) {
	b := NewBoard(6)
	cases := []struct {
		col, row int
		want     bool
	}{
		{0, 0, true}, {5, 5, true}, {-1, 0, false}, {0, -1, false}, {6, 0, false}, {0, 6, false},
	}
	for _, tc := range cases {
		if got := b.InBounds(tc.col, tc.row); got != tc.want {
			t.Fatalf("InBounds(%d,%d) = %v, want %v", tc.col, tc.row, got, tc.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := mustParse(t, "XO\nOX")
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatalf("clone should equal original")
	}
	c.Clear(0, 0)
	if b.Get(0, 0) != X {
		t.Fatalf("mutating clone changed original")
	}
	if b.Equal(c) {
		t.Fatalf("boards should differ after mutation")
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	in := "X_O_\n_XO_\nO__X\n____"
	b := mustParse(t, in)
	if b.String() != in {
		t.Fatalf("round trip mismatch:\n%s\nwant\n%s", b.String(), in)
	}
}

func TestParseBoardRejectsRagged(t *testing.T) {
	for _, in := range []string{"XO\nX", "XOX\nOXO", "XQ\nOX"} {
		if _, err := ParseBoard(in); !errors.Is(err, ErrMalformedBoard) {
			t.Fatalf("expected ErrMalformedBoard for %q, got %v", in, err)
		}
	}
}

func TestDeriveMaskMarksInitiallyEmptyCells(t *testing.T) {
	b := mustParse(t, "X__O\n_O__\n__X_\nO___")
	m := DeriveMask(b)
	if m.Size() != b.Size() {
		t.Fatalf("mask size %d != board size %d", m.Size(), b.Size())
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := b.Get(col, row) == Empty
			if m.IsEditable(col, row) != want {
				t.Fatalf("IsEditable(%d,%d) = %v, want %v", col, row, !want, want)
			}
		}
	}
}

func TestMaskIsFrozenAfterDerivation(t *testing.T) {
	b := mustParse(t, "X_\n_O")
	m := DeriveMask(b)
	// fill the editable cells and clear a given; the mask must not follow
	b.Set(1, 0, O)
	b.Set(0, 1, X)
	b.Clear(0, 0)
	if !m.IsEditable(1, 0) || !m.IsEditable(0, 1) {
		t.Fatalf("initially empty cells must stay editable")
	}
	if m.IsEditable(0, 0) || m.IsEditable(1, 1) {
		t.Fatalf("pre-filled cells must stay locked")
	}
}

func TestMaskOutOfRangeIsLocked(t *testing.T) {
	m := DeriveMask(NewBoard(2))
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if m.IsEditable(c[0], c[1]) {
			t.Fatalf("expected out-of-range %v to be locked", c)
		}
	}
}

func TestDifficultyParams(t *testing.T) {
	cases := []struct {
		d             Difficulty
		size, guesses int
	}{
		{Easy, 6, 5}, {Medium, 8, 10}, {Hard, 10, 15},
	}
	for _, tc := range cases {
		size, guesses := tc.d.Params()
		if size != tc.size || guesses != tc.guesses {
			t.Fatalf("%v.Params() = (%d,%d), want (%d,%d)", tc.d, size, guesses, tc.size, tc.guesses)
		}
	}
}

func TestLanguageCycle(t *testing.T) {
	if EnglishUS.Next() != GermanDE || GermanDE.Next() != EnglishUS {
		t.Fatalf("expected en-US <-> de-DE cycle")
	}
	if EnglishUS.String() != "en-US" || GermanDE.String() != "de-DE" {
		t.Fatalf("unexpected locale identifiers: %s %s", EnglishUS, GermanDE)
	}
}

func TestHelperToggle(t *testing.T) {
	if Disabled.Toggle() != Enabled || Enabled.Toggle() != Disabled {
		t.Fatalf("helper should flip between two states")
	}
	if Disabled.On() || !Enabled.On() {
		t.Fatalf("On() mismatch")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Difficulty != Easy || s.Language != EnglishUS || s.Helper != Disabled {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	var zero Settings
	if zero != s {
		t.Fatalf("zero Settings should equal defaults")
	}
}

func TestSettingsJSONUsesNames(t *testing.T) {
	b, err := json.Marshal(Hard)
	if err != nil || string(b) != `"Hard"` {
		t.Fatalf("Marshal(Hard) = %s, %v", b, err)
	}
	b, err = json.Marshal(GermanDE)
	if err != nil || string(b) != `"de-DE"` {
		t.Fatalf("Marshal(GermanDE) = %s, %v", b, err)
	}
	var h Helper
	if err := json.Unmarshal([]byte(`"Enabled"`), &h); err != nil || h != Enabled {
		t.Fatalf("Unmarshal helper = %v, %v", h, err)
	}
}

func TestSettingsJSONRejectsUnknown(t *testing.T) {
	var d Difficulty
	if err := json.Unmarshal([]byte(`"Insane"`), &d); !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue, got %v", err)
	}
	var l Language
	if err := json.Unmarshal([]byte(`"fr-FR"`), &l); !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue, got %v", err)
	}
	var h Helper
	if err := json.Unmarshal([]byte(`42`), &h); err == nil {
		t.Fatalf("expected error for non-string helper")
	}
}
