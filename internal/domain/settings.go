package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned when text does not name a known setting value.
var ErrUnknownValue = errors.New("unknown setting value")

// Difficulty selects board size and generator effort.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every difficulty in menu order.
func Difficulties() []Difficulty { return []Difficulty{Easy, Medium, Hard} }

func (d Difficulty) Valid() bool { return d >= Easy && d <= Hard }

// Params returns the board size and the generator guess budget.
func (d Difficulty) Params() (size, guesses int) {
	switch d {
	case Medium:
		return 8, 10
	case Hard:
		return 10, 15
	default:
		return 6, 5
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("difficulty %q: %w", s, ErrUnknownValue)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("difficulty %d: %w", int(d), ErrUnknownValue)
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Language is the active UI locale. The zero value is the primary locale.
type Language int

const (
	EnglishUS Language = iota
	GermanDE
)

// Languages lists the locales in cycle order.
func Languages() []Language { return []Language{EnglishUS, GermanDE} }

// Next advances to the following language, wrapping around.
func (l Language) Next() Language {
	all := Languages()
	for i, v := range all {
		if v == l {
			return all[(i+1)%len(all)]
		}
	}
	return EnglishUS
}

// String returns the locale identifier, e.g. "en-US".
func (l Language) String() string {
	switch l {
	case EnglishUS:
		return "en-US"
	case GermanDE:
		return "de-DE"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages() {
		if strings.EqualFold(strings.TrimSpace(s), l.String()) {
			return l, nil
		}
	}
	return EnglishUS, fmt.Errorf("language %q: %w", s, ErrUnknownValue)
}

func (l Language) MarshalText() ([]byte, error) {
	if l < EnglishUS || l > GermanDE {
		return nil, fmt.Errorf("language %d: %w", int(l), ErrUnknownValue)
	}
	return []byte(l.String()), nil
}

func (l *Language) UnmarshalText(b []byte) error {
	v, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Helper switches live move-validity hints on or off.
type Helper int

const (
	Disabled Helper = iota
	Enabled
)

func (h Helper) Toggle() Helper {
	if h == Enabled {
		return Disabled
	}
	return Enabled
}

func (h Helper) On() bool { return h == Enabled }

func (h Helper) String() string {
	switch h {
	case Disabled:
		return "Disabled"
	case Enabled:
		return "Enabled"
	default:
		return fmt.Sprintf("Helper(%d)", int(h))
	}
}

func ParseHelper(s string) (Helper, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled":
		return Disabled, nil
	case "enabled":
		return Enabled, nil
	}
	return Disabled, fmt.Errorf("helper %q: %w", s, ErrUnknownValue)
}

func (h Helper) MarshalText() ([]byte, error) {
	if h != Disabled && h != Enabled {
		return nil, fmt.Errorf("helper %d: %w", int(h), ErrUnknownValue)
	}
	return []byte(h.String()), nil
}

func (h *Helper) UnmarshalText(b []byte) error {
	v, err := ParseHelper(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Settings are the three user preferences, each persisted on its own.
type Settings struct {
	Difficulty Difficulty
	Language   Language
	Helper     Helper
}

func DefaultSettings() Settings {
	return Settings{Difficulty: Easy, Language: EnglishUS, Helper: Disabled}
}
