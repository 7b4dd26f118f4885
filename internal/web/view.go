package web

import (
	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/game"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type cellView struct {
	Col, Row int
	Symbol   string
	Class    string
	Editable bool
}

// appView is the #app fragment with every string already translated.
type appView struct {
	Lang         string
	Title        string
	Rules        string
	NewGame      string
	Difficulties []option
	Difficulty   string
	Language     string
	Helper       string
	Clear        string
	Size         int
	Rows         [][]cellView
	Banner       string
	BannerClass  string
}

// translator renders content errors as the key and logs them, so a broken
// resource degrades the page instead of failing the request.
type translator struct {
	bundle *i18n.Bundle
	log    zerolog.Logger
}

func (t translator) tr(key string, args map[string]any) string {
	s, err := t.bundle.Translate(key, args)
	if err != nil {
		t.log.Warn().Err(err).Str("locale", t.bundle.Locale()).Str("key", key).Msg("translation failed")
		return key
	}
	return s
}

func buildView(snap game.Snapshot, b *i18n.Bundle, log zerolog.Logger) appView {
	t := translator{bundle: b, log: log}
	v := appView{
		Lang:    b.Locale(),
		Title:   t.tr("title", nil),
		Rules:   t.tr("rules", nil),
		NewGame: t.tr("new-game", nil),
		Difficulty: t.tr("difficulty-display", map[string]any{
			"difficulty": t.tr("difficulty-"+snap.Difficulty.String(), nil),
		}),
		Language: t.tr("language-display", map[string]any{
			"language": t.tr("language-"+snap.Language.String(), nil),
		}),
		Helper: t.tr("helper-"+snap.Helper.String(), nil),
		Clear:  t.tr("clear-board", nil),
		Size:   snap.Size,
	}
	for _, d := range domain.Difficulties() {
		v.Difficulties = append(v.Difficulties, option{
			Value:    d.String(),
			Label:    t.tr("difficulty-"+d.String(), nil),
			Selected: d == snap.Difficulty,
		})
	}
	v.Rows = make([][]cellView, len(snap.Rows))
	for i, row := range snap.Rows {
		v.Rows[i] = make([]cellView, len(row))
		for j, c := range row {
			class := "cell"
			if c.Editable {
				class += " guess"
			}
			if c.Error {
				class += " error"
			}
			v.Rows[i][j] = cellView{Col: c.Col, Row: c.Row, Symbol: c.Field.String(), Class: class, Editable: c.Editable}
		}
	}
	switch {
	case snap.Solved:
		v.Banner, v.BannerClass = t.tr("success", nil), "success"
	case snap.Full:
		v.Banner, v.BannerClass = t.tr("failure", nil), "failure"
	}
	return v
}
