package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/jaminalder/codex-binoxxo/internal/app"
)

type templates struct {
	page *template.Template
	app  *template.Template
}

func loadTemplates() *templates {
	page := template.Must(template.New("page").Parse(pageTemplate))
	template.Must(page.New("app").Parse(appTemplate))
	// Standalone fragment used for htmx responses and SSE pushes
	frag := template.Must(template.New("app_only").Parse(appTemplate))
	return &templates{page: page, app: frag}
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html><html lang="{{.Lang}}"><head>
<meta charset="utf-8"/>
<title>{{.Title}}</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
  table.board { border-collapse: collapse; }
  table.board td { width: 2.2em; height: 2.2em; text-align: center; border: 1px solid #888; font-weight: bold; }
  table.board td.guess { font-weight: normal; color: #1c5fb5; }
  table.board td.error { background: #f6c9c9; }
  table.board button { width: 100%; height: 100%; border: 0; background: none; font: inherit; color: inherit; cursor: pointer; }
  .controls form { display: inline; }
  .controls .selected { text-decoration: underline; }
  .banner.success { color: #1a7f37; }
  .banner.failure { color: #b42318; }
</style>
</head><body>
<div hx-ext="sse" hx-sse="connect:/events">
  <div id="shell" hx-sse="swap:app">{{template "app" .}}</div>
</div>
</body></html>`

const appTemplate = `<div id="app" lang="{{.Lang}}">
  <h1>{{.Title}}</h1>
  <p class="rules">{{.Rules}}</p>
  <div class="controls">
    <span>{{.NewGame}}:</span>
    {{range .Difficulties}}
    <form hx-post="/new" hx-target="#app" hx-swap="outerHTML" method="post" action="/new">
      <input type="hidden" name="difficulty" value="{{.Value}}">
      <button type="submit"{{if .Selected}} class="selected"{{end}}>{{.Label}}</button>
    </form>
    {{end}}
  </div>
  <div class="controls">
    <span class="difficulty">{{.Difficulty}}</span>
    <form hx-post="/language" hx-target="#app" hx-swap="outerHTML" method="post" action="/language">
      <button type="submit">{{.Language}}</button>
    </form>
    <form hx-post="/helper" hx-target="#app" hx-swap="outerHTML" method="post" action="/helper">
      <button type="submit">{{.Helper}}</button>
    </form>
    <form hx-post="/clear" hx-target="#app" hx-swap="outerHTML" method="post" action="/clear">
      <button type="submit">{{.Clear}}</button>
    </form>
  </div>
  <table class="board size-{{.Size}}">
    {{range .Rows}}
    <tr>
      {{range .}}
      <td class="{{.Class}}">
        {{if .Editable}}
        <form hx-post="/toggle" hx-target="#app" hx-swap="outerHTML" method="post" action="/toggle">
          <input type="hidden" name="c" value="{{.Col}}">
          <input type="hidden" name="r" value="{{.Row}}">
          <button type="submit">{{.Symbol}}</button>
        </form>
        {{else}}{{.Symbol}}{{end}}
      </td>
      {{end}}
    </tr>
    {{end}}
  </table>
  {{if .Banner}}<div class="banner {{.BannerClass}}">{{.Banner}}</div>{{end}}
</div>
`

const playerCookie = "player_id"

// ensurePlayerCookie returns the caller's player ID, issuing a new one when
// the cookie is missing or malformed.
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil && app.ValidPlayerID(c.Value) {
		return c.Value
	}
	v := app.NewPlayerID()
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookie,
		Value:    v,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return v
}
