package i18n

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// ErrMissingMessage is returned when a key has no usable pattern in a bundle.
var ErrMissingMessage = errors.New("missing message")

// Bundle is the parsed resource of one locale. Immutable after construction
// apart from the pattern cache.
type Bundle struct {
	locale   string
	tag      language.Tag
	messages map[string]string // msgid -> msgstr, translated entries only

	patterns sync.Map // key -> *template.Template
}

func (b *Bundle) Locale() string { return b.locale }

func (b *Bundle) Tag() language.Tag { return b.tag }

// Translate formats the message for key. Named arguments are referenced in
// the pattern as {{.name}}; a reference without a matching argument is an
// error, as is an unknown key or an empty pattern.
func (b *Bundle) Translate(key string, args map[string]any) (string, error) {
	msg, ok := b.messages[key]
	if !ok {
		return "", fmt.Errorf("%s: %q: %w", b.locale, key, ErrMissingMessage)
	}
	if !strings.Contains(msg, "{{") {
		return msg, nil
	}
	tmpl, err := b.pattern(key, msg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, args); err != nil {
		return "", fmt.Errorf("%s: %q: %w", b.locale, key, err)
	}
	return sb.String(), nil
}

func (b *Bundle) pattern(key, msg string) (*template.Template, error) {
	if t, ok := b.patterns.Load(key); ok {
		return t.(*template.Template), nil
	}
	t, err := template.New(key).Option("missingkey=error").Parse(msg)
	if err != nil {
		return nil, fmt.Errorf("%s: %q: bad pattern: %w", b.locale, key, err)
	}
	actual, _ := b.patterns.LoadOrStore(key, t)
	return actual.(*template.Template), nil
}

// newBundle keeps the raw msgstr of every translated entry. Untranslated
// entries and the header are left out so they read as missing.
func newBundle(locale string, tag language.Tag, po *gotext.Po) *Bundle {
	all := po.GetDomain().GetTranslations()
	messages := make(map[string]string, len(all))
	for id, tr := range all {
		if id == "" || tr.Trs[0] == "" {
			continue
		}
		messages[id] = tr.Trs[0]
	}
	return &Bundle{locale: locale, tag: tag, messages: messages}
}

// Translate is the free-function form of (*Bundle).Translate.
func Translate(b *Bundle, key string, args map[string]any) (string, error) {
	return b.Translate(key, args)
}
