// Package i18n translates UI text for a session and notifies views when the
// session language changes.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/validation"
)

//go:embed locales/*.toml
var localeFS embed.FS

// ErrUnsupported is returned for a language code outside the configured set.
var ErrUnsupported = errors.New("i18n: unsupported language")

// Bundle holds parsed messages for every supported language. It is built
// once and shared read-only by all translators.
type Bundle struct {
	bundle    *i18n.Bundle
	base      *i18n.Localizer
	fallback  language.Tag
	supported []language.Tag
	codes     []string
	matcher   language.Matcher
}

// NewBundle parses the embedded locale files. The default language must be
// one of supported and is used when a message is missing elsewhere.
func NewBundle(defaultLang string, supported []string) (*Bundle, error) {
	return loadBundle(localeFS, defaultLang, supported)
}

func loadBundle(fsys fs.FS, defaultLang string, supported []string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: default language: %w", err)
	}
	if !slices.Contains(supported, defaultLang) {
		return nil, fmt.Errorf("%w: default %q not in supported set", ErrUnsupported, defaultLang)
	}

	b := &Bundle{
		bundle: i18n.NewBundle(fallback),
		codes:  slices.Clone(supported),
	}
	b.bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	b.bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	// The default language goes first so the matcher falls back to it.
	ordered := append([]string{defaultLang}, slices.DeleteFunc(slices.Clone(supported), func(c string) bool {
		return c == defaultLang
	})...)
	for _, code := range ordered {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("i18n: supported language %q: %w", code, err)
		}
		file := path.Join("locales", code+".toml")
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("i18n: no messages for %q: %w", code, err)
		}
		if _, err := b.bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", file, err)
		}
		b.supported = append(b.supported, tag)
	}
	b.fallback = fallback
	b.base = i18n.NewLocalizer(b.bundle, defaultLang)
	b.matcher = language.NewMatcher(b.supported)
	return b, nil
}

// Supported lists the configured language codes.
func (b *Bundle) Supported() []string {
	return slices.Clone(b.codes)
}

// Default is the fallback language code.
func (b *Bundle) Default() string {
	return b.fallback.String()
}

// Negotiate picks the best supported language for an Accept-Language header.
func (b *Bundle) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.Default()
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.Default()
	}
	return b.supported[idx].String()
}

func (b *Bundle) resolve(code string) (string, bool) {
	for _, c := range b.codes {
		if c == code {
			return c, true
		}
	}
	return "", false
}

// Translator is the per-session translation service.
type Translator struct {
	bundle *Bundle

	mu        sync.RWMutex
	lang      string
	localizer *i18n.Localizer
	listeners map[int]func(lang string)
	nextID    int
}

// NewTranslator starts a translator in lang, or the default language when
// lang is not supported.
func (b *Bundle) NewTranslator(lang string) *Translator {
	code, ok := b.resolve(lang)
	if !ok {
		code = b.Default()
	}
	return &Translator{
		bundle:    b,
		lang:      code,
		localizer: i18n.NewLocalizer(b.bundle, code, b.Default()),
		listeners: make(map[int]func(string)),
	}
}

// CurrentLanguage returns the active language code.
func (t *Translator) CurrentLanguage() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// ChangeLanguage switches the active language and notifies listeners in
// registration order. Switching to the current language notifies nobody.
func (t *Translator) ChangeLanguage(code string) error {
	resolved, ok := t.bundle.resolve(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupported, code)
	}

	t.mu.Lock()
	if t.lang == resolved {
		t.mu.Unlock()
		return nil
	}
	t.lang = resolved
	t.localizer = i18n.NewLocalizer(t.bundle.bundle, resolved, t.bundle.Default())
	ids := make([]int, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	callbacks := make([]func(string), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, t.listeners[id])
	}
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb(resolved)
	}
	return nil
}

// OnLanguageChanged registers cb and returns the function that removes it.
// The returned function is safe to call more than once.
func (t *Translator) OnLanguageChanged(cb func(lang string)) (off func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = cb
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Listeners reports how many language listeners are registered.
func (t *Translator) Listeners() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners)
}

// T translates a message ID. Missing or unrenderable messages fall back to
// the default language and then to the ID itself.
func (t *Translator) T(id string, data ...map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: merge(data)})
}

// Plural translates a message with plural forms selected by count.
func (t *Translator) Plural(id string, count int, data ...map[string]any) string {
	td := merge(data)
	if td == nil {
		td = make(map[string]any, 1)
	}
	td["Count"] = count
	return t.localize(&i18n.LocalizeConfig{MessageID: id, PluralCount: count, TemplateData: td})
}

// Error translates a validation failure, keeping its English text when the
// message is not in the bundle.
func (t *Translator) Error(err *validation.FieldError) string {
	if err == nil {
		return ""
	}
	msg := t.T(err.ID)
	if msg == err.ID {
		return err.Message
	}
	return msg
}

// Field returns the label of an employee field.
func (t *Translator) Field(f domain.Field) string {
	return t.T("Employee.Fields." + string(f))
}

// FormatDate renders an ISO date with the month name of the active
// language. Unparseable input is returned unchanged.
func (t *Translator) FormatDate(iso string) string {
	d, err := domain.ParseDate(iso)
	if err != nil {
		return iso
	}
	return t.formatTime(d)
}

func (t *Translator) formatTime(d time.Time) string {
	month := t.T(fmt.Sprintf("Common.Months.M%02d", int(d.Month())))
	return t.T("Common.Date.Format", map[string]any{
		"Month": month,
		"Day":   strconv.Itoa(d.Day()),
		"Year":  strconv.Itoa(d.Year()),
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	t.mu.RLock()
	l := t.localizer
	t.mu.RUnlock()

	if msg, err := l.Localize(cfg); err == nil && msg != "" {
		return msg
	}
	// An incomplete message in the active language (a missing plural form,
	// say) still has a usable default-language rendering.
	if msg, err := t.bundle.base.Localize(cfg); err == nil && msg != "" {
		return msg
	}
	return cfg.MessageID
}

func merge(data []map[string]any) map[string]any {
	switch len(data) {
	case 0:
		return nil
	case 1:
		return data[0]
	}
	out := make(map[string]any)
	for _, d := range data {
		for k, v := range d {
			out[k] = v
		}
	}
	return out
}
