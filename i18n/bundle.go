// Package i18n provides the message bundle used to render noshell errors and help output.
//
// Translations are embedded as one JSON file per language under locales/. English is the
// default language and the reference set: every other language must define exactly the
// same keys.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage     = errors.New("invalid language in filename")
	ErrInvalidTranslations = errors.New("invalid translations")
	ErrEmptyTranslations   = errors.New("empty translations")
	ErrLanguageNotFound    = errors.New("language not found")
	ErrExtraKey            = errors.New("extra key")
	ErrMissingKey          = errors.New("missing key")
)

// Bundle holds the translations of every supported language and a printer per language.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
	matcher      language.Matcher
}

var (
	defaultBundleOnce sync.Once
	defaultBundle     *Bundle
)

// Default returns the process-wide bundle loaded from the embedded locales.
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundle()
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewBundle creates a bundle with the embedded translations.
func NewBundle() (*Bundle, error) {
	b := NewEmptyBundle()
	if err := b.loadEmbedded(defaultLocales, "locales"); err != nil {
		return nil, err
	}

	return b, nil
}

// NewEmptyBundle creates a bundle without translations. Keys are then rendered verbatim.
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
		matcher:      language.NewMatcher([]language.Tag{language.English}),
	}
}

// T returns the translation for key in the default language, formatted with args.
func (b *Bundle) T(key string, args ...interface{}) string {
	b.mu.RLock()
	lang := b.defaultLang
	b.mu.RUnlock()

	return b.TL(lang, key, args...)
}

// TL returns the translation for key in lang, falling back to the default language.
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.printers[b.matchLocked(lang)]
	if !ok {
		return format(key, args)
	}

	return p.Sprintf(key, args...)
}

// HasKey reports whether key is translated in lang.
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[b.matchLocked(lang)][key]
	return ok
}

// Translation returns the raw, unformatted translation of key in the supported language
// closest to lang.
func (b *Bundle) Translation(lang language.Tag, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msg, ok := b.translations[b.matchLocked(lang)][key]
	return msg, ok
}

// Match returns the supported language closest to lang, or the default language when
// none is close. "de-CH" selects "de".
func (b *Bundle) Match(lang language.Tag) language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.matchLocked(lang)
}

func (b *Bundle) matchLocked(lang language.Tag) language.Tag {
	if _, ok := b.translations[lang]; ok {
		return lang
	}

	supported := b.languagesLocked()
	if len(supported) == 0 {
		return b.defaultLang
	}

	_, index, confidence := b.matcher.Match(lang)
	if confidence == language.No {
		return b.defaultLang
	}

	return supported[index]
}

// AddLanguage merges translations into lang. A language other than the default
// must carry the same key set as the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	merged := make(map[string]string, len(translations))
	for k, v := range b.translations[lang] {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	if problems := b.validate(lang, merged); len(problems) > 0 {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, lang, problems)
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, key, err)
		}
	}

	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	b.matcher = language.NewMatcher(b.languagesLocked())

	return nil
}

// SetDefaultLanguage selects the closest supported language to lang as default.
// It returns the tag actually selected.
func (b *Bundle) SetDefaultLanguage(lang language.Tag) language.Tag {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.translations) == 0 {
		b.defaultLang = lang
		return lang
	}
	b.defaultLang = b.matchLocked(lang)

	return b.defaultLang
}

// DefaultLanguage returns the language used by T.
func (b *Bundle) DefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.defaultLang
}

// Languages returns the supported languages, English first.
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.languagesLocked()
}

func (b *Bundle) languagesLocked() []language.Tag {
	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}

	// the matcher falls back to the first entry
	sort.Slice(langs, func(i, j int) bool {
		if langs[i] == language.English || langs[j] == language.English {
			return langs[i] == language.English
		}
		return langs[i].String() < langs[j].String()
	})

	return langs
}

func (b *Bundle) validate(lang language.Tag, translations map[string]string) []error {
	if len(translations) == 0 {
		return []error{fmt.Errorf("%w: %s", ErrEmptyTranslations, lang)}
	}

	reference, ok := b.translations[language.English]
	if lang == language.English || !ok {
		return nil
	}

	var problems []error
	for key := range reference {
		if _, exists := translations[key]; !exists {
			problems = append(problems, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, exists := reference[key]; !exists {
			problems = append(problems, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return problems
}

func (b *Bundle) loadEmbedded(fs embed.FS, dir string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return err
	}

	// English goes first: it is the reference key set for the others.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name() == "en.json" || entries[j].Name() == "en.json" {
			return entries[i].Name() == "en.json"
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}

		data, err := fs.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return err
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, entry.Name(), err)
		}

		if err := b.AddLanguage(lang, translations); err != nil {
			return err
		}
	}

	return nil
}
