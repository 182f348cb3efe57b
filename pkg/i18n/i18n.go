package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	i18nv2 "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nekomeowww/turbobunny/pkg/locales"
)

type i18nOptions struct {
	localesDir      string
	defaultLanguage language.Tag
}

type CallOption func(*i18nOptions)

// WithLocalesDir loads additional message files (yaml, yml, json) from dir.
// File names carry the language, e.g. en.yaml or active.zh-CN.yaml.
func WithLocalesDir(dir string) CallOption {
	return func(o *i18nOptions) {
		o.localesDir = dir
	}
}

func WithDefaultLanguage(tag language.Tag) CallOption {
	return func(o *i18nOptions) {
		o.defaultLanguage = tag
	}
}

type I18n struct {
	bundle *i18nv2.Bundle

	mutex      sync.RWMutex
	localizers map[string]*i18nv2.Localizer
}

func NewI18n(callOpts ...CallOption) (*I18n, error) {
	opts := &i18nOptions{
		defaultLanguage: language.English,
	}

	for _, callOpt := range callOpts {
		callOpt(opts)
	}

	bundle := i18nv2.NewBundle(opts.defaultLanguage)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	err := bundle.AddMessages(language.English, locales.RegisterEn()...)
	if err != nil {
		return nil, err
	}

	err = bundle.AddMessages(language.SimplifiedChinese, locales.RegisterZhCN()...)
	if err != nil {
		return nil, err
	}

	if opts.localesDir != "" {
		err = loadMessageFiles(bundle, opts.localesDir)
		if err != nil {
			return nil, err
		}
	}

	return &I18n{
		bundle:     bundle,
		localizers: make(map[string]*i18nv2.Localizer),
	}, nil
}

func loadMessageFiles(bundle *i18nv2.Bundle, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read locales dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		path := filepath.Join(dir, entry.Name())

		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read message file %s: %w", path, err)
		}

		_, err = bundle.ParseMessageFileBytes(buf, path)
		if err != nil {
			return fmt.Errorf("failed to parse message file %s: %w", path, err)
		}
	}

	return nil
}

// Languages returns the languages messages are available in.
func (i *I18n) Languages() []language.Tag {
	return i.bundle.LanguageTags()
}

func (i *I18n) localizer(lang string) *i18nv2.Localizer {
	i.mutex.RLock()
	localizer, ok := i.localizers[lang]
	i.mutex.RUnlock()

	if ok {
		return localizer
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()

	localizer = i18nv2.NewLocalizer(i.bundle, lang)
	i.localizers[lang] = localizer

	return localizer
}

// TWithLanguage translates key into lang, which may be a language code or an
// Accept-Language header value. The first of args, when present, is used as
// template data. Unknown keys are returned as is.
func (i *I18n) TWithLanguage(lang string, key string, args ...any) string {
	if i == nil {
		return key
	}

	config := &i18nv2.LocalizeConfig{
		MessageID: key,
	}
	if len(args) > 0 {
		config.TemplateData = args[0]
	}

	str, err := i.localizer(lang).Localize(config)
	if err != nil {
		return key
	}

	return str
}

func (i *I18n) TWithTag(tag language.Tag, key string, args ...any) string {
	return i.TWithLanguage(tag.String(), key, args...)
}
