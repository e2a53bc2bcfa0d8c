package i18n

import (
	"sync"

	i18nv2 "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type options struct {
	defaultLanguage language.Tag
	messages        map[language.Tag][]*i18nv2.Message
	messageFiles    []messageFile
}

type messageFile struct {
	data []byte
	path string
}

type Option func(*options)

// WithDefaultLanguage sets the language used when the update carries no
// usable language code. Defaults to English.
func WithDefaultLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.defaultLanguage = tag
	}
}

// WithMessages registers messages for a language programmatically, the way
// pkg/locales does.
func WithMessages(tag language.Tag, messages ...*i18nv2.Message) Option {
	return func(o *options) {
		o.messages[tag] = append(o.messages[tag], messages...)
	}
}

// WithMessageFileBytes registers a YAML (or JSON) message file, usually an
// embedded one. The path is only used to infer language and format.
func WithMessageFileBytes(data []byte, path string) Option {
	return func(o *options) {
		o.messageFiles = append(o.messageFiles, messageFile{data: data, path: path})
	}
}

// I18n resolves message IDs into localized strings. Missing translations fall
// back through the default language down to the message ID itself, so an
// incomplete locale never breaks a reply.
type I18n struct {
	bundle          *i18nv2.Bundle
	defaultLanguage language.Tag

	mutex      sync.Mutex
	localizers map[string]*i18nv2.Localizer
}

func NewI18n(callOpts ...Option) (*I18n, error) {
	opts := &options{
		defaultLanguage: language.English,
		messages:        make(map[language.Tag][]*i18nv2.Message),
	}

	for _, callOpt := range callOpts {
		callOpt(opts)
	}

	bundle := i18nv2.NewBundle(opts.defaultLanguage)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	for tag, messages := range opts.messages {
		err := bundle.AddMessages(tag, messages...)
		if err != nil {
			return nil, err
		}
	}

	for _, file := range opts.messageFiles {
		_, err := bundle.ParseMessageFileBytes(file.data, file.path)
		if err != nil {
			return nil, err
		}
	}

	return &I18n{
		bundle:          bundle,
		defaultLanguage: opts.defaultLanguage,
		localizers:      make(map[string]*i18nv2.Localizer),
	}, nil
}

// T translates key for the given language code. Extra args are template data
// pairs: T("key", "Name", name) renders {{ .Name }}.
func (i *I18n) TWithLanguage(lang string, key string, args ...any) string {
	return i.localize(i.localizerFor(lang), key, args...)
}

func (i *I18n) TWithTag(tag language.Tag, key string, args ...any) string {
	return i.localize(i.localizerFor(tag.String()), key, args...)
}

func (i *I18n) localizerFor(lang string) *i18nv2.Localizer {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	localizer, ok := i.localizers[lang]
	if !ok {
		localizer = i18nv2.NewLocalizer(i.bundle, lang, i.defaultLanguage.String())
		i.localizers[lang] = localizer
	}

	return localizer
}

func (i *I18n) localize(localizer *i18nv2.Localizer, key string, args ...any) string {
	config := &i18nv2.LocalizeConfig{MessageID: key}

	if data := templateData(args); len(data) > 0 {
		config.TemplateData = data
	}

	localized, err := localizer.Localize(config)
	if err != nil {
		return key
	}

	return localized
}

func templateData(args []any) map[string]any {
	if len(args) < 2 {
		return nil
	}

	data := make(map[string]any, len(args)/2)

	for index := 0; index+1 < len(args); index += 2 {
		name, ok := args[index].(string)
		if !ok {
			continue
		}

		data[name] = args[index+1]
	}

	return data
}
