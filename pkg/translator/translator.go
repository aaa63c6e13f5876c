package translator

import (
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var (
	Translator *i18n.Bundle

	supported = []language.Tag{language.English}
	matcher   = language.NewMatcher(supported)
)

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tags := []language.Tag{language.English}
	for _, lang := range cfg.SupportedLanguages {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("unsupported language tag", zap.String("lang", lang), zap.Error(err))
			continue
		}
		if tag != language.English {
			tags = append(tags, tag)
		}
	}
	supported = tags
	matcher = language.NewMatcher(tags)

	files, err := filepath.Glob(filepath.Join(cfg.TranslationFolder, "*.toml"))
	if err != nil || len(files) == 0 {
		zap.L().Error("no translation files found", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, file := range files {
		if _, err := Translator.LoadMessageFile(file); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", filepath.Base(file)), zap.Error(err))
		}
	}
}

// MatchLanguage picks the supported language that best fits an
// Accept-Language header value. English is the fallback.
func MatchLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return LanguageEn
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}

	base, _ := supported[index].Base()
	return base.String()
}
