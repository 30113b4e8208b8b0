// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

func Initialize() error {
	var err error
	once.Do(func() {
		instance = &I18n{
			translations: make(map[string]map[string]string),
			defaultLang:  "en",
		}
		err = instance.LoadTranslations(localeFS, "locales")
	})
	return err
}

func (i *I18n) LoadTranslations(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := path.Join(dir, entry.Name())

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if text, ok := i.lookup(lang, key); ok {
		return format(text, args)
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if text, ok := i.lookup(i.defaultLang, key); ok {
			return format(text, args)
		}
	}

	// Return key if no translation found
	return key
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	translations, exists := i.translations[lang]
	if !exists {
		return "", false
	}
	text, exists := translations[key]
	return text, exists
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	return key
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{"en"}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.translations))
	for lang := range instance.translations {
		langs = append(langs, lang)
	}
	return langs
}
