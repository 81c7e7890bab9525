package collection

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The Spanish text doubles as the key.
const (
	msgLoadFailed   = "Error al cargar usuarios: %s"
	msgCreateFailed = "Error al crear usuario: %s"
	msgUpdateFailed = "Error al actualizar usuario: %s"
	msgDeleteFailed = "Error al eliminar usuario: %s"
)

// DefaultLanguage is used when no language is configured.
var DefaultLanguage = language.Spanish

var supportedLanguages = []language.Tag{language.Spanish, language.English}

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLanguage))
	set := func(tag language.Tag, key, text string) {
		if err := b.SetString(tag, key, text); err != nil {
			panic(err)
		}
	}

	for _, key := range []string{msgLoadFailed, msgCreateFailed, msgUpdateFailed, msgDeleteFailed} {
		set(language.Spanish, key, key)
	}
	set(language.English, msgLoadFailed, "Failed to load users: %s")
	set(language.English, msgCreateFailed, "Failed to create user: %s")
	set(language.English, msgUpdateFailed, "Failed to update user: %s")
	set(language.English, msgDeleteFailed, "Failed to delete user: %s")

	return b
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// ParseLanguage maps a BCP 47 tag such as "en-US" to the closest supported
// language, falling back to DefaultLanguage.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	return supportedLanguages[idx]
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}
