package model

// Language is a supported response language.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
	LanguageNepali  Language = "nepali"

	// LanguageUnset marks a session that has not expressed a preference yet.
	LanguageUnset Language = ""
)

// Supported lists every language the assistant can answer in.
func Supported() []Language {
	return []Language{LanguageEnglish, LanguageHindi, LanguageNepali}
}

// Valid reports whether l names a supported language.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageNepali:
		return true
	}
	return false
}

// OrDefault resolves an unset preference to English.
func (l Language) OrDefault() Language {
	if !l.Valid() {
		return LanguageEnglish
	}
	return l
}
