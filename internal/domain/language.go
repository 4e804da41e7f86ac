package domain

// Language identifies one of the feed's content languages. English is the
// canonical language: every translation set carries an English entry.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	Chinese Language = "zh"
	Korean  Language = "ko"
	French  Language = "fr"
)

// Languages lists every known language, canonical first.
var Languages = []Language{English, Spanish, Chinese, Korean, French}
