package config

// Question openers per language (first 2 chars of the code).
var questionWords = map[string][]string{
	"en": {"who", "what", "when", "where", "why", "how", "which", "is", "are", "do", "does", "did", "can", "could", "would", "will"},
	"ru": {"кто", "что", "когда", "где", "почему", "зачем", "как", "какой", "какая", "какие", "сколько", "ли"},
	"de": {"wer", "was", "wann", "wo", "warum", "wie", "welche", "ist", "sind", "kann"},
	"fr": {"qui", "que", "quand", "où", "pourquoi", "comment", "quel", "quelle", "est-ce"},
	"es": {"quién", "qué", "cuándo", "dónde", "por", "cómo", "cuál"},
}

// QuestionsForLang returns the question openers used by the rule-based
// punctuation restorer. Unknown languages yield nil.
func QuestionsForLang(langCode string) []string {
	if len(langCode) > 2 {
		langCode = langCode[:2]
	}
	return questionWords[langCode]
}

// Questions returns the configured question words, falling back to the
// configured language.
func (p *PunctConfig) Questions() []string {
	if len(p.QuestionWords) > 0 {
		return p.QuestionWords
	}
	return QuestionsForLang(p.Language)
}
