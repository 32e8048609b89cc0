package book

import (
	"fmt"
	"strings"
)

// Language is a supported book language.
type Language string

const (
	LangEnglish       Language = "english"
	LangSpanish       Language = "spanish"
	LangFrench        Language = "french"
	LangGerman        Language = "german"
	LangChinese       Language = "chinese"
	LangJapanese      Language = "japanese"
	LangRussian       Language = "russian"
	LangPortuguese    Language = "portuguese"
	LangItalian       Language = "italian"
	LangArabic        Language = "arabic"
	LangMedievalLatin Language = "medieval latin"
	LangKoineGreek    Language = "koine greek"
)

// Languages lists every supported language in display order.
func Languages() []Language {
	return []Language{
		LangEnglish, LangSpanish, LangFrench, LangGerman,
		LangChinese, LangJapanese, LangRussian, LangPortuguese,
		LangItalian, LangArabic, LangMedievalLatin, LangKoineGreek,
	}
}

// ParseLanguage matches a language name case-insensitively.
func ParseLanguage(s string) (Language, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages() {
		if name == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}

// FormatTitle applies the language's capitalization rule to a title or
// heading. Spanish capitalizes only the first word; every other language
// capitalizes the first letter of each word.
func FormatTitle(title string, lang Language) string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return ""
	}
	if lang == LangSpanish {
		out := make([]string, len(words))
		out[0] = capitalize(words[0])
		for i, w := range words[1:] {
			out[i+1] = strings.ToLower(w)
		}
		return strings.Join(out, " ")
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = capitalize(w)
	}
	return strings.Join(out, " ")
}

// ChapterHeading returns the heading label for the nth chapter in the
// book's language, already title-cased per FormatTitle.
func ChapterHeading(lang Language, n int) string {
	if lang == LangSpanish {
		return FormatTitle(fmt.Sprintf("Capítulo %d", n), lang)
	}
	return FormatTitle(fmt.Sprintf("Chapter %d", n), lang)
}

// SectionHeading returns the heading label for a section. Chapters get a
// numbered heading; intro and conclusion get their role label.
func SectionHeading(lang Language, s Section) string {
	switch s.Kind {
	case KindIntro:
		if lang == LangSpanish {
			return FormatTitle("Introducción", lang)
		}
		return FormatTitle("Introduction", lang)
	case KindConclusion:
		if lang == LangSpanish {
			return FormatTitle("Conclusiones", lang)
		}
		return FormatTitle("Conclusions", lang)
	default:
		return ChapterHeading(lang, s.Number)
	}
}

func capitalize(w string) string {
	runes := []rune(w)
	if len(runes) == 0 {
		return w
	}
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}
