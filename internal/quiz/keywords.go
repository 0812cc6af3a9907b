package quiz

import (
	"regexp"
	"unicode"
)

// KeywordExtractor pulls answer candidates out of a single sentence.
type KeywordExtractor interface {
	Keywords(sentence string) []string
}

// KeywordExtractorFunc adapts a plain function to KeywordExtractor.
type KeywordExtractorFunc func(sentence string) []string

func (f KeywordExtractorFunc) Keywords(sentence string) []string { return f(sentence) }

// kanji, hiragana and katakana blocks
var cjkRun = regexp.MustCompile(`[\x{4e00}-\x{9faf}\x{3040}-\x{309f}\x{30a0}-\x{30ff}]{2,}`)

// CJKExtractor returns runs of two or more ideographs or kana, in order of appearance.
type CJKExtractor struct{}

func (CJKExtractor) Keywords(sentence string) []string {
	return cjkRun.FindAllString(sentence, -1)
}

// LatinExtractor returns alphabetic words of at least MinLen letters.
type LatinExtractor struct {
	MinLen int
}

func (e LatinExtractor) Keywords(sentence string) []string {
	minLen := e.MinLen
	if minLen <= 0 {
		minLen = 5
	}
	var out []string
	word := make([]rune, 0, 16)
	flush := func() {
		if len(word) >= minLen {
			out = append(out, string(word))
		}
		word = word[:0]
	}
	for _, r := range sentence {
		if unicode.IsLetter(r) && r < unicode.MaxLatin1 {
			word = append(word, r)
			continue
		}
		flush()
	}
	flush()
	return out
}
