package quiz

import "strings"

// Locale bundles the wording and sentence rules the deriver uses for one language.
type Locale struct {
	Name        string
	Terminators string // characters that end a sentence
	Extractor   KeywordExtractor

	BlankPrompt string // prefix for fill-in-the-blank prompts
	Explanation string // fmt pattern: keyword, sentence
	Fillers     [3]string

	FallbackPrompt      string // prefix, followed by the first 100 characters of the text
	FallbackOptions     [4]string
	FallbackExplanation string

	Bands map[Band]string
}

const Blank = "____"

var Japanese = Locale{
	Name:        "ja",
	Terminators: "。\n",
	Extractor:   CJKExtractor{},
	BlankPrompt: "次の文の空欄に入る適切な語句を選んでください：\n\n",
	Explanation: "正解は「%s」です。\n\n原文：%s",
	Fillers:     [3]string{"わからない", "該当なし", "不明"},

	FallbackPrompt: "次のテキストの内容について正しいものを選んでください：\n\n",
	FallbackOptions: [4]string{
		"上記の内容は社会科の資料である",
		"上記の内容は数学の資料である",
		"上記の内容は理科の資料である",
		"上記の内容は英語の資料である",
	},
	FallbackExplanation: "このテキストは社会科の学習資料から抽出されたものです。",

	Bands: map[Band]string{
		BandPerfect:     "完璧です！",
		BandExcellent:   "素晴らしい！",
		BandGood:        "よくできました！",
		BandKeepGoing:   "もう少し頑張りましょう",
		BandNeedsReview: "復習が必要です",
	},
}

var English = Locale{
	Name:        "en",
	Terminators: "。.!?\n",
	Extractor:   LatinExtractor{MinLen: 5},
	BlankPrompt: "Choose the phrase that fills the blank:\n\n",
	Explanation: "The answer is \"%s\".\n\nOriginal: %s",
	Fillers:     [3]string{"unknown", "not applicable", "unclear"},

	FallbackPrompt: "Which statement about the following text is correct?\n\n",
	FallbackOptions: [4]string{
		"The text above is social studies material",
		"The text above is mathematics material",
		"The text above is science material",
		"The text above is English material",
	},
	FallbackExplanation: "This text was taken from social studies material.",

	Bands: map[Band]string{
		BandPerfect:     "Perfect!",
		BandExcellent:   "Excellent!",
		BandGood:        "Well done!",
		BandKeepGoing:   "Keep going",
		BandNeedsReview: "Time to review",
	},
}

// LocaleByName returns the named locale, falling back to Japanese.
func LocaleByName(name string) Locale {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "en", "english":
		return English
	default:
		return Japanese
	}
}

func (l Locale) isFiller(s string) bool {
	for _, f := range l.Fillers {
		if f == s {
			return true
		}
	}
	return false
}
