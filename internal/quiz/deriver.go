package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	maxQuestions    = 5
	minSentenceLen  = 10 // sentences must be longer than this
	minKeywords     = 2
	fallbackExcerpt = 100
)

// Deriver turns extracted text into quiz questions.
type Deriver struct {
	locale Locale

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

type Option func(*Deriver)

// WithRand injects the random source used for keyword choice and option order.
func WithRand(r *rand.Rand) Option { return func(d *Deriver) { d.rnd = r } }

func WithLocale(l Locale) Option { return func(d *Deriver) { d.locale = l } }

// WithExtractor replaces the locale's keyword extractor.
func WithExtractor(e KeywordExtractor) Option {
	return func(d *Deriver) { d.locale.Extractor = e }
}

func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{locale: Japanese}
	for _, o := range opts {
		o(d)
	}
	if d.rnd == nil {
		d.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if d.locale.Extractor == nil {
		d.locale.Extractor = CJKExtractor{}
	}
	return d
}

func (d *Deriver) Locale() Locale { return d.locale }

// Derive never fails: text that yields nothing produces a single fallback question.
func (d *Deriver) Derive(text string) []Question {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []Question
	for _, sentence := range d.sentences(text) {
		q, ok := d.fromSentence(sentence)
		if !ok {
			continue
		}
		q.ID = len(out) + 1
		out = append(out, q)
	}
	if len(out) == 0 {
		out = append(out, d.fallback(text))
	}
	return out
}

func (d *Deriver) sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(d.locale.Terminators, r)
	})
	out := make([]string, 0, maxQuestions)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) <= minSentenceLen {
			continue
		}
		out = append(out, p)
		if len(out) == maxQuestions {
			break
		}
	}
	return out
}

func (d *Deriver) fromSentence(sentence string) (Question, bool) {
	words := d.locale.Extractor.Keywords(sentence)
	if len(words) < minKeywords {
		return Question{}, false
	}
	pool := words[:0:0]
	for _, w := range words {
		if !d.locale.isFiller(w) {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return Question{}, false
	}
	keyword := pool[d.rnd.Intn(len(pool))]

	options := []string{keyword, d.locale.Fillers[0], d.locale.Fillers[1], d.locale.Fillers[2]}
	d.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	correct := 0
	for i, o := range options {
		if o == keyword {
			correct = i
			break
		}
	}

	return Question{
		Question:      d.locale.BlankPrompt + strings.Replace(sentence, keyword, Blank, 1),
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   fmt.Sprintf(d.locale.Explanation, keyword, sentence),
	}, true
}

func (d *Deriver) fallback(text string) Question {
	excerpt := text
	if utf8.RuneCountInString(excerpt) > fallbackExcerpt {
		excerpt = string([]rune(excerpt)[:fallbackExcerpt])
	}
	opts := d.locale.FallbackOptions
	return Question{
		ID:            1,
		Question:      d.locale.FallbackPrompt + excerpt + "...",
		Options:       opts[:],
		CorrectAnswer: 0,
		Explanation:   d.locale.FallbackExplanation,
	}
}
