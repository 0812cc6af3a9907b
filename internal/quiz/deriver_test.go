package quiz_test

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/mind-engage/snapstudy/internal/quiz"
)

const sample = "東京は日本の首都であり、多くの人が住んでいます。\n" +
	"富士山は静岡県と山梨県にまたがり、日本一高い山です。\n" +
	"短い文。"

func checkInvariants(t *testing.T, qs []quiz.Question) {
	t.Helper()
	for i, q := range qs {
		if q.ID != i+1 {
			t.Fatalf("question %d: id = %d", i, q.ID)
		}
		if len(q.Options) != 4 {
			t.Fatalf("question %d: %d options", q.ID, len(q.Options))
		}
		if !q.Valid() {
			t.Fatalf("question %d: correct index %d out of range", q.ID, q.CorrectAnswer)
		}
	}
}

func TestDeriveBlanksKeyword(t *testing.T) {
	d := quiz.NewDeriver()
	qs := d.Derive(sample)
	if len(qs) != 2 {
		t.Fatalf("want 2 questions, got %d", len(qs))
	}
	checkInvariants(t, qs)

	for _, q := range qs {
		keyword := q.Options[q.CorrectAnswer]
		for _, f := range quiz.Japanese.Fillers {
			if keyword == f {
				t.Fatalf("question %d: correct option is a filler %q", q.ID, f)
			}
		}
		if !strings.Contains(q.Question, quiz.Blank) {
			t.Fatalf("question %d: no blank in %q", q.ID, q.Question)
		}
		if !strings.Contains(q.Explanation, "「"+keyword+"」") {
			t.Fatalf("question %d: explanation does not name keyword: %q", q.ID, q.Explanation)
		}
	}
}

func TestDeriveKeywordComesFromSentence(t *testing.T) {
	d := quiz.NewDeriver()
	first := "東京は日本の首都であり、多くの人が住んでいます"
	candidates := quiz.CJKExtractor{}.Keywords(first)
	for i := 0; i < 20; i++ {
		qs := d.Derive(sample)
		kw := qs[0].Options[qs[0].CorrectAnswer]
		found := false
		for _, c := range candidates {
			if c == kw {
				found = true
			}
		}
		if !found {
			t.Fatalf("keyword %q not among %v", kw, candidates)
		}
	}
}

func TestDeriveSeededIsDeterministic(t *testing.T) {
	a := quiz.NewDeriver(quiz.WithRand(rand.New(rand.NewSource(42)))).Derive(sample)
	b := quiz.NewDeriver(quiz.WithRand(rand.New(rand.NewSource(42)))).Derive(sample)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed, different output:\n%v\n%v", a, b)
	}
}

func TestDeriveRepeatedKeepsShape(t *testing.T) {
	d := quiz.NewDeriver()
	a, b := d.Derive(sample), d.Derive(sample)
	if len(a) != len(b) {
		t.Fatalf("question count changed: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Explanation == "" || b[i].Explanation == "" {
			t.Fatal("missing explanation")
		}
	}
}

func TestDeriveFallback(t *testing.T) {
	for _, in := range []string{"", "   \n\t ", "短い文です。", "ABCDEFGHIJKLMNOP日本"} {
		qs := quiz.NewDeriver().Derive(in)
		if len(qs) != 1 {
			t.Fatalf("%q: want 1 fallback question, got %d", in, len(qs))
		}
		q := qs[0]
		if q.ID != 1 || q.CorrectAnswer != 0 || len(q.Options) != 4 {
			t.Fatalf("%q: unexpected fallback %+v", in, q)
		}
		if q.Options[0] != quiz.Japanese.FallbackOptions[0] {
			t.Fatalf("%q: first option = %q", in, q.Options[0])
		}
	}
}

func TestDeriveFallbackExcerpt(t *testing.T) {
	text := strings.Repeat("a", 150)
	q := quiz.NewDeriver().Derive(text)[0]
	want := quiz.Japanese.FallbackPrompt + strings.Repeat("a", 100) + "..."
	if q.Question != want {
		t.Fatalf("prompt = %q", q.Question)
	}
}

func TestDeriveSkipsFillerOnlySentence(t *testing.T) {
	qs := quiz.NewDeriver().Derive("わからない abc 該当なし xyz")
	if len(qs) != 1 || qs[0].Options[0] != quiz.Japanese.FallbackOptions[0] {
		t.Fatalf("expected fallback, got %+v", qs)
	}
}

func TestDeriveCapsAtFiveQuestions(t *testing.T) {
	line := "光合成は植物が、光を使って養分を作る仕組みです。"
	qs := quiz.NewDeriver().Derive(strings.Repeat(line, 8))
	if len(qs) != 5 {
		t.Fatalf("want 5 questions, got %d", len(qs))
	}
	checkInvariants(t, qs)
}

func TestDeriveIDsAreContiguousWhenSentencesSkip(t *testing.T) {
	text := "ABCDEFGHIJKLMNOPQRSTUVWXYZ\n光合成は植物が、光を使って養分を作る仕組みです。"
	qs := quiz.NewDeriver().Derive(text)
	if len(qs) != 1 || qs[0].ID != 1 {
		t.Fatalf("unexpected questions %+v", qs)
	}
	if qs[0].Options[0] == quiz.Japanese.FallbackOptions[0] {
		t.Fatal("got fallback, want derived question")
	}
}

func TestDeriveEnglishLocale(t *testing.T) {
	d := quiz.NewDeriver(quiz.WithLocale(quiz.English))
	qs := d.Derive("Photosynthesis converts sunlight into chemical energy. Short.")
	if len(qs) != 1 {
		t.Fatalf("want 1 question, got %d", len(qs))
	}
	checkInvariants(t, qs)
	if !strings.HasPrefix(qs[0].Question, quiz.English.BlankPrompt) {
		t.Fatalf("prompt = %q", qs[0].Question)
	}
}

func TestDeriveCustomExtractor(t *testing.T) {
	ex := quiz.KeywordExtractorFunc(func(string) []string { return []string{"alpha", "beta"} })
	d := quiz.NewDeriver(quiz.WithExtractor(ex), quiz.WithRand(rand.New(rand.NewSource(1))))
	qs := d.Derive("this sentence mentions alpha and beta")
	if len(qs) != 1 {
		t.Fatalf("want 1 question, got %d", len(qs))
	}
	kw := qs[0].Options[qs[0].CorrectAnswer]
	if kw != "alpha" && kw != "beta" {
		t.Fatalf("keyword = %q", kw)
	}
}

func TestCJKExtractor(t *testing.T) {
	got := quiz.CJKExtractor{}.Keywords("Go言語とカタカナ、a漢b")
	want := []string{"言語とカタカナ"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLatinExtractor(t *testing.T) {
	got := quiz.LatinExtractor{MinLen: 5}.Keywords("The mitochondria is the powerhouse, of cell")
	want := []string{"mitochondria", "powerhouse"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
