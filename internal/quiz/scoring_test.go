package quiz_test

import (
	"testing"

	"github.com/mind-engage/snapstudy/internal/quiz"
)

func TestScoreHalfCorrect(t *testing.T) {
	qs := []quiz.Question{
		{ID: 1, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		{ID: 2, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
	}
	as := []quiz.UserAnswer{
		{QuestionID: 1, SelectedAnswer: 0},
		{QuestionID: 2, SelectedAnswer: 0},
	}
	res := quiz.Score(qs, as)
	if res.CorrectAnswers != 1 || res.Percentage != 50 || res.TotalQuestions != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Band != quiz.BandKeepGoing {
		t.Fatalf("band = %s", res.Band)
	}
}

func TestScoreIgnoresUnknownQuestion(t *testing.T) {
	qs := []quiz.Question{{ID: 1, CorrectAnswer: 2}}
	as := []quiz.UserAnswer{{QuestionID: 9, SelectedAnswer: 2}, {QuestionID: 1, SelectedAnswer: 2}}
	if n := quiz.CountCorrect(qs, as); n != 1 {
		t.Fatalf("correct = %d", n)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct{ correct, total, want int }{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 5, 100},
	}
	for _, c := range cases {
		if got := quiz.Percentage(c.correct, c.total); got != c.want {
			t.Errorf("Percentage(%d,%d) = %d, want %d", c.correct, c.total, got, c.want)
		}
	}
}

func TestBandFor(t *testing.T) {
	cases := map[int]quiz.Band{
		100: quiz.BandPerfect,
		80:  quiz.BandExcellent,
		99:  quiz.BandExcellent,
		60:  quiz.BandGood,
		40:  quiz.BandKeepGoing,
		39:  quiz.BandNeedsReview,
		0:   quiz.BandNeedsReview,
	}
	for pct, want := range cases {
		if got := quiz.BandFor(pct); got != want {
			t.Errorf("BandFor(%d) = %s, want %s", pct, got, want)
		}
	}
}

func TestScoreEmptyQuiz(t *testing.T) {
	res := quiz.Score(nil, nil)
	if res.Percentage != 0 || res.TotalQuestions != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
