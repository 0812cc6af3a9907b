package study

import (
	"errors"
	"testing"
	"time"

	"github.com/mind-engage/snapstudy/internal/quiz"
)

func twoQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: 1, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		{ID: 2, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
	}
}

func TestSessionHappyPath(t *testing.T) {
	s := newSession("s", time.Now())
	if err := s.BeginUpload("image/png", "k"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.SetProgress(0.4); err != nil || s.Progress != 0.4 {
		t.Fatalf("progress: %v %v", err, s.Progress)
	}
	if err := s.SetProgress(0.2); err != nil || s.Progress != 0.4 {
		t.Fatalf("progress went backwards: %v", s.Progress)
	}
	if err := s.FinishLoading(twoQuestions()); err != nil || s.State != StateQuiz {
		t.Fatalf("finish: %v %s", err, s.State)
	}
	if cur := s.Current(); cur == nil || cur.ID != 1 {
		t.Fatalf("current = %+v", cur)
	}
	if err := s.Answer(quiz.UserAnswer{QuestionID: 1, SelectedAnswer: 0}); err != nil {
		t.Fatalf("answer 1: %v", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("result before finish: %v", err)
	}
	if err := s.Answer(quiz.UserAnswer{QuestionID: 2, SelectedAnswer: 0}); err != nil {
		t.Fatalf("answer 2: %v", err)
	}
	if s.State != StateResult {
		t.Fatalf("state = %s", s.State)
	}
	res, err := s.Result()
	if err != nil || res.CorrectAnswers != 1 || res.Percentage != 50 {
		t.Fatalf("result = %+v, %v", res, err)
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.State != StateUpload || s.Questions != nil || s.Answers != nil || s.ImageKey != "" {
		t.Fatalf("restart left state behind: %+v", s)
	}
}

func TestSessionRejectsNonImage(t *testing.T) {
	s := newSession("s", time.Now())
	if err := s.BeginUpload("application/pdf", "k"); !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("want ErrUnsupportedMedia, got %v", err)
	}
	if s.State != StateUpload || s.ImageKey != "" {
		t.Fatalf("state changed: %+v", s)
	}
}

func TestSessionTransitionsGuarded(t *testing.T) {
	s := newSession("s", time.Now())
	if err := s.Answer(quiz.UserAnswer{QuestionID: 1}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("answer in upload: %v", err)
	}
	if err := s.Restart(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("restart in upload: %v", err)
	}
	if err := s.FinishLoading(twoQuestions()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("finish in upload: %v", err)
	}
	_ = s.BeginUpload("image/jpeg", "k")
	if err := s.BeginUpload("image/jpeg", "k2"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second upload while loading: %v", err)
	}
}

func TestSessionAnswerValidation(t *testing.T) {
	s := newSession("s", time.Now())
	_ = s.BeginUpload("image/png", "k")
	_ = s.FinishLoading(twoQuestions())
	if err := s.Answer(quiz.UserAnswer{QuestionID: 2, SelectedAnswer: 0}); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("out of order: %v", err)
	}
	if err := s.Answer(quiz.UserAnswer{QuestionID: 1, SelectedAnswer: 4}); !errors.Is(err, ErrOptionRange) {
		t.Fatalf("range: %v", err)
	}
	if len(s.Answers) != 0 {
		t.Fatalf("invalid answers recorded: %v", s.Answers)
	}
}

func TestSessionEmptyDerivationFails(t *testing.T) {
	s := newSession("s", time.Now())
	_ = s.BeginUpload("image/png", "k")
	if err := s.FinishLoading(nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if s.State != StateUpload || s.Notice != NoticeNoQuestions {
		t.Fatalf("state = %s notice = %q", s.State, s.Notice)
	}
}

func TestMemoryStoreTakeIdle(t *testing.T) {
	m := NewMemoryStore()
	base := time.Now()
	m.now = func() time.Time { return base }
	old := m.Create()
	busy := m.Create()
	if _, err := m.Update(busy.ID, func(s *Session) error { return s.BeginUpload("image/png", "k") }); err != nil {
		t.Fatal(err)
	}
	m.now = func() time.Time { return base.Add(time.Hour) }
	fresh := m.Create()

	got := m.TakeIdle(base.Add(30 * time.Minute))
	if len(got) != 1 || got[0].ID != old.ID {
		t.Fatalf("expired = %+v", got)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session gone: %v", err)
	}
	if _, err := m.Get(busy.ID); err != nil {
		t.Fatalf("loading session gone: %v", err)
	}
	if _, err := m.Get(old.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old session still present: %v", err)
	}
}
