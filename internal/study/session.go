package study

import (
	"fmt"
	"strings"
	"time"

	"github.com/mind-engage/snapstudy/internal/quiz"
)

type State string

const (
	StateUpload  State = "upload"
	StateLoading State = "loading"
	StateQuiz    State = "quiz"
	StateResult  State = "result"
)

// Session is one learner's pass through upload, loading, quiz and result.
type Session struct {
	ID        string
	State     State
	Progress  float64
	Notice    string
	ImageKey  string
	ImageType string
	Questions []quiz.Question
	Answers   []quiz.UserAnswer
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, State: StateUpload, CreatedAt: now, UpdatedAt: now}
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// BeginUpload moves upload -> loading. A non-image leaves the session untouched.
func (s *Session) BeginUpload(contentType, imageKey string) error {
	if s.State != StateUpload {
		return fmt.Errorf("upload in %s: %w", s.State, ErrInvalidState)
	}
	if !isImage(contentType) {
		return ErrUnsupportedMedia
	}
	s.State = StateLoading
	s.Progress = 0
	s.Notice = ""
	s.ImageKey = imageKey
	s.ImageType = contentType
	s.Questions = nil
	s.Answers = nil
	return nil
}

func (s *Session) SetProgress(p float64) error {
	if s.State != StateLoading {
		return fmt.Errorf("progress in %s: %w", s.State, ErrInvalidState)
	}
	if p < s.Progress {
		return nil
	}
	if p > 1 {
		p = 1
	}
	s.Progress = p
	return nil
}

// FinishLoading moves loading -> quiz, or back to upload when there is nothing to ask.
func (s *Session) FinishLoading(questions []quiz.Question) error {
	if s.State != StateLoading {
		return fmt.Errorf("finish in %s: %w", s.State, ErrInvalidState)
	}
	if len(questions) == 0 {
		return s.Fail(NoticeNoQuestions)
	}
	s.State = StateQuiz
	s.Progress = 1
	s.Questions = questions
	s.Answers = make([]quiz.UserAnswer, 0, len(questions))
	return nil
}

// Fail moves loading -> upload with a notice for the learner.
func (s *Session) Fail(notice string) error {
	if s.State != StateLoading {
		return fmt.Errorf("fail in %s: %w", s.State, ErrInvalidState)
	}
	s.reset()
	s.Notice = notice
	return nil
}

// Current is the next unanswered question, or nil outside the quiz.
func (s *Session) Current() *quiz.Question {
	if s.State != StateQuiz || len(s.Answers) >= len(s.Questions) {
		return nil
	}
	return &s.Questions[len(s.Answers)]
}

// Answer records the selection for the current question; the last one moves quiz -> result.
func (s *Session) Answer(a quiz.UserAnswer) error {
	cur := s.Current()
	if cur == nil {
		return fmt.Errorf("answer in %s: %w", s.State, ErrInvalidState)
	}
	if a.QuestionID != cur.ID {
		return fmt.Errorf("question %d, expected %d: %w", a.QuestionID, cur.ID, ErrOutOfOrder)
	}
	if a.SelectedAnswer < 0 || a.SelectedAnswer >= len(cur.Options) {
		return fmt.Errorf("option %d: %w", a.SelectedAnswer, ErrOptionRange)
	}
	s.Answers = append(s.Answers, a)
	if len(s.Answers) == len(s.Questions) {
		s.State = StateResult
	}
	return nil
}

func (s *Session) Result() (quiz.Result, error) {
	if s.State != StateResult {
		return quiz.Result{}, fmt.Errorf("result in %s: %w", s.State, ErrInvalidState)
	}
	return quiz.Score(s.Questions, s.Answers), nil
}

// Restart moves result -> upload and forgets everything from the previous run.
func (s *Session) Restart() error {
	if s.State != StateResult {
		return fmt.Errorf("restart in %s: %w", s.State, ErrInvalidState)
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.State = StateUpload
	s.Progress = 0
	s.Notice = ""
	s.ImageKey = ""
	s.ImageType = ""
	s.Questions = nil
	s.Answers = nil
}

func (s *Session) clone() Session {
	c := *s
	c.Questions = append([]quiz.Question(nil), s.Questions...)
	c.Answers = append([]quiz.UserAnswer(nil), s.Answers...)
	return c
}
