package study

import "github.com/mind-engage/snapstudy/internal/quiz"

// QuestionView is a question as shown during the quiz: no correct index, no explanation.
type QuestionView struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// View is what a client renders for a session.
type View struct {
	SessionID     string        `json:"session_id"`
	State         State         `json:"state"`
	Progress      float64       `json:"progress"`
	Notice        string        `json:"notice,omitempty"`
	HasImage      bool          `json:"has_image"`
	QuestionCount int           `json:"question_count"`
	Answered      int           `json:"answered"`
	Current       *QuestionView `json:"current,omitempty"`
}

func NewView(s Session) View {
	v := View{
		SessionID:     s.ID,
		State:         s.State,
		Progress:      s.Progress,
		Notice:        s.Notice,
		HasImage:      s.ImageKey != "",
		QuestionCount: len(s.Questions),
		Answered:      len(s.Answers),
	}
	if q := s.Current(); q != nil {
		v.Current = questionView(*q)
	}
	return v
}

func questionView(q quiz.Question) *QuestionView {
	return &QuestionView{ID: q.ID, Question: q.Question, Options: q.Options}
}
