package quiz

// Question is one multiple-choice item derived from extracted text.
type Question struct {
	ID            int      `json:"id"` // 1-based position in the quiz
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// UserAnswer records the option a learner picked for a question.
type UserAnswer struct {
	QuestionID     int `json:"question_id"`
	SelectedAnswer int `json:"selected_answer"`
}

// Result is the outcome of a finished quiz, with everything the review screen needs.
type Result struct {
	TotalQuestions int          `json:"total_questions"`
	CorrectAnswers int          `json:"correct_answers"`
	Percentage     int          `json:"percentage"`
	Band           Band         `json:"band"`
	Answers        []UserAnswer `json:"answers"`
	Questions      []Question   `json:"questions"`
}

// Valid reports whether the correct index points inside Options.
func (q Question) Valid() bool {
	return q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}
