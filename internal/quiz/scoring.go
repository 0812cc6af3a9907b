package quiz

import "math"

// Band is the message tier shown on the review screen.
type Band string

const (
	BandPerfect     Band = "perfect"
	BandExcellent   Band = "excellent"
	BandGood        Band = "good"
	BandKeepGoing   Band = "keep_going"
	BandNeedsReview Band = "needs_review"
)

// CountCorrect matches every answer to the question sharing its id.
// Answers for unknown questions are ignored.
func CountCorrect(questions []Question, answers []UserAnswer) int {
	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	n := 0
	for _, a := range answers {
		if q, ok := byID[a.QuestionID]; ok && q.CorrectAnswer == a.SelectedAnswer {
			n++
		}
	}
	return n
}

// Percentage rounds half up and returns 0 for an empty quiz.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func BandFor(percentage int) Band {
	switch {
	case percentage >= 100:
		return BandPerfect
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	case percentage >= 40:
		return BandKeepGoing
	default:
		return BandNeedsReview
	}
}

// Score builds the full result for the review screen.
func Score(questions []Question, answers []UserAnswer) Result {
	correct := CountCorrect(questions, answers)
	pct := Percentage(correct, len(questions))
	return Result{
		TotalQuestions: len(questions),
		CorrectAnswers: correct,
		Percentage:     pct,
		Band:           BandFor(pct),
		Answers:        answers,
		Questions:      questions,
	}
}
