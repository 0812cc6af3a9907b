// Package export renders a finished quiz as an .xlsx review workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mind-engage/snapstudy/internal/quiz"
)

const (
	SummarySheet = "Summary"
	ReviewSheet  = "Review"
)

var reviewHeader = []interface{}{"No", "Question", "Your answer", "Correct answer", "Result", "Explanation"}

// WriteResult writes the workbook for res to w.
func WriteResult(w io.Writer, res quiz.Result, loc quiz.Locale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"Questions", res.TotalQuestions},
		{"Correct", res.CorrectAnswers},
		{"Percentage", res.Percentage},
		{"Message", loc.Bands[res.Band]},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(ReviewSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ReviewSheet, "A1", &reviewHeader); err != nil {
		return err
	}
	selected := make(map[int]int, len(res.Answers))
	for _, a := range res.Answers {
		selected[a.QuestionID] = a.SelectedAnswer
	}
	for i, q := range res.Questions {
		yours := ""
		verdict := "incorrect"
		if sel, ok := selected[q.ID]; ok {
			yours = option(q, sel)
			if sel == q.CorrectAnswer {
				verdict = "correct"
			}
		}
		row := []interface{}{q.ID, q.Question, yours, option(q, q.CorrectAnswer), verdict, q.Explanation}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ReviewSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func option(q quiz.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}
