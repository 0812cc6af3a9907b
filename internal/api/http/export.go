package http

import (
	"bytes"
	"net/http"

	"github.com/mind-engage/snapstudy/internal/export"
	"github.com/mind-engage/snapstudy/internal/quiz"
	"github.com/mind-engage/snapstudy/internal/study"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/sessions/{sessionID}/result.xlsx
func ExportResultHandler(svc *study.Service, loc quiz.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Result(sessionID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteResult(&buf, res, loc); err != nil {
			http.Error(w, "export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", xlsxType)
		w.Header().Set("Content-Disposition", `attachment; filename="quiz-result.xlsx"`)
		_, _ = buf.WriteTo(w)
	}
}
