package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/snapstudy/internal/auth/middleware"
	"github.com/mind-engage/snapstudy/internal/quiz"
	"github.com/mind-engage/snapstudy/internal/rbac"
	"github.com/mind-engage/snapstudy/internal/study"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func sessionID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "sessionID"))
}

// ownsSession is true when the bearer token was issued for the session in the URL.
func ownsSession(r *http.Request) bool {
	return sessionID(r) != "" && authmw.SubjectFromContext(r.Context()) == sessionID(r)
}

// POST /api/sessions
func CreateSessionHandler(svc *study.Service, authSvc *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := svc.Create(r.Context())
		tok, err := authSvc.IssueJWT(v.SessionID, rbac.RoleLearner)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"session":      v,
			"access_token": tok,
		})
	}
}

// POST /api/sessions/{sessionID}/token
// Renews the bearer of a live session so an active learner outlasts the token TTL.
func RefreshTokenHandler(svc *study.Service, authSvc *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Touch(sessionID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		tok, err := authSvc.IssueJWT(v.SessionID, rbac.RoleLearner)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"session":      v,
			"access_token": tok,
		})
	}
}

// GET /api/sessions/{sessionID}
func GetSessionHandler(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.View(sessionID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// POST /api/sessions/{sessionID}/image  (multipart, field "file")
func UploadImageHandler(svc *study.Service, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		f, fh, err := r.FormFile("file")
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeError(w, err)
				return
			}
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		v, err := svc.Upload(r.Context(), sessionID(r), fh.Header.Get("Content-Type"), f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, v)
	}
}

// GET /api/sessions/{sessionID}/image
func GetImageHandler(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, typ, err := svc.Image(sessionID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", typ)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = io.Copy(w, rc)
	}
}

type answerReq struct {
	QuestionID     int  `json:"question_id"`
	SelectedAnswer *int `json:"selected_answer"`
}

// POST /api/sessions/{sessionID}/answers
func AnswerHandler(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.SelectedAnswer == nil {
			writeError(w, study.ErrNoSelection)
			return
		}
		v, err := svc.Answer(r.Context(), sessionID(r), quiz.UserAnswer{
			QuestionID:     req.QuestionID,
			SelectedAnswer: *req.SelectedAnswer,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

type resultResp struct {
	quiz.Result
	Message string `json:"message"`
}

// GET /api/sessions/{sessionID}/result
func ResultHandler(svc *study.Service, loc quiz.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Result(sessionID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resultResp{Result: res, Message: loc.Bands[res.Band]})
	}
}

// POST /api/sessions/{sessionID}/restart
func RestartHandler(svc *study.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Restart(r.Context(), sessionID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
