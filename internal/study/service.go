package study

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mind-engage/snapstudy/internal/activity"
	"github.com/mind-engage/snapstudy/internal/ocr"
	"github.com/mind-engage/snapstudy/internal/quiz"
	"github.com/mind-engage/snapstudy/internal/storage"
)

// progress checkpoints, as fractions of the whole load
const (
	ocrShare       = 0.8
	deriveProgress = 0.85
)

// Notifier is told about every change of a session's view.
type Notifier interface {
	Notify(v View)
}

type NotifierFunc func(v View)

func (f NotifierFunc) Notify(v View) { f(v) }

type Service struct {
	store    *MemoryStore
	ocr      ocr.Extractor
	deriver  *quiz.Deriver
	blobs    storage.BlobStore
	activity activity.Recorder
	notifier Notifier
	onExpire func(sessionID string)
	timeout  time.Duration

	wg sync.WaitGroup
}

type Deps struct {
	Store    *MemoryStore
	OCR      ocr.Extractor
	Deriver  *quiz.Deriver
	Blobs    storage.BlobStore
	Activity activity.Recorder
	Notifier Notifier
	OnExpire func(sessionID string) // called after the sweeper removes a session
	Timeout  time.Duration          // upper bound on one extraction
}

func NewService(d Deps) *Service {
	s := &Service{
		store:    d.Store,
		ocr:      d.OCR,
		deriver:  d.Deriver,
		blobs:    d.Blobs,
		activity: d.Activity,
		notifier: d.Notifier,
		onExpire: d.OnExpire,
		timeout:  d.Timeout,
	}
	if s.store == nil {
		s.store = NewMemoryStore()
	}
	if s.deriver == nil {
		s.deriver = quiz.NewDeriver()
	}
	if s.activity == nil {
		s.activity = activity.Discard{}
	}
	if s.notifier == nil {
		s.notifier = NotifierFunc(func(View) {})
	}
	if s.onExpire == nil {
		s.onExpire = func(string) {}
	}
	if s.timeout <= 0 {
		s.timeout = 60 * time.Second
	}
	return s
}

func (s *Service) Create(ctx context.Context) View {
	sess := s.store.Create()
	s.record(ctx, activity.Event{SessionID: sess.ID, Type: activity.SessionCreated})
	return NewView(sess)
}

func (s *Service) View(id string) (View, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return NewView(sess), nil
}

// Touch marks the session active so the sweeper leaves it alone.
func (s *Service) Touch(id string) (View, error) {
	sess, err := s.store.Update(id, func(*Session) error { return nil })
	if err != nil {
		return View{}, err
	}
	return NewView(sess), nil
}

// Upload stores the image and starts extraction in the background.
// A non-image is rejected without touching the session.
func (s *Service) Upload(ctx context.Context, id, declaredType string, r io.Reader) (View, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	if sess.State != StateUpload {
		return View{}, fmt.Errorf("upload in %s: %w", sess.State, ErrInvalidState)
	}
	br := bufio.NewReaderSize(r, 512)
	head, _ := br.Peek(512)
	if !acceptable(declaredType, http.DetectContentType(head)) {
		s.record(ctx, activity.Event{SessionID: id, Type: activity.UploadRejected, Detail: declaredType})
		return View{}, ErrUnsupportedMedia
	}

	key := "sessions/" + id + "/" + uuid.NewString()
	if _, err := s.blobs.Put(key, br); err != nil {
		return View{}, fmt.Errorf("store image: %w", err)
	}
	sess, err = s.store.Update(id, func(ss *Session) error { return ss.BeginUpload(declaredType, key) })
	if err != nil {
		s.dropImage(key)
		return View{}, err
	}
	v := NewView(sess)
	s.notifier.Notify(v)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.load(id, key)
	}()
	return v, nil
}

// acceptable needs an image/* declaration; sniffing may only veto it with a known non-image type.
func acceptable(declared, sniffed string) bool {
	if !isImage(declared) {
		return false
	}
	return isImage(sniffed) || strings.HasPrefix(sniffed, "application/octet-stream")
}

func (s *Service) load(id, key string) {
	ctx := context.Background()
	ectx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.extract(ectx, id, key)
	if err != nil {
		log.Printf("study: extraction for %s failed: %v", id, err)
		s.fail(ctx, id, key, NoticeFailed, err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		s.fail(ctx, id, key, NoticeNoText, "empty text")
		return
	}

	s.progress(id, deriveProgress)
	questions := s.deriver.Derive(text)

	sess, err := s.store.Update(id, func(ss *Session) error { return ss.FinishLoading(questions) })
	if err != nil {
		log.Printf("study: finish %s: %v", id, err)
		return
	}
	if sess.State != StateQuiz {
		s.dropImage(key)
		s.record(ctx, activity.Event{SessionID: id, Type: activity.ExtractionFailed, Detail: "no questions"})
		s.notifier.Notify(NewView(sess))
		return
	}
	s.record(ctx, activity.Event{SessionID: id, Type: activity.QuizStarted, Total: len(sess.Questions)})
	s.notifier.Notify(NewView(sess))
}

func (s *Service) extract(ctx context.Context, id, key string) (string, error) {
	if s.ocr == nil {
		return "", errors.New("no ocr engine configured")
	}
	rc, err := s.blobs.Get(key)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.ocr.Extract(ctx, rc, func(p float64) { s.progress(id, p*ocrShare) })
}

func (s *Service) progress(id string, p float64) {
	sess, err := s.store.Update(id, func(ss *Session) error { return ss.SetProgress(p) })
	if err != nil {
		return
	}
	s.notifier.Notify(NewView(sess))
}

func (s *Service) fail(ctx context.Context, id, key, notice, detail string) {
	s.dropImage(key)
	sess, err := s.store.Update(id, func(ss *Session) error { return ss.Fail(notice) })
	if err != nil {
		log.Printf("study: fail %s: %v", id, err)
		return
	}
	s.record(ctx, activity.Event{SessionID: id, Type: activity.ExtractionFailed, Detail: detail})
	s.notifier.Notify(NewView(sess))
}

func (s *Service) Answer(ctx context.Context, id string, a quiz.UserAnswer) (View, error) {
	sess, err := s.store.Update(id, func(ss *Session) error { return ss.Answer(a) })
	if err != nil {
		return View{}, err
	}
	if sess.State == StateResult {
		res, _ := sess.Result()
		s.record(ctx, activity.Event{
			SessionID: id, Type: activity.QuizCompleted,
			Total: res.TotalQuestions, Correct: res.CorrectAnswers,
		})
	}
	v := NewView(sess)
	s.notifier.Notify(v)
	return v, nil
}

func (s *Service) Result(id string) (quiz.Result, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return quiz.Result{}, err
	}
	return sess.Result()
}

// Restart returns a finished session to upload and deletes its image.
func (s *Service) Restart(ctx context.Context, id string) (View, error) {
	var key string
	sess, err := s.store.Update(id, func(ss *Session) error {
		key = ss.ImageKey
		return ss.Restart()
	})
	if err != nil {
		return View{}, err
	}
	s.dropImage(key)
	s.record(ctx, activity.Event{SessionID: id, Type: activity.SessionRestarted})
	v := NewView(sess)
	s.notifier.Notify(v)
	return v, nil
}

// Image opens the uploaded image for preview.
func (s *Service) Image(id string) (io.ReadCloser, string, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, "", err
	}
	if sess.ImageKey == "" {
		return nil, "", ErrNotFound
	}
	rc, err := s.blobs.Get(sess.ImageKey)
	if err != nil {
		return nil, "", err
	}
	return rc, sess.ImageType, nil
}

// Sweep expires sessions idle for longer than ttl and returns how many were removed.
func (s *Service) Sweep(ctx context.Context, ttl time.Duration) int {
	expired := s.store.TakeIdle(time.Now().Add(-ttl))
	for _, sess := range expired {
		s.dropImage(sess.ImageKey)
		s.record(ctx, activity.Event{SessionID: sess.ID, Type: activity.SessionExpired})
		s.onExpire(sess.ID)
	}
	return len(expired)
}

// Wait blocks until background extractions finish.
func (s *Service) Wait() { s.wg.Wait() }

func (s *Service) dropImage(key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(key); err != nil {
		log.Printf("study: delete %s: %v", key, err)
	}
}

func (s *Service) record(ctx context.Context, e activity.Event) {
	if err := s.activity.Record(ctx, e); err != nil {
		log.Printf("study: activity %s for %s: %v", e.Type, e.SessionID, err)
	}
}
