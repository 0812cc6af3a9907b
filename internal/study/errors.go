package study

import "errors"

var (
	ErrNotFound         = errors.New("session not found")
	ErrInvalidState     = errors.New("action not allowed in current state")
	ErrUnsupportedMedia = errors.New("select an image file")
	ErrNoSelection      = errors.New("select an option before advancing")
	ErrOutOfOrder       = errors.New("answer does not match the current question")
	ErrOptionRange      = errors.New("selected option out of range")
)

// user-facing notices for a failed load
const (
	NoticeNoText      = "could not extract text from the image; try another image"
	NoticeNoQuestions = "could not generate questions; try another image"
	NoticeFailed      = "processing failed; please try again"
)
