package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrClassNotEmpty     = errors.New("class still has subjects")
	ErrSubjectNotEmpty   = errors.New("subject still has chapters")
	ErrChapterNotEmpty   = errors.New("chapter still has questions")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizNoQuestions   = errors.New("quiz has no resolvable questions")
	ErrSessionNotFound   = errors.New("attempt session not found")
	ErrSessionCompleted  = errors.New("attempt session already completed")
	ErrQuestionNotInQuiz = errors.New("question not part of this quiz")
	ErrInvalidOption     = errors.New("selected option out of range")
	ErrScopeMismatch     = errors.New("quiz scope does not match request")
)
