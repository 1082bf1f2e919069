package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSessionNotFound    = errors.New("grading session not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrResponseNotFound   = errors.New("response not found")
	ErrNoAnswerKey        = errors.New("no answer key entry for question")
	ErrNothingToGrade     = errors.New("nothing to grade")
	ErrNothingToProcess   = errors.New("no pending worksheets to process")
)
