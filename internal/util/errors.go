package util

import "errors"

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrAttemptInProgress = errors.New("attempt still in progress")
	ErrExamNotFound      = errors.New("exam not found or has no attempts")
	ErrInvalidEventKind  = errors.New("invalid proctor event kind")
	ErrArchiveDisabled   = errors.New("report archive disabled")
	ErrInvalidOptions    = errors.New("focus window options must not be negative")
	ErrPreviewTooLarge   = errors.New("preview request exceeds size limits")
)
