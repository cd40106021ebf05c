package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrCourseNotFound        = errors.New("course not found")
	ErrCourseInactive        = errors.New("course is not active")
	ErrAlreadyEnrolled       = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound    = errors.New("enrollment not found")
	ErrInvalidScore          = errors.New("score must be between 0 and max score")
	ErrBreakdownWeights      = errors.New("breakdown weights must sum to 100 for each period")
	ErrNoAIProvider          = errors.New("no AI provider API key configured")
	ErrSessionNotFound       = errors.New("advising session not found")
	ErrSessionNotSchedulable = errors.New("session date must be in the future")
)
