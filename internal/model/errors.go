package model

import "errors"

var (
	// Credential errors
	ErrDuplicateCredential = errors.New("username or email already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")

	// Authorization errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	// Password reset errors
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")
	ErrEmailDelivery     = errors.New("email delivery failed")

	// Content errors
	ErrArticleNotFound      = errors.New("article not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
