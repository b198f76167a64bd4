package domain

import "errors"

// Parent document errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("there is no profile for this user")
	ErrPostNotFound    = errors.New("no post found")
	ErrNotAuthorized   = errors.New("user not authorized")
)

// Sub-collection errors
var (
	ErrAlreadyLiked       = errors.New("user already liked this post")
	ErrNotLiked           = errors.New("you have not yet liked this post")
	ErrCommentNotFound    = errors.New("comment does not exists")
	ErrExperienceNotFound = errors.New("no record found")
	ErrEducationNotFound  = errors.New("no record found")
)

// Account errors
var (
	ErrHandleTaken        = errors.New("that handle already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")
)
