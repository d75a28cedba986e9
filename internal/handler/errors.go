package handler

import "errors"

var (
	errNotAuthorized = errors.New("user is not authorized")
	errNoAccess = errors.New("no access")
	errPostNotFound = errors.New("post not found")
	errMissingSearchQuery = errors.New("missing search query")
)
