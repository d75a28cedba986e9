package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrPostNotFound = errors.New("post not found")
	ErrTitleAndContentRequired = errors.New("title and content must not be empty")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFileMustBeImage = errors.New("file must be an image")
	ErrImageTooLarge = errors.New("image size must be less than 10MB")
	ErrFailedToUploadImage = errors.New("failed to upload image to storage")
)
