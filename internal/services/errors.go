package services

import "errors"

var (
	// ErrInvalidImage means the payload did not decode to a supported
	// raster image.
	ErrInvalidImage = errors.New("image payload is not a valid image")

	// ErrUnknownStyle means the style id is not in the prompt catalog.
	ErrUnknownStyle = errors.New("unknown style id")

	// ErrPaymentDeclined means the provider did not confirm the reference.
	// The caller may retry with a correct reference; nothing was mutated.
	ErrPaymentDeclined = errors.New("payment verification failed")
)
