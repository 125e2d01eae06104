package codec

import "errors"

var (
	// ErrCorruptHeader is returned when a buffer is too short or structurally
	// invalid for its declared type.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrUnsupportedImage is returned when an image cannot be represented by
	// any file type.
	ErrUnsupportedImage = errors.New("unsupported image")
)
