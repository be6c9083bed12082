package domain

import "errors"

// Domain errors.
var (
	// ErrInvalidSourceURL is returned when a URL fails the host allow-check.
	ErrInvalidSourceURL = errors.New("invalid source URL")

	// ErrExtractionFailed is returned when the extraction backend produced
	// no usable result: invocation failure, unparseable output, or a URL
	// that does not reference a video.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoVideoFormats is returned when extraction succeeded but yielded
	// zero formats with video content.
	ErrNoVideoFormats = errors.New("no video formats found")

	// ErrFormatNotFound is returned when a requested format does not match
	// any extracted variant.
	ErrFormatNotFound = errors.New("requested format not found")
)
