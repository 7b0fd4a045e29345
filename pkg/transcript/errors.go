package transcript

import "errors"

var (
	// ErrVideoUnavailable means the video itself cannot be played (removed,
	// private, or region locked).
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrTranscriptsDisabled means the uploader turned captions off for the
	// video.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrNoTranscript means captions exist but none match the requested
	// language.
	ErrNoTranscript = errors.New("no transcript found for the requested language")

	// ErrInvalidURL means a video ID could not be extracted from the input.
	ErrInvalidURL = errors.New("could not extract a video id from the input")
)
