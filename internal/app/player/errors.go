package player

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Errors
var (
	ErrPlaylistNotFound  = errors.New("playlist not found")
	ErrPlaylistExists    = errors.New("playlist already exists")
	ErrAlreadyFlagged    = errors.New("video already flagged")
	ErrNotFlagged        = errors.New("video not flagged")
	ErrNothingPlaying    = errors.New("no video is playing")
	ErrAlreadyPaused     = errors.New("video already paused")
	ErrNotPaused         = errors.New("video not paused")
	ErrNoVideosAvailable = errors.New("no videos available")
)

// FlaggedError reports an operation rejected because the video is flagged.
// Reason may be empty when the flag was set without one.
type FlaggedError struct {
	ID     string
	Reason string
}

func (e *FlaggedError) Error() string {
	return fmt.Sprintf("video %s is flagged", e.ID)
}
