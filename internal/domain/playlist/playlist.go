// Package playlist provides the Playlist domain entity.
package playlist

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Errors
var (
	ErrDuplicateVideo = errors.New("video already in playlist")
	ErrVideoNotInList = errors.New("video not in playlist")
)

// Playlist is a named, ordered, duplicate-free list of catalog video IDs.
// It holds references only; existence and flag checks are the caller's
// responsibility.
type Playlist struct {
	name     string   // Display name, case preserved
	videoIDs []string // IDs in add order
}

// New creates an empty playlist with the given display name.
func New(name string) *Playlist {
	return &Playlist{
		name:     name,
		videoIDs: make([]string, 0),
	}
}

// Key returns the case-insensitive identity for the given playlist name.
func Key(name string) string {
	return strings.ToUpper(name)
}

// Name returns the display name as originally supplied.
func (p *Playlist) Name() string {
	return p.name
}

// Key returns the playlist's normalized identity.
func (p *Playlist) Key() string {
	return Key(p.name)
}

// Add appends a video ID. Returns ErrDuplicateVideo if already present.
func (p *Playlist) Add(videoID string) error {
	if p.Contains(videoID) {
		return ErrDuplicateVideo
	}
	p.videoIDs = append(p.videoIDs, videoID)
	return nil
}

// Remove deletes a video ID, preserving the order of the rest.
// Returns ErrVideoNotInList if absent.
func (p *Playlist) Remove(videoID string) error {
	for i, id := range p.videoIDs {
		if id == videoID {
			p.videoIDs = append(p.videoIDs[:i], p.videoIDs[i+1:]...)
			return nil
		}
	}
	return ErrVideoNotInList
}

// Clear removes all videos. The playlist itself stays registered.
func (p *Playlist) Clear() {
	p.videoIDs = p.videoIDs[:0]
}

// Contains reports whether the video ID is in the playlist.
func (p *Playlist) Contains(videoID string) bool {
	for _, id := range p.videoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}

// VideoIDs returns a copy of the video IDs in add order.
func (p *Playlist) VideoIDs() []string {
	ids := make([]string, len(p.videoIDs))
	copy(ids, p.videoIDs)
	return ids
}

// Len returns the number of videos in the playlist.
func (p *Playlist) Len() int {
	return len(p.videoIDs)
}
