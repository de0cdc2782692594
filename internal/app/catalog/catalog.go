// Package catalog provides the in-memory video registry.
//
// Contents are immutable after load except for the per-video flag status,
// which mutates in place and is visible to every holder of the shared
// instance.
package catalog

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/vidbox/vidbox/internal/domain/video"
)

// Errors
var (
	ErrVideoNotFound = errors.New("video not found")
	ErrDuplicateID   = errors.New("duplicate video id")
)

// Catalog is the registry of all known videos, keyed by ID.
type Catalog struct {
	mu     sync.RWMutex
	videos map[string]*video.Video
	order  []string // IDs in load order, for stable enumeration
}

// New creates a catalog from pre-validated video records.
// IDs must be unique; a duplicate is a load error.
func New(videos []video.Video) (*Catalog, error) {
	c := &Catalog{
		videos: make(map[string]*video.Video, len(videos)),
		order:  make([]string, 0, len(videos)),
	}
	for i := range videos {
		v := videos[i]
		if _, exists := c.videos[v.ID]; exists {
			return nil, errors.Wrapf(ErrDuplicateID, "id %q", v.ID)
		}
		c.videos[v.ID] = &v
		c.order = append(c.order, v.ID)
	}
	return c, nil
}

// Get returns the video with the given ID.
func (c *Catalog) Get(id string) (video.Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.videos[id]
	if !ok {
		return video.Video{}, ErrVideoNotFound
	}
	return *v, nil
}

// AllVideos returns a copy of every video, in load order.
func (c *Catalog) AllVideos() []video.Video {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]video.Video, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, *c.videos[id])
	}
	return result
}

// Unflagged returns every video that is not flagged, in load order.
func (c *Catalog) Unflagged() []video.Video {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]video.Video, 0, len(c.order))
	for _, id := range c.order {
		if v := c.videos[id]; !v.Flag.IsFlagged() {
			result = append(result, *v)
		}
	}
	return result
}

// SetFlag marks the video as flagged with the given reason.
// The reason may be empty.
func (c *Catalog) SetFlag(id, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.videos[id]
	if !ok {
		return ErrVideoNotFound
	}
	v.Flag = video.FlaggedWith(reason)
	return nil
}

// ClearFlag resets the video's flag status.
func (c *Catalog) ClearFlag(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.videos[id]
	if !ok {
		return ErrVideoNotFound
	}
	v.Flag = video.Unflagged()
	return nil
}

// Len returns the number of videos in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.videos)
}
