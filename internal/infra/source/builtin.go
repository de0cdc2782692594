package source

import "github.com/vidbox/vidbox/internal/domain/video"

// BuiltinSource serves the embedded demo catalog, so the player is usable
// without any catalog file.
type BuiltinSource struct{}

// NewBuiltinSource creates the builtin demo source.
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Name returns the source name.
func (s *BuiltinSource) Name() string {
	return "builtin"
}

// Load returns the demo catalog.
func (s *BuiltinSource) Load() ([]video.Video, error) {
	return []video.Video{
		{ID: "funny_dogs_video_id", Title: "Funny Dogs", Tags: []string{"dog", "animal"}},
		{ID: "amazing_cats_video_id", Title: "Amazing Cats", Tags: []string{"cat", "animal"}},
		{ID: "another_cat_video_id", Title: "Another Cat Video", Tags: []string{"cat", "animal"}},
		{ID: "life_at_google_video_id", Title: "Life at Google", Tags: []string{"google", "career"}},
		{ID: "nothing_video_id", Title: "Video about nothing", Tags: []string{}},
	}, nil
}
