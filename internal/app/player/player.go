package player

import (
	"sort"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/vidbox/vidbox/internal/app/catalog"
	"github.com/vidbox/vidbox/internal/domain/playlist"
	"github.com/vidbox/vidbox/internal/domain/video"
)

// Player owns the current playback state and the playlist registry.
// Every user-facing operation goes through a single Player instance;
// all operations are serialized behind its mutex.
type Player struct {
	mu sync.RWMutex

	catalog   *catalog.Catalog
	playlists map[string]*playlist.Playlist // normalized key -> playlist

	state     State
	currentID string // meaningful only when state != StateStopped

	pick Picker
}

// NowPlaying describes the current video and pause status.
type NowPlaying struct {
	Video  video.Video
	Paused bool
}

// PlayResult describes a successful play transition.
// Stopped is the video that was interrupted, if any.
type PlayResult struct {
	Stopped *video.Video
	Started video.Video
}

// FlagResult describes a successful flag operation.
// Stopped is set when flagging interrupted the current video.
type FlagResult struct {
	Stopped *video.Video
	Video   video.Video
}

// Summary describes a playlist for listing.
type Summary struct {
	Name  string
	Count int
}

// New creates a player bound to a catalog.
func New(cat *catalog.Catalog, pick Picker) *Player {
	return &Player{
		catalog:   cat,
		playlists: make(map[string]*playlist.Playlist),
		state:     StateStopped,
		pick:      pick,
	}
}

// Play starts playback of the given video, stopping the current one if
// necessary. Fails if the video does not exist or is flagged.
func (p *Player) Play(id string) (PlayResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playLocked(id)
}

func (p *Player) playLocked(id string) (PlayResult, error) {
	v, err := p.catalog.Get(id)
	if err != nil {
		return PlayResult{}, err
	}
	if v.Flag.IsFlagged() {
		return PlayResult{}, &FlaggedError{ID: v.ID, Reason: v.Flag.Reason()}
	}

	var result PlayResult
	if p.state != StateStopped {
		stopped, _ := p.catalog.Get(p.currentID)
		result.Stopped = &stopped
	}

	p.currentID = v.ID
	p.state = StatePlaying
	result.Started = v

	zlog.Debug().Msgf("player: playing video: id=%s title=%s", v.ID, v.Title)
	return result, nil
}

// Stop stops the current video.
func (p *Player) Stop() (video.Video, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stopLocked()
}

func (p *Player) stopLocked() (video.Video, error) {
	if p.state == StateStopped {
		return video.Video{}, ErrNothingPlaying
	}
	stopped, _ := p.catalog.Get(p.currentID)
	p.currentID = ""
	p.state = StateStopped

	zlog.Debug().Msgf("player: stopped video: id=%s", stopped.ID)
	return stopped, nil
}

// PlayRandom plays a uniformly selected unflagged video.
func (p *Player) PlayRandom() (PlayResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := p.catalog.Unflagged()
	if len(candidates) == 0 {
		return PlayResult{}, ErrNoVideosAvailable
	}
	chosen := candidates[p.pick(len(candidates))]
	return p.playLocked(chosen.ID)
}

// Pause pauses the current video.
func (p *Player) Pause() (video.Video, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateStopped {
		return video.Video{}, ErrNothingPlaying
	}
	if p.state == StatePaused {
		return video.Video{}, ErrAlreadyPaused
	}
	p.state = StatePaused
	v, _ := p.catalog.Get(p.currentID)
	return v, nil
}

// Resume resumes a paused video.
func (p *Player) Resume() (video.Video, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateStopped {
		return video.Video{}, ErrNothingPlaying
	}
	if p.state != StatePaused {
		return video.Video{}, ErrNotPaused
	}
	p.state = StatePlaying
	v, _ := p.catalog.Get(p.currentID)
	return v, nil
}

// NowPlaying returns the current video and pause status.
// The second return is false when nothing is playing.
func (p *Player) NowPlaying() (NowPlaying, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.state == StateStopped {
		return NowPlaying{}, false
	}
	v, _ := p.catalog.Get(p.currentID)
	return NowPlaying{Video: v, Paused: p.state == StatePaused}, true
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// NumberOfVideos returns the catalog size.
func (p *Player) NumberOfVideos() int {
	return p.catalog.Len()
}

// AllVideos returns every catalog video sorted by title.
func (p *Player) AllVideos() []video.Video {
	videos := p.catalog.AllVideos()
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].Title < videos[j].Title
	})
	return videos
}

// CreatePlaylist registers a new empty playlist.
// Playlist names are case-insensitive for identity.
func (p *Player) CreatePlaylist(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := playlist.Key(name)
	if _, exists := p.playlists[key]; exists {
		return ErrPlaylistExists
	}
	p.playlists[key] = playlist.New(name)

	zlog.Debug().Msgf("player: created playlist: name=%s", name)
	return nil
}

// AddToPlaylist appends an unflagged video to a playlist.
// Returns the added video.
func (p *Player) AddToPlaylist(name, id string) (video.Video, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pl, exists := p.playlists[playlist.Key(name)]
	if !exists {
		return video.Video{}, ErrPlaylistNotFound
	}
	v, err := p.catalog.Get(id)
	if err != nil {
		return video.Video{}, err
	}
	if v.Flag.IsFlagged() {
		return video.Video{}, &FlaggedError{ID: v.ID, Reason: v.Flag.Reason()}
	}
	if err := pl.Add(v.ID); err != nil {
		return video.Video{}, err
	}
	return v, nil
}

// RemoveFromPlaylist removes a video from a playlist. Returns the removed
// video.
func (p *Player) RemoveFromPlaylist(name, id string) (video.Video, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pl, exists := p.playlists[playlist.Key(name)]
	if !exists {
		return video.Video{}, ErrPlaylistNotFound
	}
	v, err := p.catalog.Get(id)
	if err != nil {
		return video.Video{}, err
	}
	if err := pl.Remove(v.ID); err != nil {
		return video.Video{}, err
	}
	return v, nil
}

// ClearPlaylist empties a playlist without unregistering it.
func (p *Player) ClearPlaylist(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pl, exists := p.playlists[playlist.Key(name)]
	if !exists {
		return ErrPlaylistNotFound
	}
	pl.Clear()
	return nil
}

// DeletePlaylist unregisters a playlist entirely.
func (p *Player) DeletePlaylist(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := playlist.Key(name)
	if _, exists := p.playlists[key]; !exists {
		return ErrPlaylistNotFound
	}
	delete(p.playlists, key)
	return nil
}

// Playlists returns all playlists sorted alphabetically by display name.
func (p *Player) Playlists() []Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]Summary, 0, len(p.playlists))
	for _, pl := range p.playlists {
		result = append(result, Summary{Name: pl.Name(), Count: pl.Len()})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// PlaylistVideos returns the playlist's videos in add order.
// Flagged videos already in the playlist remain listed.
func (p *Player) PlaylistVideos(name string) ([]video.Video, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pl, exists := p.playlists[playlist.Key(name)]
	if !exists {
		return nil, ErrPlaylistNotFound
	}
	ids := pl.VideoIDs()
	videos := make([]video.Video, 0, len(ids))
	for _, id := range ids {
		v, err := p.catalog.Get(id)
		if err != nil {
			// Catalog contents never shrink after load.
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// Search returns all unflagged videos whose title contains the term,
// case-insensitive. An empty result is not an error.
func (p *Player) Search(term string) []video.Video {
	matched := make([]video.Video, 0)
	for _, v := range p.catalog.Unflagged() {
		if v.MatchesTitle(term) {
			matched = append(matched, v)
		}
	}
	return matched
}

// SearchByTag returns all unflagged videos with a tag containing the given
// text, case-insensitive. An empty result is not an error.
func (p *Player) SearchByTag(tag string) []video.Video {
	matched := make([]video.Video, 0)
	for _, v := range p.catalog.Unflagged() {
		if v.HasTag(tag) {
			matched = append(matched, v)
		}
	}
	return matched
}

// Flag marks a video as flagged, stopping it first if it is the one
// currently playing. A flagged video is never the current video.
func (p *Player) Flag(id, reason string) (FlagResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, err := p.catalog.Get(id)
	if err != nil {
		return FlagResult{}, err
	}
	if v.Flag.IsFlagged() {
		return FlagResult{}, ErrAlreadyFlagged
	}

	var result FlagResult
	if p.state != StateStopped && p.currentID == v.ID {
		stopped, _ := p.stopLocked()
		result.Stopped = &stopped
	}

	if err := p.catalog.SetFlag(v.ID, reason); err != nil {
		return FlagResult{}, err
	}
	result.Video, _ = p.catalog.Get(v.ID)

	zlog.Debug().Msgf("player: flagged video: id=%s reason=%q", v.ID, reason)
	return result, nil
}

// Allow clears a video's flag.
func (p *Player) Allow(id string) (video.Video, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, err := p.catalog.Get(id)
	if err != nil {
		return video.Video{}, err
	}
	if !v.Flag.IsFlagged() {
		return video.Video{}, ErrNotFlagged
	}
	if err := p.catalog.ClearFlag(v.ID); err != nil {
		return video.Video{}, err
	}
	v, _ = p.catalog.Get(v.ID)

	zlog.Debug().Msgf("player: cleared flag: id=%s", v.ID)
	return v, nil
}
