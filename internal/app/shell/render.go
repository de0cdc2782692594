package shell

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vidbox/vidbox/internal/app/catalog"
	"github.com/vidbox/vidbox/internal/app/player"
	"github.com/vidbox/vidbox/internal/domain/playlist"
	"github.com/vidbox/vidbox/internal/domain/video"
)

// videoLine pairs a video id with its rendered form, for numbered search
// results.
type videoLine struct {
	id   string
	text string
}

// formatVideo renders "Title (id) [tags]" with a flag annotation when
// flagged.
func formatVideo(v video.Video) string {
	var b strings.Builder
	b.WriteString(v.Title)
	b.WriteString(" (")
	b.WriteString(v.ID)
	b.WriteString(") [")
	b.WriteString(strings.Join(v.Tags, " "))
	b.WriteString("]")
	if v.Flag.IsFlagged() {
		b.WriteString(" - FLAGGED (reason: ")
		b.WriteString(reasonOrDefault(v.Flag.Reason()))
		b.WriteString(")")
	}
	return b.String()
}

// reasonOrDefault renders an absent flag reason.
func reasonOrDefault(reason string) string {
	if reason == "" {
		return "Not supplied"
	}
	return reason
}

func (s *Shell) showAllVideos() {
	s.printf("Here's a list of all available videos:")
	for _, v := range s.player.AllVideos() {
		s.printf("  %s", formatVideo(v))
	}
}

func (s *Shell) play(id string) {
	res, err := s.player.Play(id)
	if err != nil {
		var flagged *player.FlaggedError
		switch {
		case errors.Is(err, catalog.ErrVideoNotFound):
			s.printf("Cannot play video: Video does not exist")
		case errors.As(err, &flagged):
			s.printf("Cannot play video: Video is currently flagged (reason: %s)",
				reasonOrDefault(flagged.Reason))
		default:
			s.printf("Cannot play video: %v", err)
		}
		return
	}
	if res.Stopped != nil {
		s.printf("Stopping video: %s", res.Stopped.Title)
	}
	s.printf("Playing video: %s", res.Started.Title)
}

func (s *Shell) playRandom() {
	res, err := s.player.PlayRandom()
	if err != nil {
		s.printf("No videos available")
		return
	}
	if res.Stopped != nil {
		s.printf("Stopping video: %s", res.Stopped.Title)
	}
	s.printf("Playing video: %s", res.Started.Title)
}

func (s *Shell) stop() {
	stopped, err := s.player.Stop()
	if err != nil {
		s.printf("Cannot stop video: No video is currently playing")
		return
	}
	s.printf("Stopping video: %s", stopped.Title)
}

func (s *Shell) pause() {
	v, err := s.player.Pause()
	if err != nil {
		if errors.Is(err, player.ErrAlreadyPaused) {
			if now, ok := s.player.NowPlaying(); ok {
				s.printf("Video already paused: %s", now.Video.Title)
			}
			return
		}
		s.printf("Cannot pause video: No video is currently playing")
		return
	}
	s.printf("Pausing video: %s", v.Title)
}

func (s *Shell) resume() {
	v, err := s.player.Resume()
	if err != nil {
		if errors.Is(err, player.ErrNotPaused) {
			s.printf("Cannot continue video: Video is not paused")
			return
		}
		s.printf("Cannot continue video: No video is currently playing")
		return
	}
	s.printf("Continuing video: %s", v.Title)
}

func (s *Shell) showPlaying() {
	now, ok := s.player.NowPlaying()
	if !ok {
		s.printf("No video is currently playing")
		return
	}
	suffix := ""
	if now.Paused {
		suffix = " - PAUSED"
	}
	s.printf("Currently playing: %s (%s) [%s]%s",
		now.Video.Title, now.Video.ID, strings.Join(now.Video.Tags, " "), suffix)
}

func (s *Shell) createPlaylist(name string) {
	if err := s.player.CreatePlaylist(name); err != nil {
		s.printf("Cannot create playlist: A playlist with the same name already exists")
		return
	}
	s.printf("Successfully created new playlist: %s", name)
}

func (s *Shell) addToPlaylist(name, id string) {
	v, err := s.player.AddToPlaylist(name, id)
	if err != nil {
		var flagged *player.FlaggedError
		switch {
		case errors.Is(err, player.ErrPlaylistNotFound):
			s.printf("Cannot add video to %s: Playlist does not exist", name)
		case errors.Is(err, catalog.ErrVideoNotFound):
			s.printf("Cannot add video to %s: Video does not exist", name)
		case errors.As(err, &flagged):
			s.printf("Cannot add video to %s: Video is currently flagged (reason: %s)",
				name, reasonOrDefault(flagged.Reason))
		case errors.Is(err, playlist.ErrDuplicateVideo):
			s.printf("Cannot add video to %s: Video already added", name)
		default:
			s.printf("Cannot add video to %s: %v", name, err)
		}
		return
	}
	s.printf("Added video to %s: %s", name, v.Title)
}

func (s *Shell) removeFromPlaylist(name, id string) {
	v, err := s.player.RemoveFromPlaylist(name, id)
	if err != nil {
		switch {
		case errors.Is(err, player.ErrPlaylistNotFound):
			s.printf("Cannot remove video from %s: Playlist does not exist", name)
		case errors.Is(err, catalog.ErrVideoNotFound):
			s.printf("Cannot remove video from %s: Video does not exist", name)
		case errors.Is(err, playlist.ErrVideoNotInList):
			s.printf("Cannot remove video from %s: Video is not in playlist", name)
		default:
			s.printf("Cannot remove video from %s: %v", name, err)
		}
		return
	}
	s.printf("Removed video from %s: %s", name, v.Title)
}

func (s *Shell) clearPlaylist(name string) {
	if err := s.player.ClearPlaylist(name); err != nil {
		s.printf("Cannot clear playlist %s: Playlist does not exist", name)
		return
	}
	s.printf("Successfully removed all videos from %s", name)
}

func (s *Shell) deletePlaylist(name string) {
	if err := s.player.DeletePlaylist(name); err != nil {
		s.printf("Cannot delete playlist %s: Playlist does not exist", name)
		return
	}
	s.printf("Deleted playlist: %s", name)
}

func (s *Shell) showAllPlaylists() {
	summaries := s.player.Playlists()
	if len(summaries) == 0 {
		s.printf("No playlists exist yet")
		return
	}
	s.printf("Showing all playlists:")
	for _, sum := range summaries {
		plural := "s"
		if sum.Count == 1 {
			plural = ""
		}
		s.printf("  %s (%d video%s)", sum.Name, sum.Count, plural)
	}
}

func (s *Shell) showPlaylist(name string) {
	videos, err := s.player.PlaylistVideos(name)
	if err != nil {
		s.printf("Cannot show playlist %s: Playlist does not exist", name)
		return
	}
	s.printf("Showing playlist: %s", name)
	if len(videos) == 0 {
		s.printf("  No videos here yet")
		return
	}
	for _, v := range videos {
		s.printf("  %s", formatVideo(v))
	}
}

func (s *Shell) search(term string) {
	s.renderSearchResults(term, s.player.Search(term))
}

func (s *Shell) searchByTag(tag string) {
	s.renderSearchResults(tag, s.player.SearchByTag(tag))
}

func (s *Shell) renderSearchResults(query string, matched []video.Video) {
	if len(matched) == 0 {
		s.printf("No search results for %s", query)
		return
	}
	s.printf("Here are the results for %s:", query)
	lines := make([]videoLine, 0, len(matched))
	for i, v := range matched {
		line := videoLine{id: v.ID, text: formatVideo(v)}
		lines = append(lines, line)
		s.printf("  %d) %s", i+1, line.text)
	}
	s.offerToPlay(lines)
}

func (s *Shell) flag(id, reason string) {
	res, err := s.player.Flag(id, reason)
	if err != nil {
		if errors.Is(err, player.ErrAlreadyFlagged) {
			s.printf("Cannot flag video: Video is already flagged")
			return
		}
		s.printf("Cannot flag video: Video does not exist")
		return
	}
	if res.Stopped != nil {
		s.printf("Stopping video: %s", res.Stopped.Title)
	}
	s.printf("Successfully flagged video: %s (reason: %s)",
		res.Video.Title, reasonOrDefault(res.Video.Flag.Reason()))
}

func (s *Shell) allow(id string) {
	v, err := s.player.Allow(id)
	if err != nil {
		if errors.Is(err, player.ErrNotFlagged) {
			s.printf("Cannot remove flag from video: Video is not flagged")
			return
		}
		s.printf("Cannot remove flag from video: Video does not exist")
		return
	}
	s.printf("Successfully removed flag from video: %s", v.Title)
}
