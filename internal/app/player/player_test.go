package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidbox/vidbox/internal/app/catalog"
	"github.com/vidbox/vidbox/internal/domain/playlist"
	"github.com/vidbox/vidbox/internal/domain/video"
)

// pickFirst always selects the first candidate.
func pickFirst(n int) int { return 0 }

func newTestPlayer(t *testing.T, videos []video.Video) *Player {
	t.Helper()
	cat, err := catalog.New(videos)
	require.NoError(t, err)
	return New(cat, pickFirst)
}

func demoVideos() []video.Video {
	return []video.Video{
		{ID: "amy_id", Title: "Amy", Tags: []string{"fun"}},
		{ID: "bob_id", Title: "Bob", Tags: []string{"fun", "sad"}},
		{ID: "cat_id", Title: "Cat Compilation", Tags: []string{"cat"}},
	}
}

func TestPlayer_Play(t *testing.T) {
	t.Run("starts playback", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		res, err := p.Play("amy_id")
		require.NoError(t, err)
		assert.Nil(t, res.Stopped)
		assert.Equal(t, "Amy", res.Started.Title)
		assert.Equal(t, StatePlaying, p.State())
	})

	t.Run("unknown video", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		_, err := p.Play("missing_id")
		assert.ErrorIs(t, err, catalog.ErrVideoNotFound)
		assert.Equal(t, StateStopped, p.State())
	})

	t.Run("flagged video carries the reason", func(t *testing.T) {
		p := newTestPlayer(t, []video.Video{
			{ID: "bob_id", Title: "Bob", Flag: video.FlaggedWith("spoiler")},
		})

		_, err := p.Play("bob_id")
		var flagged *FlaggedError
		require.ErrorAs(t, err, &flagged)
		assert.Equal(t, "bob_id", flagged.ID)
		assert.Equal(t, "spoiler", flagged.Reason)
	})

	t.Run("playing another video stops the current one", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		_, err := p.Play("amy_id")
		require.NoError(t, err)

		res, err := p.Play("bob_id")
		require.NoError(t, err)
		require.NotNil(t, res.Stopped)
		assert.Equal(t, "Amy", res.Stopped.Title)
		assert.Equal(t, "Bob", res.Started.Title)

		now, ok := p.NowPlaying()
		require.True(t, ok)
		assert.Equal(t, "bob_id", now.Video.ID)
	})

	t.Run("replaying the same video restarts it unpaused", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		_, err := p.Play("amy_id")
		require.NoError(t, err)
		_, err = p.Pause()
		require.NoError(t, err)

		_, err = p.Play("amy_id")
		require.NoError(t, err)

		now, ok := p.NowPlaying()
		require.True(t, ok)
		assert.False(t, now.Paused)
	})
}

func TestPlayer_Stop(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	_, err := p.Play("amy_id")
	require.NoError(t, err)

	stopped, err := p.Stop()
	require.NoError(t, err)
	assert.Equal(t, "Amy", stopped.Title)
	assert.Equal(t, StateStopped, p.State())

	_, err = p.Stop()
	assert.ErrorIs(t, err, ErrNothingPlaying)
}

func TestPlayer_PlayRandom(t *testing.T) {
	t.Run("uses the injected picker", func(t *testing.T) {
		cat, err := catalog.New(demoVideos())
		require.NoError(t, err)
		p := New(cat, func(n int) int { return n - 1 })

		res, err := p.PlayRandom()
		require.NoError(t, err)
		assert.Equal(t, "cat_id", res.Started.ID)
	})

	t.Run("skips flagged videos", func(t *testing.T) {
		videos := demoVideos()
		videos[0].Flag = video.FlaggedWith("x")
		p := newTestPlayer(t, videos)

		res, err := p.PlayRandom()
		require.NoError(t, err)
		assert.Equal(t, "bob_id", res.Started.ID)
	})

	t.Run("empty catalog", func(t *testing.T) {
		p := newTestPlayer(t, nil)

		_, err := p.PlayRandom()
		assert.ErrorIs(t, err, ErrNoVideosAvailable)
	})

	t.Run("all videos flagged", func(t *testing.T) {
		p := newTestPlayer(t, []video.Video{
			{ID: "v1", Title: "V1", Flag: video.FlaggedWith("")},
		})

		_, err := p.PlayRandom()
		assert.ErrorIs(t, err, ErrNoVideosAvailable)
	})
}

func TestPlayer_PauseResume(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	t.Run("pause with nothing playing", func(t *testing.T) {
		_, err := p.Pause()
		assert.ErrorIs(t, err, ErrNothingPlaying)
	})

	t.Run("resume with nothing playing", func(t *testing.T) {
		_, err := p.Resume()
		assert.ErrorIs(t, err, ErrNothingPlaying)
	})

	_, err := p.Play("amy_id")
	require.NoError(t, err)

	t.Run("resume while not paused", func(t *testing.T) {
		_, err := p.Resume()
		assert.ErrorIs(t, err, ErrNotPaused)
	})

	t.Run("pause then pause again", func(t *testing.T) {
		v, err := p.Pause()
		require.NoError(t, err)
		assert.Equal(t, "Amy", v.Title)
		assert.Equal(t, StatePaused, p.State())

		_, err = p.Pause()
		assert.ErrorIs(t, err, ErrAlreadyPaused)
	})

	t.Run("resume returns to playing", func(t *testing.T) {
		v, err := p.Resume()
		require.NoError(t, err)
		assert.Equal(t, "Amy", v.Title)
		assert.Equal(t, StatePlaying, p.State())
	})

	t.Run("stop from paused", func(t *testing.T) {
		_, err := p.Pause()
		require.NoError(t, err)
		_, err = p.Stop()
		require.NoError(t, err)
		assert.Equal(t, StateStopped, p.State())
	})
}

func TestPlayer_NowPlaying(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	_, ok := p.NowPlaying()
	assert.False(t, ok)

	_, err := p.Play("amy_id")
	require.NoError(t, err)

	now, ok := p.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "amy_id", now.Video.ID)
	assert.False(t, now.Paused)

	_, err = p.Pause()
	require.NoError(t, err)

	now, ok = p.NowPlaying()
	require.True(t, ok)
	assert.True(t, now.Paused)
}

func TestPlayer_CreatePlaylist(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	require.NoError(t, p.CreatePlaylist("Movies"))

	// Identity is case-insensitive.
	assert.ErrorIs(t, p.CreatePlaylist("movies"), ErrPlaylistExists)
	assert.ErrorIs(t, p.CreatePlaylist("MOVIES"), ErrPlaylistExists)

	summaries := p.Playlists()
	require.Len(t, summaries, 1)
	assert.Equal(t, "Movies", summaries[0].Name)
	assert.Equal(t, 0, summaries[0].Count)
}

func TestPlayer_AddToPlaylist(t *testing.T) {
	p := newTestPlayer(t, demoVideos())
	require.NoError(t, p.CreatePlaylist("Movies"))

	t.Run("playlist existence is checked first", func(t *testing.T) {
		_, err := p.AddToPlaylist("missing", "missing_id")
		assert.ErrorIs(t, err, ErrPlaylistNotFound)
	})

	t.Run("unknown video", func(t *testing.T) {
		_, err := p.AddToPlaylist("Movies", "missing_id")
		assert.ErrorIs(t, err, catalog.ErrVideoNotFound)
	})

	t.Run("add through a differently cased name", func(t *testing.T) {
		v, err := p.AddToPlaylist("MOVIES", "amy_id")
		require.NoError(t, err)
		assert.Equal(t, "Amy", v.Title)

		videos, err := p.PlaylistVideos("movies")
		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, "amy_id", videos[0].ID)
	})

	t.Run("duplicate add", func(t *testing.T) {
		_, err := p.AddToPlaylist("Movies", "amy_id")
		assert.ErrorIs(t, err, playlist.ErrDuplicateVideo)
	})

	t.Run("flagged video is rejected", func(t *testing.T) {
		_, err := p.Flag("bob_id", "spoiler")
		require.NoError(t, err)

		_, err = p.AddToPlaylist("Movies", "bob_id")
		var flagged *FlaggedError
		require.ErrorAs(t, err, &flagged)
		assert.Equal(t, "spoiler", flagged.Reason)
	})
}

func TestPlayer_RemoveFromPlaylist(t *testing.T) {
	p := newTestPlayer(t, demoVideos())
	require.NoError(t, p.CreatePlaylist("Movies"))

	_, err := p.AddToPlaylist("Movies", "amy_id")
	require.NoError(t, err)

	t.Run("video not in playlist", func(t *testing.T) {
		_, err := p.RemoveFromPlaylist("Movies", "bob_id")
		assert.ErrorIs(t, err, playlist.ErrVideoNotInList)
	})

	t.Run("unknown video", func(t *testing.T) {
		_, err := p.RemoveFromPlaylist("Movies", "missing_id")
		assert.ErrorIs(t, err, catalog.ErrVideoNotFound)
	})

	t.Run("unknown playlist", func(t *testing.T) {
		_, err := p.RemoveFromPlaylist("missing", "amy_id")
		assert.ErrorIs(t, err, ErrPlaylistNotFound)
	})

	t.Run("add then remove restores the playlist", func(t *testing.T) {
		before, err := p.PlaylistVideos("Movies")
		require.NoError(t, err)

		_, err = p.AddToPlaylist("Movies", "cat_id")
		require.NoError(t, err)
		_, err = p.RemoveFromPlaylist("Movies", "cat_id")
		require.NoError(t, err)

		after, err := p.PlaylistVideos("Movies")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestPlayer_ClearAndDeletePlaylist(t *testing.T) {
	p := newTestPlayer(t, demoVideos())
	require.NoError(t, p.CreatePlaylist("Movies"))
	_, err := p.AddToPlaylist("Movies", "amy_id")
	require.NoError(t, err)

	t.Run("clear empties but keeps the playlist", func(t *testing.T) {
		require.NoError(t, p.ClearPlaylist("movies"))

		videos, err := p.PlaylistVideos("Movies")
		require.NoError(t, err)
		assert.Empty(t, videos)
	})

	t.Run("clear unknown playlist", func(t *testing.T) {
		assert.ErrorIs(t, p.ClearPlaylist("missing"), ErrPlaylistNotFound)
	})

	t.Run("delete unregisters", func(t *testing.T) {
		require.NoError(t, p.DeletePlaylist("MOVIES"))

		_, err := p.PlaylistVideos("Movies")
		assert.ErrorIs(t, err, ErrPlaylistNotFound)

		// The name is free again.
		assert.NoError(t, p.CreatePlaylist("Movies"))
	})

	t.Run("delete unknown playlist", func(t *testing.T) {
		assert.ErrorIs(t, p.DeletePlaylist("missing"), ErrPlaylistNotFound)
	})
}

func TestPlayer_Playlists_SortedByDisplayName(t *testing.T) {
	p := newTestPlayer(t, demoVideos())
	require.NoError(t, p.CreatePlaylist("zebra"))
	require.NoError(t, p.CreatePlaylist("Alpha"))
	require.NoError(t, p.CreatePlaylist("Middle"))

	_, err := p.AddToPlaylist("alpha", "amy_id")
	require.NoError(t, err)

	summaries := p.Playlists()
	require.Len(t, summaries, 3)
	assert.Equal(t, "Alpha", summaries[0].Name)
	assert.Equal(t, 1, summaries[0].Count)
	assert.Equal(t, "Middle", summaries[1].Name)
	assert.Equal(t, "zebra", summaries[2].Name)
}

func TestPlayer_PlaylistVideos_KeepsFlaggedVisible(t *testing.T) {
	p := newTestPlayer(t, demoVideos())
	require.NoError(t, p.CreatePlaylist("Movies"))
	_, err := p.AddToPlaylist("Movies", "amy_id")
	require.NoError(t, err)

	// Flagging after the fact does not remove the video from the playlist.
	_, err = p.Flag("amy_id", "late")
	require.NoError(t, err)

	videos, err := p.PlaylistVideos("Movies")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.True(t, videos[0].Flag.IsFlagged())
	assert.Equal(t, "late", videos[0].Flag.Reason())
}

func TestPlayer_Search(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	t.Run("case-insensitive substring", func(t *testing.T) {
		results := p.Search("a")
		require.Len(t, results, 2)
		assert.Equal(t, "amy_id", results[0].ID)
		assert.Equal(t, "cat_id", results[1].ID)
	})

	t.Run("flagged videos are excluded", func(t *testing.T) {
		_, err := p.Flag("cat_id", "")
		require.NoError(t, err)

		results := p.Search("cat")
		assert.Empty(t, results)
	})

	t.Run("no matches is an empty result, not an error", func(t *testing.T) {
		assert.Empty(t, p.Search("xyzzy"))
	})
}

func TestPlayer_SearchByTag(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	t.Run("matches tag text", func(t *testing.T) {
		results := p.SearchByTag("FUN")
		require.Len(t, results, 2)
		assert.Equal(t, "amy_id", results[0].ID)
		assert.Equal(t, "bob_id", results[1].ID)
	})

	t.Run("flagged videos are excluded", func(t *testing.T) {
		_, err := p.Flag("bob_id", "spoiler")
		require.NoError(t, err)

		results := p.SearchByTag("fun")
		require.Len(t, results, 1)
		assert.Equal(t, "amy_id", results[0].ID)
	})

	t.Run("unknown tag", func(t *testing.T) {
		assert.Empty(t, p.SearchByTag("nosuchtag"))
	})
}

func TestPlayer_Flag(t *testing.T) {
	t.Run("flagging stores the reason", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		res, err := p.Flag("amy_id", "dont_like")
		require.NoError(t, err)
		assert.Nil(t, res.Stopped)
		assert.True(t, res.Video.Flag.IsFlagged())
		assert.Equal(t, "dont_like", res.Video.Flag.Reason())
	})

	t.Run("flagging twice fails and leaves state unchanged", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		_, err := p.Flag("amy_id", "first")
		require.NoError(t, err)

		_, err = p.Flag("amy_id", "second")
		assert.ErrorIs(t, err, ErrAlreadyFlagged)

		// The first reason survives.
		_, err = p.Play("amy_id")
		var flagged *FlaggedError
		require.ErrorAs(t, err, &flagged)
		assert.Equal(t, "first", flagged.Reason)
	})

	t.Run("flagging the playing video stops it", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())
		_, err := p.Play("amy_id")
		require.NoError(t, err)

		res, err := p.Flag("amy_id", "live_issue")
		require.NoError(t, err)
		require.NotNil(t, res.Stopped)
		assert.Equal(t, "Amy", res.Stopped.Title)

		assert.Equal(t, StateStopped, p.State())
		_, ok := p.NowPlaying()
		assert.False(t, ok)
	})

	t.Run("flagging a paused video stops it too", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())
		_, err := p.Play("amy_id")
		require.NoError(t, err)
		_, err = p.Pause()
		require.NoError(t, err)

		res, err := p.Flag("amy_id", "")
		require.NoError(t, err)
		assert.NotNil(t, res.Stopped)
		assert.Equal(t, StateStopped, p.State())
	})

	t.Run("flagging another video leaves playback alone", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())
		_, err := p.Play("amy_id")
		require.NoError(t, err)

		res, err := p.Flag("bob_id", "x")
		require.NoError(t, err)
		assert.Nil(t, res.Stopped)
		assert.Equal(t, StatePlaying, p.State())
	})

	t.Run("unknown video", func(t *testing.T) {
		p := newTestPlayer(t, demoVideos())

		_, err := p.Flag("missing_id", "x")
		assert.ErrorIs(t, err, catalog.ErrVideoNotFound)
	})
}

func TestPlayer_Allow(t *testing.T) {
	p := newTestPlayer(t, demoVideos())

	t.Run("not flagged", func(t *testing.T) {
		_, err := p.Allow("amy_id")
		assert.ErrorIs(t, err, ErrNotFlagged)
	})

	t.Run("unknown video", func(t *testing.T) {
		_, err := p.Allow("missing_id")
		assert.ErrorIs(t, err, catalog.ErrVideoNotFound)
	})

	t.Run("clears the flag", func(t *testing.T) {
		_, err := p.Flag("amy_id", "temporary")
		require.NoError(t, err)

		v, err := p.Allow("amy_id")
		require.NoError(t, err)
		assert.False(t, v.Flag.IsFlagged())

		// The video is playable again.
		_, err = p.Play("amy_id")
		assert.NoError(t, err)
	})
}

func TestPlayer_AllVideos_SortedByTitle(t *testing.T) {
	p := newTestPlayer(t, []video.Video{
		{ID: "z", Title: "Zulu"},
		{ID: "a", Title: "Alpha"},
		{ID: "m", Title: "Mike"},
	})

	videos := p.AllVideos()
	require.Len(t, videos, 3)
	assert.Equal(t, "Alpha", videos[0].Title)
	assert.Equal(t, "Mike", videos[1].Title)
	assert.Equal(t, "Zulu", videos[2].Title)
}

func TestPlayer_NumberOfVideos(t *testing.T) {
	p := newTestPlayer(t, demoVideos())
	assert.Equal(t, 3, p.NumberOfVideos())
}

func TestPlayer_Scenario(t *testing.T) {
	// Full walk through the playback state machine with a flagged video
	// in the catalog.
	p := newTestPlayer(t, []video.Video{
		{ID: "v1", Title: "Amy", Tags: []string{"fun"}},
		{ID: "v2", Title: "Bob", Tags: []string{"fun", "sad"}, Flag: video.FlaggedWith("spoiler")},
	})

	results := p.Search("a")
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0].ID)

	results = p.SearchByTag("fun")
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0].ID)

	_, err := p.Play("v2")
	var flagged *FlaggedError
	require.ErrorAs(t, err, &flagged)
	assert.Equal(t, "spoiler", flagged.Reason)

	_, err = p.Play("v1")
	require.NoError(t, err)
	now, ok := p.NowPlaying()
	require.True(t, ok)
	assert.Equal(t, "v1", now.Video.ID)
	assert.False(t, now.Paused)

	_, err = p.Pause()
	require.NoError(t, err)
	assert.Equal(t, StatePaused, p.State())

	_, err = p.Pause()
	assert.ErrorIs(t, err, ErrAlreadyPaused)

	_, err = p.Resume()
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, p.State())

	_, err = p.Stop()
	require.NoError(t, err)
	assert.Equal(t, StateStopped, p.State())

	_, err = p.Stop()
	assert.ErrorIs(t, err, ErrNothingPlaying)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "unknown", State(99).String())
}
