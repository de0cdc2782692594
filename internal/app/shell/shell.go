// Package shell provides the interactive command shell.
//
// The shell owns all user-facing text: it parses command lines, invokes
// player operations and renders their typed results. The player itself
// never prints.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/vidbox/vidbox/internal/app/player"
)

// Shell reads commands from an input stream and renders results to an
// output stream. One command runs to completion before the next is read.
type Shell struct {
	id      string // session UUID, for log correlation
	player  *player.Player
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a shell bound to a player.
func New(p *player.Player, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		id:      uuid.NewString(),
		player:  p,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// SessionID returns the shell's session identifier.
func (s *Shell) SessionID() string {
	return s.id
}

// Run executes the read-eval-print loop until EXIT or EOF.
func (s *Shell) Run() error {
	zlog.Info().Msgf("shell: session started: id=%s", s.id)
	s.printf("Hello! What would you like to do? Type HELP for a list of commands.")

	for {
		fmt.Fprint(s.out, "> ")
		if !s.scanner.Scan() {
			break
		}
		if !s.Execute(s.scanner.Text()) {
			break
		}
	}

	zlog.Info().Msgf("shell: session ended: id=%s", s.id)
	return s.scanner.Err()
}

// Execute runs a single command line. Returns false when the shell
// should terminate.
func (s *Shell) Execute(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return true
	}
	cmd := strings.ToUpper(tokens[0])
	args := tokens[1:]

	zlog.Debug().Msgf("shell: command: session=%s cmd=%s args=%d", s.id, cmd, len(args))

	switch cmd {
	case "EXIT":
		s.printf("Goodbye!")
		return false
	case "HELP":
		s.printHelp()
	case "NUMBER_OF_VIDEOS":
		s.printf("%d videos in the library", s.player.NumberOfVideos())
	case "SHOW_ALL_VIDEOS":
		s.showAllVideos()
	case "PLAY":
		if s.requireArgs(cmd, args, 1) {
			s.play(args[0])
		}
	case "PLAY_RANDOM":
		s.playRandom()
	case "STOP":
		s.stop()
	case "PAUSE":
		s.pause()
	case "CONTINUE":
		s.resume()
	case "SHOW_PLAYING":
		s.showPlaying()
	case "CREATE_PLAYLIST":
		if s.requireArgs(cmd, args, 1) {
			s.createPlaylist(args[0])
		}
	case "ADD_TO_PLAYLIST":
		if s.requireArgs(cmd, args, 2) {
			s.addToPlaylist(args[0], args[1])
		}
	case "REMOVE_FROM_PLAYLIST":
		if s.requireArgs(cmd, args, 2) {
			s.removeFromPlaylist(args[0], args[1])
		}
	case "CLEAR_PLAYLIST":
		if s.requireArgs(cmd, args, 1) {
			s.clearPlaylist(args[0])
		}
	case "DELETE_PLAYLIST":
		if s.requireArgs(cmd, args, 1) {
			s.deletePlaylist(args[0])
		}
	case "SHOW_ALL_PLAYLISTS":
		s.showAllPlaylists()
	case "SHOW_PLAYLIST":
		if s.requireArgs(cmd, args, 1) {
			s.showPlaylist(args[0])
		}
	case "SEARCH_VIDEOS":
		if s.requireArgs(cmd, args, 1) {
			s.search(args[0])
		}
	case "SEARCH_VIDEOS_WITH_TAG":
		if s.requireArgs(cmd, args, 1) {
			s.searchByTag(args[0])
		}
	case "FLAG_VIDEO":
		if s.requireArgs(cmd, args, 1) {
			// Everything after the id is the reason.
			s.flag(args[0], strings.Join(args[1:], " "))
		}
	case "ALLOW_VIDEO":
		if s.requireArgs(cmd, args, 1) {
			s.allow(args[0])
		}
	default:
		s.printf("Please enter a valid command, type HELP for a list of available commands.")
	}
	return true
}

func (s *Shell) requireArgs(cmd string, args []string, n int) bool {
	if len(args) < n {
		s.printf("Please enter %s command followed by %d argument(s).", cmd, n)
		return false
	}
	return true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Shell) printHelp() {
	s.printf("Available commands:")
	for _, line := range helpLines {
		s.printf("  %s", line)
	}
}

var helpLines = []string{
	"NUMBER_OF_VIDEOS - Shows how many videos are in the library.",
	"SHOW_ALL_VIDEOS - Lists all videos from the library.",
	"PLAY <video_id> - Plays the specified video.",
	"PLAY_RANDOM - Plays a random video from the library.",
	"STOP - Stops the current video.",
	"PAUSE - Pauses the current video.",
	"CONTINUE - Resumes the current paused video.",
	"SHOW_PLAYING - Shows the video that is currently playing.",
	"CREATE_PLAYLIST <playlist_name> - Creates a new (empty) playlist.",
	"ADD_TO_PLAYLIST <playlist_name> <video_id> - Adds the video to the playlist.",
	"REMOVE_FROM_PLAYLIST <playlist_name> <video_id> - Removes the video from the playlist.",
	"CLEAR_PLAYLIST <playlist_name> - Removes all videos from the playlist.",
	"DELETE_PLAYLIST <playlist_name> - Deletes the playlist.",
	"SHOW_ALL_PLAYLISTS - Shows all the available playlists.",
	"SHOW_PLAYLIST <playlist_name> - Shows all the videos in the playlist.",
	"SEARCH_VIDEOS <search_term> - Searches videos by title.",
	"SEARCH_VIDEOS_WITH_TAG <tag> - Searches videos by tag.",
	"FLAG_VIDEO <video_id> [reason] - Flags a video (with an optional reason).",
	"ALLOW_VIDEO <video_id> - Removes the flag from a video.",
	"HELP - Displays this help.",
	"EXIT - Terminates the program.",
}

// nextLine reads one more input line, for interactive follow-ups.
func (s *Shell) nextLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// offerToPlay asks whether one of the listed videos should be played.
// Any input that is not a valid result number is treated as a no.
func (s *Shell) offerToPlay(results []videoLine) {
	s.printf("Would you like to play any of the above? If yes, specify the number of the video.")
	s.printf("If your answer is not a valid number, we will assume it's a no.")

	line, ok := s.nextLine()
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(results) {
		return
	}
	s.play(results[n-1].id)
}
