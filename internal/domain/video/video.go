// Package video provides the Video domain entity.
package video

import "strings"

// FlagStatus represents the moderation state of a video.
// A video is either not flagged, or flagged with an optional reason.
// "Flagged without a reason" and "not flagged" are distinct states.
type FlagStatus struct {
	flagged bool
	reason  string
}

// Unflagged returns the zero flag status.
func Unflagged() FlagStatus {
	return FlagStatus{}
}

// FlaggedWith returns a flagged status carrying the given reason.
// The reason may be empty ("flagged, reason not supplied").
func FlaggedWith(reason string) FlagStatus {
	return FlagStatus{flagged: true, reason: reason}
}

// IsFlagged reports whether the video is flagged.
func (f FlagStatus) IsFlagged() bool {
	return f.flagged
}

// Reason returns the flag reason. Meaningful only when IsFlagged is true.
func (f FlagStatus) Reason() string {
	return f.reason
}

// Video represents a catalog entry.
// ID, Title and Tags never change after load; only Flag mutates.
type Video struct {
	ID    string     // Unique video ID (case-sensitive, opaque)
	Title string     // Display title
	Tags  []string   // Tags in insertion order
	Flag  FlagStatus // Moderation state
}

// HasTag reports whether any of the video's tags contains the given
// text, case-insensitive.
func (v *Video) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if containsFold(t, tag) {
			return true
		}
	}
	return false
}

// MatchesTitle reports whether the title contains the given text,
// case-insensitive.
func (v *Video) MatchesTitle(term string) bool {
	return containsFold(v.Title, term)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(sub))
}
