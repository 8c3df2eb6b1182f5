package youtube

import (
	"regexp"
	"strings"
)

// A video ID is always 11 characters of [A-Za-z0-9_-].
const videoIDPattern = `[a-zA-Z0-9_-]{11}`

// Supported URL shapes, checked in order. Scheme and www. are optional.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=(` + videoIDPattern + `)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/v/(` + videoIDPattern + `)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/(` + videoIDPattern + `)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/(` + videoIDPattern + `)`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/(` + videoIDPattern + `)`),
}

// ExtractVideoID pulls the 11-character video ID out of any supported
// YouTube URL shape. The second return is false when the URL is not a
// recognizable video link.
func ExtractVideoID(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}
	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
