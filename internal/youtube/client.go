// Package youtube is a minimal YouTube Data API v3 client covering the two
// endpoints comment extraction needs: video metadata and top-level comment
// threads. API failures are translated to sentinel errors so callers can
// branch on the condition rather than the HTTP status.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/youtube/v3"
	defaultPageSize = 100
	defaultDelay    = 500 * time.Millisecond

	maxResponseBytes = 8 * 1024 * 1024
)

var (
	// ErrVideoNotFound is returned when the video does not exist or is
	// private.
	ErrVideoNotFound = errors.New("video not found")
	// ErrCommentsDisabled is returned when the uploader turned comments off.
	ErrCommentsDisabled = errors.New("comments are disabled for this video")
	// ErrQuotaExceeded is returned when the daily API quota is used up.
	ErrQuotaExceeded = errors.New("api quota exceeded")
)

// APIError carries an untranslated YouTube API failure.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api error (%d): %s", e.Status, e.Body)
}

// VideoMetadata is the snippet+statistics view of a video.
type VideoMetadata struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	PublishedAt  string `json:"published_at"`
	ViewCount    int    `json:"view_count"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	ChannelID    string `json:"channel_id"`
	URL          string `json:"url"`
	SpamFiltered int    `json:"spam_filtered"`
}

// Comment is one top-level comment thread.
type Comment struct {
	VideoID         string `json:"video_id"`
	AuthorName      string `json:"author_name"`
	AuthorChannelID string `json:"author_channel_id"`
	Text            string `json:"text"`
	PublishedAt     string `json:"published_at"`
	LikeCount       int    `json:"like_count"`
	ReplyCount      int    `json:"reply_count"`
	IsCreator       bool   `json:"is_creator"`
}

// CommentOptions tunes a Comments call. The zero value fetches everything
// with default paging.
type CommentOptions struct {
	// CreatorChannelID marks matching authors as the video creator.
	CreatorChannelID string
	// MaxResults stops after this many comments; 0 means unlimited.
	MaxResults int
	// PageDelay is the pause between page fetches; 0 uses the default.
	PageDelay time.Duration
	// Progress, when set, is called with the running comment count after
	// each page.
	Progress func(fetched int)
}

// Client talks to the YouTube Data API v3.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	http     *http.Client
}

// NewClient creates a client. baseURL overrides the API host for tests;
// empty uses the real one.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		pageSize: defaultPageSize,
		http:     httpClient,
	}
}

type apiVideoResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			ChannelID   string `json:"channelId"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type apiCommentThreadsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TotalReplyCount int `json:"totalReplyCount"`
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					AuthorChannelID   struct {
						Value string `json:"value"`
					} `json:"authorChannelId"`
					TextDisplay string `json:"textDisplay"`
					PublishedAt string `json:"publishedAt"`
					LikeCount   int    `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// VideoDetails fetches snippet and statistics for one video.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (VideoMetadata, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", videoID)

	var decoded apiVideoResponse
	if err := c.get(ctx, "/videos", q, &decoded); err != nil {
		return VideoMetadata{}, fmt.Errorf("fetch video %s: %w", videoID, err)
	}
	if len(decoded.Items) == 0 {
		return VideoMetadata{}, fmt.Errorf("fetch video %s: %w", videoID, ErrVideoNotFound)
	}

	item := decoded.Items[0]
	return VideoMetadata{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		PublishedAt:  item.Snippet.PublishedAt,
		ViewCount:    atoi(item.Statistics.ViewCount),
		LikeCount:    atoi(item.Statistics.LikeCount),
		CommentCount: atoi(item.Statistics.CommentCount),
		ChannelID:    item.Snippet.ChannelID,
		URL:          WatchURL(videoID),
	}, nil
}

// Comments walks the commentThreads pages for a video and returns the
// top-level comments in API relevance order. ctx is checked between pages,
// so a long crawl can be cancelled.
func (c *Client) Comments(ctx context.Context, videoID string, opts CommentOptions) ([]Comment, error) {
	delay := opts.PageDelay
	if delay == 0 {
		delay = defaultDelay
	}

	var comments []Comment
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("part", "snippet")
		q.Set("videoId", videoID)
		q.Set("maxResults", strconv.Itoa(c.pageSize))
		q.Set("textFormat", "plainText")
		q.Set("order", "relevance")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var decoded apiCommentThreadsResponse
		if err := c.get(ctx, "/commentThreads", q, &decoded); err != nil {
			return comments, fmt.Errorf("fetch comments for %s: %w", videoID, err)
		}

		for _, item := range decoded.Items {
			s := item.Snippet.TopLevelComment.Snippet
			comments = append(comments, Comment{
				VideoID:         videoID,
				AuthorName:      s.AuthorDisplayName,
				AuthorChannelID: s.AuthorChannelID.Value,
				Text:            s.TextDisplay,
				PublishedAt:     s.PublishedAt,
				LikeCount:       s.LikeCount,
				ReplyCount:      item.Snippet.TotalReplyCount,
				IsCreator:       opts.CreatorChannelID != "" && s.AuthorChannelID.Value == opts.CreatorChannelID,
			})
			if opts.MaxResults > 0 && len(comments) >= opts.MaxResults {
				if opts.Progress != nil {
					opts.Progress(len(comments))
				}
				return comments, nil
			}
		}

		if opts.Progress != nil {
			opts.Progress(len(comments))
		}

		pageToken = decoded.NextPageToken
		if pageToken == "" {
			return comments, nil
		}

		// Pause between pages to stay friendly to the quota.
		select {
		case <-ctx.Done():
			return comments, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call youtube api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return translateError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// translateError maps API failures onto sentinel errors by status code and
// error reason, mirroring the reason strings the Data API actually sends.
func translateError(status int, body []byte) error {
	content := string(body)
	switch status {
	case http.StatusForbidden:
		lower := strings.ToLower(content)
		if strings.Contains(content, "commentsDisabled") || strings.Contains(lower, "disabled comments") {
			return ErrCommentsDisabled
		}
		if strings.Contains(lower, "quotaexceeded") {
			return ErrQuotaExceeded
		}
		return &APIError{Status: status, Body: truncate(content, 200)}
	case http.StatusNotFound:
		return ErrVideoNotFound
	default:
		return &APIError{Status: status, Body: truncate(content, 200)}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Statistics fields arrive as decimal strings; absent values become 0.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
