// Package extract orchestrates a full video run: resolve the URL, fetch
// metadata and comments, apply the configured filters, split spam from kept
// comments and sort both sides.
package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vidsift/vidsift/internal/spamcheck"
	"github.com/vidsift/vidsift/internal/youtube"
)

// ErrInvalidURL is returned when the input is not a recognizable YouTube
// video URL.
var ErrInvalidURL = errors.New("invalid youtube url")

// CommentSource is the slice of the YouTube client the extractor needs.
type CommentSource interface {
	VideoDetails(ctx context.Context, videoID string) (youtube.VideoMetadata, error)
	Comments(ctx context.Context, videoID string, opts youtube.CommentOptions) ([]youtube.Comment, error)
}

// SpamComment is a filtered-out comment annotated with the decision that
// removed it.
type SpamComment struct {
	VideoID        string  `json:"video_id"`
	AuthorName     string  `json:"author_name"`
	Text           string  `json:"text"`
	PublishedAt    string  `json:"published_at"`
	LikeCount      int     `json:"like_count"`
	Score          float64 `json:"spam_score"`
	Reason         string  `json:"spam_reason"`
	Category       string  `json:"spam_category"`
	HadObfuscation bool    `json:"had_obfuscation"`
}

// Result is one processed video.
type Result struct {
	Metadata youtube.VideoMetadata `json:"metadata"`
	Comments []youtube.Comment     `json:"comments"`
	Spam     []SpamComment         `json:"spam_comments"`
}

// Options configures one extraction run.
type Options struct {
	// FilterSpam runs the detector on comments that survive the other
	// filters; flagged ones move to Result.Spam.
	FilterSpam bool
	// MaxComments caps how many comments are fetched; 0 means all.
	MaxComments int
	// PageDelay is the pause between comment pages; 0 uses the client
	// default.
	PageDelay time.Duration
	// MinLikes drops comments with fewer likes.
	MinLikes int
	// ExcludeCreator drops comments written by the video's channel.
	ExcludeCreator bool
	// DateFrom / DateTo bound the publish date (YYYY-MM-DD, inclusive).
	DateFrom string
	DateTo   string
	// Words keeps only comments containing at least one of these words
	// (whole-word, case-insensitive). Empty keeps everything.
	Words []string
	// SortBy orders the kept comments. Spam is always sorted by score
	// descending.
	SortBy SortOption
	// Progress, when set, receives the running fetched-comment count.
	Progress func(fetched int)
}

// Extractor ties a comment source to a configured detector.
type Extractor struct {
	source   CommentSource
	detector *spamcheck.Detector
}

// New creates an extractor. detector may be nil when spam filtering is
// never requested.
func New(source CommentSource, detector *spamcheck.Detector) *Extractor {
	return &Extractor{source: source, detector: detector}
}

// ProcessVideo runs the full pipeline for one video URL.
func (e *Extractor) ProcessVideo(ctx context.Context, videoURL string, opts Options) (*Result, error) {
	if err := ValidateDateRange(opts.DateFrom, opts.DateTo); err != nil {
		return nil, err
	}
	if opts.FilterSpam && e.detector == nil {
		return nil, errors.New("spam filtering requested but no detector configured")
	}

	videoID, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, videoURL)
	}

	metadata, err := e.source.VideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}

	fetched, err := e.source.Comments(ctx, videoID, youtube.CommentOptions{
		CreatorChannelID: metadata.ChannelID,
		MaxResults:       opts.MaxComments,
		PageDelay:        opts.PageDelay,
		Progress:         opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	kept, spam := e.filterComments(fetched, opts)
	metadata.SpamFiltered = len(spam)

	sortComments(kept, opts.SortBy)
	sort.SliceStable(spam, func(i, j int) bool { return spam[i].Score > spam[j].Score })

	return &Result{Metadata: metadata, Comments: kept, Spam: spam}, nil
}

// filterComments applies the orthogonal filters in a fixed order: creator,
// likes, date, words, and spam last so the detector only sees comments that
// already passed the cheap predicates.
func (e *Extractor) filterComments(fetched []youtube.Comment, opts Options) ([]youtube.Comment, []SpamComment) {
	wordMatchers := compileWords(opts.Words)

	kept := make([]youtube.Comment, 0, len(fetched))
	var spam []SpamComment
	for _, c := range fetched {
		if opts.ExcludeCreator && c.IsCreator {
			continue
		}
		if c.LikeCount < opts.MinLikes {
			continue
		}
		if !passesDateRange(c.PublishedAt, opts.DateFrom, opts.DateTo) {
			continue
		}
		if !matchesAnyWord(c.Text, wordMatchers) {
			continue
		}

		if opts.FilterSpam {
			res := e.detector.Analyze(c.Text, c.AuthorName, c.LikeCount)
			if res.IsSpam {
				spam = append(spam, newSpamComment(c, res))
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept, spam
}

func newSpamComment(c youtube.Comment, res spamcheck.Result) SpamComment {
	category := ""
	if primary, ok := res.PrimaryCategory(); ok {
		category = primary.String()
	}
	return SpamComment{
		VideoID:        c.VideoID,
		AuthorName:     c.AuthorName,
		Text:           c.Text,
		PublishedAt:    c.PublishedAt,
		LikeCount:      c.LikeCount,
		Score:          res.Score,
		Reason:         res.Reason(),
		Category:       category,
		HadObfuscation: res.HadObfuscation,
	}
}

func sortComments(comments []youtube.Comment, by SortOption) {
	switch by {
	case SortDateNewest:
		sort.SliceStable(comments, func(i, j int) bool { return comments[i].PublishedAt > comments[j].PublishedAt })
	case SortDateOldest:
		sort.SliceStable(comments, func(i, j int) bool { return comments[i].PublishedAt < comments[j].PublishedAt })
	default:
		sort.SliceStable(comments, func(i, j int) bool { return comments[i].LikeCount > comments[j].LikeCount })
	}
}
