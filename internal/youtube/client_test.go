package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ", true},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"https://www.youtube.com/watch?v=tooshort", "", false},
		{"not a url", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractVideoID(tc.url)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractVideoID(%q) = %q/%v, expected %q/%v", tc.url, got, ok, tc.want, tc.ok)
		}
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, srv.Client())
}

func TestVideoDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("expected api key in query, got %q", r.URL.Query().Get("key"))
		}
		w.Write([]byte(`{"items":[{
			"snippet":{"title":"Test Video","publishedAt":"2024-01-15T10:00:00Z","channelId":"UCcreator"},
			"statistics":{"viewCount":"12345","likeCount":"678","commentCount":"90"}
		}]}`))
	})

	meta, err := c.VideoDetails(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if meta.Title != "Test Video" || meta.ViewCount != 12345 || meta.ChannelID != "UCcreator" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected watch url %q", meta.URL)
	}
}

func TestVideoDetails_NotFoundOnEmptyItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})
	_, err := c.VideoDetails(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestVideoDetails_NotFoundOn404(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404}}`, http.StatusNotFound)
	})
	_, err := c.VideoDetails(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestComments_PagesThroughResults(t *testing.T) {
	page := func(author, text, token string) string {
		next := ""
		if token != "" {
			next = `"nextPageToken":"` + token + `",`
		}
		return `{` + next + `"items":[{"snippet":{
			"totalReplyCount":2,
			"topLevelComment":{"snippet":{
				"authorDisplayName":"` + author + `",
				"authorChannelId":{"value":"UC` + author + `"},
				"textDisplay":"` + text + `",
				"publishedAt":"2024-01-15T10:00:00Z",
				"likeCount":7
			}}
		}}]}`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commentThreads" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		switch r.URL.Query().Get("pageToken") {
		case "":
			w.Write([]byte(page("alice", "first page", "tok2")))
		case "tok2":
			w.Write([]byte(page("bob", "second page", "")))
		default:
			t.Fatalf("unexpected page token %q", r.URL.Query().Get("pageToken"))
		}
	})

	var progress []int
	comments, err := c.Comments(context.Background(), "dQw4w9WgXcQ", CommentOptions{
		PageDelay: time.Millisecond,
		Progress:  func(n int) { progress = append(progress, n) },
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments across pages, got %d", len(comments))
	}
	if comments[0].AuthorName != "alice" || comments[1].AuthorName != "bob" {
		t.Fatalf("unexpected page order: %+v", comments)
	}
	if comments[0].ReplyCount != 2 || comments[0].LikeCount != 7 {
		t.Fatalf("unexpected comment fields: %+v", comments[0])
	}
	if len(progress) != 2 || progress[1] != 2 {
		t.Fatalf("expected progress after each page, got %v", progress)
	}
}

func TestComments_MaxResultsStopsEarly(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"nextPageToken":"more","items":[
			{"snippet":{"totalReplyCount":0,"topLevelComment":{"snippet":{"authorDisplayName":"a","authorChannelId":{"value":"UA"},"textDisplay":"one","publishedAt":"2024-01-01T00:00:00Z","likeCount":0}}}},
			{"snippet":{"totalReplyCount":0,"topLevelComment":{"snippet":{"authorDisplayName":"b","authorChannelId":{"value":"UB"},"textDisplay":"two","publishedAt":"2024-01-01T00:00:00Z","likeCount":0}}}}
		]}`))
	})

	comments, err := c.Comments(context.Background(), "dQw4w9WgXcQ", CommentOptions{
		MaxResults: 2,
		PageDelay:  time.Millisecond,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected exactly 2 comments, got %d", len(comments))
	}
	if calls != 1 {
		t.Fatalf("expected fetch to stop after first page, got %d calls", calls)
	}
}

func TestComments_MarksCreator(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"snippet":{"totalReplyCount":0,"topLevelComment":{"snippet":{"authorDisplayName":"creator","authorChannelId":{"value":"UCcreator"},"textDisplay":"hi","publishedAt":"2024-01-01T00:00:00Z","likeCount":0}}}},
			{"snippet":{"totalReplyCount":0,"topLevelComment":{"snippet":{"authorDisplayName":"fan","authorChannelId":{"value":"UCfan"},"textDisplay":"hello","publishedAt":"2024-01-01T00:00:00Z","likeCount":0}}}}
		]}`))
	})

	comments, err := c.Comments(context.Background(), "dQw4w9WgXcQ", CommentOptions{
		CreatorChannelID: "UCcreator",
		PageDelay:        time.Millisecond,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !comments[0].IsCreator || comments[1].IsCreator {
		t.Fatalf("expected creator marking by channel id, got %+v", comments)
	}
}

func TestComments_ErrorTranslation(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"comments disabled", 403, `{"error":{"errors":[{"reason":"commentsDisabled"}]}}`, ErrCommentsDisabled},
		{"quota exceeded", 403, `{"error":{"errors":[{"reason":"quotaExceeded"}]}}`, ErrQuotaExceeded},
		{"not found", 404, `{"error":{"code":404}}`, ErrVideoNotFound},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		})
		_, err := c.Comments(context.Background(), "dQw4w9WgXcQ", CommentOptions{PageDelay: time.Millisecond})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestComments_GenericAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})
	_, err := c.Comments(context.Background(), "dQw4w9WgXcQ", CommentOptions{PageDelay: time.Millisecond})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", apiErr.Status)
	}
}

func TestComments_ContextCancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cancel()
		w.Write([]byte(`{"nextPageToken":"more","items":[
			{"snippet":{"totalReplyCount":0,"topLevelComment":{"snippet":{"authorDisplayName":"a","authorChannelId":{"value":"UA"},"textDisplay":"one","publishedAt":"2024-01-01T00:00:00Z","likeCount":0}}}}
		]}`))
	})

	comments, err := c.Comments(ctx, "dQw4w9WgXcQ", CommentOptions{PageDelay: time.Hour})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected partial results on cancel, got %d", len(comments))
	}
}
