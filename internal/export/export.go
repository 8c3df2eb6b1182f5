// Package export writes extraction results to CSV or JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/vidsift/vidsift/internal/extract"
)

// Spreadsheet apps only detect UTF-8 when the file starts with a BOM.
const utf8BOM = "\uFEFF"

// WriteCSV writes <base>_metadata.csv, <base>_comments.csv and, when any
// spam was flagged, <base>_spam.csv. It returns the paths written.
func WriteCSV(base string, results []*extract.Result) ([]string, error) {
	var written []string

	metaRows := [][]string{{
		"Video ID", "Video Title", "Video Date", "Video Views",
		"Video Likes", "Video Comment Count", "Video URL", "Spam Filtered",
	}}
	commentRows := [][]string{{
		"Video ID", "Author Name", "Comment Text", "Comment Date",
		"Comment Likes", "Replies", "Is Creator",
	}}
	spamRows := [][]string{{
		"Video ID", "Author Name", "Comment Text", "Comment Date",
		"Comment Likes", "Spam Score", "Spam Reason", "Spam Category",
		"Had Obfuscation",
	}}

	hasSpam := false
	for _, res := range results {
		m := res.Metadata
		metaRows = append(metaRows, []string{
			m.VideoID, m.Title, m.PublishedAt,
			strconv.Itoa(m.ViewCount), strconv.Itoa(m.LikeCount),
			strconv.Itoa(m.CommentCount), m.URL, strconv.Itoa(m.SpamFiltered),
		})
		for _, c := range res.Comments {
			commentRows = append(commentRows, []string{
				c.VideoID, c.AuthorName, c.Text, c.PublishedAt,
				strconv.Itoa(c.LikeCount), strconv.Itoa(c.ReplyCount),
				strconv.FormatBool(c.IsCreator),
			})
		}
		for _, s := range res.Spam {
			hasSpam = true
			spamRows = append(spamRows, []string{
				s.VideoID, s.AuthorName, s.Text, s.PublishedAt,
				strconv.Itoa(s.LikeCount),
				strconv.FormatFloat(s.Score, 'f', 3, 64),
				s.Reason, s.Category,
				strconv.FormatBool(s.HadObfuscation),
			})
		}
	}

	files := []struct {
		path string
		rows [][]string
		skip bool
	}{
		{base + "_metadata.csv", metaRows, false},
		{base + "_comments.csv", commentRows, false},
		{base + "_spam.csv", spamRows, !hasSpam},
	}
	for _, f := range files {
		if f.skip {
			continue
		}
		if err := writeCSVFile(f.path, f.rows); err != nil {
			return written, err
		}
		written = append(written, f.path)
	}
	return written, nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.WriteString(utf8BOM); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteJSON writes the full extraction results as one pretty-printed JSON
// document.
func WriteJSON(path string, results []*extract.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
