// Package export turns the current collection and its statistics into
// downloadable payloads. Every function is a pure projection to a byte
// slice; writing the result anywhere is the caller's business.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"redlytics/pkg/snoo"
)

var csvHeader = []string{
	"id", "title", "author", "subreddit", "score", "num_comments",
	"created_utc", "upvote_ratio", "url",
	"sentiment_compound", "sentiment_pos", "sentiment_neu", "sentiment_neg",
}

// CSV flattens posts into an RFC 4180 table. encoding/csv quotes values
// containing commas, quotes or newlines.
func CSV(posts []snoo.Post) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, p := range posts {
		record := []string{
			p.ID,
			p.Title,
			p.Author,
			p.Subreddit,
			strconv.Itoa(p.Score),
			strconv.Itoa(p.NumComments),
			strconv.FormatInt(p.CreatedUTC, 10),
			strconv.FormatFloat(p.UpvoteRatio, 'f', -1, 64),
			p.URL,
			strconv.FormatFloat(p.SentimentCompound, 'f', -1, 64),
			strconv.FormatFloat(p.SentimentPos, 'f', -1, 64),
			strconv.FormatFloat(p.SentimentNeu, 'f', -1, 64),
			strconv.FormatFloat(p.SentimentNeg, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
