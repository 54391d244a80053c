// Package query turns view state into a request descriptor for the
// sentiment API. Building is deterministic and never fails: parameters that
// cannot be expressed (bad dates, empty fields) are dropped, not raised.
package query

import (
	"net/url"
	"strconv"
	"time"

	"redlytics/internal/view"
)

const (
	EndpointPosts  = "/posts"
	EndpointSearch = "/search"

	dateLayout = "2006-01-02"

	// End dates are inclusive of their whole calendar day.
	daySeconds = 86400
)

// Descriptor is an endpoint choice plus its query parameters. Live marks
// result sets that cannot be re-queried in a stable order and therefore get
// re-sorted in memory downstream.
type Descriptor struct {
	Endpoint string
	Params   url.Values
	Live     bool
}

// Build maps the current view state and the requested page to a Descriptor.
// The live endpoint is used only when a search term is present and the
// search method is explicitly live; a term with method=database degrades to
// a substring filter on the listing endpoint.
func Build(s view.State, page int) Descriptor {
	if s.Live() {
		return buildLive(s)
	}
	return buildListing(s, page)
}

func buildLive(s view.State) Descriptor {
	p := url.Values{}
	p.Set("q", s.Filters.SearchTerm)
	p.Set("sort", string(s.Search.SortMethod))
	p.Set("time_filter", string(s.Search.TimeFilter))
	setIf(p, "subreddit", s.Filters.Subreddit)
	if s.Search.IncludeComments {
		p.Set("include_comments", "true")
	}

	return Descriptor{Endpoint: EndpointSearch, Params: p, Live: true}
}

func buildListing(s view.State, page int) Descriptor {
	f := s.Filters
	p := url.Values{}

	setIf(p, "min_score", f.MinScore)
	setIf(p, "max_score", f.MaxScore)
	setIf(p, "min_comments", f.MinComments)
	setIf(p, "max_comments", f.MaxComments)
	setIf(p, "sentiment", f.Sentiment)
	setIf(p, "subreddit", f.Subreddit)
	setIf(p, "search", f.SearchTerm)

	if ts, ok := dayStart(f.StartDate); ok {
		p.Set("start_date", strconv.FormatInt(ts, 10))
	}
	if ts, ok := dayStart(f.EndDate); ok {
		p.Set("end_date", strconv.FormatInt(ts+daySeconds, 10))
	}

	p.Set("sort_by", string(s.Sort.Key))
	p.Set("order", string(s.Sort.Direction))

	p.Set("limit", strconv.Itoa(s.PageSize))
	if page > 1 {
		p.Set("offset", strconv.Itoa((page-1)*s.PageSize))
	}

	return Descriptor{Endpoint: EndpointPosts, Params: p}
}

// dayStart resolves a calendar date to midnight UTC. Unparsable input means
// "no bound".
func dayStart(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

func setIf(p url.Values, key, value string) {
	if value != "" {
		p.Set(key, value)
	}
}
