// Package view holds the user's current query intent: filters, search
// options, sort order and pagination. The whole thing is one versioned value
// mutated only through reducers, so every consumer sees a consistent
// snapshot and stale async results can be told apart by version.
package view

import (
	"strconv"
)

type SearchMethod string

const (
	SearchDatabase SearchMethod = "database"
	SearchLive     SearchMethod = "live"
)

type SortMethod string

const (
	SortRelevance SortMethod = "relevance"
	SortHot       SortMethod = "hot"
	SortNew       SortMethod = "new"
	SortTop       SortMethod = "top"
)

type TimeFilter string

const (
	TimeHour  TimeFilter = "hour"
	TimeDay   TimeFilter = "day"
	TimeWeek  TimeFilter = "week"
	TimeMonth TimeFilter = "month"
	TimeYear  TimeFilter = "year"
	TimeAll   TimeFilter = "all"
)

type SortKey string

const (
	KeyCreated   SortKey = "created_utc"
	KeyScore     SortKey = "score"
	KeyComments  SortKey = "num_comments"
	KeySentiment SortKey = "sentiment_compound"
	KeyTitle     SortKey = "title"
	KeySubreddit SortKey = "subreddit"
	KeyAuthor    SortKey = "author"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FilterState mirrors the filter panel. Every field is optional; the empty
// string means "no bound". Numeric fields are validated when set, never at
// query-build time.
type FilterState struct {
	MinScore    string `json:"minScore,omitempty"`
	MaxScore    string `json:"maxScore,omitempty"`
	MinComments string `json:"minComments,omitempty"`
	MaxComments string `json:"maxComments,omitempty"`
	Sentiment   string `json:"sentiment,omitempty"`
	SearchTerm  string `json:"searchTerm,omitempty"`
	Subreddit   string `json:"subreddit,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

type SearchOptions struct {
	SearchMethod    SearchMethod `json:"searchMethod"`
	SortMethod      SortMethod   `json:"sortMethod"`
	TimeFilter      TimeFilter   `json:"timeFilter"`
	IncludeComments bool         `json:"includeComments"`
	AutoRefresh     bool         `json:"autoRefresh"`
	RefreshInterval int          `json:"refreshIntervalSeconds"`
}

type SortConfig struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// State is the composed, versioned view state. Reducers return a copy with
// the version bumped; the zero version never leaves Default().
type State struct {
	Version  uint64
	Filters  FilterState
	Search   SearchOptions
	Sort     SortConfig
	PageSize int
}

func Default() State {
	return State{
		Search: SearchOptions{
			SearchMethod:    SearchDatabase,
			SortMethod:      SortRelevance,
			TimeFilter:      TimeAll,
			AutoRefresh:     true,
			RefreshInterval: 30,
		},
		Sort:     SortConfig{Key: KeyCreated, Direction: Desc},
		PageSize: 25,
	}
}

func (s State) bump() State {
	s.Version++
	return s
}

// SetFilters replaces the filter block. Numeric fields that do not parse as
// integers are rejected keystroke-style: the previous value is kept and no
// error surfaces.
func (s State) SetFilters(f FilterState) State {
	f.MinScore = keepNumeric(s.Filters.MinScore, f.MinScore)
	f.MaxScore = keepNumeric(s.Filters.MaxScore, f.MaxScore)
	f.MinComments = keepNumeric(s.Filters.MinComments, f.MinComments)
	f.MaxComments = keepNumeric(s.Filters.MaxComments, f.MaxComments)
	s.Filters = f
	return s.bump()
}

func (s State) SetSearch(o SearchOptions) State {
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = s.Search.RefreshInterval
	}
	s.Search = o
	return s.bump()
}

func (s State) SetSort(c SortConfig) State {
	s.Sort = c
	return s.bump()
}

func (s State) SetPageSize(n int) State {
	if n <= 0 {
		return s
	}
	s.PageSize = n
	return s.bump()
}

// Live reports whether the current state would hit the live-search endpoint.
func (s State) Live() bool {
	return s.Filters.SearchTerm != "" && s.Search.SearchMethod == SearchLive
}

func keepNumeric(prev, next string) string {
	if next == "" {
		return ""
	}
	if _, err := strconv.Atoi(next); err != nil {
		return prev
	}
	return next
}
