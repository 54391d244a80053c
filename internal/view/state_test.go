package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"redlytics/internal/view"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	s := view.Default()

	require.EqualValues(t, 0, s.Version)
	require.Equal(t, view.SearchDatabase, s.Search.SearchMethod)
	require.Equal(t, view.SortRelevance, s.Search.SortMethod)
	require.Equal(t, view.TimeAll, s.Search.TimeFilter)
	require.Equal(t, 30, s.Search.RefreshInterval)
	require.True(t, s.Search.AutoRefresh)
	require.Equal(t, view.KeyCreated, s.Sort.Key)
	require.Equal(t, view.Desc, s.Sort.Direction)
	require.Equal(t, 25, s.PageSize)
	require.False(t, s.Live())
}

func TestState_SetFilters(t *testing.T) {
	t.Parallel()

	t.Run("bumps version", func(t *testing.T) {
		t.Parallel()

		s := view.Default().SetFilters(view.FilterState{MinScore: "10"})

		require.EqualValues(t, 1, s.Version)
		require.Equal(t, "10", s.Filters.MinScore)
	})

	t.Run("rejects non-numeric keystrokes", func(t *testing.T) {
		t.Parallel()

		s := view.Default().SetFilters(view.FilterState{MinScore: "10"})
		s = s.SetFilters(view.FilterState{MinScore: "10x"})

		require.Equal(t, "10", s.Filters.MinScore)
	})

	t.Run("clearing a numeric field is allowed", func(t *testing.T) {
		t.Parallel()

		s := view.Default().SetFilters(view.FilterState{MaxComments: "5"})
		s = s.SetFilters(view.FilterState{MaxComments: ""})

		require.Empty(t, s.Filters.MaxComments)
	})

	t.Run("negative bounds are numeric", func(t *testing.T) {
		t.Parallel()

		s := view.Default().SetFilters(view.FilterState{MinScore: "-5"})

		require.Equal(t, "-5", s.Filters.MinScore)
	})

	t.Run("text fields pass through untouched", func(t *testing.T) {
		t.Parallel()

		s := view.Default().SetFilters(view.FilterState{Subreddit: "golang", StartDate: "not-a-date"})

		require.Equal(t, "golang", s.Filters.Subreddit)
		require.Equal(t, "not-a-date", s.Filters.StartDate)
	})
}

func TestState_SetSearch(t *testing.T) {
	t.Parallel()

	t.Run("keeps previous interval when non-positive", func(t *testing.T) {
		t.Parallel()

		s := view.Default().SetSearch(view.SearchOptions{
			SearchMethod:    view.SearchLive,
			RefreshInterval: 0,
		})

		require.Equal(t, 30, s.Search.RefreshInterval)
		require.Equal(t, view.SearchLive, s.Search.SearchMethod)
	})
}

func TestState_SetPageSize(t *testing.T) {
	t.Parallel()

	s := view.Default().SetPageSize(50)
	require.Equal(t, 50, s.PageSize)

	s = s.SetPageSize(0)
	require.Equal(t, 50, s.PageSize)

	s = s.SetPageSize(-1)
	require.Equal(t, 50, s.PageSize)
}

func TestState_Live(t *testing.T) {
	t.Parallel()

	s := view.Default().SetFilters(view.FilterState{SearchTerm: "rust"})
	require.False(t, s.Live(), "database method never goes live")

	opts := s.Search
	opts.SearchMethod = view.SearchLive
	s = s.SetSearch(opts)
	require.True(t, s.Live())

	s = s.SetFilters(view.FilterState{})
	require.False(t, s.Live(), "live method without a term stays on the listing")
}

func TestApplyPreferences(t *testing.T) {
	t.Parallel()

	t.Run("restores the persisted shape", func(t *testing.T) {
		t.Parallel()

		s := view.ApplyPreferences(view.Default(), map[string]any{
			"searchMethod":           "live",
			"sortMethod":             "top",
			"timeFilter":             "week",
			"sortBy":                 "score",
			"order":                  "asc",
			"defaultSubreddit":       "golang",
			"pageSize":               float64(50),
			"refreshIntervalSeconds": float64(60),
			"autoRefresh":            false,
			"includeComments":        true,
		})

		require.Equal(t, view.SearchLive, s.Search.SearchMethod)
		require.Equal(t, view.SortTop, s.Search.SortMethod)
		require.Equal(t, view.TimeWeek, s.Search.TimeFilter)
		require.Equal(t, view.SortKey("score"), s.Sort.Key)
		require.Equal(t, view.Asc, s.Sort.Direction)
		require.Equal(t, "golang", s.Filters.Subreddit)
		require.Equal(t, 50, s.PageSize)
		require.Equal(t, 60, s.Search.RefreshInterval)
		require.False(t, s.Search.AutoRefresh)
		require.True(t, s.Search.IncludeComments)
	})

	t.Run("tolerates junk values", func(t *testing.T) {
		t.Parallel()

		s := view.ApplyPreferences(view.Default(), map[string]any{
			"pageSize":     "many",
			"sortMethod":   42,
			"autoRefresh":  "yes",
			"unknown-key":  true,
			"searchMethod": nil,
		})

		require.Equal(t, view.Default().PageSize, s.PageSize)
		require.Equal(t, view.Default().Search.SortMethod, s.Search.SortMethod)
	})

	t.Run("nil map keeps the defaults", func(t *testing.T) {
		t.Parallel()

		s := view.ApplyPreferences(view.Default(), nil)

		require.Equal(t, view.Default().Filters, s.Filters)
		require.Equal(t, view.Default().Search, s.Search)
		require.Equal(t, view.Default().Sort, s.Sort)
		require.Equal(t, view.Default().PageSize, s.PageSize)
	})
}
