package view

// ApplyPreferences seeds a state from a stored preference map. Preferences
// come back from JSON, so numbers arrive as float64; anything malformed is
// ignored and the default stands. Flags are applied after this and win.
func ApplyPreferences(s State, prefs map[string]any) State {
	if v, ok := str(prefs, "searchMethod"); ok {
		if m := SearchMethod(v); m == SearchDatabase || m == SearchLive {
			s.Search.SearchMethod = m
		}
	}
	if v, ok := str(prefs, "sortMethod"); ok {
		s.Search.SortMethod = SortMethod(v)
	}
	if v, ok := str(prefs, "timeFilter"); ok {
		s.Search.TimeFilter = TimeFilter(v)
	}
	if v, ok := str(prefs, "sortBy"); ok {
		s.Sort.Key = SortKey(v)
	}
	if v, ok := str(prefs, "order"); ok {
		if d := Direction(v); d == Asc || d == Desc {
			s.Sort.Direction = d
		}
	}
	if v, ok := str(prefs, "defaultSubreddit"); ok {
		s.Filters.Subreddit = v
	}
	if v, ok := num(prefs, "pageSize"); ok && v > 0 {
		s.PageSize = v
	}
	if v, ok := num(prefs, "refreshIntervalSeconds"); ok && v > 0 {
		s.Search.RefreshInterval = v
	}
	if v, ok := prefs["autoRefresh"].(bool); ok {
		s.Search.AutoRefresh = v
	}
	if v, ok := prefs["includeComments"].(bool); ok {
		s.Search.IncludeComments = v
	}

	s.Version++
	return s
}

func str(prefs map[string]any, key string) (string, bool) {
	v, ok := prefs[key].(string)
	return v, ok && v != ""
}

func num(prefs map[string]any, key string) (int, bool) {
	switch v := prefs[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
