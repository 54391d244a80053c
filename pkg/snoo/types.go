package snoo

// Post is a Reddit submission already scored for sentiment by the backend.
// Posts are immutable once fetched; identity is the ID field.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  int64   `json:"created_utc"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	URL         string  `json:"url"`
	Selftext    string  `json:"selftext"`

	SentimentCompound float64 `json:"sentiment_compound"`
	SentimentPos      float64 `json:"sentiment_pos"`
	SentimentNeu      float64 `json:"sentiment_neu"`
	SentimentNeg      float64 `json:"sentiment_neg"`
}

// Comment belongs to a single post and is fetched lazily for the detail view.
type Comment struct {
	ID         string `json:"id"`
	PostID     string `json:"post_id"`
	Author     string `json:"author"`
	Body       string `json:"body"`
	Score      int    `json:"score"`
	CreatedUTC int64  `json:"created_utc"`

	SentimentCompound float64 `json:"sentiment_compound"`
	SentimentPos      float64 `json:"sentiment_pos"`
	SentimentNeu      float64 `json:"sentiment_neu"`
	SentimentNeg      float64 `json:"sentiment_neg"`
}

type User struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Preferences map[string]any `json:"preferences"`
}

// SavedFilter is a server-owned named snapshot of the whole view state.
type SavedFilter struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	FilterConfig FilterConfig `json:"filter_config"`
}

// FilterConfig is the serialized payload of a SavedFilter. The server stores
// it verbatim and never interprets it.
type FilterConfig struct {
	Filters       map[string]string `json:"filters"`
	SearchOptions map[string]any    `json:"searchOptions"`
	SortConfig    map[string]string `json:"sortConfig"`
}

// SubredditCount is the /popular-subreddits aggregate item.
type SubredditCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WordCount is the /wordcloud aggregate item.
type WordCount struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}
