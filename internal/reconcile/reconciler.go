// Package reconcile merges fetch responses into the in-memory post
// collection. It owns the request sequence guard: fetches are issued with
// monotonically increasing sequence numbers and only the highest-issued
// response is ever applied, so a stale in-flight fetch superseded by a newer
// one can never clobber state, and a doubled load-more trigger can never
// apply the same page twice.
package reconcile

import (
	"sort"
	"strings"
	"sync"

	"redlytics/internal/view"
	"redlytics/pkg/snoo"
)

type Mode int

const (
	// Reset replaces the collection wholesale and resets pagination.
	Reset Mode = iota
	// Append concatenates a load-more page to the end.
	Append
)

// Collection is the reconciled post set plus its derived pagination state.
type Collection struct {
	mu sync.Mutex

	posts    []snoo.Post
	page     int
	hasMore  bool
	live     bool
	pageSize int

	issued  uint64
	applied uint64
}

func NewCollection(pageSize int) *Collection {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Collection{page: 1, pageSize: pageSize}
}

// NextSeq issues the sequence number for a fetch about to start. Issuing a
// new number supersedes every fetch still in flight.
func (c *Collection) NextSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Apply merges a response into the collection. It reports whether the
// response was applied; superseded and duplicate responses are dropped
// without touching state.
func (c *Collection) Apply(seq uint64, mode Mode, posts []snoo.Post, live bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.issued || seq <= c.applied {
		return false
	}
	c.applied = seq

	switch mode {
	case Reset:
		c.posts = append([]snoo.Post(nil), posts...)
		c.page = 1
		c.live = live
	case Append:
		c.posts = append(c.posts, posts...)
		c.page++
	}

	c.hasMore = len(posts) == c.pageSize
	return true
}

// Resort re-orders the held collection for a user-driven sort change. Live
// result sets are sorted in memory because the proxy cannot reproduce them
// in a stable order; for listing sets the caller must issue a fresh Reset
// fetch instead, reported by refetch=true.
func (c *Collection) Resort(cfg view.SortConfig) (refetch bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.live {
		return true
	}
	sortPosts(c.posts, cfg)
	return false
}

// Sorted returns a sorted copy without touching the collection.
func Sorted(posts []snoo.Post, cfg view.SortConfig) []snoo.Post {
	out := append([]snoo.Post(nil), posts...)
	sortPosts(out, cfg)
	return out
}

func (c *Collection) Posts() []snoo.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]snoo.Post(nil), c.posts...)
}

func (c *Collection) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Collection) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

func (c *Collection) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

func sortPosts(posts []snoo.Post, cfg view.SortConfig) {
	sort.SliceStable(posts, func(i, j int) bool {
		cmp := compare(posts[i], posts[j], cfg.Key)
		if cfg.Direction == view.Desc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func compare(a, b snoo.Post, key view.SortKey) int {
	switch key {
	case view.KeyTitle, view.KeySubreddit, view.KeyAuthor:
		return strings.Compare(
			strings.ToLower(stringKey(a, key)),
			strings.ToLower(stringKey(b, key)),
		)
	default:
		x, y := numericKey(a, key), numericKey(b, key)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
}

func stringKey(p snoo.Post, key view.SortKey) string {
	switch key {
	case view.KeyTitle:
		return p.Title
	case view.KeySubreddit:
		return p.Subreddit
	case view.KeyAuthor:
		return p.Author
	default:
		return ""
	}
}

// numericKey treats unknown keys and missing values as 0.
func numericKey(p snoo.Post, key view.SortKey) float64 {
	switch key {
	case view.KeyCreated:
		return float64(p.CreatedUTC)
	case view.KeyScore:
		return float64(p.Score)
	case view.KeyComments:
		return float64(p.NumComments)
	case view.KeySentiment:
		return p.SentimentCompound
	default:
		return 0
	}
}
