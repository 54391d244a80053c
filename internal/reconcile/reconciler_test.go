package reconcile_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"redlytics/internal/reconcile"
	"redlytics/internal/view"
	"redlytics/pkg/snoo"
)

func makePosts(ids ...string) []snoo.Post {
	return lo.Map(ids, func(id string, _ int) snoo.Post {
		return snoo.Post{ID: id}
	})
}

func ids(posts []snoo.Post) []string {
	return lo.Map(posts, func(p snoo.Post, _ int) string {
		return p.ID
	})
}

func TestCollection_Apply(t *testing.T) {
	t.Parallel()

	t.Run("reset replaces and resets pagination", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(2)

		require.True(t, c.Apply(c.NextSeq(), reconcile.Reset, makePosts("a", "b"), false))
		require.True(t, c.Apply(c.NextSeq(), reconcile.Append, makePosts("c", "d"), false))
		require.True(t, c.Apply(c.NextSeq(), reconcile.Reset, makePosts("e"), false))

		require.Equal(t, []string{"e"}, ids(c.Posts()))
		require.Equal(t, 1, c.Page())
	})

	t.Run("append concatenates and advances the page", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(2)

		require.True(t, c.Apply(c.NextSeq(), reconcile.Reset, makePosts("a", "b"), false))
		require.True(t, c.Apply(c.NextSeq(), reconcile.Append, makePosts("c", "d"), false))

		require.Equal(t, []string{"a", "b", "c", "d"}, ids(c.Posts()))
		require.Equal(t, 2, c.Page())
	})

	t.Run("hasMore follows the page size", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(2)

		c.Apply(c.NextSeq(), reconcile.Reset, makePosts("a", "b"), false)
		require.True(t, c.HasMore())

		c.Apply(c.NextSeq(), reconcile.Append, makePosts("c"), false)
		require.False(t, c.HasMore(), "a short page is the last page")
	})

	t.Run("superseded responses are dropped", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(2)

		stale := c.NextSeq()
		fresh := c.NextSeq()

		require.True(t, c.Apply(fresh, reconcile.Reset, makePosts("new"), false))
		require.False(t, c.Apply(stale, reconcile.Reset, makePosts("old"), false))

		require.Equal(t, []string{"new"}, ids(c.Posts()))
	})

	t.Run("a superseded response arriving first is also dropped", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(2)

		stale := c.NextSeq()
		fresh := c.NextSeq()

		require.False(t, c.Apply(stale, reconcile.Reset, makePosts("old"), false))
		require.True(t, c.Apply(fresh, reconcile.Reset, makePosts("new"), false))

		require.Equal(t, []string{"new"}, ids(c.Posts()))
	})

	t.Run("a doubled trigger cannot apply the same page twice", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(2)

		c.Apply(c.NextSeq(), reconcile.Reset, makePosts("a", "b"), false)

		seq := c.NextSeq()
		require.True(t, c.Apply(seq, reconcile.Append, makePosts("c", "d"), false))
		require.False(t, c.Apply(seq, reconcile.Append, makePosts("c", "d"), false))

		require.Equal(t, []string{"a", "b", "c", "d"}, ids(c.Posts()))
		require.Equal(t, 2, c.Page())
	})
}

func TestCollection_Resort(t *testing.T) {
	t.Parallel()

	t.Run("listing sets need a refetch", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(25)
		c.Apply(c.NextSeq(), reconcile.Reset, makePosts("a", "b"), false)

		require.True(t, c.Resort(view.SortConfig{Key: view.KeyScore, Direction: view.Desc}))
	})

	t.Run("live sets are sorted in memory", func(t *testing.T) {
		t.Parallel()

		c := reconcile.NewCollection(25)
		c.Apply(c.NextSeq(), reconcile.Reset, []snoo.Post{
			{ID: "low", Score: 1},
			{ID: "high", Score: 9},
			{ID: "mid", Score: 5},
		}, true)

		require.False(t, c.Resort(view.SortConfig{Key: view.KeyScore, Direction: view.Desc}))
		require.Equal(t, []string{"high", "mid", "low"}, ids(c.Posts()))

		require.False(t, c.Resort(view.SortConfig{Key: view.KeyScore, Direction: view.Asc}))
		require.Equal(t, []string{"low", "mid", "high"}, ids(c.Posts()))
	})
}

func TestSorted(t *testing.T) {
	t.Parallel()

	t.Run("string keys are case-insensitive", func(t *testing.T) {
		t.Parallel()

		posts := []snoo.Post{
			{ID: "1", Title: "beta"},
			{ID: "2", Title: "Alpha"},
			{ID: "3", Title: "gamma"},
		}

		sorted := reconcile.Sorted(posts, view.SortConfig{Key: view.KeyTitle, Direction: view.Asc})

		require.Equal(t, []string{"2", "1", "3"}, ids(sorted))
		require.Equal(t, []string{"1", "2", "3"}, ids(posts), "input stays untouched")
	})

	t.Run("equal keys keep their arrival order", func(t *testing.T) {
		t.Parallel()

		posts := []snoo.Post{
			{ID: "first", Score: 5},
			{ID: "second", Score: 5},
			{ID: "third", Score: 5},
		}

		sorted := reconcile.Sorted(posts, view.SortConfig{Key: view.KeyScore, Direction: view.Desc})

		require.Equal(t, []string{"first", "second", "third"}, ids(sorted))
	})

	t.Run("unknown keys leave the order alone", func(t *testing.T) {
		t.Parallel()

		posts := []snoo.Post{{ID: "b"}, {ID: "a"}}

		sorted := reconcile.Sorted(posts, view.SortConfig{Key: "bogus", Direction: view.Asc})

		require.Equal(t, []string{"b", "a"}, ids(sorted))
	})
}

func TestDetail(t *testing.T) {
	t.Parallel()

	comments := []snoo.Comment{{ID: "c1", Body: "nice"}}

	t.Run("applies comments for the open post", func(t *testing.T) {
		t.Parallel()

		d := &reconcile.Detail{}
		d.Open("p1")

		require.True(t, d.Apply("p1", comments))
		require.Equal(t, comments, d.Comments())
	})

	t.Run("discards a stale response after switching posts", func(t *testing.T) {
		t.Parallel()

		d := &reconcile.Detail{}
		d.Open("p1")
		d.Open("p2")

		require.False(t, d.Apply("p1", comments))
		require.Empty(t, d.Comments())
	})

	t.Run("opening a post clears the previous comments", func(t *testing.T) {
		t.Parallel()

		d := &reconcile.Detail{}
		d.Open("p1")
		d.Apply("p1", comments)

		d.Open("p2")
		require.Empty(t, d.Comments())
	})

	t.Run("a closed detail applies nothing", func(t *testing.T) {
		t.Parallel()

		d := &reconcile.Detail{}
		d.Open("p1")
		d.Close()

		require.False(t, d.Apply("p1", comments))
	})
}
