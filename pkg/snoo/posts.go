package snoo

import (
	"context"
	"net/http"
	"net/url"
)

const (
	endpointPosts             = "/posts"
	endpointSearch            = "/search"
	endpointPopularSubreddits = "/popular-subreddits"
	endpointWordCloud         = "/wordcloud"
)

// Fetch executes a prepared listing or live-search request. The endpoint is
// the path produced by the query builder; both return a bare post array.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) ([]Post, error) {
	var posts []Post
	if err := c.call(ctx, http.MethodGet, endpoint, params, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Posts queries the database-backed listing endpoint.
func (c *Client) Posts(ctx context.Context, params url.Values) ([]Post, error) {
	return c.Fetch(ctx, endpointPosts, params)
}

// Search queries the live Reddit search proxy.
func (c *Client) Search(ctx context.Context, params url.Values) ([]Post, error) {
	return c.Fetch(ctx, endpointSearch, params)
}

// Comments fetches the scored comments of a single post.
func (c *Client) Comments(ctx context.Context, postID string) ([]Comment, error) {
	var comments []Comment
	err := c.call(ctx, http.MethodGet, endpointPosts+"/"+url.PathEscape(postID)+"/comments", nil, nil, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) PopularSubreddits(ctx context.Context) ([]SubredditCount, error) {
	var counts []SubredditCount
	if err := c.call(ctx, http.MethodGet, endpointPopularSubreddits, nil, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (c *Client) WordCloud(ctx context.Context) ([]WordCount, error) {
	var words []WordCount
	if err := c.call(ctx, http.MethodGet, endpointWordCloud, nil, nil, &words); err != nil {
		return nil, err
	}
	return words, nil
}
