package reconcile

import (
	"sync"

	"redlytics/pkg/snoo"
)

// Detail holds the comments of the currently open post. Comment fetches are
// keyed by post ID: a response arriving for a post that is no longer open is
// discarded. Nothing is cached across posts.
type Detail struct {
	mu sync.Mutex

	postID   string
	comments []snoo.Comment
}

// Open switches the detail view to a post and drops any held comments.
func (d *Detail) Open(postID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postID = postID
	d.comments = nil
}

func (d *Detail) Close() {
	d.Open("")
}

// Apply installs a comment response, unless the detail view moved on to a
// different post while the fetch was in flight.
func (d *Detail) Apply(postID string, comments []snoo.Comment) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if postID != d.postID || d.postID == "" {
		return false
	}
	d.comments = append([]snoo.Comment(nil), comments...)
	return true
}

func (d *Detail) PostID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.postID
}

func (d *Detail) Comments() []snoo.Comment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]snoo.Comment(nil), d.comments...)
}
