package export

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"redlytics/internal/projections"
	"redlytics/internal/view"
	"redlytics/pkg/snoo"
)

// Metadata describes an export: when it was taken and under which view state.
type Metadata struct {
	ExportID   string              `json:"export_id"`
	ExportedAt string              `json:"exported_at"`
	Filters    view.FilterState    `json:"filters"`
	Search     view.SearchOptions  `json:"search_options"`
	Sort       view.SortConfig     `json:"sort_config"`
	Statistics projections.Summary `json:"statistics"`
}

type jsonExport struct {
	Metadata Metadata    `json:"metadata"`
	Posts    []snoo.Post `json:"posts"`
}

// JSON exports the full post objects plus a metadata block.
func JSON(posts []snoo.Post, state view.State, stats projections.Summary, now time.Time) ([]byte, error) {
	doc := jsonExport{
		Metadata: Metadata{
			ExportID:   uuid.NewString(),
			ExportedAt: now.UTC().Format(time.RFC3339),
			Filters:    state.Filters,
			Search:     state.Search,
			Sort:       state.Sort,
			Statistics: stats,
		},
		Posts: posts,
	}

	return json.MarshalIndent(doc, "", "  ")
}
