package lesson

import (
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/pkg/listview"
)

// Lesson is a short educational video.
type Lesson struct {
	ID              string         `json:"id,omitempty"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	Status          content.Status `json:"status"`
	CategoryID      string         `json:"categoryId,omitempty"`
	AgeRange        string         `json:"ageRange,omitempty"`
	VideoURL        string         `json:"videoUrl,omitempty"`
	ThumbnailURL    string         `json:"thumbnailUrl,omitempty"`
	DurationSeconds int            `json:"duration,omitempty"`
	IsMembersOnly   bool           `json:"isMembersOnly"`
	ViewCount       int            `json:"viewCount,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// AssetPatch attaches uploaded URLs to a lesson.
type AssetPatch struct {
	VideoURL     string `json:"videoUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldStatus       = "status"
	FieldVideoURL     = "videoUrl"
	FieldThumbnailURL = "thumbnailUrl"
	FieldDuration     = "duration"

	// Multipart file fields.
	FieldVideo     = "video"
	FieldThumbnail = "thumbnail"
)

var (
	videoAsset     = content.Asset{Field: FieldVideo, Kind: backend.AssetVideo, Type: "video", Label: "video"}
	thumbnailAsset = content.Asset{Field: FieldThumbnail, Kind: backend.AssetImage, Type: "thumbnail", Label: "thumbnail"}
)

var listSpec = listview.Spec[*Lesson]{
	Columns: []string{"title", "subject", "status", "duration", "viewCount", "createdAt"},
	Comparators: map[string]listview.Comparator[*Lesson]{
		"title":     listview.ByFold(func(l *Lesson) string { return l.Title }),
		"subject":   listview.ByFold(func(l *Lesson) string { return l.Subject }),
		"status":    listview.By(func(l *Lesson) string { return string(l.Status) }),
		"duration":  listview.By(func(l *Lesson) int { return l.DurationSeconds }),
		"viewCount": listview.By(func(l *Lesson) int { return l.ViewCount }),
		"createdAt": listview.ByTime(func(l *Lesson) time.Time { return l.CreatedAt }),
	},
	Default: listview.Sort{Column: "createdAt", Direction: listview.Desc},
	Match: func(l *Lesson, filter listview.Filter) bool {
		return listview.Accepts(filter.Status, string(l.Status)) &&
			listview.Accepts(filter.Type, l.Subject) &&
			filter.Matches(l.Title, l.Description)
	},
}
