package radio

import (
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/pkg/listview"
)

// Track is one item of the radio rotation.
type Track struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title"`
	Artist          string `json:"artist,omitempty"`
	SegmentID       string `json:"segmentId,omitempty"`
	AudioURL        string `json:"audioUrl,omitempty"`
	DurationSeconds int    `json:"duration,omitempty"`
	Order           int    `json:"order"`
	IsActive        bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Segment is a named time slot of the radio day, e.g. "Bedtime" from 19:00 to 21:00.
type Segment struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsActive    bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

const (
	FieldTitle     = "title"
	FieldAudioURL  = "audioUrl"
	FieldName      = "name"
	FieldStartTime = "startTime"
	FieldEndTime   = "endTime"

	FieldAudio = "audio"

	// clockLayout is the wall-clock format of segment bounds.
	clockLayout = "15:04"
)

var audioAsset = content.Asset{Field: FieldAudio, Kind: backend.AssetAudio, Type: "radio", Label: "audio"}

var trackSpec = listview.Spec[*Track]{
	Columns: []string{"order", "title", "artist", "duration", "createdAt"},
	Comparators: map[string]listview.Comparator[*Track]{
		"order":     listview.By(func(t *Track) int { return t.Order }),
		"title":     listview.ByFold(func(t *Track) string { return t.Title }),
		"artist":    listview.ByFold(func(t *Track) string { return t.Artist }),
		"duration":  listview.By(func(t *Track) int { return t.DurationSeconds }),
		"createdAt": listview.ByTime(func(t *Track) time.Time { return t.CreatedAt }),
	},
	Default: listview.Sort{Column: "order", Direction: listview.Asc},
	Match: func(t *Track, filter listview.Filter) bool {
		return listview.Accepts(filter.Type, t.SegmentID) && filter.Matches(t.Title, t.Artist)
	},
}

var segmentSpec = listview.Spec[*Segment]{
	Columns: []string{"name", "startTime", "endTime"},
	Comparators: map[string]listview.Comparator[*Segment]{
		"name":      listview.ByFold(func(s *Segment) string { return s.Name }),
		"startTime": listview.By(func(s *Segment) string { return s.StartTime }),
		"endTime":   listview.By(func(s *Segment) string { return s.EndTime }),
	},
	Default: listview.Sort{Column: "startTime", Direction: listview.Asc},
	Match: func(s *Segment, filter listview.Filter) bool {
		return filter.Matches(s.Name, s.Description)
	},
}
