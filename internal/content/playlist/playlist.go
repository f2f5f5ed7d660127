package playlist

import (
	"strconv"
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/pkg/listview"
)

// Playlist is an ordered collection of audio tracks (stories, songs, sleep sounds).
type Playlist struct {
	ID            string         `json:"id,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Type          string         `json:"type,omitempty"`
	Status        content.Status `json:"status"`
	CategoryID    string         `json:"categoryId,omitempty"`
	CoverURL      string         `json:"coverUrl,omitempty"`
	IsFeatured    bool           `json:"isFeatured"`
	FeaturedOrder int            `json:"featuredOrder"`
	IsMembersOnly bool           `json:"isMembersOnly"`
	PlayCount     int            `json:"playCount,omitempty"`
	Items         []Track        `json:"items"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Track is one playlist item. Featured tracks appear in the carousel as episodes.
type Track struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	AudioURL        string `json:"audioUrl,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DurationSeconds int    `json:"duration,omitempty"`
	Order           int    `json:"order"`
	IsFeatured      bool   `json:"isFeatured"`
	FeaturedOrder   int    `json:"featuredOrder"`
}

// Playlist types.
const (
	TypeStory   = "story"
	TypeMusic   = "music"
	TypePodcast = "podcast"
	TypeSleep   = "sleep"
)

var Types = []string{TypeStory, TypeMusic, TypePodcast, TypeSleep}

const (
	FieldTitle    = "title"
	FieldType     = "type"
	FieldStatus   = "status"
	FieldCoverURL = "coverUrl"
	FieldItems    = "items"

	// FieldCover is the multipart field of the cover file.
	FieldCover = "cover"
)

// TrackField returns the multipart field carrying the audio of the track at position.
func TrackField(position int) string {
	return "track_" + strconv.Itoa(position)
}

var coverAsset = content.Asset{Field: FieldCover, Kind: backend.AssetImage, Type: "cover", Label: "cover"}

func trackAsset(position int, title string) content.Asset {
	return content.Asset{
		Field: TrackField(position),
		Kind:  backend.AssetAudio,
		Type:  "track",
		Label: "audio of track \"" + title + "\"",
	}
}

var listSpec = listview.Spec[*Playlist]{
	Columns: []string{"title", "type", "status", "tracks", "playCount", "createdAt"},
	Comparators: map[string]listview.Comparator[*Playlist]{
		"title":     listview.ByFold(func(p *Playlist) string { return p.Title }),
		"type":      listview.By(func(p *Playlist) string { return p.Type }),
		"status":    listview.By(func(p *Playlist) string { return string(p.Status) }),
		"tracks":    listview.By(func(p *Playlist) int { return len(p.Items) }),
		"playCount": listview.By(func(p *Playlist) int { return p.PlayCount }),
		"createdAt": listview.ByTime(func(p *Playlist) time.Time { return p.CreatedAt }),
	},
	Default: listview.Sort{Column: "createdAt", Direction: listview.Desc},
	Match: func(p *Playlist, filter listview.Filter) bool {
		return listview.Accepts(filter.Status, string(p.Status)) &&
			listview.Accepts(filter.Type, p.Type) &&
			filter.Matches(p.Title, p.Description)
	},
}
