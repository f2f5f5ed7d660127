package book

import (
	"strings"
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/pkg/listview"
)

// Book is a picture or chapter book as stored by the backend.
type Book struct {
	ID            string         `json:"id,omitempty"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	Description   string         `json:"description,omitempty"`
	Status        content.Status `json:"status"`
	CategoryIDs   []string       `json:"categoryIds,omitempty"`
	AgeRange      string         `json:"ageRange,omitempty"`
	Language      string         `json:"language,omitempty"`
	CoverURL      string         `json:"coverUrl,omitempty"`
	IsFeatured    bool           `json:"isFeatured"`
	FeaturedOrder int            `json:"featuredOrder"`
	IsMembersOnly bool           `json:"isMembersOnly"`
	PlayCount     int            `json:"playCount,omitempty"`

	// SeriesBooks lists the volumes of a series, ordered by Order.
	SeriesBooks []SeriesBook `json:"seriesBooks,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// SeriesBook is one volume of a series.
type SeriesBook struct {
	BookID string `json:"bookId"`
	Title  string `json:"title,omitempty"`
	Order  int    `json:"order"`
}

const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldCoverURL    = "coverUrl"
	FieldSeriesBooks = "seriesBooks"

	// FieldCover is the multipart field of the cover file.
	FieldCover = "cover"
)

// Book types accepted by the list filter.
const (
	TypeSingle = "single"
	TypeSeries = "series"
)

var coverAsset = content.Asset{Field: FieldCover, Kind: backend.AssetImage, Type: "cover", Label: "cover"}

var listSpec = listview.Spec[*Book]{
	Columns: []string{"title", "author", "status", "playCount", "featuredOrder", "createdAt"},
	Comparators: map[string]listview.Comparator[*Book]{
		"title":         listview.ByFold(func(b *Book) string { return b.Title }),
		"author":        listview.ByFold(func(b *Book) string { return b.Author }),
		"status":        listview.By(func(b *Book) string { return string(b.Status) }),
		"playCount":     listview.By(func(b *Book) int { return b.PlayCount }),
		"featuredOrder": listview.By(func(b *Book) int { return b.FeaturedOrder }),
		"createdAt":     listview.ByTime(func(b *Book) time.Time { return b.CreatedAt }),
	},
	Default: listview.Sort{Column: "createdAt", Direction: listview.Desc},
	Match: func(b *Book, filter listview.Filter) bool {
		return listview.Accepts(filter.Status, string(b.Status)) &&
			matchesType(b, filter.Type) &&
			filter.Matches(b.Title, b.Author)
	},
}

func matchesType(b *Book, bookType string) bool {
	switch strings.ToLower(bookType) {
	case TypeSeries:
		return len(b.SeriesBooks) > 0
	case TypeSingle:
		return len(b.SeriesBooks) == 0
	}
	return true
}
