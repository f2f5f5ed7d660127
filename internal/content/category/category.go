package category

import (
	"time"

	"github.com/taibuivan/tinytales/pkg/listview"
)

// ContentType selects which catalogue a category groups.
type ContentType string

const (
	ContentBook  ContentType = "book"
	ContentAudio ContentType = "audio"

	DefaultColor = "#6366F1"
)

type Category struct {
	ID            string      `json:"id,omitempty"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description,omitempty"`
	Color         string      `json:"color"`
	Icon          string      `json:"icon,omitempty"`
	ContentType   ContentType `json:"contentType"`
	ShowOnExplore bool        `json:"showOnExplore"`
	Order         int         `json:"order"`
	ItemCount     int         `json:"itemCount,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldColor       = "color"
	FieldContentType = "contentType"
	FieldOrder       = "order"
)

var listSpec = listview.Spec[*Category]{
	Columns: []string{"name", "contentType", "order", "itemCount", "createdAt"},
	Comparators: map[string]listview.Comparator[*Category]{
		"name":        listview.ByFold(func(c *Category) string { return c.Name }),
		"contentType": listview.By(func(c *Category) string { return string(c.ContentType) }),
		"order":       listview.By(func(c *Category) int { return c.Order }),
		"itemCount":   listview.By(func(c *Category) int { return c.ItemCount }),
		"createdAt":   listview.ByTime(func(c *Category) time.Time { return c.CreatedAt }),
	},
	Default: listview.Sort{Column: "order", Direction: listview.Asc},
	Match: func(c *Category, filter listview.Filter) bool {
		return listview.Accepts(filter.Type, string(c.ContentType)) &&
			filter.Matches(c.Name, c.Slug, c.Description)
	},
}
