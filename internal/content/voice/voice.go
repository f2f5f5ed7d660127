package voice

import (
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/pkg/listview"
)

// Voice is a narration voice offered to readers, backed by a provider voice id.
type Voice struct {
	ID          string `json:"id,omitempty"`
	VoiceID     string `json:"voiceId"`
	Name        string `json:"name"`
	CustomName  string `json:"customName,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	IsEnabled   bool   `json:"isEnabled"`
	IsPremium   bool   `json:"isPremium"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// DisplayName is the name readers see.
func (voice *Voice) DisplayName() string {
	if voice.CustomName != "" {
		return voice.CustomName
	}
	return voice.Name
}

// ProviderVoice is one voice the provider offers that may be imported.
type ProviderVoice struct {
	VoiceID    string            `json:"voiceId"`
	Name       string            `json:"name"`
	Category   string            `json:"category,omitempty"`
	PreviewURL string            `json:"previewUrl,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	// Imported is set by the portal when the voice already exists in the catalogue.
	Imported bool `json:"imported"`
}

// Toggle flips one boolean flag of a voice.
type Toggle struct {
	Flag  string `json:"flag"`
	Value bool   `json:"value"`
}

const (
	FlagEnabled = "isEnabled"
	FlagPremium = "isPremium"
)

const (
	FieldVoiceID  = "voiceId"
	FieldName     = "name"
	FieldImageURL = "imageUrl"
	FieldFlag     = "flag"

	FieldImage = "image"
)

var imageAsset = content.Asset{Field: FieldImage, Kind: backend.AssetImage, Type: "character", Label: "character image"}

var listSpec = listview.Spec[*Voice]{
	Columns: []string{"name", "language", "isEnabled", "isPremium", "createdAt"},
	Comparators: map[string]listview.Comparator[*Voice]{
		"name":      listview.ByFold(func(v *Voice) string { return v.DisplayName() }),
		"language":  listview.ByFold(func(v *Voice) string { return v.Language }),
		"isEnabled": listview.By(func(v *Voice) int { return boolRank(v.IsEnabled) }),
		"isPremium": listview.By(func(v *Voice) int { return boolRank(v.IsPremium) }),
		"createdAt": listview.ByTime(func(v *Voice) time.Time { return v.CreatedAt }),
	},
	Default: listview.Sort{Column: "name", Direction: listview.Asc},
	Match: func(v *Voice, filter listview.Filter) bool {
		return acceptsStatus(filter.Status, v) && filter.Matches(v.Name, v.CustomName, v.VoiceID)
	},
}

// acceptsStatus maps the list's status filter onto the enable flag.
func acceptsStatus(status string, voice *Voice) bool {
	switch status {
	case "enabled":
		return voice.IsEnabled
	case "disabled":
		return !voice.IsEnabled
	default:
		return true
	}
}

func boolRank(value bool) int {
	if value {
		return 1
	}
	return 0
}
