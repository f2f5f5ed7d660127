package influencer

import (
	"time"

	"github.com/taibuivan/tinytales/pkg/listview"
)

// Influencer owns a referral code that grants readers a discount or trial.
type Influencer struct {
	ID                string  `json:"id,omitempty"`
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Email             string  `json:"email,omitempty"`
	Platform          string  `json:"platform,omitempty"`
	CommissionPercent float64 `json:"commissionPercent"`
	DiscountPercent   float64 `json:"discountPercent"`
	TrialDays         int     `json:"trialDays"`
	IsActive          bool    `json:"isActive"`
	Stats             Stats   `json:"stats"`

	// ConversionRate is derived by the portal from Stats.
	ConversionRate int `json:"conversionRate"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

type Stats struct {
	Clicks      int     `json:"clicks"`
	Signups     int     `json:"signups"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// Totals sums Stats over the filtered rows of a listing.
type Totals struct {
	Stats
	ConversionRate int `json:"conversionRate"`
}

// Listing is the influencer screen: the derived view plus totals.
type Listing struct {
	listview.View[*Influencer]
	Totals Totals `json:"totals"`
}

const (
	FieldCode       = "code"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldCommission = "commissionPercent"
	FieldDiscount   = "discountPercent"
	FieldTrialDays  = "trialDays"

	MaxTrialDays = 365
)

var listSpec = listview.Spec[*Influencer]{
	Columns: []string{"code", "name", "clicks", "signups", "conversions", "revenue", "conversionRate", "createdAt"},
	Comparators: map[string]listview.Comparator[*Influencer]{
		"code":           listview.By(func(i *Influencer) string { return i.Code }),
		"name":           listview.ByFold(func(i *Influencer) string { return i.Name }),
		"clicks":         listview.By(func(i *Influencer) int { return i.Stats.Clicks }),
		"signups":        listview.By(func(i *Influencer) int { return i.Stats.Signups }),
		"conversions":    listview.By(func(i *Influencer) int { return i.Stats.Conversions }),
		"revenue":        listview.By(func(i *Influencer) float64 { return i.Stats.Revenue }),
		"conversionRate": listview.By(func(i *Influencer) int { return i.ConversionRate }),
		"createdAt":      listview.ByTime(func(i *Influencer) time.Time { return i.CreatedAt }),
	},
	Default: listview.Sort{Column: "createdAt", Direction: listview.Desc},
	Match: func(i *Influencer, filter listview.Filter) bool {
		return acceptsStatus(filter.Status, i) &&
			listview.Accepts(filter.Type, i.Platform) &&
			filter.Matches(i.Code, i.Name, i.Email)
	},
}

func acceptsStatus(status string, influencer *Influencer) bool {
	switch status {
	case "active":
		return influencer.IsActive
	case "inactive":
		return !influencer.IsActive
	default:
		return true
	}
}
