package influencer

import (
	"context"
	"net/url"
)

type Repository interface {
	ListInfluencers(context context.Context, query url.Values) ([]*Influencer, error)
	GetInfluencer(context context.Context, id string) (*Influencer, error)
	CreateInfluencer(context context.Context, influencer *Influencer) (*Influencer, error)
	UpdateInfluencer(context context.Context, id string, influencer *Influencer) (*Influencer, error)
	SetActive(context context.Context, id string, active bool) (*Influencer, error)
	DeleteInfluencer(context context.Context, id string) error
}
