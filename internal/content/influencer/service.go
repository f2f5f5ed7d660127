package influencer

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/validate"
	"github.com/taibuivan/tinytales/pkg/listview"
	"github.com/taibuivan/tinytales/pkg/pagination"
	"github.com/taibuivan/tinytales/pkg/percent"
	"github.com/taibuivan/tinytales/pkg/slice"
	"github.com/taibuivan/tinytales/pkg/slug"
)

type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// ListInfluencers derives the screen and totals the stats of every row that
// passes the filter, not only the visible page.
func (service *Service) ListInfluencers(context context.Context, query url.Values) (Listing, pagination.Meta, error) {
	influencers, err := service.repo.ListInfluencers(context, url.Values{})
	if err != nil {
		return Listing{}, pagination.Meta{}, err
	}

	for _, influencer := range influencers {
		influencer.ConversionRate = percent.Of(influencer.Stats.Conversions, influencer.Stats.Signups)
	}

	filter := listview.ParseFilter(query)
	matched := slice.Filter(influencers, func(influencer *Influencer) bool { return listSpec.Match(influencer, filter) })

	view, meta := listview.Build(influencers, query, listSpec)
	return Listing{View: view, Totals: total(matched)}, meta, nil
}

func (service *Service) GetInfluencer(context context.Context, id string) (*Influencer, error) {
	influencer, err := service.repo.GetInfluencer(context, id)
	if err != nil {
		return nil, err
	}
	influencer.ConversionRate = percent.Of(influencer.Stats.Conversions, influencer.Stats.Signups)
	return influencer, nil
}

func (service *Service) CreateInfluencer(context context.Context, input *Influencer) (*Influencer, error) {
	normalize(input)
	if err := validateInfluencer(input).Err(); err != nil {
		return nil, err
	}

	input.ID = ""
	input.Stats = Stats{}
	created, err := service.repo.CreateInfluencer(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("influencer_created", slog.String("influencer_id", created.ID), slog.String("code", created.Code))
	service.recorder.Record(context, audit.Event{Action: "influencer.create", EntityType: "influencer", EntityID: created.ID, Detail: created.Code})
	return created, nil
}

func (service *Service) UpdateInfluencer(context context.Context, id string, input *Influencer) (*Influencer, error) {
	normalize(input)
	if err := validateInfluencer(input).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	updated, err := service.repo.UpdateInfluencer(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("influencer_updated", slog.String("influencer_id", id))
	service.recorder.Record(context, audit.Event{Action: "influencer.update", EntityType: "influencer", EntityID: id})
	return updated, nil
}

func (service *Service) SetActive(context context.Context, id string, active bool) (*Influencer, error) {
	updated, err := service.repo.SetActive(context, id, active)
	if err != nil {
		return nil, err
	}

	service.logger.Info("influencer_active_changed", slog.String("influencer_id", id), slog.Bool("active", active))
	service.recorder.Record(context, audit.Event{Action: "influencer.activate", EntityType: "influencer", EntityID: id})
	return updated, nil
}

func (service *Service) DeleteInfluencer(context context.Context, id string) error {
	if err := service.repo.DeleteInfluencer(context, id); err != nil {
		return err
	}

	service.logger.Warn("influencer_deleted", slog.String("influencer_id", id))
	service.recorder.Record(context, audit.Event{Action: "influencer.delete", EntityType: "influencer", EntityID: id})
	return nil
}

func total(influencers []*Influencer) Totals {
	stats := Stats{
		Clicks:      slice.Sum(influencers, func(i *Influencer) int { return i.Stats.Clicks }),
		Signups:     slice.Sum(influencers, func(i *Influencer) int { return i.Stats.Signups }),
		Conversions: slice.Sum(influencers, func(i *Influencer) int { return i.Stats.Conversions }),
		Revenue:     slice.Sum(influencers, func(i *Influencer) float64 { return i.Stats.Revenue }),
	}
	return Totals{Stats: stats, ConversionRate: percent.Of(stats.Conversions, stats.Signups)}
}

func normalize(influencer *Influencer) {
	influencer.Code = slug.Code(influencer.Code)
	influencer.Name = strings.TrimSpace(influencer.Name)
	influencer.Email = strings.TrimSpace(influencer.Email)
}

func validateInfluencer(influencer *Influencer) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldCode, influencer.Code).MinLen(FieldCode, influencer.Code, 3).MaxLen(FieldCode, influencer.Code, 20)
	validator.Required(FieldName, influencer.Name).MaxLen(FieldName, influencer.Name, 100)
	validator.Email(FieldEmail, influencer.Email)
	validator.Percent(FieldCommission, influencer.CommissionPercent)
	validator.Percent(FieldDiscount, influencer.DiscountPercent)
	validator.Range(FieldTrialDays, influencer.TrialDays, 0, MaxTrialDays)

	return validator
}
