package category

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/validate"
	"github.com/taibuivan/tinytales/pkg/listview"
	"github.com/taibuivan/tinytales/pkg/pagination"
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

func (service *Service) ListCategories(context context.Context, query url.Values) (listview.View[*Category], pagination.Meta, error) {
	categories, err := service.repo.ListCategories(context, listview.ParseFilter(query).Query())
	if err != nil {
		return listview.View[*Category]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(categories, query, listSpec)
	return view, meta, nil
}

func (service *Service) GetCategory(context context.Context, id string) (*Category, error) {
	return service.repo.GetCategory(context, id)
}

func (service *Service) CreateCategory(context context.Context, input *Category) (*Category, error) {
	normalize(input)
	if err := validateCategory(input).Err(); err != nil {
		return nil, err
	}

	input.ID = ""
	created, err := service.repo.CreateCategory(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("category_id", created.ID), slog.String("slug", created.Slug))
	service.recorder.Record(context, audit.Event{Action: "category.create", EntityType: "category", EntityID: created.ID, Detail: created.Name})
	return created, nil
}

func (service *Service) UpdateCategory(context context.Context, id string, input *Category) (*Category, error) {
	normalize(input)
	if err := validateCategory(input).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	updated, err := service.repo.UpdateCategory(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("category_updated", slog.String("category_id", id))
	service.recorder.Record(context, audit.Event{Action: "category.update", EntityType: "category", EntityID: id})
	return updated, nil
}

func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("category_id", id))
	service.recorder.Record(context, audit.Event{Action: "category.delete", EntityType: "category", EntityID: id})
	return nil
}

// normalize fills the derived fields a staff member may leave blank.
func normalize(category *Category) {
	category.Name = strings.TrimSpace(category.Name)
	category.Slug = slug.From(category.Slug)
	if category.Slug == "" {
		category.Slug = slug.From(category.Name)
	}
	if category.Color == "" {
		category.Color = DefaultColor
	}
	if category.ContentType == "" {
		category.ContentType = ContentBook
	}
}

func validateCategory(category *Category) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 80)
	validator.Required(FieldSlug, category.Slug).Slug(FieldSlug, category.Slug)
	validator.HexColor(FieldColor, category.Color)
	validator.OneOf(FieldContentType, string(category.ContentType), string(ContentBook), string(ContentAudio))
	validator.NonNegative(FieldOrder, category.Order)

	return validator
}
