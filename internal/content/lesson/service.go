package lesson

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/internal/platform/validate"
	"github.com/taibuivan/tinytales/pkg/listview"
	"github.com/taibuivan/tinytales/pkg/pagination"
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

func (service *Service) ListLessons(context context.Context, query url.Values) (listview.View[*Lesson], pagination.Meta, error) {
	lessons, err := service.repo.ListLessons(context, listview.ParseFilter(query).Query())
	if err != nil {
		return listview.View[*Lesson]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(lessons, query, listSpec)
	return view, meta, nil
}

func (service *Service) GetLesson(context context.Context, id string) (*Lesson, error) {
	return service.repo.GetLesson(context, id)
}

// CreateLesson saves the lesson, uploads its video and optional thumbnail, then
// PATCHes the URLs onto it.
func (service *Service) CreateLesson(context context.Context, input *Lesson, files map[string]*backend.File) (*Lesson, []string, error) {
	_, hasVideo := files[FieldVideo]

	validator := validateLesson(input)
	validator.Custom(FieldVideo, !hasVideo && input.VideoURL == "", "A lesson video is required")
	content.CheckFiles(validator, []content.Asset{videoAsset, thumbnailAsset}, files)
	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	draft := *input
	draft.ID = ""
	draft.Status = draft.Status.OrDraft()
	if hasVideo {
		draft.VideoURL = ""
	}
	if _, ok := files[FieldThumbnail]; ok {
		draft.ThumbnailURL = ""
	}

	created, err := service.repo.CreateLesson(context, &draft)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("lesson_created", slog.String("lesson_id", created.ID))
	service.recorder.Record(context, audit.Event{Action: "lesson.create", EntityType: "lesson", EntityID: created.ID, Detail: created.Title})

	owner := content.Owner{Entity: "Lesson", Param: "lessonId", ID: created.ID}
	urls, warnings := content.UploadAssets(context, service.repo, owner, []content.Asset{videoAsset, thumbnailAsset}, files)
	if len(urls) == 0 {
		return created, warnings, nil
	}

	patched, err := service.repo.PatchLesson(context, created.ID, AssetPatch{
		VideoURL:     urls[FieldVideo],
		ThumbnailURL: urls[FieldThumbnail],
	})
	if err != nil {
		service.logger.Warn("lesson_assets_attach_failed", slog.String("lesson_id", created.ID), slog.Any("error", err))
		return created, append(warnings, content.AttachWarning("Lesson")), nil
	}

	return patched, warnings, nil
}

func (service *Service) UpdateLesson(context context.Context, id string, input *Lesson, files map[string]*backend.File) (*Lesson, error) {
	if err := content.CheckFiles(validateLesson(input), []content.Asset{videoAsset, thumbnailAsset}, files).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	input.Status = input.Status.OrDraft()

	for _, asset := range []content.Asset{videoAsset, thumbnailAsset} {
		file, ok := files[asset.Field]
		if !ok {
			continue
		}

		target := backend.UploadTarget{Kind: asset.Kind, OwnerParam: "lessonId", OwnerID: id, AssetType: asset.Type}
		assetURL, err := service.repo.UploadAsset(context, target, file)
		if err != nil {
			return nil, err
		}

		if asset.Field == FieldVideo {
			input.VideoURL = assetURL
		} else {
			input.ThumbnailURL = assetURL
		}
	}

	updated, err := service.repo.UpdateLesson(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("lesson_updated", slog.String("lesson_id", id))
	service.recorder.Record(context, audit.Event{Action: "lesson.update", EntityType: "lesson", EntityID: id})
	return updated, nil
}

func (service *Service) DeleteLesson(context context.Context, id string) error {
	if err := service.repo.DeleteLesson(context, id); err != nil {
		return err
	}

	service.logger.Warn("lesson_deleted", slog.String("lesson_id", id))
	service.recorder.Record(context, audit.Event{Action: "lesson.delete", EntityType: "lesson", EntityID: id})
	return nil
}

func validateLesson(lesson *Lesson) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, lesson.Title).MaxLen(FieldTitle, lesson.Title, 200)
	validator.MaxLen(FieldDescription, lesson.Description, 5000)
	validator.NonNegative(FieldDuration, lesson.DurationSeconds)

	if lesson.Status != "" {
		validator.OneOf(FieldStatus, string(lesson.Status), content.Statuses...)
	}
	validator.URL(FieldVideoURL, lesson.VideoURL)
	validator.URL(FieldThumbnailURL, lesson.ThumbnailURL)

	return validator
}
