package voice

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/apperr"
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

func (service *Service) ListVoices(context context.Context, query url.Values) (listview.View[*Voice], pagination.Meta, error) {
	voices, err := service.repo.ListVoices(context, url.Values{})
	if err != nil {
		return listview.View[*Voice]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(voices, query, listSpec)
	return view, meta, nil
}

// ListAvailable returns the provider's voices, marking those already in the catalogue.
func (service *Service) ListAvailable(context context.Context) ([]*ProviderVoice, error) {
	available, err := service.repo.ListProviderVoices(context)
	if err != nil {
		return nil, err
	}

	existing, err := service.repo.ListVoices(context, url.Values{})
	if err != nil {
		return nil, err
	}

	imported := make(map[string]struct{}, len(existing))
	for _, voice := range existing {
		imported[voice.VoiceID] = struct{}{}
	}
	for _, candidate := range available {
		_, candidate.Imported = imported[candidate.VoiceID]
	}

	return available, nil
}

func (service *Service) GetVoice(context context.Context, id string) (*Voice, error) {
	return service.repo.GetVoice(context, id)
}

// CreateVoice saves the voice and, when a character image is attached, uploads it
// and PATCHes imageUrl onto the new voice.
func (service *Service) CreateVoice(context context.Context, input *Voice, files map[string]*backend.File) (*Voice, []string, error) {
	if err := content.CheckFiles(validateVoice(input), []content.Asset{imageAsset}, files).Err(); err != nil {
		return nil, nil, err
	}

	draft := *input
	draft.ID = ""
	if _, ok := files[FieldImage]; ok {
		draft.ImageURL = ""
	}

	created, err := service.repo.CreateVoice(context, &draft)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("voice_created", slog.String("voice_id", created.ID), slog.String("provider_voice_id", created.VoiceID))
	service.recorder.Record(context, audit.Event{Action: "voice.create", EntityType: "voice", EntityID: created.ID, Detail: created.DisplayName()})

	owner := content.Owner{Entity: "Voice", Param: "voiceId", ID: created.ID}
	urls, warnings := content.UploadAssets(context, service.repo, owner, []content.Asset{imageAsset}, files)
	imageURL, ok := urls[FieldImage]
	if !ok {
		return created, warnings, nil
	}

	patched, err := service.repo.PatchVoice(context, created.ID, map[string]any{FieldImageURL: imageURL})
	if err != nil {
		service.logger.Warn("voice_image_attach_failed", slog.String("voice_id", created.ID), slog.Any("error", err))
		return created, append(warnings, content.AttachWarning("Voice")), nil
	}

	return patched, warnings, nil
}

func (service *Service) UpdateVoice(context context.Context, id string, input *Voice, files map[string]*backend.File) (*Voice, error) {
	if err := content.CheckFiles(validateVoice(input), []content.Asset{imageAsset}, files).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	if image, ok := files[FieldImage]; ok {
		target := backend.UploadTarget{Kind: imageAsset.Kind, OwnerParam: "voiceId", OwnerID: id, AssetType: imageAsset.Type}
		imageURL, err := service.repo.UploadAsset(context, target, image)
		if err != nil {
			return nil, err
		}
		input.ImageURL = imageURL
	}

	updated, err := service.repo.UpdateVoice(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("voice_updated", slog.String("voice_id", id))
	service.recorder.Record(context, audit.Event{Action: "voice.update", EntityType: "voice", EntityID: id})
	return updated, nil
}

// ToggleVoice flips the enable or premium flag with a single PATCH.
func (service *Service) ToggleVoice(context context.Context, id string, toggle Toggle) (*Voice, error) {
	if toggle.Flag != FlagEnabled && toggle.Flag != FlagPremium {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldFlag,
			Message: "Must be one of: " + FlagEnabled + ", " + FlagPremium,
		})
	}

	updated, err := service.repo.PatchVoice(context, id, map[string]any{toggle.Flag: toggle.Value})
	if err != nil {
		return nil, err
	}

	service.logger.Info("voice_toggled", slog.String("voice_id", id), slog.String("flag", toggle.Flag), slog.Bool("value", toggle.Value))
	service.recorder.Record(context, audit.Event{Action: "voice.toggle", EntityType: "voice", EntityID: id, Detail: toggle.Flag})
	return updated, nil
}

func (service *Service) DeleteVoice(context context.Context, id string) error {
	if err := service.repo.DeleteVoice(context, id); err != nil {
		return err
	}

	service.logger.Warn("voice_deleted", slog.String("voice_id", id))
	service.recorder.Record(context, audit.Event{Action: "voice.delete", EntityType: "voice", EntityID: id})
	return nil
}

func validateVoice(voice *Voice) *validate.Validator {
	voice.VoiceID = strings.TrimSpace(voice.VoiceID)
	if voice.Name == "" {
		voice.Name = voice.CustomName
	}

	validator := &validate.Validator{}
	validator.Required(FieldVoiceID, voice.VoiceID)
	validator.Required(FieldName, voice.Name).MaxLen(FieldName, voice.Name, 100)
	validator.URL(FieldImageURL, voice.ImageURL)
	return validator
}
