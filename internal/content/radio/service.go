package radio

import (
	"cmp"
	"context"
	"log/slog"
	"net/url"
	"slices"
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/internal/platform/validate"
	"github.com/taibuivan/tinytales/pkg/listview"
	"github.com/taibuivan/tinytales/pkg/pagination"
	"github.com/taibuivan/tinytales/pkg/reorder"
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

// # Tracks

func (service *Service) ListTracks(context context.Context, query url.Values) (listview.View[*Track], pagination.Meta, error) {
	tracks, err := service.repo.ListTracks(context, url.Values{})
	if err != nil {
		return listview.View[*Track]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(tracks, query, trackSpec)
	return view, meta, nil
}

func (service *Service) GetTrack(context context.Context, id string) (*Track, error) {
	return service.repo.GetTrack(context, id)
}

// CreateTrack saves the track at the end of the rotation, uploads its audio and
// PATCHes audioUrl onto it.
func (service *Service) CreateTrack(context context.Context, input *Track, files map[string]*backend.File) (*Track, []string, error) {
	_, hasAudio := files[FieldAudio]

	validator := validateTrack(input)
	validator.Custom(FieldAudio, !hasAudio && input.AudioURL == "", "An audio file is required")
	content.CheckFiles(validator, []content.Asset{audioAsset}, files)
	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	existing, err := service.repo.ListTracks(context, url.Values{})
	if err != nil {
		return nil, nil, err
	}

	draft := *input
	draft.ID = ""
	draft.Order = nextOrder(existing)
	if hasAudio {
		draft.AudioURL = ""
	}

	created, err := service.repo.CreateTrack(context, &draft)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("radio_track_created", slog.String("track_id", created.ID), slog.Int("order", created.Order))
	service.recorder.Record(context, audit.Event{Action: "radio.track.create", EntityType: "radio_track", EntityID: created.ID, Detail: created.Title})

	owner := content.Owner{Entity: "Radio track", Param: "trackId", ID: created.ID}
	urls, warnings := content.UploadAssets(context, service.repo, owner, []content.Asset{audioAsset}, files)
	audioURL, ok := urls[FieldAudio]
	if !ok {
		return created, warnings, nil
	}

	patched, err := service.repo.PatchTrack(context, created.ID, map[string]any{FieldAudioURL: audioURL})
	if err != nil {
		service.logger.Warn("radio_track_audio_attach_failed", slog.String("track_id", created.ID), slog.Any("error", err))
		return created, append(warnings, content.AttachWarning("Radio track")), nil
	}

	return patched, warnings, nil
}

func (service *Service) UpdateTrack(context context.Context, id string, input *Track, files map[string]*backend.File) (*Track, error) {
	if err := content.CheckFiles(validateTrack(input), []content.Asset{audioAsset}, files).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	if audio, ok := files[FieldAudio]; ok {
		target := backend.UploadTarget{Kind: audioAsset.Kind, OwnerParam: "trackId", OwnerID: id, AssetType: audioAsset.Type}
		audioURL, err := service.repo.UploadAsset(context, target, audio)
		if err != nil {
			return nil, err
		}
		input.AudioURL = audioURL
	}

	updated, err := service.repo.UpdateTrack(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("radio_track_updated", slog.String("track_id", id))
	service.recorder.Record(context, audit.Event{Action: "radio.track.update", EntityType: "radio_track", EntityID: id})
	return updated, nil
}

func (service *Service) DeleteTrack(context context.Context, id string) error {
	if err := service.repo.DeleteTrack(context, id); err != nil {
		return err
	}

	service.logger.Warn("radio_track_deleted", slog.String("track_id", id))
	service.recorder.Record(context, audit.Event{Action: "radio.track.delete", EntityType: "radio_track", EntityID: id})
	return nil
}

// MoveTrack exchanges the order of a track and its neighbour with two PATCHes.
// When any two tracks in the rotation share an order value, the whole rotation
// is renumbered positionally instead, so the result is a strict order. Returns
// the rotation in its new order.
func (service *Service) MoveTrack(context context.Context, move content.MoveInput) ([]*Track, error) {
	direction, err := move.Parse(true)
	if err != nil {
		return nil, err
	}

	tracks, err := service.repo.ListTracks(context, url.Values{})
	if err != nil {
		return nil, err
	}
	tracks = byOrder(tracks)

	index := reorder.IndexFunc(tracks, func(track *Track) bool { return track.ID == move.ItemID })
	if index < 0 {
		return nil, apperr.NotFound("Radio track")
	}

	neighbor := reorder.Neighbor(len(tracks), index, direction)
	if neighbor < 0 {
		return tracks, nil
	}

	result := reorder.Move(tracks, index, direction)
	if sharesOrder(tracks) {
		err = service.renumberTracks(context, result)
	} else {
		err = service.swapTracks(context, tracks[index], tracks[neighbor])
	}
	if err != nil {
		return nil, err
	}

	service.logger.Info("radio_track_moved", slog.String("track_id", move.ItemID), slog.String("direction", string(direction)))
	service.recorder.Record(context, audit.Event{Action: "radio.track.move", EntityType: "radio_track", EntityID: move.ItemID, Detail: string(direction)})
	return result, nil
}

func (service *Service) swapTracks(context context.Context, moved, other *Track) error {
	movedOrder, otherOrder := other.Order, moved.Order

	if _, err := service.repo.PatchTrack(context, moved.ID, map[string]any{"order": movedOrder}); err != nil {
		return err
	}
	if _, err := service.repo.PatchTrack(context, other.ID, map[string]any{"order": otherOrder}); err != nil {
		service.logger.Error("radio_track_move_incomplete",
			slog.String("moved_id", moved.ID),
			slog.String("neighbor_id", other.ID),
			slog.Any("error", err),
		)
		return err
	}

	moved.Order, other.Order = movedOrder, otherOrder
	return nil
}

// renumberTracks PATCHes every track whose order differs from its position.
func (service *Service) renumberTracks(context context.Context, tracks []*Track) error {
	for position, track := range tracks {
		if track.Order == position {
			continue
		}
		if _, err := service.repo.PatchTrack(context, track.ID, map[string]any{"order": position}); err != nil {
			service.logger.Error("radio_track_renumber_incomplete",
				slog.String("track_id", track.ID),
				slog.Int("position", position),
				slog.Any("error", err),
			)
			return err
		}
		track.Order = position
	}
	return nil
}

func sharesOrder(tracks []*Track) bool {
	seen := make(map[int]bool, len(tracks))
	for _, track := range tracks {
		if seen[track.Order] {
			return true
		}
		seen[track.Order] = true
	}
	return false
}

// # Segments

func (service *Service) ListSegments(context context.Context, query url.Values) (listview.View[*Segment], pagination.Meta, error) {
	segments, err := service.repo.ListSegments(context)
	if err != nil {
		return listview.View[*Segment]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(segments, query, segmentSpec)
	return view, meta, nil
}

func (service *Service) GetSegment(context context.Context, id string) (*Segment, error) {
	return service.repo.GetSegment(context, id)
}

func (service *Service) CreateSegment(context context.Context, input *Segment) (*Segment, error) {
	if err := validateSegment(input).Err(); err != nil {
		return nil, err
	}

	input.ID = ""
	created, err := service.repo.CreateSegment(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("radio_segment_created", slog.String("segment_id", created.ID))
	service.recorder.Record(context, audit.Event{Action: "radio.segment.create", EntityType: "radio_segment", EntityID: created.ID, Detail: created.Name})
	return created, nil
}

func (service *Service) UpdateSegment(context context.Context, id string, input *Segment) (*Segment, error) {
	if err := validateSegment(input).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	updated, err := service.repo.UpdateSegment(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("radio_segment_updated", slog.String("segment_id", id))
	service.recorder.Record(context, audit.Event{Action: "radio.segment.update", EntityType: "radio_segment", EntityID: id})
	return updated, nil
}

func (service *Service) DeleteSegment(context context.Context, id string) error {
	if err := service.repo.DeleteSegment(context, id); err != nil {
		return err
	}

	service.logger.Warn("radio_segment_deleted", slog.String("segment_id", id))
	service.recorder.Record(context, audit.Event{Action: "radio.segment.delete", EntityType: "radio_segment", EntityID: id})
	return nil
}

// # Helpers

func byOrder(tracks []*Track) []*Track {
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, func(a, b *Track) int { return cmp.Compare(a.Order, b.Order) })
	return sorted
}

func nextOrder(tracks []*Track) int {
	next := 0
	for _, track := range tracks {
		next = max(next, track.Order+1)
	}
	return next
}

func validateTrack(track *Track) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, track.Title).MaxLen(FieldTitle, track.Title, 200)
	validator.URL(FieldAudioURL, track.AudioURL)
	return validator
}

func validateSegment(segment *Segment) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldName, segment.Name).MaxLen(FieldName, segment.Name, 80)

	start, startErr := time.Parse(clockLayout, segment.StartTime)
	end, endErr := time.Parse(clockLayout, segment.EndTime)
	validator.Custom(FieldStartTime, startErr != nil, "Must be a time such as 07:30")
	validator.Custom(FieldEndTime, endErr != nil, "Must be a time such as 07:30")
	if startErr == nil && endErr == nil {
		validator.Custom(FieldEndTime, !end.After(start), "Must be after the start time")
	}

	return validator
}
