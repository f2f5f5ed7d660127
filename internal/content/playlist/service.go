package playlist

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

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

func (service *Service) ListPlaylists(context context.Context, query url.Values) (listview.View[*Playlist], pagination.Meta, error) {
	playlists, err := service.repo.ListPlaylists(context, listview.ParseFilter(query).Query())
	if err != nil {
		return listview.View[*Playlist]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(playlists, query, listSpec)
	return view, meta, nil
}

func (service *Service) GetPlaylist(context context.Context, id string) (*Playlist, error) {
	playlist, err := service.repo.GetPlaylist(context, id)
	if err != nil {
		return nil, err
	}
	playlist.Items = byOrder(playlist.Items)
	return playlist, nil
}

// CreatePlaylist saves the playlist with its tracks, then uploads the cover and each
// track's audio tagged with the new id and attaches the URLs with one PATCH.
// Upload or attach failures become warnings; the playlist stays saved.
func (service *Service) CreatePlaylist(context context.Context, input *Playlist, files map[string]*backend.File) (*Playlist, []string, error) {
	input.Items = positional(input.Items)
	if err := validatePlaylist(input, files).Err(); err != nil {
		return nil, nil, err
	}

	draft := *input
	draft.ID = ""
	draft.Status = draft.Status.OrDraft()
	draft.Items = slices.Clone(input.Items)
	if _, ok := files[FieldCover]; ok {
		draft.CoverURL = ""
	}

	assets := []content.Asset{coverAsset}
	for position := range draft.Items {
		if _, ok := files[TrackField(position)]; ok {
			draft.Items[position].AudioURL = ""
		}
		assets = append(assets, trackAsset(position, draft.Items[position].Title))
	}

	created, err := service.repo.CreatePlaylist(context, &draft)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("playlist_created", slog.String("playlist_id", created.ID), slog.Int("tracks", len(draft.Items)))
	service.recorder.Record(context, audit.Event{Action: "playlist.create", EntityType: "playlist", EntityID: created.ID, Detail: created.Title})

	owner := content.Owner{Entity: "Playlist", Param: "playlistId", ID: created.ID}
	urls, warnings := content.UploadAssets(context, service.repo, owner, assets, files)
	if len(urls) == 0 {
		return created, warnings, nil
	}

	patch := AssetPatch{CoverURL: urls[FieldCover]}

	// The backend echoes the tracks with their ids; fall back to the draft when it does not.
	tracks := byOrder(created.Items)
	if len(tracks) != len(draft.Items) {
		tracks = slices.Clone(draft.Items)
	}
	attachTracks := false
	for position := range tracks {
		if audioURL, ok := urls[TrackField(position)]; ok {
			tracks[position].AudioURL = audioURL
			attachTracks = true
		}
	}
	if attachTracks {
		patch.Items = tracks
	}

	patched, err := service.repo.PatchPlaylist(context, created.ID, patch)
	if err != nil {
		service.logger.Warn("playlist_assets_attach_failed", slog.String("playlist_id", created.ID), slog.Any("error", err))
		return created, append(warnings, content.AttachWarning("Playlist")), nil
	}

	return patched, warnings, nil
}

// UpdatePlaylist replaces a playlist. New files are uploaded first and any upload
// failure aborts before the playlist is touched.
func (service *Service) UpdatePlaylist(context context.Context, id string, input *Playlist, files map[string]*backend.File) (*Playlist, error) {
	input.ID = id
	input.Status = input.Status.OrDraft()
	input.Items = positional(input.Items)

	if err := validatePlaylist(input, files).Err(); err != nil {
		return nil, err
	}

	if cover, ok := files[FieldCover]; ok {
		coverURL, err := service.upload(context, id, coverAsset, cover)
		if err != nil {
			return nil, err
		}
		input.CoverURL = coverURL
	}

	for position := range input.Items {
		audio, ok := files[TrackField(position)]
		if !ok {
			continue
		}
		audioURL, err := service.upload(context, id, trackAsset(position, input.Items[position].Title), audio)
		if err != nil {
			return nil, err
		}
		input.Items[position].AudioURL = audioURL
	}

	updated, err := service.repo.UpdatePlaylist(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("playlist_updated", slog.String("playlist_id", id))
	service.recorder.Record(context, audit.Event{Action: "playlist.update", EntityType: "playlist", EntityID: id})
	return updated, nil
}

func (service *Service) DeletePlaylist(context context.Context, id string) error {
	if err := service.repo.DeletePlaylist(context, id); err != nil {
		return err
	}

	service.logger.Warn("playlist_deleted", slog.String("playlist_id", id))
	service.recorder.Record(context, audit.Event{Action: "playlist.delete", EntityType: "playlist", EntityID: id})
	return nil
}

func (service *Service) DeleteTrack(context context.Context, id, trackID string) error {
	if err := service.repo.DeleteTrack(context, id, trackID); err != nil {
		return err
	}

	service.logger.Warn("playlist_track_deleted", slog.String("playlist_id", id), slog.String("track_id", trackID))
	service.recorder.Record(context, audit.Event{Action: "playlist.track.delete", EntityType: "playlist", EntityID: id, Detail: trackID})
	return nil
}

// MoveTrack swaps a track with its neighbour and saves the renumbered playlist.
func (service *Service) MoveTrack(context context.Context, id string, move content.MoveInput) (*Playlist, error) {
	direction, err := move.Parse(true)
	if err != nil {
		return nil, err
	}

	playlist, err := service.repo.GetPlaylist(context, id)
	if err != nil {
		return nil, err
	}

	tracks := byOrder(playlist.Items)
	index := reorder.IndexFunc(tracks, func(track Track) bool { return track.ID == move.ItemID })
	if index < 0 {
		return nil, apperr.NotFound("Track")
	}

	playlist.Items = positional(reorder.Move(tracks, index, direction))

	updated, err := service.repo.UpdatePlaylist(context, id, playlist)
	if err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.Event{Action: "playlist.track.move", EntityType: "playlist", EntityID: id, Detail: move.ItemID + " " + string(direction)})
	return updated, nil
}

func (service *Service) upload(context context.Context, id string, asset content.Asset, file *backend.File) (string, error) {
	target := backend.UploadTarget{Kind: asset.Kind, OwnerParam: "playlistId", OwnerID: id, AssetType: asset.Type}
	return service.repo.UploadAsset(context, target, file)
}

func validatePlaylist(playlist *Playlist, files map[string]*backend.File) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, playlist.Title).MaxLen(FieldTitle, playlist.Title, 200)
	if playlist.Type != "" {
		validator.OneOf(FieldType, playlist.Type, Types...)
	}
	if playlist.Status != "" {
		validator.OneOf(FieldStatus, string(playlist.Status), content.Statuses...)
	}
	validator.URL(FieldCoverURL, playlist.CoverURL)

	validator.Custom(FieldItems, len(playlist.Items) == 0, "Add at least one track")
	assets := []content.Asset{coverAsset}
	for position, track := range playlist.Items {
		field := fmt.Sprintf("%s[%d]", FieldItems, position)
		validator.Required(field+".title", track.Title)

		_, hasFile := files[TrackField(position)]
		validator.Custom(field+".audio", track.AudioURL == "" && !hasFile, "Each track needs an audio file")
		assets = append(assets, trackAsset(position, track.Title))
	}

	return content.CheckFiles(validator, assets, files)
}

// positional rewrites Order to match the slice order.
func positional(tracks []Track) []Track {
	renumbered := slices.Clone(tracks)
	reorder.Renumber(renumbered, func(track *Track, position int) { track.Order = position })
	return renumbered
}

// byOrder returns tracks sorted by their stored Order.
func byOrder(tracks []Track) []Track {
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, func(a, b Track) int { return cmp.Compare(a.Order, b.Order) })
	return sorted
}
