package book

import (
	"cmp"
	"context"
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

// ListBooks fetches every book matching the status filter and derives the table view.
func (service *Service) ListBooks(context context.Context, query url.Values) (listview.View[*Book], pagination.Meta, error) {
	books, err := service.repo.ListBooks(context, listview.ParseFilter(query).Query())
	if err != nil {
		return listview.View[*Book]{}, pagination.Meta{}, err
	}

	view, meta := listview.Build(books, query, listSpec)
	return view, meta, nil
}

func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repo.GetBook(context, id)
}

// CreateBook saves a new book, then uploads its cover tagged with the new id and
// attaches the returned URL. A cover failure leaves the book saved without a cover
// and is reported in the returned warnings.
func (service *Service) CreateBook(context context.Context, input *Book, files map[string]*backend.File) (*Book, []string, error) {
	cover := files[FieldCover]

	validator := validateBook(input)
	validator.Custom(FieldCover, cover == nil && input.CoverURL == "", "A cover image is required")
	content.CheckFiles(validator, []content.Asset{coverAsset}, files)
	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	draft := *input
	draft.ID = ""
	draft.Status = draft.Status.OrDraft()
	draft.SeriesBooks = ordered(draft.SeriesBooks)
	if cover != nil {
		draft.CoverURL = ""
	}

	created, err := service.repo.CreateBook(context, &draft)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("book_created", slog.String("book_id", created.ID), slog.String("title", created.Title))
	service.recorder.Record(context, audit.Event{Action: "book.create", EntityType: "book", EntityID: created.ID, Detail: created.Title})

	if cover == nil {
		return created, nil, nil
	}

	owner := content.Owner{Entity: "Book", Param: "bookId", ID: created.ID}
	urls, warnings := content.UploadAssets(context, service.repo, owner, []content.Asset{coverAsset}, files)

	coverURL, uploaded := urls[FieldCover]
	if !uploaded {
		return created, warnings, nil
	}

	created.CoverURL = coverURL
	updated, err := service.repo.UpdateBook(context, created.ID, created)
	if err != nil {
		service.logger.Warn("book_cover_attach_failed", slog.String("book_id", created.ID), slog.Any("error", err))
		created.CoverURL = ""
		return created, append(warnings, content.AttachWarning("Book")), nil
	}

	return updated, warnings, nil
}

// UpdateBook replaces a book. A new cover is uploaded first; if that fails nothing is saved.
func (service *Service) UpdateBook(context context.Context, id string, input *Book, files map[string]*backend.File) (*Book, error) {
	if err := content.CheckFiles(validateBook(input), []content.Asset{coverAsset}, files).Err(); err != nil {
		return nil, err
	}

	input.ID = id
	input.Status = input.Status.OrDraft()
	input.SeriesBooks = ordered(input.SeriesBooks)

	if cover, ok := files[FieldCover]; ok {
		target := backend.UploadTarget{Kind: coverAsset.Kind, OwnerParam: "bookId", OwnerID: id, AssetType: coverAsset.Type}
		coverURL, err := service.repo.UploadAsset(context, target, cover)
		if err != nil {
			return nil, err
		}
		input.CoverURL = coverURL
	}

	updated, err := service.repo.UpdateBook(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.String("book_id", id))
	service.recorder.Record(context, audit.Event{Action: "book.update", EntityType: "book", EntityID: id})
	return updated, nil
}

func (service *Service) DeleteBook(context context.Context, id string) error {
	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	service.recorder.Record(context, audit.Event{Action: "book.delete", EntityType: "book", EntityID: id})
	return nil
}

// MoveSeriesBook swaps a series volume with its neighbour and saves the renumbered series.
func (service *Service) MoveSeriesBook(context context.Context, id string, move content.MoveInput) (*Book, error) {
	direction, err := move.Parse(true)
	if err != nil {
		return nil, err
	}

	book, err := service.repo.GetBook(context, id)
	if err != nil {
		return nil, err
	}

	series := ordered(book.SeriesBooks)
	index := reorder.IndexFunc(series, func(volume SeriesBook) bool { return volume.BookID == move.ItemID })
	if index < 0 {
		return nil, apperr.NotFound("Series book")
	}

	series = reorder.Move(series, index, direction)
	reorder.Renumber(series, func(volume *SeriesBook, position int) { volume.Order = position })
	book.SeriesBooks = series

	updated, err := service.repo.UpdateBook(context, id, book)
	if err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.Event{Action: "book.series.move", EntityType: "book", EntityID: id, Detail: move.ItemID + " " + string(direction)})
	return updated, nil
}

func validateBook(book *Book) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 200)
	validator.Required(FieldAuthor, book.Author).MaxLen(FieldAuthor, book.Author, 200)
	validator.MaxLen(FieldDescription, book.Description, 5000)

	if book.Status != "" {
		validator.OneOf(FieldStatus, string(book.Status), content.Statuses...)
	}
	validator.URL(FieldCoverURL, book.CoverURL)

	seen := make(map[string]bool, len(book.SeriesBooks))
	for _, volume := range book.SeriesBooks {
		validator.Custom(FieldSeriesBooks, volume.BookID == "", "Every series entry needs a bookId")
		validator.Custom(FieldSeriesBooks, seen[volume.BookID], "A book can appear only once in a series")
		seen[volume.BookID] = true
	}

	return validator
}

// ordered returns volumes sorted by Order with positions rewritten densely.
func ordered(volumes []SeriesBook) []SeriesBook {
	sorted := slices.Clone(volumes)
	slices.SortStableFunc(sorted, func(a, b SeriesBook) int { return cmp.Compare(a.Order, b.Order) })
	reorder.Renumber(sorted, func(volume *SeriesBook, position int) { volume.Order = position })
	return sorted
}
