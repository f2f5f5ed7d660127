package lesson

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type BackendRepository struct {
	client  *backend.Client
	lessons *backend.Resource[Lesson]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{
		client:  client,
		lessons: backend.NewResource[Lesson](client, "/api/lessons"),
	}
}

func (repository *BackendRepository) ListLessons(context context.Context, query url.Values) ([]*Lesson, error) {
	return repository.lessons.List(context, query)
}

func (repository *BackendRepository) GetLesson(context context.Context, id string) (*Lesson, error) {
	return repository.lessons.Get(context, id)
}

func (repository *BackendRepository) CreateLesson(context context.Context, lesson *Lesson) (*Lesson, error) {
	return repository.lessons.Create(context, lesson)
}

func (repository *BackendRepository) UpdateLesson(context context.Context, id string, lesson *Lesson) (*Lesson, error) {
	return repository.lessons.Replace(context, id, lesson)
}

func (repository *BackendRepository) PatchLesson(context context.Context, id string, patch AssetPatch) (*Lesson, error) {
	return repository.lessons.Patch(context, id, patch)
}

func (repository *BackendRepository) DeleteLesson(context context.Context, id string) error {
	return repository.lessons.Delete(context, id)
}

func (repository *BackendRepository) UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	return repository.client.Upload(context, target, file)
}
