package lesson

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type Repository interface {
	ListLessons(context context.Context, query url.Values) ([]*Lesson, error)
	GetLesson(context context.Context, id string) (*Lesson, error)
	CreateLesson(context context.Context, lesson *Lesson) (*Lesson, error)
	UpdateLesson(context context.Context, id string, lesson *Lesson) (*Lesson, error)
	PatchLesson(context context.Context, id string, patch AssetPatch) (*Lesson, error)
	DeleteLesson(context context.Context, id string) error
	UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error)
}
