package resource

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/course"
	"github.com/PrimotionStudio/z1academic/core/user"
)

var (
	// errors
	ErrBookNotFound  = core.NewNotFoundError("book")
	ErrVideoNotFound = core.NewNotFoundError("video")
	ErrEmptyFile     = errors.New("file is empty")
	errInvalidInput  = errors.New("invalid input")
)

// ErrNotFound returns the not found error matching kind.
func ErrNotFound(kind Kind) error {
	if kind == KindVideo {
		return ErrVideoNotFound
	}
	return ErrBookNotFound
}

type (
	Repository interface {
		CreateResource(ctx context.Context, kind Kind, res Resource) (Resource, error)
		QueryResources(ctx context.Context, kind Kind, status string) ([]Resource, error)
		GetResource(ctx context.Context, kind Kind, id string) (Resource, error)
		SetResourceStatus(ctx context.Context, kind Kind, id, status string) (Resource, error)
		DeleteResource(ctx context.Context, kind Kind, id string) error
	}

	// FileStore keeps uploaded files and serves them at the returned URL.
	FileStore interface {
		Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (url string, err error)
	}

	References interface {
		GetDepartment(ctx context.Context, id string) (academic.Department, error)
	}

	Courses interface {
		GetByID(ctx context.Context, id string) (course.Course, error)
	}

	Users interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	Service struct {
		repo      Repository
		files     FileStore
		academics References
		courses   Courses
		users     Users
	}
)

func NewService(repo Repository, files FileStore, academics References, courses Courses, users Users) *Service {
	return &Service{repo: repo, files: files, academics: academics, courses: courses, users: users}
}

func refErr(err error, field string) error {
	if core.IsNotFound(err) {
		return core.NewFieldError(field, errors.Cause(err).Error())
	}
	return errors.Wrapf(err, "checking %s", field)
}

// Create adds a book or a video. Admin created resources are published right away,
// requested ones (RequestedBy set) wait for review.
func (svc *Service) Create(ctx context.Context, kind Kind, in Input) (Resource, error) {
	res := Resource{
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		FileLink:         in.FileLink,
		CoverImage:       in.CoverImage,
		PublishedStatus:  StatusPublished,
		RequestedBy:      in.RequestedBy,
	}

	switch kind {
	case KindBook:
		if _, err := svc.academics.GetDepartment(ctx, in.DepartmentID); err != nil {
			return Resource{}, refErr(err, "department_id")
		}
		res.Author = in.Author
		res.DepartmentID = in.DepartmentID
	case KindVideo:
		if _, err := svc.courses.GetByID(ctx, in.CourseID); err != nil {
			return Resource{}, refErr(err, "course_id")
		}
		res.CourseID = in.CourseID
	default:
		return Resource{}, errors.Errorf("unknown resource kind %q", kind)
	}

	if in.RequestedBy != "" {
		if _, err := svc.users.GetByID(ctx, in.RequestedBy); err != nil {
			return Resource{}, refErr(err, "requested_by")
		}
		res.PublishedStatus = StatusUnpublished
	}

	now := core.Now()
	res.CreatedAt = now
	res.UpdatedAt = now
	return svc.repo.CreateResource(ctx, kind, res)
}

// Query lists the resources of kind with the given published status.
func (svc *Service) Query(ctx context.Context, kind Kind, status string) ([]Resource, error) {
	return svc.repo.QueryResources(ctx, kind, status)
}

func (svc *Service) GetByID(ctx context.Context, kind Kind, id string) (Resource, error) {
	if !core.IsID(id) {
		return Resource{}, ErrNotFound(kind)
	}
	return svc.repo.GetResource(ctx, kind, id)
}

func (svc *Service) SetStatus(ctx context.Context, kind Kind, res Resource, su StatusUpdate) (Resource, error) {
	return svc.repo.SetResourceStatus(ctx, kind, res.ID, su.PublishedStatus)
}

func (svc *Service) Delete(ctx context.Context, kind Kind, res Resource) error {
	return svc.repo.DeleteResource(ctx, kind, res.ID)
}

// Upload stores a file under a new random key keeping the extension of filename.
func (svc *Service) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (Upload, error) {
	if size == 0 {
		return Upload{}, core.NewFieldError("file", ErrEmptyFile.Error())
	}
	key := "uploads/" + uuid.New().String() + strings.ToLower(path.Ext(filename))
	url, err := svc.files.Put(ctx, key, r, size, contentType)
	if err != nil {
		return Upload{}, errors.Wrap(err, "storing file")
	}
	return Upload{Key: key, URL: url}, nil
}
