package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/grading"
)

type schemeRepository struct {
	db *table[grading.Scheme]
}

var _ grading.Repository = (*schemeRepository)(nil) // interface compliance check

func NewSchemeRepository(db *DB) grading.Repository {
	return &schemeRepository{db: db.schemes}
}

// taken reports whether another scheme uses the department, level and semester of sch.
func (repo *schemeRepository) taken(sch grading.Scheme) bool {
	_, ok := repo.db.find(func(s grading.Scheme) bool {
		return s.ID != sch.ID &&
			s.DepartmentID == sch.DepartmentID &&
			s.Level == sch.Level &&
			s.SemesterID == sch.SemesterID
	})
	return ok
}

func (repo *schemeRepository) CreateScheme(_ context.Context, sch grading.Scheme) (grading.Scheme, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.taken(sch) {
		return grading.Scheme{}, grading.ErrSchemeExists
	}
	sch.ID = core.NewID()
	repo.db.insert(sch.ID, sch)
	return sch, nil
}

func (repo *schemeRepository) QuerySchemes(_ context.Context, filter *grading.QueryFilter) ([]grading.Scheme, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var keep func(grading.Scheme) bool
	if filter != nil {
		keep = func(s grading.Scheme) bool {
			return (filter.DepartmentID == "" || s.DepartmentID == filter.DepartmentID) &&
				(filter.Level == 0 || s.Level == filter.Level) &&
				(filter.SemesterID == "" || s.SemesterID == filter.SemesterID)
		}
	}
	return repo.db.filter(keep), nil
}

func (repo *schemeRepository) GetScheme(_ context.Context, id string) (grading.Scheme, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sch, ok := repo.db.get(id); ok {
		return sch, nil
	}
	return grading.Scheme{}, grading.ErrNotFound
}

func (repo *schemeRepository) UpdateScheme(_ context.Context, sch grading.Scheme) (grading.Scheme, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.taken(sch) {
		return grading.Scheme{}, grading.ErrSchemeExists
	}
	if !repo.db.set(sch.ID, sch) {
		return grading.Scheme{}, grading.ErrNotFound
	}
	return sch, nil
}
