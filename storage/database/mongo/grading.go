package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/grading"
)

type schemeRepository struct {
	schemes collection[grading.Scheme]
}

var _ grading.Repository = (*schemeRepository)(nil) // interface compliance check

func NewSchemeRepository(db *DB) grading.Repository {
	return &schemeRepository{schemes: newCollection[grading.Scheme](db, schemesCollection, grading.ErrNotFound)}
}

func (repo *schemeRepository) CreateScheme(ctx context.Context, sch grading.Scheme) (grading.Scheme, error) {
	sch.ID = core.NewID()
	if err := repo.schemes.insert(ctx, sch); err != nil {
		if err == errDuplicate {
			return grading.Scheme{}, grading.ErrSchemeExists
		}
		return grading.Scheme{}, err
	}
	return sch, nil
}

func (repo *schemeRepository) QuerySchemes(ctx context.Context, filter *grading.QueryFilter) ([]grading.Scheme, error) {
	query := bson.M{}
	if filter != nil {
		query = levelFilter(filter.DepartmentID, filter.Level, filter.SemesterID)
	}
	return repo.schemes.find(ctx, query)
}

func (repo *schemeRepository) GetScheme(ctx context.Context, id string) (grading.Scheme, error) {
	return repo.schemes.findOne(ctx, byID(id))
}

func (repo *schemeRepository) UpdateScheme(ctx context.Context, sch grading.Scheme) (grading.Scheme, error) {
	if err := repo.schemes.replace(ctx, sch.ID, sch); err != nil {
		if err == errDuplicate {
			return grading.Scheme{}, grading.ErrSchemeExists
		}
		return grading.Scheme{}, err
	}
	return sch, nil
}
