package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/resource"
)

type resourceRepository struct {
	tables map[resource.Kind]*table[resource.Resource]
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *DB) resource.Repository {
	return &resourceRepository{tables: db.resources}
}

func (repo *resourceRepository) CreateResource(_ context.Context, kind resource.Kind, res resource.Resource) (resource.Resource, error) {
	tbl := repo.tables[kind]
	tbl.Lock()
	defer tbl.Unlock()

	res.ID = core.NewID()
	tbl.insert(res.ID, res)
	return res, nil
}

func (repo *resourceRepository) QueryResources(_ context.Context, kind resource.Kind, status string) ([]resource.Resource, error) {
	tbl := repo.tables[kind]
	tbl.RLock()
	defer tbl.RUnlock()

	return tbl.filter(func(r resource.Resource) bool {
		return status == "" || r.PublishedStatus == status
	}), nil
}

func (repo *resourceRepository) GetResource(_ context.Context, kind resource.Kind, id string) (resource.Resource, error) {
	tbl := repo.tables[kind]
	tbl.RLock()
	defer tbl.RUnlock()

	if res, ok := tbl.get(id); ok {
		return res, nil
	}
	return resource.Resource{}, resource.ErrNotFound(kind)
}

func (repo *resourceRepository) SetResourceStatus(_ context.Context, kind resource.Kind, id, status string) (resource.Resource, error) {
	tbl := repo.tables[kind]
	tbl.Lock()
	defer tbl.Unlock()

	res, ok := tbl.get(id)
	if !ok {
		return resource.Resource{}, resource.ErrNotFound(kind)
	}
	res.PublishedStatus = status
	res.UpdatedAt = core.Now()
	tbl.set(id, res)
	return res, nil
}

func (repo *resourceRepository) DeleteResource(_ context.Context, kind resource.Kind, id string) error {
	tbl := repo.tables[kind]
	tbl.Lock()
	defer tbl.Unlock()

	if !tbl.delete(id) {
		return resource.ErrNotFound(kind)
	}
	return nil
}
