package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/resource"
)

type resourceRepository struct {
	colls map[resource.Kind]collection[resource.Resource]
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *DB) resource.Repository {
	return &resourceRepository{
		colls: map[resource.Kind]collection[resource.Resource]{
			resource.KindBook:  newCollection[resource.Resource](db, booksCollection, resource.ErrBookNotFound),
			resource.KindVideo: newCollection[resource.Resource](db, videosCollection, resource.ErrVideoNotFound),
		},
	}
}

func (repo *resourceRepository) CreateResource(ctx context.Context, kind resource.Kind, res resource.Resource) (resource.Resource, error) {
	res.ID = core.NewID()
	if err := repo.colls[kind].insert(ctx, res); err != nil {
		return resource.Resource{}, err
	}
	return res, nil
}

func (repo *resourceRepository) QueryResources(ctx context.Context, kind resource.Kind, status string) ([]resource.Resource, error) {
	query := bson.M{}
	if status != "" {
		query["published_status"] = status
	}
	return repo.colls[kind].find(ctx, query)
}

func (repo *resourceRepository) GetResource(ctx context.Context, kind resource.Kind, id string) (resource.Resource, error) {
	return repo.colls[kind].findOne(ctx, byID(id))
}

func (repo *resourceRepository) SetResourceStatus(ctx context.Context, kind resource.Kind, id, status string) (resource.Resource, error) {
	return repo.colls[kind].set(ctx, id, bson.M{"published_status": status, "updated_at": core.Now()})
}

func (repo *resourceRepository) DeleteResource(ctx context.Context, kind resource.Kind, id string) error {
	return repo.colls[kind].delete(ctx, id)
}
