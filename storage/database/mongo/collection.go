package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errDuplicate = errors.New("duplicate key")

// byCreation lists documents the way they were inserted.
var byCreation = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// collection wraps a mongo.Collection of T documents, reporting notFound for missing ones.
type collection[T any] struct {
	*mongo.Collection
	notFound error
}

func newCollection[T any](db *DB, name string, notFound error) collection[T] {
	return collection[T]{Collection: db.Collection(name), notFound: notFound}
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func (c collection[T]) insert(ctx context.Context, doc T) error {
	if _, err := c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errDuplicate
		}
		return errors.Wrapf(err, "inserting into %s", c.Name())
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter interface{}) (T, error) {
	var doc T
	if err := c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return doc, c.notFound
		}
		return doc, errors.Wrapf(err, "finding in %s", c.Name())
	}
	return doc, nil
}

func (c collection[T]) find(ctx context.Context, filter interface{}, sort ...bson.D) ([]T, error) {
	opts := options.Find().SetSort(byCreation)
	if len(sort) > 0 && len(sort[0]) > 0 {
		opts.SetSort(sort[0])
	}
	if filter == nil {
		filter = bson.M{}
	}

	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", c.Name())
	}
	docs := make([]T, 0)
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", c.Name())
	}
	return docs, nil
}

func (c collection[T]) findIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (c collection[T]) replace(ctx context.Context, id string, doc T) error {
	res, err := c.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errDuplicate
		}
		return errors.Wrapf(err, "replacing in %s", c.Name())
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

// set updates the given fields of the document id and returns it updated.
func (c collection[T]) set(ctx context.Context, id string, fields bson.M) (T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := c.FindOneAndUpdate(ctx, byID(id), bson.M{"$set": fields}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return doc, c.notFound
		}
		return doc, errors.Wrapf(err, "updating %s", c.Name())
	}
	return doc, nil
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	res, err := c.DeleteOne(ctx, byID(id))
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", c.Name())
	}
	if res.DeletedCount == 0 {
		return c.notFound
	}
	return nil
}
