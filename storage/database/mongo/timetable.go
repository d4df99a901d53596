package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/timetable"
)

type timetableRepository struct {
	timetables collection[timetable.Timetable]
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{
		timetables: newCollection[timetable.Timetable](db, timetablesCollection, timetable.ErrNotFound),
	}
}

func keyFilter(key timetable.Key) bson.M {
	return bson.M{"department_id": key.DepartmentID, "level": key.Level, "semester_id": key.SemesterID}
}

// UpsertTimetable replaces the entries of the key's timetable. Two concurrent first inserts
// collide on the unique key index: the loser retries as an update, so the last write wins.
func (repo *timetableRepository) UpsertTimetable(ctx context.Context, tt timetable.Timetable) (timetable.Timetable, error) {
	update := bson.M{
		"$set":         bson.M{"entries": tt.Entries, "updated_at": tt.UpdatedAt},
		"$setOnInsert": bson.M{"_id": core.NewID(), "created_at": tt.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved timetable.Timetable
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = repo.timetables.FindOneAndUpdate(ctx, keyFilter(tt.Key()), update, opts).Decode(&saved)
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		return timetable.Timetable{}, errors.Wrap(err, "upserting timetable")
	}
	return saved, nil
}

func (repo *timetableRepository) GetTimetable(ctx context.Context, key timetable.Key) (timetable.Timetable, error) {
	return repo.timetables.findOne(ctx, keyFilter(key))
}

func (repo *timetableRepository) GetTimetableByID(ctx context.Context, id string) (timetable.Timetable, error) {
	return repo.timetables.findOne(ctx, byID(id))
}

func (repo *timetableRepository) QueryTimetables(ctx context.Context) ([]timetable.Timetable, error) {
	return repo.timetables.find(ctx, nil)
}
