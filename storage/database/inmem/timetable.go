package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/timetable"
)

type timetableRepository struct {
	db *table[timetable.Timetable]
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db.timetables}
}

func (repo *timetableRepository) UpsertTimetable(_ context.Context, tt timetable.Timetable) (timetable.Timetable, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := tt.Key()
	if prev, ok := repo.db.find(func(t timetable.Timetable) bool { return t.Key() == key }); ok {
		prev.Entries = tt.Entries
		prev.UpdatedAt = tt.UpdatedAt
		repo.db.set(prev.ID, prev)
		return prev, nil
	}
	tt.ID = core.NewID()
	repo.db.insert(tt.ID, tt)
	return tt, nil
}

func (repo *timetableRepository) GetTimetable(_ context.Context, key timetable.Key) (timetable.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tt, ok := repo.db.find(func(t timetable.Timetable) bool { return t.Key() == key }); ok {
		return tt, nil
	}
	return timetable.Timetable{}, timetable.ErrNotFound
}

func (repo *timetableRepository) GetTimetableByID(_ context.Context, id string) (timetable.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tt, ok := repo.db.get(id); ok {
		return tt, nil
	}
	return timetable.Timetable{}, timetable.ErrNotFound
}

func (repo *timetableRepository) QueryTimetables(_ context.Context) ([]timetable.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.filter(nil), nil
}
