package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/admission"
	"github.com/PrimotionStudio/z1academic/core/settings"
)

type applicationRepository struct {
	db *table[admission.Application]
}

var _ admission.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *DB) admission.Repository {
	return &applicationRepository{db: db.applications}
}

func (repo *applicationRepository) CreateApplication(_ context.Context, app admission.Application) (admission.Application, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	app.ID = core.NewID()
	repo.db.insert(app.ID, app)
	return app, nil
}

func (repo *applicationRepository) QueryApplications(_ context.Context, filter *admission.QueryFilter) ([]admission.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var keep func(admission.Application) bool
	if filter != nil {
		keep = func(a admission.Application) bool {
			return (filter.Status == "" || a.Status == filter.Status) &&
				(filter.UserID == "" || a.UserID == filter.UserID)
		}
	}
	return repo.db.filter(keep), nil
}

func (repo *applicationRepository) GetApplication(_ context.Context, id string) (admission.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if app, ok := repo.db.get(id); ok {
		return app, nil
	}
	return admission.Application{}, admission.ErrNotFound
}

func (repo *applicationRepository) SetApplicationStatus(_ context.Context, id, status string) (admission.Application, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	app, ok := repo.db.get(id)
	if !ok {
		return admission.Application{}, admission.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = core.Now()
	repo.db.set(id, app)
	return app, nil
}

// Settings

type settingsRepository struct {
	db *singleton[settings.Institution]
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.institution}
}

func (repo *settingsRepository) GetInstitution(_ context.Context) (settings.Institution, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.doc, nil
}

func (repo *settingsRepository) PutInstitution(_ context.Context, inst settings.Institution) (settings.Institution, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.doc = inst
	return inst, nil
}
