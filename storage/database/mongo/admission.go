package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/admission"
	"github.com/PrimotionStudio/z1academic/core/settings"
)

type applicationRepository struct {
	apps collection[admission.Application]
}

var _ admission.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *DB) admission.Repository {
	return &applicationRepository{apps: newCollection[admission.Application](db, applicationsCollection, admission.ErrNotFound)}
}

func (repo *applicationRepository) CreateApplication(ctx context.Context, app admission.Application) (admission.Application, error) {
	app.ID = core.NewID()
	if err := repo.apps.insert(ctx, app); err != nil {
		return admission.Application{}, err
	}
	return app, nil
}

func (repo *applicationRepository) QueryApplications(ctx context.Context, filter *admission.QueryFilter) ([]admission.Application, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.UserID != "" {
			query["user_id"] = filter.UserID
		}
	}
	return repo.apps.find(ctx, query)
}

func (repo *applicationRepository) GetApplication(ctx context.Context, id string) (admission.Application, error) {
	return repo.apps.findOne(ctx, byID(id))
}

func (repo *applicationRepository) SetApplicationStatus(ctx context.Context, id, status string) (admission.Application, error) {
	return repo.apps.set(ctx, id, bson.M{"status": status, "updated_at": core.Now()})
}

// Settings

// institutionID is the _id of the single institution settings document.
const institutionID = "institution"

type settingsRepository struct {
	settings collection[settings.Institution]
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{settings: newCollection[settings.Institution](db, settingsCollection, errNoSettings)}
}

var errNoSettings = errors.New("settings not saved")

func (repo *settingsRepository) GetInstitution(ctx context.Context) (settings.Institution, error) {
	inst, err := repo.settings.findOne(ctx, byID(institutionID))
	if err == errNoSettings {
		return settings.Institution{}, nil
	}
	return inst, err
}

func (repo *settingsRepository) PutInstitution(ctx context.Context, inst settings.Institution) (settings.Institution, error) {
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.settings.ReplaceOne(ctx, byID(institutionID), inst, opts); err != nil {
		return settings.Institution{}, errors.Wrap(err, "saving institution settings")
	}
	return inst, nil
}
