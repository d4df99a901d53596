package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/admission"
	"github.com/PrimotionStudio/z1academic/core/course"
	"github.com/PrimotionStudio/z1academic/core/finance"
	"github.com/PrimotionStudio/z1academic/core/grading"
	"github.com/PrimotionStudio/z1academic/core/resource"
	"github.com/PrimotionStudio/z1academic/core/settings"
	"github.com/PrimotionStudio/z1academic/core/timetable"
	"github.com/PrimotionStudio/z1academic/core/user"
	inmemdb "github.com/PrimotionStudio/z1academic/storage/database/inmem"
	mongodb "github.com/PrimotionStudio/z1academic/storage/database/mongo"
)

// Repositories groups the repositories of every module, all backed by the same store.
type Repositories struct {
	Users        user.Repository
	Faculties    academic.FacultyRepository
	Departments  academic.DepartmentRepository
	Lecturers    academic.LecturerRepository
	Terms        academic.TermRepository
	Courses      course.Repository
	Electives    course.ElectiveRepository
	Schemes      grading.Repository
	Timetables   timetable.Repository
	Fees         finance.FeeRepository
	Transactions finance.TransactionRepository
	Resources    resource.Repository
	Applications admission.Repository
	Settings     settings.Repository

	// Close releases the store.
	Close func(ctx context.Context) error
}

func Mongo(db *mongodb.DB) *Repositories {
	acad := mongodb.NewAcademicRepository(db)
	courses := mongodb.NewCourseRepository(db)
	fin := mongodb.NewFinanceRepository(db)
	return &Repositories{
		Users:        mongodb.NewUserRepository(db),
		Faculties:    acad,
		Departments:  acad,
		Lecturers:    acad,
		Terms:        acad,
		Courses:      courses,
		Electives:    courses,
		Schemes:      mongodb.NewSchemeRepository(db),
		Timetables:   mongodb.NewTimetableRepository(db),
		Fees:         fin,
		Transactions: fin,
		Resources:    mongodb.NewResourceRepository(db),
		Applications: mongodb.NewApplicationRepository(db),
		Settings:     mongodb.NewSettingsRepository(db),
		Close:        db.Close,
	}
}

func InMemory(db *inmemdb.DB) *Repositories {
	acad := inmemdb.NewAcademicRepository(db)
	courses := inmemdb.NewCourseRepository(db)
	fin := inmemdb.NewFinanceRepository(db)
	return &Repositories{
		Users:        inmemdb.NewUserRepository(db),
		Faculties:    acad,
		Departments:  acad,
		Lecturers:    acad,
		Terms:        acad,
		Courses:      courses,
		Electives:    courses,
		Schemes:      inmemdb.NewSchemeRepository(db),
		Timetables:   inmemdb.NewTimetableRepository(db),
		Fees:         fin,
		Transactions: fin,
		Resources:    inmemdb.NewResourceRepository(db),
		Applications: inmemdb.NewApplicationRepository(db),
		Settings:     inmemdb.NewSettingsRepository(db),
		Close:        func(context.Context) error { return nil },
	}
}

// Open connects to conf.Database and makes sure its indexes exist.
// In debug mode, an empty URI selects a store kept in memory.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (*Repositories, error) {
	if conf.Database.URI == "" && conf.Debug {
		logger.Warn("no database URI: using the in-memory store, data will not survive restarts")
		return InMemory(inmemdb.Open()), nil
	}

	db, err := mongodb.Open(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = db.Close(ctx)
		return nil, errors.Wrap(err, "ensuring indexes")
	}
	return Mongo(db), nil
}
