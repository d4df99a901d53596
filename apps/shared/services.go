package shared

import (
	"github.com/patrickmn/go-cache"

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
	"github.com/PrimotionStudio/z1academic/storage/database"
)

// Services holds the business services of every module.
type Services struct {
	User      *user.Service
	Academic  *academic.Service
	Course    *course.Service
	Grading   *grading.Service
	Timetable *timetable.Service
	Finance   *finance.Service
	Resource  *resource.Service
	Admission *admission.Service
	Settings  *settings.Service
}

// NewServices builds the services on top of repos, storing uploads in files.
func NewServices(conf *core.Config, repos *database.Repositories, files resource.FileStore) *Services {
	usrSvc := user.NewService(repos.Users)
	acadSvc := academic.NewService(repos.Faculties, repos.Departments, repos.Lecturers, repos.Terms, usrSvc)
	crsSvc := course.NewService(repos.Courses, repos.Electives, acadSvc)
	finSvc := finance.NewService(repos.Fees, repos.Transactions, usrSvc)

	return &Services{
		User:      usrSvc,
		Academic:  acadSvc,
		Course:    crsSvc,
		Grading:   grading.NewService(repos.Schemes, acadSvc),
		Timetable: timetable.NewService(repos.Timetables, crsSvc, acadSvc, cache.New(conf.Cache.TTL, conf.Cache.CleanupInterval)),
		Finance:   finSvc,
		Resource:  resource.NewService(repos.Resources, files, acadSvc, crsSvc, usrSvc),
		Admission: admission.NewService(repos.Applications, usrSvc, finSvc),
		Settings: settings.NewService(repos.Settings, settings.Institution{
			Name:  conf.Institution.Name,
			Email: conf.Institution.Email,
			Phone: conf.Institution.Phone,
		}),
	}
}
