package academic

import (
	"context"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

var (
	// errors
	ErrFacultyNotFound    = core.NewNotFoundError("faculty")
	ErrDepartmentNotFound = core.NewNotFoundError("department")
	ErrLecturerNotFound   = core.NewNotFoundError("lecturer")
	ErrSessionNotFound    = core.NewNotFoundError("session")
	ErrPeriodNotFound     = core.NewNotFoundError("period")
	ErrLecturerExists     = errors.New("cannot assign same lecturer to multiple departments")
)

// ErrTermNotFound returns the not found error matching kind.
func ErrTermNotFound(kind TermKind) error {
	if kind == KindPeriod {
		return ErrPeriodNotFound
	}
	return ErrSessionNotFound
}

type (
	FacultyRepository interface {
		CreateFaculty(ctx context.Context, fac Faculty) (Faculty, error)
		QueryFaculties(ctx context.Context) ([]Faculty, error)
		GetFaculty(ctx context.Context, id string) (Faculty, error)
		UpdateFaculty(ctx context.Context, fac Faculty) (Faculty, error)
	}

	DepartmentRepository interface {
		CreateDepartment(ctx context.Context, dept Department) (Department, error)
		QueryDepartments(ctx context.Context, filter *DepartmentFilter) ([]Department, error)
		GetDepartment(ctx context.Context, id string) (Department, error)
		UpdateDepartment(ctx context.Context, dept Department) (Department, error)
	}

	LecturerRepository interface {
		// CreateLecturer returns ErrLecturerExists if the user is already a lecturer.
		CreateLecturer(ctx context.Context, lect Lecturer) (Lecturer, error)
		QueryLecturers(ctx context.Context) ([]Lecturer, error)
		GetLecturer(ctx context.Context, id string) (Lecturer, error)
	}

	TermRepository interface {
		CreateTerm(ctx context.Context, kind TermKind, term Term) (Term, error)
		QueryTerms(ctx context.Context, kind TermKind) ([]Term, error)
		GetTerm(ctx context.Context, kind TermKind, id string) (Term, error)
		UpdateTerm(ctx context.Context, kind TermKind, term Term) (Term, error)
		// ActivateTerm deactivates every term of kind, then activates id.
		ActivateTerm(ctx context.Context, kind TermKind, id string) error
		GetActiveTerm(ctx context.Context, kind TermKind) (Term, error)
	}

	Service struct {
		faculties   FacultyRepository
		departments DepartmentRepository
		lecturers   LecturerRepository
		terms       TermRepository
		usrSvc      *user.Service
	}
)

func NewService(
	faculties FacultyRepository,
	departments DepartmentRepository,
	lecturers LecturerRepository,
	terms TermRepository,
	usrSvc *user.Service,
) *Service {
	return &Service{
		faculties:   faculties,
		departments: departments,
		lecturers:   lecturers,
		terms:       terms,
		usrSvc:      usrSvc,
	}
}

// Faculties

func (svc *Service) CreateFaculty(ctx context.Context, fi FacultyInput) (Faculty, error) {
	now := core.Now()
	return svc.faculties.CreateFaculty(ctx, Faculty{Name: fi.Name, CreatedAt: now, UpdatedAt: now})
}

func (svc *Service) QueryFaculties(ctx context.Context) ([]Faculty, error) {
	return svc.faculties.QueryFaculties(ctx)
}

func (svc *Service) GetFaculty(ctx context.Context, id string) (Faculty, error) {
	if !core.IsID(id) {
		return Faculty{}, ErrFacultyNotFound
	}
	return svc.faculties.GetFaculty(ctx, id)
}

func (svc *Service) UpdateFaculty(ctx context.Context, fac Faculty, fi FacultyInput) (Faculty, error) {
	fac.Name = fi.Name
	fac.UpdatedAt = core.Now()
	return svc.faculties.UpdateFaculty(ctx, fac)
}

// Departments

func (svc *Service) checkFaculty(ctx context.Context, id string) error {
	if _, err := svc.GetFaculty(ctx, id); err != nil {
		if errors.Cause(err) == ErrFacultyNotFound {
			return core.NewFieldError("faculty_id", err.Error())
		}
		return errors.Wrap(err, "finding faculty")
	}
	return nil
}

func (svc *Service) CreateDepartment(ctx context.Context, di DepartmentInput) (Department, error) {
	if err := svc.checkFaculty(ctx, di.FacultyID); err != nil {
		return Department{}, err
	}
	now := core.Now()
	return svc.departments.CreateDepartment(ctx, Department{
		FacultyID:    di.FacultyID,
		Name:         di.Name,
		MaxLevels:    di.MaxLevels,
		ProgramTitle: di.ProgramTitle,
		JambCutOff:   di.JambCutOff,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *Service) QueryDepartments(ctx context.Context, filter *DepartmentFilter) ([]Department, error) {
	return svc.departments.QueryDepartments(ctx, filter)
}

func (svc *Service) GetDepartment(ctx context.Context, id string) (Department, error) {
	if !core.IsID(id) {
		return Department{}, ErrDepartmentNotFound
	}
	return svc.departments.GetDepartment(ctx, id)
}

func (svc *Service) UpdateDepartment(ctx context.Context, dept Department, di DepartmentInput) (Department, error) {
	if di.FacultyID != dept.FacultyID {
		if err := svc.checkFaculty(ctx, di.FacultyID); err != nil {
			return Department{}, err
		}
	}
	dept.FacultyID = di.FacultyID
	dept.Name = di.Name
	dept.MaxLevels = di.MaxLevels
	dept.ProgramTitle = di.ProgramTitle
	dept.JambCutOff = di.JambCutOff
	dept.UpdatedAt = core.Now()
	return svc.departments.UpdateDepartment(ctx, dept)
}

// Lecturers

// CreateLecturer assigns a user to a department and gives them the lecturer role.
func (svc *Service) CreateLecturer(ctx context.Context, nl NewLecturer) (LecturerDetail, error) {
	usr, err := svc.usrSvc.GetByID(ctx, nl.UserID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return LecturerDetail{}, core.NewFieldError("user_id", err.Error())
		}
		return LecturerDetail{}, errors.Wrap(err, "finding user")
	}
	if _, err = svc.GetDepartment(ctx, nl.DepartmentID); err != nil {
		if errors.Cause(err) == ErrDepartmentNotFound {
			return LecturerDetail{}, core.NewFieldError("department_id", err.Error())
		}
		return LecturerDetail{}, errors.Wrap(err, "finding department")
	}

	now := core.Now()
	lect, err := svc.lecturers.CreateLecturer(ctx, Lecturer{
		UserID:       usr.ID,
		DepartmentID: nl.DepartmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Cause(err) == ErrLecturerExists {
			return LecturerDetail{}, core.NewFieldError("user_id", ErrLecturerExists.Error())
		}
		return LecturerDetail{}, errors.Wrap(err, "creating lecturer")
	}

	if usr.Role != user.RoleLecturer {
		if usr, err = svc.usrSvc.SetRole(ctx, usr.ID, user.RoleLecturer); err != nil {
			return LecturerDetail{}, errors.Wrap(err, "setting lecturer role")
		}
	}
	return LecturerDetail{Lecturer: lect, User: &usr}, nil
}

// QueryLecturers returns all lecturers with their user populated.
func (svc *Service) QueryLecturers(ctx context.Context) ([]LecturerDetail, error) {
	lects, err := svc.lecturers.QueryLecturers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying lecturers")
	}
	ids := make([]string, 0, len(lects))
	for _, l := range lects {
		ids = append(ids, l.UserID)
	}
	users, err := svc.usrSvc.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "querying lecturer users")
	}
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	details := make([]LecturerDetail, 0, len(lects))
	for _, l := range lects {
		d := LecturerDetail{Lecturer: l}
		if u, ok := byID[l.UserID]; ok {
			d.User = &u
		}
		details = append(details, d)
	}
	return details, nil
}

func (svc *Service) GetLecturer(ctx context.Context, id string) (Lecturer, error) {
	if !core.IsID(id) {
		return Lecturer{}, ErrLecturerNotFound
	}
	return svc.lecturers.GetLecturer(ctx, id)
}

func (svc *Service) GetLecturerDetail(ctx context.Context, id string) (LecturerDetail, error) {
	lect, err := svc.GetLecturer(ctx, id)
	if err != nil {
		return LecturerDetail{}, err
	}
	d := LecturerDetail{Lecturer: lect}
	if usr, err := svc.usrSvc.GetByID(ctx, lect.UserID); err == nil {
		d.User = &usr
	} else if errors.Cause(err) != user.ErrNotFound {
		return LecturerDetail{}, errors.Wrap(err, "finding lecturer user")
	}
	return d, nil
}

// Sessions & Periods

func (svc *Service) CreateTerm(ctx context.Context, kind TermKind, ti TermInput) (Term, error) {
	now := core.Now()
	return svc.terms.CreateTerm(ctx, kind, Term{Name: ti.Name, CreatedAt: now, UpdatedAt: now})
}

func (svc *Service) QueryTerms(ctx context.Context, kind TermKind) ([]Term, error) {
	return svc.terms.QueryTerms(ctx, kind)
}

func (svc *Service) GetTerm(ctx context.Context, kind TermKind, id string) (Term, error) {
	if !core.IsID(id) {
		return Term{}, ErrTermNotFound(kind)
	}
	return svc.terms.GetTerm(ctx, kind, id)
}

// GetPeriod is a shortcut used by the modules referencing semesters.
func (svc *Service) GetPeriod(ctx context.Context, id string) (Term, error) {
	return svc.GetTerm(ctx, KindPeriod, id)
}

func (svc *Service) UpdateTerm(ctx context.Context, kind TermKind, term Term, ti TermInput) (Term, error) {
	term.Name = ti.Name
	term.UpdatedAt = core.Now()
	return svc.terms.UpdateTerm(ctx, kind, term)
}

// ActivateTerm makes id the only active term of its kind.
func (svc *Service) ActivateTerm(ctx context.Context, kind TermKind, id string) error {
	if _, err := svc.GetTerm(ctx, kind, id); err != nil {
		return err
	}
	return svc.terms.ActivateTerm(ctx, kind, id)
}

func (svc *Service) GetActiveTerm(ctx context.Context, kind TermKind) (Term, error) {
	return svc.terms.GetActiveTerm(ctx, kind)
}
