package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
)

type academicRepository struct {
	faculties   *table[academic.Faculty]
	departments *table[academic.Department]
	lecturers   *table[academic.Lecturer]
	terms       map[academic.TermKind]*table[academic.Term]
}

var (
	// interface compliance checks
	_ academic.FacultyRepository    = (*academicRepository)(nil)
	_ academic.DepartmentRepository = (*academicRepository)(nil)
	_ academic.LecturerRepository   = (*academicRepository)(nil)
	_ academic.TermRepository       = (*academicRepository)(nil)
)

// NewAcademicRepository returns one repository serving faculties, departments, lecturers and terms.
func NewAcademicRepository(db *DB) *academicRepository {
	return &academicRepository{
		faculties:   db.faculties,
		departments: db.departments,
		lecturers:   db.lecturers,
		terms:       db.terms,
	}
}

// Faculties

func (repo *academicRepository) CreateFaculty(_ context.Context, fac academic.Faculty) (academic.Faculty, error) {
	repo.faculties.Lock()
	defer repo.faculties.Unlock()

	fac.ID = core.NewID()
	repo.faculties.insert(fac.ID, fac)
	return fac, nil
}

func (repo *academicRepository) QueryFaculties(_ context.Context) ([]academic.Faculty, error) {
	repo.faculties.RLock()
	defer repo.faculties.RUnlock()
	return repo.faculties.filter(nil), nil
}

func (repo *academicRepository) GetFaculty(_ context.Context, id string) (academic.Faculty, error) {
	repo.faculties.RLock()
	defer repo.faculties.RUnlock()

	if fac, ok := repo.faculties.get(id); ok {
		return fac, nil
	}
	return academic.Faculty{}, academic.ErrFacultyNotFound
}

func (repo *academicRepository) UpdateFaculty(_ context.Context, fac academic.Faculty) (academic.Faculty, error) {
	repo.faculties.Lock()
	defer repo.faculties.Unlock()

	if !repo.faculties.set(fac.ID, fac) {
		return academic.Faculty{}, academic.ErrFacultyNotFound
	}
	return fac, nil
}

// Departments

func (repo *academicRepository) CreateDepartment(_ context.Context, dept academic.Department) (academic.Department, error) {
	repo.departments.Lock()
	defer repo.departments.Unlock()

	dept.ID = core.NewID()
	repo.departments.insert(dept.ID, dept)
	return dept, nil
}

func (repo *academicRepository) QueryDepartments(_ context.Context, filter *academic.DepartmentFilter) ([]academic.Department, error) {
	repo.departments.RLock()
	defer repo.departments.RUnlock()

	var keep func(academic.Department) bool
	if filter != nil && filter.FacultyID != "" {
		keep = func(d academic.Department) bool { return d.FacultyID == filter.FacultyID }
	}
	return repo.departments.filter(keep), nil
}

func (repo *academicRepository) GetDepartment(_ context.Context, id string) (academic.Department, error) {
	repo.departments.RLock()
	defer repo.departments.RUnlock()

	if dept, ok := repo.departments.get(id); ok {
		return dept, nil
	}
	return academic.Department{}, academic.ErrDepartmentNotFound
}

func (repo *academicRepository) UpdateDepartment(_ context.Context, dept academic.Department) (academic.Department, error) {
	repo.departments.Lock()
	defer repo.departments.Unlock()

	if !repo.departments.set(dept.ID, dept) {
		return academic.Department{}, academic.ErrDepartmentNotFound
	}
	return dept, nil
}

// Lecturers

func (repo *academicRepository) CreateLecturer(_ context.Context, lect academic.Lecturer) (academic.Lecturer, error) {
	repo.lecturers.Lock()
	defer repo.lecturers.Unlock()

	if _, exists := repo.lecturers.find(func(l academic.Lecturer) bool { return l.UserID == lect.UserID }); exists {
		return academic.Lecturer{}, academic.ErrLecturerExists
	}
	lect.ID = core.NewID()
	repo.lecturers.insert(lect.ID, lect)
	return lect, nil
}

func (repo *academicRepository) QueryLecturers(_ context.Context) ([]academic.Lecturer, error) {
	repo.lecturers.RLock()
	defer repo.lecturers.RUnlock()
	return repo.lecturers.filter(nil), nil
}

func (repo *academicRepository) GetLecturer(_ context.Context, id string) (academic.Lecturer, error) {
	repo.lecturers.RLock()
	defer repo.lecturers.RUnlock()

	if lect, ok := repo.lecturers.get(id); ok {
		return lect, nil
	}
	return academic.Lecturer{}, academic.ErrLecturerNotFound
}

// Terms

func (repo *academicRepository) CreateTerm(_ context.Context, kind academic.TermKind, term academic.Term) (academic.Term, error) {
	tbl := repo.terms[kind]
	tbl.Lock()
	defer tbl.Unlock()

	term.ID = core.NewID()
	tbl.insert(term.ID, term)
	return term, nil
}

func (repo *academicRepository) QueryTerms(_ context.Context, kind academic.TermKind) ([]academic.Term, error) {
	tbl := repo.terms[kind]
	tbl.RLock()
	defer tbl.RUnlock()
	return tbl.filter(nil), nil
}

func (repo *academicRepository) GetTerm(_ context.Context, kind academic.TermKind, id string) (academic.Term, error) {
	tbl := repo.terms[kind]
	tbl.RLock()
	defer tbl.RUnlock()

	if term, ok := tbl.get(id); ok {
		return term, nil
	}
	return academic.Term{}, academic.ErrTermNotFound(kind)
}

func (repo *academicRepository) UpdateTerm(_ context.Context, kind academic.TermKind, term academic.Term) (academic.Term, error) {
	tbl := repo.terms[kind]
	tbl.Lock()
	defer tbl.Unlock()

	if !tbl.set(term.ID, term) {
		return academic.Term{}, academic.ErrTermNotFound(kind)
	}
	return term, nil
}

func (repo *academicRepository) ActivateTerm(_ context.Context, kind academic.TermKind, id string) error {
	tbl := repo.terms[kind]
	tbl.Lock()
	defer tbl.Unlock()

	if _, ok := tbl.get(id); !ok {
		return academic.ErrTermNotFound(kind)
	}
	now := core.Now()
	for _, term := range tbl.filter(nil) {
		active := term.ID == id
		if term.IsActive != active {
			term.IsActive = active
			term.UpdatedAt = now
			tbl.set(term.ID, term)
		}
	}
	return nil
}

func (repo *academicRepository) GetActiveTerm(_ context.Context, kind academic.TermKind) (academic.Term, error) {
	tbl := repo.terms[kind]
	tbl.RLock()
	defer tbl.RUnlock()

	if term, ok := tbl.find(func(t academic.Term) bool { return t.IsActive }); ok {
		return term, nil
	}
	return academic.Term{}, academic.ErrTermNotFound(kind)
}
