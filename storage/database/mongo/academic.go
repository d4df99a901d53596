package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
)

type academicRepository struct {
	faculties   collection[academic.Faculty]
	departments collection[academic.Department]
	lecturers   collection[academic.Lecturer]
	terms       map[academic.TermKind]collection[academic.Term]
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
		faculties:   newCollection[academic.Faculty](db, facultiesCollection, academic.ErrFacultyNotFound),
		departments: newCollection[academic.Department](db, departmentsCollection, academic.ErrDepartmentNotFound),
		lecturers:   newCollection[academic.Lecturer](db, lecturersCollection, academic.ErrLecturerNotFound),
		terms: map[academic.TermKind]collection[academic.Term]{
			academic.KindSession: newCollection[academic.Term](db, sessionsCollection, academic.ErrSessionNotFound),
			academic.KindPeriod:  newCollection[academic.Term](db, periodsCollection, academic.ErrPeriodNotFound),
		},
	}
}

// Faculties

func (repo *academicRepository) CreateFaculty(ctx context.Context, fac academic.Faculty) (academic.Faculty, error) {
	fac.ID = core.NewID()
	if err := repo.faculties.insert(ctx, fac); err != nil {
		return academic.Faculty{}, err
	}
	return fac, nil
}

func (repo *academicRepository) QueryFaculties(ctx context.Context) ([]academic.Faculty, error) {
	return repo.faculties.find(ctx, nil)
}

func (repo *academicRepository) GetFaculty(ctx context.Context, id string) (academic.Faculty, error) {
	return repo.faculties.findOne(ctx, byID(id))
}

func (repo *academicRepository) UpdateFaculty(ctx context.Context, fac academic.Faculty) (academic.Faculty, error) {
	if err := repo.faculties.replace(ctx, fac.ID, fac); err != nil {
		return academic.Faculty{}, err
	}
	return fac, nil
}

// Departments

func (repo *academicRepository) CreateDepartment(ctx context.Context, dept academic.Department) (academic.Department, error) {
	dept.ID = core.NewID()
	if err := repo.departments.insert(ctx, dept); err != nil {
		return academic.Department{}, err
	}
	return dept, nil
}

func (repo *academicRepository) QueryDepartments(ctx context.Context, filter *academic.DepartmentFilter) ([]academic.Department, error) {
	query := bson.M{}
	if filter != nil && filter.FacultyID != "" {
		query["faculty_id"] = filter.FacultyID
	}
	return repo.departments.find(ctx, query)
}

func (repo *academicRepository) GetDepartment(ctx context.Context, id string) (academic.Department, error) {
	return repo.departments.findOne(ctx, byID(id))
}

func (repo *academicRepository) UpdateDepartment(ctx context.Context, dept academic.Department) (academic.Department, error) {
	if err := repo.departments.replace(ctx, dept.ID, dept); err != nil {
		return academic.Department{}, err
	}
	return dept, nil
}

// Lecturers

func (repo *academicRepository) CreateLecturer(ctx context.Context, lect academic.Lecturer) (academic.Lecturer, error) {
	lect.ID = core.NewID()
	if err := repo.lecturers.insert(ctx, lect); err != nil {
		if err == errDuplicate {
			return academic.Lecturer{}, academic.ErrLecturerExists
		}
		return academic.Lecturer{}, err
	}
	return lect, nil
}

func (repo *academicRepository) QueryLecturers(ctx context.Context) ([]academic.Lecturer, error) {
	return repo.lecturers.find(ctx, nil)
}

func (repo *academicRepository) GetLecturer(ctx context.Context, id string) (academic.Lecturer, error) {
	return repo.lecturers.findOne(ctx, byID(id))
}

// Terms

func (repo *academicRepository) CreateTerm(ctx context.Context, kind academic.TermKind, term academic.Term) (academic.Term, error) {
	term.ID = core.NewID()
	if err := repo.terms[kind].insert(ctx, term); err != nil {
		return academic.Term{}, err
	}
	return term, nil
}

func (repo *academicRepository) QueryTerms(ctx context.Context, kind academic.TermKind) ([]academic.Term, error) {
	return repo.terms[kind].find(ctx, nil)
}

func (repo *academicRepository) GetTerm(ctx context.Context, kind academic.TermKind, id string) (academic.Term, error) {
	return repo.terms[kind].findOne(ctx, byID(id))
}

func (repo *academicRepository) UpdateTerm(ctx context.Context, kind academic.TermKind, term academic.Term) (academic.Term, error) {
	if err := repo.terms[kind].replace(ctx, term.ID, term); err != nil {
		return academic.Term{}, err
	}
	return term, nil
}

// ActivateTerm runs two writes without a transaction: concurrent activations end with the last one.
func (repo *academicRepository) ActivateTerm(ctx context.Context, kind academic.TermKind, id string) error {
	coll := repo.terms[kind]
	now := core.Now()

	if _, err := coll.findOne(ctx, byID(id)); err != nil {
		return err
	}
	_, err := coll.UpdateMany(ctx,
		bson.M{"is_active": true, "_id": bson.M{"$ne": id}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	)
	if err != nil {
		return errors.Wrapf(err, "deactivating %ss", kind)
	}
	if _, err = coll.set(ctx, id, bson.M{"is_active": true, "updated_at": now}); err != nil {
		return err
	}
	return nil
}

func (repo *academicRepository) GetActiveTerm(ctx context.Context, kind academic.TermKind) (academic.Term, error) {
	return repo.terms[kind].findOne(ctx, bson.M{"is_active": true})
}
