// Package testutil holds the fixtures shared by the tests of every package.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/course"
	"github.com/PrimotionStudio/z1academic/core/finance"
	"github.com/PrimotionStudio/z1academic/core/user"
	logsvc "github.com/PrimotionStudio/z1academic/services/logger"
	mongodb "github.com/PrimotionStudio/z1academic/storage/database/mongo"
)

// NewConfig returns the default configuration in test mode.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Database.URI = ""
	return conf
}

// NewLogger returns a logger that discards everything.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(zap.NewNop(), conf)
	logger.Enable(false)
	return logger
}

// OpenMongo connects to TEST_MONGO_URI on a throwaway database dropped at the end of the test.
// The test is skipped when TEST_MONGO_URI is not set.
func OpenMongo(t *testing.T) *mongodb.DB {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	conf := NewConfig()
	conf.Database.URI = uri
	conf.Database.Name = "test_" + uuid.New().String()[:8]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := mongodb.Open(ctx, conf)
	if err != nil {
		t.Fatalf("OpenMongo(): %v", err)
	}
	if err = mongodb.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("OpenMongo().EnsureIndexes: %v", err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		if err := db.Drop(ctx); err != nil {
			t.Errorf("OpenMongo().Drop: %v", err)
		}
		_ = db.Close(ctx)
	})
	return db
}

func CreateUser(t *testing.T, repo user.Repository, name, email, phone, role string, createdAt ...time.Time) user.User {
	tstamp := core.Now()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC().Truncate(time.Millisecond)
	}
	usr, err := repo.CreateUser(context.Background(), user.User{
		FullName:  name,
		Email:     email,
		Phone:     phone,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateFaculty(t *testing.T, repo academic.FacultyRepository, name string) academic.Faculty {
	now := core.Now()
	fac, err := repo.CreateFaculty(context.Background(), academic.Faculty{Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateFaculty(): %v", err)
	}
	return fac
}

func CreateDepartment(t *testing.T, repo academic.DepartmentRepository, facultyID, name string, maxLevels int) academic.Department {
	now := core.Now()
	dept, err := repo.CreateDepartment(context.Background(), academic.Department{
		FacultyID:    facultyID,
		Name:         name,
		MaxLevels:    maxLevels,
		ProgramTitle: "B.Sc. " + name,
		JambCutOff:   180,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateDepartment(): %v", err)
	}
	return dept
}

func CreateLecturer(t *testing.T, repo academic.LecturerRepository, userID, deptID string) academic.Lecturer {
	now := core.Now()
	lect, err := repo.CreateLecturer(context.Background(), academic.Lecturer{
		UserID:       userID,
		DepartmentID: deptID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateLecturer(): %v", err)
	}
	return lect
}

func CreateTerm(t *testing.T, repo academic.TermRepository, kind academic.TermKind, name string) academic.Term {
	now := core.Now()
	term, err := repo.CreateTerm(context.Background(), kind, academic.Term{Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateTerm(): %v", err)
	}
	return term
}

func CreateCourse(t *testing.T, repo course.Repository, code, lecturerID, deptID string, level int, semesterID string) course.Course {
	now := core.Now()
	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Name:         "Course " + code,
		Code:         code,
		Units:        3,
		LecturerID:   lecturerID,
		DepartmentID: deptID,
		Level:        level,
		SemesterID:   semesterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	return crs
}

func CreateTransaction(t *testing.T, repo finance.TransactionRepository, userID string, amount float64) finance.Transaction {
	now := core.Now()
	txn, err := repo.CreateTransaction(context.Background(), finance.Transaction{
		Reference: uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		Status:    finance.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateTransaction(): %v", err)
	}
	return txn
}
