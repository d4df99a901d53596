package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/course"
	"github.com/PrimotionStudio/z1academic/core/finance"
	"github.com/PrimotionStudio/z1academic/core/grading"
	"github.com/PrimotionStudio/z1academic/core/timetable"
	"github.com/PrimotionStudio/z1academic/core/user"
)

type seedOptions struct {
	email string
	phone string
}

func newSeedCmd(cli *commandLine) *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo faculty with a department, a lecturer, courses and a timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.seed(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.email, "email", "lecturer@z1academic.test", "email of the demo lecturer")
	cmd.Flags().StringVar(&opts.phone, "phone", "+2348000000000", "phone number of the demo lecturer")
	return cmd
}

// seed goes through the services so the demo data passes the same checks as the API.
func (cli *commandLine) seed(ctx context.Context, opts seedOptions) error {
	acad := cli.svc.Academic

	nu := user.NewUser{FullName: "Ada Okafor", Email: opts.email, Phone: opts.phone, Verified: true}
	if err := cli.check(&nu); err != nil {
		return err
	}
	usr, err := cli.svc.User.Create(ctx, nu)
	if err != nil {
		return errors.Wrap(err, "creating lecturer account")
	}

	fi := academic.FacultyInput{Name: "Faculty of Science"}
	if err = cli.check(&fi); err != nil {
		return err
	}
	fac, err := acad.CreateFaculty(ctx, fi)
	if err != nil {
		return errors.Wrap(err, "creating faculty")
	}

	di := academic.DepartmentInput{
		FacultyID:    fac.ID,
		Name:         "Computer Science",
		MaxLevels:    400,
		ProgramTitle: "B.Sc. Computer Science",
		JambCutOff:   180,
	}
	if err = cli.check(&di); err != nil {
		return err
	}
	dept, err := acad.CreateDepartment(ctx, di)
	if err != nil {
		return errors.Wrap(err, "creating department")
	}

	lect, err := acad.CreateLecturer(ctx, academic.NewLecturer{UserID: usr.ID, DepartmentID: dept.ID})
	if err != nil {
		return errors.Wrap(err, "creating lecturer")
	}

	session, err := acad.CreateTerm(ctx, academic.KindSession, academic.TermInput{Name: "2024/2025"})
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	period, err := acad.CreateTerm(ctx, academic.KindPeriod, academic.TermInput{Name: "First Semester"})
	if err != nil {
		return errors.Wrap(err, "creating period")
	}
	if err = acad.ActivateTerm(ctx, academic.KindSession, session.ID); err != nil {
		return errors.Wrap(err, "activating session")
	}
	if err = acad.ActivateTerm(ctx, academic.KindPeriod, period.ID); err != nil {
		return errors.Wrap(err, "activating period")
	}

	var entries []timetable.Entry
	slots := []struct{ code, name, day string }{
		{"CSC101", "Introduction to Computing", timetable.Monday},
		{"CSC103", "Programming Fundamentals", timetable.Wednesday},
	}
	for _, s := range slots {
		ci := course.CourseInput{
			Name:         s.name,
			Code:         s.code,
			Units:        3,
			LecturerID:   lect.ID,
			DepartmentID: dept.ID,
			Level:        100,
			SemesterID:   period.ID,
		}
		if err = cli.check(&ci); err != nil {
			return err
		}
		crs, err := cli.svc.Course.Create(ctx, ci)
		if err != nil {
			return errors.Wrapf(err, "creating course %s", s.code)
		}
		entries = append(entries, timetable.Entry{CourseID: crs.ID, Day: s.day, TimeSlot: "9:00 AM"})
	}

	nt := timetable.NewTimetable{
		Key:     timetable.Key{DepartmentID: dept.ID, Level: 100, SemesterID: period.ID},
		Entries: entries,
	}
	if err = cli.check(&nt); err != nil {
		return err
	}
	if _, err = cli.svc.Timetable.Set(ctx, nt); err != nil {
		return errors.Wrap(err, "setting timetable")
	}

	si := grading.SchemeInput{
		AssessmentTypes: []grading.AssessmentType{{Name: "Continuous Assessment", Score: 30}, {Name: "Examination", Score: 70}},
		Level:           100,
		MaxCourseUnits:  24,
		DepartmentID:    dept.ID,
		SemesterID:      period.ID,
	}
	if err = cli.check(&si); err != nil {
		return err
	}
	if _, err = cli.svc.Grading.Create(ctx, si); err != nil {
		return errors.Wrap(err, "creating grading scheme")
	}

	if _, err = cli.svc.Finance.CreateFee(ctx, finance.FeeInput{Label: "Acceptance Fee", Amount: 25000}); err != nil {
		return errors.Wrap(err, "creating fee")
	}

	cli.printf("seeded department %s (%s) with lecturer %s\n", dept.Name, dept.ID, usr.Email)
	return nil
}
