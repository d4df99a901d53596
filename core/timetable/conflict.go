package timetable

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core/course"
)

// ConflictError reports a lecturer booked twice at the same day and time slot.
type ConflictError struct {
	LecturerID          string
	CourseID            string
	ConflictingCourseID string
	Day                 string
	TimeSlot            string
}

func (err *ConflictError) Error() string {
	return fmt.Sprintf(
		"lecturer %s is already booked for course %s on %s at %s (conflicts with course %s)",
		err.LecturerID, err.ConflictingCourseID, err.Day, err.TimeSlot, err.CourseID,
	)
}

type booking struct {
	lecturerID string
	day        string
	timeSlot   string
}

// CheckConflicts walks entries in order and fails on the first entry whose course lecturer is
// already booked at the same day and time slot. courses must hold every entry course.
func CheckConflicts(entries []Entry, courses map[string]course.Course) error {
	booked := make(map[booking]string, len(entries))
	for _, e := range entries {
		crs, ok := courses[e.CourseID]
		if !ok {
			return errors.Wrapf(course.ErrNotFound, "course %s", e.CourseID)
		}
		key := booking{lecturerID: crs.LecturerID, day: e.Day, timeSlot: e.TimeSlot}
		if other, ok := booked[key]; ok {
			return &ConflictError{
				LecturerID:          crs.LecturerID,
				CourseID:            crs.ID,
				ConflictingCourseID: other,
				Day:                 e.Day,
				TimeSlot:            e.TimeSlot,
			}
		}
		booked[key] = crs.ID
	}
	return nil
}
