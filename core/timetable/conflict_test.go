package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/course"
)

func TestCheckConflicts(t *testing.T) {
	courses := map[string]course.Course{
		"c1": {ID: "c1", LecturerID: "l1"},
		"c2": {ID: "c2", LecturerID: "l1"},
		"c3": {ID: "c3", LecturerID: "l2"},
	}

	tests := []struct {
		name    string
		entries []Entry
		wantErr *ConflictError
	}{
		{name: "no entries"},
		{
			name: "same lecturer, different slots",
			entries: []Entry{
				{CourseID: "c1", Day: Monday, TimeSlot: "9:00 AM"},
				{CourseID: "c2", Day: Monday, TimeSlot: "10:00 AM"},
				{CourseID: "c2", Day: Tuesday, TimeSlot: "9:00 AM"},
			},
		},
		{
			name: "different lecturers, same slot",
			entries: []Entry{
				{CourseID: "c1", Day: Monday, TimeSlot: "9:00 AM"},
				{CourseID: "c3", Day: Monday, TimeSlot: "9:00 AM"},
			},
		},
		{
			name: "same course twice, no collision",
			entries: []Entry{
				{CourseID: "c3", Day: Wednesday, TimeSlot: "1:00 PM"},
				{CourseID: "c3", Day: Friday, TimeSlot: "1:00 PM"},
			},
		},
		{
			name: "same lecturer, same slot",
			entries: []Entry{
				{CourseID: "c1", Day: Monday, TimeSlot: "9:00 AM"},
				{CourseID: "c3", Day: Monday, TimeSlot: "9:00 AM"},
				{CourseID: "c2", Day: Monday, TimeSlot: "9:00 AM"},
			},
			wantErr: &ConflictError{LecturerID: "l1", CourseID: "c2", ConflictingCourseID: "c1", Day: Monday, TimeSlot: "9:00 AM"},
		},
		{
			name: "same course, same slot",
			entries: []Entry{
				{CourseID: "c3", Day: Sunday, TimeSlot: "4:00 PM"},
				{CourseID: "c3", Day: Sunday, TimeSlot: "4:00 PM"},
			},
			wantErr: &ConflictError{LecturerID: "l2", CourseID: "c3", ConflictingCourseID: "c3", Day: Sunday, TimeSlot: "4:00 PM"},
		},
		{
			name: "first collision wins",
			entries: []Entry{
				{CourseID: "c2", Day: Thursday, TimeSlot: "8:00 AM"},
				{CourseID: "c1", Day: Thursday, TimeSlot: "8:00 AM"},
				{CourseID: "c1", Day: Friday, TimeSlot: "8:00 AM"},
				{CourseID: "c2", Day: Friday, TimeSlot: "8:00 AM"},
			},
			wantErr: &ConflictError{LecturerID: "l1", CourseID: "c1", ConflictingCourseID: "c2", Day: Thursday, TimeSlot: "8:00 AM"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConflicts(tt.entries, courses)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.IsType(t, &ConflictError{}, err)
			assert.Equal(t, tt.wantErr, err)
			assert.Contains(t, err.Error(), tt.wantErr.CourseID)
			assert.Contains(t, err.Error(), tt.wantErr.ConflictingCourseID)
		})
	}
}

func TestCheckConflicts_unknownCourse(t *testing.T) {
	err := CheckConflicts([]Entry{{CourseID: "nope", Day: Monday, TimeSlot: "7:00 AM"}}, nil)
	_, isConflict := err.(*ConflictError)
	assert.False(t, isConflict)
	assert.True(t, core.IsNotFound(err))
}
