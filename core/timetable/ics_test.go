package timetable

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/core/course"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2024, time.September, 9, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
	}{
		{name: "monday", t: monday.Add(10 * time.Hour)},
		{name: "wednesday", t: monday.AddDate(0, 0, 2)},
		{name: "sunday", t: monday.AddDate(0, 0, 6).Add(23 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.t); !got.Equal(monday) {
				t.Errorf("WeekStart() = %v, want %v", got, monday)
			}
		})
	}
}

func TestSlotStart(t *testing.T) {
	monday := time.Date(2024, time.September, 9, 0, 0, 0, 0, time.UTC)

	got, err := slotStart(monday, Wednesday, "2:00 PM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.September, 11, 14, 0, 0, 0, time.UTC), got)

	got, err = slotStart(monday, Sunday, "7:00 AM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.September, 15, 7, 0, 0, 0, time.UTC), got)

	_, err = slotStart(monday, "Caturday", "7:00 AM")
	assert.Error(t, err)
}

func TestWriteICS(t *testing.T) {
	crs := course.Course{ID: "c1", Name: "Intro to Computing", Code: "CSC 101", Units: 3, LecturerID: "l1"}
	view := View{
		ID:    "tt1",
		Level: 100,
		Entries: []PopulatedEntry{
			{Entry: Entry{CourseID: "c1", Day: Monday, TimeSlot: "9:00 AM"}, Course: &crs},
			{Entry: Entry{CourseID: "c2", Day: Friday, TimeSlot: "3:00 PM"}},
		},
	}

	var buf bytes.Buffer
	from := time.Date(2024, time.September, 11, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteICS(&buf, view, from, 0))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:CSC 101 - Intro to Computing")
	assert.Contains(t, out, "SUMMARY:c2")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;COUNT=13")
	assert.Contains(t, out, "DTSTART:20240909T090000Z")
	assert.Contains(t, out, "DTSTART:20240913T150000Z")
}
