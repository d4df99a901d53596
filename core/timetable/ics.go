package timetable

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
)

// DefaultWeeks is how many weeks an exported timetable repeats for, about a semester.
const DefaultWeeks = 13

// WeekStart returns the Monday, at midnight, of the week t falls in.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// slotStart returns when day/slot first happens in the week starting on monday.
func slotStart(monday time.Time, day, slot string) (time.Time, error) {
	wd, ok := weekdays[day]
	if !ok {
		return time.Time{}, errors.Errorf("invalid day %q", day)
	}
	at, err := time.Parse(timeSlotLayout, slot)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid time slot %q", slot)
	}
	date := monday.AddDate(0, 0, (int(wd)+6)%7)
	return time.Date(date.Year(), date.Month(), date.Day(), at.Hour(), at.Minute(), 0, 0, monday.Location()), nil
}

// WriteICS writes view as an iCalendar with one weekly recurring event per entry, starting
// the week of from and repeating for weeks weeks.
func WriteICS(w io.Writer, view View, from time.Time, weeks int) error {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}
	monday := WeekStart(from)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//z1academic//timetable//EN")
	cal.SetName(fmt.Sprintf("Level %d timetable", view.Level))

	now := time.Now()
	for i, e := range view.Entries {
		start, err := slotStart(monday, e.Day, e.TimeSlot)
		if err != nil {
			return err
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%d@z1academic", view.ID, i))
		event.SetDtStampTime(now)
		event.SetModifiedAt(view.UpdatedAt)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(timeSlotDuration))
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeks))

		summary := e.CourseID
		if e.Course != nil {
			summary = fmt.Sprintf("%s - %s", e.Course.Code, e.Course.Name)
			event.SetDescription(fmt.Sprintf("Units: %d\nLecturer: %s", e.Course.Units, e.Course.LecturerID))
		}
		event.SetSummary(summary)
	}

	return cal.SerializeTo(w)
}
