package timetable

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/course"
)

// Days of the week, as stored.
const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
	Sunday    = "Sunday"
)

var (
	Days = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

	// TimeSlots are one hour long, starting at the given time.
	TimeSlots = []string{
		"7:00 AM", "8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM",
		"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
	}

	weekdays = map[string]time.Weekday{
		Monday:    time.Monday,
		Tuesday:   time.Tuesday,
		Wednesday: time.Wednesday,
		Thursday:  time.Thursday,
		Friday:    time.Friday,
		Saturday:  time.Saturday,
		Sunday:    time.Sunday,
	}
)

const (
	timeSlotLayout   = "3:04 PM"
	timeSlotDuration = time.Hour
)

func IsDay(day string) bool {
	_, ok := weekdays[day]
	return ok
}

func IsTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type Entry struct {
	CourseID string `json:"course_id" bson:"course_id" validate:"required,objectid"`
	Day      string `json:"day" bson:"day" validate:"required,weekday"`
	TimeSlot string `json:"time_slot" bson:"time_slot" validate:"required,timeslot"`
}

// Key identifies a timetable: there is at most one per department, level and semester.
type Key struct {
	DepartmentID string `json:"department_id" query:"department_id" validate:"required,objectid"`
	Level        int    `json:"level" query:"level" validate:"required,level"`
	SemesterID   string `json:"semester_id" query:"semester_id" validate:"required,objectid"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d:%s", k.DepartmentID, k.Level, k.SemesterID)
}

// IsZero reports whether none of the key fields were provided.
func (k Key) IsZero() bool {
	return k.DepartmentID == "" && k.Level == 0 && k.SemesterID == ""
}

func (k *Key) Clean() {
	k.DepartmentID = core.CleanString(k.DepartmentID)
	k.SemesterID = core.CleanString(k.SemesterID)
}

type Timetable struct {
	ID           string    `json:"id" bson:"_id"`
	DepartmentID string    `json:"department_id" bson:"department_id"`
	Level        int       `json:"level" bson:"level"`
	SemesterID   string    `json:"semester_id" bson:"semester_id"`
	Entries      []Entry   `json:"entries" bson:"entries"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

func (tt Timetable) Key() Key {
	return Key{DepartmentID: tt.DepartmentID, Level: tt.Level, SemesterID: tt.SemesterID}
}

// NewTimetable contains the information needed to set the timetable of a Key.
type NewTimetable struct {
	Key
	Entries []Entry `json:"entries" validate:"required,dive"`
}

func (nt *NewTimetable) Validate(validate *validator.Validate) error {
	nt.Key.Clean()
	for i := range nt.Entries {
		e := &nt.Entries[i]
		e.CourseID = core.CleanString(e.CourseID)
		e.Day = core.CleanString(e.Day)
		e.TimeSlot = core.CleanString(e.TimeSlot)
	}
	return validate.Struct(nt)
}

// CourseIDs returns the distinct courses of the entries.
func (nt NewTimetable) CourseIDs() []string {
	ids := make([]string, 0, len(nt.Entries))
	for _, e := range nt.Entries {
		ids = append(ids, e.CourseID)
	}
	return core.UniqueStrings(ids)
}

// PopulatedEntry is an Entry with its course resolved.
type PopulatedEntry struct {
	Entry
	Course *course.Course `json:"course"`
}

// View is a Timetable with its courses resolved.
type View struct {
	ID           string           `json:"id"`
	DepartmentID string           `json:"department_id"`
	Level        int              `json:"level"`
	SemesterID   string           `json:"semester_id"`
	Entries      []PopulatedEntry `json:"entries"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
