package inmemdb

import (
	"sync"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/admission"
	"github.com/PrimotionStudio/z1academic/core/course"
	"github.com/PrimotionStudio/z1academic/core/finance"
	"github.com/PrimotionStudio/z1academic/core/grading"
	"github.com/PrimotionStudio/z1academic/core/resource"
	"github.com/PrimotionStudio/z1academic/core/settings"
	"github.com/PrimotionStudio/z1academic/core/timetable"
	"github.com/PrimotionStudio/z1academic/core/user"
)

// sortableTime formats times so that they sort as strings.
const sortableTime = "2006-01-02T15:04:05.000000000"

type (
	// DB is a document store kept in memory, used by tests and the debug server.
	DB struct {
		users        *table[user.User]
		faculties    *table[academic.Faculty]
		departments  *table[academic.Department]
		lecturers    *table[academic.Lecturer]
		terms        map[academic.TermKind]*table[academic.Term]
		courses      *table[course.Course]
		electives    *table[course.Elective]
		schemes      *table[grading.Scheme]
		timetables   *table[timetable.Timetable]
		fees         *table[finance.Fee]
		transactions *table[finance.Transaction]
		resources    map[resource.Kind]*table[resource.Resource]
		applications *table[admission.Application]
		institution  *singleton[settings.Institution]
	}

	// table keeps documents by ID and remembers their insertion order.
	table[T any] struct {
		sync.RWMutex
		rows  map[string]*T
		order []string
	}

	singleton[T any] struct {
		sync.RWMutex
		doc T
	}
)

func Open() *DB {
	return &DB{
		users:       newTable[user.User](),
		faculties:   newTable[academic.Faculty](),
		departments: newTable[academic.Department](),
		lecturers:   newTable[academic.Lecturer](),
		terms: map[academic.TermKind]*table[academic.Term]{
			academic.KindSession: newTable[academic.Term](),
			academic.KindPeriod:  newTable[academic.Term](),
		},
		courses:      newTable[course.Course](),
		electives:    newTable[course.Elective](),
		schemes:      newTable[grading.Scheme](),
		timetables:   newTable[timetable.Timetable](),
		fees:         newTable[finance.Fee](),
		transactions: newTable[finance.Transaction](),
		resources: map[resource.Kind]*table[resource.Resource]{
			resource.KindBook:  newTable[resource.Resource](),
			resource.KindVideo: newTable[resource.Resource](),
		},
		applications: newTable[admission.Application](),
		institution:  &singleton[settings.Institution]{},
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

// The following helpers expect the caller to hold the table lock.

func (t *table[T]) insert(id string, doc T) {
	t.rows[id] = &doc
	t.order = append(t.order, id)
}

func (t *table[T]) get(id string) (T, bool) {
	if doc, ok := t.rows[id]; ok {
		return *doc, true
	}
	var zero T
	return zero, false
}

// set replaces an existing document, returning false if there is none.
func (t *table[T]) set(id string, doc T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = &doc
	return true
}

func (t *table[T]) delete(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// filter returns the documents matching keep (all if nil) in insertion order.
func (t *table[T]) filter(keep func(T) bool) []T {
	docs := make([]T, 0, len(t.order))
	for _, id := range t.order {
		doc := *t.rows[id]
		if keep == nil || keep(doc) {
			docs = append(docs, doc)
		}
	}
	return docs
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, id := range t.order {
		if doc := *t.rows[id]; match(doc) {
			return doc, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) getMany(ids []string) []T {
	docs := make([]T, 0, len(ids))
	for _, id := range core.UniqueStrings(ids) {
		if doc, ok := t.rows[id]; ok {
			docs = append(docs, *doc)
		}
	}
	return docs
}
