package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/PrimotionStudio/z1academic/core"
)

// collections
const (
	usersCollection        = "users"
	facultiesCollection    = "faculties"
	departmentsCollection  = "departments"
	lecturersCollection    = "lecturers"
	sessionsCollection     = "sessions"
	periodsCollection      = "periods"
	coursesCollection      = "courses"
	electivesCollection    = "electives"
	schemesCollection      = "grade_schemes"
	timetablesCollection   = "timetables"
	feesCollection         = "fees"
	transactionsCollection = "transactions"
	booksCollection        = "books"
	videosCollection       = "videos"
	applicationsCollection = "applications"
	settingsCollection     = "settings"
)

// DB is an open document database.
type DB struct {
	client *mongo.Client
	*mongo.Database
}

// Open connects to conf.Database.URI and waits for the server to answer.
func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	opts := options.Client().
		ApplyURI(conf.Database.URI).
		SetAppName(conf.AppName).
		SetConnectTimeout(conf.Database.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if err = ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &DB{client: client, Database: client.Database(conf.Database.Name)}, nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, client *mongo.Client) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = client.Ping(ctx, readpref.Primary()); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping canceled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

type index struct {
	collection string
	keys       bson.D
	unique     bool
}

var indexes = []index{
	{collection: usersCollection, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	{collection: usersCollection, keys: bson.D{{Key: "phone", Value: 1}}, unique: true},
	{collection: departmentsCollection, keys: bson.D{{Key: "faculty_id", Value: 1}}},
	{collection: lecturersCollection, keys: bson.D{{Key: "user_id", Value: 1}}, unique: true},
	{collection: sessionsCollection, keys: bson.D{{Key: "is_active", Value: 1}}},
	{collection: periodsCollection, keys: bson.D{{Key: "is_active", Value: 1}}},
	{collection: coursesCollection, keys: bson.D{{Key: "department_id", Value: 1}, {Key: "level", Value: 1}, {Key: "semester_id", Value: 1}}},
	{collection: coursesCollection, keys: bson.D{{Key: "lecturer_id", Value: 1}}},
	{collection: electivesCollection, keys: bson.D{{Key: "department_id", Value: 1}, {Key: "level", Value: 1}, {Key: "semester_id", Value: 1}}},
	{collection: schemesCollection, keys: bson.D{{Key: "department_id", Value: 1}, {Key: "level", Value: 1}, {Key: "semester_id", Value: 1}}, unique: true},
	{collection: timetablesCollection, keys: bson.D{{Key: "department_id", Value: 1}, {Key: "level", Value: 1}, {Key: "semester_id", Value: 1}}, unique: true},
	{collection: transactionsCollection, keys: bson.D{{Key: "transaction_id", Value: 1}}, unique: true},
	{collection: transactionsCollection, keys: bson.D{{Key: "user_id", Value: 1}}},
	{collection: booksCollection, keys: bson.D{{Key: "published_status", Value: 1}}},
	{collection: videosCollection, keys: bson.D{{Key: "published_status", Value: 1}}},
	{collection: applicationsCollection, keys: bson.D{{Key: "status", Value: 1}}},
}

// EnsureIndexes creates the indexes the repositories rely on, uniqueness ones included.
func EnsureIndexes(ctx context.Context, db *DB) error {
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.keys}
		if idx.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return errors.Wrapf(err, "creating %s index", idx.collection)
		}
	}
	return nil
}
