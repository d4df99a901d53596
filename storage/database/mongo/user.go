package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

// userOrderingFields maps the accepted ?ordering fields to document fields.
var userOrderingFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"full_name":  "full_name",
	"email":      "email",
	"role":       "role",
}

type userRepository struct {
	users collection[user.User]
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{users: newCollection[user.User](db, usersCollection, user.ErrNotFound)}
}

func (repo *userRepository) CheckUniqueness(ctx context.Context, email, phone string, excludedIDs ...string) error {
	or := bson.A{bson.M{"email": email}}
	if phone != "" {
		or = append(or, bson.M{"phone": phone})
	}
	filter := bson.M{"$or": or}
	if len(excludedIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludedIDs}
	}

	usr, err := repo.users.findOne(ctx, filter)
	switch {
	case err == user.ErrNotFound:
		return nil
	case err != nil:
		return err
	case usr.Email == email:
		return user.ErrEmailExists
	default:
		return user.ErrPhoneExists
	}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = core.NewID()
	if err := repo.users.insert(ctx, usr); err != nil {
		if err == errDuplicate {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Search != "" {
			rx := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
			query["$or"] = bson.A{
				bson.M{"full_name": rx},
				bson.M{"email": rx},
				bson.M{"phone": rx},
			}
		}
		if len(filter.Roles) > 0 {
			query["role"] = bson.M{"$in": filter.Roles}
		}
		if filter.Verified != nil {
			query["verified"] = *filter.Verified
		}
	}

	var sort bson.D
	for _, ord := range ordering {
		fld, ok := userOrderingFields[ord.Field]
		if !ok {
			continue
		}
		direction := -1
		if ord.Ascending {
			direction = 1
		}
		sort = append(sort, bson.E{Key: fld, Value: direction})
	}
	return repo.users.find(ctx, query, sort)
}

func (repo *userRepository) GetUser(ctx context.Context, id string) (user.User, error) {
	return repo.users.findOne(ctx, byID(id))
}

func (repo *userRepository) GetUsers(ctx context.Context, ids []string) ([]user.User, error) {
	return repo.users.findIDs(ctx, core.UniqueStrings(ids))
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.users.replace(ctx, usr.ID, usr); err != nil {
		if err == errDuplicate {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) SetRole(ctx context.Context, id, role string) (user.User, error) {
	return repo.users.set(ctx, id, bson.M{"role": role, "updated_at": core.Now()})
}
