package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.users}
}

func (repo *userRepository) CheckUniqueness(_ context.Context, email, phone string, excludedIDs ...string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sort.Strings(excludedIDs)
	for _, usr := range repo.db.filter(nil) {
		if isExcluded(usr.ID, excludedIDs) {
			continue
		}
		if strings.EqualFold(usr.Email, email) {
			return user.ErrEmailExists
		}
		if phone != "" && usr.Phone == phone {
			return user.ErrPhoneExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = core.NewID()
	repo.db.insert(usr.ID, usr)
	return usr, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var keep func(user.User) bool
	if filter != nil && !filter.IsEmpty() {
		search := strings.ToLower(filter.Search)
		keep = func(usr user.User) bool {
			if search != "" &&
				!strings.Contains(strings.ToLower(usr.FullName), search) &&
				!strings.Contains(strings.ToLower(usr.Email), search) &&
				!strings.Contains(usr.Phone, search) {
				return false
			}
			if len(filter.Roles) > 0 && !contains(filter.Roles, usr.Role) {
				return false
			}
			if filter.Verified != nil && usr.Verified != *filter.Verified {
				return false
			}
			return true
		}
	}

	users := repo.db.filter(keep)
	if len(ordering) > 0 {
		sort.SliceStable(users, func(i, j int) bool {
			for _, ord := range ordering {
				a, b := userField(users[i], ord.Field), userField(users[j], ord.Field)
				if a == b {
					continue
				}
				if ord.Ascending {
					return a < b
				}
				return a > b
			}
			return false
		})
	}
	return users, nil
}

// userField returns a sortable representation of the field of usr.
func userField(usr user.User, field string) string {
	switch field {
	case "full_name":
		return strings.ToLower(usr.FullName)
	case "email":
		return usr.Email
	case "role":
		return usr.Role
	case "updated_at":
		return usr.UpdatedAt.Format(sortableTime)
	default:
		return usr.CreatedAt.Format(sortableTime)
	}
}

func (repo *userRepository) GetUser(_ context.Context, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUsers(_ context.Context, ids []string) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.getMany(ids), nil
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.set(usr.ID, usr) {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) SetRole(_ context.Context, id, role string) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.get(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.Role = role
	usr.UpdatedAt = core.Now()
	repo.db.set(id, usr)
	return usr, nil
}

// isExcluded expects sorted excludedIDs.
func isExcluded(id string, excludedIDs []string) bool {
	idx := sort.SearchStrings(excludedIDs, id)
	return idx < len(excludedIDs) && excludedIDs[idx] == id
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
