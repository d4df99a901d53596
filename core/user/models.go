package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

// Roles
const (
	RoleUser     = "User"
	RoleStudent  = "Student"
	RoleLecturer = "Lecturer"

	// Admin
	RoleSuperAdmin                   = "Super Admin"
	RoleFinancialOfficer             = "Financial Officer"
	RoleAdmissionsOfficer            = "Admissions Officer"
	RoleGeneralAcademicsOfficer      = "General Academics Officer"
	RoleGeneralExaminationOfficer    = "General Examination Officer"
	RoleDepartmentAcademicsOfficer   = "Department Academics Officer"
	RoleDepartmentExaminationOfficer = "Department Examination Officer"

	DefaultRole = RoleGeneralAcademicsOfficer
)

var (
	AdminRoles = []string{
		RoleSuperAdmin,
		RoleFinancialOfficer,
		RoleAdmissionsOfficer,
		RoleGeneralAcademicsOfficer,
		RoleGeneralExaminationOfficer,
		RoleDepartmentAcademicsOfficer,
		RoleDepartmentExaminationOfficer,
	}
	AllRoles = getAllRoles()

	Roles = getRoles()
)

func getAllRoles() []string {
	all := make([]string, 0, len(AdminRoles)+3)
	all = append(all, RoleUser, RoleStudent, RoleLecturer)
	all = append(all, AdminRoles...)
	return all
}

func getRoles() []Role {
	roles := make([]Role, 0, len(AllRoles))
	for _, r := range AllRoles {
		roles = append(roles, Role{Name: r, Value: r, IsAdmin: IsAdminRole(r)})
	}
	return roles
}

func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Role struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	IsAdmin bool   `json:"is_admin"`
}

type User struct {
	ID        string    `json:"id" bson:"_id"`
	FullName  string    `json:"full_name" bson:"full_name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Photo     string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Role      string    `json:"role" bson:"role"`
	Verified  bool      `json:"verified" bson:"verified"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

func (u User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Photo    string `json:"photo" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,userrole"`
	Verified bool   `json:"verified"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.FullName = core.CleanString(nu.FullName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Phone = cleanPhone(nu.Phone)
	nu.Photo = core.CleanString(nu.Photo)
	nu.Role = core.CleanString(nu.Role)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Photo    string `json:"photo" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,userrole"`
	Verified *bool  `json:"verified"`
}

// Validate cleans the update and falls back to origUsr values for the omitted fields.
func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate) error {
	if name := core.CleanString(uu.FullName); name != "" {
		uu.FullName = name
	} else {
		uu.FullName = origUsr.FullName
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if phone := cleanPhone(uu.Phone); phone != "" {
		uu.Phone = phone
	} else {
		uu.Phone = origUsr.Phone
	}

	if photo := core.CleanString(uu.Photo); photo != "" {
		uu.Photo = photo
	} else {
		uu.Photo = origUsr.Photo
	}

	if role := core.CleanString(uu.Role); role != "" {
		uu.Role = role
	} else {
		uu.Role = origUsr.Role
	}

	return validate.Struct(uu)
}

type QueryFilter struct {
	Search   string   `query:"search"`
	Roles    []string `query:"role"`
	Verified *bool    `query:"verified"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.Verified == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
