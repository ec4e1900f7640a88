// Package service provides the business logic of the job board:
// identity and token management, the catalog and application stores,
// and the role-scoped query shaping with derived fields.
package service

import (
	"net/mail"
	"strings"

	"jobboard/database"
	"jobboard/database/model"
	"jobboard/logger"
	"jobboard/util/common"
	"jobboard/util/crypto"
	"jobboard/util/random"
)

type UserService struct{}

// RegisterRequest carries the self-registration payload.
type RegisterRequest struct {
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	PasswordConfirm string     `json:"password_confirm"`
	Role            model.Role `json:"role"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	CompanyName     string     `json:"company_name"`
	PhoneNumber     string     `json:"phone_number"`
	Bio             string     `json:"bio"`
}

// UserQuery shapes the authenticated user listing.
type UserQuery struct {
	Role     model.Role
	IsActive *bool
	Search   string
	Ordering string
}

func (req *RegisterRequest) validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		errs["username"] = "This field is required."
	}
	if req.Email == "" {
		errs["email"] = "This field is required."
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}
	if len(req.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters."
	}
	if req.Password != req.PasswordConfirm {
		errs["password_confirm"] = "Passwords do not match."
	}
	if req.Role == "" {
		req.Role = model.RoleJobSeeker
	}
	if req.Role == model.RoleAdmin {
		errs["role"] = "Cannot register as admin user."
	} else if !model.ValidRole(req.Role) {
		errs["role"] = "Invalid role."
	}
	if len(errs) > 0 {
		return &common.ValidationError{Fields: errs}
	}
	return nil
}

// Register creates a user and issues its bearer token. Admin
// self-registration is rejected; username and email must be unique.
func (s *UserService) Register(req *RegisterRequest) (*model.User, *model.AuthToken, error) {
	if err := req.validate(); err != nil {
		return nil, nil, err
	}

	db := database.GetDB()
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, common.NewValidationError("username", "A user with that username already exists.")
	}
	if err := db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, common.NewValidationError("email", "A user with that email already exists.")
	}

	hash, err := crypto.HashPasswordAsBcrypt(req.Password)
	if err != nil {
		return nil, nil, err
	}
	user := &model.User{
		Username:    strings.TrimSpace(req.Username),
		Email:       req.Email,
		Password:    hash,
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			// Lost a race against a concurrent registration.
			return nil, nil, common.NewValidationError("username", "A user with that username already exists.")
		}
		return nil, nil, err
	}

	token, err := s.GetOrCreateToken(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Authenticate checks credentials and returns the principal with its
// token. Unknown users, wrong passwords and disabled accounts all
// surface the same error.
func (s *UserService) Authenticate(username, password string) (*model.User, *model.AuthToken, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil, common.ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("authenticate lookup failed:", err)
		return nil, nil, err
	}
	if !user.IsActive || !crypto.CheckPasswordHash(user.Password, password) {
		return nil, nil, common.ErrInvalidCredentials
	}
	token, err := s.GetOrCreateToken(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// GetOrCreateToken reuses the stored token for the user or issues one.
// Repeated logins are idempotent: concurrent issuance collapses onto
// the single row guarded by the unique user index.
func (s *UserService) GetOrCreateToken(user *model.User) (*model.AuthToken, error) {
	db := database.GetDB()
	token := &model.AuthToken{}
	err := db.Where("user_id = ?", user.Id).First(token).Error
	if err == nil {
		return token, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}
	token = &model.AuthToken{Key: random.TokenKey(), UserId: user.Id}
	if err := db.Create(token).Error; err != nil {
		if database.IsDuplicateKey(err) {
			existing := &model.AuthToken{}
			if err := db.Where("user_id = ?", user.Id).First(existing).Error; err != nil {
				return nil, err
			}
			return existing, nil
		}
		return nil, err
	}
	return token, nil
}

// RevokeToken deletes the principal's token (logout).
func (s *UserService) RevokeToken(principal *model.User) error {
	db := database.GetDB()
	return db.Where("user_id = ?", principal.Id).Delete(&model.AuthToken{}).Error
}

// GetUserByToken resolves a principal from an opaque token key.
func (s *UserService) GetUserByToken(key string) (*model.User, error) {
	db := database.GetDB()
	token := &model.AuthToken{}
	err := db.Preload("User").Where("key = ?", key).First(token).Error
	if database.IsNotFound(err) {
		return nil, common.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if token.User == nil {
		return nil, common.ErrInvalidCredentials
	}
	return token.User, nil
}

// GetUser loads a profile by id.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

var userOrderings = map[string]string{
	"created_at": "created_at",
	"username":   "username",
}

// ListUsers returns the directory for authenticated callers with the
// original filter surface: role, active flag, free-text search.
func (s *UserService) ListUsers(principal *model.User, q UserQuery) ([]model.User, error) {
	if principal == nil {
		return nil, common.ErrForbidden
	}
	db := database.GetDB().Model(&model.User{})
	if q.Role != "" {
		db = db.Where("role = ?", q.Role)
	}
	if q.IsActive != nil {
		db = db.Where("is_active = ?", *q.IsActive)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		db = db.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(company_name) LIKE ?",
			needle, needle, needle, needle, needle,
		)
	}
	var users []model.User
	err := db.Order(orderClause(q.Ordering, userOrderings, "created_at DESC")).Find(&users).Error
	return users, err
}
