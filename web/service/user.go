package service

import (
	"strings"

	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/util/crypto"

	"gorm.io/gorm"
)

type UserService struct {
	DB   *gorm.DB
	auth *AuthService
}

func NewUserService(db *gorm.DB, auth *AuthService) *UserService {
	return &UserService{DB: db, auth: auth}
}

// Profile is the account summary shown to its owner.
type Profile struct {
	Id          int    `json:"id"`
	Nickname    string `json:"nickname"`
	IsActive    bool   `json:"is_active"`
	Favorites   []int  `json:"favorites"`
	RecipeCount int64  `json:"number_my_recipe"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an active account. A taken nickname yields ErrDuplicateNickname
// and leaves the table untouched.
func (s *UserService) Register(nickname, password string, role model.Role) (*model.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || password == "" {
		return nil, NewInputError("nickname and password are required")
	}
	if crypto.IsPasswordTooLong(password) {
		return nil, NewInputError("password is too long")
	}
	if role == "" {
		role = model.RoleUser
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Nickname:       nickname,
		HashedPassword: hash,
		IsActive:       true,
		Role:           role,
	}
	if err := s.DB.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			logger.Infof("nickname %q is busy", nickname)
			return nil, ErrDuplicateNickname
		}
		return nil, storageError("register user", err)
	}
	return user, nil
}

// Login checks the credentials and issues an access token.
func (s *UserService) Login(nickname, password string) (*Token, error) {
	nickname = strings.TrimSpace(nickname)
	user, err := database.GetUserByNickname(s.DB, nickname)
	if database.IsNotFound(err) {
		return nil, ErrInvalidUsername
	} else if err != nil {
		return nil, storageError("login", err)
	}
	if !s.auth.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidPassword
	}
	token, err := s.auth.IssueToken(user.Nickname, s.auth.TTL())
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: token, TokenType: TokenType}, nil
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	user, err := database.GetUser(s.DB, id)
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, storageError("get user", err)
	}
	return user, nil
}

// GetProfile lists the liked recipe ids and counts the user's recipes.
func (s *UserService) GetProfile(id int) (*Profile, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	likes, err := database.GetLikesByUser(s.DB, id)
	if err != nil {
		return nil, storageError("get profile", err)
	}
	count, err := database.CountRecipesByUser(s.DB, id)
	if err != nil {
		return nil, storageError("get profile", err)
	}
	favorites := make([]int, 0, len(likes))
	for _, like := range likes {
		favorites = append(favorites, like.RecipeId)
	}
	return &Profile{
		Id:          user.Id,
		Nickname:    user.Nickname,
		IsActive:    user.IsActive,
		Favorites:   favorites,
		RecipeCount: count,
	}, nil
}

// ToggleActive flips the user's active flag. Calling it twice restores the
// original state; it is not a one-way ban.
func (s *UserService) ToggleActive(id int) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	err = s.DB.Model(user).Update("is_active", user.IsActive).Error
	if err != nil {
		return nil, storageError("toggle user", err)
	}
	return user, nil
}

// Delete removes the user; recipes, likes and tag links go with it.
func (s *UserService) Delete(id int) error {
	res := s.DB.Delete(&model.User{}, id)
	if res.Error != nil {
		return storageError("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EnsureAdmin creates an admin account unless one already exists.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(nickname, password string) (bool, error) {
	var count int64
	err := s.DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error
	if err != nil {
		return false, storageError("count admins", err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.Register(nickname, password, model.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
