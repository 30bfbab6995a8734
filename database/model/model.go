// Package model defines the persisted entities of the recipe service.
package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account. IsActive gates the right to publish recipes.
type User struct {
	Id             int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Nickname       string `json:"nickname" gorm:"uniqueIndex;not null"`
	HashedPassword string `json:"-" gorm:"not null"`
	IsActive       bool   `json:"is_active" gorm:"not null"`
	Role           Role   `json:"role" gorm:"not null"`

	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	Likes   []Like   `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Recipe is a published recipe. Inactive recipes are hidden from listings.
type Recipe struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorId     int       `json:"author_id" gorm:"index;not null"`
	Name         string    `json:"name" gorm:"index;not null"`
	Description  string    `json:"description"`
	StepsMaking  string    `json:"steps_making" gorm:"type:text"`
	Photo        string    `json:"photo"`
	Type         string    `json:"type" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	DateCreation time.Time `json:"date_creation" gorm:"type:date"`

	Author *User           `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	Tags   []RecipeHashtag `json:"-" gorm:"foreignKey:RecipeId;constraint:OnDelete:CASCADE"`
	Likes  []Like          `json:"-" gorm:"foreignKey:RecipeId;constraint:OnDelete:CASCADE"`
}

// TagNames returns the text of the preloaded tags.
func (r *Recipe) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		if t.Hashtag != nil {
			names = append(names, t.Hashtag.Tag)
		}
	}
	return names
}

type Hashtag struct {
	Id  int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Tag string `json:"tag" gorm:"uniqueIndex;not null"`

	Recipes []RecipeHashtag `json:"-" gorm:"foreignKey:TagId;constraint:OnDelete:CASCADE"`
}

// RecipeHashtag links a hashtag to a recipe. The pair is unique.
type RecipeHashtag struct {
	Id       int `json:"id" gorm:"primaryKey;autoIncrement"`
	TagId    int `json:"tag_id" gorm:"not null;uniqueIndex:unique_tag;index"`
	RecipeId int `json:"recipe_id" gorm:"not null;uniqueIndex:unique_tag;index"`

	Hashtag *Hashtag `json:"-" gorm:"foreignKey:TagId;constraint:OnDelete:CASCADE"`
}

// Like marks a recipe as a favorite of a user. The pair is unique.
type Like struct {
	Id       int `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId   int `json:"user_id" gorm:"not null;uniqueIndex:unique_likes;index"`
	RecipeId int `json:"recipe_id" gorm:"not null;uniqueIndex:unique_likes;index"`
}

// RecipeLikes is one row of the like ranking.
type RecipeLikes struct {
	RecipeId int
	Likes    int64
}
