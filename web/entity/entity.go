// Package entity defines the response shapes of the HTTP API.
package entity

import (
	"github.com/kitchenhub/recipe-service/database/model"
)

const dateFormat = "2006-01-02"

// Msg is the body of every error response.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj,omitempty"`
}

// Detail is the body of a successful deletion.
type Detail struct {
	Detail string `json:"detail"`
}

// UserShow is the public view of an account.
type UserShow struct {
	Id       int    `json:"id"`
	Nickname string `json:"nickname"`
	IsActive bool   `json:"is_active"`
}

func NewUserShow(u *model.User) UserShow {
	return UserShow{Id: u.Id, Nickname: u.Nickname, IsActive: u.IsActive}
}

// RecipeShow is the public view of a recipe with its author, like count and tags.
type RecipeShow struct {
	Id           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	StepsMaking  string   `json:"steps_making"`
	Type         string   `json:"type"`
	IsActive     bool     `json:"is_active"`
	DateCreation string   `json:"date_creation"`
	Photo        *string  `json:"photo"`
	Author       string   `json:"author"`
	Likes        int      `json:"likes"`
	Tags         []string `json:"tags"`
}

func NewRecipeShow(r *model.Recipe) RecipeShow {
	show := RecipeShow{
		Id:           r.Id,
		Name:         r.Name,
		Description:  r.Description,
		StepsMaking:  r.StepsMaking,
		Type:         r.Type,
		IsActive:     r.IsActive,
		DateCreation: r.DateCreation.Format(dateFormat),
		Likes:        len(r.Likes),
		Tags:         r.TagNames(),
	}
	if r.Photo != "" {
		photo := r.Photo
		show.Photo = &photo
	}
	if r.Author != nil {
		show.Author = r.Author.Nickname
	}
	return show
}

func NewRecipeShows(recipes []model.Recipe) []RecipeShow {
	out := make([]RecipeShow, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeShow(&recipes[i]))
	}
	return out
}

// Favorites is returned after a like toggle.
type Favorites struct {
	UserId    int    `json:"user_id"`
	Favorites []int  `json:"favorites"`
	Status    string `json:"status"`
}
