package api

import "github.com/platemind/backend/internal/pipeline"

type GenerateRecipeRequest struct {
	DishName string `json:"dish_name" binding:"required"`
}

type IngredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

type ChatRequest struct {
	Message string              `json:"message" binding:"required"`
	Context []pipeline.ChatTurn `json:"context"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SaveRecipeRequest struct {
	Recipe pipeline.Recipe `json:"recipe" binding:"required"`
}
