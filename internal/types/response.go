package types

import (
	"time"

	"firetask-backend/internal/models"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) Response {
	return Response{Status: "success", Message: message, Data: data}
}

func Failed(message string) Response {
	return Response{Status: "failed", Message: message}
}

func FailedWithData(message string, data interface{}) Response {
	return Response{Status: "failed", Message: message, Data: data}
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FirebaseUID string    `json:"firebase_uid"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FirebaseUID: user.FirebaseUID,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// LoginResponse is the sign-in payload: the provider session plus the local
// user record it maps to.
type LoginResponse struct {
	FirebaseID           string       `json:"firebase_id"`
	FirebaseAccessToken  string       `json:"firebase_access_token"`
	FirebaseRefreshToken string       `json:"firebase_refresh_token"`
	FirebaseExpiresIn    string       `json:"firebase_expires_in"`
	FirebaseKind         string       `json:"firebase_kind"`
	UserData             UserResponse `json:"user_data"`
}

type TodoResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Active    bool      `json:"active"`
	UserID    uint      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTodoResponse(todo *models.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		Active:    todo.Active,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}
