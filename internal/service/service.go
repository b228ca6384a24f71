package service

import (
	"context"

	"todo_api/internal/models"
	"todo_api/internal/repository"
	"todo_api/internal/security"
)

type Authorization interface {
	SignUp(ctx context.Context, in models.RegisterInput) (models.User, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int64, error)
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

// TodoLists covers list CRUD, always scoped to the calling user.
type TodoLists interface {
	CreateList(ctx context.Context, userID int64, name string) (models.TodoList, error)
	UserLists(ctx context.Context, userID int64) ([]models.TodoList, error)
	GetList(ctx context.Context, userID, listID int64) (models.TodoList, error)
	UpdateList(ctx context.Context, userID, listID int64, patch models.ListPatch) (models.TodoList, error)
	DeleteList(ctx context.Context, userID, listID int64) error
}

// TodoItems covers item CRUD; ownership is resolved through the parent list.
type TodoItems interface {
	CreateItem(ctx context.Context, userID, listID int64, in models.NewItem) (models.TodoItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, patch models.ItemPatch) (models.TodoItem, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
}

// ActivityLog exposes the per-user audit trail with filtering.
type ActivityLog interface {
	List(ctx context.Context, userID int64, f ActivityFilter) ([]models.Activity, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	TodoLists
	TodoItems
	ActivityLog
}

// NewService wires the repository layer and the token manager into concrete services.
func NewService(repos *repository.Repository, tokens *security.TokenManager) *Service {
	todos := NewTodoService(repos)
	return &Service{
		Authorization: NewAuthService(repos, tokens),
		TodoLists:     todos,
		TodoItems:     todos,
		ActivityLog:   NewActivityService(repos.Activity),
	}
}
