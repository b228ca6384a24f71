package handlers

import (
	"context"
	"net/http"
	"sync"

	"todo_api/internal/models"
	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser    models.User
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int64
	parseErr      error
	user          models.User
	userErr       error
	deleteErr     error

	lastSignUp      models.RegisterInput
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
	lastDeleted     int64
}

func (m *mockAuth) SignUp(_ context.Context, in models.RegisterInput) (models.User, error) {
	m.lastSignUp = in
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) CurrentUser(_ context.Context, userID int64) (models.User, error) {
	if m.userErr != nil {
		return models.User{}, m.userErr
	}
	u := m.user
	u.ID = userID
	return u, nil
}

func (m *mockAuth) DeleteAccount(_ context.Context, userID int64) error {
	m.lastDeleted = userID
	return m.deleteErr
}

// mockLists is shared with websocket handler goroutines, hence the lock.
type mockLists struct {
	mu      sync.Mutex
	list    models.TodoList
	lists   []models.TodoList
	err     error
	lastUID int64
	lastID  int64
	lastArg string
	patch   models.ListPatch
	calls   int
}

func (m *mockLists) CreateList(_ context.Context, userID int64, name string) (models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUID, m.lastArg = userID, name
	return m.list, m.err
}

func (m *mockLists) UserLists(_ context.Context, userID int64) ([]models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUID = userID
	return m.lists, m.err
}

func (m *mockLists) GetList(_ context.Context, userID, listID int64) (models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUID, m.lastID = userID, listID
	return m.list, m.err
}

func (m *mockLists) UpdateList(_ context.Context, userID, listID int64, patch models.ListPatch) (models.TodoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUID, m.lastID, m.patch = userID, listID, patch
	return m.list, m.err
}

func (m *mockLists) DeleteList(_ context.Context, userID, listID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUID, m.lastID = userID, listID
	return m.err
}

// seen returns the call count and the last user id under the lock.
func (m *mockLists) seen() (int, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, m.lastUID
}

type mockItems struct {
	item    models.TodoItem
	err     error
	lastUID int64
	lastID  int64
	newItem models.NewItem
	patch   models.ItemPatch
	calls   int
}

func (m *mockItems) CreateItem(_ context.Context, userID, listID int64, in models.NewItem) (models.TodoItem, error) {
	m.calls++
	m.lastUID, m.lastID, m.newItem = userID, listID, in
	return m.item, m.err
}

func (m *mockItems) UpdateItem(_ context.Context, userID, itemID int64, patch models.ItemPatch) (models.TodoItem, error) {
	m.calls++
	m.lastUID, m.lastID, m.patch = userID, itemID, patch
	return m.item, m.err
}

func (m *mockItems) DeleteItem(_ context.Context, userID, itemID int64) error {
	m.calls++
	m.lastUID, m.lastID = userID, itemID
	return m.err
}

type mockActivity struct {
	resp    []models.Activity
	err     error
	lastUID int64
	filter  service.ActivityFilter
	calls   int
}

func (m *mockActivity) List(_ context.Context, userID int64, f service.ActivityFilter) ([]models.Activity, error) {
	m.calls++
	m.lastUID = userID
	m.filter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeaders(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
