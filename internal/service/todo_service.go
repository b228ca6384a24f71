package service

import (
	"context"
	"errors"
	"time"

	"todo_api/internal/models"
	"todo_api/internal/repository"
)

// TodoService implements TodoLists and TodoItems. Every exported method runs
// in one transaction and checks ownership before writing.
type TodoService struct {
	repos *repository.Repository
	now   func() time.Time
}

func NewTodoService(repos *repository.Repository) *TodoService {
	return &TodoService{repos: repos, now: time.Now}
}

var (
	_ TodoLists = (*TodoService)(nil)
	_ TodoItems = (*TodoService)(nil)
)

func (s *TodoService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// notFound maps the repository miss onto the domain error.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *TodoService) CreateList(ctx context.Context, userID int64, name string) (models.TodoList, error) {
	name, err := requireText("name", name, maxListNameLen)
	if err != nil {
		return models.TodoList{}, err
	}

	var created models.TodoList
	err = s.repos.Transact(ctx, func(r *repository.Repository) error {
		var err error
		created, err = r.Lists.Create(ctx, models.TodoList{Name: name, UserID: userID, CreatedAt: s.timestamp()})
		if err != nil {
			return err
		}
		return r.Activity.Append(ctx, models.Activity{
			UserID:      userID,
			OccurredAt:  created.CreatedAt,
			Type:        models.ActivityListCreated,
			SubjectID:   created.ID,
			Description: "list created",
			Metadata:    map[string]any{"name": created.Name},
		})
	})
	if err != nil {
		return models.TodoList{}, notFound(err)
	}
	created.Items = []models.TodoItem{}
	return created, nil
}

// UserLists returns all lists of userID with their items embedded.
func (s *TodoService) UserLists(ctx context.Context, userID int64) ([]models.TodoList, error) {
	var lists []models.TodoList
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		var err error
		if lists, err = r.Lists.ListByUser(ctx, userID); err != nil {
			return err
		}
		return attachItems(ctx, r, lists)
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *TodoService) GetList(ctx context.Context, userID, listID int64) (models.TodoList, error) {
	var l models.TodoList
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		var err error
		l, err = loadOwnedList(ctx, r, userID, listID)
		return err
	})
	if err != nil {
		return models.TodoList{}, notFound(err)
	}
	return l, nil
}

func (s *TodoService) UpdateList(ctx context.Context, userID, listID int64, patch models.ListPatch) (models.TodoList, error) {
	if patch.Name.Set {
		name, err := requireText("name", patch.Name.Value, maxListNameLen)
		if err != nil {
			return models.TodoList{}, err
		}
		patch.Name.Value = name
	}

	var l models.TodoList
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		var err error
		if l, err = loadOwnedList(ctx, r, userID, listID); err != nil {
			return err
		}
		if patch.Empty() || patch.Name.Value == l.Name {
			return nil
		}
		if err := r.Lists.Rename(ctx, userID, listID, patch.Name.Value); err != nil {
			return err
		}
		previous := l.Name
		l.Name = patch.Name.Value
		return r.Activity.Append(ctx, models.Activity{
			UserID:      userID,
			OccurredAt:  s.timestamp(),
			Type:        models.ActivityListUpdated,
			SubjectID:   listID,
			Description: "list renamed",
			Metadata:    map[string]any{"from": previous, "to": l.Name},
		})
	})
	if err != nil {
		return models.TodoList{}, notFound(err)
	}
	return l, nil
}

// DeleteList removes the list and its items.
func (s *TodoService) DeleteList(ctx context.Context, userID, listID int64) error {
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		if err := r.Lists.DeleteOwned(ctx, userID, listID); err != nil {
			return err
		}
		return r.Activity.Append(ctx, models.Activity{
			UserID:      userID,
			OccurredAt:  s.timestamp(),
			Type:        models.ActivityListDeleted,
			SubjectID:   listID,
			Description: "list deleted",
		})
	})
	return notFound(err)
}

func (s *TodoService) CreateItem(ctx context.Context, userID, listID int64, in models.NewItem) (models.TodoItem, error) {
	title, err := requireText("title", in.Title, maxItemTitleLen)
	if err != nil {
		return models.TodoItem{}, err
	}

	var created models.TodoItem
	err = s.repos.Transact(ctx, func(r *repository.Repository) error {
		if _, err := r.Lists.GetOwned(ctx, userID, listID); err != nil {
			return err
		}
		var err error
		created, err = r.Items.Create(ctx, models.TodoItem{
			Title:     title,
			Completed: in.Completed,
			CreatedAt: s.timestamp(),
			ListID:    listID,
		})
		if err != nil {
			return err
		}
		return r.Activity.Append(ctx, models.Activity{
			UserID:      userID,
			OccurredAt:  created.CreatedAt,
			Type:        models.ActivityItemCreated,
			SubjectID:   created.ID,
			Description: "item created",
			Metadata:    map[string]any{"list_id": listID, "title": created.Title},
		})
	})
	if err != nil {
		return models.TodoItem{}, notFound(err)
	}
	return created, nil
}

// UpdateItem applies only the fields set in patch. An empty patch returns the
// item unchanged without writing.
func (s *TodoService) UpdateItem(ctx context.Context, userID, itemID int64, patch models.ItemPatch) (models.TodoItem, error) {
	if patch.Title.Set {
		title, err := requireText("title", patch.Title.Value, maxItemTitleLen)
		if err != nil {
			return models.TodoItem{}, err
		}
		patch.Title.Value = title
	}

	var item models.TodoItem
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		current, err := r.Items.GetOwned(ctx, userID, itemID)
		if err != nil {
			return err
		}
		item = patch.Apply(current)
		if item == current {
			return nil
		}
		if err := r.Items.Update(ctx, item); err != nil {
			return err
		}
		return r.Activity.Append(ctx, models.Activity{
			UserID:      userID,
			OccurredAt:  s.timestamp(),
			Type:        models.ActivityItemUpdated,
			SubjectID:   itemID,
			Description: "item updated",
			Metadata:    changedFields(current, item),
		})
	})
	if err != nil {
		return models.TodoItem{}, notFound(err)
	}
	return item, nil
}

func (s *TodoService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		if err := r.Items.DeleteOwned(ctx, userID, itemID); err != nil {
			return err
		}
		return r.Activity.Append(ctx, models.Activity{
			UserID:      userID,
			OccurredAt:  s.timestamp(),
			Type:        models.ActivityItemDeleted,
			SubjectID:   itemID,
			Description: "item deleted",
		})
	})
	return notFound(err)
}

func loadOwnedList(ctx context.Context, r *repository.Repository, userID, listID int64) (models.TodoList, error) {
	l, err := r.Lists.GetOwned(ctx, userID, listID)
	if err != nil {
		return models.TodoList{}, err
	}
	lists := []models.TodoList{l}
	if err := attachItems(ctx, r, lists); err != nil {
		return models.TodoList{}, err
	}
	return lists[0], nil
}

// attachItems fills Items of every list in place with one query. Lists without items get an empty slice.
func attachItems(ctx context.Context, r *repository.Repository, lists []models.TodoList) error {
	if len(lists) == 0 {
		return nil
	}
	ids := make([]int64, len(lists))
	index := make(map[int64]int, len(lists))
	for i := range lists {
		ids[i] = lists[i].ID
		index[lists[i].ID] = i
		lists[i].Items = []models.TodoItem{}
	}

	items, err := r.Items.ListByLists(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if i, ok := index[it.ListID]; ok {
			lists[i].Items = append(lists[i].Items, it)
		}
	}
	return nil
}

func changedFields(before, after models.TodoItem) map[string]any {
	changed := make(map[string]any, 2)
	if before.Title != after.Title {
		changed["title"] = after.Title
	}
	if before.Completed != after.Completed {
		changed["completed"] = after.Completed
	}
	return changed
}
