package handlers

import (
	"net/http"

	"todo_api/internal/models"

	"github.com/gin-gonic/gin"
)

type createItemRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "list id"
// @Param        input  body      createItemRequest  true  "item"
// @Success      201    {object}  models.TodoItem
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /lists/{id}/items/ [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context) {
	listID, ok := pathID(c)
	if !ok {
		return
	}
	var input createItemRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}
	user := currentUser(c)

	item, err := h.services.CreateItem(c.Request.Context(), user.ID, listID, models.NewItem{
		Title:     input.Title,
		Completed: input.Completed,
	})
	if err != nil {
		h.respondError(c, err, detailListNotFound, "item_create_failed", "user_id", user.ID, "list_id", listID)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      Update item
// @Description  Partial update; omitted or null fields are left unchanged.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id     path      int               true  "item id"
// @Param        input  body      models.ItemPatch  true  "patch"
// @Success      200    {object}  models.TodoItem
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /items/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.ItemPatch
	if ok := h.bindJSON(c, &patch); !ok {
		return
	}
	user := currentUser(c)

	item, err := h.services.UpdateItem(c.Request.Context(), user.ID, id, patch)
	if err != nil {
		h.respondError(c, err, detailItemNotFound, "item_update_failed", "user_id", user.ID, "item_id", id)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Delete item
// @Tags         items
// @Param        id   path  int  true  "item id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	if err := h.services.DeleteItem(c.Request.Context(), user.ID, id); err != nil {
		h.respondError(c, err, detailItemNotFound, "item_delete_failed", "user_id", user.ID, "item_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
