package handlers

import (
	"net/http"
	"strconv"

	"todo_api/internal/models"

	"github.com/gin-gonic/gin"
)

type createListRequest struct {
	Name string `json:"name"`
}

// pathID parses the :id path parameter and writes a 400 if it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortDetail(c, http.StatusBadRequest, detailInvalidID)
		return 0, false
	}
	return id, true
}

// @Summary      Create list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        input  body      createListRequest  true  "list"
// @Success      201    {object}  models.TodoList
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /lists/ [post]
// @Security     BearerAuth
func (h *Handler) createList(c *gin.Context) {
	var input createListRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}
	user := currentUser(c)

	list, err := h.services.CreateList(c.Request.Context(), user.ID, input.Name)
	if err != nil {
		h.respondError(c, err, detailListNotFound, "list_create_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// @Summary      My lists
// @Description  Every list of the caller with its items.
// @Tags         lists
// @Produce      json
// @Success      200  {array}   models.TodoList
// @Failure      401  {object}  errorResponse
// @Router       /lists/ [get]
// @Security     BearerAuth
func (h *Handler) getLists(c *gin.Context) {
	user := currentUser(c)

	lists, err := h.services.UserLists(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, detailListNotFound, "list_index_failed", "user_id", user.ID)
		return
	}
	if lists == nil {
		lists = []models.TodoList{}
	}
	c.JSON(http.StatusOK, lists)
}

// @Summary      Get list
// @Tags         lists
// @Produce      json
// @Param        id   path      int  true  "list id"
// @Success      200  {object}  models.TodoList
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /lists/{id} [get]
// @Security     BearerAuth
func (h *Handler) getList(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	list, err := h.services.GetList(c.Request.Context(), user.ID, id)
	if err != nil {
		h.respondError(c, err, detailListNotFound, "list_get_failed", "user_id", user.ID, "list_id", id)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Rename list
// @Description  Partial update; omitted fields are left unchanged.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        id     path      int               true  "list id"
// @Param        input  body      models.ListPatch  true  "patch"
// @Success      200    {object}  models.TodoList
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /lists/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateList(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.ListPatch
	if ok := h.bindJSON(c, &patch); !ok {
		return
	}
	user := currentUser(c)

	list, err := h.services.UpdateList(c.Request.Context(), user.ID, id, patch)
	if err != nil {
		h.respondError(c, err, detailListNotFound, "list_update_failed", "user_id", user.ID, "list_id", id)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Delete list
// @Description  Removes the list and all of its items.
// @Tags         lists
// @Param        id   path  int  true  "list id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /lists/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteList(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	if err := h.services.DeleteList(c.Request.Context(), user.ID, id); err != nil {
		h.respondError(c, err, detailListNotFound, "list_delete_failed", "user_id", user.ID, "list_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
