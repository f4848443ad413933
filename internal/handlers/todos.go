package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating a todo.
type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// Request DTO for the completed patch. Pointer so `"completed": false`
// passes the required binding.
type updateTodoRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// todoIDParam parses the numeric :id path parameter, answering 400 on junk.
// Returns false if the request was already handled.
func (h *Handler) todoIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return 0, false
	}
	return id, true
}

// @Summary      List todos
// @Description  Returns the authenticated user's todos in insertion order.
// @Tags         todos
// @Produce      json
// @Success      200  {array}   models.Todo
// @Failure      401  {object}  map[string]string
// @Router       /api/todos [get]
func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.services.Todos.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.serviceError(c, err, "todos_list_failed")
		return
	}
	c.JSON(http.StatusOK, todos)
}

// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      createTodoRequest  true  "Todo text"
// @Success      200   {object}  models.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/todos [post]
func (h *Handler) createTodo(c *gin.Context) {
	var input createTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	todo, err := h.services.Todos.Create(c.Request.Context(), currentUserID(c), input.Text)
	if err != nil {
		h.serviceError(c, err, "todos_create_failed")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      Set completed flag
// @Description  404 covers both a missing todo and another user's todo.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Completed flag"
// @Success      200   {object}  models.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/todos/{id} [patch]
func (h *Handler) updateTodo(c *gin.Context) {
	id, ok := h.todoIDParam(c)
	if !ok {
		return
	}
	var input updateTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	todo, err := h.services.Todos.SetCompleted(c.Request.Context(), id, currentUserID(c), *input.Completed)
	if err != nil {
		h.serviceError(c, err, "todos_update_failed")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      Delete todo
// @Description  Idempotent: deleting an absent or foreign id is still 204.
// @Tags         todos
// @Param        id  path  int  true  "Todo id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/todos/{id} [delete]
func (h *Handler) deleteTodo(c *gin.Context) {
	id, ok := h.todoIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Todos.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.serviceError(c, err, "todos_delete_failed")
		return
	}
	c.Status(http.StatusNoContent)
}
