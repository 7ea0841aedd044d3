package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"firetask-backend/internal/models"
	"firetask-backend/internal/repository"
	"firetask-backend/internal/types"
	"firetask-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TodoHandler struct {
	todos *repository.TodoRepo
}

func NewTodoHandler(todos *repository.TodoRepo) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type CreateTodoRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Completed bool   `json:"completed"`
}

type UpdateTodoRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=200"`
	Completed *bool   `json:"completed"`
}

func (h *TodoHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failed("User not authenticated."))
		return
	}

	todos, err := h.todos.ListActive(ctx.Request.Context(), userID)

	if err != nil {
		log.Printf("Failed to list todos: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failed("Internal server error."))
		return
	}

	responses := make([]types.TodoResponse, 0, len(todos))

	for i := range todos {
		responses = append(responses, types.NewTodoResponse(&todos[i]))
	}

	ctx.JSON(http.StatusOK, types.Success("Todos retrieved successfully.", responses))
}

func (h *TodoHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failed("User not authenticated."))
		return
	}

	var req CreateTodoRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.FailedWithData("Todo creation failed.", map[string][]string{
			"title": {"This field is required."},
		}))
		return
	}

	todo := models.Todo{
		Title:     req.Title,
		Completed: req.Completed,
		Active:    true,
		UserID:    userID,
	}

	if err := h.todos.Create(ctx.Request.Context(), &todo); err != nil {
		log.Printf("Failed to create todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failed("Internal server error."))
		return
	}

	ctx.JSON(http.StatusCreated, types.Success("Todo created successfully.", types.NewTodoResponse(&todo)))
}

func (h *TodoHandler) Retrieve(ctx *gin.Context) {
	todo, ok := h.findOwned(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, types.Success("Todo retrieved successfully.", types.NewTodoResponse(todo)))
}

func (h *TodoHandler) Update(ctx *gin.Context) {
	todo, ok := h.findOwned(ctx)

	if !ok {
		return
	}

	var req UpdateTodoRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.Failed("Invalid request."))
		return
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}

	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := h.todos.Update(ctx.Request.Context(), todo); err != nil {
		log.Printf("Failed to update todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failed("Internal server error."))
		return
	}

	ctx.JSON(http.StatusOK, types.Success("Todo updated successfully.", types.NewTodoResponse(todo)))
}

func (h *TodoHandler) Delete(ctx *gin.Context) {
	todo, ok := h.findOwned(ctx)

	if !ok {
		return
	}

	if err := h.todos.SoftDelete(ctx.Request.Context(), todo); err != nil {
		log.Printf("Failed to delete todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failed("Internal server error."))
		return
	}

	ctx.JSON(http.StatusOK, types.Success("Todo deleted successfully.", nil))
}

// findOwned resolves the :id param to a todo that belongs to the current
// user and is still active. Foreign and soft-deleted todos are
// indistinguishable from missing ones.
func (h *TodoHandler) findOwned(ctx *gin.Context) (*models.Todo, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failed("User not authenticated."))
		return nil, false
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusNotFound, types.Failed("Todo not found."))
		return nil, false
	}

	todo, err := h.todos.FindActive(ctx.Request.Context(), userID, uint(id))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.Failed("Todo not found."))
			return nil, false
		}

		log.Printf("Failed to fetch todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failed("Internal server error."))
		return nil, false
	}

	return todo, true
}
