package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/services"
)

type getTaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  int       `json:"priority"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Status:    task.Status,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func newGetTasksResponse(tasks []*models.Task) []getTaskResponse {
	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	return response
}

type createTaskRequest struct {
	Title     string     `json:"title" binding:"required,max=255"`
	Priority  int        `json:"priority" binding:"required,min=1,max=5"`
	Status    string     `json:"status" binding:"required,oneof=Pending Finished"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time" binding:"required"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task := &models.Task{
		UserID:   userID,
		Title:    req.Title,
		Priority: req.Priority,
		Status:   req.Status,
		EndTime:  *req.EndTime,
	}
	if req.StartTime != nil {
		task.StartTime = *req.StartTime
	}

	task, err = h.tasks.CreateTask(c, task)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newTaskError(err))
		return
	}

	h.logger.Info().
		Str("id", task.ID).
		Msg("created task")
	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

type getTasksQuery struct {
	Offset uint32 `form:"offset"`
	Limit  uint32 `form:"limit" binding:"max=100"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	var query getTasksQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c, userID, query.Offset, query.Limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abort(c, newTaskError(err))
		return
	}
	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")

	h.logger.Info().Msg("fetched tasks")
	c.JSON(http.StatusOK, newGetTasksResponse(tasks))
}

type updateTaskRequest struct {
	Title     *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Priority  *int       `json:"priority,omitempty" binding:"omitempty,min=1,max=5"`
	Status    *string    `json:"status,omitempty" binding:"omitempty,oneof=Pending Finished"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errNoTaskID.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:        taskID,
		UserID:    userID,
		Title:     req.Title,
		Priority:  req.Priority,
		Status:    req.Status,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", taskID).
			Msg("failed to update task")
		abort(c, newTaskError(err))
		return
	}

	h.logger.Info().
		Str("id", task.ID).
		Msg("updated task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errNoTaskID.Error()))
		return
	}

	status := c.Query("status")
	if status == "" {
		h.logger.Error().Msg("no status provided")
		abort(c, newBadRequestError(errNoTaskStatus.Error()))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:     taskID,
		UserID: userID,
		Status: status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", taskID).
			Str("status", status).
			Msg("failed to update task status")
		abort(c, newTaskError(err))
		return
	}

	h.logger.Info().
		Str("id", task.ID).
		Msg("updated task status")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errNoTaskID.Error()))
		return
	}

	err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		ID:     taskID,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", taskID).
			Msg("failed to delete task")
		abort(c, newTaskError(err))
		return
	}

	h.logger.Info().
		Str("id", taskID).
		Msg("deleted task")
	c.Status(http.StatusNoContent)
}

type deleteTasksRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

func (h *handlerImpl) HandleDeleteTasks(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	var req deleteTasksRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.DeleteTasks(c, services.DeleteTasksParams{
		IDs:    req.IDs,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Int("count", len(req.IDs)).
			Msg("failed to delete tasks")
		abort(c, newTaskError(err))
		return
	}

	h.logger.Info().
		Int("count", len(req.IDs)).
		Msg("deleted tasks")
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) userIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}
