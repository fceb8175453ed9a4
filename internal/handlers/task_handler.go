package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"focusboard/internal/models"
	"focusboard/internal/recurrence"
	"focusboard/internal/repositories"
	"focusboard/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// @Summary      Create task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title        string             `json:"title" binding:"required"`
		Description  string             `json:"description"`
		Type         models.TaskType    `json:"type"` // daily|scheduled|backlog
		DaysOfWeek   []int64            `json:"days_of_week"`
		DateRanges   []models.DateRange `json:"date_ranges"`
		PlannedDates []int64            `json:"planned_dates"`
	}
	userID, _ := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, dow := range req.DaysOfWeek {
		if dow < 0 || dow > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days_of_week entries must be 0..6 (Sunday=0)"})
			return
		}
	}

	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		DaysOfWeek:   req.DaysOfWeek,
		DateRanges:   req.DateRanges,
		PlannedDates: req.PlannedDates,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTaskType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%d type=%s title=%q", created.ID, created.Type, created.Title)
	c.JSON(http.StatusCreated, created)
}

// @Summary      List tasks
// @Description  Optional classifier-backed views and sort orders
// @Tags         Tasks
// @Produce      json
// @Param        view  query  string  false  "all|today|overdue|done"  default(all)
// @Param        sort  query  string  false  "created|title|type|due_first|overdue_first"  default(created)
// @Param        type  query  string  false  "daily|scheduled|backlog"
// @Success      200  {array}  models.Task
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	view, ok := services.ParseTaskView(c.DefaultQuery("view", string(services.ViewAll)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown view"})
		return
	}
	sortKey, ok := recurrence.ParseSortKey(c.DefaultQuery("sort", string(recurrence.SortCreated)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort key"})
		return
	}

	filter := models.TaskFilter{}
	if typeParam := c.Query("type"); typeParam != "" {
		taskType := models.TaskType(typeParam)
		filter.Type = &taskType
	}

	tasks, err := h.service.ListView(c.Request.Context(), filter, view, sortKey, time.Now())
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Get task
// @Tags         Tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		log.Printf("[task][get][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Update task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	var req models.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, services.ErrInvalidTaskType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[task][update][err] id=%d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Archive task
// @Description  Soft delete: the task occurs on no day at or after today
// @Tags         Tasks
// @Param        id  path  int  true  "Task ID"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Archive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	if err := h.service.Archive(c.Request.Context(), id, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		log.Printf("[task][archive][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive task"})
		return
	}
	log.Printf("[task][archive][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// @Summary      Toggle completion for a day
// @Description  Marks or unmarks the task done for the given day (epoch ms day-start; defaults to today UTC)
// @Tags         Tasks
// @Produce      json
// @Param        id   path   int  true   "Task ID"
// @Param        day  query  int  false  "Day-start epoch milliseconds"
// @Success      200  {object}  models.Task
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleDone(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	dayStart := recurrence.DayStartUTC(time.Now())
	if dayParam := c.Query("day"); dayParam != "" {
		raw, err := strconv.ParseInt(dayParam, 10, 64)
		if err != nil || raw <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day parameter"})
			return
		}
		// normalize whatever instant the client sent to its UTC day-start
		dayStart = recurrence.DayStartOfMillis(recurrence.NormalizeMillis(raw))
	}

	task, err := h.service.ToggleDone(c.Request.Context(), id, dayStart)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		log.Printf("[task][toggle][err] id=%d day=%d: %v", id, dayStart, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle task"})
		return
	}
	log.Printf("[task][toggle][ok] id=%d day=%d done=%v", id, dayStart, recurrence.IsDoneForDay(*task, dayStart))
	c.JSON(http.StatusOK, task)
}
