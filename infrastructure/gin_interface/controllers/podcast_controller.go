package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/inbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
	"github.com/tejasg2002/Lisa-podcast-Generator/infrastructure/gin_interface/dto"
	"github.com/tejasg2002/Lisa-podcast-Generator/middleware"
)

type PodcastController interface {
	GenerateAudioPodcast(c *gin.Context)
	GenerateVideoPodcast(c *gin.Context)
	SubmitAudioTask(c *gin.Context)
	SubmitVideoTask(c *gin.Context)
	GetTaskStatus(c *gin.Context)
	StreamTaskStatus(c *gin.Context)
	ListTasks(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type podcastController struct {
	logger         outbound.LoggerPort
	pipeline       inbound.PodcastPipelinePort
	taskRunner     inbound.PodcastTaskRunnerPort
	statusInterval time.Duration
}

func NewPodcastController(
	logger outbound.LoggerPort,
	pipeline inbound.PodcastPipelinePort,
	taskRunner inbound.PodcastTaskRunnerPort,
	statusInterval time.Duration,
) PodcastController {
	if statusInterval <= 0 {
		statusInterval = time.Second
	}
	return &podcastController{
		logger:         logger,
		pipeline:       pipeline,
		taskRunner:     taskRunner,
		statusInterval: statusInterval,
	}
}

func (p *podcastController) GenerateAudioPodcast(c *gin.Context) {
	var request dto.AudioPodcastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		p.abort(c, http.StatusBadRequest, err)
		return
	}
	p.generate(c, request.ToDomain(uuid.NewString()))
}

func (p *podcastController) GenerateVideoPodcast(c *gin.Context) {
	var request dto.VideoPodcastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		p.abort(c, http.StatusBadRequest, err)
		return
	}
	p.generate(c, request.ToDomain(uuid.NewString()))
}

func (p *podcastController) generate(c *gin.Context, req domain.PodcastRequest) {
	p.logger.InfoWithFields("Podcast requested", map[string]interface{}{
		"request_id": req.RequestID,
		"type":       req.Kind,
		"user_id":    c.GetString(middleware.ContextUserIDKey),
	})

	res, err := p.pipeline.RunPipeline(c.Request.Context(), req)
	if err != nil {
		p.abort(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.PodcastResponse{
		Status:          "success",
		Type:            res.Type,
		Language:        string(req.Language),
		S3URL:           res.URL,
		DurationSeconds: res.EstimatedDurationSeconds,
		Host:            req.HostName,
		Guest:           req.GuestName,
	})
}

func (p *podcastController) SubmitAudioTask(c *gin.Context) {
	var request dto.AudioPodcastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		p.abort(c, http.StatusBadRequest, err)
		return
	}
	p.submit(c, request.ToDomain(uuid.NewString()))
}

func (p *podcastController) SubmitVideoTask(c *gin.Context) {
	var request dto.VideoPodcastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		p.abort(c, http.StatusBadRequest, err)
		return
	}
	p.submit(c, request.ToDomain(uuid.NewString()))
}

func (p *podcastController) submit(c *gin.Context, req domain.PodcastRequest) {
	task, err := p.taskRunner.Submit(c.Request.Context(), req)
	if err != nil {
		p.abort(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.TaskAcceptedResponse{
		TaskID:  task.ID,
		Status:  task.Status,
		Message: "Podcast generation started. Poll /v1/status/" + task.ID + " for progress.",
	})
}

func (p *podcastController) GetTaskStatus(c *gin.Context) {
	task, err := p.taskRunner.Get(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		p.abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// StreamTaskStatus pushes a snapshot whenever the task changes, until it finishes or the client
// goes away.
func (p *podcastController) StreamTaskStatus(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("task_id")
	if _, err := p.taskRunner.Get(ctx, taskID); err != nil {
		p.abort(c, statusFor(err), err)
		return
	}

	ticker := time.NewTicker(p.statusInterval)
	defer ticker.Stop()

	var last *domain.Task
	c.Stream(func(w io.Writer) bool {
		task, err := p.taskRunner.Get(ctx, taskID)
		if err != nil {
			c.SSEvent("error", dto.ErrorResponse{Error: err.Error()})
			return false
		}
		if last == nil || last.Status != task.Status || last.Progress != task.Progress {
			c.SSEvent("status", task)
			last = task
		}
		if task.IsDone() {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			return true
		}
	})
}

func (p *podcastController) ListTasks(c *gin.Context) {
	tasks, err := p.taskRunner.List(c.Request.Context())
	if err != nil {
		p.abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

func (p *podcastController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		ActiveTasks: p.taskRunner.ActiveCount(),
	})
}

func (p *podcastController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", p.Health)

	v1 := g.Group("/v1")
	v1.POST("/audio-podcast", p.GenerateAudioPodcast)
	v1.POST("/video-podcast", p.GenerateVideoPodcast)
	v1.POST("/tasks/audio", p.SubmitAudioTask)
	v1.POST("/tasks/video", p.SubmitVideoTask)
	v1.GET("/tasks", p.ListTasks)
	v1.GET("/status/:task_id", p.GetTaskStatus)
	v1.GET("/status/:task_id/events", middleware.SSEMiddleware(), p.StreamTaskStatus)
}

func (p *podcastController) abort(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		p.logger.ErrorWithFields(err, "Request failed", map[string]interface{}{
			"path":   c.FullPath(),
			"status": status,
		})
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSegmentationEmpty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, outbound.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
