package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/reactive/component"
	apperrors "github.com/kbukum/reactive/errors"
	"github.com/kbukum/reactive/logger"
	"github.com/kbukum/reactive/notify"
	"github.com/kbukum/reactive/sse"
	"github.com/kbukum/reactive/validation"
)

// API serves the reactive cell surface: cell reads/writes, the SSE
// stream, notifications, and the aggregated health endpoint.
type API struct {
	serviceName string
	hub         *sse.Hub
	registry    *component.Registry
	queue       *notify.Queue

	mu    sync.RWMutex
	cells map[string]ExposedCell

	log *logger.Logger
}

// APIOption configures the API.
type APIOption func(*API)

// WithNotifications enables the notification endpoints backed by q.
func WithNotifications(q *notify.Queue) APIOption {
	return func(a *API) { a.queue = q }
}

// NewAPI creates the API. hub may be nil to disable the stream
// endpoint; registry may be nil to report a bare healthy status.
func NewAPI(serviceName string, hub *sse.Hub, registry *component.Registry, opts ...APIOption) *API {
	a := &API{
		serviceName: serviceName,
		hub:         hub,
		registry:    registry,
		cells:       make(map[string]ExposedCell),
		log:         logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RegisterCell makes a cell available under its name. Names must be unique.
func (a *API) RegisterCell(ec ExposedCell) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.cells[ec.Name()]; ok {
		return apperrors.AlreadyExists("cell " + ec.Name())
	}
	a.cells[ec.Name()] = ec

	a.log.Debug("cell registered", logger.Fields(
		logger.FieldCell, ec.Name(),
		"writable", ec.Writable(),
	))
	return nil
}

// Routes mounts all API routes on the given router.
func (a *API) Routes(r gin.IRouter) {
	r.GET("/health", a.health)

	v1 := r.Group("/v1")
	v1.GET("/cells", a.listCells)
	v1.GET("/cells/:name", a.getCell)
	v1.PUT("/cells/:name", a.putCell)
	v1.GET("/stream", a.stream)

	if a.queue != nil {
		v1.GET("/notifications", a.listNotifications)
		v1.POST("/notifications", a.postNotification)
		v1.DELETE("/notifications/:id", a.deleteNotification)
	}
}

func (a *API) lookup(name string) (ExposedCell, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ec, ok := a.cells[name]
	if !ok {
		return nil, apperrors.NotFound("cell", name)
	}
	return ec, nil
}

// cellView is the JSON shape of a cell in responses.
type cellView struct {
	Name     string `json:"name"`
	Value    any    `json:"value"`
	Writable bool   `json:"writable"`
}

func viewOf(ec ExposedCell) cellView {
	return cellView{
		Name:     ec.Name(),
		Value:    ec.Value(),
		Writable: ec.Writable(),
	}
}

func (a *API) listCells(c *gin.Context) {
	a.mu.RLock()
	names := make([]string, 0, len(a.cells))
	for name := range a.cells {
		names = append(names, name)
	}
	a.mu.RUnlock()
	sort.Strings(names)

	views := make([]cellView, 0, len(names))
	for _, name := range names {
		if ec, err := a.lookup(name); err == nil {
			views = append(views, viewOf(ec))
		}
	}
	RespondOK(c, views)
}

func (a *API) getCell(c *gin.Context) {
	ec, err := a.lookup(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, viewOf(ec))
}

// updateCellRequest is the PUT /v1/cells/:name body.
type updateCellRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

func (a *API) putCell(c *gin.Context) {
	ec, err := a.lookup(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	var req updateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}
	if err := validation.Validate(&req); err != nil {
		RespondWithError(c, err)
		return
	}

	if err := ec.Set(req.Value); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, viewOf(ec))
}

// stream upgrades the connection to an SSE stream. Topics are selected
// with ?topics=a,b; no topics subscribes to everything.
func (a *API) stream(c *gin.Context) {
	if a.hub == nil {
		RespondWithError(c, apperrors.NotFound("endpoint", "stream"))
		return
	}

	var opts []sse.ClientOption
	if raw := c.Query("topics"); raw != "" {
		topics := strings.Split(raw, ",")
		for i := range topics {
			topics[i] = strings.TrimSpace(topics[i])
		}
		opts = append(opts, sse.WithTopics(topics...))
	}

	sse.ServeSSE(a.hub, c.Writer, c.Request, uuid.NewString(), opts...)
}

// healthResponse aggregates component health for /health.
type healthResponse struct {
	Service    string                 `json:"service"`
	Status     component.HealthStatus `json:"status"`
	Components []component.Health     `json:"components,omitempty"`
}

func (a *API) health(c *gin.Context) {
	resp := healthResponse{
		Service: a.serviceName,
		Status:  component.StatusHealthy,
	}
	if a.registry != nil {
		resp.Components = a.registry.HealthAll(c.Request.Context())
		for _, h := range resp.Components {
			switch h.Status {
			case component.StatusUnhealthy:
				resp.Status = component.StatusUnhealthy
			case component.StatusDegraded:
				if resp.Status != component.StatusUnhealthy {
					resp.Status = component.StatusDegraded
				}
			}
		}
	}

	status := http.StatusOK
	if resp.Status == component.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// postNotificationRequest is the POST /v1/notifications body.
type postNotificationRequest struct {
	Level string `json:"level" validate:"omitempty,oneof=info success warning error"`
	Text  string `json:"text" validate:"required"`
}

func (a *API) listNotifications(c *gin.Context) {
	RespondOK(c, a.queue.Messages())
}

func (a *API) postNotification(c *gin.Context) {
	var req postNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}
	if err := validation.Validate(&req); err != nil {
		RespondWithError(c, err)
		return
	}
	if req.Level == "" {
		req.Level = string(notify.LevelInfo)
	}

	msg, err := a.queue.Push(notify.Level(req.Level), req.Text)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, msg)
}

func (a *API) deleteNotification(c *gin.Context) {
	if !a.queue.Dismiss(c.Param("id")) {
		RespondWithError(c, apperrors.NotFound("notification", c.Param("id")))
		return
	}
	RespondNoContent(c)
}
