package subscription

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beheryahmed1991/subscription-tracker/internal/auth"
)

// Handler exposes HTTP handlers for subscription resources.
type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log.With("component", "subscription.handler")}
}

// RegisterRoutes mounts the subscription routes. The router is expected to
// run the auth middleware first.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/subscriptions")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/summary", h.summary)
	group.GET("/:id", h.getByID)
	group.PUT("/:id", h.update)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

type listResponse struct {
	Count         int            `json:"count"`
	Subscriptions []Subscription `json:"subscriptions"`
}

// create godoc
// @Summary      Create a subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body      Fields  true  "Subscription fields"
// @Success      201   {object}  Subscription
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     BearerAuth
// @Router       /subscriptions [post]
func (h *Handler) create(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var f Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), caller, f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// list godoc
// @Summary      List the caller's subscriptions, newest first
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Security     BearerAuth
// @Router       /subscriptions [get]
func (h *Handler) list(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	subs, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Count: len(subs), Subscriptions: subs})
}

// getByID godoc
// @Summary      Get a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id   path      string  true  "Subscription ID"
// @Success      200  {object}  Subscription
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /subscriptions/{id} [get]
func (h *Handler) getByID(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	sub, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// update godoc
// @Summary      Update a subscription
// @Description  Only supplied fields change. Owner and id cannot be changed.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Subscription ID"
// @Param        body  body      Fields  true  "Fields to change"
// @Success      200   {object}  Subscription
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     BearerAuth
// @Router       /subscriptions/{id} [patch]
// @Router       /subscriptions/{id} [put]
func (h *Handler) update(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var f Fields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sub, err := h.svc.Update(c.Request.Context(), caller, id, f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// delete godoc
// @Summary      Delete a subscription
// @Tags         subscriptions
// @Param        id   path  string  true  "Subscription ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /subscriptions/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// summary godoc
// @Summary      Monthly and yearly spend of active subscriptions
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  billing.Summary
// @Failure      401  {object}  errorResponse
// @Security     BearerAuth
// @Router       /subscriptions/summary [get]
func (h *Handler) summary(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), caller)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) caller(c *gin.Context) (uuid.UUID, bool) {
	user, ok := auth.Caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return user, true
}

func (h *Handler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "subscription not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	default:
		h.log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"err", err,
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
