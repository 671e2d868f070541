package actions

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/booking-actions/internal/dialogue"
	"github.com/jwalitptl/booking-actions/internal/handler"
)

// TurnService validates slot values and evaluates form-chain gates.
type TurnService interface {
	ValidateSlot(form, slot, value, intent string, slots dialogue.SlotMap) dialogue.Result
	AdvanceForm(form string, slots dialogue.SlotMap) dialogue.Result
}

// BookingService persists and cancels bookings.
type BookingService interface {
	Book(ctx context.Context, slots dialogue.SlotMap) []dialogue.Message
	Cancel(ctx context.Context, slots dialogue.SlotMap) []dialogue.Message
}

type Handler struct {
	turnSvc    TurnService
	bookingSvc BookingService
	// dedup suppresses retried webhook deliveries of book/cancel submits;
	// a retry must not create a second patient row.
	dedup *cache.Cache
}

func NewHandler(turnSvc TurnService, bookingSvc BookingService, dedupTTL time.Duration) *Handler {
	return &Handler{
		turnSvc:    turnSvc,
		bookingSvc: bookingSvc,
		dedup:      cache.New(dedupTTL, 2*dedupTTL),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	a := r.Group("/actions")
	{
		a.POST("/validate", h.Validate)
		a.POST("/advance", h.Advance)
		a.POST("/book", h.Book)
		a.POST("/cancel", h.Cancel)
	}
}

type ValidateRequest struct {
	Form   string                 `json:"form" binding:"required"`
	Slot   string                 `json:"slot" binding:"required"`
	Value  string                 `json:"value"`
	Intent string                 `json:"intent"`
	Slots  map[string]interface{} `json:"slots"`
}

type AdvanceRequest struct {
	Form  string                 `json:"form" binding:"required"`
	Slots map[string]interface{} `json:"slots"`
}

type SubmitRequest struct {
	SenderID string                 `json:"sender_id" binding:"required"`
	Slots    map[string]interface{} `json:"slots"`
}

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result := h.turnSvc.ValidateSlot(req.Form, req.Slot, req.Value, req.Intent, req.Slots)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) Advance(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result := h.turnSvc.AdvanceForm(req.Form, req.Slots)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) Book(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if !h.claim("book:" + req.SenderID) {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(dialogue.Result{}))
		return
	}

	messages := h.bookingSvc.Book(c.Request.Context(), req.Slots)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dialogue.Result{Messages: messages}))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if !h.claim("cancel:" + req.SenderID) {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(dialogue.Result{}))
		return
	}

	messages := h.bookingSvc.Cancel(c.Request.Context(), req.Slots)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dialogue.Result{Messages: messages}))
}

// claim records the submit key and reports whether this delivery is the
// first within the dedup window.
func (h *Handler) claim(key string) bool {
	return h.dedup.Add(key, struct{}{}, cache.DefaultExpiration) == nil
}
