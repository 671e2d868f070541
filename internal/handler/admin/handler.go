package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-actions/internal/handler"
	"github.com/jwalitptl/booking-actions/internal/model"
	"github.com/jwalitptl/booking-actions/internal/repository"
	"github.com/jwalitptl/booking-actions/pkg/errors"
)

type Handler struct {
	repo repository.AppointmentRepository
}

func NewHandler(repo repository.AppointmentRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
	}
}

type ListAppointmentsRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=active canceled"`
	Date       string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Department string `form:"department" binding:"omitempty,department"`
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	filters := &model.AppointmentFilters{
		Status:    model.AppointmentStatus(req.Status),
		Date:      req.Date,
		Specialty: req.Department,
	}

	appointments, err := h.repo.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list appointments"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get appointment"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}
