package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/api"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMalformedTime):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Timestamps must be in RFC 3339 format"})
	case errors.Is(err, ErrInvalidTimes):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "End time must be after start time"})
	case errors.Is(err, ErrOutOfWindow):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Start date must be between today and 30 days from today"})
	case errors.Is(err, ErrCourtNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
	case errors.Is(err, ErrCourtNotBookable):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Court is not active"})
	case errors.Is(err, ErrSlotTaken):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "The slot is already reserved for that court"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create reservation"})
	}
}

// Book godoc
// @Summary      Book a court slot
// @Description  Creates a reservation for the authenticated client. The court
// @Description  row is locked while its status and the slot are verified, so
// @Description  two concurrent requests for the same slot cannot both succeed.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation payload"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) Book(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.service.Book(c.Request.Context(), userID, userID, req)
	if err != nil {
		h.bookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.IDResponse{ID: id})
}

// BookThirdParty godoc
// @Summary      Book a court slot for an external contact
// @Description  Admin-only: creates a reservation owned by a named contact
// @Description  who is not a registered client. The slot-uniqueness rule is
// @Description  the same as for client reservations.
// @Tags         admin,reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ThirdPartyReservationRequest  true  "Third-party reservation payload"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/reservations/third-party [post]
func (h *Handler) BookThirdParty(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req ThirdPartyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.service.BookThirdParty(c.Request.Context(), userID, req)
	if err != nil {
		h.bookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.IDResponse{ID: id})
}

// Cancel godoc
// @Summary      Cancel a reservation
// @Description  Transitions a scheduled reservation to cancelled. Cancelling
// @Description  twice reports a conflict rather than silently succeeding.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      400            {object}  api.ErrorResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      409            {object}  api.ErrorResponse
// @Failure      500            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [patch]
func (h *Handler) Cancel(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	err = h.service.Cancel(c.Request.Context(), userID, role, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Reservation already cancelled"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own reservations"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled successfully"})
}

// ListMyReservations godoc
// @Summary      List my reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ReservationWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservations [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	reservations, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListAllReservations godoc
// @Summary      List all reservations
// @Description  Admin-only: reservation history across all courts and owners.
// @Tags         admin,reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ReservationWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/reservations [get]
func (h *Handler) ListAllReservations(c *gin.Context) {
	reservations, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
