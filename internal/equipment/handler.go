package equipment

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

// ListEquipment godoc
// @Summary      List equipment catalog
// @Tags         equipment
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Equipment
// @Failure      500  {object}  api.ErrorResponse
// @Router       /equipment [get]
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.service.ListEquipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetEquipment godoc
// @Summary      Get one equipment item
// @Tags         equipment
// @Security     BearerAuth
// @Produce      json
// @Param        equipmentID  path      int  true  "Equipment ID"
// @Success      200          {object}  Equipment
// @Failure      400          {object}  api.ErrorResponse
// @Failure      404          {object}  api.ErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /equipment/{equipmentID} [get]
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("equipmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid equipment ID"})
		return
	}

	item, err := h.service.GetEquipment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateEquipment godoc
// @Summary      Add an equipment item
// @Tags         admin,equipment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateEquipmentRequest  true  "Equipment payload"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/equipment [post]
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.service.CreateEquipment(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEquipment):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid equipment data"})
		case errors.Is(err, ErrEquipmentNameTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Equipment name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create equipment"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.IDResponse{ID: id})
}

// UpdateEquipment godoc
// @Summary      Update an equipment item
// @Tags         admin,equipment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        equipmentID  path      int                     true  "Equipment ID"
// @Param        request      body      UpdateEquipmentRequest  true  "Fields to update"
// @Success      200          {object}  api.MessageResponse
// @Failure      400          {object}  api.ErrorResponse
// @Failure      404          {object}  api.ErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /admin/equipment/{equipmentID} [patch]
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("equipmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid equipment ID"})
		return
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err = h.service.UpdateEquipment(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEquipment):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid equipment data"})
		case errors.Is(err, ErrEquipmentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Equipment not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update equipment"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Equipment updated successfully"})
}

// Borrow godoc
// @Summary      Borrow equipment
// @Description  Creates a loan for the authenticated user. The equipment row
// @Description  is locked while stock is checked and decremented, so two
// @Description  concurrent loans cannot both take the last unit.
// @Tags         loans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateLoanRequest  true  "Loan payload"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /loans [post]
func (h *Handler) Borrow(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.service.Borrow(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Quantity must be positive"})
		case errors.Is(err, ErrEquipmentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Equipment not found"})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Not enough stock available"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create loan"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.IDResponse{ID: id})
}

// Return godoc
// @Summary      Return borrowed equipment
// @Description  Marks a loan as returned and restocks the borrowed quantity.
// @Description  Returning twice reports a conflict, so stock is restored
// @Description  exactly once per loan.
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Param        loanID  path      int  true  "Loan ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      403     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /loans/{loanID}/return [post]
func (h *Handler) Return(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	loanID, err := strconv.Atoi(c.Param("loanID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid loan ID"})
		return
	}

	err = h.service.Return(c.Request.Context(), userID, role, loanID)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Loan not found"})
		case errors.Is(err, ErrAlreadyReturned):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Loan already returned"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only return your own loans"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to return loan"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Loan returned successfully"})
}

// ListMyLoans godoc
// @Summary      List my loans
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   LoanWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /loans [get]
func (h *Handler) ListMyLoans(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	loans, err := h.service.ListLoansByBorrower(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch loans"})
		return
	}

	c.JSON(http.StatusOK, loans)
}

// ListAllLoans godoc
// @Summary      List all loans
// @Description  Admin-only: loan history with borrower and equipment names.
// @Tags         admin,loans
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   LoanWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/loans [get]
func (h *Handler) ListAllLoans(c *gin.Context) {
	loans, err := h.service.ListLoans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch loans"})
		return
	}

	c.JSON(http.StatusOK, loans)
}

// GetLoan godoc
// @Summary      Get one loan
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Param        loanID  path      int  true  "Loan ID"
// @Success      200     {object}  LoanWithDetails
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /loans/{loanID} [get]
func (h *Handler) GetLoan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("loanID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid loan ID"})
		return
	}

	loan, err := h.service.GetLoan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLoanNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Loan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch loan"})
		return
	}

	c.JSON(http.StatusOK, loan)
}
