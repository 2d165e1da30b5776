package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/expensio/expensio/internal/domain/errors"
	"github.com/expensio/expensio/internal/domain/repository"
	"github.com/expensio/expensio/internal/server/http/dto"
)

// ExpenditureHandler manages expenditure endpoints.
type ExpenditureHandler struct {
	facade ExpenditureFacade
}

// NewExpenditureHandler constructs ExpenditureHandler.
func NewExpenditureHandler(facade ExpenditureFacade) *ExpenditureHandler {
	return &ExpenditureHandler{facade: facade}
}

// Create handles POST /expenditure.
func (h *ExpenditureHandler) Create(c *gin.Context) {
	var req dto.CreateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	date, err := req.ParsedDate()
	if err != nil {
		writeError(c, http.StatusBadRequest, "date must be an ISO 8601 date")
		return
	}

	expenditure, err := h.facade.CreateExpenditure(
		c.Request.Context(),
		CurrentUserID(c),
		CurrentUserEmail(c),
		req.Description,
		req.Value,
		date,
	)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrFutureDate):
			writeError(c, http.StatusForbidden, "date cannot be in the future")
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenditureResponse(expenditure))
}

// List handles GET /expenditure.
func (h *ExpenditureHandler) List(c *gin.Context) {
	expenditures, err := h.facade.Expenditures(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ExpenditureResponse, 0, len(expenditures))
	for i := range expenditures {
		response = append(response, dto.ToExpenditureResponse(&expenditures[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Find handles GET /expenditure/:id.
func (h *ExpenditureHandler) Find(c *gin.Context) {
	id, ok := expenditureID(c)
	if !ok {
		return
	}

	expenditure, err := h.facade.Expenditure(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenditureResponse(expenditure))
}

// Edit handles PATCH /expenditure/:id.
func (h *ExpenditureHandler) Edit(c *gin.Context) {
	id, ok := expenditureID(c)
	if !ok {
		return
	}

	var req dto.EditExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	update := repository.ExpenditureUpdate{Description: req.Description, Value: req.Value}
	expenditure, err := h.facade.EditExpenditure(c.Request.Context(), CurrentUserID(c), id, update)
	if err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenditureResponse(expenditure))
}

// Remove handles DELETE /expenditure/:id.
func (h *ExpenditureHandler) Remove(c *gin.Context) {
	id, ok := expenditureID(c)
	if !ok {
		return
	}

	if err := h.facade.RemoveExpenditure(c.Request.Context(), CurrentUserID(c), id); err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Expenditure deleted"})
}

func expenditureID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		writeError(c, http.StatusNotFound, "expenditure not found")
	case errors.Is(err, domainErrors.ErrForbidden):
		writeError(c, http.StatusForbidden, "access to resource denied")
	default:
		c.Status(http.StatusInternalServerError)
	}
}
