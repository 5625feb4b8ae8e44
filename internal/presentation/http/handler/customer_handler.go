package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/application/service"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/request"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Identify handles customer identification by phone
func (h *CustomerHandler) Identify(c *gin.Context) {
	var req request.IdentifyCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	customer, err := h.customerService.Identify(c.Request.Context(), &service.IdentifyInput{
		Phone: req.Phone,
		Name:  req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer identified successfully", customer)
}

// StampBalance handles the loyalty balance lookup for a customer
func (h *CustomerHandler) StampBalance(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var branchID uuid.UUID
	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		branchID, err = uuid.Parse(branchIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
	} else if b := GetBranchID(c); b != nil {
		branchID = *b
	} else {
		response.BadRequest(c, "branch_id is required")
		return
	}

	account, err := h.customerService.StampBalance(c.Request.Context(), customerID, branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stamp balance retrieved successfully", account)
}
