package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mapsqc/ProjetLajoie/internal/services"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
	"github.com/gin-gonic/gin"
)

// CustomerHandler exposes customer CRUD over HTTP.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

// CreateCustomer handles POST /customers.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers handles GET /customers with optional search and pagination.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	customers, totalCount, err := h.customerService.GetCustomers(page, pageSize, searchTerm)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        customers,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetCustomerByID handles GET /customers/:id.
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /customers/:id.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/:id. Deletion is refused while
// reservations reference the customer.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
