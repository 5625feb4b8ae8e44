package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/application/service"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/request"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/response"
	"github.com/kapehan/pos-api/pkg/pricing"
)

// CatalogHandler handles product, option, recipe, and menu HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateProduct handles product creation
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		BranchID:      req.BranchID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         pricing.ToCents(req.Price),
		IsDrink:       req.IsDrink,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// UpdateProduct handles product updates
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	input := &service.UpdateProductInput{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		IsDrink:       req.IsDrink,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		IsActive:      req.IsActive,
	}
	if req.Price != nil {
		price := pricing.ToCents(*req.Price)
		input.Price = &price
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// DeactivateProduct handles product deactivation
func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeactivateProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deactivated successfully", nil)
}

// ListProducts handles listing the catalog for a branch
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	branchID, ok := h.resolveBranch(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	products, err := h.catalogService.ListProducts(c.Request.Context(), branchID, includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// CreateOption handles product option creation
func (h *CatalogHandler) CreateOption(c *gin.Context) {
	var req request.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	option, err := h.catalogService.CreateOption(c.Request.Context(), &service.CreateOptionInput{
		BranchID:    req.BranchID,
		ProductID:   req.ProductID,
		Type:        enum.OptionType(req.Type),
		Name:        req.Name,
		PriceDelta:  pricing.ToCents(req.PriceDelta),
		StockItemID: req.StockItemID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Option created successfully", option)
}

// DeactivateOption handles option deactivation
func (h *CatalogHandler) DeactivateOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid option ID")
		return
	}

	if err := h.catalogService.DeactivateOption(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Option deactivated successfully", nil)
}

// SetRecipe handles recipe assignment
func (h *CatalogHandler) SetRecipe(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.SetRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	lines := make([]service.RecipeLineInput, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = service.RecipeLineInput{
			StockItemID: line.StockItemID,
			Quantity:    line.Quantity,
		}
	}

	recipe, err := h.catalogService.SetRecipe(c.Request.Context(), productID, lines)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Recipe set successfully", recipe)
}

// GetRecipe handles recipe retrieval
func (h *CatalogHandler) GetRecipe(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	recipe, err := h.catalogService.GetRecipe(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe retrieved successfully", recipe)
}

// Menu handles the menu view for ordering surfaces
func (h *CatalogHandler) Menu(c *gin.Context) {
	branchID, ok := h.resolveBranch(c)
	if !ok {
		return
	}

	menu, err := h.catalogService.Menu(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu retrieved successfully", menu)
}

// resolveBranch picks the branch from the query or falls back to the token's
// branch.
func (h *CatalogHandler) resolveBranch(c *gin.Context) (uuid.UUID, bool) {
	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		branchID, err := uuid.Parse(branchIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return uuid.Nil, false
		}
		return branchID, true
	}
	if branchID := GetBranchID(c); branchID != nil {
		return *branchID, true
	}
	response.BadRequest(c, "branch_id is required")
	return uuid.Nil, false
}
