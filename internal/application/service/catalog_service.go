package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

// CatalogService manages products, options, and recipes, and assembles the
// menu view the ordering surfaces render.
type CatalogService struct {
	productRepo    repository.ProductRepository
	recipeRepo     repository.RecipeRepository
	stockRepo      repository.StockRepository
	stockThreshold float64
	location       *time.Location
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	stockRepo repository.StockRepository,
	stockThreshold float64,
	location *time.Location,
) *CatalogService {
	if location == nil {
		location = time.Local
	}
	return &CatalogService{
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		stockRepo:      stockRepo,
		stockThreshold: stockThreshold,
		location:       location,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	BranchID      uuid.UUID
	Name          string
	Description   *string
	Price         int64
	IsDrink       bool
	AvailableFrom *string // "HH:MM"
	AvailableTo   *string
}

// CreateProduct adds a product to the branch catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Product name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewValidationError("Product price cannot be negative")
	}

	product := &entity.Product{
		BranchID:      input.BranchID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		IsDrink:       input.IsDrink,
		AvailableFrom: input.AvailableFrom,
		AvailableTo:   input.AvailableTo,
		IsActive:      true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID            uuid.UUID
	Name          *string
	Description   *string
	Price         *int64
	IsDrink       *bool
	AvailableFrom *string
	AvailableTo   *string
	IsActive      *bool
}

// UpdateProduct applies a partial update to a product. Price changes affect
// future orders only; placed orders keep their captured prices.
func (s *CatalogService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError("Product price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.IsDrink != nil {
		product.IsDrink = *input.IsDrink
	}
	if input.AvailableFrom != nil {
		product.AvailableFrom = input.AvailableFrom
	}
	if input.AvailableTo != nil {
		product.AvailableTo = input.AvailableTo
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct soft-hides a product from the menu. Historical orders
// keep referencing it.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Deactivate(ctx, id)
}

// ListProducts lists the catalog for a branch, optionally including inactive
// entries for back-office screens.
func (s *CatalogService) ListProducts(ctx context.Context, branchID uuid.UUID, includeInactive bool) ([]entity.Product, error) {
	return s.productRepo.ListByBranch(ctx, branchID, !includeInactive)
}

// CreateOptionInput represents the create product option input
type CreateOptionInput struct {
	BranchID    uuid.UUID
	ProductID   uuid.UUID
	Type        enum.OptionType
	Name        string
	PriceDelta  int64
	StockItemID *uuid.UUID
}

// CreateOption adds a customization option to a product, optionally backed by
// a stock item that gates its menu availability.
func (s *CatalogService) CreateOption(ctx context.Context, input *CreateOptionInput) (*entity.ProductOption, error) {
	if !input.Type.Valid() {
		return nil, apperror.NewValidationError("Invalid option type")
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError("Option name is required")
	}
	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}
	if input.StockItemID != nil {
		if _, err := s.stockRepo.GetItem(ctx, *input.StockItemID); err != nil {
			return nil, err
		}
	}

	option := &entity.ProductOption{
		BranchID:    input.BranchID,
		ProductID:   input.ProductID,
		Type:        input.Type,
		Name:        input.Name,
		PriceDelta:  input.PriceDelta,
		StockItemID: input.StockItemID,
		IsActive:    true,
	}
	if err := s.productRepo.CreateOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// DeactivateOption soft-hides an option from the menu.
func (s *CatalogService) DeactivateOption(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.DeactivateOption(ctx, id)
}

// RecipeLineInput represents one ingredient of a recipe
type RecipeLineInput struct {
	StockItemID uuid.UUID
	Quantity    float64
}

// SetRecipe attaches a bill of materials to a product. A product carries at
// most one recipe.
func (s *CatalogService) SetRecipe(ctx context.Context, productID uuid.UUID, lines []RecipeLineInput) (*entity.Recipe, error) {
	if len(lines) == 0 {
		return nil, apperror.NewValidationError("Recipe requires at least one line")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if existing, err := s.recipeRepo.GetByProductID(ctx, productID); err == nil && existing != nil {
		return nil, apperror.NewConflictError("Product already has a recipe")
	} else if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}

	recipe := &entity.Recipe{ProductID: productID}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewValidationError("Recipe quantity must be positive")
		}
		item, err := s.stockRepo.GetItem(ctx, line.StockItemID)
		if err != nil {
			return nil, err
		}
		recipe.Lines = append(recipe.Lines, entity.RecipeLine{
			StockItemID: item.ID,
			Quantity:    line.Quantity,
			Unit:        item.Unit,
		})
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe returns a product's bill of materials.
func (s *CatalogService) GetRecipe(ctx context.Context, productID uuid.UUID) (*entity.Recipe, error) {
	return s.recipeRepo.GetByProductID(ctx, productID)
}

// MenuProduct is one product on the menu with the options currently offered.
type MenuProduct struct {
	Product entity.Product         `json:"product"`
	Options []entity.ProductOption `json:"options"`
}

// Menu assembles the orderable menu for a branch: active products within
// their availability window, each with its active options. An option backed
// by a stock item is hidden while that item's on-hand sits at or below the
// configured threshold.
func (s *CatalogService) Menu(ctx context.Context, branchID uuid.UUID) ([]MenuProduct, error) {
	products, err := s.productRepo.ListByBranch(ctx, branchID, true)
	if err != nil {
		return nil, err
	}
	options, err := s.productRepo.ListOptionsByBranch(ctx, branchID, true)
	if err != nil {
		return nil, err
	}

	optionsByProduct := make(map[uuid.UUID][]entity.ProductOption)
	for _, option := range options {
		if option.StockItemID != nil && option.StockItem != nil && option.StockItem.OnHand <= s.stockThreshold {
			continue
		}
		optionsByProduct[option.ProductID] = append(optionsByProduct[option.ProductID], option)
	}

	now := time.Now().In(s.location).Format("15:04")
	menu := make([]MenuProduct, 0, len(products))
	for _, product := range products {
		if !availableAt(product, now) {
			continue
		}
		opts := optionsByProduct[product.ID]
		if opts == nil {
			opts = []entity.ProductOption{}
		}
		menu = append(menu, MenuProduct{Product: product, Options: opts})
	}
	return menu, nil
}

// availableAt checks a product's "HH:MM" availability window. Windows that
// cross midnight wrap.
func availableAt(product entity.Product, now string) bool {
	if product.AvailableFrom == nil || product.AvailableTo == nil {
		return true
	}
	from, to := *product.AvailableFrom, *product.AvailableTo
	if from <= to {
		return now >= from && now <= to
	}
	return now >= from || now <= to
}
