package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

// CustomerService identifies customers at the counter by phone number.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	loyalty      *LoyaltyService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, loyalty *LoyaltyService) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, loyalty: loyalty}
}

// IdentifyInput represents the identify customer input
type IdentifyInput struct {
	Phone string
	Name  *string
}

// Identify finds the customer for a phone number, creating one on first
// sight. A name supplied for a known customer without one fills it in.
func (s *CustomerService) Identify(ctx context.Context, input *IdentifyInput) (*entity.Customer, error) {
	if input.Phone == "" {
		return nil, apperror.NewValidationError("Phone number is required")
	}

	customer, err := s.customerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		if !apperror.IsKind(err, apperror.KindNotFound) {
			return nil, err
		}
		customer = &entity.Customer{
			Phone: input.Phone,
			Name:  input.Name,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			// A concurrent identify for the same phone may have created it.
			if existing, lookupErr := s.customerRepo.GetByPhone(ctx, input.Phone); lookupErr == nil {
				return existing, nil
			}
			return nil, err
		}
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// StampBalance returns a customer's stamp balance at a branch.
func (s *CustomerService) StampBalance(ctx context.Context, customerID, branchID uuid.UUID) (*entity.LoyaltyAccount, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.loyalty.Balance(ctx, customerID, branchID)
}
