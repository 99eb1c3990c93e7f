package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
)

// --- Custom Service Errors for Customer ---
var (
	ErrCustomerValidation = errors.New("customer data validation error")
	ErrEmailExists        = errors.New("email already exists")
	ErrCustomerInUse      = errors.New("customer cannot be deleted while reservations reference them")
)

// --- Customer DTOs ---
type CreateCustomerRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	City      *string `json:"city"`
	Province  *string `json:"province"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
	Province  *string `json:"province"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	CreateCustomer(req CreateCustomerRequest) (*models.Customer, error)
	GetCustomerByID(customerID string) (*models.Customer, error)
	GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error)
	UpdateCustomer(customerID string, req UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(customerID string) error
}

// --- customerService Implementation ---
type customerService struct {
	customerRepo repositories.CustomerRepository
	db           repositories.SQLExecutor
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, db repositories.SQLExecutor) CustomerService {
	return &customerService{
		customerRepo: repo,
		db:           db,
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// validateEmail normalizes an email address and checks format and uniqueness.
// customerID is the customer being updated, or empty on create.
func (s *customerService) validateEmail(email, customerID string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(normalized) {
		return "", fmt.Errorf("%w: email format is invalid", ErrCustomerValidation)
	}
	existing, err := s.customerRepo.GetCustomerByEmail(normalized)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil && existing.ID != customerID {
		return "", ErrEmailExists
	}
	return normalized, nil
}

func (s *customerService) CreateCustomer(req CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrCustomerValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: phone number is required", ErrCustomerValidation)
	}

	email, err := s.validateEmail(req.Email, "")
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		City:      req.City,
		Province:  req.Province,
	}

	created, err := s.customerRepo.CreateCustomer(s.db, customer)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create customer in repository: %w", err)
	}
	return created, nil
}

func (s *customerService) GetCustomerByID(customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	customers, totalCount, err := s.customerRepo.GetCustomers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, totalCount, nil
}

func (s *customerService) UpdateCustomer(customerID string, req UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.GetCustomerByID(customerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty if provided", ErrCustomerValidation)
		}
		customer.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, fmt.Errorf("%w: last name cannot be empty if provided", ErrCustomerValidation)
		}
		customer.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email, emailErr := s.validateEmail(*req.Email, customerID)
		if emailErr != nil {
			return nil, emailErr
		}
		customer.Email = email
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			return nil, fmt.Errorf("%w: phone number cannot be empty if provided", ErrCustomerValidation)
		}
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.City != nil {
		customer.City = req.City
	}
	if req.Province != nil {
		customer.Province = req.Province
	}

	updated, err := s.customerRepo.UpdateCustomer(s.db, customer)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update customer in repository: %w", err)
	}
	return updated, nil
}

func (s *customerService) DeleteCustomer(customerID string) error {
	err := s.customerRepo.DeleteCustomer(s.db, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return ErrCustomerInUse
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
