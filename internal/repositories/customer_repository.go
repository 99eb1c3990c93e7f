package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error)
	GetCustomerByID(id string) (*models.Customer, error)
	GetCustomerByEmail(email string) (*models.Customer, error)
	GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error)
	UpdateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error)
	DeleteCustomer(executor SQLExecutor, id string) error
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const selectCustomerFields = `id, first_name, last_name, email, phone, city, province, created_at`

func scanCustomer(row scanner) (*models.Customer, error) {
	var customer models.Customer
	var city, province sql.NullString

	err := row.Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
		&customer.Phone, &city, &province, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
	}

	if city.Valid {
		customer.City = &city.String
	}
	if province.Valid {
		customer.Province = &province.String
	}
	return &customer, nil
}

func (r *customerRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	customer.CreatedAt = time.Now()

	query := `INSERT INTO customers (id, first_name, last_name, email, phone, city, province, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at`

	err := executor.QueryRow(query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email,
		customer.Phone, customer.City, customer.Province, customer.CreatedAt,
	).Scan(&customer.CreatedAt)

	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer, nil
}

func (r *customerRepository) GetCustomerByID(id string) (*models.Customer, error) {
	query := "SELECT " + selectCustomerFields + " FROM customers WHERE id = $1"
	return scanCustomer(r.db.QueryRow(query, id))
}

func (r *customerRepository) GetCustomerByEmail(email string) (*models.Customer, error) {
	query := "SELECT " + selectCustomerFields + " FROM customers WHERE LOWER(email) = LOWER($1)"
	return scanCustomer(r.db.QueryRow(query, email))
}

func (r *customerRepository) GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error) {
	customers := []models.Customer{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectCustomerFields + ", COUNT(*) OVER() as total_count FROM customers")

	var args []interface{}
	argCount := 1

	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		pattern := "%" + strings.TrimSpace(*searchTerm) + "%"
		queryBuilder.WriteString(fmt.Sprintf(
			" WHERE first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR city ILIKE $%d",
			argCount, argCount, argCount, argCount))
		args = append(args, pattern)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY last_name, first_name")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var customer models.Customer
		var city, province sql.NullString
		if err := rows.Scan(
			&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
			&customer.Phone, &city, &province, &customer.CreatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning customer row: %v", ErrDatabaseError, err)
		}
		if city.Valid {
			customer.City = &city.String
		}
		if province.Valid {
			customer.Province = &province.String
		}
		customers = append(customers, customer)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	return customers, totalCount, nil
}

func (r *customerRepository) UpdateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	query := `UPDATE customers SET first_name = $1, last_name = $2, email = $3, phone = $4, city = $5, province = $6
	          WHERE id = $7
	          RETURNING created_at`

	err := executor.QueryRow(query,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.City, customer.Province, customer.ID,
	).Scan(&customer.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: updating customer ID %s: %v", ErrDatabaseError, customer.ID, err)
	}
	return customer, nil
}

func (r *customerRepository) DeleteCustomer(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: deleting customer ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
