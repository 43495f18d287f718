package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	"github.com/allisson/license-manager/internal/database"
	apperrors "github.com/allisson/license-manager/internal/errors"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// PostgreSQLCustomerRepository implements Customer persistence for PostgreSQL.
type PostgreSQLCustomerRepository struct {
	db *sql.DB
}

// NewPostgreSQLCustomerRepository creates a new PostgreSQL Customer repository instance.
func NewPostgreSQLCustomerRepository(db *sql.DB) *PostgreSQLCustomerRepository {
	return &PostgreSQLCustomerRepository{db: db}
}

// Create inserts a new customer.
func (p *PostgreSQLCustomerRepository) Create(ctx context.Context, customer *licenseDomain.Customer) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO customers (id, name, email, company, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Company,
		customer.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "customer already exists")
		}
		return apperrors.Wrap(err, "failed to create customer")
	}
	return nil
}

// Get retrieves a customer by id.
func (p *PostgreSQLCustomerRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Customer, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, company, created_at FROM customers WHERE id = $1`

	var customer licenseDomain.Customer
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Company,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, licenseDomain.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get customer")
	}
	return &customer, nil
}

// Delete removes a customer by id.
func (p *PostgreSQLCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete customer")
	}
	return checkDeleted(result, licenseDomain.ErrCustomerNotFound)
}

// PostgreSQLProductRepository implements Product persistence for PostgreSQL.
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// NewPostgreSQLProductRepository creates a new PostgreSQL Product repository instance.
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}

// Create inserts a new product together with its key pair.
func (p *PostgreSQLProductRepository) Create(ctx context.Context, product *licenseDomain.Product) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO products (id, name, description, key_algorithm, public_key, encrypted_private_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		string(product.KeyPair.Algorithm),
		product.KeyPair.PublicKey,
		product.KeyPair.EncryptedPrivateKey,
		product.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return licenseDomain.ErrProductAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// Get retrieves a product and its key pair by id.
func (p *PostgreSQLProductRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, key_algorithm, public_key, encrypted_private_key, created_at
			  FROM products WHERE id = $1`

	var product licenseDomain.Product
	var algorithm string
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&algorithm,
		&product.KeyPair.PublicKey,
		&product.KeyPair.EncryptedPrivateKey,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, licenseDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}
	product.KeyPair.Algorithm = cryptoDomain.KeyAlgorithm(algorithm)

	return &product, nil
}

// Delete removes a product by id.
func (p *PostgreSQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}
	return checkDeleted(result, licenseDomain.ErrProductNotFound)
}

// PostgreSQLLicenseRepository implements License persistence for PostgreSQL.
type PostgreSQLLicenseRepository struct {
	db *sql.DB
}

// NewPostgreSQLLicenseRepository creates a new PostgreSQL License repository instance.
func NewPostgreSQLLicenseRepository(db *sql.DB) *PostgreSQLLicenseRepository {
	return &PostgreSQLLicenseRepository{db: db}
}

// Create inserts a new license record. Feature and attribute maps are stored as JSONB.
func (p *PostgreSQLLicenseRepository) Create(ctx context.Context, license *licenseDomain.License) error {
	querier := database.GetTx(ctx, p.db)

	features, err := marshalAttributes(license.ProductFeatures)
	if err != nil {
		return err
	}
	attributes, err := marshalAttributes(license.AdditionalAttributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO licenses (id, customer_id, product_id, license_type, quantity, expiration,
			  product_features, additional_attributes, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = querier.ExecContext(
		ctx,
		query,
		license.ID,
		license.CustomerID,
		license.ProductID,
		string(license.Type),
		license.Quantity,
		license.Expiration,
		features,
		attributes,
		license.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "license already exists")
		}
		return apperrors.Wrap(err, "failed to create license")
	}
	return nil
}

// Get retrieves a license record by id.
func (p *PostgreSQLLicenseRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.License, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, customer_id, product_id, license_type, quantity, expiration,
			  product_features, additional_attributes, created_at
			  FROM licenses WHERE id = $1`

	var license licenseDomain.License
	var licenseType string
	var features, attributes []byte
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&license.ID,
		&license.CustomerID,
		&license.ProductID,
		&licenseType,
		&license.Quantity,
		&license.Expiration,
		&features,
		&attributes,
		&license.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, licenseDomain.ErrLicenseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get license")
	}
	license.Type = licenseDomain.LicenseType(licenseType)

	if license.ProductFeatures, err = unmarshalAttributes(features); err != nil {
		return nil, err
	}
	if license.AdditionalAttributes, err = unmarshalAttributes(attributes); err != nil {
		return nil, err
	}

	return &license, nil
}

// Delete removes a license record by id.
func (p *PostgreSQLLicenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM licenses WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete license")
	}
	return checkDeleted(result, licenseDomain.ErrLicenseNotFound)
}

func checkDeleted(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
