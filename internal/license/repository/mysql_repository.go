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

// MySQL stores UUIDs as BINARY(16).

func uuidArgs(ids ...uuid.UUID) ([]any, error) {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		b, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal id")
		}
		args = append(args, b)
	}
	return args, nil
}

func scanUUID(dst *uuid.UUID, src []byte) error {
	if err := dst.UnmarshalBinary(src); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal id")
	}
	return nil
}

// MySQLCustomerRepository implements Customer persistence for MySQL.
type MySQLCustomerRepository struct {
	db *sql.DB
}

// NewMySQLCustomerRepository creates a new MySQL Customer repository instance.
func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

// Create inserts a new customer.
func (m *MySQLCustomerRepository) Create(ctx context.Context, customer *licenseDomain.Customer) error {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(customer.ID)
	if err != nil {
		return err
	}

	query := `INSERT INTO customers (id, name, email, company, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, ids[0], customer.Name, customer.Email, customer.Company, customer.CreatedAt)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "customer already exists")
		}
		return apperrors.Wrap(err, "failed to create customer")
	}
	return nil
}

// Get retrieves a customer by id.
func (m *MySQLCustomerRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Customer, error) {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, email, company, created_at FROM customers WHERE id = ?`

	var customer licenseDomain.Customer
	var rawID []byte
	err = querier.QueryRowContext(ctx, query, ids[0]).Scan(
		&rawID,
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
	if err := scanUUID(&customer.ID, rawID); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes a customer by id.
func (m *MySQLCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return mysqlDelete(ctx, m.db, `DELETE FROM customers WHERE id = ?`, id, licenseDomain.ErrCustomerNotFound)
}

// MySQLProductRepository implements Product persistence for MySQL.
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository creates a new MySQL Product repository instance.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// Create inserts a new product together with its key pair.
func (m *MySQLProductRepository) Create(ctx context.Context, product *licenseDomain.Product) error {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(product.ID)
	if err != nil {
		return err
	}

	query := `INSERT INTO products (id, name, description, key_algorithm, public_key, encrypted_private_key, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		product.Name,
		product.Description,
		string(product.KeyPair.Algorithm),
		product.KeyPair.PublicKey,
		product.KeyPair.EncryptedPrivateKey,
		product.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return licenseDomain.ErrProductAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// Get retrieves a product and its key pair by id.
func (m *MySQLProductRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, description, key_algorithm, public_key, encrypted_private_key, created_at
			  FROM products WHERE id = ?`

	var product licenseDomain.Product
	var rawID []byte
	var algorithm string
	err = querier.QueryRowContext(ctx, query, ids[0]).Scan(
		&rawID,
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
	if err := scanUUID(&product.ID, rawID); err != nil {
		return nil, err
	}
	product.KeyPair.Algorithm = cryptoDomain.KeyAlgorithm(algorithm)

	return &product, nil
}

// Delete removes a product by id.
func (m *MySQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return mysqlDelete(ctx, m.db, `DELETE FROM products WHERE id = ?`, id, licenseDomain.ErrProductNotFound)
}

// MySQLLicenseRepository implements License persistence for MySQL.
type MySQLLicenseRepository struct {
	db *sql.DB
}

// NewMySQLLicenseRepository creates a new MySQL License repository instance.
func NewMySQLLicenseRepository(db *sql.DB) *MySQLLicenseRepository {
	return &MySQLLicenseRepository{db: db}
}

// Create inserts a new license record. Feature and attribute maps are stored as JSON.
func (m *MySQLLicenseRepository) Create(ctx context.Context, license *licenseDomain.License) error {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(license.ID, license.CustomerID, license.ProductID)
	if err != nil {
		return err
	}
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
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		ids[2],
		string(license.Type),
		license.Quantity,
		license.Expiration,
		features,
		attributes,
		license.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "license already exists")
		}
		return apperrors.Wrap(err, "failed to create license")
	}
	return nil
}

// Get retrieves a license record by id.
func (m *MySQLLicenseRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.License, error) {
	querier := database.GetTx(ctx, m.db)

	ids, err := uuidArgs(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, customer_id, product_id, license_type, quantity, expiration,
			  product_features, additional_attributes, created_at
			  FROM licenses WHERE id = ?`

	var license licenseDomain.License
	var rawID, rawCustomerID, rawProductID, features, attributes []byte
	var licenseType string
	err = querier.QueryRowContext(ctx, query, ids[0]).Scan(
		&rawID,
		&rawCustomerID,
		&rawProductID,
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

	if err := scanUUID(&license.ID, rawID); err != nil {
		return nil, err
	}
	if err := scanUUID(&license.CustomerID, rawCustomerID); err != nil {
		return nil, err
	}
	if err := scanUUID(&license.ProductID, rawProductID); err != nil {
		return nil, err
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
func (m *MySQLLicenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return mysqlDelete(ctx, m.db, `DELETE FROM licenses WHERE id = ?`, id, licenseDomain.ErrLicenseNotFound)
}

func mysqlDelete(ctx context.Context, db *sql.DB, query string, id uuid.UUID, notFound error) error {
	querier := database.GetTx(ctx, db)

	ids, err := uuidArgs(id)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, query, ids[0])
	if err != nil {
		return apperrors.Wrap(err, "failed to delete record")
	}
	return checkDeleted(result, notFound)
}
