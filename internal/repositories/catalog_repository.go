package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"
)

// CatalogRepository defines the interface for product and supplier
// database operations.
type CatalogRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts(establishmentID int64) ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	DeleteProduct(executor SQLExecutor, id int64) error

	CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (int64, error)
	GetSupplierByID(id int64) (*models.Supplier, error)
	GetSuppliers(establishmentID int64) ([]models.Supplier, error)
	UpdateSupplier(executor SQLExecutor, supplier *models.Supplier) error
	DeleteSupplier(executor SQLExecutor, id int64) error
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func scanProduct(row scanner) (*models.Product, error) {
	var product models.Product
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		&product.SupplierID, &product.EstablishmentID, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
	}
	return &product, nil
}

func (r *catalogRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products
	            (nome, descricao, preco, estoque, supplier_id, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	product.CreatedAt = currentTime
	product.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		product.Name, product.Description, product.Price, product.Stock,
		product.SupplierID, product.EstablishmentID, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating product")
	}
	return product.ID, nil
}

func (r *catalogRepository) GetProductByID(id int64) (*models.Product, error) {
	query := `SELECT id, nome, descricao, preco, estoque, supplier_id, establishment_id, created_at, updated_at
	          FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(query, id))
}

func (r *catalogRepository) GetProducts(establishmentID int64) ([]models.Product, error) {
	query := `SELECT id, nome, descricao, preco, estoque, supplier_id, establishment_id, created_at, updated_at
	          FROM products WHERE establishment_id = $1 ORDER BY nome ASC`

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *catalogRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET
	            nome = $1, descricao = $2, preco = $3, estoque = $4, supplier_id = $5, updated_at = $6
	          WHERE id = $7 AND establishment_id = $8
	          RETURNING updated_at`

	product.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		product.Name, product.Description, product.Price, product.Stock,
		product.SupplierID, product.UpdatedAt, product.ID, product.EstablishmentID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating product ID %d", product.ID))
	}
	return nil
}

func (r *catalogRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSupplier(row scanner) (*models.Supplier, error) {
	var supplier models.Supplier
	err := row.Scan(
		&supplier.ID, &supplier.Name, &supplier.TaxID, &supplier.Phone, &supplier.Email,
		&supplier.EstablishmentID, &supplier.CreatedAt, &supplier.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning supplier: %v", ErrDatabaseError, err)
	}
	return &supplier, nil
}

func (r *catalogRepository) CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (int64, error) {
	query := `INSERT INTO suppliers
	            (nome, cnpj, telefone, email, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	supplier.CreatedAt = currentTime
	supplier.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		supplier.Name, supplier.TaxID, supplier.Phone, supplier.Email,
		supplier.EstablishmentID, supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating supplier")
	}
	return supplier.ID, nil
}

func (r *catalogRepository) GetSupplierByID(id int64) (*models.Supplier, error) {
	query := `SELECT id, nome, cnpj, telefone, email, establishment_id, created_at, updated_at
	          FROM suppliers WHERE id = $1`
	return scanSupplier(r.db.QueryRow(query, id))
}

func (r *catalogRepository) GetSuppliers(establishmentID int64) ([]models.Supplier, error) {
	query := `SELECT id, nome, cnpj, telefone, email, establishment_id, created_at, updated_at
	          FROM suppliers WHERE establishment_id = $1 ORDER BY nome ASC`

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying suppliers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		supplier, scanErr := scanSupplier(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		suppliers = append(suppliers, *supplier)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating supplier rows: %v", ErrDatabaseError, err)
	}
	return suppliers, nil
}

func (r *catalogRepository) UpdateSupplier(executor SQLExecutor, supplier *models.Supplier) error {
	query := `UPDATE suppliers SET
	            nome = $1, cnpj = $2, telefone = $3, email = $4, updated_at = $5
	          WHERE id = $6 AND establishment_id = $7
	          RETURNING updated_at`

	supplier.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		supplier.Name, supplier.TaxID, supplier.Phone, supplier.Email,
		supplier.UpdatedAt, supplier.ID, supplier.EstablishmentID,
	).Scan(&supplier.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating supplier ID %d", supplier.ID))
	}
	return nil
}

func (r *catalogRepository) DeleteSupplier(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
