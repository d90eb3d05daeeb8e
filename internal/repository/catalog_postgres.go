package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

type CatalogPostgres struct {
	db *sql.DB
}

func NewCatalogPostgres(db *sql.DB) *CatalogPostgres {
	return &CatalogPostgres{db: db}
}

func (r *CatalogPostgres) ListProducts(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 12
	}

	where := []string{"p.is_active = TRUE"}
	args := []interface{}{}

	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	if f.MinPrice > 0 {
		args = append(args, f.MinPrice)
		where = append(where, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if f.MaxPrice > 0 {
		args = append(args, f.MaxPrice)
		where = append(where, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if f.MinRating > 0 {
		args = append(args, f.MinRating)
		where = append(where, fmt.Sprintf("p.rating >= $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products p WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)
	query := fmt.Sprintf(`SELECT p.id, p.name, p.description, p.rating, p.price, p.images, p.category_id, c.name, p.created_at
	          FROM products p
	          JOIN product_categories c ON c.id = p.category_id
	          WHERE %s
	          ORDER BY p.created_at DESC
	          LIMIT $%d OFFSET $%d`, whereClause, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Rating, &p.Price,
			pq.Array(&p.Images), &p.CategoryID, &p.CategoryName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return &domain.ProductPage{
		Products:    products,
		Total:       total,
		Pages:       pageCount(total, f.PerPage),
		CurrentPage: f.Page,
		PerPage:     f.PerPage,
	}, nil
}

func (r *CatalogPostgres) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT p.id, p.name, p.description, p.rating, p.price, p.images, p.category_id, c.name, p.created_at
	          FROM products p
	          JOIN product_categories c ON c.id = p.category_id
	          WHERE p.id = $1 AND p.is_active = TRUE`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Rating,
		&p.Price, pq.Array(&p.Images), &p.CategoryID, &p.CategoryName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *CatalogPostgres) ListProductCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT c.id, c.name, c.slug, COUNT(p.id)
	          FROM product_categories c
	          LEFT JOIN products p ON p.category_id = c.id AND p.is_active = TRUE
	          GROUP BY c.id, c.name, c.slug
	          ORDER BY c.name`
	return r.listCategories(ctx, query)
}

func (r *CatalogPostgres) ListEquipments(ctx context.Context, f domain.EquipmentFilter) (*domain.EquipmentPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 12
	}

	where := []string{"e.is_active = TRUE"}
	args := []interface{}{}

	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("e.category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(e.name ILIKE $%d OR e.description ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM equipments e WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count equipments: %w", err)
	}

	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)
	query := fmt.Sprintf(`SELECT e.id, e.name, e.description, e.images, e.category_id, c.name, e.created_at
	          FROM equipments e
	          JOIN equipment_categories c ON c.id = e.category_id
	          WHERE %s
	          ORDER BY e.created_at DESC
	          LIMIT $%d OFFSET $%d`, whereClause, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipments: %w", err)
	}
	defer rows.Close()

	equipments := []domain.Equipment{}
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, pq.Array(&e.Images),
			&e.CategoryID, &e.CategoryName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		equipments = append(equipments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipments: %w", err)
	}

	return &domain.EquipmentPage{
		Equipments:  equipments,
		Total:       total,
		Pages:       pageCount(total, f.PerPage),
		CurrentPage: f.Page,
		PerPage:     f.PerPage,
	}, nil
}

func (r *CatalogPostgres) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	query := `SELECT e.id, e.name, e.description, e.images, e.category_id, c.name, e.created_at
	          FROM equipments e
	          JOIN equipment_categories c ON c.id = e.category_id
	          WHERE e.id = $1 AND e.is_active = TRUE`

	var e domain.Equipment
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Description,
		pq.Array(&e.Images), &e.CategoryID, &e.CategoryName, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}

func (r *CatalogPostgres) ListEquipmentCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT c.id, c.name, c.slug, COUNT(e.id)
	          FROM equipment_categories c
	          LEFT JOIN equipments e ON e.category_id = c.id AND e.is_active = TRUE
	          GROUP BY c.id, c.name, c.slug
	          ORDER BY c.name`
	return r.listCategories(ctx, query)
}

func (r *CatalogPostgres) listCategories(ctx context.Context, query string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
