package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
)

const (
	defaultPerPage = 12
	maxPerPage     = 50
)

// CatalogHandler serves the public shop listings. No auth required; the
// storefront renders these before the visitor has an account.
type CatalogHandler struct {
	catalog repository.CatalogRepository
	timeout time.Duration
}

func NewCatalogHandler(catalog repository.CatalogRepository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := domain.ProductFilter{
		Page:       parseIntQuery(r, "page", 1),
		PerPage:    parseIntQuery(r, "per_page", defaultPerPage),
		CategoryID: parseInt64Query(r, "category_id"),
		Search:     r.URL.Query().Get("search"),
		MinPrice:   parseFloatQuery(r, "min_price"),
		MaxPrice:   parseFloatQuery(r, "max_price"),
		MinRating:  parseFloatQuery(r, "min_rating"),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > maxPerPage {
		filter.PerPage = defaultPerPage
	}

	page, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "product_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, errGet := h.catalog.GetProduct(ctx, id)
	if errGet != nil {
		respondServiceError(w, errGet)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListProductCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.ListProductCategories(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *CatalogHandler) ListEquipments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := domain.EquipmentFilter{
		Page:       parseIntQuery(r, "page", 1),
		PerPage:    parseIntQuery(r, "per_page", defaultPerPage),
		CategoryID: parseInt64Query(r, "category_id"),
		Search:     r.URL.Query().Get("search"),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > maxPerPage {
		filter.PerPage = defaultPerPage
	}

	page, err := h.catalog.ListEquipments(ctx, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "equipment_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_equipment_id", "equipment id must be a positive integer")
		return
	}

	equipment, errGet := h.catalog.GetEquipment(ctx, id)
	if errGet != nil {
		respondServiceError(w, errGet)
		return
	}

	respondJSON(w, http.StatusOK, equipment)
}

func (h *CatalogHandler) ListEquipmentCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.ListEquipmentCategories(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
