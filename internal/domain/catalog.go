package domain

import "time"

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Rating       float64   `json:"rating"`
	Price        float64   `json:"price"`
	Images       []string  `json:"images"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Equipment struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Images       []string  `json:"images"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// ProductFilter carries the optional query parameters of the product listing.
type ProductFilter struct {
	Page       int
	PerPage    int
	CategoryID int64
	Search     string
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
}

type EquipmentFilter struct {
	Page       int
	PerPage    int
	CategoryID int64
	Search     string
}

// ProductPage is a single page of the catalog listing.
type ProductPage struct {
	Products    []Product `json:"products"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
	PerPage     int       `json:"per_page"`
}

type EquipmentPage struct {
	Equipments  []Equipment `json:"equipments"`
	Total       int         `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
}
