package model

import (
	"fmt"
	"time"
)

// Product represents a catalogue product as returned by the backend.
type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Images             []string  `json:"images,omitempty"`
	MainImage          string    `json:"mainImage,omitempty"`
	Price              float64   `json:"price"`
	DiscountPrice      *float64  `json:"discountPrice,omitempty"`
	OnSale             bool      `json:"onSale"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty"`
	CategoryID         string    `json:"categoryId"`
	Category           string    `json:"category"`
	Brand              string    `json:"brand"`
	Tags               []string  `json:"tags,omitempty"`
	Stock              int       `json:"stock"`
	SKU                string    `json:"sku"`
	Rating             float64   `json:"rating"`
	RatingCount        int       `json:"ratingCount"`
	Featured           bool      `json:"featured"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// EffectivePrice returns the discounted price when one is set, otherwise
// the list price. Filtering and display use this value, never the list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Validate checks product invariants.
func (p *Product) Validate() error {
	if p.Stock < 0 {
		return fmt.Errorf("product %s: stock must not be negative, got %d", p.ID, p.Stock)
	}

	if p.OnSale && p.DiscountPrice != nil && *p.DiscountPrice > p.Price {
		return fmt.Errorf("product %s: discount price %.2f exceeds list price %.2f", p.ID, *p.DiscountPrice, p.Price)
	}

	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %s: rating must be within [0,5], got %.2f", p.ID, p.Rating)
	}

	return nil
}

// Category represents a product category. Categories form a tree through
// ParentID; the backend is responsible for keeping the tree acyclic.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}
