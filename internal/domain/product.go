package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	Stock           int       `json:"stock"`
	Tag             string    `json:"tag"`
	AvailableSizes  []string  `json:"available_sizes"`
	AvailableColors []string  `json:"available_colors"`
	Images          []string  `json:"images"`
	CreatedAt       time.Time `json:"created_at"`
}

// PrimaryImage returns the first image URL or empty when none was uploaded.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
