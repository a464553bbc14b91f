package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Product is a catalog entry. ID is assigned on insert and never changes.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// NewProduct carries every Product field except the ID.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
}

// ProductPatch enumerates the mutable product fields. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// Apply merges the non-nil patch fields into p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
}

// IsEmpty reports whether the patch would change nothing.
func (pp ProductPatch) IsEmpty() bool {
	return pp.Name == nil && pp.Description == nil && pp.Price == nil && pp.ImageURL == nil
}

// DecodeProductPatch parses a JSON patch body, rejecting any field that is not
// one of the mutable product fields.
func DecodeProductPatch(r io.Reader) (ProductPatch, error) {
	var pp ProductPatch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pp); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			return ProductPatch{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.TrimPrefix(err.Error(), "json: unknown field "))
		}
		if errors.Is(err, io.EOF) {
			return ProductPatch{}, nil
		}
		return ProductPatch{}, err
	}
	return pp, nil
}

// DefaultProducts returns the catalog seeded on first access.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "prod-1",
			Name:        "Mate Imperial Premium",
			Description: "Un mate de calabaza forrado en cuero, con virola de alpaca cincelada a mano. La eleccion perfecta para los conocedores. Pieza unica y de gran durabilidad.",
			Price:       35000,
			ImageURL:    "mate-imperial.jpg",
		},
		{
			ID:          "prod-2",
			Name:        "Bombilla Pico de Loro",
			Description: "Bombilla de alpaca con diseno clasico \"pico de loro\". Filtro removible para una limpieza facil y eficiente. Ideal para mates grandes.",
			Price:       8000,
			ImageURL:    "bombilla.jpg",
		},
		{
			ID:          "prod-3",
			Name:        "Termo Stanley Clasico 1L",
			Description: "El iconico termo Stanley, mantiene tus bebidas calientes o frias por hasta 24 horas. Construccion robusta de acero inoxidable, garantia de por vida.",
			Price:       75000,
			ImageURL:    "termo.jpeg",
		},
		{
			ID:          "prod-4",
			Name:        "Mate Camionero Personalizado",
			Description: "Mate de calabaza forrado en cuero grueso, ideal para el uso diario. Posibilidad de grabar iniciales o un diseno personalizado.",
			Price:       28000,
			ImageURL:    "mate-camionero.jpg",
		},
		{
			ID:          "prod-5",
			Name:        "Yerbera y Azucarera Set",
			Description: "Elegante set de yerbera y azucarera de cuero. Perfectas para mantener tu yerba y azucar frescas y ordenadas. Incluye cuchara dosificadora.",
			Price:       15000,
			ImageURL:    "yerbero-azucarero.jpg",
		},
		{
			ID:          "prod-6",
			Name:        "Kit Matero Completo",
			Description: "Incluye mate de madera, bombilla de acero inoxidable y un termo de 750ml. Todo lo que necesitas para empezar a materar!",
			Price:       60000,
			ImageURL:    "kit-completo.png",
		},
	}
}
