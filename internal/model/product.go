package model

// Product is a catalog entry. Values are fixed once the catalog is loaded.
type Product struct {
	ID                  string  `db:"id" json:"id" yaml:"id"`
	Barcode             string  `db:"barcode" json:"barcode,omitempty" yaml:"barcode"` // Scan code; falls back to ID
	Name                string  `db:"name" json:"name" yaml:"name"`
	Price               float64 `db:"price" json:"price" yaml:"price"`
	SustainabilityScore string  `db:"sustainability_score" json:"sustainabilityScore" yaml:"sustainability_score"` // "N/10"
	Description         string  `db:"description" json:"description" yaml:"description"`
	Status              string  `db:"status" json:"status,omitempty" yaml:"status"`
}

// Code returns the key a scanner yields for this product.
func (p Product) Code() string {
	if p.Barcode != "" {
		return p.Barcode
	}
	return p.ID
}
