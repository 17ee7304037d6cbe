package model

// Place represents a catalogued travel destination
type Place struct {
	ID                 int     `db:"id" json:"id"`
	Name               string  `db:"name" json:"name"`
	ImageURL           string  `db:"image_url" json:"image_url"`
	Lat                float64 `db:"lat" json:"lat"`
	Lon                float64 `db:"lon" json:"lon"`
	DisplayOrder       int     `db:"display_order" json:"display_order"`
	AccommodationCost  int     `db:"accommodation_cost" json:"accommodation_cost"`
	TransportationCost int     `db:"transportation_cost" json:"transportation_cost"`
	Comments           string  `db:"comments" json:"comments"`
}
