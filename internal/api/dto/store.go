package dto

// StoreResponse is the wire shape consumed by the map page.
type StoreResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Direction string  `json:"direction"`
}
