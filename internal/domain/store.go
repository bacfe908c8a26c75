package domain

// Represents a store pin sourced from the store directory.
// Stores are immutable once fetched; a session owns its list for its lifetime.
type Store struct {
	ID        string
	Name      string
	Address   string
	Lat       float64
	Lng       float64
	Direction string
}
