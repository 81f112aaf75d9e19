package messaging

import "time"

type ChangeTopic string

const (
	ListingsChanged ChangeTopic = "listings_changed"
)

// ListingsChange announces that the listing collection of a country was
// replaced and views should derive from the new data.
type ListingsChange struct {
	Country  string    `json:"country"`
	Source   string    `json:"source"`
	Listings int       `json:"listings"`
	At       time.Time `json:"at"`
}
