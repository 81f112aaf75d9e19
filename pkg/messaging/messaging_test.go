package messaging

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetName(t *testing.T) {
	assert.Equal(t, "se_listings_changed", getName("se", ListingsChanged))
	assert.Equal(t, "listings_changed", getName("", ListingsChanged))
}

func TestDecodeChange(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	d := amqp.Delivery{Body: []byte(`{"country":"se","source":"importer","listings":42,"at":"2024-05-01T08:00:00Z"}`)}

	change, err := DecodeChange[ListingsChange](d)
	require.NoError(t, err)
	assert.Equal(t, ListingsChange{Country: "se", Source: "importer", Listings: 42, At: at}, change)

	_, err = DecodeChange[ListingsChange](amqp.Delivery{Body: []byte("nope")})
	assert.Error(t, err)
}
