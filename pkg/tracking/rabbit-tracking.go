package tracking

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/matst80/slask-cars/pkg/common"
	"github.com/matst80/slask-cars/pkg/messaging"
	"github.com/matst80/slask-cars/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingTopic messaging.ChangeTopic = "tracking"

const (
	EventSession uint16 = 0
	EventView    uint16 = 1
)

// RabbitTracking publishes session and view events on the global tracking
// topic. Events are queued and sent in the background.
type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
	send       func(data any) error
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, "global", trackingTopic); err != nil {
		conn.Close()
		return nil, err
	}
	return newRabbitTracking(country, conn, func(data any) error {
		return messaging.SendChange(conn, "global", trackingTopic, data)
	}), nil
}

func newRabbitTracking(country string, conn *amqp.Connection, send func(data any) error) *RabbitTracking {
	t := &RabbitTracking{
		country:    country,
		connection: conn,
		send:       send,
	}
	t.queue = common.NewQueueHandler(t.process, 50)
	return t
}

func (t *RabbitTracking) process(events []any) {
	for _, e := range events {
		if err := t.send(e); err != nil {
			slog.Warn("could not send tracking event", "error", err)
		}
	}
}

func (t *RabbitTracking) Close() error {
	t.queue.Close()
	if t.connection == nil {
		return nil
	}
	return t.connection.Close()
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

func (t *RabbitTracking) base(event uint16, sessionId string) *BaseEvent {
	return &BaseEvent{
		SessionId: sessionId,
		Country:   t.country,
		Context:   "cars",
		Event:     event,
		Timestamp: time.Now().Unix(),
	}
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
	Referer      string `json:"referer,omitempty"`
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	t.queue.Add(&Session{
		BaseEvent:    t.base(EventSession, sessionId),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           ip,
		PragmaHeader: r.Header.Get("Pragma"),
		Referer:      r.Header.Get("Referer"),
	})
}

type ViewEvent struct {
	*BaseEvent
	Criteria        *types.Criteria `json:"criteria"`
	Sort            types.SortKey   `json:"sort"`
	NumberOfResults int             `json:"noi"`
	Page            int             `json:"page"`
}

func (t *RabbitTracking) TrackView(sessionId string, criteria *types.Criteria, sort types.SortKey, resultLen int, page int) {
	t.queue.Add(&ViewEvent{
		BaseEvent:       t.base(EventView, sessionId),
		Criteria:        criteria,
		Sort:            sort,
		NumberOfResults: resultLen,
		Page:            page,
	})
}
