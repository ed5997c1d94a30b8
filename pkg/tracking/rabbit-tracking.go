// Package tracking publishes anonymous browse usage events.
package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/slask-browse/pkg/messaging"
	"github.com/matst80/slask-browse/pkg/types"
)

type RabbitTracking struct {
	prefix     string
	connection *amqp.Connection
}

func NewRabbitTracking(url, prefix string) (*RabbitTracking, error) {
	ret := &RabbitTracking{prefix: prefix}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	return ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, t.prefix, messaging.TrackingTopic)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

type sessionEvent struct {
	EventId   string `json:"eventId"`
	SessionId string `json:"sessionId"`
	UserAgent string `json:"userAgent"`
	Timestamp int64  `json:"ts"`
}

type browseEvent struct {
	EventId   string   `json:"eventId"`
	SessionId string   `json:"sessionId"`
	Query     string   `json:"query"`
	Types     []string `json:"types"`
	Sort      string   `json:"sort"`
	Page      int      `json:"page"`
	ResultLen int      `json:"results"`
	Timestamp int64    `json:"ts"`
}

func (t *RabbitTracking) send(data any) {
	if err := messaging.SendChange(t.connection, t.prefix, messaging.TrackingTopic, data); err != nil {
		log.Printf("Failed to send tracking event: %v", err)
	}
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	t.send(sessionEvent{
		EventId:   uuid.NewString(),
		SessionId: sessionId,
		UserAgent: r.UserAgent(),
		Timestamp: time.Now().Unix(),
	})
}

func (t *RabbitTracking) TrackBrowse(sessionId string, req *types.BrowseRequest, resultLen int) {
	t.send(browseEvent{
		EventId:   uuid.NewString(),
		SessionId: sessionId,
		Query:     req.Query,
		Types:     req.Types,
		Sort:      req.Sort,
		Page:      req.Page,
		ResultLen: resultLen,
		Timestamp: time.Now().Unix(),
	})
}
