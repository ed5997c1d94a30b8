// Package messaging carries catalog change notifications over AMQP
// topic exchanges named <prefix>_<topic>.
package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ChangeTopic string

const (
	CatalogUpdated ChangeTopic = "catalog_updated"
	TrackingTopic  ChangeTopic = "tracking"
)

// CatalogChange announces that a new catalog snapshot is available.
type CatalogChange struct {
	Source    string `json:"source"`
	ItemCount int    `json:"itemCount"`
}

func topicName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := topicName(prefix, topic)
	if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	_, err := ch.QueueDeclare(name, true, false, false, false, nil)
	return err
}

func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := topicName(prefix, topic)
	return ch.Publish(name, name, true, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func declareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := topicName(prefix, topic)
	q, err := ch.QueueDeclare("", false, false, true, false, nil)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, false, false, false, nil)
}

// ListenToTopic consumes deliveries until handle returns an error.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handle func(amqp.Delivery) error) error {
	deliveries, err := declareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handle(d); err != nil {
				log.Printf("Error processing message: %v", err)
				return
			}
			d.Ack(false)
		}
	}(deliveries)
	return nil
}
