package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailService is what the worker needs from the mail layer.
type EmailService interface {
	SendWelcome(to, name, program string) error
}

// Worker consumes lead-captured events and sends the follow-up email.
// Fully decoupled from the database: everything it needs rides in the
// payload.
type Worker struct {
	Channel *amqp.Channel
	Mailer  EmailService
}

func NewWorker(ch *amqp.Channel, mailer EmailService) *Worker {
	return &Worker{Channel: ch, Mailer: mailer}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Malformed payload: %s", err)
				// Poison message, reject without requeue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Lead captured: %s (%s)", payload.Name, payload.Program)

			if err := w.Mailer.SendWelcome(payload.Email, payload.Name, payload.Program); err != nil {
				log.Printf("❌ [WORKER] Welcome email failed for %s: %s", payload.Email, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Follow-up worker waiting on queue '%s'", queueName)
	<-forever
}
