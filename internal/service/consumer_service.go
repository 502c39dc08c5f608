package service

import (
	"context"
	"encoding/json"
	"sync"

	"notes-api/internal/constant"
	"notes-api/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2/log"
)

// NoteCreatedHandler reacts to a note.created event. Returning an error nacks
// the message.
type NoteCreatedHandler func(ctx context.Context, event dto.NoteCreatedMessage) error

type IConsumerService interface {
	Consume(ctx context.Context) error
	Wait()
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	handler    NoteCreatedHandler
	wg         sync.WaitGroup
}

func NewConsumerService(subscriber message.Subscriber, topicName string, handler NoteCreatedHandler) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		handler:    handler,
	}
}

// Consume subscribes to the topic and processes messages on a background
// goroutine until ctx is cancelled or the subscriber is closed.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) Wait() {
	cs.wg.Wait()
}

func (cs *consumerService) processMessage(msg *message.Message) {
	defer func() {
		if e := recover(); e != nil {
			// a nacked message is redelivered, which would panic again
			log.Errorf("[Consumer] panic while handling message %s: %v", msg.UUID, e)
			msg.Ack()
		}
	}()

	var event dto.NoteCreatedMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// a payload that cannot be decoded will never succeed, drop it
		log.Errorf("[Consumer] invalid payload on message %s: %v | payload: %s", msg.UUID, err, string(msg.Payload))
		msg.Ack()
		return
	}

	if err := cs.handler(msg.Context(), event); err != nil {
		log.Errorf("[Consumer] failed to handle note %d: %v", event.NoteId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

// LogNoteCreated writes an audit line for every created note.
func LogNoteCreated(_ context.Context, event dto.NoteCreatedMessage) error {
	log.Infof("[Audit] note %d created at %s", event.NoteId, event.CreatedAt.UTC().Format(constant.TimestampLayout))
	return nil
}
