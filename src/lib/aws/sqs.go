package aws

import (
	"acelera/src/lib"
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func GetSQSClient(ctx context.Context) (*sqs.Client, error) {
	cfg, err := GetConfig(ctx)
	if err != nil {
		log.Printf("Failed to initialize SQS client: %s\n", err.Error())
		return nil, err
	}
	return sqs.NewFromConfig(*cfg), nil
}

func SQSSend(ctx context.Context, client SQSAPI, queueURL string, body []byte, attrs map[string]string) error {
	in := &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(body)),
	}
	if len(attrs) > 0 {
		in.MessageAttributes = map[string]sqstypes.MessageAttributeValue{}
		for k, v := range attrs {
			in.MessageAttributes[k] = sqstypes.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
		}
	}
	_, err := client.SendMessage(ctx, in)
	return err
}

// SQSPublisher sends domain events to EVENTS_QUEUE_URL.
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
}

func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// NewSQSPublisherFromEnv returns nil when EVENTS_QUEUE_URL is not set.
func NewSQSPublisherFromEnv(ctx context.Context) *SQSPublisher {
	qurl := os.Getenv("EVENTS_QUEUE_URL")
	if qurl == "" {
		return nil
	}
	client, err := GetSQSClient(ctx)
	if err != nil {
		return nil
	}
	return NewSQSPublisher(client, qurl)
}

func (p *SQSPublisher) Publish(ctx context.Context, e lib.DomainEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return SQSSend(ctx, p.client, p.queueURL, body, map[string]string{"type": e.Type})
}

type MessageHandler func(ctx context.Context, body string) error

type SQSConsumer struct {
	Name     string
	client   SQSAPI
	queueURL string
	handler  MessageHandler
}

func NewSQSConsumer(client SQSAPI, queueURL string, handler MessageHandler) *SQSConsumer {
	name := queueURL[strings.LastIndex(queueURL, "/")+1:]
	return &SQSConsumer{Name: name, client: client, queueURL: queueURL, handler: handler}
}

// Poll receives one batch and deletes every message its handler accepted.
func (s *SQSConsumer) Poll(ctx context.Context, wait int32) (int, error) {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		WaitTimeSeconds:     wait,
		MaxNumberOfMessages: 10,
	})
	if err != nil {
		return 0, err
	}
	handled := 0
	for _, m := range output.Messages {
		if err := s.handler(ctx, aws.ToString(m.Body)); err != nil {
			log.Printf("[%s] Error handling message %s: %s\n", s.Name, aws.ToString(m.MessageId), err.Error())
			continue
		}
		if _, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(s.queueURL),
			ReceiptHandle: m.ReceiptHandle,
		}); err != nil {
			log.Printf("[%s] Error deleting message from queue: %s\n", s.Name, err.Error())
			continue
		}
		handled++
	}
	return handled, nil
}

func (s *SQSConsumer) Listen(ctx context.Context) {
	go func() {
		log.Printf("%s: Listening for messages...", s.Name)
		for ctx.Err() == nil {
			if _, err := s.Poll(ctx, 20); err != nil && ctx.Err() == nil {
				log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
				return
			}
		}
	}()
}
