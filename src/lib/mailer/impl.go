package mailer

import (
	"acelera/src/lib"
	awslib "acelera/src/lib/aws"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

type Mailer interface {
	Send(ctx context.Context, input *lib.SendMailInput) error
}

type SMTPMailer struct{}

func (SMTPMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	return lib.SendMail(ctx, input)
}

// QueueMailer hands messages to EMAIL_QUEUE for a worker to deliver.
type QueueMailer struct {
	client   awslib.SQSAPI
	queueURL string
}

func NewQueueMailer(client awslib.SQSAPI, queueURL string) *QueueMailer {
	return &QueueMailer{client: client, queueURL: queueURL}
}

func (q *QueueMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return err
	}
	if err := awslib.SQSSend(ctx, q.client, q.queueURL, body, nil); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}

type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	log.Printf("[mailer] to=%v subject=%q\n%s\n", input.To, input.Subject, input.Body)
	return nil
}

// New picks the queue when EMAIL_QUEUE is set, SMTP when SMTP_HOST is set,
// and the log otherwise.
func New(ctx context.Context) Mailer {
	if qurl := os.Getenv("EMAIL_QUEUE"); qurl != "" {
		client, err := awslib.GetSQSClient(ctx)
		if err == nil {
			return NewQueueMailer(client, qurl)
		}
	}
	if os.Getenv("SMTP_HOST") != "" {
		return SMTPMailer{}
	}
	return LogMailer{}
}

// DeliverQueued is the EMAIL_QUEUE consumer handler.
func DeliverQueued(ctx context.Context, body string) error {
	var input lib.SendMailInput
	if err := json.Unmarshal([]byte(body), &input); err != nil {
		return err
	}
	return lib.SendMail(ctx, &input)
}
