package aws

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive stores generated files under a key prefix of one bucket.
type S3Archive struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Archive(client ObjectPutter, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}
}

// NewS3ArchiveFromEnv returns nil when S3_EXPORTS_BUCKET is not set.
func NewS3ArchiveFromEnv(ctx context.Context) *S3Archive {
	bucket := os.Getenv("S3_EXPORTS_BUCKET")
	if bucket == "" {
		return nil
	}
	cfg, err := GetConfig(ctx)
	if err != nil {
		log.Printf("Failed to initialize S3: %s\n", err.Error())
		return nil
	}
	return NewS3Archive(s3.NewFromConfig(*cfg), bucket, "ledger/")
}

func (a *S3Archive) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := a.prefix + name
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not put object %s to bucket %s: %w", key, a.bucket, err)
	}
	log.Printf("Added object '%s' to bucket '%s'", key, a.bucket)
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
