package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectPutter is the part of the S3 client the publisher uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads rendered map documents to an S3 bucket.
type S3Publisher struct {
	client objectPutter
	bucket string
	region string
	prefix string
}

// NewS3Publisher loads the default AWS credential chain for region.
func NewS3Publisher(ctx context.Context, bucket, region string) (*S3Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	return &S3Publisher{client: s3.NewFromConfig(cfg), bucket: bucket, region: region, prefix: "maps"}, nil
}

// Publish uploads body under a unique key derived from name and returns its
// public URL.
func (p *S3Publisher) Publish(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	key := path.Join(p.prefix, fmt.Sprintf("%s-%d-%s", uuid.NewString(), time.Now().Unix(), path.Base(name)))

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3: upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key), nil
}
