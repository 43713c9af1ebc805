package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/legal-assistant/internal/config"
)

// S3Store хранит файлы в S3-совместимом хранилище. Работает и с
// самим AWS, и с совместимыми провайдерами через явный endpoint
// и path-style адресацию.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store создаёт клиент S3 по статическим ключам из конфигурации.
func NewS3Store(cfg config.S3) *S3Store {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.KeyID, cfg.Secret, "",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String("https://" + cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return &S3Store{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

// Save загружает объект в бакет.
func (s *S3Store) Save(ctx context.Context, key, contentType string, r io.Reader) error {
	const op = "filestore.S3Store.Save"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Open скачивает объект из бакета.
func (s *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	const op = "filestore.S3Store.Open"
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out.Body, nil
}

// Delete удаляет объект из бакета.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	const op = "filestore.S3Store.Delete"
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
