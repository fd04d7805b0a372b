// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// S3Client interface para Mock
type S3Client interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store grava relatórios como objetos de texto em um bucket.
type S3Store struct {
	client      S3Client
	bucket      string
	region      string
	contentType string
}

func NewS3Store(client S3Client, bucket, region, contentType string) *S3Store {
	return &S3Store{client: client, bucket: bucket, region: region, contentType: contentType}
}

// EnsureBucket cria o bucket se ele não existir. Falha na criação é
// registrada como aviso e não interrompe o fluxo: o PutObject seguinte
// reporta o erro real se o bucket de fato não existir.
func (s *S3Store) EnsureBucket(ctx context.Context) {
	log := zerolog.Ctx(ctx).With().Str("bucket", s.bucket).Logger()

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 não aceita LocationConstraint explícito
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		log.Warn().Err(err).Msg("could not create bucket, continuing")
		return
	}
	log.Info().Msg("bucket created")
}

func (s *S3Store) Store(ctx context.Context, name, content string) error {
	s.EnsureBucket(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(s.bucket),
		Key:             aws.String(name),
		Body:            strings.NewReader(content),
		ContentType:     aws.String(s.contentType),
		ContentEncoding: aws.String("utf-8"),
		ContentLength:   aws.Int64(int64(len(content))),
	})
	if err != nil {
		return fmt.Errorf("erro ao gravar s3://%s/%s: %w", s.bucket, name, err)
	}

	zerolog.Ctx(ctx).Info().Str("bucket", s.bucket).Str("key", name).Int("bytes", len(content)).Msg("report stored")
	return nil
}

func (s *S3Store) Retrieve(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.bucket, name)
		}
		return "", fmt.Errorf("erro ao baixar do S3: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler s3://%s/%s: %w", s.bucket, name, err)
	}
	return string(body), nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
