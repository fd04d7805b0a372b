package awscfg

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/feedback-service/pkg/config"
)

// Clients agrupa os clientes AWS usados pelo serviço.
type Clients struct {
	DynamoDB       *dynamodb.Client
	S3             *s3.Client
	SES            *ses.Client
	SQS            *sqs.Client
	SSM            *ssm.Client
	SecretsManager *secretsmanager.Client
}

// Load carrega a configuração da AWS (env vars, profile, IAM role).
// Credenciais estáticas, quando informadas, têm precedência; são o caminho
// usado com DynamoDB Local e MinIO.
func Load(ctx context.Context, cfg config.AWSConf) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}
	return awsCfg, nil
}

// NewClients cria os clientes aplicando os endpoints customizados.
func NewClients(awsCfg aws.Config, cfg config.AWSConf) *Clients {
	return &Clients{
		DynamoDB:       dynamodb.NewFromConfig(awsCfg, DynamoDBOptions(cfg)...),
		S3:             s3.NewFromConfig(awsCfg, S3Options(cfg)...),
		SES:            ses.NewFromConfig(awsCfg),
		SQS:            sqs.NewFromConfig(awsCfg),
		SSM:            ssm.NewFromConfig(awsCfg),
		SecretsManager: secretsmanager.NewFromConfig(awsCfg),
	}
}

// DynamoDBOptions aponta o cliente para DYNAMODB_ENDPOINT, se definido.
func DynamoDBOptions(cfg config.AWSConf) []func(*dynamodb.Options) {
	if cfg.DynamoDBEndpoint == "" {
		return nil
	}
	return []func(*dynamodb.Options){
		func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		},
	}
}

// S3Options aponta o cliente para S3_ENDPOINT (MinIO) com path-style.
func S3Options(cfg config.AWSConf) []func(*s3.Options) {
	if cfg.S3Endpoint == "" {
		return nil
	}
	return []func(*s3.Options){
		func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		},
	}
}
