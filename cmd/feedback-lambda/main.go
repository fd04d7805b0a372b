package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/feedback-service/internal/app"
	"github.com/raywall/feedback-service/pkg/transport"
)

var (
	// Variáveis injetáveis para mocking
	newApp        = app.New
	lambdaStarter = lambda.Start
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run contém a lógica principal testável
func run(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	handler := transport.NewLambdaHandler(a.Service, a.TransportOptions())
	lambdaStarter(handler.Handle)
	return nil
}
