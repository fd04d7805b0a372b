package config

import (
	"context"
	"fmt"

	"github.com/raywall/feedback-service/envloader"
)

// Injector resolve placeholders ${env|ssm|secret.chave} nos campos string.
type Injector interface {
	Inject(ctx context.Context, target any) error
}

// Load lê a configuração do ambiente (e dos arquivos .env informados),
// resolve placeholders quando inj não é nil e valida o resultado.
func Load(ctx context.Context, inj Injector, files ...string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envloader.LoadFiles(cfg, files...); err != nil {
		return nil, fmt.Errorf("erro ao carregar ambiente: %w", err)
	}

	if inj != nil {
		if err := inj.Inject(ctx, cfg); err != nil {
			return nil, fmt.Errorf("erro ao resolver placeholders: %w", err)
		}
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
