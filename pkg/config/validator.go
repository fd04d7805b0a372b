package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *AppConfig) error {
	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AppConfig) error {
	// Handlers que gravam ou leem relatórios precisam do bucket
	if cfg.Handler != "list" && cfg.Storage.Bucket == "" {
		return fmt.Errorf("REPORTS_BUCKET é obrigatório para o handler '%s'", cfg.Handler)
	}

	// O notificador escolhido precisa dos seus campos
	notifies := cfg.Handler == "notify" || cfg.Handler == "weekly"
	if notifies && cfg.Mail.Notifier != "none" && cfg.Mail.Recipient == "" {
		return fmt.Errorf("RECIPIENT_EMAIL é obrigatório para o notificador '%s'", cfg.Mail.Notifier)
	}
	if cfg.Mail.Notifier == "smtp" && cfg.Mail.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST é obrigatório quando NOTIFIER=smtp")
	}

	// Credenciais estáticas devem vir em par
	if (cfg.AWS.AccessKeyID == "") != (cfg.AWS.SecretAccessKey == "") {
		return fmt.Errorf("AWS_ACCESS_KEY_ID e AWS_SECRET_ACCESS_KEY devem ser informados juntos")
	}

	if cfg.Query.DefaultStart > cfg.Query.DefaultEnd {
		return fmt.Errorf("FEEDBACK_DEFAULT_START (%s) é posterior a FEEDBACK_DEFAULT_END (%s)", cfg.Query.DefaultStart, cfg.Query.DefaultEnd)
	}

	return nil
}
