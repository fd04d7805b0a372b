package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/feedback-service/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger global a partir da configuração de ambiente.
//
// O logger retornado também passa a ser o DefaultContextLogger, usado por
// zerolog.Ctx quando o contexto não carrega um logger próprio.
func Configure(cfg config.LoggingConf, service string) zerolog.Logger {
	return configure(cfg, service, os.Stdout)
}

func configure(cfg config.LoggingConf, service string, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console "bonito" para local se solicitado
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	zerolog.DefaultContextLogger = &logger
	return logger
}
