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
//
// Package delivery contém os adaptadores que persistem e enviam o relatório
// renderizado: armazenamento de objetos (S3/MinIO), arquivo em Postgres,
// cache Redis e notificação por e-mail (SES ou SMTP).
//
// Todos seguem a mesma política: uma tentativa por chamada, falha registrada
// em log e propagada ao chamador.
package delivery

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrNotFound indica que o objeto pedido não existe.
var ErrNotFound = errors.New("delivery: object not found")

// Writer persiste um documento com o nome informado.
type Writer interface {
	Store(ctx context.Context, name, content string) error
}

// Reader recupera um documento persistido.
type Reader interface {
	Retrieve(ctx context.Context, name string) (string, error)
}

// ObjectStore lê e grava documentos.
type ObjectStore interface {
	Writer
	Reader
}

// Notifier envia o conteúdo de um relatório.
type Notifier interface {
	Notify(ctx context.Context, subject, content string) error
}

// Tee grava primeiro no ObjectStore principal e depois replica nos
// espelhos. Falhas nos espelhos são apenas registradas.
type Tee struct {
	ObjectStore
	mirrors []Writer
}

func NewTee(primary ObjectStore, mirrors ...Writer) *Tee {
	return &Tee{ObjectStore: primary, mirrors: mirrors}
}

func (t *Tee) Store(ctx context.Context, name, content string) error {
	if err := t.ObjectStore.Store(ctx, name, content); err != nil {
		return err
	}
	for _, m := range t.mirrors {
		if err := m.Store(ctx, name, content); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("object", name).Msg("mirror write failed")
		}
	}
	return nil
}

// NopNotifier descarta as notificações (NOTIFIER=none).
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, subject, _ string) error {
	zerolog.Ctx(ctx).Info().Str("subject", subject).Msg("notification disabled, skipping")
	return nil
}
