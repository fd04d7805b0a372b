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
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Driver Postgres
)

// Execer é o subconjunto de *sql.DB usado pelo ArchiveStore.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	createArchiveTable = `CREATE TABLE IF NOT EXISTS feedback_reports (
	name       TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	stored_at  TIMESTAMPTZ NOT NULL
)`

	upsertArchive = `INSERT INTO feedback_reports (name, content, stored_at)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content, stored_at = EXCLUDED.stored_at`
)

// ArchiveStore guarda uma cópia de cada relatório em uma tabela Postgres.
type ArchiveStore struct {
	db  Execer
	now func() time.Time
}

func NewArchiveStore(db Execer) *ArchiveStore {
	return &ArchiveStore{db: db, now: time.Now}
}

// OpenArchive conecta ao Postgres e garante a tabela de arquivo.
func OpenArchive(ctx context.Context, dsn string) (*ArchiveStore, *sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao abrir conexão SQL: %w", err)
	}

	ctxDb, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctxDb); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("erro ao conectar no Postgres: %w", err)
	}

	archive := NewArchiveStore(db)
	if err := archive.EnsureSchema(ctxDb); err != nil {
		db.Close()
		return nil, nil, err
	}
	return archive, db, nil
}

func (a *ArchiveStore) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, createArchiveTable); err != nil {
		return fmt.Errorf("erro ao criar tabela de arquivo: %w", err)
	}
	return nil
}

func (a *ArchiveStore) Store(ctx context.Context, name, content string) error {
	if _, err := a.db.ExecContext(ctx, upsertArchive, name, content, a.now().UTC()); err != nil {
		return fmt.Errorf("erro ao arquivar %s: %w", name, err)
	}
	return nil
}
