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
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisClient é o subconjunto do go-redis usado pelo cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedStore mantém no Redis uma cópia dos relatórios lidos e gravados.
// O Redis nunca é a fonte da verdade: erros do cache são registrados e a
// operação segue no ObjectStore.
type CachedStore struct {
	store  ObjectStore
	cache  RedisClient
	ttl    time.Duration
	prefix string
}

func NewCachedStore(store ObjectStore, cache RedisClient, ttl time.Duration) *CachedStore {
	return &CachedStore{store: store, cache: cache, ttl: ttl, prefix: "feedback:report:"}
}

// NewRedisClient cria o cliente go-redis padrão.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (c *CachedStore) Store(ctx context.Context, name, content string) error {
	if err := c.store.Store(ctx, name, content); err != nil {
		return err
	}
	c.put(ctx, name, content)
	return nil
}

func (c *CachedStore) Retrieve(ctx context.Context, name string) (string, error) {
	log := zerolog.Ctx(ctx)

	val, err := c.cache.Get(ctx, c.prefix+name).Result()
	switch {
	case err == nil:
		log.Debug().Str("object", name).Msg("report cache hit")
		return val, nil
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("object", name).Msg("report cache unavailable")
	}

	content, err := c.store.Retrieve(ctx, name)
	if err != nil {
		return "", err
	}
	c.put(ctx, name, content)
	return content, nil
}

func (c *CachedStore) put(ctx context.Context, name, content string) {
	if err := c.cache.Set(ctx, c.prefix+name, content, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("object", name).Msg("report cache write failed")
	}
}
