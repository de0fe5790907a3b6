package auth

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// NonceStore keeps one outstanding login nonce per address
type NonceStore interface {
	Put(ctx context.Context, address string, nonce string, ttl time.Duration) error
	// Take returns and forgets the nonce, "" when none is outstanding
	Take(ctx context.Context, address string) (string, error)
}

const nonceKeyPrefix = "nonce:"

// KeyValueStore is the part of the redis client the nonce store needs
type KeyValueStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
}

type RedisNonceStore struct {
	kv KeyValueStore
}

func NewRedisNonceStore(kv KeyValueStore) *RedisNonceStore {
	return &RedisNonceStore{kv: kv}
}

func (s *RedisNonceStore) Put(ctx context.Context, address string, nonce string, ttl time.Duration) error {
	return s.kv.Set(ctx, nonceKeyPrefix+address, nonce, ttl)
}

func (s *RedisNonceStore) Take(ctx context.Context, address string) (string, error) {
	return s.kv.GetDel(ctx, nonceKeyPrefix+address)
}

// MemoryNonceStore is used when no redis is configured; nonces do not survive restarts
type MemoryNonceStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryNonceStore(defaultTTL time.Duration) *MemoryNonceStore {
	return &MemoryNonceStore{cache: cache.New(defaultTTL, 2*defaultTTL)}
}

func (s *MemoryNonceStore) Put(_ context.Context, address string, nonce string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(nonceKeyPrefix+address, nonce, ttl)
	return nil
}

// Take is atomic like redis GETDEL: concurrent callers never both receive the same nonce
func (s *MemoryNonceStore) Take(_ context.Context, address string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nonceKeyPrefix + address
	value, found := s.cache.Get(key)
	if !found {
		return "", nil
	}
	s.cache.Delete(key)
	nonce, _ := value.(string)
	return nonce, nil
}
