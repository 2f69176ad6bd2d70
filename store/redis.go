package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis"
)

const DefaultRedisKey = "likes:counts"

// adjustScript: HINCRBY + 下限截断为 0 + 同步排行榜
var adjustScript = redis.NewScript(`
local v = redis.call('HINCRBY', KEYS[1], ARGV[1], ARGV[2])
if v < 0 then
  redis.call('HSET', KEYS[1], ARGV[1], 0)
  v = 0
end
redis.call('ZADD', KEYS[2], v, ARGV[1])
return v
`)

// RedisStore keeps counts in a hash and a ranking in a sorted set next to it.
type RedisStore struct {
	client  *redis.Client
	key     string
	rankKey string
}

func NewRedisStore(client *redis.Client, key string) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, rankKey: key + ":rank"}, nil
}

func (s *RedisStore) LoadAll(_ context.Context) (Counts, error) {
	raw, err := s.client.HGetAll(s.key).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}
	counts := make(Counts, len(raw))
	for id, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse count for %q: %w", id, err)
		}
		counts[id] = n
	}
	return counts, nil
}

func (s *RedisStore) SaveAll(_ context.Context, counts Counts) error {
	pipe := s.client.TxPipeline()
	pipe.Del(s.key, s.rankKey)
	if len(counts) > 0 {
		fields := make(map[string]interface{}, len(counts))
		members := make([]redis.Z, 0, len(counts))
		for id, n := range counts {
			fields[id] = n
			members = append(members, redis.Z{Score: float64(n), Member: id})
		}
		pipe.HMSet(s.key, fields)
		pipe.ZAdd(s.rankKey, members...)
	}
	if _, err := pipe.Exec(); err != nil {
		return fmt.Errorf("save likes: %w", err)
	}
	return nil
}

func (s *RedisStore) Adjust(_ context.Context, itemID string, delta int) (int, error) {
	v, err := adjustScript.Run(s.client, []string{s.key, s.rankKey}, itemID, delta).Int64()
	if err != nil {
		return 0, fmt.Errorf("adjust %q: %w", itemID, err)
	}
	return int(v), nil
}

func (s *RedisStore) Top(_ context.Context, n int) ([]Ranked, error) {
	zs, err := s.client.ZRevRangeWithScores(s.rankKey, 0, int64(n-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("zrevrange %s: %w", s.rankKey, err)
	}
	out := make([]Ranked, 0, len(zs))
	for _, z := range zs {
		id, _ := z.Member.(string)
		out = append(out, Ranked{ItemID: id, Count: int(z.Score)})
	}
	return out, nil
}
