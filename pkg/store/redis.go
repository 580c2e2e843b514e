package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisStore keeps each record as a JSON string under <prefix><token>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) (s *RedisStore) {
	s = &RedisStore{
		client: client,
		prefix: prefix,
	}
	return s
}

// DialRedis connects to redis and checks the connection with a ping.
func DialRedis(ctx context.Context, addr, password string, db int, prefix string) (s *RedisStore, err error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	err = client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		err = errors.Wrapf(err, "failed to ping redis at %s", addr)
		return s, err
	}

	s = NewRedisStore(client, prefix)
	return s, err
}

func (s *RedisStore) key(token string) (key string) {
	key = s.prefix + token
	return key
}

// Get loads the record for token.
func (s *RedisStore) Get(ctx context.Context, token string) (record Record, err error) {
	err = ValidateToken(token)
	if err != nil {
		return record, err
	}

	var data []byte
	data, err = s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		err = ErrNotFound
		return record, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to get record %s", token)
		return record, err
	}

	err = json.Unmarshal(data, &record)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse record %s", token)
		return record, err
	}

	return record, err
}

// Put stores the record without expiry.
func (s *RedisStore) Put(ctx context.Context, record Record) (err error) {
	err = ValidateToken(record.Token)
	if err != nil {
		return err
	}

	var data []byte
	data, err = json.Marshal(record)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal record")
		return err
	}

	err = s.client.Set(ctx, s.key(record.Token), data, 0).Err()
	if err != nil {
		err = errors.Wrapf(err, "failed to store record %s", record.Token)
		return err
	}

	return err
}

// List scans the key prefix and returns every decodable record ordered by
// token.
func (s *RedisStore) List(ctx context.Context) (records []Record, err error) {
	records = []Record{}

	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	err = iter.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to scan records")
		return records, err
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))

		var values []any
		values, err = s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			err = errors.Wrap(err, "failed to load records")
			return records, err
		}

		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			var record Record
			if json.Unmarshal([]byte(raw), &record) != nil {
				continue
			}
			records = append(records, record)
		}
	}

	sortRecords(records)
	return records, err
}

// Close closes the underlying client.
func (s *RedisStore) Close() (err error) {
	err = s.client.Close()
	return err
}
