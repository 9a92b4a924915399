package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/repository"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventCache 已具體化活動的讀取快取。
// Redis 失敗只記錄 log，呼叫端一律退回資料庫。
//
// 每個活動帶一個世代號，Invalidate 時遞增。Get 未命中時回傳目前世代，
// Set 只在世代未變時寫入，避免提交前讀到的舊資料覆蓋失效後的快取。
type EventCache interface {
	Get(ctx context.Context, eventID uuid.UUID) (event *model.Event, generation int64, ok bool)
	Set(ctx context.Context, event *model.Event, generation int64)
	Invalidate(ctx context.Context, eventID uuid.UUID)
}

// 世代號需比任何一次讀取都活得久
const generationTTL = 24 * time.Hour

type RedisEventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventCache(client *redis.Client, ttl time.Duration) EventCache {
	return &RedisEventCache{
		client: client,
		ttl:    ttl,
	}
}

// 活動快取 key
func (c *RedisEventCache) getEventKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s", eventID)
}

// 活動世代號 key
func (c *RedisEventCache) getGenerationKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s:gen", eventID)
}

func (c *RedisEventCache) Get(ctx context.Context, eventID uuid.UUID) (*model.Event, int64, bool) {
	log := logger.WithComponent("cache")

	values, err := c.client.MGet(ctx, c.getEventKey(eventID), c.getGenerationKey(eventID)).Result()
	if err != nil {
		log.Warn("Failed to read event cache",
			zap.String("event_id", eventID.String()), zap.Error(err))
		return nil, -1, false
	}

	generation := int64(0)
	if raw, ok := values[1].(string); ok {
		if generation, err = strconv.ParseInt(raw, 10, 64); err != nil {
			log.Warn("Invalid event cache generation",
				zap.String("event_id", eventID.String()), zap.Error(err))
			return nil, -1, false
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}

	event, err := repository.DecodeEvent([]byte(raw))
	if err != nil {
		log.Warn("Dropping undecodable cache entry",
			zap.String("event_id", eventID.String()), zap.Error(err))
		c.Invalidate(ctx, eventID)
		return nil, -1, false
	}
	return event, generation, true
}

func (c *RedisEventCache) Set(ctx context.Context, event *model.Event, generation int64) {
	// 讀取世代失敗時不寫入
	if generation < 0 {
		return
	}

	data, err := repository.EncodeEvent(event)
	if err != nil {
		logger.WithComponent("cache").Warn("Failed to encode event for cache", zap.Error(err))
		return
	}

	script := `
		-- 1. 取得參數
		local event_key = KEYS[1]
		local gen_key = KEYS[2]
		local expected = ARGV[1]

		-- 2. 世代號已變代表資料在讀取後被修改過
		local current = redis.call('GET', gen_key) or '0'
		if current ~= expected then
			return 0
		end

		-- 3. 寫入快取
		redis.call('SET', event_key, ARGV[2], 'PX', ARGV[3])
		return 1
	`

	keys := []string{c.getEventKey(event.ID()), c.getGenerationKey(event.ID())}
	if err := c.client.Eval(ctx, script, keys, strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds()).Err(); err != nil {
		logger.WithComponent("cache").Warn("Failed to write event cache",
			zap.String("event_id", event.ID().String()), zap.Error(err))
	}
}

func (c *RedisEventCache) Invalidate(ctx context.Context, eventID uuid.UUID) {
	script := `
		-- 1. 遞增世代號，讓進行中的 Set 失效
		redis.call('INCR', KEYS[2])
		redis.call('PEXPIRE', KEYS[2], ARGV[1])

		-- 2. 刪除快取內容
		redis.call('DEL', KEYS[1])
		return "OK"
	`

	keys := []string{c.getEventKey(eventID), c.getGenerationKey(eventID)}
	if err := c.client.Eval(ctx, script, keys, generationTTL.Milliseconds()).Err(); err != nil {
		logger.WithComponent("cache").Warn("Failed to invalidate event cache",
			zap.String("event_id", eventID.String()), zap.Error(err))
	}
}

// NopEventCache 不使用 Redis 時的替代實作
type NopEventCache struct{}

func (NopEventCache) Get(context.Context, uuid.UUID) (*model.Event, int64, bool) {
	return nil, 0, false
}

func (NopEventCache) Set(context.Context, *model.Event, int64) {}

func (NopEventCache) Invalidate(context.Context, uuid.UUID) {}
