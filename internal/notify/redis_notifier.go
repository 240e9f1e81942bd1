package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// RedisNotifier keeps pending reminders in a sorted set scored by fire
// time, with payloads in a companion hash keyed by reminder identifier.
type RedisNotifier struct {
	client     rueidis.Client
	pendingKey string
	payloadKey string
	logger     *zap.SugaredLogger

	dispatchWG   sync.WaitGroup
	dispatchStop chan struct{}
}

type payload struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fire_at"`
}

func NewRedisNotifier(
	client rueidis.Client,
	pendingKey, payloadKey string,
	logger *zap.SugaredLogger,
) *RedisNotifier {
	return &RedisNotifier{
		client:       client,
		pendingKey:   pendingKey,
		payloadKey:   payloadKey,
		logger:       logger,
		dispatchStop: make(chan struct{}),
	}
}

func (n *RedisNotifier) Schedule(ctx context.Context, id string, fireAt time.Time, title, body string) error {
	if !fireAt.After(time.Now()) {
		return nil
	}

	raw, err := json.Marshal(payload{Title: title, Body: body, FireAt: fireAt})
	if err != nil {
		return err
	}

	if err := n.client.Do(
		ctx,
		n.client.B().Hset().Key(n.payloadKey).FieldValue().FieldValue(id, string(raw)).Build(),
	).Error(); err != nil {
		return err
	}

	return n.client.Do(
		ctx,
		n.client.B().Zadd().Key(n.pendingKey).ScoreMember().
			ScoreMember(float64(fireAt.Unix()), id).Build(),
	).Error()
}

func (n *RedisNotifier) Cancel(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if err := n.client.Do(
		ctx,
		n.client.B().Zrem().Key(n.pendingKey).Member(ids...).Build(),
	).Error(); err != nil {
		return err
	}

	return n.client.Do(
		ctx,
		n.client.B().Hdel().Key(n.payloadKey).Field(ids...).Build(),
	).Error()
}

// StartDispatcher begins delivering due reminders on the given interval.
// Delivery here is a structured log line; a real client would hand the
// payload to the platform notification center.
func (n *RedisNotifier) StartDispatcher(interval time.Duration) {
	n.dispatchWG.Add(1)
	go n.dispatchLoop(interval)
}

func (n *RedisNotifier) dispatchLoop(interval time.Duration) {
	defer n.dispatchWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.dispatchOnce()
		case <-n.dispatchStop:
			return
		}
	}
}

func (n *RedisNotifier) dispatchOnce() {
	ctx := context.Background()
	dueBy := strconv.FormatInt(time.Now().Unix(), 10)

	ids, err := n.client.Do(
		ctx,
		n.client.B().Zrangebyscore().Key(n.pendingKey).Min("-inf").Max(dueBy).Build(),
	).AsStrSlice()
	if err != nil {
		n.logger.Warnf("dispatch: failed to list due reminders: %v", err)
		return
	}

	for _, id := range ids {
		raw, err := n.client.Do(
			ctx,
			n.client.B().Hget().Key(n.payloadKey).Field(id).Build(),
		).ToString()
		if err != nil && !rueidis.IsRedisNil(err) {
			n.logger.Warnf("dispatch: failed to load payload for %s: %v", id, err)
			continue
		}

		var p payload
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				n.logger.Warnf("dispatch: malformed payload for %s: %v", id, err)
			}
		}

		n.logger.Infow("reminder fired", "id", id, "title", p.Title, "body", p.Body)

		if err := n.Cancel(ctx, []string{id}); err != nil {
			n.logger.Warnf("dispatch: failed to clear reminder %s: %v", id, err)
		}
	}
}

func (n *RedisNotifier) StopDispatcher() {
	close(n.dispatchStop)
	n.dispatchWG.Wait()
}
