package queue

import (
	"context"

	"github.com/redis/rueidis"
)

var _ Queue = (*RueidisQueue)(nil)

// RueidisQueue backs the queue with a Redis list. Every push refreshes a
// 24 hour expiry so abandoned queues do not pile up forever.
type RueidisQueue struct {
	rueidis rueidis.Client
}

func NewRueidisQueue(client rueidis.Client) *RueidisQueue {
	return &RueidisQueue{
		rueidis: client,
	}
}

func (q *RueidisQueue) Push(ctx context.Context, key string, data string) error {
	lpushCmd := q.rueidis.B().
		Lpush().
		Key(key).
		Element(data).
		Build()

	expireCmd := q.rueidis.B().
		Expire().
		Key(key).
		Seconds(24 * 60 * 60).
		Build()

	for _, res := range q.rueidis.DoMulti(ctx, lpushCmd, expireCmd) {
		if res.Error() != nil {
			return res.Error()
		}
	}

	return nil
}

func (q *RueidisQueue) Pop(ctx context.Context, key string) (string, error) {
	rpopCmd := q.rueidis.B().
		Rpop().
		Key(key).
		Count(1).
		Build()

	elem, err := q.rueidis.Do(ctx, rpopCmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", nil
		}

		return "", err
	}

	return elem, nil
}

func (q *RueidisQueue) PopAll(ctx context.Context, key string) ([]string, error) {
	lrangeCmd := q.rueidis.B().
		Lrange().
		Key(key).
		Start(0).
		Stop(-1).
		Build()

	elems, err := q.rueidis.Do(ctx, lrangeCmd).AsStrSlice()
	if err != nil || len(elems) == 0 {
		return make([]string, 0), nil
	}

	delCmd := q.rueidis.B().
		Del().
		Key(key).
		Build()

	res := q.rueidis.Do(ctx, delCmd)
	if res.Error() != nil {
		return nil, res.Error()
	}

	return elems, nil
}
