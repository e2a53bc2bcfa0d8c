package queue

import (
	"context"
	"sync"
)

var _ Queue = (*InMemoryQueue)(nil)

type InMemoryQueue struct {
	mutex sync.Mutex

	items map[string][]string
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		items: make(map[string][]string),
	}
}

func (q *InMemoryQueue) Push(_ context.Context, key string, data string) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.items[key] = append(q.items[key], data)

	return nil
}

func (q *InMemoryQueue) Pop(_ context.Context, key string) (string, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.items[key]) == 0 {
		return "", nil
	}

	data := q.items[key][0]
	q.items[key] = q.items[key][1:]

	return data, nil
}

func (q *InMemoryQueue) PopAll(_ context.Context, key string) ([]string, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	data := append([]string{}, q.items[key]...)
	delete(q.items, key)

	return data, nil
}
