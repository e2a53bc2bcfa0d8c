package queue

import "context"

// Queue is a named FIFO list. The bot uses it to remember transient messages
// it sent into group chats so they can be cleaned up later in one sweep.
type Queue interface {
	Push(context.Context, string, string) error
	Pop(context.Context, string) (string, error)
	PopAll(context.Context, string) ([]string, error)
}
