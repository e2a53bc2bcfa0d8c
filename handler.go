package maru

// HandleFunc is the shape of a command, callback query or event handler. The
// returned Response, if any, is sent by the dispatcher; the returned error is
// translated into a user-facing reply by the dispatcher's error translator.
type HandleFunc func(c *Context) (Response, error)

type Handler interface {
	Handle(c *Context) (Response, error)
}

var _ Handler = (HandleFunc)(nil)

func (f HandleFunc) Handle(c *Context) (Response, error) {
	return f(c)
}

func NewHandler(f HandleFunc) Handler {
	return f
}

// MiddlewareFunc runs before dispatch for every update.
type MiddlewareFunc func(c *Context, next func())
