package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Console writes notifications as text, typically to stdout.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(_ context.Context, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.w, "[%s] %s\n        %s\n", n.At.Format("15:04"), n.Title, n.Body)
	return err
}
