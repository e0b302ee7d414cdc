package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

// Closer runs registered shutdown functions once, newest first.
type Closer struct {
	mutex  sync.Mutex
	once   sync.Once
	funcs  []func(context.Context) error
	logger Logger
}

func New(logger Logger) *Closer {
	return &Closer{logger: logger}
}

func (c *Closer) AddNamed(name string, function func(context.Context) error) {
	c.Add(func(ctx context.Context) error {
		start := time.Now()
		c.logger.Info(ctx, fmt.Sprintf("closing %s...", name))

		err := function(ctx)

		duration := time.Since(start)
		if err != nil {
			c.logger.Error(ctx, fmt.Sprintf("failed to close %s (took %s)", name, duration), zap.Error(err))
			return fmt.Errorf("%s: %w", name, err)
		}

		c.logger.Info(ctx, fmt.Sprintf("%s closed (took %s)", name, duration))
		return nil
	})
}

func (c *Closer) Add(functions ...func(context.Context) error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.funcs = append(c.funcs, functions...)
}

// CloseAll keeps going after a failure and returns every error joined.
func (c *Closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		c.mutex.Lock()
		funcs := c.funcs
		c.funcs = nil
		c.mutex.Unlock()

		for i := len(funcs) - 1; i >= 0; i-- {
			if ctx.Err() != nil {
				result = errors.Join(result, ctx.Err())
				return
			}

			result = errors.Join(result, c.safeRun(ctx, funcs[i]))
		}
	})

	return result
}

func (c *Closer) safeRun(ctx context.Context, function func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in close function: %v", r)
			c.logger.Error(ctx, "panic recovered during shutdown", zap.Any("panic", r))
		}
	}()

	return function(ctx)
}
