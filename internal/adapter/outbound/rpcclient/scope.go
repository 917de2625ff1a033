package rpcclient

import (
	"errors"
	"log/slog"
	"net/http"
)

// With opens a Client, passes it to fn and closes it when fn returns, fails
// or panics. A panic is re-raised after the client is closed.
func With(cfg Config, httpClient *http.Client, logger *slog.Logger, fn func(*Client) error) (err error) {
	c := New(cfg, httpClient, logger)
	defer func() {
		closeErr := c.Close()
		if r := recover(); r != nil {
			panic(r)
		}
		err = errors.Join(err, closeErr)
	}()
	return fn(c)
}
