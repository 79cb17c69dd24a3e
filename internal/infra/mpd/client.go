// Package mpd drives a Music Player Daemon as a playback channel.
package mpd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned by Ping before Connect succeeded.
var ErrNotConnected = errors.New("mpd: not connected")

// Client wraps the gompd client with reconnection on demand.
type Client struct {
	mu       sync.Mutex
	client   *mpd.Client
	watcher  *mpd.Watcher
	addr     string
	password string
}

// NewClient creates a client for the daemon at host:port.
func NewClient(host string, port int, password string) *Client {
	return &Client{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		password: password,
	}
}

// Addr returns the daemon address.
func (c *Client) Addr() string { return c.addr }

// Connect establishes the command connection.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	log.Info().Str("addr", c.addr).Msg("Connecting to MPD")

	client, err := mpd.Dial("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to MPD: %w", err)
	}
	if c.password != "" {
		if err := client.Command("password %s", c.password).OK(); err != nil {
			client.Close()
			return fmt.Errorf("MPD authentication failed: %w", err)
		}
	}

	c.client = client
	log.Info().Str("addr", c.addr).Msg("Connected to MPD")
	return nil
}

// do runs fn on a live connection, reconnecting once if the ping fails.
func (c *Client) do(fn func(*mpd.Client) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		if err := c.client.Ping(); err != nil {
			log.Warn().Err(err).Msg("MPD connection lost, reconnecting")
			c.client.Close()
			c.client = nil
		}
	}
	if c.client == nil {
		if err := c.connectLocked(); err != nil {
			return err
		}
	}
	return fn(c.client)
}

// Close closes the command connection and the watcher.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// Ping checks the existing connection without reconnecting.
func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return ErrNotConnected
	}
	return c.client.Ping()
}

func (c *Client) Status() (attrs mpd.Attrs, err error) {
	err = c.do(func(m *mpd.Client) error {
		attrs, err = m.Status()
		return err
	})
	return attrs, err
}

func (c *Client) CurrentSong() (attrs mpd.Attrs, err error) {
	err = c.do(func(m *mpd.Client) error {
		attrs, err = m.CurrentSong()
		return err
	})
	return attrs, err
}

// Play starts the song at pos, or resumes when pos is negative.
func (c *Client) Play(pos int) error {
	if pos < 0 {
		pos = -1
	}
	return c.do(func(m *mpd.Client) error { return m.Play(pos) })
}

func (c *Client) Pause(pause bool) error {
	return c.do(func(m *mpd.Client) error { return m.Pause(pause) })
}

func (c *Client) Stop() error {
	return c.do(func(m *mpd.Client) error { return m.Stop() })
}

// Seek moves to seconds within the current song.
func (c *Client) Seek(seconds int) error {
	return c.do(func(m *mpd.Client) error {
		status, err := m.Status()
		if err != nil {
			return err
		}
		song, err := strconv.Atoi(status["song"])
		if err != nil {
			return fmt.Errorf("no song playing")
		}
		return m.Seek(song, seconds)
	})
}

// Clear empties the queue.
func (c *Client) Clear() error {
	return c.do(func(m *mpd.Client) error { return m.Clear() })
}

// Add appends a URI to the queue.
func (c *Client) Add(uri string) error {
	return c.do(func(m *mpd.Client) error { return m.Add(uri) })
}

// Watch reports changed subsystem names until ctx is done.
func (c *Client) Watch(ctx context.Context, subsystems ...string) (<-chan string, error) {
	watcher, err := mpd.NewWatcher("tcp", c.addr, c.password, subsystems...)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	c.mu.Lock()
	c.watcher = watcher
	c.mu.Unlock()

	out := make(chan string, 10)
	go func() {
		defer close(out)
		defer c.dropWatcher(watcher)
		for {
			select {
			case <-ctx.Done():
				return
			case subsystem, ok := <-watcher.Event:
				if !ok {
					return
				}
				select {
				case out <- subsystem:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Error:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("MPD watcher error")
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (c *Client) dropWatcher(w *mpd.Watcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher == w {
		w.Close()
		c.watcher = nil
	}
}
