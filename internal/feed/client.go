// Package feed maintains a websocket connection to the exchange stream
// endpoint and hands every raw frame to a message handler. It knows nothing
// about message contents; decoding is the caller's handler.
package feed

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const reconnectDelay = 3 * time.Second

// Client is a websocket stream consumer with reconnect-and-resubscribe.
type Client struct {
	url     string
	streams []string
	handler func([]byte)
	logger  *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn

	done chan struct{}
}

// NewClient creates a client for the given endpoint URL and stream names.
func NewClient(url string, streams []string, logger *zap.Logger) *Client {
	return &Client{
		url:     url,
		streams: streams,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// SetMessageHandler sets the function invoked with every received frame.
func (c *Client) SetMessageHandler(h func([]byte)) {
	c.handler = h
}

// Connect dials the endpoint and subscribes to the configured streams. It
// does not start the read loop; call Listen for that.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.logger.Info("websocket connected", zap.String("url", c.url))

	if err := c.subscribe(conn); err != nil {
		return err
	}
	return nil
}

func (c *Client) subscribe(conn *websocket.Conn) error {
	if len(c.streams) == 0 {
		return nil
	}
	sub := map[string]interface{}{
		"method": "SUBSCRIBE",
		"params": c.streams,
		"id":     1,
	}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("websocket subscribe failed: %w", err)
	}
	return nil
}

// Listen reads frames until Close is called, reconnecting and resubscribing
// on any read error.
func (c *Client) Listen() {
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			c.logger.Error("websocket read error", zap.Error(err))

			for {
				select {
				case <-c.done:
					return
				case <-time.After(reconnectDelay):
				}
				if err := c.reconnectAndResubscribe(); err != nil {
					c.logger.Warn("reconnect failed, retrying", zap.Error(err))
					continue
				}
				c.logger.Info("reconnected")
				break
			}
			continue
		}

		if c.handler != nil {
			c.handler(msg)
		}
	}
}

func (c *Client) reconnectAndResubscribe() error {
	newConn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	old := c.conn
	c.conn = newConn
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return c.subscribe(newConn)
}

// Close stops the read loop and closes the connection.
func (c *Client) Close() error {
	close(c.done)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
