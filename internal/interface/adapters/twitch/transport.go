package twitchadapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn es una conexión IRC orientada a líneas (sin \r\n).
type Conn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// WebsocketDialer conecta al IRC de Twitch sobre WebSocket (wss://irc-ws.chat.twitch.tv:443).
type WebsocketDialer struct {
	URL    string
	dialer *websocket.Dialer
}

func NewWebsocketDialer(url string) *WebsocketDialer {
	return &WebsocketDialer{
		URL: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

func (d *WebsocketDialer) Dial(ctx context.Context) (Conn, error) {
	if d.URL == "" {
		return nil, errors.New("twitch: url vacía")
	}
	conn, resp, err := d.dialer.DialContext(ctx, d.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("twitch: dial %s: %w", d.URL, err)
	}
	return &wsConn{conn: conn}, nil
}

// wsConn parte cada frame en líneas: un frame de Twitch puede traer varias.
type wsConn struct {
	conn    *websocket.Conn
	pending []string

	mu sync.Mutex
}

func (c *wsConn) ReadLine() (string, error) {
	for len(c.pending) == 0 {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimRight(line, "\r")
			if line != "" {
				c.pending = append(c.pending, line)
			}
		}
	}
	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

func (c *wsConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
