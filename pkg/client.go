package pkg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	ConnQueueSize = 10
	DialTimeout   = 5 * time.Second
)

// frameReader yields raw tracker messages one at a time.
type frameReader interface {
	Next() ([]byte, error)
	Close() error
}

type wsReader struct {
	conn *websocket.Conn
}

func (r *wsReader) Next() ([]byte, error) {
	_, data, err := r.conn.ReadMessage()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil, io.EOF
	}
	return data, err
}

func (r *wsReader) Close() error { return r.conn.Close() }

// lineReader reads newline delimited JSON. Scanning runs on its own
// goroutine so Close returns a blocked Next even when the underlying reader
// cannot be interrupted, as with a terminal or pipe on stdin.
type lineReader struct {
	lines  chan lineResult
	done   chan struct{}
	once   sync.Once
	closer io.Closer
}

type lineResult struct {
	data []byte
	err  error
}

func newLineReader(rc io.Reader, closer io.Closer) *lineReader {
	r := &lineReader{
		lines:  make(chan lineResult),
		done:   make(chan struct{}),
		closer: closer,
	}
	go r.scan(rc)

	return r
}

func (r *lineReader) scan(rc io.Reader) {
	defer close(r.lines)

	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}

		select {
		case r.lines <- lineResult{data: bytes.Clone(sc.Bytes())}:
		case <-r.done:
			return
		}
	}

	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case r.lines <- lineResult{err: err}:
	case <-r.done:
	}
}

func (r *lineReader) Next() ([]byte, error) {
	select {
	case res, ok := <-r.lines:
		if !ok {
			return nil, io.EOF
		}
		return res.data, res.err
	case <-r.done:
		return nil, net.ErrClosed
	}
}

func (r *lineReader) Close() error {
	r.once.Do(func() { close(r.done) })

	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Client receives finger frames from the external hand tracker.
type Client struct {
	Address string

	src    frameReader
	logger *zap.Logger
}

// Dial connects to a tracker. Supported addresses are ws:// and wss://
// (one JSON message per frame), tcp://host:port and unix:///path (one JSON
// object per line) and "-" for stdin. Stdin is never closed; cancelling
// HandleRead leaves it readable by the rest of the process.
func Dial(ctx context.Context, address string, stdin io.Reader, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cl := &Client{Address: address, logger: logger.With(zap.String("tracker", address))}

	if address == "-" {
		cl.src = newLineReader(stdin, nil)
		return cl, nil
	}

	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("tracker address %q: %w", address, err)
	}

	ctx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()

	switch u.Scheme {
	case "ws", "wss":
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, address, nil)
		if err != nil {
			return nil, fmt.Errorf("dial tracker: %w", err)
		}
		cl.src = &wsReader{conn: conn}

	case "tcp", "unix":
		target := u.Host
		if u.Scheme == "unix" {
			target = u.Path
		}

		var d net.Dialer
		conn, err := d.DialContext(ctx, u.Scheme, target)
		if err != nil {
			return nil, fmt.Errorf("dial tracker: %w", err)
		}
		cl.src = newLineReader(conn, conn)

	default:
		return nil, fmt.Errorf("tracker address %q: unsupported scheme %q", address, u.Scheme)
	}

	cl.logger.Info("connected to tracker")
	return cl, nil
}

// HandleRead forwards decoded frames to out until the tracker closes the
// stream or ctx is done. Malformed frames are logged and dropped.
func (cl *Client) HandleRead(ctx context.Context, out chan<- TimedFrame) error {
	stop := context.AfterFunc(ctx, func() { cl.src.Close() })
	defer stop()

	for {
		data, err := cl.src.Next()
		if errors.Is(err, io.EOF) {
			cl.logger.Info("tracker stream ended")
			return nil
		} else if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read tracker: %w", err)
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			cl.logger.Warn("dropping tracker frame", zap.ByteString("data", data), zap.Error(err))
			continue
		}

		select {
		case out <- TimedFrame{At: time.Now(), Frame: frame}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (cl *Client) Disconnect() error {
	return cl.src.Close()
}
