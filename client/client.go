// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: client/client.go
// Summary: HTTP client speaking the panel side of the protocol.
// Usage: The simulator polls with Fetch and reports taps with Touch and Press.
// Notes: Every call returns the payload the server answered with.

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

// maxPayload bounds a response body; a full-screen 540x960 image is ~520 KiB.
const maxPayload = 4 << 20

// Frame is one payload received from the server.
type Frame struct {
	Envelope protocol.Envelope
	Raw      []byte
	Sequence uint64
	// Changed is false when the payload is byte-identical to the previous one.
	Changed bool
}

// Client polls a server on behalf of one device.
type Client struct {
	baseURL      string
	device       string
	deviceHeader string
	http         *http.Client

	mu   sync.Mutex
	last []byte
}

func New(baseURL, device string) *Client {
	return &Client{
		baseURL:      baseURL,
		device:       device,
		deviceHeader: "X-Device-ID",
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// SetDeviceHeader changes the header carrying the device id.
func (c *Client) SetDeviceHeader(name string) {
	if name != "" {
		c.deviceHeader = name
	}
}

// Fetch polls for the current payload.
func (c *Client) Fetch(ctx context.Context) (Frame, error) {
	return c.do(ctx, http.MethodGet, nil)
}

// Touch reports a tap at (x, y).
func (c *Client) Touch(ctx context.Context, x, y int) (Frame, error) {
	body, err := protocol.EncodeEvent(protocol.Event{Type: protocol.EventTouch, X: x, Y: y})
	if err != nil {
		return Frame{}, err
	}
	return c.do(ctx, http.MethodPost, body)
}

// Press reports a hardware button.
func (c *Client) Press(ctx context.Context, b protocol.HardwareButton) (Frame, error) {
	body, err := protocol.EncodeEvent(protocol.Event{Type: protocol.EventButton, Button: b})
	if err != nil {
		return Frame{}, err
	}
	return c.do(ctx, http.MethodPost, body)
}

func (c *Client) do(ctx context.Context, method string, body []byte) (Frame, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return Frame{}, err
	}
	if c.device != "" {
		req.Header.Set(c.deviceHeader, c.device)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Frame{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return Frame{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Frame{}, fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(raw))
	}
	env, err := protocol.Decode(raw)
	if err != nil {
		return Frame{}, fmt.Errorf("bad payload: %w", err)
	}
	seq, _ := strconv.ParseUint(resp.Header.Get("X-Inkwire-Sequence"), 10, 64)

	c.mu.Lock()
	changed := !bytes.Equal(raw, c.last)
	c.last = raw
	c.mu.Unlock()

	return Frame{Envelope: env, Raw: raw, Sequence: seq, Changed: changed}, nil
}
