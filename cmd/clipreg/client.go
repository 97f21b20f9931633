package main

import (
	"fmt"

	"clipreg/internal/ipc"
	"clipreg/internal/message"
	"clipreg/internal/wire"
)

// roundTrip sends one request to the daemon and returns its reply.
// An ERROR reply is surfaced as a Go error carrying the daemon's detail.
func roundTrip(req *message.Message) (*message.Message, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("no clipreg daemon at %s (start one with \"clipreg serve\"): %w",
			ipc.SocketPath(), err)
	}
	defer conn.Close()

	wc := wire.New(conn)
	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if resp.Type == message.TypeError {
		return nil, fmt.Errorf("%s: %s", resp.Error, resp.Detail)
	}
	return resp, nil
}

// request sends req and discards the OK reply.
func request(req *message.Message) error {
	_, err := roundTrip(req)
	return err
}
