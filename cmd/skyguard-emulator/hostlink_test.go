package main

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyguard-wallet/skyguard-go/pkg/transport"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

func TestHostBridge(t *testing.T) {
	b := newHostBridge()
	assert.False(t, b.Connected())
	assert.True(t, errors.Is(b.Send(&wire.Success{}), errNoHost))

	devConn, hostConn := net.Pipe()
	link := transport.NewLink(devConn, transport.LinkConfig{ConnID: "host-1"})
	host := transport.NewFramer(hostConn, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan struct{})
	go func() {
		b.serve(ctx, link)
		close(served)
	}()

	data, err := wire.Encode(&wire.Ping{Message: "hello"})
	require.NoError(t, err)
	require.NoError(t, host.WriteFrame(data))

	select {
	case msg := <-b.Messages():
		ping, ok := msg.(*wire.Ping)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, "hello", ping.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for forwarded message")
	}
	assert.True(t, b.Connected())

	go func() { _ = b.Send(&wire.Success{Message: "pong"}) }()
	hostConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	frame, err := host.ReadFrame()
	require.NoError(t, err)
	reply, err := wire.Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, "pong", reply.(*wire.Success).Message)

	hostConn.Close()
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after the host disconnected")
	}
	assert.False(t, b.Connected())
}
