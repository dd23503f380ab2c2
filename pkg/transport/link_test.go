package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// hostSide wraps the other end of a pipe with a framer and codec.
type hostSide struct {
	conn   net.Conn
	framer *Framer
}

func newHostSide(conn net.Conn) *hostSide {
	return &hostSide{conn: conn, framer: NewFramer(conn, 0)}
}

func (h *hostSide) send(msg wire.Message) error {
	data, err := wire.Encode(msg)
	if err != nil {
		return err
	}
	return h.framer.WriteFrame(data)
}

func (h *hostSide) recv() (wire.Message, error) {
	h.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	data, err := h.framer.ReadFrame()
	if err != nil {
		return nil, err
	}
	return wire.Decode(data)
}

func recvMessage(t *testing.T, l *Link) wire.Message {
	t.Helper()
	select {
	case msg, ok := <-l.Messages():
		if !ok {
			t.Fatal("link closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestLinkRoundTrip(t *testing.T) {
	devConn, hostConn := net.Pipe()
	logger := &log.MemoryLogger{}
	link := NewLink(devConn, LinkConfig{ConnID: "link-1", Logger: logger})
	defer link.Close()
	host := newHostSide(hostConn)

	go func() { _ = host.send(&wire.Ping{Message: "hi"}) }()
	got := recvMessage(t, link)
	ping, ok := got.(*wire.Ping)
	if !ok || ping.Message != "hi" {
		t.Fatalf("received %#v, want Ping{hi}", got)
	}

	done := make(chan wire.Message, 1)
	go func() {
		msg, _ := host.recv()
		done <- msg
	}()
	if err := link.Send(&wire.Success{Message: "hi"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	reply := <-done
	if s, ok := reply.(*wire.Success); !ok || s.Message != "hi" {
		t.Errorf("host received %#v, want Success{hi}", reply)
	}

	var wireEvents int
	for _, e := range logger.Events() {
		if e.Layer == log.LayerWire && e.Message != nil {
			wireEvents++
		}
	}
	if wireEvents != 2 {
		t.Errorf("wire message events = %d, want 2", wireEvents)
	}
}

func TestLinkRedactsLoggedSecrets(t *testing.T) {
	devConn, hostConn := net.Pipe()
	logger := &log.MemoryLogger{}
	link := NewLink(devConn, LinkConfig{ConnID: "link-2", Logger: logger})
	defer link.Close()
	host := newHostSide(hostConn)

	go func() { _ = host.send(&wire.PinMatrixAck{Pin: "735"}) }()
	ack := recvMessage(t, link).(*wire.PinMatrixAck)
	if ack.Pin != "735" {
		t.Fatalf("Pin = %q, want 735", ack.Pin)
	}

	for _, e := range logger.Events() {
		if e.Frame != nil && e.Frame.Data != nil {
			t.Error("secret frame data was logged")
		}
		if e.Message != nil {
			if p, ok := e.Message.Payload.(*wire.PinMatrixAck); ok && p.Pin == "735" {
				t.Error("PIN was logged in clear")
			}
		}
	}
}

func TestLinkSkipsUndecodable(t *testing.T) {
	devConn, hostConn := net.Pipe()
	link := NewLink(devConn, LinkConfig{})
	defer link.Close()
	host := newHostSide(hostConn)

	go func() {
		_ = host.framer.WriteFrame([]byte{0xff, 0x00})
		_ = host.send(&wire.Cancel{})
	}()
	if _, ok := recvMessage(t, link).(*wire.Cancel); !ok {
		t.Error("expected Cancel after garbage frame")
	}
}

func TestLinkCloseEndsMessages(t *testing.T) {
	devConn, hostConn := net.Pipe()
	link := NewLink(devConn, LinkConfig{})
	hostConn.Close()

	select {
	case _, ok := <-link.Messages():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Messages() not closed after peer hangup")
	}
	if err := link.Err(); err != nil {
		t.Errorf("Err() = %v, want nil on clean EOF", err)
	}

	link.Close()
	if err := link.Send(&wire.Success{}); err != ErrLinkClosed {
		t.Errorf("Send() after Close = %v, want ErrLinkClosed", err)
	}
}

func TestServerOneHostAtATime(t *testing.T) {
	served := make(chan string, 2)
	release := make(chan struct{})

	srv, err := NewServer(ServerConfig{
		Address: "127.0.0.1:0",
		OnLink: func(ctx context.Context, link *Link) {
			served <- link.ConnID()
			if msg, ok := <-link.Messages(); ok {
				_ = link.Send(&wire.Success{Message: msg.MessageType().String()})
			}
			<-release
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := srv.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer srv.Stop()

	c1, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer c1.Close()
	h1 := newHostSide(c1)
	if err := h1.send(&wire.Initialize{}); err != nil {
		t.Fatal(err)
	}
	reply, err := h1.recv()
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := reply.(*wire.Success); !ok || s.Message != "Initialize" {
		t.Fatalf("unexpected reply %#v", reply)
	}
	id := <-served
	if id == "" {
		t.Error("empty connection ID")
	}
	if !srv.Connected() {
		t.Error("Connected() = false with a host attached")
	}

	c2, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()
	c2.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := NewFrameReader(c2, 0).ReadFrame(); err == nil {
		t.Error("second host was not disconnected")
	}

	close(release)
}

func TestNewServerRequiresHandler(t *testing.T) {
	if _, err := NewServer(ServerConfig{}); err == nil {
		t.Error("NewServer() without OnLink should fail")
	}
}
