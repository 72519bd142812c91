package mjai

import (
	"net"

	"mahjongcore/internal/logging"
)

// Listener accepts external mjai-speaking bot connections and hands each
// one to a caller-supplied callback as a handshaken Bridge, the TCP
// counterpart to internal/wsbridge.Hub.Upgrade.
type Listener struct {
	ln  net.Listener
	log *logging.Logger
}

func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln, log: logging.New("mjai")}, nil
}

// Serve blocks accepting connections until the listener is closed,
// invoking onConnect(bridge, name, room) for each successfully handshaken
// client; the caller is responsible for assigning a seat via bridge.Init
// and attaching the bridge to a table.
func (l *Listener) Serve(onConnect func(b *Bridge, name, room string)) error {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return err
		}
		go func() {
			b, name, room, err := Accept(conn)
			if err != nil {
				l.log.Warn("handshake failed: %v", err)
				conn.Close()
				return
			}
			onConnect(b, name, room)
		}()
	}
}

func (l *Listener) Close() error { return l.ln.Close() }

func (l *Listener) Addr() net.Addr { return l.ln.Addr() }
