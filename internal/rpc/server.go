package rpc

import (
	"fmt"
	"net"

	"google.golang.org/grpc"

	"mahjongcore/internal/config"
	"mahjongcore/internal/discovery"
	"mahjongcore/internal/logging"
)

// Server bundles a *grpc.Server with its etcd registration, matching the
// teacher's pattern of a node process both serving gRPC and registering
// itself for discovery (see game/interfaces/grpc/provider.go and
// common/discovery/registry.go used together). The embedding application
// registers its own service implementations onto Srv before calling
// Serve; this package only owns the transport and auth plumbing, since
// the mahjong-specific RPC surface (its .proto-defined messages and
// service) is generated by protoc, a toolchain step outside this
// package's scope.
type Server struct {
	Srv      *grpc.Server
	register *discovery.Register
	log      *logging.Logger
}

// NewServer builds a *grpc.Server with the JWT auth interceptor
// installed, exempting exemptMethods (e.g. a health-check RPC) from
// authentication.
func NewServer(jwtSecret string, exemptMethods ...string) *Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(AuthUnaryServerInterceptor(jwtSecret, exemptMethods...)))
	return &Server{Srv: srv, log: logging.New("rpc")}
}

// Serve listens on addr, registers this instance in etcd per etcdConf,
// and blocks serving gRPC until the listener errors or is closed.
func (s *Server) Serve(addr string, etcdConf config.EtcdConf) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpc: listen %s: %w", addr, err)
	}

	s.register = discovery.NewRegister()
	etcdConf.Register.Addr = addr
	if err := s.register.Register(etcdConf); err != nil {
		return fmt.Errorf("rpc: register service: %w", err)
	}

	s.log.Info("serving grpc on %s", addr)
	return s.Srv.Serve(lis)
}

// Stop deregisters from etcd and gracefully stops the gRPC server.
func (s *Server) Stop() {
	if s.register != nil {
		s.register.Close()
	}
	s.Srv.GracefulStop()
}
