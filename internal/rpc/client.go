package rpc

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/resolver"

	"mahjongcore/internal/config"
	"mahjongcore/internal/discovery"
)

// Dial opens a client connection to serviceName via etcd-backed service
// discovery, matching the teacher's common/rpc/rpc.go initClient:
// registering the etcd resolver scheme, building an "etcd:///<name>"
// target, and enabling round_robin load balancing across the discovered
// instances.
func Dial(etcdConf config.EtcdConf, serviceName string, token string, loadBalance bool) (*grpc.ClientConn, error) {
	r := discovery.NewResolver(etcdConf)
	resolver.Register(r)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if loadBalance {
		opts = append(opts, grpc.WithDefaultServiceConfig(`{"loadBalancingPolicy":"round_robin"}`))
	}
	if token != "" {
		opts = append(opts, grpc.WithChainUnaryInterceptor(AuthUnaryClientInterceptor(token)))
	}

	conn, err := grpc.NewClient(fmt.Sprintf("etcd:///%s", serviceName), opts...)
	if err != nil {
		return nil, fmt.Errorf("rpc: dial %s: %w", serviceName, err)
	}
	return conn, nil
}
