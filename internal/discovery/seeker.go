package discovery

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"mahjongcore/internal/config"
	"mahjongcore/internal/logging"
)

// Seeker performs one-shot or watched service lookups outside of a grpc
// dial, matching the teacher's common/discovery/seeker.go -- used, for
// example, by a matchmaker choosing which game-hosting process to route
// a new table onto.
type Seeker struct {
	etcdCli *clientv3.Client
	conf    config.EtcdConf
	log     *logging.Logger
}

func NewSeeker(conf config.EtcdConf) (*Seeker, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   conf.Addrs,
		DialTimeout: time.Duration(conf.DialTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: new seeker: %w", err)
	}
	return &Seeker{etcdCli: cli, conf: conf, log: logging.New("discovery")}, nil
}

// GetServers lists every advertised instance of serviceName.
func (s *Seeker) GetServers(serviceName string) ([]Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.conf.RWTimeout)*time.Second)
	defer cancel()

	res, err := s.etcdCli.Get(ctx, serviceName+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("discovery: get servers: %w", err)
	}

	servers := make([]Server, 0, len(res.Kvs))
	for _, kv := range res.Kvs {
		server, err := ParseValue(kv.Value)
		if err != nil {
			s.log.Error("parse server: %v", err)
			continue
		}
		servers = append(servers, server)
	}
	return servers, nil
}

// WatchServers invokes callback with the full server list every time
// serviceName's instance set changes.
func (s *Seeker) WatchServers(ctx context.Context, serviceName string, callback func([]Server)) {
	watchCh := s.etcdCli.Watch(ctx, serviceName+"/", clientv3.WithPrefix())
	go func() {
		for resp := range watchCh {
			if resp.Canceled {
				return
			}
			servers, err := s.GetServers(serviceName)
			if err != nil {
				s.log.Error("refresh servers: %v", err)
				continue
			}
			callback(servers)
		}
	}()
}

func (s *Seeker) Close() error {
	return s.etcdCli.Close()
}
