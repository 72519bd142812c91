package discovery

import (
	"context"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc/attributes"
	"google.golang.org/grpc/resolver"

	"mahjongcore/internal/config"
	"mahjongcore/internal/logging"
)

// Resolver implements resolver.Builder/resolver.Resolver so
// grpc.NewClient("etcd:///<name>", ...) resolves against this module's
// etcd registry, matching the teacher's common/discovery/resolver.go.
type Resolver struct {
	conf    config.EtcdConf
	etcdCli *clientv3.Client
	closeCh chan struct{}
	key     string
	cc      resolver.ClientConn
	addrs   []resolver.Address
	log     *logging.Logger
}

func NewResolver(conf config.EtcdConf) *Resolver {
	return &Resolver{conf: conf, log: logging.New("discovery")}
}

func (r *Resolver) Build(target resolver.Target, cc resolver.ClientConn, _ resolver.BuildOptions) (resolver.Resolver, error) {
	r.cc = cc

	var err error
	r.etcdCli, err = clientv3.New(clientv3.Config{
		Endpoints:   r.conf.Addrs,
		DialTimeout: time.Duration(r.conf.DialTimeout) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	r.closeCh = make(chan struct{})
	r.key = strings.TrimPrefix(target.URL.Path, "/")

	if err := r.sync(); err != nil {
		return nil, err
	}
	go r.watch()
	return r, nil
}

func (r *Resolver) Scheme() string { return "etcd" }

// ResolveNow is a no-op; this resolver refreshes on etcd watch events and
// a periodic fallback sync instead of on grpc's ResolveNow hint.
func (r *Resolver) ResolveNow(resolver.ResolveNowOptions) {}

func (r *Resolver) Close() {
	if r.closeCh != nil {
		close(r.closeCh)
	}
}

func (r *Resolver) watch() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	watchCh := r.etcdCli.Watch(context.Background(), r.key, clientv3.WithPrefix())

	for {
		select {
		case <-r.closeCh:
			r.etcdCli.Close()
			return
		case wr, ok := <-watchCh:
			if ok {
				r.apply(wr.Events)
			}
		case <-ticker.C:
			if err := r.sync(); err != nil {
				r.log.Error("periodic sync failed: %v", err)
			}
		}
	}
}

func (r *Resolver) sync() error {
	timeout := time.Duration(r.conf.RWTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := r.etcdCli.Get(ctx, r.key, clientv3.WithPrefix())
	if err != nil {
		return err
	}

	addrs := make([]resolver.Address, 0, len(res.Kvs))
	for _, kv := range res.Kvs {
		if !r.ownsKey(string(kv.Key)) {
			continue
		}
		server, err := ParseValue(kv.Value)
		if err != nil {
			r.log.Error("parse etcd value: %v", err)
			continue
		}
		addrs = append(addrs, resolver.Address{Addr: server.Addr, Attributes: attributes.New("weight", server.Weight)})
	}
	if len(addrs) == 0 {
		r.log.Warn("no instances found for %s", r.key)
		return nil
	}
	r.addrs = addrs
	return r.cc.UpdateState(resolver.State{Addresses: addrs})
}

func (r *Resolver) apply(events []*clientv3.Event) {
	for _, ev := range events {
		keyStr := string(ev.Kv.Key)
		if !r.ownsKey(keyStr) {
			continue
		}

		switch ev.Type {
		case clientv3.EventTypePut:
			server, err := ParseValue(ev.Kv.Value)
			if err != nil {
				r.log.Error("parse put event: %v", err)
				continue
			}
			addr := resolver.Address{Addr: server.Addr, Attributes: attributes.New("weight", server.Weight)}
			r.upsert(addr)
		case clientv3.EventTypeDelete:
			server, err := ParseKey(keyStr)
			if err != nil {
				r.log.Error("parse delete event key: %v", err)
				continue
			}
			r.remove(server.Addr)
		}
		if err := r.cc.UpdateState(resolver.State{Addresses: r.addrs}); err != nil {
			r.log.Error("update resolver state: %v", err)
		}
	}
}

func (r *Resolver) ownsKey(key string) bool {
	return key == r.key || strings.HasPrefix(key, r.key+"/")
}

func (r *Resolver) upsert(addr resolver.Address) {
	for i := range r.addrs {
		if r.addrs[i].Addr == addr.Addr {
			r.addrs[i] = addr
			return
		}
	}
	r.addrs = append(r.addrs, addr)
}

func (r *Resolver) remove(addr string) {
	for i, a := range r.addrs {
		if a.Addr == addr {
			r.addrs = append(r.addrs[:i], r.addrs[i+1:]...)
			return
		}
	}
}
