package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"mahjongcore/internal/config"
	"mahjongcore/internal/logging"
)

// Register advertises this process under conf.Register, renewing its
// lease until Close, matching the teacher's Register/Registry pair
// (merged into one type here since this module has no separate
// march-style load-reporting path the teacher's Registry.UpdateLoad
// served).
type Register struct {
	etcdCli     *clientv3.Client
	leaseID     clientv3.LeaseID
	dialTimeout time.Duration
	keepAliveCh <-chan *clientv3.LeaseKeepAliveResponse
	info        Server
	closeCh     chan struct{}
	log         *logging.Logger
}

func NewRegister() *Register {
	return &Register{dialTimeout: 3 * time.Second, log: logging.New("discovery")}
}

// Register connects to etcd and publishes conf.Register's address under
// a renewable lease.
func (r *Register) Register(conf config.EtcdConf) error {
	if conf.Register.Addr == "" {
		return fmt.Errorf("discovery: register: empty advertise address")
	}
	r.info = serverFromConf(conf.Register)
	r.dialTimeout = time.Duration(conf.DialTimeout) * time.Second

	var err error
	r.etcdCli, err = clientv3.New(clientv3.Config{
		Endpoints:   conf.Addrs,
		DialTimeout: r.dialTimeout,
	})
	if err != nil {
		return fmt.Errorf("discovery: dial etcd: %w", err)
	}

	if err := r.register(); err != nil {
		return err
	}

	r.closeCh = make(chan struct{})
	go r.watch()
	return nil
}

func (r *Register) register() error {
	ctx, cancel := context.WithTimeout(context.Background(), r.dialTimeout)
	defer cancel()

	lease, err := r.etcdCli.Grant(ctx, int64(r.info.Ttl))
	if err != nil {
		return fmt.Errorf("discovery: grant lease: %w", err)
	}
	r.leaseID = lease.ID

	r.keepAliveCh, err = r.etcdCli.KeepAlive(context.Background(), r.leaseID)
	if err != nil {
		return fmt.Errorf("discovery: keepalive: %w", err)
	}

	data, err := json.Marshal(r.info)
	if err != nil {
		return fmt.Errorf("discovery: marshal server info: %w", err)
	}
	if _, err := r.etcdCli.Put(ctx, r.info.buildKey(), string(data), clientv3.WithLease(r.leaseID)); err != nil {
		return fmt.Errorf("discovery: put: %w", err)
	}
	r.log.Info("registered %s", r.info.buildKey())
	return nil
}

func (r *Register) watch() {
	ticker := time.NewTicker(time.Duration(r.info.Ttl) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case res, ok := <-r.keepAliveCh:
			if !ok || res == nil {
				r.log.Warn("lease keepalive dropped, re-registering")
				if err := r.register(); err != nil {
					r.log.Error("re-register failed: %v", err)
				}
			}
		case <-ticker.C:
			if r.keepAliveCh == nil {
				if err := r.register(); err != nil {
					r.log.Error("re-register failed: %v", err)
				}
			}
		case <-r.closeCh:
			r.unregister()
			if _, err := r.etcdCli.Revoke(context.Background(), r.leaseID); err != nil {
				r.log.Error("revoke lease failed: %v", err)
			}
			return
		}
	}
}

func (r *Register) unregister() {
	ctx, cancel := context.WithTimeout(context.Background(), r.dialTimeout)
	defer cancel()
	if _, err := r.etcdCli.Delete(ctx, r.info.buildKey()); err != nil {
		r.log.Error("unregister failed: %v", err)
	}
}

func (r *Register) Close() {
	if r.closeCh != nil {
		close(r.closeCh)
	}
	if r.etcdCli != nil {
		r.etcdCli.Close()
	}
}
