// Package config loads this module's runtime configuration: the rule
// variant an engine.Rule is built from, plus the ambient stack's
// connection settings (storage, cache, discovery, messaging, transport).
// Grounded on the teacher's common/config/fixed_config.go -- a single
// viper-backed Config struct with WatchConfig/fsnotify hot reload --
// generalized from the teacher's per-node-type configuration split
// (ConnectorConfiguration/GameConfiguration/...) into one shape, since
// this repo is a single embeddable engine rather than a server mesh.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the root configuration shape, unmarshaled from a YAML/TOML/JSON
// file (viper auto-detects by extension) with environment overrides.
type Config struct {
	Rule     RuleConf     `mapstructure:"rule"`
	Log      LogConf      `mapstructure:"log"`
	Mongo    MongoConf    `mapstructure:"mongo"`
	Redis    RedisConf    `mapstructure:"redis"`
	Etcd     EtcdConf     `mapstructure:"etcd"`
	Nats     NatsConf     `mapstructure:"nats"`
	Jwt      JwtConf      `mapstructure:"jwt"`
	Grpc     GrpcConf     `mapstructure:"grpc"`
	Http     HttpConf     `mapstructure:"http"`
	WS       WSConf       `mapstructure:"ws"`
	Metrics  MetricsConf  `mapstructure:"metrics"`
	Mjai     MjaiConf     `mapstructure:"mjai"`
}

// RuleConf mirrors internal/engine.Rule's fields so it can be loaded
// straight out of a config file rather than hard-coded, per SPEC_FULL.md's
// ambient-stack requirement that rule variants are configuration, not code.
type RuleConf struct {
	RedFivesPerSuit  int  `mapstructure:"redFivesPerSuit"`
	ThreePlayer      bool `mapstructure:"threePlayer"`
	BustingEnabled   bool `mapstructure:"bustingEnabled"`
	AgentTimeoutMS   int  `mapstructure:"agentTimeoutMs"`
	SuufuurendaOn    bool `mapstructure:"suufuurenda"`
	SuukansanraOn    bool `mapstructure:"suukansanra"`
	SuuchariichiOn   bool `mapstructure:"suuchariichi"`
	TripleRonAbortOn bool `mapstructure:"tripleRonAbort"`
	RequiredRounds   int  `mapstructure:"requiredRounds"`
	SettlementScore  int  `mapstructure:"settlementScore"`
	MaxExtendedRound int  `mapstructure:"maxExtendedRound"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type MongoConf struct {
	URL         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
}

type EtcdConf struct {
	Addrs       []string       `mapstructure:"addrs"`
	DialTimeout int            `mapstructure:"dialTimeout"`
	RWTimeout   int            `mapstructure:"rwTimeout"`
	Register    EtcdRegisterConf `mapstructure:"register"`
}

// EtcdRegisterConf is this node's own service-discovery entry: the
// address it advertises and the lease TTL it keeps alive.
type EtcdRegisterConf struct {
	Name    string `mapstructure:"name"`
	Addr    string `mapstructure:"addr"`
	Weight  int    `mapstructure:"weight"`
	Version string `mapstructure:"version"`
	Ttl     int    `mapstructure:"ttl"`
}

type NatsConf struct {
	URL         string `mapstructure:"url"`
	EventSubject string `mapstructure:"eventSubject"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"`
}

type GrpcConf struct {
	Addr string `mapstructure:"addr"`
}

type HttpConf struct {
	Addr string `mapstructure:"addr"`
}

type WSConf struct {
	Addr string `mapstructure:"addr"`
}

type MetricsConf struct {
	Port int `mapstructure:"port"`
}

type MjaiConf struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load reads configFile via viper, applies environment overrides (dots
// replaced with underscores, matching the teacher's convention), and
// unmarshals into a Config.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", configFile, err)
	}
	return &cfg, nil
}

// Watch reloads configFile on change and invokes onChange with the newly
// parsed Config, per the teacher's InitFixedConfig (v.WatchConfig +
// v.OnConfigChange), generalized to actually re-unmarshal and hand back a
// typed Config instead of an empty callback.
func Watch(configFile string, onChange func(*Config)) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", configFile, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return // keep the last good config rather than propagate a partial one
		}
		onChange(&cfg)
	})
	v.WatchConfig()
	return nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("rule.redFivesPerSuit", 1)
	v.SetDefault("rule.bustingEnabled", true)
	v.SetDefault("rule.agentTimeoutMs", 5000)
	v.SetDefault("rule.suufuurenda", true)
	v.SetDefault("rule.suukansanra", true)
	v.SetDefault("rule.suuchariichi", true)
	v.SetDefault("rule.tripleRonAbort", true)
	v.SetDefault("rule.requiredRounds", 8)
	v.SetDefault("rule.settlementScore", 30000)
	v.SetDefault("rule.maxExtendedRound", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("etcd.dialTimeout", 3)
	v.SetDefault("etcd.rwTimeout", 3)
	v.SetDefault("etcd.register.weight", 1)
	v.SetDefault("etcd.register.ttl", 10)
}
