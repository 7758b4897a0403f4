package config

import (
	"strconv"
	"time"

	agollo "github.com/apolloconfig/agollo/v4"
	"github.com/apolloconfig/agollo/v4/agcache"
	apconf "github.com/apolloconfig/agollo/v4/env/config"
	"github.com/apolloconfig/agollo/v4/storage"
)

// overrideFromApollo starts the Apollo client, applies the values it already has
// and keeps the Store updated on changes. Returns a closer for the client.
func overrideFromApollo(cfg *Config, store *Store) (func(), error) {
	if cfg.Apollo.Addrs == "" || cfg.Apollo.AppID == "" {
		configLogger.Warn("apollo: missing APOLLO_ADDRS or APOLLO_APP_ID; skip")
		return nil, nil
	}

	ns := cfg.Apollo.Namespace
	if ns == "" {
		ns = "application"
	}

	appCfg := &apconf.AppConfig{
		AppID:         cfg.Apollo.AppID,
		Cluster:       cfg.Apollo.Cluster,
		NamespaceName: ns,
		IP:            cfg.Apollo.Addrs,
		Secret:        cfg.Apollo.AccessKey,
	}

	client, err := agollo.StartWithConfig(func() (*apconf.AppConfig, error) { return appCfg, nil })
	if err != nil {
		return nil, err
	}

	next := cloneConfig(cfg)
	applyApolloOverrides(cacheValues(client.GetConfigCache(ns)), next)
	if !store.UpdateValidated(next, map[string]bool{"apollo.init": true}) {
		configLogger.Warn("apollo: initial values rejected by validators; keeping env config")
	}

	client.AddChangeListener(&changeListener{store: store})

	return client.Close, nil
}

// lookup reads one Apollo key.
type lookup func(key string) (any, bool)

func cacheValues(cache agcache.CacheInterface) lookup {
	return func(key string) (any, bool) {
		if cache == nil {
			return nil, false
		}
		v, err := cache.Get(key)
		return v, err == nil
	}
}

// changeValues exposes the new values of a change set. Deleted keys are
// absent, so the current value stays in force.
func changeValues(changes map[string]*storage.ConfigChange) lookup {
	return func(key string) (any, bool) {
		ch, ok := changes[key]
		if !ok || ch == nil || ch.ChangeType == storage.DELETED {
			return nil, false
		}
		return ch.NewValue, true
	}
}

// applyApolloOverrides copies every known key get resolves onto cfg.
func applyApolloOverrides(get lookup, cfg *Config) {
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			if s, _ := v.(string); s != "" {
				*dst = s
			}
		}
	}
	num := func(key string, dst *int) {
		var s string
		str(key, &s)
		if n, err := strconv.Atoi(s); err == nil {
			*dst = n
		}
	}
	millis := func(key string, dst *time.Duration) {
		n := -1
		num(key, &n)
		if n >= 0 {
			*dst = time.Duration(n) * time.Millisecond
		}
	}

	str("app.env", &cfg.AppEnv)
	str("server.addr", &cfg.Server.Addr)
	str("server.frontend_url", &cfg.Server.FrontendURL)
	str("log.level", &cfg.Log.Level)
	str("log.format", &cfg.Log.Format)

	str("db.url", &cfg.DB.URL)
	num("db.max_open", &cfg.DB.MaxOpenConns)
	num("db.max_idle", &cfg.DB.MaxIdleConns)
	str("mongo.uri", &cfg.Mongo.URI)
	str("mongo.database", &cfg.Mongo.Database)

	millis("ratelimit.window_ms", &cfg.RateLimit.Window)
	num("ratelimit.max", &cfg.RateLimit.Max)
	millis("ratelimit.contact_window_ms", &cfg.RateLimit.ContactWindow)
	num("ratelimit.contact_max", &cfg.RateLimit.ContactMax)

	str("redis.addr", &cfg.Redis.Addr)
	str("redis.password", &cfg.Redis.Password)
	num("redis.db", &cfg.Redis.DB)

	str("mail.host", &cfg.Mail.Host)
	num("mail.port", &cfg.Mail.Port)
	str("mail.from", &cfg.Mail.From)
	str("mail.to", &cfg.Mail.To)

	str("mq.url", &cfg.MQ.URL)
	str("es.addrs", &cfg.ES.Addrs)
	str("es.username", &cfg.ES.Username)
	str("es.password", &cfg.ES.Password)
	str("es.index", &cfg.ES.Index)
}

type changeListener struct {
	store *Store
}

var _ storage.ChangeListener = (*changeListener)(nil)

func (c *changeListener) OnChange(e *storage.ChangeEvent) {
	configLogger.Sugar().Infof("apollo change: namespace=%s, changes=%d", e.Namespace, len(e.Changes))
	next := cloneConfig(c.store.Get())
	applyApolloOverrides(changeValues(e.Changes), next)
	changed := map[string]bool{}
	for k := range e.Changes {
		changed[k] = true
	}
	if !c.store.UpdateValidated(next, changed) {
		configLogger.Sugar().Warnf("apollo change rejected: namespace=%s", e.Namespace)
	}
}

// OnNewestChange receives the full namespace after each change; OnChange
// already applied the delta.
func (c *changeListener) OnNewestChange(*storage.FullChangeEvent) {}
