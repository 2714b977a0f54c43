package dlfindex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string

	relationalPath string
	keyPrefix      string

	fileGroups   []string
	mediaGroups  []string
	cacheSize    int
	fetchTimeout time.Duration
	maxBytes     int64
	concurrency  int

	defaultRows int
	maxRows     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the search engine address.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster configures several seed addresses and ACL credentials.
func WithRedisCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.username = username
		c.password = password
	})
}

// WithRelational sets the path of the SQLite database holding document rows.
func WithRelational(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.relationalPath = path
	})
}

// WithKeyPrefix sets the prefix of every search engine key. It must end with ":".
// The prefix is process-wide: every client in the process shares it.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithFileGroups sets the file groups whose files are indexed per page.
func WithFileGroups(groups ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fileGroups = groups
	})
}

// WithMediaGroups sets the default file group preference of Media.
func WithMediaGroups(groups ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.mediaGroups = groups
	})
}

// WithDocumentCache sets how many parsed descriptors Media keeps in memory. Default: 256.
func WithDocumentCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = size
	})
}

// WithFetch limits remote descriptor downloads by time and size.
func WithFetch(timeout time.Duration, maxBytes int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = timeout
		c.maxBytes = maxBytes
	})
}

// WithConcurrency sets how many documents IndexMany processes at once. Default: 4.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithPagination sets the default and maximum number of rows per search page.
func WithPagination(defaultRows, maxRows int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultRows = defaultRows
		c.maxRows = maxRows
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
