// Package ctx provides configurations loading and exporting.
package ctx

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidCluster = errors.New("invalid cluster")

	conf *config
)

type config struct {
	hostname string // not config, but runtime

	logLevel        string
	restartTimeout  time.Duration
	coolDown        time.Duration
	probeInterval   time.Duration
	metadataTimeout time.Duration
	clusters        map[string]*Cluster
}

func (c *config) sortedClusters() []string {
	sorted := make([]string, 0, len(c.clusters))
	for name := range c.clusters {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	return sorted
}

func ensureLogLoaded() {
	if conf == nil {
		panic("call LoadConfig before this")
	}
}
