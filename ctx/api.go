package ctx

import (
	"time"
)

func Hostname() string {
	ensureLogLoaded()
	return conf.hostname
}

func LogLevel() string {
	ensureLogLoaded()
	return conf.logLevel
}

func RestartTimeout() time.Duration {
	ensureLogLoaded()
	return conf.restartTimeout
}

func CoolDown() time.Duration {
	ensureLogLoaded()
	return conf.coolDown
}

func ProbeInterval() time.Duration {
	ensureLogLoaded()
	return conf.probeInterval
}

func MetadataTimeout() time.Duration {
	ensureLogLoaded()
	return conf.metadataTimeout
}

func Clusters() map[string]*Cluster {
	ensureLogLoaded()
	return conf.clusters
}

func SortedClusters() []string {
	ensureLogLoaded()
	return conf.sortedClusters()
}

// ClusterNamed panics when the name is not configured: commands
// validate the -c flag before anything else.
func ClusterNamed(name string) *Cluster {
	ensureLogLoaded()
	c, present := conf.clusters[name]
	if !present {
		panic(ErrInvalidCluster)
	}
	return c
}

func LookupCluster(name string) (*Cluster, bool) {
	ensureLogLoaded()
	c, present := conf.clusters[name]
	return c, present
}
