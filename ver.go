// Package kroll is a leadership-aware rolling restart coordinator for
// Confluent Kafka broker clusters.
package kroll

var (
	// Version is the unified version of the whole kroll project.
	Version = "unknown"

	// BuildId is the SCM commit id.
	BuildId = "?"

	// BuiltAt is the time when build.sh was run.
	BuiltAt = "1970"
)
