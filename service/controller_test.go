package service

import (
	"testing"

	"github.com/funkygao/assert"
)

func TestParseStatus(t *testing.T) {
	type fixture struct {
		out      string
		expected Status
	}
	fixtures := []fixture{
		{"ActiveState=active\nSubState=running", Status{"active", "running"}},
		{"ActiveState=active\nSubState=running\n", Status{"active", "running"}},
		{"SubState=dead\nActiveState=inactive", Status{"inactive", "dead"}},
		{"garbage", Status{}},
		{"", Status{}},
	}
	for _, f := range fixtures {
		assert.Equal(t, f.expected, ParseStatus(f.out))
	}
}

func TestStatusHealthy(t *testing.T) {
	type fixture struct {
		status  Status
		healthy bool
	}
	fixtures := []fixture{
		{Status{"active", "running"}, true},
		{Status{"active", "failed"}, false},
		{Status{"active", "exited"}, false},
		{Status{"inactive", "running"}, false},
		{Status{"failed", "failed"}, false},
		{Status{}, false},
	}
	for _, f := range fixtures {
		assert.Equal(t, f.healthy, f.status.Healthy())
	}
}

func TestLocalHost(t *testing.T) {
	assert.Equal(t, true, localHost("localhost"))
	assert.Equal(t, true, localHost("127.0.0.1"))
	assert.Equal(t, false, localHost("kafka1.example.com"))
}
