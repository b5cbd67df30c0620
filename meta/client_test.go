package meta

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/funkygao/assert"
)

func testClient(t *testing.T, server *httptest.Server) (*Client, Broker) {
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(u.Port())
	c, err := NewClient("http", port, time.Second, "")
	if err != nil {
		t.Fatal(err)
	}
	return c, Broker{ID: 1, Host: u.Hostname()}
}

func TestDiscoverClusterID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clusters", r.URL.Path)
		fmt.Fprint(w, `[{"cluster_id": "4L6g3nShT-eMCtK--X86sw"}]`)
	}))
	defer server.Close()

	c, b := testClient(t, server)
	assert.Equal(t, "4L6g3nShT-eMCtK--X86sw", c.DiscoverClusterID(b))
}

func TestDiscoverClusterIDDegradesToUnknown(t *testing.T) {
	type fixture struct {
		status int
		body   string
	}
	fixtures := []fixture{
		{http.StatusInternalServerError, `boom`},
		{http.StatusNotFound, ``},
		{http.StatusOK, `{not json`},
		{http.StatusOK, `[]`},
	}
	for _, f := range fixtures {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(f.status)
			fmt.Fprint(w, f.body)
		}))

		c, b := testClient(t, server)
		assert.Equal(t, "", c.DiscoverClusterID(b))
		server.Close()
	}
}

func TestCountLeaderPartitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clusters/ck/brokers/1/partition-replicas", r.URL.Path)
		fmt.Fprint(w, `[
			{"topic": "t1", "partition": 0, "is_leader": true},
			{"topic": "t1", "partition": 1, "is_leader": false},
			{"topic": "t2", "partition": 0, "is_leader": true}
		]`)
	}))
	defer server.Close()

	c, b := testClient(t, server)
	assert.Equal(t, 2, c.CountLeaderPartitions(b, "ck"))
}

func TestCountLeaderPartitionsNeverFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c, b := testClient(t, server)
	assert.Equal(t, 0, c.CountLeaderPartitions(b, "ck"))

	// unknown cluster id short-circuits to 0
	assert.Equal(t, 0, c.CountLeaderPartitions(b, ""))
}

func TestSnapshot(t *testing.T) {
	leaders := map[string]string{
		"1": `[{"is_leader": true}, {"is_leader": true}]`,
		"2": `[]`,
		"3": `[{"is_leader": true}, {"is_leader": false}, {"is_leader": true}]`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/clusters" {
			fmt.Fprint(w, `[{"cluster_id": "ck"}]`)
			return
		}
		brokerID := strings.Split(r.URL.Path, "/")[4]
		fmt.Fprint(w, leaders[brokerID])
	}))
	defer server.Close()

	c, b := testClient(t, server)
	brokers := []Broker{
		{ID: 1, Host: b.Host},
		{ID: 2, Host: b.Host},
		{ID: 3, Host: b.Host},
	}
	snapshot := c.Snapshot(brokers)
	assert.Equal(t, "ck", snapshot.ClusterID)
	assert.Equal(t, 2, snapshot.LeadershipOf(brokers[0]))
	assert.Equal(t, 0, snapshot.LeadershipOf(brokers[1]))
	assert.Equal(t, 2, snapshot.LeadershipOf(brokers[2]))
}
