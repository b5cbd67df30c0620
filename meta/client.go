// Package meta queries a kafka cluster's metadata service for cluster
// identity and per-broker partition leadership.
package meta

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/funkygao/gorequest"
	log "github.com/funkygao/log4go"
)

// Client talks to the metadata REST endpoint each broker exposes.
//
// Every query failure is swallowed and logged: the planner must keep
// working with degraded leadership info, so DiscoverClusterID returns ""
// and CountLeaderPartitions returns 0 instead of an error.
type Client struct {
	scheme  string
	port    int
	timeout time.Duration
	tlsConf *tls.Config
}

func NewClient(scheme string, port int, timeout time.Duration, caCert string) (*Client, error) {
	c := &Client{
		scheme:  scheme,
		port:    port,
		timeout: timeout,
	}
	if caCert != "" {
		pem, err := ioutil.ReadFile(caCert)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("meta: no certificate found in %s", caCert)
		}
		c.tlsConf = &tls.Config{RootCAs: pool}
	}
	return c, nil
}

func (this *Client) url(b Broker, path string) string {
	return fmt.Sprintf("%s://%s%s", this.scheme, b.Addr(this.port), path)
}

func (this *Client) get(b Broker, path string, v interface{}) error {
	req := gorequest.New().Get(this.url(b, path)).Timeout(this.timeout)
	if this.tlsConf != nil {
		req = req.TLSClientConfig(this.tlsConf)
	}
	resp, body, errs := req.End()
	if len(errs) > 0 {
		return errs[0]
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("meta: %s %s", this.url(b, path), resp.Status)
	}
	return json.Unmarshal([]byte(body), v)
}

// DiscoverClusterID asks a broker which cluster it belongs to.
// Returns "" when the answer is unknown for whatever reason.
func (this *Client) DiscoverClusterID(b Broker) string {
	var clusters []struct {
		ClusterID string `json:"cluster_id"`
	}
	if err := this.get(b, "/clusters", &clusters); err != nil {
		log.Warn("cluster id via %s: %v", b, err)
		return ""
	}
	if len(clusters) == 0 {
		return ""
	}
	return clusters[0].ClusterID
}

// CountLeaderPartitions returns how many partitions the broker currently
// leads. 0 on any failure or when the cluster id is unknown.
func (this *Client) CountLeaderPartitions(b Broker, clusterID string) int {
	if clusterID == "" {
		return 0
	}

	var replicas []struct {
		IsLeader bool `json:"is_leader"`
	}
	path := fmt.Sprintf("/clusters/%s/brokers/%d/partition-replicas", clusterID, b.ID)
	if err := this.get(b, path, &replicas); err != nil {
		log.Warn("leader count of %s: %v", b, err)
		return 0
	}

	n := 0
	for _, r := range replicas {
		if r.IsLeader {
			n++
		}
	}
	return n
}
