package meta

import (
	"fmt"
	"net"
	"strconv"
)

// Broker is one member of a kafka cluster's static inventory.
// It is immutable for the duration of a restart run.
type Broker struct {
	ID   int
	Host string
	Rack string
}

func (b Broker) String() string {
	return fmt.Sprintf("%d@%s", b.ID, b.Host)
}

func (b Broker) Addr(port int) string {
	return net.JoinHostPort(b.Host, strconv.Itoa(port))
}
