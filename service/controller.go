// Package service controls the broker's systemd unit on each host.
package service

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/funkygao/golib/pipestream"
)

// Status is the systemd view of a unit.
type Status struct {
	ActiveState string
	SubState    string
}

// Healthy is the post-restart gate: systemd must consider the unit
// active AND its main process running.
func (s Status) Healthy() bool {
	return s.ActiveState == "active" && s.SubState == "running"
}

func (s Status) String() string {
	return fmt.Sprintf("%s/%s", s.ActiveState, s.SubState)
}

// Controller abstracts start/stop/status of the broker process on a
// single host.
type Controller interface {
	Start(host string) error
	Stop(host string) error
	Status(host string) (Status, error)
}

// SystemdController drives systemctl, locally or over ssh when the
// target host is remote.
type SystemdController struct {
	Unit    string // e.g. confluent-server
	SSHUser string // remote login, empty for current user
}

func NewSystemdController(unit, sshUser string) *SystemdController {
	return &SystemdController{Unit: unit, SSHUser: sshUser}
}

func (this *SystemdController) Start(host string) error {
	_, err := this.systemctl(host, "start", this.Unit)
	return err
}

func (this *SystemdController) Stop(host string) error {
	_, err := this.systemctl(host, "stop", this.Unit)
	return err
}

func (this *SystemdController) Status(host string) (Status, error) {
	out, err := this.systemctl(host, "show", this.Unit, "-p", "ActiveState,SubState")
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(out), nil
}

func (this *SystemdController) systemctl(host string, args ...string) (string, error) {
	argv := append([]string{"systemctl"}, args...)
	if !localHost(host) {
		target := host
		if this.SSHUser != "" {
			target = this.SSHUser + "@" + host
		}
		argv = append([]string{"ssh", "-o", "BatchMode=yes", target}, argv...)
	}

	cmd := pipestream.New(argv[0], argv[1:]...)
	if err := cmd.Open(); err != nil {
		return "", err
	}
	defer cmd.Close()

	var lines []string
	scanner := bufio.NewScanner(cmd.Reader())
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return strings.Join(lines, "\n"), scanner.Err()
}

// ParseStatus extracts ActiveState/SubState from `systemctl show`
// key=value output.
func ParseStatus(out string) Status {
	var st Status
	for _, line := range strings.Split(out, "\n") {
		kv := strings.SplitN(strings.TrimSpace(line), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ActiveState":
			st.ActiveState = kv[1]
		case "SubState":
			st.SubState = kv[1]
		}
	}
	return st
}

func localHost(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	hostname, _ := os.Hostname()
	return host == hostname
}
