package restart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/funkygao/assert"
	"github.com/mea-boop/kroll/meta"
	"github.com/mea-boop/kroll/probe"
	"github.com/mea-boop/kroll/service"
)

type fakeController struct {
	calls     []string
	statusOf  map[string]service.Status
	stopErr   map[string]error
	startErr  map[string]error
	statusErr map[string]error
}

func newFakeController() *fakeController {
	return &fakeController{
		statusOf:  make(map[string]service.Status),
		stopErr:   make(map[string]error),
		startErr:  make(map[string]error),
		statusErr: make(map[string]error),
	}
}

func (this *fakeController) Start(host string) error {
	this.calls = append(this.calls, "start "+host)
	return this.startErr[host]
}

func (this *fakeController) Stop(host string) error {
	this.calls = append(this.calls, "stop "+host)
	return this.stopErr[host]
}

func (this *fakeController) Status(host string) (service.Status, error) {
	if err := this.statusErr[host]; err != nil {
		return service.Status{}, err
	}
	if st, present := this.statusOf[host]; present {
		return st, nil
	}
	return service.Status{ActiveState: "active", SubState: "running"}, nil
}

// fakePorts simulates instant port transitions, with per-host overrides
// that time out instead.
type fakePorts struct {
	neverCloses map[string]bool
	neverOpens  map[string]bool
}

func (this *fakePorts) wait(ctx context.Context, host string, port int, want probe.Want, timeout, interval time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timedOut := (want == probe.Closed && this.neverCloses[host]) ||
		(want == probe.Open && this.neverOpens[host])
	if timedOut {
		return &probe.ErrTimeout{Addr: host, Want: want, Timeout: timeout}
	}
	return nil
}

func testExecutor(svc service.Controller, ports *fakePorts) *Executor {
	e := NewExecutor(Config{
		BrokerPort:     9092,
		TokenPort:      9093,
		MetadataPort:   8090,
		MetricsPort:    7771,
		MetricsEnabled: true,
		RestartTimeout: time.Second,
		CoolDown:       time.Millisecond,
		ProbeInterval:  time.Millisecond,
	}, svc)
	e.wait = ports.wait
	e.isOpen = func(host string, port int, timeout time.Duration) bool { return true }
	return e
}

func hosts(names ...string) []meta.Broker {
	brokers := make([]meta.Broker, 0, len(names))
	for i, name := range names {
		brokers = append(brokers, meta.Broker{ID: i + 1, Host: name})
	}
	return brokers
}

func TestRunAllSucceed(t *testing.T) {
	svc := newFakeController()
	e := testExecutor(svc, &fakePorts{})

	report := e.Run(context.Background(), hosts("a", "b", "c"))
	assert.Equal(t, true, report.AllSucceeded())
	assert.Equal(t, false, report.Aborted)
	assert.Equal(t, 3, len(report.Results))
	for _, res := range report.Results {
		assert.Equal(t, Succeeded, res.Outcome)
	}

	// strictly serial: each broker fully restarted before the next begins
	assert.Equal(t, []string{
		"stop a", "start a",
		"stop b", "start b",
		"stop c", "start c",
	}, svc.calls)

	assert.Equal(t, 3, len(report.Verification))
	for _, v := range report.Verification {
		assert.Equal(t, true, v.Healthy())
		assert.Equal(t, 4, len(v.Ports)) // 9092, 9093, 8090, 7771
	}
}

func TestRunFailFastOnPortCloseTimeout(t *testing.T) {
	svc := newFakeController()
	e := testExecutor(svc, &fakePorts{neverCloses: map[string]bool{"b": true}})

	report := e.Run(context.Background(), hosts("a", "b", "c"))
	assert.Equal(t, true, report.Aborted)
	assert.Equal(t, false, report.AllSucceeded())

	assert.Equal(t, Succeeded, report.Results[0].Outcome)
	assert.Equal(t, Failed, report.Results[1].Outcome)
	assert.Equal(t, PortCloseTimeout, report.Results[1].Failure)
	assert.Equal(t, Skipped, report.Results[2].Outcome)

	// broker c never attempted
	for _, call := range svc.calls {
		if call == "stop c" || call == "start c" {
			t.Fatalf("broker after the failed one was attempted: %s", call)
		}
	}
	// aborted runs skip the verification pass
	assert.Equal(t, 0, len(report.Verification))
	assert.Equal(t, "broker 2@b: port close timeout", report.AbortReason)
}

func TestRunFailFastOnPortOpenTimeout(t *testing.T) {
	svc := newFakeController()
	e := testExecutor(svc, &fakePorts{neverOpens: map[string]bool{"a": true}})

	report := e.Run(context.Background(), hosts("a", "b"))
	assert.Equal(t, Failed, report.Results[0].Outcome)
	assert.Equal(t, PortOpenTimeout, report.Results[0].Failure)
	assert.Equal(t, Skipped, report.Results[1].Outcome)
}

func TestRunHealthCheckNeedsBothStates(t *testing.T) {
	svc := newFakeController()
	svc.statusOf["a"] = service.Status{ActiveState: "active", SubState: "failed"}
	e := testExecutor(svc, &fakePorts{})

	report := e.Run(context.Background(), hosts("a", "b"))
	assert.Equal(t, Failed, report.Results[0].Outcome)
	assert.Equal(t, HealthCheckFailed, report.Results[0].Failure)
	assert.Equal(t, Skipped, report.Results[1].Outcome)
}

func TestRunHealthCheckStatusError(t *testing.T) {
	svc := newFakeController()
	svc.statusErr["a"] = fmt.Errorf("ssh: connection refused")
	e := testExecutor(svc, &fakePorts{})

	report := e.Run(context.Background(), hosts("a"))
	assert.Equal(t, Failed, report.Results[0].Outcome)
	assert.Equal(t, HealthCheckFailed, report.Results[0].Failure)
}

func TestRunStopErrorTranslated(t *testing.T) {
	svc := newFakeController()
	svc.stopErr["a"] = fmt.Errorf("unit not loaded")
	e := testExecutor(svc, &fakePorts{})

	report := e.Run(context.Background(), hosts("a"))
	assert.Equal(t, Failed, report.Results[0].Outcome)
	assert.Equal(t, PortCloseTimeout, report.Results[0].Failure)
}

func TestRunCancelled(t *testing.T) {
	svc := newFakeController()
	e := testExecutor(svc, &fakePorts{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := e.Run(ctx, hosts("a", "b"))
	assert.Equal(t, Failed, report.Results[0].Outcome)
	assert.Equal(t, Cancelled, report.Results[0].Failure)
	assert.Equal(t, Skipped, report.Results[1].Outcome)
	assert.Equal(t, true, report.Aborted)
}

func TestRunReplansTail(t *testing.T) {
	svc := newFakeController()
	e := testExecutor(svc, &fakePorts{})
	e.ReplanAt = 1
	e.Replan = func(remaining []meta.Broker) []meta.Broker {
		// fresh leadership says c should now go before b
		return []meta.Broker{remaining[1], remaining[0]}
	}

	report := e.Run(context.Background(), hosts("a", "b", "c"))
	assert.Equal(t, true, report.AllSucceeded())
	assert.Equal(t, "a", report.Results[0].Broker.Host)
	assert.Equal(t, "c", report.Results[1].Broker.Host)
	assert.Equal(t, "b", report.Results[2].Broker.Host)
}
