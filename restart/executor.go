package restart

import (
	"context"
	"fmt"
	"time"

	log "github.com/funkygao/log4go"
	"github.com/mea-boop/kroll/meta"
	"github.com/mea-boop/kroll/probe"
	"github.com/mea-boop/kroll/service"
)

// Config is the run's external input surface. All waits it parameterizes
// are bounded: no executor state can block forever.
type Config struct {
	BrokerPort     int // primary listener
	TokenPort      int // token/AD secondary listener
	MetadataPort   int
	MetricsPort    int
	MetricsEnabled bool

	RestartTimeout time.Duration // bound for each port close/open wait
	CoolDown       time.Duration // pause between brokers and before start
	ProbeInterval  time.Duration
}

// openPorts are the listeners that must accept connections before a
// broker counts as back.
func (c Config) openPorts() []int {
	ports := []int{c.BrokerPort, c.MetadataPort}
	if c.MetricsEnabled {
		ports = append(ports, c.MetricsPort)
	}
	return ports
}

// verifyPorts is the wider final-pass set, token listener included.
func (c Config) verifyPorts() []int {
	ports := []int{c.BrokerPort, c.TokenPort, c.MetadataPort}
	if c.MetricsEnabled {
		ports = append(ports, c.MetricsPort)
	}
	return ports
}

type portWaiter func(ctx context.Context, host string, port int, want probe.Want, timeout, interval time.Duration) error

// Executor drives the per-broker restart state machine, strictly one
// broker mid-restart at a time. It exclusively owns the run's mutable
// progress; the plan and leadership snapshot are read-only inputs.
type Executor struct {
	cfg Config
	svc service.Controller

	// ReplanAt, when >= 0, re-derives the order of the not yet attempted
	// tail right before attempting that plan index. This is the stricter
	// answer to the leadership staleness the one-shot snapshot carries:
	// every earlier restart may have shifted leadership by the time the
	// leader group's turn comes.
	ReplanAt int
	Replan   func(remaining []meta.Broker) []meta.Broker

	wait   portWaiter
	isOpen func(host string, port int, timeout time.Duration) bool
}

func NewExecutor(cfg Config, svc service.Controller) *Executor {
	return &Executor{
		cfg:      cfg,
		svc:      svc,
		ReplanAt: -1,
		wait:     probe.Wait,
		isOpen:   probe.IsOpen,
	}
}

// Run executes the plan in order, fail-fast: the first broker to fail
// aborts the run and every unattempted broker is recorded as Skipped.
// Cancellation is honored at state transition boundaries only; a broker
// interrupted mid-sequence is recorded as Failed(Cancelled).
func (this *Executor) Run(ctx context.Context, order []meta.Broker) *RunReport {
	order = append([]meta.Broker(nil), order...)
	report := &RunReport{
		Results: make([]BrokerResult, 0, len(order)),
	}

	for i := 0; i < len(order); i++ {
		if i == this.ReplanAt && this.Replan != nil {
			this.replanTail(order, i)
		}

		b := order[i]
		res := this.restartBroker(ctx, b)
		report.Results = append(report.Results, res)
		if res.Outcome == Failed {
			report.Aborted = true
			report.AbortReason = fmt.Sprintf("broker %s: %s", b, res.Failure)
			log.Error("run aborted, %s", report.AbortReason)
			this.skipRemaining(report, order[i+1:])
			return report
		}

		log.Info("[%s] restarted in %s, cooling down %s", b, res.Elapsed, this.cfg.CoolDown)
		if err := this.pause(ctx); err != nil {
			report.Aborted = true
			report.AbortReason = fmt.Sprintf("cancelled during cool-down after broker %s", b)
			this.skipRemaining(report, order[i+1:])
			return report
		}
	}

	report.Verification = this.verifyAll(order)
	return report
}

func (this *Executor) skipRemaining(report *RunReport, rest []meta.Broker) {
	for _, b := range rest {
		report.Results = append(report.Results, BrokerResult{Broker: b, Outcome: Skipped})
	}
}

func (this *Executor) replanTail(order []meta.Broker, from int) {
	fresh := this.Replan(order[from:])
	if len(fresh) != len(order)-from {
		log.Warn("replan dropped brokers, keeping stale order")
		return
	}
	for j, b := range fresh {
		if order[from+j].ID != b.ID {
			log.Warn("leadership shifted since snapshot, reordering remaining brokers")
			break
		}
	}
	copy(order[from:], fresh)
}

// restartBroker walks one broker through
// Idle -> Stopping -> WaitingClosed -> CoolingDown -> Starting ->
// WaitingOpen -> Verifying and returns its terminal result.
func (this *Executor) restartBroker(ctx context.Context, b meta.Broker) BrokerResult {
	begin := time.Now()
	state := Idle
	fail := func(kind FailureKind, err error) BrokerResult {
		log.Error("[%s] %s: %s (%v)", b, state, kind, err)
		return BrokerResult{
			Broker:  b,
			Outcome: Failed,
			Failure: kind,
			Err:     err,
			Elapsed: time.Since(begin),
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(Cancelled, err)
		}
		log.Debug("[%s] state: %s", b, state)

		switch state {
		case Idle:
			state = Stopping

		case Stopping:
			// fire-and-forget: systemd's controlled shutdown re-elects
			// this broker's leaderships before the process exits
			log.Info("[%s] stopping", b)
			if err := this.svc.Stop(b.Host); err != nil {
				return fail(PortCloseTimeout, err)
			}
			state = WaitingClosed

		case WaitingClosed:
			err := this.wait(ctx, b.Host, this.cfg.BrokerPort, probe.Closed,
				this.cfg.RestartTimeout, this.cfg.ProbeInterval)
			if err != nil {
				if ctx.Err() != nil {
					return fail(Cancelled, err)
				}
				return fail(PortCloseTimeout, err)
			}
			state = CoolingDown

		case CoolingDown:
			// let leader election propagate before this broker returns
			if err := this.pause(ctx); err != nil {
				return fail(Cancelled, err)
			}
			state = Starting

		case Starting:
			log.Info("[%s] starting", b)
			if err := this.svc.Start(b.Host); err != nil {
				return fail(PortOpenTimeout, err)
			}
			state = WaitingOpen

		case WaitingOpen:
			for _, port := range this.cfg.openPorts() {
				err := this.wait(ctx, b.Host, port, probe.Open,
					this.cfg.RestartTimeout, this.cfg.ProbeInterval)
				if err != nil {
					if ctx.Err() != nil {
						return fail(Cancelled, err)
					}
					return fail(PortOpenTimeout, err)
				}
			}
			state = Verifying

		case Verifying:
			st, err := this.svc.Status(b.Host)
			if err != nil {
				return fail(HealthCheckFailed, err)
			}
			if !st.Healthy() {
				return fail(HealthCheckFailed, fmt.Errorf("unit state %s", st))
			}
			log.Info("[%s] healthy: %s", b, st)
			return BrokerResult{
				Broker:  b,
				Outcome: Succeeded,
				Elapsed: time.Since(begin),
			}
		}
	}
}

func (this *Executor) pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(this.cfg.CoolDown):
		return nil
	}
}

// verifyAll is the post-plan read-only pass: probe every declared
// listener and collect the final unit states. It reports, it does not
// remediate.
func (this *Executor) verifyAll(brokers []meta.Broker) []VerifyResult {
	results := make([]VerifyResult, 0, len(brokers))
	for _, b := range brokers {
		v := VerifyResult{Broker: b}
		for _, port := range this.cfg.verifyPorts() {
			v.Ports = append(v.Ports, PortCheck{
				Port: port,
				Open: this.isOpen(b.Host, port, this.cfg.ProbeInterval),
			})
		}
		v.Status, v.StatusErr = this.svc.Status(b.Host)
		results = append(results, v)
	}
	return results
}
