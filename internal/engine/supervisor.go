package engine

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Defaults for the supervisor's timing knobs.
const (
	DefaultProbeTimeout   = 1500 * time.Millisecond
	DefaultPollInterval   = time.Second
	DefaultStartupTimeout = 120 * time.Second
	DefaultHealthTTL      = 5 * time.Second

	// bootstrapLogLines is how many trailing output lines are kept for the
	// failure diagnostic.
	bootstrapLogLines = 20
)

// SupervisorConfig tunes availability checking and local bootstrap.
type SupervisorConfig struct {
	ProbeTimeout   time.Duration
	PollInterval   time.Duration
	StartupTimeout time.Duration
	HealthTTL      time.Duration

	// BootstrapCommand starts the local engine process (argv form). Empty
	// means this supervisor can only wait for the engine, never start it.
	BootstrapCommand []string
	BootstrapDir     string
}

func (c *SupervisorConfig) withDefaults() {
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = DefaultStartupTimeout
	}
	if c.HealthTTL <= 0 {
		c.HealthTTL = DefaultHealthTTL
	}
}

// Supervisor guarantees the extraction engine is reachable before any
// extraction call. Health results are cached under a short TTL; only the
// local bootstrap path is critical-sectioned, to exactly one in-flight
// attempt process-wide.
type Supervisor struct {
	client *Client
	cfg    SupervisorConfig
	log    *zap.Logger

	mu        sync.RWMutex
	healthy   bool
	checkedAt time.Time

	boot singleflight.Group

	// startProcess is swapped by tests to count and fake process launches.
	startProcess func() (*process, error)
}

// NewSupervisor wires a Supervisor around an engine client.
func NewSupervisor(client *Client, cfg SupervisorConfig, log *zap.Logger) *Supervisor {
	cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	s := &Supervisor{client: client, cfg: cfg, log: log}
	s.startProcess = s.launch
	return s
}

// Extract ensures availability, then performs the extraction call.
func (s *Supervisor) Extract(ctx context.Context, text string) (*ExtractResponse, error) {
	if err := s.EnsureAvailable(ctx); err != nil {
		return nil, err
	}
	return s.client.Extract(ctx, text)
}

// EnsureAvailable returns once the engine is known healthy. A positive
// cached result within the TTL short-circuits; a negative one is always
// re-probed with the short probe timeout so recovery is fast. If the probe
// misses: remote engines are polled up to the startup timeout (never
// started), local engines are bootstrapped with at most one attempt in
// flight, concurrent callers awaiting that attempt's single outcome.
func (s *Supervisor) EnsureAvailable(ctx context.Context) error {
	if s.healthyWithinTTL() {
		return nil
	}

	if err := s.probe(ctx); err == nil {
		return nil
	}

	if s.remote() {
		return s.pollUntilHealthy(ctx)
	}

	ch := s.boot.DoChan("bootstrap", func() (any, error) {
		return nil, s.bootstrap()
	})
	select {
	case <-ctx.Done():
		return &UnavailableError{
			Endpoint: s.client.BaseURL(),
			Message:  "canceled while awaiting engine bootstrap",
			Cause:    ctx.Err(),
		}
	case res := <-ch:
		return res.Err
	}
}

// Status is a TTL-respecting health view for liveness reporting. It probes
// at most once per TTL window and never triggers a bootstrap.
func (s *Supervisor) Status(ctx context.Context) error {
	if s.healthyWithinTTL() {
		return nil
	}
	return s.probe(ctx)
}

func (s *Supervisor) healthyWithinTTL() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthy && time.Since(s.checkedAt) < s.cfg.HealthTTL
}

func (s *Supervisor) markHealth(healthy bool) {
	s.mu.Lock()
	s.healthy = healthy
	s.checkedAt = time.Now()
	s.mu.Unlock()
}

// probe issues one short bounded health check and refreshes the cache.
func (s *Supervisor) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()

	err := s.client.Health(probeCtx)
	s.markHealth(err == nil)
	return err
}

// remote reports whether the engine address points off-host. Remote engines
// are waited for, never started.
func (s *Supervisor) remote() bool {
	u, err := url.Parse(s.client.BaseURL())
	if err != nil {
		return false
	}
	host := u.Hostname()
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

func (s *Supervisor) pollUntilHealthy(ctx context.Context) error {
	deadline := time.NewTimer(s.cfg.StartupTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return &UnavailableError{
				Endpoint: s.client.BaseURL(),
				Message:  "canceled while waiting for engine",
				Cause:    ctx.Err(),
			}
		case <-deadline.C:
			return &UnavailableError{
				Endpoint: s.client.BaseURL(),
				Message:  fmt.Sprintf("engine did not become healthy within %s", s.cfg.StartupTimeout),
			}
		case <-ticker.C:
			if err := s.probe(ctx); err == nil {
				return nil
			}
		}
	}
}

// bootstrap starts the local engine process and polls it to health. Callers
// arrive here through the single-flight group, so at most one attempt runs
// at a time; its outcome is shared. The context deliberately does not come
// from any one request: the process must outlive whichever caller happened
// to trigger the start.
func (s *Supervisor) bootstrap() error {
	if len(s.cfg.BootstrapCommand) == 0 {
		return &UnavailableError{
			Endpoint: s.client.BaseURL(),
			Message:  "engine is down and no bootstrap command is configured",
		}
	}

	s.log.Info("bootstrapping local extraction engine",
		zap.Strings("command", s.cfg.BootstrapCommand),
		zap.String("dir", s.cfg.BootstrapDir))

	proc, err := s.startProcess()
	if err != nil {
		return &UnavailableError{
			Endpoint: s.client.BaseURL(),
			Message:  "failed to start engine process",
			Cause:    err,
		}
	}

	deadline := time.NewTimer(s.cfg.StartupTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-proc.exited:
			return &UnavailableError{
				Endpoint: s.client.BaseURL(),
				Message: fmt.Sprintf("engine process exited during startup: %v; last output: %s",
					proc.exitErr(), strings.Join(proc.lastLines(), " | ")),
			}
		case <-deadline.C:
			proc.stop()
			return &UnavailableError{
				Endpoint: s.client.BaseURL(),
				Message:  fmt.Sprintf("engine did not become healthy within %s of bootstrap", s.cfg.StartupTimeout),
			}
		case <-ticker.C:
			if err := s.probe(context.Background()); err == nil {
				s.log.Info("local extraction engine is healthy")
				return nil
			}
		}
	}
}

// process is a launched engine child with its combined output drained into a
// trailing-lines ring. Draining prevents the child from blocking on a full
// pipe and doubles as the startup diagnostic.
type process struct {
	cmd    *exec.Cmd
	exited chan struct{}

	mu    sync.Mutex
	lines []string
	err   error
}

func (s *Supervisor) launch() (*process, error) {
	cmd := exec.Command(s.cfg.BootstrapCommand[0], s.cfg.BootstrapCommand[1:]...)
	cmd.Dir = s.cfg.BootstrapDir

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	// The child holds its own copy of the write end.
	_ = w.Close()

	p := &process{cmd: cmd, exited: make(chan struct{})}
	go p.drain(r, s.log)
	return p, nil
}

func (p *process) drain(r *os.File, log *zap.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		log.Debug("engine output", zap.String("line", line))
		p.mu.Lock()
		p.lines = append(p.lines, line)
		if len(p.lines) > bootstrapLogLines {
			p.lines = p.lines[len(p.lines)-bootstrapLogLines:]
		}
		p.mu.Unlock()
	}
	_ = r.Close()

	err := p.cmd.Wait()
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	close(p.exited)
}

func (p *process) lastLines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

func (p *process) exitErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *process) stop() {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}
