// Package machine drives a GRBL pen plotter over a serial link: one command
// line at a time, each waiting for the controller's "ok".
package machine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"papercut/internal/logging"
	"papercut/internal/toolpath"
	"papercut/internal/vector"
)

var (
	ErrNotConnected  = errors.New("machine not connected")
	ErrTransport     = errors.New("serial transport failure")
	ErrAckTimeout    = errors.New("no acknowledgement from machine")
	ErrSetupRejected = errors.New("machine rejected setup")
)

// Session owns the link to one plotter. Calls are serialised.
type Session struct {
	cfg     Config
	dialer  Dialer
	logger  *slog.Logger
	metrics *Metrics

	// overridable in tests
	now   func() time.Time
	sleep func(time.Duration)

	mu   sync.Mutex
	link Link
	pen  toolpath.PenTracker
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = logging.OrNop(l) }
}

// WithDialer replaces the serial dialer.
func WithDialer(d Dialer) Option {
	return func(s *Session) { s.dialer = d }
}

// WithMetrics records link traffic in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// NewSession creates a disconnected session.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		dialer: SerialDialer{},
		logger: logging.NewNop(),
		now:    time.Now,
		sleep:  time.Sleep,
		pen:    toolpath.PenTracker{Angles: cfg.Pen, Collapse: cfg.CollapsePen},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Connected reports whether a link is open.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link != nil
}

// Pen is the last commanded pen position.
func (s *Session) Pen() toolpath.PenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pen.State()
}

// Connect opens the link unless it is already open.
func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connect()
}

func (s *Session) connect() error {
	if s.link != nil {
		return nil
	}

	var err error
	attempts := s.cfg.attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			s.sleep(s.cfg.RetryDelay)
		}
		s.logger.Info("connecting", "port", s.cfg.Port, "baud", s.cfg.BaudRate, "attempt", attempt)

		var link Link
		if link, err = s.open(); err != nil {
			s.metrics.connect("error")
			s.logger.Error("connect failed", "port", s.cfg.Port, "attempt", attempt, "max", attempts, "error", err)
			continue
		}

		s.link = link
		s.pen.Reset()
		s.metrics.connect("ok")
		s.logger.Info("connected", "port", s.cfg.Port)
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// open dials the port, lets the controller boot and drains its banner. The
// link is closed again on any failure.
func (s *Session) open() (Link, error) {
	link, err := s.dialer.Dial(s.cfg.Port, s.cfg.BaudRate)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.cfg.Port, err)
	}
	if err := link.SetReadTimeout(s.cfg.PollInterval); err != nil {
		link.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	s.sleep(s.cfg.SettleDelay)

	boot, err := s.drain(link)
	if err != nil {
		link.Close()
		return nil, fmt.Errorf("read boot message: %w", err)
	}
	if boot != "" {
		s.logger.Info("controller boot message", "text", boot)
	}
	return link, nil
}

// maxBoot bounds how much boot output is read before connecting.
const maxBoot = 4096

// drain reads whatever the controller has already written. It gives up after
// maxBoot bytes or once Timeout has passed.
func (s *Session) drain(l Link) (string, error) {
	var out []byte
	buf := make([]byte, 256)
	deadline := s.now().Add(s.cfg.Timeout)
	for len(out) < maxBoot && s.now().Before(deadline) {
		n, err := l.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			return "", err
		}
		if n == 0 {
			break
		}
	}
	return strings.TrimSpace(string(out)), nil
}

// Disconnect closes the link. It is a no-op when not connected.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop()
}

func (s *Session) drop() {
	if s.link == nil {
		return
	}
	if err := s.link.Close(); err != nil {
		s.logger.Error("close link", "error", err)
	}
	s.link = nil
	s.pen.Reset()
	s.logger.Info("disconnected", "port", s.cfg.Port)
}

// Command sends one raw line on an open link.
func (s *Session) Command(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchange(line)
}

// Calibrate homes the machine, connecting first if needed.
func (s *Session) Calibrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connect(); err != nil {
		return err
	}
	s.logger.Info("homing")
	if err := s.exchange("G28"); err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}
	return nil
}

// TestConnection connects and immediately disconnects.
func (s *Session) TestConnection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connect(); err != nil {
		return err
	}
	s.drop()
	return nil
}

// SendDrawing plots every path of d in order. Each path starts with the pen
// lifted; every rapid move is preceded by a pen-up and every drawing move by
// a pen-down. The first failure aborts the drawing. A nil drawing fails with
// vector.ErrNoPaths.
func (s *Session) SendDrawing(d *vector.Drawing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d == nil {
		return vector.ErrNoPaths
	}
	paths := make([][]toolpath.Primitive, 0, len(d.Paths))
	for i, p := range d.Paths {
		prims, err := toolpath.Parse(p.Data)
		if err != nil {
			return fmt.Errorf("path %d: %w", i+1, err)
		}
		paths = append(paths, prims)
	}

	if err := s.connect(); err != nil {
		return err
	}
	for _, line := range []string{"G21", "G90"} {
		if err := s.exchange(line); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSetupRejected, line, err)
		}
	}

	s.logger.Info("sending drawing", "paths", len(paths))
	s.pen.Reset()
	for i, prims := range paths {
		if err := s.setPen(s.pen.Lift()); err != nil {
			return fmt.Errorf("path %d: %w", i+1, err)
		}
		for _, p := range prims {
			if set, ok := s.pen.Before(p); ok {
				if err := s.setPen(set); err != nil {
					return fmt.Errorf("path %d: %w", i+1, err)
				}
			}
			if err := s.exchange(s.cfg.Transform.Apply(p).GCode(s.cfg.Feeds)); err != nil {
				return fmt.Errorf("path %d: %w", i+1, err)
			}
		}
	}
	if len(paths) > 0 {
		if err := s.setPen(s.pen.Lift()); err != nil {
			return err
		}
	}
	s.logger.Info("drawing sent", "paths", len(paths))
	return nil
}

func (s *Session) setPen(set toolpath.PenSet) error {
	if err := s.exchange(set.GCode(s.cfg.Feeds)); err != nil {
		return err
	}
	s.sleep(s.cfg.PenDwell)
	return nil
}

// exchange writes one line and waits for its acknowledgement, retransmitting
// on timeout. Transport errors close the link without retrying.
func (s *Session) exchange(line string) error {
	if s.link == nil {
		return ErrNotConnected
	}

	buf := make([]byte, 256)
	attempts := s.cfg.attempts()
	var last string
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			s.metrics.retry()
			s.sleep(s.cfg.RetryDelay)
		}

		start := s.now()
		if _, err := s.link.Write([]byte(line + "\n")); err != nil {
			return s.transportError(line, err)
		}
		s.logger.Debug("sent", "line", line)

		w := newAckWaiter(start.Add(s.cfg.Timeout))
		for w.state == awaitingAck {
			n, err := s.link.Read(buf)
			if err != nil {
				return s.transportError(line, err)
			}
			w.feed(buf[:n])
			w.tick(s.now())
		}
		if w.state == acked {
			s.metrics.command("ok")
			s.metrics.acked(s.now().Sub(start).Seconds())
			s.logger.Debug("acknowledged", "line", line, "response", w.text())
			return nil
		}

		last = w.text()
		s.logger.Warn("no acknowledgement", "line", line, "attempt", attempt, "max", attempts, "response", last)
	}
	s.metrics.command("timeout")
	return fmt.Errorf("%w: %q (last response %q)", ErrAckTimeout, line, last)
}

func (s *Session) transportError(line string, err error) error {
	s.metrics.command("error")
	s.logger.Error("link failed", "line", line, "error", err)
	s.drop()
	return fmt.Errorf("%w: %q: %w", ErrTransport, line, err)
}
