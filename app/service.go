package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kilianp07/brigade/config"
	"github.com/kilianp07/brigade/core/allocation"
	"github.com/kilianp07/brigade/core/events"
	"github.com/kilianp07/brigade/core/graph"
	coremetrics "github.com/kilianp07/brigade/core/metrics"
	coremqtt "github.com/kilianp07/brigade/core/mqtt"
	"github.com/kilianp07/brigade/core/scenario"
	"github.com/kilianp07/brigade/infra/logger"
	"github.com/kilianp07/brigade/infra/metrics"
	"github.com/kilianp07/brigade/infra/mqtt"
	"github.com/kilianp07/brigade/internal/eventbus"
)

// ErrUnknownNode is returned when a distance query names a node absent
// from the scenario graph.
var ErrUnknownNode = errors.New("unknown node")

// Service wires the allocation engine to its observers: metrics sinks, the
// MQTT order publisher and the event bus.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	sink   coremetrics.Sink
	orders coremqtt.OrderPublisher
	paho   *mqtt.PahoPublisher
	bus    *eventbus.Bus[events.Event]
	wg     sync.WaitGroup
	logOut io.Closer

	promAddr string
	promStop context.CancelFunc
	promErr  <-chan error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.Logging.Level)
	logger.SetConsole(cfg.Logging.Format == "console")
	var logOut io.WriteCloser
	if lc := cfg.Logging; lc.File != "" {
		w, err := logger.NewRotatingWriter(lc.File, lc.MaxSizeMB, lc.MaxBackups, lc.MaxAgeDays)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		logger.SetOutput(w)
		logOut = w
	}
	logg := logger.New("service")

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = releaseLog(logOut)
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		log:    logg,
		sink:   sink,
		bus:    eventbus.New[events.Event](0),
		logOut: logOut,
	}
	if cfg.MQTT.Enabled() {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			closeSink(sink)
			_ = releaseLog(logOut)
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.paho = pub
		svc.orders = pub
	}

	sub := svc.bus.SubscribeFunc(loggedEvent)
	svc.wg.Add(1)
	go svc.logEvents(sub)
	return svc, nil
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config { return s.cfg }

// StartMetrics serves the Prometheus endpoint when an address is configured.
// It returns the bound address, or "" when disabled.
func (s *Service) StartMetrics(ctx context.Context) (string, error) {
	if s.cfg.Metrics.PrometheusAddr == "" || s.promStop != nil {
		return s.promAddr, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	addr, errCh, err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr, nil)
	if err != nil {
		cancel()
		return "", fmt.Errorf("prom server: %w", err)
	}
	s.promAddr, s.promStop, s.promErr = addr, cancel, errCh
	s.log.Infof("metrics available on http://%s/metrics", addr)
	return addr, nil
}

// Simulate runs the scenario until every focus is extinguished or the day
// ceiling is reached. A positive maxDays overrides the configured ceiling.
func (s *Service) Simulate(sc *scenario.Scenario, maxDays int) (allocation.RunResult, error) {
	s.log.Infof("simulating scenario with %s", sc)
	engine, err := allocation.NewEngine(sc.Graph(), sc.Brigades, sc.Foci, s.cfg.Simulation,
		allocation.WithLogger(logger.New("engine")))
	if err != nil {
		return allocation.RunResult{}, err
	}
	opts := []allocation.DriverOption{
		allocation.WithDriverLogger(logger.New("driver")),
		allocation.WithSink(s.sink),
		allocation.WithEventBus(s.bus),
		allocation.WithMaxDays(maxDays),
	}
	if s.orders != nil {
		opts = append(opts, allocation.WithOrderPublisher(s.orders))
	}
	return allocation.NewDriver(engine, opts...).SimulateUntilExtinct(), nil
}

// Distances returns the shortest travel time from the given node to every
// node of the scenario graph, using the configured router.
func (s *Service) Distances(sc *scenario.Scenario, from string) (map[string]float64, []string, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}
	g := sc.Graph()
	if !g.HasNode(from) {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownNode, from)
	}
	router, err := graph.NewRouter(s.cfg.Simulation.Router, g)
	if err != nil {
		return nil, nil, err
	}
	return router.Distances(from), g.Nodes(), nil
}

// loggedEvent keeps the per-allocation events off the log subscriber.
func loggedEvent(ev events.Event) bool {
	switch ev.(type) {
	case events.FocusExtinguished, events.RunCompleted:
		return true
	}
	return false
}

func (s *Service) logEvents(sub <-chan events.Event) {
	defer s.wg.Done()
	for ev := range sub {
		switch e := ev.(type) {
		case events.FocusExtinguished:
			s.log.Infof("run %s: focus %s extinguished on day %d", e.RunID, e.FocusID, e.Day)
		case events.RunCompleted:
			s.log.Infof("run %s finished after %d days (completed=%t)", e.RunID, e.Days, e.Completed)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	s.wg.Wait()
	if dropped := s.bus.Dropped(); dropped > 0 {
		s.log.Warnf("%d events dropped by slow subscribers", dropped)
	}
	if s.paho != nil {
		s.paho.Disconnect()
	}
	var err error
	if s.promStop != nil {
		s.promStop()
		err = <-s.promErr
		s.promStop = nil
	}
	closeSink(s.sink)
	return errors.Join(err, releaseLog(s.logOut))
}

func closeSink(sink coremetrics.Sink) {
	if c, ok := sink.(interface{ Close() }); ok {
		c.Close()
	}
}

// releaseLog restores stderr output before closing the log file.
func releaseLog(w io.Closer) error {
	if w == nil {
		return nil
	}
	logger.SetOutput(nil)
	return w.Close()
}
