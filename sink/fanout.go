package sink

import (
	"context"
	stderrors "errors"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDeliveries bounds the number of webhook calls in flight.
const maxConcurrentDeliveries = 8

// Delivery is the outcome of one (notification, sink) delivery attempt.
// The ID correlates the result with the dispatcher's log entries.
type Delivery struct {
	ID    uuid.UUID
	Sink  string
	Title string
	Err   error
}

// Fanout delivers every notification to every configured sink.
type Fanout struct {
	log   *logging.Logger
	sinks []Sink
}

// NewFanout builds a dispatcher from the configuration. Sinks without a
// configured endpoint are left out entirely.
func NewFanout(cfg Config, log *logging.Logger) *Fanout {
	var sinks []Sink
	if cfg.DiscordWebhookUrl != "" {
		sinks = append(sinks, NewDiscord(cfg.DiscordWebhookUrl, cfg.Timeout))
	}
	if cfg.TeamsWebhookUrl != "" {
		sinks = append(sinks, NewTeams(cfg.TeamsWebhookUrl, cfg.Timeout))
	}

	return &Fanout{log: log, sinks: sinks}
}

// Active returns the names of the configured sinks.
func (f *Fanout) Active() []string {
	names := make([]string, 0, len(f.sinks))
	for _, s := range f.sinks {
		names = append(names, s.Name())
	}

	return names
}

// Dispatch posts every notification to every configured sink.
//
// Deliveries are independent and issued concurrently: one failing delivery
// neither stops delivery to the other sinks nor delivery of the other
// notifications. The returned slice carries one entry per
// (notification, sink) pair.
func (f *Fanout) Dispatch(ctx context.Context, notifications []*event.Notification) []Delivery {
	if len(f.sinks) == 0 {
		if len(notifications) > 0 {
			f.log.Warn("no sinks configured, dropping notifications")
		}
		return nil
	}

	deliveries := make([]Delivery, len(notifications)*len(f.sinks))

	var g errgroup.Group
	g.SetLimit(maxConcurrentDeliveries)

	for i, n := range notifications {
		for j, s := range f.sinks {
			idx := i*len(f.sinks) + j
			n, s := n, s

			g.Go(func() error {
				d := Delivery{ID: uuid.New(), Sink: s.Name(), Title: n.Title}
				d.Err = s.Send(ctx, n)

				if d.Err != nil {
					f.log.Errorw("delivery failed",
						zap.Stringer("delivery_id", d.ID), zap.String("sink", d.Sink),
						zap.String("title", d.Title), logging.Error(d.Err))
				} else {
					f.log.Debugw("notification delivered",
						zap.Stringer("delivery_id", d.ID), zap.String("sink", d.Sink),
						zap.String("title", d.Title))
				}

				deliveries[idx] = d
				return nil
			})
		}
	}

	// The closures never return an error; failures live in the deliveries.
	_ = g.Wait()

	return deliveries
}

// Err aggregates the failed deliveries into a single error, nil if none failed.
func Err(deliveries []Delivery) error {
	var errs []error
	for _, d := range deliveries {
		if d.Err != nil {
			errs = append(errs, d.Err)
		}
	}

	return stderrors.Join(errs...)
}
