package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LocalPublisher delivers straight to the in-process hub.
type LocalPublisher struct {
	Hub *Hub
}

func (p LocalPublisher) Publish(_ context.Context, e Event) error {
	p.Hub.Publish(e)
	return nil
}

// NOTIFY payloads are capped at 8000 bytes by PostgreSQL.
const maxNotifyPayload = 7900

// PGNotifier broadcasts events through pg_notify so every instance's bridge sees them.
type PGNotifier struct {
	db      *sqlx.DB
	channel string
}

func NewPGNotifier(db *sqlx.DB, channel string) *PGNotifier {
	return &PGNotifier{db: db, channel: channel}
}

func (p *PGNotifier) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("realtime: encode event: %w", err)
	}
	if len(payload) > maxNotifyPayload {
		payload, err = json.Marshal(trimmed(e))
		if err != nil {
			return fmt.Errorf("realtime: encode event: %w", err)
		}
	}
	if _, err := p.db.ExecContext(ctx, p.db.Rebind("SELECT pg_notify(?, ?)"), p.channel, string(payload)); err != nil {
		return fmt.Errorf("realtime: notify: %w", err)
	}
	return nil
}

// trimmed keeps only the keys clients need to locate the row.
func trimmed(e Event) Event {
	keep := func(row map[string]any) map[string]any {
		if row == nil {
			return nil
		}
		out := map[string]any{}
		for _, k := range []string{"id", "city_slug"} {
			if v, ok := row[k]; ok {
				out[k] = v
			}
		}
		return out
	}
	return Event{Type: e.Type, Table: e.Table, Record: keep(e.Record), OldRecord: keep(e.OldRecord)}
}

// PGBridge relays LISTEN notifications into the local hub. Reconnects are handled by pq.Listener.
type PGBridge struct {
	listener *pq.Listener
	channel  string
	hub      *Hub
	logger   *zap.Logger
}

func NewPGBridge(dsn, channel string, hub *Hub, logger *zap.Logger) *PGBridge {
	b := &PGBridge{channel: channel, hub: hub, logger: logger}
	b.listener = pq.NewListener(dsn, 2*time.Second, time.Minute, b.onListenerEvent)
	return b
}

func (b *PGBridge) onListenerEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
		b.logger.Warn("realtime listener connection problem", zap.Error(err))
	case pq.ListenerEventReconnected:
		b.logger.Info("realtime listener reconnected")
	}
}

// Run blocks until ctx is cancelled.
func (b *PGBridge) Run(ctx context.Context) error {
	if err := b.listener.Listen(b.channel); err != nil {
		return fmt.Errorf("realtime: listen %s: %w", b.channel, err)
	}
	defer b.listener.Close()

	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-b.listener.Notify:
			if n == nil {
				// connection was re-established; anything sent meanwhile is lost
				continue
			}
			var e Event
			if err := json.Unmarshal([]byte(n.Extra), &e); err != nil {
				b.logger.Warn("realtime: bad notification payload", zap.Error(err))
				continue
			}
			b.hub.Publish(e)
		case <-ping.C:
			if err := b.listener.Ping(); err != nil {
				b.logger.Warn("realtime listener ping failed", zap.Error(err))
			}
		}
	}
}
