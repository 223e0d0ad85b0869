// Package redis pushes a short notice of every order change to a Redis
// pub/sub channel so open boards can refresh without polling.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"production/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// Client is the part of a go-redis client the notifier needs.
type Client interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// Notice is the message published per change. It carries no payload; boards
// reload the order through the HTTP API.
type Notice struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Notifier struct {
	client  Client
	channel string
}

func NewNotifier(client Client, channel string) *Notifier {
	return &Notifier{client: client, channel: channel}
}

// NewClient connects and pings so a wrong address fails at startup.
func NewClient(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (n *Notifier) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	body, err := json.Marshal(Notice{
		Event:      msg.Name,
		OrderID:    msg.AggregateID.String(),
		OccurredAt: msg.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, n.channel, string(body)).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.Name, n.channel, err)
	}
	return nil
}
