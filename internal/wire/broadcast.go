package wire

import (
	"context"
	"fmt"
	"sync"

	"github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
)

// CompactBlockTopic is the gossip topic CompactBlocks are published to,
// mirroring the teacher's per-message-kind topic constants
// (internal/p2p/node.go's BlockTopic/TransactionTopic).
const CompactBlockTopic = "shielded-pool/compact-blocks"

// BroadcasterConfig configures a Broadcaster's libp2p host.
type BroadcasterConfig struct {
	ListenAddrs []string
}

// DefaultBroadcasterConfig returns a sane default configuration.
func DefaultBroadcasterConfig() *BroadcasterConfig {
	return &BroadcasterConfig{ListenAddrs: []string{"/ip4/0.0.0.0/tcp/0"}}
}

// Broadcaster publishes CompactBlocks over a libp2p gossipsub topic,
// the realization of spec.md §4.4 step 4's "emit... over the external
// wire" for the networking layer spec.md §1 otherwise treats as an
// external collaborator.
type Broadcaster struct {
	mu    sync.Mutex
	host  host.Host
	ps    *pubsub.PubSub
	topic *pubsub.Topic
}

// NewBroadcaster starts a libp2p host and joins CompactBlockTopic.
func NewBroadcaster(ctx context.Context, cfg *BroadcasterConfig) (*Broadcaster, error) {
	if cfg == nil {
		cfg = DefaultBroadcasterConfig()
	}
	h, err := libp2p.New(libp2p.ListenAddrStrings(cfg.ListenAddrs...))
	if err != nil {
		return nil, fmt.Errorf("wire: create host: %w", err)
	}
	ps, err := pubsub.NewGossipSub(ctx, h)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("wire: create pubsub: %w", err)
	}
	topic, err := ps.Join(CompactBlockTopic)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("wire: join topic: %w", err)
	}
	return &Broadcaster{host: h, ps: ps, topic: topic}, nil
}

// Publish broadcasts a CompactBlock to every subscribed peer.
func (b *Broadcaster) Publish(ctx context.Context, cb *CompactBlock) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.topic.Publish(ctx, cb.Encode())
}

// Subscribe returns the raw subscription to CompactBlockTopic. Each
// message's data is a CompactBlock.Encode output; the subscription does
// not decode it (DecodeCompactBlock does).
func (b *Broadcaster) Subscribe() (*pubsub.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.topic.Subscribe()
}

// Close tears down the host.
func (b *Broadcaster) Close() error {
	return b.host.Close()
}
