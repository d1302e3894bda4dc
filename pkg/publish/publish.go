// Package publish pushes calculated layouts to an MQTT broker.
//
// Each layout is published retained to {prefix}/layout/{designID}, so a
// subscriber that connects later still receives the latest layout of
// every design. Connection state is announced retained on
// {prefix}/system/status, with a last will that flips it to offline if
// the process dies without a clean [Publisher.Close].
package publish

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matzehuels/ceilplan/pkg/config"
	cperrors "github.com/matzehuels/ceilplan/pkg/errors"
	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/observability"
	"github.com/matzehuels/ceilplan/pkg/render/plan"
)

// Publisher publishes layouts over MQTT. It is safe for concurrent use.
type Publisher struct {
	client   pahomqtt.Client
	topics   Topics
	clientID string
	qos      byte
	logger   *log.Logger

	mu        sync.RWMutex
	connected bool
}

// Connect dials the broker described by cfg and announces the publisher
// online. Paho reconnects automatically after the first success.
func Connect(ctx context.Context, cfg config.MQTTConfig, logger *log.Logger) (*Publisher, error) {
	if cfg.QoS < 0 || cfg.QoS > maxQoS {
		return nil, cperrors.New(cperrors.ErrCodeInvalidConfig, "mqtt qos must be 0, 1 or 2, got %d", cfg.QoS)
	}
	if err := cperrors.ValidateTopicSegment(cfg.TopicPrefix); err != nil {
		return nil, cperrors.Wrap(cperrors.ErrCodeInvalidConfig, err, "mqtt topic prefix")
	}

	p := newPublisher(nil, cfg, logger)

	opts := buildClientOptions(cfg)
	configureLWT(opts, p.topics, p.clientID, p.qos)
	opts.SetOnConnectHandler(func(pahomqtt.Client) {
		p.setConnected(true)
		p.logger.Info("connected to broker", "broker", cfg.BrokerURL())
		// Runs on paho's goroutine; a blocking publish would stall reconnects.
		go p.publishStatus("online", "")
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		p.setConnected(false)
		p.logger.Warn("broker connection lost", "err", err)
	})

	p.client = pahomqtt.NewClient(opts)
	if err := wait(ctx, p.client.Connect(), defaultConnectTimeout); err != nil {
		return nil, cperrors.Wrap(cperrors.GetCode(err), err, "connect to %s", cfg.BrokerURL())
	}
	return p, nil
}

func newPublisher(client pahomqtt.Client, cfg config.MQTTConfig, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{
		client:   client,
		topics:   Topics{Prefix: cfg.TopicPrefix},
		clientID: cfg.Broker.ClientID,
		qos:      byte(cfg.QoS),
		logger:   logger.WithPrefix("mqtt"),
	}
}

// Topics returns the topic builder used by p.
func (p *Publisher) Topics() Topics { return p.topics }

// IsConnected reports whether the broker connection is up.
func (p *Publisher) IsConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected
}

func (p *Publisher) setConnected(v bool) {
	p.mu.Lock()
	changed := p.connected != v
	p.connected = v
	p.mu.Unlock()
	if changed {
		observability.Publish().OnConnectionChange(v)
	}
}

// PublishLayout publishes l retained on the layout topic for designID.
func (p *Publisher) PublishLayout(ctx context.Context, designID string, l lighting.Layout) error {
	if err := cperrors.ValidateTopicSegment(designID); err != nil {
		return err
	}
	payload, err := plan.RenderJSON(l)
	if err != nil {
		return err
	}
	return p.Publish(ctx, p.topics.Layout(designID), payload, true)
}

// Publish sends payload to topic at the configured QoS.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte, retained bool) (err error) {
	if topic == "" {
		return cperrors.New(cperrors.ErrCodeInvalidInput, "topic cannot be empty")
	}
	if len(payload) > maxPayloadSize {
		return cperrors.New(cperrors.ErrCodeInvalidInput, "payload size %d exceeds maximum %d bytes", len(payload), maxPayloadSize)
	}
	if !p.IsConnected() {
		return cperrors.New(cperrors.ErrCodeNetwork, "not connected to broker")
	}

	start := time.Now()
	defer func() {
		observability.Publish().OnPublish(ctx, topic, len(payload), time.Since(start), err)
	}()

	if werr := wait(ctx, p.client.Publish(topic, p.qos, retained, payload), defaultPublishTimeout); werr != nil {
		return cperrors.Wrap(cperrors.GetCode(werr), werr, "publish %s", topic)
	}
	p.logger.Debug("published", "topic", topic, "bytes", len(payload), "retained", retained)
	return nil
}

// Close announces the publisher offline and disconnects. Safe to call
// more than once.
func (p *Publisher) Close() error {
	if p.IsConnected() {
		p.publishStatus("offline", "graceful_shutdown")
	}
	p.setConnected(false)
	p.client.Disconnect(defaultDisconnectQuiesce)
	return nil
}

func (p *Publisher) publishStatus(status, reason string) {
	payload := statusPayload(p.clientID, status, reason, time.Now())
	if err := p.Publish(context.Background(), p.topics.SystemStatus(), payload, true); err != nil {
		p.logger.Warn("status publish failed", "status", status, "err", err)
	}
}

// wait blocks until tok completes, ctx ends or timeout elapses.
func wait(ctx context.Context, tok pahomqtt.Token, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return cperrors.Wrap(cperrors.ErrCodeNetwork, err, "broker")
		}
		return nil
	case <-ctx.Done():
		return cperrors.Wrap(cperrors.ErrCodeTimeout, ctx.Err(), "broker")
	case <-timer.C:
		return cperrors.New(cperrors.ErrCodeTimeout, "broker did not respond within %v", timeout)
	}
}
