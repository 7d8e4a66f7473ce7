package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayusharma-ctrl/Spyne/internal/config"
	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	CarCreatedSubject = "car.created"
	CarUpdatedSubject = "car.updated"
	CarDeletedSubject = "car.deleted"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

type DeletedEventPayload struct {
	ID string `json:"id"`
}

func NewNATSPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) PublishCarCreated(ctx context.Context, car *entity.Car) error {
	return p.publish(CarCreatedSubject, car, car.ID)
}

func (p *Publisher) PublishCarUpdated(ctx context.Context, car *entity.Car) error {
	return p.publish(CarUpdatedSubject, car, car.ID)
}

func (p *Publisher) PublishCarDeleted(ctx context.Context, carID string) error {
	return p.publish(CarDeletedSubject, DeletedEventPayload{ID: carID}, carID)
}

func (p *Publisher) publish(subject string, payload interface{}, carID string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal payload for NATS publishing",
			zap.Error(err),
			zap.String("car_id", carID),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject),
			zap.Error(err),
			zap.String("car_id", carID),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Debug("Published NATS message",
		zap.String("subject", subject),
		zap.String("car_id", carID),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
