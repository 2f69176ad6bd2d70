package config

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"portfolio/events"
	"portfolio/global"
)

const consumerPrefetch = 16

func initRabbit() error {
	url := AppConfig.RabbitMQ.Url
	if url == "" {
		global.Logger.Info("rabbitmq url empty, skipping rabbit init")
		return nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}

	// declare queue
	qname := AppConfig.RabbitMQ.Queue
	if qname == "" {
		qname = events.DefaultQueue
	}
	if _, err := ch.QueueDeclare(qname, true, false, false, false, nil); err != nil {
		conn.Close()
		return fmt.Errorf("declare rabbitmq queue %s: %w", qname, err)
	}

	global.RabbitConn = conn
	global.RabbitChannel = ch
	global.Logger.Info("rabbitmq initialized", zap.String("queue", qname))
	return nil
}

type channelOpener interface {
	Channel() (*amqp.Channel, error)
}

// OpenConsumerChannel opens a channel for consuming on the shared connection,
// separate from the publishing channel in global.RabbitChannel.
func OpenConsumerChannel() (*amqp.Channel, error) {
	if global.RabbitConn == nil {
		return nil, errors.New("rabbitmq not connected")
	}
	return openConsumerChannel(global.RabbitConn, consumerPrefetch)
}

func openConsumerChannel(conn channelOpener, prefetch int) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open rabbitmq consumer channel: %w", err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("set rabbitmq qos: %w", err)
	}
	return ch, nil
}

func closeRabbit() {
	if global.RabbitChannel != nil {
		_ = global.RabbitChannel.Close()
		global.RabbitChannel = nil
	}
	if global.RabbitConn != nil {
		if err := global.RabbitConn.Close(); err != nil {
			global.Logger.Warn("close rabbitmq", zap.Error(err))
		}
		global.RabbitConn = nil
	}
}
