package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"AllWell/config"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

// 交换机 / 队列名称，生产端和消费端共用
const (
	ExchangeRounds    = "rounds.topic"
	ExchangeScheduler = "scheduler.delayed"

	QueueIncidentAlert = "incident.alert"
	QueueRoundReminder = "round.reminder"

	RoutingKeyIncidentAlert = "round.incident.alert"
	RoutingKeySignedOff     = "round.signed_off"
	RoutingKeyReminder      = "scheduler.round.reminder"
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()

		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

// declareTopology 声明交换机和队列，幂等操作
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for topology: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		ExchangeRounds,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeRounds, err)
	}

	// 延迟交换机，依赖 rabbitmq_delayed_message_exchange 插件
	if err := ch.ExchangeDeclare(
		ExchangeScheduler,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp.Table{"x-delayed-type": "topic"},
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeScheduler, err)
	}

	if _, err := ch.QueueDeclare(QueueIncidentAlert, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueueIncidentAlert, err)
	}
	if err := ch.QueueBind(QueueIncidentAlert, "round.incident.*", ExchangeRounds, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", QueueIncidentAlert, err)
	}

	if _, err := ch.QueueDeclare(QueueRoundReminder, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueueRoundReminder, err)
	}
	if err := ch.QueueBind(QueueRoundReminder, RoutingKeyReminder, ExchangeScheduler, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", QueueRoundReminder, err)
	}

	return nil
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
