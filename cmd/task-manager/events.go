package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zadania-app/task-manager/internal/rabbitmq"
)

var eventsQueue string

// eventsCmd печатает в лог события задач из брокера.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Log task events published to RabbitMQ",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.EventsEnabled() {
			return errors.New("RABBITMQ_URL is not set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, 5, 2*time.Second)
		if err != nil {
			return err
		}
		defer conn.Close()

		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQExchange, rabbitmq.QueueConfig{
			QueueName:  eventsQueue,
			RoutingKey: rabbitmq.AllTaskEvents,
		})
		if err != nil {
			return err
		}
		defer ch.Close()

		logger.Info("listening for task events",
			slog.String("exchange", cfg.RabbitMQExchange),
			slog.String("queue", eventsQueue),
		)
		err = rabbitmq.ConsumeTaskEvents(ctx, ch, eventsQueue, func(msg rabbitmq.TaskEventMessage) error {
			logger.Info("task event",
				slog.String("type", string(msg.Type)),
				slog.Int64("task_id", msg.TaskID),
				slog.Time("occurred_at", msg.OccurredAt),
			)
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("event listener stopped")
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsQueue, "queue", "zadania.events.log", "queue bound to all task events")
	rootCmd.AddCommand(eventsCmd)
}
