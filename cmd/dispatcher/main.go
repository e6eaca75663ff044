package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medmate/internal/app/deps"
	"medmate/internal/app/services"
	"medmate/internal/core/domain/logging"
	dispatchdueoccurrences "medmate/internal/core/services/dispatch_due_occurrences"

	"github.com/robfig/cron/v3"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	scheduler := cron.New(cron.WithLocation(time.UTC))
	_, err := scheduler.AddFunc(deps.Config.DispatchCronSpec, func() {
		ctx := context.Background()
		log.Debug(ctx, "Launching due occurrences dispatching.")
		result, err := services.DispatchDueOccurrences.Run(ctx, dispatchdueoccurrences.Input{})
		if err != nil {
			log.Error(ctx, "Dispatching service returned an error.", logging.Entry("err", err))
			return
		}
		log.Info(
			ctx,
			"Due occurrences dispatched.",
			logging.Entry("due", result.DueCount),
			logging.Entry("dispatched", result.DispatchedCount),
		)
	})
	if err != nil {
		log.Error(
			context.Background(),
			"Invalid dispatch schedule.",
			logging.Entry("spec", deps.Config.DispatchCronSpec),
			logging.Entry("err", err),
		)
		return
	}

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic occurrence dispatcher.",
		logging.Entry("spec", deps.Config.DispatchCronSpec),
		logging.Entry("lookback", deps.Config.DispatchLookback.String()),
	)
	scheduler.Start()

	<-stopCh
	log.Info(context.Background(), "Stopping periodic occurrence dispatcher.")
	<-scheduler.Stop().Done()
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
