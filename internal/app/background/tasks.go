package background

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/config"
	"github.com/zyra-app/zyra-change-service/internal/domain"
	publisher "github.com/zyra-app/zyra-change-service/internal/infrastructure/kafka"
	changeuc "github.com/zyra-app/zyra-change-service/internal/usecase/change"
)

// MerchantLister feeds the autopilot loop the merchants with autopilot-eligible
// pending work. Backed by the change repository in production.
type MerchantLister interface {
	MerchantsWithPendingAgentChanges() ([]string, error)
}

type BackgroundTasks struct {
	ChangeUsecase changeuc.ChangeUsecase
	Merchants     MerchantLister
	Subscriber    domain.SubscriberPort
	Cfg           *config.ChangeConfig
}

func NewBackgroundTasks(changeUC changeuc.ChangeUsecase, merchants MerchantLister, subscriber domain.SubscriberPort, cfg *config.ChangeConfig) *BackgroundTasks {
	return &BackgroundTasks{
		ChangeUsecase: changeUC,
		Merchants:     merchants,
		Subscriber:    subscriber,
		Cfg:           cfg,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startAutopilotLoop(ctx)
	go bt.startPendingSweep(ctx)
	go bt.startMeasurementIntake(ctx)
}

func (bt *BackgroundTasks) startAutopilotLoop(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.Autopilot.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			merchants, err := bt.Merchants.MerchantsWithPendingAgentChanges()
			if err != nil {
				log.Printf("Autopilot merchant scan error: %v\n", err)
				continue
			}
			for _, merchantID := range merchants {
				if err := bt.ChangeUsecase.RunAutopilotPass(ctx, merchantID); err != nil {
					log.Printf("Autopilot pass error for merchant %s: %v\n", merchantID, err)
				}
			}
		}
	}
}

func (bt *BackgroundTasks) startPendingSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.Autopilot.SweepInterval)
	defer ticker.Stop()

	olderThanHours := int(bt.Cfg.Autopilot.PendingTTL.Hours())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.ChangeUsecase.ExpireStalePending(ctx, olderThanHours); err != nil {
				log.Printf("Pending sweep error: %v\n", err)
			}
		}
	}
}

// startMeasurementIntake consumes impact measurements from the analytics
// process and attaches them to terminal records.
func (bt *BackgroundTasks) startMeasurementIntake(ctx context.Context) {
	if bt.Subscriber == nil {
		return
	}

	messages, err := bt.Subscriber.Subscribe(bt.Cfg.KafkaService.MeasurementsTopic, bt.Cfg.KafkaService.MeasurementsGroup)
	if err != nil {
		log.Printf("Failed to subscribe to measurements: %v\n", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var measurement publisher.ImpactMeasurement
			if err := json.Unmarshal(msg.Value, &measurement); err != nil {
				log.Printf("Bad measurement payload: %v\n", err)
				continue
			}
			err := bt.ChangeUsecase.ApplyMeasurement(measurement.ChangeID, domain.Impact{
				Amount:     measurement.Amount,
				Currency:   measurement.Currency,
				Confidence: measurement.Confidence,
			})
			if err != nil {
				log.Printf("Failed to apply measurement for change %s: %v\n", measurement.ChangeID, err)
			}
		}
	}
}
