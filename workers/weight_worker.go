package workers

import (
	"context"
	"fmt"
	"math"
	"time"

	"livestock-app/metrics"
	"livestock-app/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var growingStatuses = []models.LivestockStatus{
	models.LivestockHealthy,
	models.LivestockSick,
	models.LivestockUnidentified,
	models.LivestockWaitingExport,
}

// WeightUpdateWorker recomputes the estimated weight of livestock still on the farm.
type WeightUpdateWorker struct {
	db         *gorm.DB
	cron       *cron.Cron
	schedule   string
	defaultKg  float64
	logger     *zap.Logger
	now        func() time.Time
	batchSize  int
	runTimeout time.Duration
}

func NewWeightUpdateWorker(db *gorm.DB, schedule string, defaultKg float64, logger *zap.Logger) *WeightUpdateWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeightUpdateWorker{
		db:         db,
		cron:       cron.New(),
		schedule:   schedule,
		defaultKg:  defaultKg,
		logger:     logger,
		now:        time.Now,
		batchSize:  200,
		runTimeout: 10 * time.Minute,
	}
}

func (w *WeightUpdateWorker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return fmt.Errorf("schedule weight update %q: %w", w.schedule, err)
	}
	w.logger.Info("starting weight update worker", zap.String("schedule", w.schedule))
	w.cron.Start()
	return nil
}

func (w *WeightUpdateWorker) Stop() {
	w.logger.Info("stopping weight update worker")
	<-w.cron.Stop().Done()
}

func (w *WeightUpdateWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.runTimeout)
	defer cancel()

	updated, err := w.RunOnce(ctx)
	if err != nil {
		w.logger.Error("weight update failed", zap.Error(err))
		return
	}
	w.logger.Info("weight update finished", zap.Int("updated", updated))
}

// EstimateWeight adds the daily gain for every full day since the animal entered the farm.
func EstimateWeight(origin, dailyGain float64, since, at time.Time) float64 {
	days := math.Floor(at.Sub(since).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return math.Round((origin+days*dailyGain)*100) / 100
}

func (w *WeightUpdateWorker) RunOnce(ctx context.Context) (int, error) {
	now := w.now()

	gains := map[uint]float64{}
	species := []models.Species{}
	if err := w.db.WithContext(ctx).Find(&species).Error; err != nil {
		return 0, fmt.Errorf("load species: %w", err)
	}
	for _, s := range species {
		gains[s.ID] = s.GrowthRate
	}

	updated := 0
	batch := []models.Livestock{}
	result := w.db.WithContext(ctx).
		Where("status IN ?", growingStatuses).
		FindInBatches(&batch, w.batchSize, func(tx *gorm.DB, _ int) error {
			for _, l := range batch {
				gain := gains[l.SpeciesID]
				if gain <= 0 {
					gain = w.defaultKg
				}
				since := l.CreatedAt
				if l.ImportedAt != nil {
					since = *l.ImportedAt
				}
				estimate := EstimateWeight(l.WeightOrigin, gain, since, now)
				if estimate == l.WeightEstimate {
					continue
				}
				if err := w.db.WithContext(ctx).Model(&models.Livestock{}).Where("id = ?", l.ID).
					Updates(map[string]interface{}{
						"weight_estimate":   estimate,
						"weight_updated_at": now,
					}).Error; err != nil {
					return err
				}
				updated++
				metrics.WeightUpdates.Inc()
			}
			return nil
		})
	if result.Error != nil {
		return updated, fmt.Errorf("update weights: %w", result.Error)
	}
	return updated, nil
}
