package storage

import (
	"chronos/internal/providers"
	"chronos/internal/storage/interfaces"
	"chronos/internal/structures"
	"github.com/roylee0704/gron"
	"sync"
	"time"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Storage.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.save(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting documents: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted documents to file %s", s.config.Storage.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) save() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Storage.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return err
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Storage.FilePath)
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting documents to file...")
	if err := s.save(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting documents: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
