package updater

import (
	"context"
	"sync"

	"m3u-reader/config"
	"m3u-reader/logger"
	"m3u-reader/scan"

	"github.com/robfig/cron/v3"
)

const defaultCron = "0 0 * * *"

// EmitFunc receives the results of every completed scan.
type EmitFunc func(results []*scan.Result)

type Updater struct {
	sync.Mutex
	paths   []string
	emit    EmitFunc
	Cron    *cron.Cron
	Scanner *scan.Scanner
}

// Initialize schedules a rescan of paths on cfg.SyncCron and, if
// cfg.SyncOnBoot is set, starts one right away. A nil cfg means
// config.GetConfig(); a nil scanner gets built from cfg.
func Initialize(ctx context.Context, cfg *config.Config, scanner *scan.Scanner, paths []string, emit EmitFunc) (*Updater, error) {
	if cfg == nil {
		cfg = config.GetConfig()
	}
	if scanner == nil {
		scanner = scan.New(cfg)
	}

	cronSched := cfg.SyncCron
	if len(cronSched) == 0 {
		logger.Default.Log("SYNC_CRON not initialized. Defaulting to 0 0 * * * (12am every day).")
		cronSched = defaultCron
	}

	updateInstance := &Updater{
		paths:   paths,
		emit:    emit,
		Scanner: scanner,
	}

	c := cron.New()
	_, err := c.AddFunc(cronSched, func() {
		go updateInstance.UpdateSources(ctx)
	})
	if err != nil {
		logger.Default.Errorf("Error initializing background processes: %v", err)
		return nil, err
	}
	c.Start()
	updateInstance.Cron = c

	if cfg.SyncOnBoot {
		logger.Default.Log("SYNC_ON_BOOT enabled. Starting initial playlist scan.")
		go updateInstance.UpdateSources(ctx)
	}

	return updateInstance, nil
}

// UpdateSources rescans every playlist. Only one scan runs at a time.
func (instance *Updater) UpdateSources(ctx context.Context) {
	instance.Lock()
	defer instance.Unlock()

	select {
	case <-ctx.Done():
		return
	default:
	}

	logger.Default.Logf("Background process: Scanning %d playlist(s)...", len(instance.paths))
	results := instance.Scanner.ScanAll(ctx, instance.paths)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	logger.Default.Logf("Background process: Scan complete (%d ok, %d failed).", len(results)-failed, failed)

	if instance.emit != nil {
		instance.emit(results)
	}
}

// Stop stops the scheduler and waits for a running job to finish.
func (instance *Updater) Stop() {
	if instance.Cron != nil {
		<-instance.Cron.Stop().Done()
	}
	instance.Lock()
	defer instance.Unlock()
}
