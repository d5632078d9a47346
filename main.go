package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"m3u-reader/config"
	"m3u-reader/logger"
	"m3u-reader/scan"
	"m3u-reader/updater"

	"github.com/goccy/go-json"
)

// recordWriter serialises records as JSON lines. Scheduled scans may emit
// while another emit is in flight, hence the lock.
type recordWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newRecordWriter(w io.Writer) *recordWriter {
	return &recordWriter{enc: json.NewEncoder(w)}
}

// write emits every record and reports how many results failed.
func (rw *recordWriter) write(results []*scan.Result) int {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	failed := 0
	for _, result := range results {
		resultFailed := result.Err != nil
		for _, record := range result.Records {
			if err := rw.enc.Encode(record); err != nil {
				logger.Default.Errorf("Error writing record %s from %s: %v", record.Location, record.Source, err)
				resultFailed = true
			}
		}
		if resultFailed {
			failed++
		}
	}
	return failed
}

// run scans the playlists named in args ("-" or nothing means stdin) using
// the global config and returns the process exit code. With SYNC_CRON set it
// keeps rescanning the files until ctx is done.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) int {
	cfg := config.GetConfig()
	scanner := scan.New(cfg)
	out := newRecordWriter(stdout)

	var (
		paths    []string
		useStdin = len(args) == 0
	)
	for _, arg := range args {
		if arg == "-" {
			useStdin = true
			continue
		}
		paths = append(paths, arg)
	}

	failed := 0
	if useStdin {
		result, err := scanner.ScanReader("stdin", bufio.NewReaderSize(stdin, cfg.LineBufferBytes))
		if err != nil {
			logger.Default.Errorf("Error scanning playlist: %v", err)
			result.Err = err
		}
		failed += out.write([]*scan.Result{result})
	}

	if len(paths) == 0 {
		return exitCode(failed)
	}

	if cfg.SyncCron == "" {
		failed += out.write(scanner.ScanAll(ctx, paths))
		return exitCode(failed)
	}

	up, err := updater.Initialize(ctx, cfg, scanner, paths, func(results []*scan.Result) {
		out.write(results)
	})
	if err != nil {
		logger.Default.Errorf("Error starting scheduled scans: %v", err)
		return 1
	}

	logger.Default.Logf("Scheduled scans running on %q. Waiting for shutdown signal...", cfg.SyncCron)
	<-ctx.Done()
	up.Stop()
	logger.Default.Log("Shutdown complete.")

	return exitCode(failed)
}

func exitCode(failed int) int {
	if failed > 0 {
		return 1
	}
	return 0
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	config.SetConfig(config.LoadFromEnv())

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	cancel()
	os.Exit(code)
}
