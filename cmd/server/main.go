// Package main wires together the corpus store, the ranking engine, and
// the reference HTTP surface, then serves until shutdown.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/antoinebou12/horaire-search/internal/buildinfo"
	"github.com/antoinebou12/horaire-search/internal/config"
	"github.com/antoinebou12/horaire-search/internal/corpus/snapshot"
	"github.com/antoinebou12/horaire-search/internal/corpus/store"
	"github.com/antoinebou12/horaire-search/internal/httpapi"
	"github.com/antoinebou12/horaire-search/internal/logger"
	"github.com/antoinebou12/horaire-search/internal/metrics"
	"github.com/antoinebou12/horaire-search/internal/readiness"
	"github.com/antoinebou12/horaire-search/internal/search"
	ownsentry "github.com/antoinebou12/horaire-search/internal/sentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
		Version:             buildinfo.Version,
	})

	sentryRelease := cfg.SentryRelease
	if sentryRelease == "" {
		sentryRelease = buildinfo.Version
	}

	if cfg.IsSentryEnabled() {
		if err := ownsentry.Initialize(ownsentry.Config{
			Token:       cfg.SentryToken,
			Host:        cfg.SentryHost,
			Environment: cfg.SentryEnvironment,
			Release:     sentryRelease,
			SampleRate:  cfg.SentrySampleRate,
			Debug:       cfg.SentryDebug,
		}); err != nil {
			log.WithError(err).Error("sentry initialization failed")
		}
		defer ownsentry.Flush(config.SentryFlushTimeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	gate := readiness.New()
	engine := search.NewEngine(log, m)

	hotSwapDB, err := store.NewHotSwapDB(ctx, cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("failed to open corpus store")
		os.Exit(1)
	}
	defer func() { _ = hotSwapDB.Close() }()

	if cfg.IsR2Enabled() {
		objStore, err := snapshot.NewObjectStore(ctx, snapshot.ObjectStoreConfig{
			Endpoint:    cfg.R2Endpoint(),
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2BucketName,
		})
		if err != nil {
			log.WithError(err).Error("failed to initialize object store")
			os.Exit(1)
		}
		snapMgr := snapshot.New(objStore, snapshot.Config{
			SnapshotKey:  cfg.R2SnapshotKey,
			LockKey:      cfg.R2LockKey,
			LockTTL:      cfg.R2LockTTL,
			PollInterval: cfg.R2PollInterval,
			TempDir:      cfg.DataDir,
		})

		if dbPath, etag, err := snapMgr.DownloadSnapshot(ctx, cfg.DataDir); err == nil {
			if err := hotSwapDB.Swap(ctx, dbPath); err != nil {
				log.WithError(err).Warn("failed to load downloaded snapshot")
			} else {
				snapMgr.SetCurrentETag(etag)
			}
		} else {
			log.WithError(err).Warn("no remote snapshot available at startup")
		}

		snapMgr.StartPolling(ctx, hotSwapDB, cfg.DataDir)
		defer snapMgr.StopPolling()
	}

	engine.Refresh(hotSwapDB)
	gate.SetReady(true)

	refreshTicker := time.NewTicker(cfg.CorpusRefreshInterval)
	defer refreshTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-refreshTicker.C:
				engine.Refresh(hotSwapDB)
			}
		}
	}()

	server := httpapi.New(cfg, engine, m, gate, log)
	if err := server.Run(ctx); err != nil {
		log.WithError(err).Error("server exited with error")
		os.Exit(1)
	}
}
