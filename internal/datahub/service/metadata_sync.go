package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pmn-sn/datahub/internal/datahub/store"
)

// MetadataSyncService periodically refreshes the metadata lookup sets from
// the artisan records, so values added by imports or manual entry show up in
// the filter dropdowns without a separate metadata import. Upserts are
// set-semantic, so repeated sweeps never accumulate duplicates; values no
// longer referenced by any artisan are intentionally left in place.
type MetadataSyncService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewMetadataSyncService creates the sync worker. If interval is 0 or
// negative, defaults to 1 hour.
func NewMetadataSyncService(st store.Store, logger *slog.Logger, interval time.Duration) *MetadataSyncService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &MetadataSyncService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *MetadataSyncService) Start() {
	go s.run()
	s.Logger.Info("metadata sync service started", "interval", s.Interval)
}

// Stop gracefully shuts down the worker, blocking until any in-progress
// sweep finishes.
func (s *MetadataSyncService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("metadata sync service stopped")
}

func (s *MetadataSyncService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup.
	if err := s.Sync(context.Background()); err != nil {
		s.Logger.Error("metadata sync failed", "err", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := s.Sync(context.Background()); err != nil {
				s.Logger.Error("metadata sync failed", "err", err)
			}
		case <-s.stopCh:
			return
		}
	}
}

// Sync performs one sweep: read the distinct location/trade tuples present
// in the directory and upsert each level. Parent-less values are skipped at
// the levels that require parents, mirroring the import rules.
func (s *MetadataSyncService) Sync(ctx context.Context) error {
	tuples, err := s.Store.Artisans().MetadataTuples(ctx)
	if err != nil {
		return err
	}

	md := s.Store.Metadata()
	for _, t := range tuples {
		if t.Region != "" {
			if err := md.UpsertRegion(ctx, t.Region); err != nil {
				return err
			}
		}
		if t.Departement != "" && t.Region != "" {
			if err := md.UpsertDepartement(ctx, t.Departement, t.Region); err != nil {
				return err
			}
		}
		if t.Commune != "" && t.Departement != "" && t.Region != "" {
			if err := md.UpsertCommune(ctx, t.Commune, t.Departement, t.Region); err != nil {
				return err
			}
		}
		if t.Quartier != "" && t.Commune != "" && t.Departement != "" && t.Region != "" {
			if err := md.UpsertQuartier(ctx, t.Quartier, t.Commune, t.Departement, t.Region); err != nil {
				return err
			}
		}
		if t.Filiere != "" {
			if err := md.UpsertFiliere(ctx, t.Filiere); err != nil {
				return err
			}
		}
		if t.Metier != "" && t.Filiere != "" {
			if err := md.UpsertMetier(ctx, t.Metier, t.Filiere); err != nil {
				return err
			}
		}
	}

	return nil
}
