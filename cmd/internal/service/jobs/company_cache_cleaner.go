package jobs

import (
	"context"
	"farmregistry/cmd/internal/utils"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	// FoundTTL is how long a Receita registration is reused.
	FoundTTL = 10 * time.Hour
	// MissingTTL is how long a CNPJ unknown to Receita stays unknown.
	MissingTTL = 1 * time.Hour

	CleanInterval = 1 * time.Hour
)

type CompanyRepository interface {
	DeleteStale(foundBefore, missingBefore int64) (int64, error)
}

// CompanyCacheCleaner sweeps the CNPJ lookups behind the document helper so
// the producer form prefills from reasonably fresh Receita data.
type CompanyCacheCleaner struct {
	companyRepo CompanyRepository
	interval    time.Duration
}

func NewCompanyCacheCleaner(repo CompanyRepository) *CompanyCacheCleaner {
	return &CompanyCacheCleaner{companyRepo: repo, interval: CleanInterval}
}

func (c *CompanyCacheCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info("CNPJ lookup sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping CNPJ lookup sweeper...")
			return
		case <-ticker.C:
			c.sweep(utils.NowUTC())
		}
	}
}

func (c *CompanyCacheCleaner) sweep(now int64) {
	foundBefore := now - FoundTTL.Milliseconds()
	missingBefore := now - MissingTTL.Milliseconds()

	removed, err := c.companyRepo.DeleteStale(foundBefore, missingBefore)
	if err != nil {
		log.Errorf("Sweeper: failed to drop stale CNPJ lookups: %v", err)
		return
	}

	if removed > 0 {
		log.Infof("Sweeper: dropped %d stale CNPJ lookups", removed)
	}
}
