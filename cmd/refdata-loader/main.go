package main

import (
	"context"
	"flag"
	"os"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/config"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/geography"
	"github.com/inab-certh/K3-ticket-management-system/pkg/icd10"
	"github.com/inab-certh/K3-ticket-management-system/pkg/lookups"
	"github.com/inab-certh/K3-ticket-management-system/pkg/refdata"
	"github.com/sirupsen/logrus"
)

func main() {
	logger.Init()
	cfg := config.Load()

	geographyPath := flag.String("geography", cfg.GeographyCSV, "path to the geography CSV")
	icd10Path := flag.String("icd10", cfg.ICD10CSV, "path to the ICD-10 CSV")
	catalogPath := flag.String("lookups", cfg.LookupCatalog, "path to the lookup YAML catalog")
	skipGeography := flag.Bool("skip-geography", false, "skip the geography load")
	skipICD10 := flag.Bool("skip-icd10", false, "skip the ICD-10 load")
	skipLookups := flag.Bool("skip-lookups", false, "skip the lookup load")
	flag.Parse()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	ctx := context.Background()

	if !*skipGeography {
		repo := geography.NewRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).Fatal("failed to migrate geography tables")
		}
		loadGeography(ctx, repo, *geographyPath)
	}

	if !*skipICD10 {
		repo := icd10.NewRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).Fatal("failed to migrate icd10 tables")
		}
		loadICD10(ctx, repo, *icd10Path)
	}

	if !*skipLookups {
		repo := lookups.NewRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).Fatal("failed to migrate lookup tables")
		}
		loadLookups(ctx, repo, *catalogPath)
	}
}

func loadGeography(ctx context.Context, repo *geography.Repository, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Warn("geography csv not readable, skipping")
		return
	}
	defer f.Close()

	rows, err := refdata.ParseGeographyCSV(f)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to parse geography csv")
	}

	loaded, failed := refdata.PopulateGeography(ctx, repo, rows)
	regions, units, municipalities, err := repo.Counts(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("failed to count geography tables")
	}
	logger.Log.WithFields(logrus.Fields{
		"loaded":         loaded,
		"failed":         failed,
		"regions":        regions,
		"units":          units,
		"municipalities": municipalities,
	}).Info("geography load complete")
}

func loadICD10(ctx context.Context, repo *icd10.Repository, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Warn("icd10 csv not readable, skipping")
		return
	}
	defer f.Close()

	rows, err := refdata.ParseICD10CSV(f)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to parse icd10 csv")
	}

	loaded, failed := refdata.PopulateICD10(ctx, repo, rows)
	categories, subcategories, codes, err := repo.Counts(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("failed to count icd10 tables")
	}
	logger.Log.WithFields(logrus.Fields{
		"loaded":        loaded,
		"failed":        failed,
		"categories":    categories,
		"subcategories": subcategories,
		"codes":         codes,
	}).Info("icd10 load complete")
}

func loadLookups(ctx context.Context, repo *lookups.Repository, path string) {
	catalog, err := refdata.LoadCatalog(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load lookup catalog")
	}

	loaded, failed := refdata.PopulateLookups(ctx, repo, catalog)
	logger.Log.WithFields(logrus.Fields{
		"loaded": loaded,
		"failed": failed,
	}).Info("lookup load complete")
}
