package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"beatledger/application"
	"beatledger/config"
	"beatledger/database"
	"beatledger/domain/interfaces"
	"beatledger/infrastructure/observability"
	"beatledger/repository"
)

// transactionSources holds the deployment's registered source adapters.
// Each upstream billing system registers one adapter before Run is called.
var transactionSources []interfaces.TransactionSource

// RegisterTransactionSource adds a transaction source adapter to the
// ingestion collector
func RegisterTransactionSource(source interfaces.TransactionSource) {
	transactionSources = append(transactionSources, source)
}

// Run initializes and starts the revenue engine
func Run(ctx context.Context) error {
	log.Println("Starting revenue engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db)

	// Initialize distribution service and worker
	distributionService := application.NewDistributionService(uowFactory)
	distributionWorker := application.NewDistributionWorker(distributionService, metrics)
	stopWorker := distributionWorker.Start(ctx, cfg.DistributionRunDay, cfg.DistributionRunHour)

	// Initialize ingestion collector
	collector := application.NewCollector(
		uowFactory,
		transactionSources,
		time.Duration(cfg.CollectIntervalSeconds)*time.Second,
		metrics,
	)
	stopCollector := collector.Start(ctx)

	// Wait for context cancellation
	log.Printf("Revenue engine is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down revenue engine...")
	stopCollector()
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down metrics: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
