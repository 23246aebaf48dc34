package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"beatledger/application"
	"beatledger/cmd"
	"beatledger/config"
	"beatledger/database"
	"beatledger/domain/entities"
	"beatledger/domain/services"
	"beatledger/infrastructure"
	"beatledger/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error:", err)
		}
		return
	}

	// One-shot distribution run for a month
	if len(os.Args) > 1 && os.Args[1] == "distribute" {
		if err := handleDistributeCommand(); err != nil {
			log.Fatal("Distribution error:", err)
		}
		return
	}

	// Print a revenue breakdown report
	if len(os.Args) > 1 && os.Args[1] == "report" {
		if err := handleReportCommand(); err != nil {
			log.Fatal("Report error:", err)
		}
		return
	}

	// Inspect or update compensation settings
	if len(os.Args) > 1 && os.Args[1] == "settings" {
		if err := handleSettingsCommand(); err != nil {
			log.Fatal("Settings error:", err)
		}
		return
	}

	// Normal service operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Service error:", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: beatledger migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		if len(os.Args) < 4 {
			return fmt.Errorf("usage: beatledger migrate down <steps>")
		}
		return database.MigrateDown(os.Args[3])
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

func handleDistributeCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: beatledger distribute <YYYY-MM> [--preview]")
	}

	month, err := entities.ParseMonth(os.Args[2])
	if err != nil {
		return err
	}
	preview := len(os.Args) > 3 && os.Args[3] == "--preview"

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	service := application.NewDistributionService(repository.NewUnitOfWorkFactory(db))

	if preview {
		lines, err := service.Preview(ctx, month)
		if err != nil {
			return err
		}
		fmt.Printf("Distribution preview for %s (%d producers):\n", month, len(lines))
		for _, line := range lines {
			growth := fmt.Sprintf("%+.1f%%", line.GrowthPct)
			if line.IsNewSeller() {
				growth = "new"
			}
			fmt.Printf("  %s  share=%s bonus=%s total=%s growth=%s\n",
				line.ProducerID, line.MembershipShare, line.GrowthBonus, line.TotalEarnings, growth)
		}
		return nil
	}

	records, err := service.Execute(ctx, month)
	if err != nil {
		return err
	}
	fmt.Printf("Distribution executed for %s: %d records posted\n", month, len(records))
	return nil
}

func handleReportCommand() error {
	timeframe := entities.TimeframeMonth
	if len(os.Args) > 2 {
		timeframe = entities.Timeframe(os.Args[2])
	}

	var producerID *uuid.UUID
	if len(os.Args) > 3 {
		id, err := uuid.Parse(os.Args[3])
		if err != nil {
			return fmt.Errorf("invalid producer id %q: %w", os.Args[3], err)
		}
		producerID = &id
	}

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	service := services.NewRevenueReportService(repository.NewRevenueEventRepository(db), nil, nil)

	breakdown, err := service.GetRevenueBreakdown(ctx, producerID, timeframe)
	if err != nil {
		return err
	}

	fmt.Printf("Total revenue: %s (pending %s)\n", breakdown.TotalRevenue, breakdown.PendingTotal)
	for _, summary := range breakdown.SourceSummaries {
		fmt.Printf("  %-28s %-10s %8s  %5.1f%%  (%d events)\n",
			summary.Source.DisplayName(), summary.Status, summary.Amount, summary.PercentageOfTotal, summary.Count)
	}
	fmt.Println("Monthly series:")
	for _, bucket := range breakdown.MonthlySeries {
		fmt.Printf("  %s  %s\n", bucket.Month.Label(), bucket.Amount)
	}
	for _, pending := range breakdown.PendingPayments {
		fmt.Printf("  pending %s due %s\n", pending.Amount, pending.ExpectedSettlement.Format("2006-01-02"))
	}
	return nil
}

func handleSettingsCommand() error {
	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	service := services.NewCompensationSettingsService(
		repository.NewCompensationSettingsRepository(db),
		infrastructure.NewRoleAuthorizer(cfg.CompensationAdminIDs),
	)

	if len(os.Args) > 2 && os.Args[2] == "set" {
		if len(os.Args) < 6 {
			return fmt.Errorf("usage: beatledger settings set <actor-id> <rate> <value>")
		}

		actorID, err := uuid.Parse(os.Args[3])
		if err != nil {
			return fmt.Errorf("invalid actor id %q: %w", os.Args[3], err)
		}
		value, err := decimal.NewFromString(os.Args[5])
		if err != nil {
			return fmt.Errorf("invalid rate value %q: %w", os.Args[5], err)
		}

		settings, err := service.Get(ctx)
		if err != nil {
			return err
		}
		if err := applyRate(settings, os.Args[4], value); err != nil {
			return err
		}
		if err := service.Update(ctx, actorID, settings); err != nil {
			return err
		}
		fmt.Printf("Compensation settings updated: %s = %s\n", os.Args[4], value)
		return nil
	}

	settings, err := service.Get(ctx)
	if err != nil {
		return err
	}
	printSettings(settings)
	return nil
}

// applyRate sets one named rate field on a settings version
func applyRate(settings *entities.CompensationSettings, name string, value decimal.Decimal) error {
	switch name {
	case "standard_rate":
		settings.StandardRate = value
	case "exclusive_rate":
		settings.ExclusiveRate = value
	case "sync_fee_rate":
		settings.SyncFeeRate = value
	case "custom_sync_rate":
		settings.CustomSyncRate = value
	case "no_sales_bucket_rate":
		settings.NoSalesBucketRate = value
	case "growth_bonus_rate":
		settings.GrowthBonusRate = value
	case "no_sale_bonus_rate":
		settings.NoSaleBonusRate = value
	case "processing_fee_pct":
		settings.ProcessingFeePct = value
	case "minimum_withdrawal":
		settings.MinimumWithdrawal = value
	default:
		return fmt.Errorf("unknown rate %q", name)
	}
	return nil
}

func printSettings(settings *entities.CompensationSettings) {
	fmt.Println("Compensation settings:")
	fmt.Printf("  standard_rate:        %s%%\n", settings.StandardRate)
	fmt.Printf("  exclusive_rate:       %s%%\n", settings.ExclusiveRate)
	fmt.Printf("  sync_fee_rate:        %s%%\n", settings.SyncFeeRate)
	fmt.Printf("  custom_sync_rate:     %s%%\n", settings.CustomSyncRate)
	fmt.Printf("  no_sales_bucket_rate: %s%%\n", settings.NoSalesBucketRate)
	fmt.Printf("  growth_bonus_rate:    %s%%\n", settings.GrowthBonusRate)
	fmt.Printf("  no_sale_bonus_rate:   %s%%\n", settings.NoSaleBonusRate)
	fmt.Printf("  holding_period_days:  %d\n", settings.HoldingPeriodDays)
	fmt.Printf("  minimum_withdrawal:   %s\n", settings.MinimumWithdrawal)
	fmt.Printf("  processing_fee_pct:   %s%%\n", settings.ProcessingFeePct)
}
