package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"puzzle-scoreboard-go/config"
	"puzzle-scoreboard-go/database"
	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/services"
)

// Backup tool for the scoreboard database.
//
//	go run ./cmd/backup                      create a backup
//	go run ./cmd/backup -list                list backups
//	go run ./cmd/backup -restore <timestamp> restore one (clears collections first)
func main() {
	list := flag.Bool("list", false, "list available backups")
	restore := flag.String("restore", "", "restore the backup with this timestamp")
	collections := flag.String("collections", "", "comma-separated collections to restore (default all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Configure(cfg.ToLoggingConfig())

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	backupService := services.NewBackupService(db, cfg.Backup.Dir)
	ctx := context.Background()

	switch {
	case *list:
		listBackups(backupService)
	case *restore != "":
		restoreBackup(ctx, backupService, *restore, *collections)
	default:
		createBackup(ctx, backupService, cfg)
	}
}

func createBackup(ctx context.Context, backupService *services.BackupService, cfg *config.Config) {
	fmt.Printf("Backing up to %s...\n", cfg.Backup.Dir)
	start := time.Now()

	if err := backupService.CreateBackup(ctx); err != nil {
		log.Fatalf("Backup failed: %v", err)
	}
	if err := backupService.CleanupOldBackups(cfg.Backup.RetentionDays); err != nil {
		log.Printf("Cleanup failed: %v", err)
	}

	fmt.Printf("Backup completed in %v\n", time.Since(start).Round(time.Second))
}

func listBackups(backupService *services.BackupService) {
	backups, err := backupService.ListBackups()
	if err != nil {
		log.Fatalf("Failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	for _, backup := range backups {
		fmt.Printf("%s  %s  %d KB  [%s]\n",
			backup.Timestamp,
			backup.CreatedAt.Format("2006-01-02 15:04:05"),
			backup.Size/1024,
			strings.Join(backup.Collections, ", "))
	}
}

func restoreBackup(ctx context.Context, backupService *services.BackupService, timestamp, collectionList string) {
	var collections []string
	for _, name := range strings.Split(collectionList, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			collections = append(collections, trimmed)
		}
	}

	fmt.Printf("Restoring backup %s (this clears the target collections)...\n", timestamp)
	start := time.Now()

	if err := backupService.RestoreBackup(ctx, timestamp, collections); err != nil {
		log.Fatalf("Restore failed: %v", err)
	}

	fmt.Printf("Restore completed in %v\n", time.Since(start).Round(time.Second))
}
