package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"puzzle-scoreboard-go/database"
	"puzzle-scoreboard-go/logging"
)

// BackupService dumps the scoreboard collections to JSON-lines files on
// disk and can restore them. Scores are entered by hand once a day, so a
// nightly dump is enough to recover from losing the database.
type BackupService struct {
	db          *database.MongoDB
	backupDir   string
	collections []string
	logger      *logging.Logger
}

// BackupInfo describes one backup on disk
type BackupInfo struct {
	Timestamp   string    `json:"timestamp"`
	CreatedAt   time.Time `json:"createdAt"`
	Size        int64     `json:"size"`
	Collections []string  `json:"collections"`
}

const backupDirPrefix = "backup_"

func NewBackupService(db *database.MongoDB, backupDir string) *BackupService {
	return &BackupService{
		db:          db,
		backupDir:   backupDir,
		collections: []string{"scores", "config", "users"},
		logger:      logging.WithPrefix("BackupService"),
	}
}

// CreateBackup writes every collection to a timestamped directory
func (bs *BackupService) CreateBackup(ctx context.Context) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	backupPath := filepath.Join(bs.backupDir, backupDirPrefix+timestamp)

	if err := os.MkdirAll(backupPath, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, name := range bs.collections {
		count, err := bs.dumpCollection(ctx, name, backupPath)
		if err != nil {
			return fmt.Errorf("failed to back up collection %s: %w", name, err)
		}
		bs.logger.Infof("Backed up %d documents from %s", count, name)
	}

	if err := bs.writeMetadata(backupPath, timestamp); err != nil {
		bs.logger.Warnf("Failed to write backup metadata: %v", err)
	}

	bs.logger.Infof("Backup completed at %s", backupPath)
	return nil
}

func (bs *BackupService) dumpCollection(ctx context.Context, name, backupPath string) (int, error) {
	cursor, err := bs.db.GetCollection(name).Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	file, err := os.Create(filepath.Join(backupPath, name+".json"))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	count := 0
	for cursor.Next(ctx) {
		var document bson.M
		if err := cursor.Decode(&document); err != nil {
			return count, err
		}
		if err := encoder.Encode(document); err != nil {
			return count, err
		}
		count++
	}
	return count, cursor.Err()
}

func (bs *BackupService) writeMetadata(backupPath, timestamp string) error {
	file, err := os.Create(filepath.Join(backupPath, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{
		"timestamp":   timestamp,
		"createdAt":   time.Now().UTC().Format(time.RFC3339),
		"collections": bs.collections,
	})
}

// RestoreBackup clears the named collections and reloads them from the
// backup taken at timestamp. With no collections given it restores all of
// them.
func (bs *BackupService) RestoreBackup(ctx context.Context, timestamp string, collections []string) error {
	backupPath := filepath.Join(bs.backupDir, backupDirPrefix+timestamp)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", backupPath)
	}

	if len(collections) == 0 {
		collections = bs.collections
	}

	for _, name := range collections {
		count, err := bs.restoreCollection(ctx, name, backupPath)
		if err != nil {
			return fmt.Errorf("failed to restore collection %s: %w", name, err)
		}
		bs.logger.Infof("Restored %d documents to %s", count, name)
	}

	bs.logger.Infof("Restore completed from %s", backupPath)
	return nil
}

func (bs *BackupService) restoreCollection(ctx context.Context, name, backupPath string) (int, error) {
	file, err := os.Open(filepath.Join(backupPath, name+".json"))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	collection := bs.db.GetCollection(name)
	bs.logger.Warnf("Clearing collection %s before restore", name)
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, err
	}

	decoder := json.NewDecoder(file)
	var batch []interface{}
	count := 0
	for decoder.More() {
		var document bson.M
		if err := decoder.Decode(&document); err != nil {
			return count, err
		}
		batch = append(batch, document)
		count++

		if len(batch) >= 500 {
			if _, err := collection.InsertMany(ctx, batch); err != nil {
				return count, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if _, err := collection.InsertMany(ctx, batch); err != nil {
			return count, err
		}
	}
	return count, nil
}

// ListBackups returns the backups found in the backup directory, newest
// last by directory name
func (bs *BackupService) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(bs.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), backupDirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Timestamp:   strings.TrimPrefix(entry.Name(), backupDirPrefix),
			CreatedAt:   info.ModTime(),
			Size:        directorySize(filepath.Join(bs.backupDir, entry.Name())),
			Collections: bs.collections,
		})
	}
	return backups, nil
}

// CleanupOldBackups removes backup directories older than retentionDays
func (bs *BackupService) CleanupOldBackups(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	entries, err := os.ReadDir(bs.backupDir)
	if err != nil {
		return fmt.Errorf("failed to read backup directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), backupDirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(bs.backupDir, entry.Name())); err != nil {
			bs.logger.Warnf("Failed to remove old backup %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	if removed > 0 {
		bs.logger.Infof("Removed %d backups older than %d days", removed, retentionDays)
	}
	return nil
}

// StartScheduler runs a daily backup at backupTime (HH:MM local) followed
// by retention cleanup, until ctx is cancelled
func (bs *BackupService) StartScheduler(ctx context.Context, backupTime string, retentionDays int) {
	bs.logger.Infof("Backup scheduler started: daily at %s, retention %d days", backupTime, retentionDays)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		var lastBackupDate string
		for {
			select {
			case <-ctx.Done():
				bs.logger.Info("Backup scheduler stopped")
				return
			case <-ticker.C:
				now := time.Now()
				if now.Format("15:04") < backupTime || lastBackupDate == now.Format("2006-01-02") {
					continue
				}

				if err := bs.CreateBackup(ctx); err != nil {
					bs.logger.Errorf("Scheduled backup failed: %v", err)
					continue
				}
				lastBackupDate = now.Format("2006-01-02")
				if err := bs.CleanupOldBackups(retentionDays); err != nil {
					bs.logger.Errorf("Backup cleanup failed: %v", err)
				}
			}
		}
	}()
}

func directorySize(path string) int64 {
	var total int64
	filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total
}
