package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"gorm.io/gorm"
)

// BackupDatabase creates a SQL dump using mysqldump if it is on PATH.
// Extra flags (credentials, database name) come from DB_BACKUP_FLAGS.
func BackupDatabase(outPath string) error {
	if _, err := exec.LookPath("mysqldump"); err != nil {
		return fmt.Errorf("mysqldump not found in PATH: %w", err)
	}
	args := strings.Fields(os.Getenv("DB_BACKUP_FLAGS"))
	cmd := exec.CommandContext(context.Background(), "mysqldump", args...)
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	cmd.Stdout = outFile
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysqldump failed: %w", err)
	}
	return nil
}

// RunMigrationsWithBackup runs AutoMigrate after a best-effort backup when
// DB_BACKUP_PATH is set. The backup completes before the schema changes;
// a failed dump is logged but does not block migration.
func RunMigrationsWithBackup(db *gorm.DB, models ...interface{}) error {
	if backupPath := os.Getenv("DB_BACKUP_PATH"); backupPath != "" {
		if err := BackupDatabase(backupPath); err != nil {
			log.Printf("[database] pre-migration backup failed: %v", err)
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.AutoMigrate(models...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
