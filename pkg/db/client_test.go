package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type quoteRow struct {
	ID        int
	Reference string
}

// openMemoryDB gives each test its own named in-memory database; the shared
// cache keeps the schema visible across pooled connections.
func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&quoteRow{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func countQuotes(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&quoteRow{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	conn := openMemoryDB(t)
	client := &Client{conn: conn}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&quoteRow{Reference: "Q-2026-0001"}).Error
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if got := countQuotes(t, conn); got != 1 {
		t.Fatalf("expected the committed row, got %d rows", got)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	conn := openMemoryDB(t)
	client := &Client{conn: conn}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&quoteRow{Reference: "Q-2026-0002"}).Error; err != nil {
			return err
		}
		return errors.New("quote rejected")
	})
	if err == nil {
		t.Fatal("expected WithTx to surface the callback error")
	}
	if got := countQuotes(t, conn); got != 0 {
		t.Fatalf("expected rollback to discard the row, got %d rows", got)
	}
}

func TestPingReportsHealthy(t *testing.T) {
	client := &Client{conn: openMemoryDB(t)}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}
