package mock

import (
	"fmt"
	"sync"

	"github.com/personal-finance/tracker-api/config"
	"github.com/personal-finance/tracker-api/internal/infra/db"
)

var (
	dbOnce sync.Once
	shared *Db
)

// Db is the in-memory SQLite database shared by every scenario.
type Db struct {
	Database *db.Database
	tables   []string
}

// NewDb opens the shared database once and migrates the models.
// Tables are cleared in the given order, so dependents come first.
func NewDb(name string, tables []string, models ...any) *Db {
	dbOnce.Do(func() {
		database, err := db.NewConnection(&config.DatabaseConfig{
			Driver: config.DriverSQLite,
			URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		})
		if err != nil {
			panic("failed to connect to database. err: " + err.Error())
		}
		if err := database.AutoMigrate(models...); err != nil {
			panic("failed to migrate database. err: " + err.Error())
		}
		shared = &Db{Database: database, tables: tables}
	})

	return shared
}

// ClearDB deletes every row of every table.
func (d *Db) ClearDB() error {
	for _, table := range d.tables {
		if err := d.Database.DB().Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Count returns the number of rows in table matching the optional condition.
func (d *Db) Count(table string, query string, args ...any) (int64, error) {
	tx := d.Database.DB().Table(table)
	if query != "" {
		tx = tx.Where(query, args...)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Rows returns the rows of table matching the condition as column maps.
func (d *Db) Rows(table string, query string, args ...any) ([]map[string]any, error) {
	tx := d.Database.DB().Table(table)
	if query != "" {
		tx = tx.Where(query, args...)
	}

	var rows []map[string]any
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
