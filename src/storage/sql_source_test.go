package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE clean_data (
		"Order ID" TEXT, "Product" TEXT, "Quantity Ordered" INTEGER, "Price Each" REAL,
		"Order Date" TEXT, "Cat" TEXT, "City" TEXT, "lat" REAL, "long" REAL, "Month" TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO clean_data VALUES
		('1', 'Macbook Pro', 2, 1700, '2019-04-19 08:46:00', 'Ordinateur', 'Dallas', 32.77, -96.79, NULL),
		('2', 'AA Batteries', 3, 3.84, '2019-05-07 22:30:00', 'Accessoire', 'Boston', 42.36, -71.05, 'Mai')`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSourceFeedsRecordStore(t *testing.T) {
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "sqlite", DBPath: seedSQLite(t)}}
	src := NewSQLiteSource(cfg, logger.NewNopLogger())
	require.NoError(t, InitializeSQLite(context.Background(), src))
	defer src.Close()

	table, err := src.ReadTable(context.Background(), "clean_data")
	require.NoError(t, err)
	assert.Len(t, table.Header, 10)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0][9], "NULL reads as empty")

	store := NewRecordStore(src, []string{"Ordinateur", "Accessoire"}, logger.NewNopLogger())
	set, err := store.Load(context.Background(), "", "clean_data")
	require.NoError(t, err)
	require.Len(t, set.Clean, 2)
	assert.Equal(t, "3400", set.Clean[0].Sales().String())
	assert.Equal(t, "Mai", set.Clean[1].MonthLabel)
}

func TestSQLSourceRejectsBadIdentifiers(t *testing.T) {
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBPath: seedSQLite(t)}}
	src := NewSQLiteSource(cfg, logger.NewNopLogger())
	require.NoError(t, src.Initialize(context.Background()))
	defer src.Close()

	_, err := src.ReadTable(context.Background(), "clean_data; DROP TABLE clean_data")
	assert.Equal(t, "database", helpers.ErrorKind(err))
}

func TestSQLSourceNotInitialized(t *testing.T) {
	src := NewSQLiteSource(&models.MConfig{}, logger.NewNopLogger())
	_, err := src.ReadTable(context.Background(), "clean_data")
	assert.Error(t, err)
	assert.NoError(t, src.Close())
}

func TestMySQLQuotesWithBackticks(t *testing.T) {
	src := NewMySQLSource(&models.MConfig{}, logger.NewNopLogger())
	assert.Equal(t, "`clean_data`", src.quoteIdent("clean_data"))
	assert.Equal(t, "mysql", src.Name())

	pg := NewPostgresSource(&models.MConfig{}, "sales", logger.NewNopLogger())
	assert.Equal(t, `"clean_data"`, pg.quoteIdent("clean_data"))
	assert.Equal(t, "postgres", pg.Name())
}
