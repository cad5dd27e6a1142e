package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/adapter"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name   string
		config adapter.Config
		want   string
	}{
		{
			name:   "defaults",
			config: adapter.Config{Database: "shop"},
			want:   "tcp(127.0.0.1:3306)/shop",
		},
		{
			name: "credentials and timeout",
			config: adapter.Config{
				Host: "db.internal", Port: 3307, Database: "shop",
				Username: "app", Password: "secret", ConnectTimeout: 5 * time.Second,
			},
			want: "app:secret@tcp(db.internal:3307)/shop?timeout=5s",
		},
		{
			name:   "options become params",
			config: adapter.Config{Database: "shop", Options: map[string]string{"autocommit": "true"}},
			want:   "tcp(127.0.0.1:3306)/shop?autocommit=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(tt.config))
		})
	}
}

func TestTableMetadata(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM information_schema.COLUMNS").
		WithArgs("shop", "orders").
		WillReturnRows(sqlmock.NewRows([]string{
			"COLUMN_NAME", "COLUMN_TYPE", "IS_NULLABLE", "ORDINAL_POSITION", "COLUMN_KEY", "EXTRA",
		}).
			AddRow("id", "bigint unsigned", "NO", 1, "PRI", "auto_increment").
			AddRow("total", "decimal(10,2)", "YES", 2, "", "").
			AddRow("total_cents", "bigint", "YES", 3, "", "STORED GENERATED"))

	a := New(nil)
	a.DB = db
	a.Cfg = adapter.Config{Database: "shop"}

	md, err := a.TableMetadata(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, "shop", md.Schema)
	require.Len(t, md.Columns, 3)
	assert.True(t, md.Columns[0].PrimaryKey)
	assert.True(t, md.Columns[1].Nullable)
	assert.True(t, md.Columns[2].ReadOnly)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM information_schema.TABLES").
		WithArgs("reporting").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("daily"))

	a := New(nil)
	a.DB = db
	a.Cfg = adapter.Config{Database: "shop", Schema: "reporting"}

	names, err := a.TableNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"daily"}, names)
}
