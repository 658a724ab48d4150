package app

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"airquality-server/internal/config"
	"airquality-server/internal/modules/airquality/types"
)

const testCSV = `No,year,month,day,hour,PM2.5,PM10,SO2,NO2,CO,O3,TEMP,PRES,DEWP,RAIN,WSPM,station
1,2013,3,1,0,10,20,1,1,1,1,1,1000,1,0,1,A
2,2013,3,1,1,20,20,1,1,1,1,2,1001,2,0,2,A
3,2013,3,1,2,30,20,1,1,1,1,3,1002,3,0,3,A
`

func testConfig(t *testing.T, source string) config.Config {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "main_data.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return config.Config{
		DataSource:         source,
		DataPath:           csvPath,
		SQLiteDriver:       "sqlite3",
		SQLitePath:         filepath.Join(dir, "db", "airquality.db"),
		SQLiteMaxOpenConns: 1,
		SQLiteMaxIdleConns: 1,
		ChartMaxPoints:     100,
	}
}

func TestReport_csv(t *testing.T) {
	cfg := testConfig(t, config.DataSourceCSV)

	view, err := Report(context.Background(), cfg, types.PageHome)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if view.Overview == nil || view.Overview.Records != 3 {
		t.Fatalf("overview = %+v; want 3 records", view.Overview)
	}
}

func TestImport_thenReportFromSQLite(t *testing.T) {
	cfg := testConfig(t, config.DataSourceSQLite)
	ctx := context.Background()

	n, err := Import(ctx, cfg)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 3 {
		t.Fatalf("Import = %d; want 3", n)
	}

	// a second import replaces rather than appends
	if n, err := Import(ctx, cfg); err != nil || n != 3 {
		t.Fatalf("second Import = %d, %v; want 3, nil", n, err)
	}

	view, err := Report(ctx, cfg, types.PageTrends)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	pt, ok := view.Trends.Find("PM2.5")
	if !ok {
		t.Fatal("PM2.5 trend missing")
	}
	if math.Abs(pt.Slope.Float()-10) > 1e-9 {
		t.Errorf("slope = %v; want 10", pt.Slope)
	}
}

func TestImport_missingCSV(t *testing.T) {
	cfg := testConfig(t, config.DataSourceSQLite)
	cfg.DataPath = filepath.Join(t.TempDir(), "absent.csv")

	if _, err := Import(context.Background(), cfg); !errors.Is(err, types.ErrDataUnavailable) {
		t.Fatalf("Import error = %v; want ErrDataUnavailable", err)
	}
}

func TestMigrate_createsDatabase(t *testing.T) {
	cfg := testConfig(t, config.DataSourceSQLite)

	if err := Migrate(context.Background(), cfg); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := os.Stat(cfg.SQLitePath); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	if err := Migrate(context.Background(), cfg); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
