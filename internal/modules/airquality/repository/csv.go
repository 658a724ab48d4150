package repository

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"airquality-server/internal/modules/airquality/types"
)

// missingValues are the CSV cell spellings treated as a missing measurement.
var missingValues = []string{"NA", "NaN", "nan", ""}

type csvRepository struct {
	path string
}

// NewCSVRepository reads observations from the CSV file at path.
func NewCSVRepository(path string) ObservationRepository {
	return &csvRepository{path: path}
}

func (r *csvRepository) LoadObservations(ctx context.Context) ([]types.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", types.ErrDataUnavailable, r.path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return rows, nil
}

func columnTypes() map[string]series.Type {
	out := map[string]series.Type{
		types.ColumnNo:      series.Int,
		types.ColumnStation: series.String,
	}
	for _, name := range types.MeasurementColumns() {
		out[name] = series.Float
	}
	return out
}

// ReadCSV parses a dataset with a header row. Extra columns are ignored.
// Unparseable measurement cells are treated as missing.
func ReadCSV(r io.Reader) ([]types.Observation, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes()),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", types.ErrDataUnavailable, df.Err)
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	required := append([]string{types.ColumnNo, types.ColumnStation}, types.MeasurementColumns()...)
	for _, name := range required {
		if !present[name] {
			return nil, fmt.Errorf("%w: missing column %q", types.ErrDataUnavailable, name)
		}
	}

	nos, err := df.Col(types.ColumnNo).Int()
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %v", types.ErrDataUnavailable, types.ColumnNo, err)
	}
	stations := df.Col(types.ColumnStation).Records()

	rows := make([]types.Observation, df.Nrow())
	for i := range rows {
		rows[i].No = nos[i]
		rows[i].Station = stations[i]
	}
	for _, name := range types.MeasurementColumns() {
		values := df.Col(name).Float()
		for i := range rows {
			rows[i].SetValue(name, values[i])
		}
	}
	return rows, nil
}
