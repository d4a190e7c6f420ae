package figure

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens-labs/datalens/internal/chart"
	"github.com/datalens-labs/datalens/internal/dataset"
)

const sampleCSV = "age,income,score,city,segment\n" +
	"30,50000,0.2,Paris,retail\n" +
	"40,60000,0.4,Lyon,retail\n" +
	"50,70000,0.6,Paris,wholesale\n" +
	"60,80000,0.8,Lyon,wholesale\n"

func loadStore(t *testing.T, csv string) *dataset.Store {
	t.Helper()

	st, err := dataset.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	_, err = st.LoadFile(context.Background(), path)
	require.NoError(t, err)
	return st
}

func TestBuild_Histogram(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindHistogram, X: "age", Title: "Histogram of age",
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "histogram", fig.Data[0]["type"])
	assert.Len(t, fig.Data[0]["x"], 4)
	assert.Equal(t, defaultHeight, fig.Layout["height"])
}

func TestBuild_HistogramColored_AddsBoxMarginal(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindHistogram, X: "age", Color: "city", Marginal: "box",
	})
	require.NoError(t, err)

	// One histogram and one marginal box per color group.
	require.Len(t, fig.Data, 4)
	assert.Equal(t, "histogram", fig.Data[0]["type"])
	assert.Equal(t, "box", fig.Data[2]["type"])
	assert.Equal(t, "y2", fig.Data[2]["yaxis"])
	assert.Equal(t, "overlay", fig.Layout["barmode"])
}

func TestBuild_Scatter_CategoricalColor(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindScatter, X: "age", Y: "income", Color: "city",
	})
	require.NoError(t, err)

	// One trace per city, first-seen order.
	require.Len(t, fig.Data, 2)
	assert.Equal(t, "Paris", fig.Data[0]["name"])
	assert.Equal(t, "Lyon", fig.Data[1]["name"])
}

func TestBuild_Scatter_NumericColorUsesColorScale(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindScatter, X: "age", Y: "income", Color: "score",
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	marker, ok := fig.Data[0]["marker"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Viridis", marker["colorscale"])
	assert.Equal(t, true, marker["showscale"])
}

func TestBuild_ScatterMatrix(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindScatterMatrix, Columns: []string{"age", "income", "score"},
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "splom", fig.Data[0]["type"])
	dims, ok := fig.Data[0]["dimensions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, dims, 3)
	assert.Equal(t, "age", dims[0]["label"])
}

func TestBuild_Violin_GroupedShowsBoxAndPoints(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindViolin, Y: "income", X: "segment", Color: "segment",
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	for _, tr := range fig.Data {
		assert.Equal(t, "violin", tr["type"])
		assert.Equal(t, map[string]any{"visible": true}, tr["box"])
		assert.Equal(t, "all", tr["points"])
	}
}

func TestBuild_Count(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindCount, X: "city",
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "histogram", fig.Data[0]["type"])
}

func TestBuild_Heatmap(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindCorrelationHeatmap, Columns: []string{"age", "income", "score"},
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "heatmap", tr["type"])
	assert.Equal(t, []string{"age", "income", "score"}, tr["x"])

	z, ok := tr["z"].([][]any)
	require.True(t, ok)
	require.Len(t, z, 3)
	// age and income move together in the sample data.
	assert.InDelta(t, 1.0, z[0][1].(float64), 1e-9)
}

func TestBuild_HeatmapConstantColumnIsNull(t *testing.T) {
	st := loadStore(t, "a,b\n1,7\n2,7\n3,7\n")

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindCorrelationHeatmap, Columns: []string{"a", "b"},
	})
	require.NoError(t, err)

	z := fig.Data[0]["z"].([][]any)
	assert.Nil(t, z[0][1])

	// The whole figure must survive JSON marshaling for Plotly.react.
	_, err = json.Marshal(fig)
	require.NoError(t, err)
}

func TestBuild_Sunburst(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindSunburst, Path: []string{"city", "segment"},
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "sunburst", tr["type"])
	assert.Equal(t, "total", tr["branchvalues"])

	ids := tr["ids"].([]string)
	labels := tr["labels"].([]string)
	parents := tr["parents"].([]string)
	values := tr["values"].([]float64)

	// Two roots plus four leaf combinations.
	require.Len(t, ids, 6)
	assert.Equal(t, "Lyon", labels[0])
	assert.Equal(t, "", parents[0])
	assert.Equal(t, 2.0, values[0])

	// Leaf ids are the joined path; parents point at the previous depth.
	assert.Equal(t, "Lyon"+idSep+"retail", ids[2])
	assert.Equal(t, "Lyon", parents[2])
	assert.Equal(t, "retail", labels[2])
	assert.Equal(t, 1.0, values[2])
}

func TestBuild_TreemapWithValueColumn(t *testing.T) {
	st := loadStore(t, sampleCSV)

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindTreemap, Path: []string{"city"}, ValueColumn: "income",
	})
	require.NoError(t, err)

	tr := fig.Data[0]
	assert.Equal(t, "treemap", tr["type"])

	labels := tr["labels"].([]string)
	values := tr["values"].([]float64)
	require.Equal(t, []string{"Lyon", "Paris"}, labels)
	assert.Equal(t, 140000.0, values[0])
	assert.Equal(t, 120000.0, values[1])
}

func TestBuild_TreemapAllNullGroupCountsAsZero(t *testing.T) {
	st := loadStore(t, "city,income\nLyon,\nLyon,\nParis,100\nParis,40\n")

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindTreemap, Path: []string{"city"}, ValueColumn: "income",
	})
	require.NoError(t, err)

	tr := fig.Data[0]
	labels := tr["labels"].([]string)
	values := tr["values"].([]float64)
	require.Equal(t, []string{"Lyon", "Paris"}, labels)
	assert.Equal(t, 0.0, values[0])
	assert.Equal(t, 140.0, values[1])
}

func TestBuild_TimeSeries(t *testing.T) {
	st := loadStore(t, "day,sales\n2024-01-01,10\n2024-01-02,12\n2024-01-03,9\n")

	fig, err := Build(context.Background(), st, &chart.Spec{
		Kind: chart.KindTimeSeries, X: "day", Y: "sales",
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "lines", fig.Data[0]["mode"])
	assert.Len(t, fig.Data[0]["x"], 3)
}
