package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens-labs/datalens/internal/schema"
)

func fullClassification() schema.Classification {
	return schema.Classification{
		Numeric:     []string{"age", "income", "score"},
		Categorical: []string{"city", "segment"},
		Temporal:    []string{"signup"},
		All:         []string{"age", "income", "score", "city", "segment", "signup"},
	}
}

func requireValidation(t *testing.T, err error, reason string) {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	assert.Equal(t, reason, verr.Reason)
}

func TestResolve_Histogram(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindHistogram, Selections{X: "age"}, c)
	require.NoError(t, err)
	assert.Equal(t, "age", spec.X)
	assert.Empty(t, spec.Color)
	assert.Empty(t, spec.Marginal)
	assert.Equal(t, "Histogram of age", spec.Title)
}

func TestResolve_HistogramColored_GetsBoxMarginal(t *testing.T) {
	spec, err := Resolve(KindHistogram, Selections{X: "age", Color: "city"}, fullClassification())
	require.NoError(t, err)
	assert.Equal(t, "city", spec.Color)
	assert.Equal(t, "box", spec.Marginal)
	assert.Equal(t, "Histogram of age grouped by city", spec.Title)
}

func TestResolve_Histogram_Errors(t *testing.T) {
	c := fullClassification()

	_, err := Resolve(KindHistogram, Selections{}, c)
	requireValidation(t, err, "select a numeric column")

	_, err = Resolve(KindHistogram, Selections{X: "city"}, c)
	requireValidation(t, err, `column "city" is not numeric`)

	_, err = Resolve(KindHistogram, Selections{X: "age", Color: "income"}, c)
	requireValidation(t, err, `color column "income" is not categorical`)

	_, err = Resolve(KindHistogram, Selections{X: "x"}, schema.Classification{Categorical: []string{"city"}})
	requireValidation(t, err, "requires numeric columns")
}

func TestResolve_Scatter(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindScatter, Selections{X: "age", Y: "income"}, c)
	require.NoError(t, err)
	assert.Equal(t, "age", spec.X)
	assert.Equal(t, "income", spec.Y)
	assert.Equal(t, "Scatter Plot: age vs income", spec.Title)

	// Color accepts any existing column, numeric or categorical.
	spec, err = Resolve(KindScatter, Selections{X: "age", Y: "income", Color: "score"}, c)
	require.NoError(t, err)
	assert.Equal(t, "score", spec.Color)

	spec, err = Resolve(KindScatter, Selections{X: "age", Y: "income", Color: "city"}, c)
	require.NoError(t, err)
	assert.Equal(t, "city", spec.Color)
}

func TestResolve_Scatter_Errors(t *testing.T) {
	c := fullClassification()

	_, err := Resolve(KindScatter, Selections{X: "age"}, c)
	requireValidation(t, err, "select X and Y columns")

	_, err = Resolve(KindScatter, Selections{X: "age", Y: "city"}, c)
	requireValidation(t, err, `column "city" is not numeric`)

	_, err = Resolve(KindScatter, Selections{X: "age", Y: "income", Color: "nope"}, c)
	requireValidation(t, err, `unknown color column "nope"`)

	_, err = Resolve(KindScatter, Selections{X: "age", Y: "age"}, schema.Classification{Numeric: []string{"age"}})
	requireValidation(t, err, "requires at least two numeric columns")
}

func TestResolve_ScatterMatrix(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindScatterMatrix, Selections{Columns: []string{"age", "income", "score"}}, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "income", "score"}, spec.Columns)

	_, err = Resolve(KindScatterMatrix, Selections{Columns: []string{"age"}}, c)
	requireValidation(t, err, "requires at least two columns")

	_, err = Resolve(KindScatterMatrix, Selections{Columns: []string{"age", "city"}}, c)
	requireValidation(t, err, `column "city" is not numeric`)

	two := schema.Classification{Numeric: []string{"a", "b"}}
	_, err = Resolve(KindScatterMatrix, Selections{Columns: []string{"a", "b"}}, two)
	requireValidation(t, err, "requires at least three numeric columns")
}

func TestResolve_Box(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindBox, Selections{X: "income"}, c)
	require.NoError(t, err)
	assert.Equal(t, "income", spec.Y)
	assert.Empty(t, spec.X)

	spec, err = Resolve(KindBox, Selections{X: "income", Group: "city"}, c)
	require.NoError(t, err)
	assert.Equal(t, "income", spec.Y)
	assert.Equal(t, "city", spec.X)
	assert.Equal(t, "Box Plot of income grouped by city", spec.Title)

	_, err = Resolve(KindBox, Selections{X: "income", Group: "age"}, c)
	requireValidation(t, err, `group column "age" is not categorical`)
}

func TestResolve_Violin_ColorsByGroup(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindViolin, Selections{X: "income", Group: "city"}, c)
	require.NoError(t, err)
	assert.Equal(t, "city", spec.X)
	assert.Equal(t, "city", spec.Color)

	spec, err = Resolve(KindViolin, Selections{X: "income"}, c)
	require.NoError(t, err)
	assert.Empty(t, spec.Color)
}

func TestResolve_Count(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindCount, Selections{X: "city"}, c)
	require.NoError(t, err)
	assert.Equal(t, "city", spec.X)

	_, err = Resolve(KindCount, Selections{X: "age"}, c)
	requireValidation(t, err, `column "age" is not categorical`)

	_, err = Resolve(KindCount, Selections{}, c)
	requireValidation(t, err, "select a categorical column")
}

func TestResolve_TimeSeries(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindTimeSeries, Selections{X: "signup", Y: "income"}, c)
	require.NoError(t, err)
	assert.Equal(t, "signup", spec.X)
	assert.Equal(t, "income", spec.Y)

	spec, err = Resolve(KindTimeSeries, Selections{X: "signup", Y: "income", Color: "city"}, c)
	require.NoError(t, err)
	assert.Equal(t, "city", spec.Color)

	_, err = Resolve(KindTimeSeries, Selections{X: "age", Y: "income"}, c)
	requireValidation(t, err, `column "age" is not a date column`)

	noTemporal := schema.Classification{Numeric: []string{"a"}}
	_, err = Resolve(KindTimeSeries, Selections{X: "a", Y: "a"}, noTemporal)
	requireValidation(t, err, "requires at least one date and one numeric column")
}

func TestResolve_Heatmap(t *testing.T) {
	spec, err := Resolve(KindCorrelationHeatmap, Selections{}, fullClassification())
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "income", "score"}, spec.Columns)

	_, err = Resolve(KindCorrelationHeatmap, Selections{}, schema.Classification{Categorical: []string{"city"}})
	requireValidation(t, err, "no numeric columns")
}

func TestResolve_Hierarchy(t *testing.T) {
	c := fullClassification()

	spec, err := Resolve(KindSunburst, Selections{Path: []string{"city", "segment"}}, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "segment"}, spec.Path)
	assert.Empty(t, spec.ValueColumn)
	assert.Equal(t, "Sunburst Chart", spec.Title)

	spec, err = Resolve(KindTreemap, Selections{Path: []string{"city"}, Values: "income"}, c)
	require.NoError(t, err)
	assert.Equal(t, "income", spec.ValueColumn)
	assert.Equal(t, "Treemap", spec.Title)

	_, err = Resolve(KindSunburst, Selections{}, c)
	requireValidation(t, err, "select columns for the hierarchy path")

	_, err = Resolve(KindSunburst, Selections{Path: []string{"age"}}, c)
	requireValidation(t, err, `path column "age" is not categorical`)

	_, err = Resolve(KindSunburst, Selections{Path: []string{"city"}, Values: "segment"}, c)
	requireValidation(t, err, `value column "segment" is not numeric`)

	one := schema.Classification{Categorical: []string{"city"}}
	_, err = Resolve(KindSunburst, Selections{Path: []string{"city"}}, one)
	requireValidation(t, err, "requires at least two categorical columns")
}

func TestResolve_UnknownKind(t *testing.T) {
	_, err := Resolve(KindUnknown, Selections{}, fullClassification())
	requireValidation(t, err, "unknown chart kind")
}

func TestResolve_Deterministic(t *testing.T) {
	c := fullClassification()
	sel := Selections{X: "age", Color: "city"}

	first, err := Resolve(KindHistogram, sel, c)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Resolve(KindHistogram, sel, c)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolve_DoesNotAliasSelections(t *testing.T) {
	c := fullClassification()
	sel := Selections{Path: []string{"city", "segment"}}

	spec, err := Resolve(KindSunburst, sel, c)
	require.NoError(t, err)

	sel.Path[0] = "mutated"
	assert.Equal(t, "city", spec.Path[0])
}

func TestDefaultSelections(t *testing.T) {
	c := fullClassification()

	assert.Equal(t, "age", DefaultSelections(KindHistogram, c).X)

	sc := DefaultSelections(KindScatter, c)
	assert.Equal(t, "age", sc.X)
	assert.Equal(t, "income", sc.Y)

	assert.Equal(t, []string{"age", "income", "score"}, DefaultSelections(KindScatterMatrix, c).Columns)
	assert.Equal(t, "city", DefaultSelections(KindCount, c).X)

	ts := DefaultSelections(KindTimeSeries, c)
	assert.Equal(t, "signup", ts.X)
	assert.Equal(t, "income", ts.Y)

	assert.Equal(t, []string{"city", "segment"}, DefaultSelections(KindSunburst, c).Path)

	// Empty classification yields empty defaults, never a panic.
	assert.Equal(t, Selections{}, DefaultSelections(KindScatter, schema.Classification{}))
}
