package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/crimehours/internal/record"
)

func sampleIncidents() []record.Incident {
	return []record.Incident{
		{Year: 2015, Month: 1, Day: 1, HourBucket: record.Bucket12AM, Violent: true},
		{Year: 2015, Month: 1, Day: 2, HourBucket: record.Bucket7AM, Violent: true},
		{Year: 2015, Month: 1, Day: 2, HourBucket: record.Bucket7AM, Violent: true},
		{Year: 2015, Month: 6, Day: 9, HourBucket: record.Bucket9PM, Violent: true},
		{Year: 2015, Month: 6, Day: 9, HourBucket: record.Bucket9PM, Violent: false},
		{Year: 2016, Month: 1, Day: 1, HourBucket: record.Bucket1AM, Violent: true},
	}
}

func TestCollect(t *testing.T) {
	fig := Collect(sampleIncidents(), []int{2015, 2016})

	require.Len(t, fig.Grids, 2)
	assert.Equal(t, 2015, fig.Grids[0].Year)
	assert.Equal(t, 2, fig.Grids[0].Months[0].Count(record.Bucket7AM))
	assert.Equal(t, 1, fig.Grids[0].Months[5].Count(record.Bucket9PM))

	require.Len(t, fig.January, 2)
	assert.Equal(t, 3, fig.January[0].All.Total())
	assert.Equal(t, 2, fig.January[0].WithoutFirstDay.Total())
	assert.Equal(t, 0, fig.January[1].WithoutFirstDay.Total())
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "crime-by-month-hour-2015.png", YearFileName(2015))
	assert.Equal(t, "crime-january-sensitivity.png", JanuaryFileName)
	assert.Equal(t, "crime-by-month-hour.xlsx", WorkbookFileName)
}

func TestTickLabels(t *testing.T) {
	labels := tickLabels()
	require.Len(t, labels, record.NumHourBuckets)
	assert.Equal(t, "7AM", labels[0])
	assert.Equal(t, "", labels[1])
	assert.Equal(t, "10AM", labels[3])
	assert.Equal(t, "4AM", labels[21])
}

func TestPNGRender(t *testing.T) {
	dir := t.TempDir()
	fig := Collect(sampleIncidents(), []int{2015, 2016})

	paths, err := PNG{OutDir: dir}.Render(fig)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "crime-by-month-hour-2015.png"),
		filepath.Join(dir, "crime-by-month-hour-2016.png"),
		filepath.Join(dir, "crime-january-sensitivity.png"),
	}, paths)

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), p)
	}
}

func TestPNGRenderMissingDir(t *testing.T) {
	fig := Collect(sampleIncidents(), []int{2015})
	_, err := PNG{OutDir: filepath.Join(t.TempDir(), "missing")}.Render(fig)
	assert.Error(t, err)
}

func TestWorkbookRender(t *testing.T) {
	dir := t.TempDir()
	fig := Collect(sampleIncidents(), []int{2015, 2016})

	paths, err := Workbook{OutDir: dir}.Render(fig)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "crime-by-month-hour.xlsx")}, paths)

	f, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2015", "2016", "January"}, f.GetSheetList())

	v, err := f.GetCellValue("2015", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Month", v)

	v, err = f.GetCellValue("2015", "B1")
	require.NoError(t, err)
	assert.Equal(t, "7AM", v)

	v, err = f.GetCellValue("2015", "A2")
	require.NoError(t, err)
	assert.Equal(t, "January", v)

	// B2 is January 7AM.
	v, err = f.GetCellValue("2015", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	// Z2 is the January total.
	v, err = f.GetCellValue("2015", "Z2")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	v, err = f.GetCellValue("January", "A3")
	require.NoError(t, err)
	assert.Equal(t, "January 2015, Without Jan 1", v)
}
