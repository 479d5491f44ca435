package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/schedflow/schedflow/pkg/tabular"
)

func sampleView() *tabular.Table {
	view := tabular.New("Operation Code", "Segment", "Rate")
	view.Append(
		tabular.Row{"Operation Code": "OP-1", "Segment": "S1", "Rate": json.Number("2.5")},
		tabular.Row{"Operation Code": "OP-2", "Segment": nil, "Rate": json.Number("1")},
	)
	return view
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	_, err = ParseFormat("html")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml", "out.xlsx"))
	assert.Equal(t, FormatXLSX, DetectFormat("", "bom.xlsx"))
	assert.Equal(t, FormatCSV, DetectFormat("", "orders.CSV"))
	assert.Equal(t, FormatJSON, DetectFormat("", "view.json"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{Indent: "  "}).Format(&buf, sampleView()))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "OP-1", rows[0]["Operation Code"])
	assert.Nil(t, rows[1]["Segment"])
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Format(&buf, sampleView()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Operation Code,Segment,Rate", lines[0])
	assert.Equal(t, "OP-1,S1,2.5", lines[1])
	assert.Equal(t, "OP-2,,1", lines[2])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, sampleView()))
	assert.Contains(t, buf.String(), "Operation Code: OP-1")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, sampleView()))
	assert.Contains(t, buf.String(), "OP-1")
	assert.Contains(t, strings.ToUpper(buf.String()), "OPERATION CODE")
}

func TestXLSXFormatterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&XLSXFormatter{Sheet: "BOM"}).Format(&buf, sampleView()))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows("BOM")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Operation Code", "Segment", "Rate"}, rows[0])
	assert.Equal(t, "OP-1", rows[1][0])
}

func TestPrettyHeader(t *testing.T) {
	assert.Equal(t, "Operation Code", PrettyHeader("Operation Code"))
	assert.Equal(t, "Duration Minutes", PrettyHeader("Duration_Minutes"))
}
