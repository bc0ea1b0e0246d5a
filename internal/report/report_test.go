package report

import (
	"bytes"
	"compress/zlib"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"

	"solarsmart/internal/calculator"
	"solarsmart/internal/data"
	"solarsmart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLeads() []model.Lead {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	return []model.Lead{
		{
			ID: "l-1", FullName: "Zeynep Kaya", Phone: "0555", Email: "z@example.com",
			LocationID: 35, City: "İzmir", District: "Karşıyaka, merkez",
			BillAmount: 1200, RoofArea: 90, Orientation: model.OrientationSouthWest,
			SystemSizeKW: 3.15, PanelCount: 7, EstimatedCostUSD: 2363, EstimatedCostLocal: 76781, ROIYears: 5.2,
			Status: model.LeadStatusOfferSent, CreatedAt: created, UpdatedAt: created.Add(time.Hour),
		},
	}
}

func TestWriteLeadsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLeadsCSV(&buf, sampleLeads()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, leadHeader, records[0])

	row := records[1]
	assert.Equal(t, "l-1", row[0])
	assert.Equal(t, "2024-05-01T10:30:00Z", row[1])
	assert.Equal(t, "OfferSent", row[3])
	assert.Equal(t, "Karşıyaka, merkez", row[8])
	assert.Equal(t, "south_west", row[11])
	assert.Equal(t, "3.15", row[12])
	assert.Equal(t, "7", row[13])
	assert.Equal(t, "5.2", row[16])
}

func TestWriteLeadsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLeadsCSV(&buf, nil))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriteLeadsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "leads.csv")
	require.NoError(t, WriteLeadsCSVFile(path, sampleLeads()))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Zeynep Kaya")
}

func TestRenderProposal(t *testing.T) {
	ref := data.Default()
	calc := calculator.New(ref)
	in := model.CalculationInput{LocationID: 7, RoofArea: 120, Orientation: model.OrientationSouth, BillAmount: 1500}
	b, err := calc.Breakdown(in, model.DefaultSettings())
	require.NoError(t, err)
	loc, err := ref.Location(7)
	require.NoError(t, err)

	pdf, err := RenderProposal(Proposal{
		CustomerName: "Ali Veli",
		Location:     loc,
		Input:        in,
		Settings:     model.DefaultSettings(),
		Result:       b.Result(),
		Breakdown:    b,
		GeneratedAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Greater(t, len(pdf), 1000)

	_, err = RenderProposal(Proposal{})
	assert.Error(t, err)
}

func TestRenderProposalKeepsTurkishText(t *testing.T) {
	ref := data.Default()
	in := model.CalculationInput{LocationID: 63, RoofArea: 80, Orientation: model.OrientationSouthEast, BillAmount: 900}
	b, err := calculator.New(ref).Breakdown(in, model.DefaultSettings())
	require.NoError(t, err)
	loc, err := ref.Location(63)
	require.NoError(t, err)
	require.Equal(t, "Şanlıurfa", loc.Name)

	pdf, err := RenderProposal(Proposal{
		CustomerName: "Ayşe Yıldız",
		Location:     loc,
		Input:        in,
		Settings:     model.DefaultSettings(),
		Result:       b.Result(),
		Breakdown:    b,
		GeneratedAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	content := pdfContent(pdf)
	for _, s := range []string{"Şanlıurfa", "Ayşe Yıldız"} {
		assert.True(t, bytes.Contains(content, utf16be(s)), "%q not found in page content", s)
	}
}

// pdfContent returns the raw document followed by every stream that
// inflates, so text is searchable whether or not compression is on.
func pdfContent(pdf []byte) []byte {
	out := append([]byte(nil), pdf...)
	rest := pdf
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			return out
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("\nendstream"))
		if end < 0 {
			return out
		}
		if zr, err := zlib.NewReader(bytes.NewReader(rest[:end])); err == nil {
			if raw, err := io.ReadAll(zr); err == nil {
				out = append(out, raw...)
			}
			_ = zr.Close()
		}
		rest = rest[end+len("\nendstream"):]
	}
}

// utf16be matches how UTF-8 fonts write text into content streams.
func utf16be(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 0, len(units)*2)
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}
	return b
}
