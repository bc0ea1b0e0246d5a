package report

import (
	"errors"
	"fmt"
	"time"

	"solarsmart/internal/calculator"
	"solarsmart/internal/model"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// fontFamily is embedded as UTF-8 TTF so Turkish glyphs (ş, ı, ğ, İ)
// survive; the PDF core fonts only cover cp1252.
const fontFamily = "gofont"

// Proposal is everything printed on a customer proposal.
type Proposal struct {
	CustomerName string
	Location     model.Location
	Input        model.CalculationInput
	Settings     model.Settings
	Result       *model.CalculationResult
	Breakdown    *calculator.Breakdown
	GeneratedAt  time.Time
}

// RenderProposal lays the proposal out as a single-page PDF.
func RenderProposal(p Proposal) ([]byte, error) {
	if p.Result == nil {
		return nil, errors.New("proposal has no result")
	}
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = time.Now()
	}

	fonts, err := repository.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, goregular.TTF).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, gobold.TTF).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Italic, goitalic.TTF).
		AddUTF8FontFromBytes(fontFamily, fontstyle.BoldItalic, gobolditalic.TTF).
		Load()
	if err != nil {
		return nil, fmt.Errorf("load proposal fonts: %w", err)
	}

	cfg := config.NewBuilder().
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 10}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, "Solar Energy Proposal", props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Left}),
		text.NewCol(4, p.GeneratedAt.Format("2006-01-02"), props.Text{Size: 10, Align: align.Right, Top: 4}),
	)
	if p.CustomerName != "" {
		m.AddRow(10, text.NewCol(12, "Prepared for "+p.CustomerName, props.Text{Size: 11}))
	}

	section(m, "Your home")
	pair(m, "City", fmt.Sprintf("%s (%s, %.1f peak sun hours)", p.Location.Name, p.Location.Region.Label(), p.Location.Insolation()))
	pair(m, "Roof area", fmt.Sprintf("%.0f m²", p.Input.RoofArea))
	pair(m, "Roof orientation", fmt.Sprintf("%s (%.0f%% yield)", p.Input.Orientation.Label(), p.Input.Orientation.Factor()*100))
	pair(m, "Monthly bill", fmt.Sprintf("%.0f TL", p.Input.BillAmount))

	r := p.Result
	section(m, "Recommended system")
	pair(m, "System size", fmt.Sprintf("%.2f kWp", r.SystemSizeKW))
	pair(m, "Panels", fmt.Sprintf("%d x %.0f W", r.PanelCount, p.Settings.PanelWattage))
	pair(m, "Annual production", fmt.Sprintf("%.0f kWh", r.AnnualProduction))
	pair(m, "Annual consumption", fmt.Sprintf("%.0f kWh", r.AnnualConsumption))
	if p.Breakdown != nil && p.Breakdown.RoofLimited {
		m.AddRow(8, text.NewCol(12, "System size is limited by the available roof area.", props.Text{Size: 9, Style: fontstyle.Italic}))
	}

	section(m, "Investment")
	pair(m, "Total cost", fmt.Sprintf("$%.0f  /  %.0f TL", r.TotalCostUSD, r.TotalCostLocal))
	pair(m, "Monthly savings", fmt.Sprintf("%.0f TL", r.MonthlySavings))
	pair(m, "Payback period", fmt.Sprintf("%.1f years", r.ROIYears))
	pair(m, "CO2 avoided", fmt.Sprintf("%.2f t / year", r.CO2SavedTons))

	section(m, "Assumptions")
	m.AddRow(14,
		text.NewCol(12, fmt.Sprintf(
			"Exchange rate %.2f TL/USD, electricity %.2f TL/kWh, installed cost $%.0f/kW, "+
				"%.0f%% system efficiency, %.0f m² of roof per kW, %.2f kg CO2 per kWh.",
			p.Settings.UsdRate, p.Settings.ElectricityPrice, p.Settings.SystemCostPerKw,
			calculator.SystemEfficiency*100, calculator.RoofAreaPerKW, calculator.GridEmissionFactor,
		), props.Text{Size: 8}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render proposal: %w", err)
	}
	return doc.GetBytes(), nil
}

func section(m core.Maroto, title string) {
	m.AddRow(6, col.New(12))
	m.AddRow(10, text.NewCol(12, title, props.Text{Size: 13, Style: fontstyle.Bold}))
}

func pair(m core.Maroto, label, value string) {
	m.AddRow(7,
		text.NewCol(5, label, props.Text{Size: 10}),
		text.NewCol(7, value, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
}
