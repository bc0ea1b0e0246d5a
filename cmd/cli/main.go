package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"solarsmart/internal/analysis"
	"solarsmart/internal/auth"
	"solarsmart/internal/calculator"
	"solarsmart/internal/config"
	"solarsmart/internal/data"
	"solarsmart/internal/model"
	"solarsmart/internal/report"
	"solarsmart/internal/store"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "calc":
		err = cmdCalc(os.Args[2:])
	case "rank":
		err = cmdRank(os.Args[2:])
	case "cities":
		err = cmdCities(os.Args[2:])
	case "export-leads":
		err = cmdExportLeads(os.Args[2:])
	case "hash-password":
		err = cmdHashPassword(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli calc --city antalya --roof-area 120 --orientation south --bill 1500 [--settings settings.yaml] [--explain] [--json]")
	fmt.Println("  cli rank --roof-area 120 --bill 1500 [--orientation south] [--limit 5]")
	fmt.Println("  cli cities [--catalog cities.yaml] [--out cities.yaml]")
	fmt.Println("  cli export-leads --out leads.csv [--status New]")
	fmt.Println("  cli hash-password <password>")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --city takes a plate code (7) or a slug (antalya)")
	fmt.Println("  - export-leads opens the store configured for the API (DATABASE_URL or SQLITE_PATH)")
}

// common flags shared by the sizing commands
type sizingFlags struct {
	catalog     string
	settings    string
	roofArea    float64
	bill        float64
	orientation string
}

func (f *sizingFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.catalog, "catalog", "", "Location catalog YAML (default: built-in)")
	fs.StringVarP(&f.settings, "settings", "s", "", "Settings YAML overriding the defaults")
	fs.Float64VarP(&f.roofArea, "roof-area", "r", 0, "Usable roof area in m²")
	fs.Float64VarP(&f.bill, "bill", "b", 0, "Average monthly electricity bill (TL)")
	fs.StringVarP(&f.orientation, "orientation", "o", "south", "Roof orientation (south, south_east, south_west, east, west, north)")
}

func (f *sizingFlags) load() (*data.Provider, model.Settings, model.Orientation, error) {
	ref := data.Default()
	if f.catalog != "" {
		p, err := data.LoadLocations(f.catalog)
		if err != nil {
			return nil, model.Settings{}, 0, err
		}
		ref = p
	}
	s, err := config.LoadSettings(f.settings)
	if err != nil {
		return nil, model.Settings{}, 0, err
	}
	o, err := model.ParseOrientation(f.orientation)
	if err != nil {
		return nil, model.Settings{}, 0, err
	}
	return ref, s, o, nil
}

func cmdCalc(args []string) error {
	fs := pflag.NewFlagSet("calc", pflag.ExitOnError)
	var sf sizingFlags
	sf.register(fs)
	city := fs.StringP("city", "c", "", "Location plate code or slug")
	explain := fs.Bool("explain", false, "Print every intermediate value")
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	_ = fs.Parse(args)

	if *city == "" {
		return fmt.Errorf("--city is required")
	}
	ref, settings, o, err := sf.load()
	if err != nil {
		return err
	}
	loc, err := resolveCity(ref, *city)
	if err != nil {
		return err
	}

	in := model.CalculationInput{
		LocationID:  loc.ID,
		RoofArea:    sf.roofArea,
		Orientation: o,
		BillAmount:  sf.bill,
	}
	b, err := calculator.New(ref).Breakdown(in, settings)
	if err != nil {
		return err
	}
	res := b.Result()

	if *asJSON {
		out := map[string]any{"location": loc, "result": res, "settings": settings}
		if *explain {
			out["breakdown"] = b
		}
		return printJSON(out)
	}

	fmt.Printf("%s (%s, %.1f h peak sun), %s roof %.0f m², bill %.0f TL/month\n",
		loc.Name, loc.Region.Label(), loc.Insolation(), o.Label(), in.RoofArea, in.BillAmount)
	fmt.Printf("  system size      %.2f kW (%d x %.0f W)\n", res.SystemSizeKW, res.PanelCount, settings.PanelWattage)
	fmt.Printf("  production       %.0f kWh/yr (consumption %.0f kWh/yr)\n", res.AnnualProduction, res.AnnualConsumption)
	fmt.Printf("  cost             $%.0f / %.0f TL\n", res.TotalCostUSD, res.TotalCostLocal)
	fmt.Printf("  payback          %.1f years\n", res.ROIYears)
	fmt.Printf("  monthly savings  %.0f TL\n", res.MonthlySavings)
	fmt.Printf("  CO2 avoided      %.2f t/yr\n", res.CO2SavedTons)
	if b.RoofLimited {
		fmt.Println("  note: system is capped by roof area")
	}
	if *explain {
		fmt.Println("")
		fmt.Printf("  effective sun    %.4f h/day (factor %.2f)\n", b.EffectiveSunHours, b.DirectionFactor)
		fmt.Printf("  monthly kWh      %.4f\n", b.MonthlyKWh)
		fmt.Printf("  required kW      %.4f\n", b.RequiredCapacityKW)
		fmt.Printf("  roof max kW      %.4f\n", b.MaxCapacityByRoofKW)
		fmt.Printf("  final kW         %.4f\n", b.FinalSizeKW)
		fmt.Printf("  production kWh   %.4f\n", b.AnnualProduction)
		fmt.Printf("  annual savings   %.4f\n", b.AnnualSavings)
		fmt.Printf("  ROI years        %.4f\n", b.ROIYears)
	}
	return nil
}

func cmdRank(args []string) error {
	fs := pflag.NewFlagSet("rank", pflag.ExitOnError)
	var sf sizingFlags
	sf.register(fs)
	limit := fs.IntP("limit", "n", 0, "Show only the top N locations (0=all)")
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	_ = fs.Parse(args)

	ref, settings, o, err := sf.load()
	if err != nil {
		return err
	}
	ranked, err := analysis.RankLocations(calculator.New(ref), ref.Locations(), sf.roofArea, sf.bill, o, settings)
	if err != nil {
		return err
	}
	if *limit > 0 && *limit < len(ranked) {
		ranked = ranked[:*limit]
	}

	if *asJSON {
		type row struct {
			Rank     int                      `json:"rank"`
			Location model.Location           `json:"location"`
			Result   *model.CalculationResult `json:"result,omitempty"`
			Error    string                   `json:"error,omitempty"`
		}
		rows := make([]row, len(ranked))
		for i, r := range ranked {
			rows[i] = row{Rank: i + 1, Location: r.Location, Result: r.Result}
			if r.Err != nil {
				rows[i].Error = r.Err.Error()
			}
		}
		return printJSON(rows)
	}
	fmt.Printf("%-4s %-14s %-22s %-8s %-10s %-8s\n", "rank", "location", "region", "kW", "kWh/yr", "roi")
	for i, r := range ranked {
		if r.Err != nil {
			fmt.Printf("%-4d %-14s %-22s %v\n", i+1, r.Location.Name, r.Location.Region.Label(), r.Err)
			continue
		}
		fmt.Printf("%-4d %-14s %-22s %-8.2f %-10.0f %-8.1f\n",
			i+1,
			r.Location.Name,
			r.Location.Region.Label(),
			r.Result.SystemSizeKW,
			r.Result.AnnualProduction,
			r.Result.ROIYears,
		)
	}
	return nil
}

func cmdCities(args []string) error {
	fs := pflag.NewFlagSet("cities", pflag.ExitOnError)
	catalog := fs.String("catalog", "", "Location catalog YAML (default: built-in)")
	out := fs.String("out", "", "Write the catalog as YAML to this path")
	_ = fs.Parse(args)

	ref := data.Default()
	if *catalog != "" {
		p, err := data.LoadLocations(*catalog)
		if err != nil {
			return err
		}
		ref = p
	}

	if *out != "" {
		if err := data.SaveLocations(ref, *out, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}
		fmt.Printf("Wrote %d locations to %s\n", len(ref.Locations()), *out)
		return nil
	}

	fmt.Printf("%-4s %-14s %-14s %-22s %-6s\n", "id", "name", "slug", "region", "sun")
	for _, l := range ref.Locations() {
		fmt.Printf("%-4d %-14s %-14s %-22s %-6.1f\n", l.ID, l.Name, l.Slug, l.Region.Label(), l.Insolation())
	}
	return nil
}

func cmdExportLeads(args []string) error {
	fs := pflag.NewFlagSet("export-leads", pflag.ExitOnError)
	out := fs.StringP("out", "o", "leads.csv", "Output CSV path")
	status := fs.String("status", "", "Only leads in this status")
	limit := fs.Int("limit", 0, "Maximum number of leads (0=store default)")
	_ = fs.Parse(args)

	filter := model.LeadFilter{Limit: *limit}
	if *status != "" {
		s, err := model.ParseLeadStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = s
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Options{DatabaseURL: cfg.DatabaseURL, SQLitePath: cfg.SQLitePath}, zap.NewNop())
	if err != nil {
		return err
	}
	defer st.Close()

	leads, err := st.ListLeads(ctx, filter)
	if err != nil {
		return err
	}
	if err := report.WriteLeadsCSVFile(*out, leads); err != nil {
		return err
	}
	fmt.Printf("Wrote %d leads to %s\n", len(leads), *out)
	return nil
}

func cmdHashPassword(args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: cli hash-password <password>")
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func resolveCity(ref *data.Provider, city string) (model.Location, error) {
	if id, err := strconv.Atoi(city); err == nil {
		return ref.Location(id)
	}
	return ref.LocationBySlug(city)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
