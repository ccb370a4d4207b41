// Command dashboard prints the registry dashboard of a running API: totals,
// the producer list (latest first) and the chart data.
package main

import (
	"context"
	"farmregistry/cmd/internal/config"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/infrastructure/producerapi"
	"farmregistry/cmd/internal/registry"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	apiURL := flag.String("api", cfg.ProducersAPIURL, "producer API base URL")
	query := flag.String("q", "", "only producers matching this text")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	charts := flag.Bool("charts", false, "also print chart data")
	flag.Parse()

	client, err := producerapi.NewClient(*apiURL, *timeout)
	if err != nil {
		log.Fatal(err)
	}

	store := registry.New(client)
	if err = store.Load(context.Background(), *query); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}

	state := store.State()
	render(os.Stdout, state, store.Summary(), *charts)
}

func render(w io.Writer, state registry.State, summary *contract.Summary, withCharts bool) {
	fmt.Fprintf(w, "Producers: %d\nTotal area: %.2f ha\n\n", summary.Quantity, summary.AreaTotal)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOCUMENT\tPRODUCER\tFARM\tCITY/UF\tTOTAL\tAGRI\tVEG\tCROPS")
	for _, p := range state.OrderedProducers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s/%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.CPFOrCNPJ, p.ProducerName, p.FarmName, p.City, p.State,
			hectares(p.TotalArea), hectares(p.AgriculturalArea), hectares(p.VegetationArea),
			strings.Join(p.Crops, ", "))
	}
	_ = tw.Flush()

	if !withCharts {
		return
	}

	for _, chart := range summary.Charts {
		fmt.Fprintf(w, "\n%s (%s)\n", chart.Title, chart.Type)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, entry := range chart.Data {
			fmt.Fprintf(tw, "  %s\t%g\n", entry.Category, entry.Value)
		}
		_ = tw.Flush()
	}
}

func hectares(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
