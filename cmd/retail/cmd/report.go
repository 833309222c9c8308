package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/bootstrap"
	infrapdf "github.com/jhoicas/retail-analytics/internal/infrastructure/pdf"
)

type reportOptions struct {
	country string
	from    string
	to      string
	format  string
	out     string
	topN    int
	limit   int
}

func newReportCmd(rt *runtime) *cobra.Command {
	opts := &reportOptions{}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Exporta el dashboard filtrado a PDF o JSON",
		Long: `Carga el dataset configurado, aplica el filtro de país y fechas y escribe
el dashboard en PDF (default) o JSON.

Ejemplo:
  retail report --country France --from 2011-01-01 --to 2011-03-31
  retail report --format json --out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, rt, opts)
		},
	}

	f := reportCmd.Flags()
	f.StringVar(&opts.country, "country", analytics.AllCountries, "país exacto o 'All'")
	f.StringVar(&opts.from, "from", "", "fecha inicial YYYY-MM-DD (default: mínima del dataset)")
	f.StringVar(&opts.to, "to", "", "fecha final inclusive YYYY-MM-DD (default: máxima del dataset)")
	f.StringVar(&opts.format, "format", "pdf", "pdf | json")
	f.StringVarP(&opts.out, "out", "o", "", "archivo de salida; '-' = stdout; vacío = nombre sugerido")
	f.IntVar(&opts.topN, "top", analytics.DefaultTopN, "tamaño de rankings")
	f.IntVar(&opts.limit, "limit", analytics.DefaultRecentOrders, "pedidos recientes")

	return reportCmd
}

func runReport(cmd *cobra.Command, rt *runtime, opts *reportOptions) error {
	if opts.format != "pdf" && opts.format != "json" {
		return fmt.Errorf("formato no soportado: %q", opts.format)
	}
	ctx := cmd.Context()

	source, closeSource, err := bootstrap.OpenSource(ctx, rt.cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	dashboardUC := analytics.NewDashboardUseCase(source, rt.log.Component("dashboard"))
	if _, err := dashboardUC.Load(ctx); err != nil {
		return err
	}

	req := dto.DashboardRequest{
		Country: opts.country, StartDate: opts.from, EndDate: opts.to,
		TopN: opts.topN, Limit: opts.limit,
	}

	var (
		payload  []byte
		filename string
	)
	switch opts.format {
	case "pdf":
		reportUC := analytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoReportGenerator())
		payload, filename, err = reportUC.ExportPDF(ctx, req)
	case "json":
		var d *dto.DashboardDTO
		if d, err = dashboardUC.GetDashboard(ctx, req); err == nil {
			payload, err = json.MarshalIndent(d, "", "  ")
			filename = "retail-dashboard.json"
		}
	}
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = filename
	}
	if err := writeOutput(cmd.OutOrStdout(), out, payload); err != nil {
		return err
	}
	rt.log.Info().Str("out", out).Int("bytes", len(payload)).Msg("reporte exportado")
	return nil
}

// writeOutput escribe en stdout si out es "-", o en el archivo out.
func writeOutput(stdout io.Writer, out string, payload []byte) (err error) {
	if out == "-" {
		_, err = stdout.Write(payload)
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("crear %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cerrar %s: %w", out, cerr)
		}
	}()
	if _, err = f.Write(payload); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	return nil
}
