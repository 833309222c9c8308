package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/spreadsheet"
)

func newImportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Carga la hoja de cálculo en la tabla PostgreSQL",
		Long: `Lee el archivo DATA_PATH (--path), lo limpia y reemplaza el contenido de
DATA_TABLE (--table) en una sola transacción. Luego la API puede servir
el dashboard con DATA_SOURCE=postgres.

Ejemplo:
  retail import --path "data/Online Retail.xlsx" --table online_retail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rt)
		},
	}
}

func runImport(cmd *cobra.Command, rt *runtime) error {
	ctx := cmd.Context()
	start := time.Now()

	// El origen de la importación siempre es un archivo, aunque DATA_SOURCE sea postgres.
	kind := rt.cfg.Data.Source
	if rt.cfg.Data.UsesPostgres() {
		kind = ""
	}
	source, err := spreadsheet.Open(kind, rt.cfg.Data.Path, rt.cfg.Data.Sheet, rt.cfg.Data.Encoding)
	if err != nil {
		return err
	}
	rows, err := source.LoadRows(ctx)
	if err != nil {
		return err
	}
	records, err := analytics.Clean(rows)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, rt.cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	n, err := postgres.NewTransactionImporter(pool, rt.cfg.Data.Table).Import(ctx, records)
	if err != nil {
		return err
	}
	rt.log.Info().
		Str("source", source.Describe()).
		Str("table", rt.cfg.Data.Table).
		Int("rows_read", len(rows)).
		Int64("imported", n).
		Dur("duration", time.Since(start)).
		Msg("importación completa")
	return nil
}
