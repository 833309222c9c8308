// Package cmd define los comandos del CLI retail.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-analytics/pkg/config"
	"github.com/jhoicas/retail-analytics/pkg/logger"
)

// dataFlagBindings clave de config → flag persistente del comando raíz.
var dataFlagBindings = map[string]string{
	"DATA_SOURCE":   "source",
	"DATA_PATH":     "path",
	"DATA_SHEET":    "sheet",
	"DATA_ENCODING": "encoding",
	"DATA_TABLE":    "table",
	"LOG_LEVEL":     "log-level",
}

// runtime configuración y logger compartidos por los subcomandos; se arman en PersistentPreRunE.
type runtime struct {
	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd construye el árbol de comandos. Cada llamada devuelve comandos y flags nuevos.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:   "retail",
		Short: "Reportes del dashboard de ventas minoristas",
		Long: `retail exporta el dashboard de ventas sin levantar el servidor HTTP
y carga el dataset en PostgreSQL.

La configuración sale de las mismas variables que la API (DATA_SOURCE, DATA_PATH,
DATABASE_URL, ...); los flags globales las pisan.

Ejemplo:
  retail report --country "United Kingdom" --from 2011-01-01 --to 2011-06-30 --out uk.pdf
  retail report --format json --out -
  retail import --path "data/Online Retail.xlsx" --table online_retail`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithFlags(cmd.Flags(), dataFlagBindings)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: cmd.ErrOrStderr()})
			return nil
		},
	}

	// Flags globales (pisan DATA_* y LOG_LEVEL)
	pf := rootCmd.PersistentFlags()
	pf.String("source", "", "origen del dataset: xlsx | csv | postgres (DATA_SOURCE)")
	pf.String("path", "", "archivo .xlsx o .csv (DATA_PATH)")
	pf.String("sheet", "", "hoja del libro, solo xlsx (DATA_SHEET)")
	pf.String("encoding", "", "codificación CSV: utf8 | latin1 | windows1252 (DATA_ENCODING)")
	pf.String("table", "", "tabla PostgreSQL, admite esquema.tabla (DATA_TABLE)")
	pf.String("log-level", "", "trace | debug | info | warn | error (LOG_LEVEL)")

	// Subcomandos
	rootCmd.AddCommand(newReportCmd(rt))
	rootCmd.AddCommand(newImportCmd(rt))

	return rootCmd
}

// Execute ejecuta el comando raíz. Lo llama main.main.
func Execute() error {
	return NewRootCmd().Execute()
}
