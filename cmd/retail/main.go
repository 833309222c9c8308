// Package main es el punto de entrada del CLI retail (reportes y carga de datos sin servidor HTTP).
package main

import (
	"os"

	"github.com/jhoicas/retail-analytics/cmd/retail/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
