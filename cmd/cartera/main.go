package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vallesalud/cartera/constants"
	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/engine"
	"github.com/vallesalud/cartera/internal/export"
	"github.com/vallesalud/cartera/internal/refdata"
	"github.com/vallesalud/cartera/internal/source"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	_ = godotenv.Load()

	var (
		entidad     = flag.String("entidad", "", "payer display name / razón social (required)")
		clientes    = flag.String("clientes", "lista_de_clientes.xlsx", "client-list workbook for the NIT/plan lookup")
		profilePath = flag.String("profile", "", "payer profile JSON (skips the client-list lookup)")
		out         = flag.String("out", "", "output XLSX path (defaults to reporte_<entidad>.xlsx)")
	)
	flag.Parse()

	if *entidad == "" {
		printError("Error: --entidad is required\n")
		os.Exit(1)
	}
	paths := flag.Args()
	if len(paths) == 0 {
		printError("Error: at least one remittance file is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = fmt.Sprintf("reporte_%s.xlsx", strings.ReplaceAll(*entidad, " ", "_"))
	}

	cfg := common.LoadConfig()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	profile, err := resolveProfile(*profilePath, *clientes, *entidad)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	batch, err := loadBatch(paths)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	table, report, err := engine.New(logger, cfg.PDFPages).Process(ctx, *entidad, batch, profile)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	for _, w := range report.Warnings {
		printError("warning: %s: %v\n", w.File, w.Err)
	}
	if table.Empty() {
		fmt.Println("no rows produced; check the files against the selected payer")
	}

	data, err := export.NewService(logger, cfg.SheetName).Workbook(table)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		printError("Error: write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", len(table.Rows), *out)
}

func newLogger(cfg *common.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func resolveProfile(profilePath, clientes, entidad string) (canonical.Profile, error) {
	if profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			return canonical.Profile{}, err
		}
		return refdata.ParseProfile(data)
	}

	f, err := source.Load(clientes)
	if err != nil {
		return canonical.Profile{}, err
	}
	list, err := refdata.LoadClients(f)
	if err != nil {
		return canonical.Profile{}, err
	}
	profile, ok := list.Lookup(entidad)
	if !ok {
		return canonical.Profile{}, fmt.Errorf("entity %q not found in %s", entidad, clientes)
	}
	return profile, nil
}

func loadBatch(paths []string) ([]source.File, error) {
	var batch []source.File
	for _, path := range paths {
		f, err := source.Load(path)
		if err != nil {
			return nil, err
		}
		if _, ok := constants.AllowedExtensions[f.Ext()]; !ok {
			return nil, fmt.Errorf("%s: unsupported file type %q", f.Name, f.Ext())
		}
		batch = append(batch, f)
	}
	return batch, nil
}
