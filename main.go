package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/eoltools/eolscan/catalog"
	"github.com/eoltools/eolscan/config"
	"github.com/eoltools/eolscan/inventory"
	"github.com/eoltools/eolscan/report"
	"github.com/eoltools/eolscan/scan"
	"github.com/eoltools/eolscan/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	inputDir     string
	inputDirSet  bool
	outputDir    string
	outputDirSet bool
	apiURL       string
	configFile   string
	scanAll      bool
	noProgress   bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "eolscan [file]",
		Short: "Scan software inventories against the endoflife.date database",
		Long: `eolscan matches package names from inventory exports (CSV, optionally
gzip-compressed) against the endoflife.date lifecycle database and reports
the support status of every package as JSON, CSV and HTML artifacts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			// An explicitly passed flag wins even when it equals the default.
			opts.inputDirSet = cmd.Flags().Changed("input")
			opts.outputDirSet = cmd.Flags().Changed("output")
			return run(afero.NewOsFs(), opts, file)
		},
	}

	cmd.Flags().StringVarP(&opts.inputDir, "input", "i", "input", "directory containing inventory files")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "output", "output directory for results")
	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "catalog API base URL (EOLSCAN_API_URL is also honored)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	cmd.Flags().BoolVar(&opts.scanAll, "scan-all", false, "scan all inventory files in the input directory")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "suppress the progress bar")

	return cmd
}

func run(appFs afero.Fs, opts options, file string) error {
	var cfg config.Config
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(appFs, opts.configFile); err != nil {
			return err
		}
	}

	// Flags win over the environment, which wins over the config file.
	apiURL := firstNonEmpty(opts.apiURL, utils.LookupEnv("EOLSCAN_API_URL", ""), cfg.APIURL)
	inputDir := opts.inputDir
	if !opts.inputDirSet && cfg.InputDir != "" {
		inputDir = cfg.InputDir
	}
	outputDir := opts.outputDir
	if !opts.outputDirSet && cfg.OutputDir != "" {
		outputDir = cfg.OutputDir
	}

	client := catalog.NewClient()
	if apiURL != "" {
		client = catalog.NewClient(catalog.WithBaseURL(apiURL))
	}

	loader := inventory.NewLoader(
		inventory.WithAppFs(appFs),
		inventory.WithNameColumns(cfg.NameColumns),
		inventory.WithVersionColumns(cfg.VersionColumns),
	)

	scanner := scan.NewScanner(
		scan.WithClient(client),
		scan.WithLoader(loader),
		scan.WithProgress(!opts.noProgress),
	)

	if file != "" {
		if utils.IsURL(file) {
			downloaded, err := utils.DownloadToTempFile(context.Background(), file)
			if err != nil {
				return xerrors.Errorf("unable to download %s: %w", file, err)
			}
			defer os.Remove(downloaded)
			file = downloaded
		}
		scanOne(appFs, scanner, file, outputDir)
		return nil
	}

	files, err := listInventoryFiles(appFs, inputDir)
	if err != nil {
		return err
	}

	if opts.scanAll {
		log.Printf("Found %d inventory files to process", len(files))
		for _, f := range files {
			scanOne(appFs, scanner, f, filepath.Join(outputDir, stem(f)))
		}
		return nil
	}

	if len(files) > 1 {
		log.Printf("Multiple inventory files found in %s. Using %s", inputDir, filepath.Base(files[0]))
		log.Println("Use --scan-all to process all files")
	}
	scanOne(appFs, scanner, files[0], outputDir)
	return nil
}

// scanOne processes a single inventory file. A bad file is logged, not
// fatal: remaining files in a --scan-all run still get processed and the
// exit status stays zero.
func scanOne(appFs afero.Fs, scanner *scan.Scanner, filePath, outputDir string) {
	log.Printf("Processing %s...", filepath.Base(filePath))

	results, err := scanner.ScanFile(filePath)
	if err != nil {
		log.Printf("Failed to process %s: %s", filePath, err)
		return
	}

	writer := report.NewWriter(
		report.WithAppFs(appFs),
		report.WithOutputDir(outputDir),
	)
	if _, err := writer.Write(results); err != nil {
		log.Printf("Failed to write reports for %s: %s", filePath, err)
		return
	}

	log.Printf("Processing complete. Results saved to %s", outputDir)
}

func listInventoryFiles(appFs afero.Fs, inputDir string) ([]string, error) {
	if ok, err := afero.DirExists(appFs, inputDir); err != nil || !ok {
		return nil, xerrors.Errorf("input directory not found: %s", inputDir)
	}

	infos, err := afero.ReadDir(appFs, inputDir)
	if err != nil {
		return nil, xerrors.Errorf("unable to list %s: %w", inputDir, err)
	}

	var files []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := strings.ToLower(info.Name())
		if strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".csv.gz") {
			files = append(files, filepath.Join(inputDir, info.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, xerrors.Errorf("no inventory files found in %s", inputDir)
	}
	return files, nil
}

func stem(filePath string) string {
	base := filepath.Base(filePath)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
