package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gofarma-cli",
		Short: "Render pharmacy reports from the command line",
	}

	rootCmd.AddCommand(
		newCatalogCmd(),
		newRenderCmd(),
		newRenderAllCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCatalogCmd() *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the reports that can be rendered",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(catalogFile)
			if err != nil {
				return err
			}
			defer env.Close()
			return printCatalog(cmd.OutOrStdout(), env.catalog)
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Catalog YAML file (default: CATALOG_FILE or the built-in catalog)")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		format      string
		out         string
		input       string
		params      []string
		catalogFile string
	)

	cmd := &cobra.Command{
		Use:   "render [slug]",
		Short: "Render one report as html, md, csv, xlsx or term",
		Long: `Render one catalog report.

Rows are fetched from API_URL unless --input names a saved API response.

Example: gofarma-cli render vencimientos --param dias=60 --format md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseParams(params)
			if err != nil {
				return err
			}
			env, err := newEnvironment(catalogFile)
			if err != nil {
				return err
			}
			defer env.Close()

			job := renderJob{Slug: args[0], Format: format, Params: overrides, Input: input}
			if out == "" {
				return env.render(cmd.Context(), job, cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := env.render(cmd.Context(), job, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "term", "Output format: html, md, csv, xlsx or term")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&input, "input", "", "Read a saved API response instead of calling the API")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Query parameter key=value, repeatable")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Catalog YAML file (default: CATALOG_FILE or the built-in catalog)")
	return cmd
}

func newRenderAllCmd() *cobra.Command {
	var (
		format      string
		outDir      string
		concurrency int
		timeout     time.Duration
		catalogFile string
	)

	cmd := &cobra.Command{
		Use:   "render-all",
		Short: "Render every catalog report into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(catalogFile)
			if err != nil {
				return err
			}
			defer env.Close()

			summary, err := env.renderAll(cmd.Context(), batchOptions{
				Format:      format,
				OutDir:      outDir,
				Concurrency: concurrency,
				Timeout:     timeout,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			if len(summary.Failed) > 0 {
				return fmt.Errorf("%d reports failed", len(summary.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html, md, csv or xlsx")
	cmd.Flags().StringVar(&outDir, "out-dir", "reportes", "Directory for the rendered files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Reports fetched at the same time")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Deadline for the whole batch")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Catalog YAML file (default: CATALOG_FILE or the built-in catalog)")
	return cmd
}
