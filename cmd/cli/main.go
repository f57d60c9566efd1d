package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morgansundqvist/musecase/internal/adapters"
	"github.com/morgansundqvist/musecase/internal/application"
	"github.com/morgansundqvist/musecase/internal/config"
	"github.com/morgansundqvist/musecase/internal/domain"
	"github.com/morgansundqvist/musecase/internal/logger"
)

type ctxKey string

const dispatcherKey ctxKey = "dispatcher"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "musecase",
		Short: "Run AI use-cases from the terminal",
		Long:  "A CLI for the multi use-case assistant: translate, summarize, classify, generate code and leads, and chart CSV columns.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher(configPath, cmd.Name() == runCmd.Name())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), dispatcherKey, d))
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file (default $MUSECASE_CONFIG or config.yaml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(visualizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newDispatcher builds the dispatcher for one command. Commands that never
// talk to the model run without an API key.
func newDispatcher(configPath string, needsModel bool) (*application.Dispatcher, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) && !needsModel {
			return application.NewDispatcher(nil, adapters.NewCSVTableParser(), nil), nil
		}
		return nil, err
	}
	log, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		return nil, err
	}
	llm, err := adapters.NewOpenAILLMService(adapters.CompletionOptions{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
		Log:     log,
	})
	if err != nil {
		return nil, err
	}
	return application.NewDispatcher(llm, adapters.NewCSVTableParser(), log), nil
}

func dispatcherFrom(cmd *cobra.Command) *application.Dispatcher {
	return cmd.Context().Value(dispatcherKey).(*application.Dispatcher)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available use-cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("'list' takes no arguments")
		}
		for _, uc := range dispatcherFrom(cmd).UseCases() {
			fields := make([]string, 0, len(uc.Fields))
			for _, f := range uc.Fields {
				fields = append(fields, f.Label)
			}
			fmt.Printf("%-28s %s\n", uc.Name, strings.Join(fields, ", "))
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [use-case]",
	Short: "Run a language-model use-case",
	Long:  "Run a use-case by its sidebar name, e.g. musecase run \"Sentiment Analysis\" --text \"I love this product\".",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		d := dispatcherFrom(cmd)
		uc, err := d.Lookup(name)
		if err != nil {
			return err
		}
		if !uc.RoutesToLLM() {
			return fmt.Errorf("%q works on files, use the visualize command", name)
		}

		inputs := map[string]string{}
		for flag, key := range map[string]string{
			"text":     domain.InputText,
			"lang":     domain.InputTargetLanguage,
			"industry": domain.InputIndustry,
			"keywords": domain.InputKeywords,
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				inputs[key] = v
			}
		}

		result, err := d.Dispatch(cmd.Context(), name, inputs)
		if err != nil {
			return err
		}
		if result.Shape == domain.OutputCodeBlock {
			fmt.Printf("```%s\n%s\n```\n", result.Language, strings.TrimRight(result.Text, "\n"))
			return nil
		}
		if uc.ResultLabel != "" {
			fmt.Println(uc.ResultLabel)
		}
		fmt.Println(result.Text)
		return nil
	},
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Preview a CSV file and chart the distribution of one column",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		column, _ := cmd.Flags().GetString("column")
		pngPath, _ := cmd.Flags().GetString("png")
		if file == "" {
			return fmt.Errorf("missing required flag: --file")
		}

		content, err := adapters.NewLocalFileReader().ReadFileContent(file)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", file, err)
		}
		result, err := dispatcherFrom(cmd).Dispatch(cmd.Context(), application.DataVisualization, map[string]string{
			domain.InputFile:   string(content),
			domain.InputColumn: column,
		})
		if err != nil {
			return err
		}

		fmt.Println("Preview of Uploaded Data:")
		fmt.Println(strings.Join(result.Preview.Columns, "\t"))
		for _, row := range result.Preview.Rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		if result.Chart == nil {
			fmt.Printf("\nColumns: %s\n", strings.Join(result.Columns, ", "))
			return nil
		}

		fmt.Printf("\n%s\n", result.Chart.Title)
		for _, b := range result.Chart.Bins {
			fmt.Printf("%-24s %d\n", b.Label, b.Count)
		}
		if pngPath == "" {
			return nil
		}

		renderer, err := adapters.NewHistogramRenderer()
		if err != nil {
			return err
		}
		out, err := os.Create(pngPath)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := renderer.RenderPNG(out, result.Chart); err != nil {
			return err
		}
		fmt.Printf("Chart written to %s\n", pngPath)
		return nil
	},
}

func init() {
	runCmd.Flags().StringP("text", "t", "", "Input text for the use-case")
	runCmd.Flags().StringP("lang", "l", "", "Target language code for Advanced Translation (ta, hi, ml, mr, gu, fr, es, de)")
	runCmd.Flags().String("industry", "", "Industry for Lead Generation")
	runCmd.Flags().String("keywords", "", "Comma-separated keywords for Lead Generation")

	visualizeCmd.Flags().StringP("file", "f", "", "CSV file to load")
	visualizeCmd.Flags().String("column", "", "Column to chart")
	visualizeCmd.Flags().String("png", "", "Write the chart to this PNG file")
}
