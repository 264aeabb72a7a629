package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apprec "github.com/CodingBot000/miracle3day-sub008/internal/application/recommendation"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	filecatalog "github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/catalog/file"
)

// recommendOptions holds flags for the recommend subcommand.
type recommendOptions struct {
	surveyPath  string
	catalogPath string
	uvIndex     int
	temperature float64
	humidity    float64
}

// newRecommendCommand runs the full pipeline locally: survey JSON in,
// recommendation JSON out.
func newRecommendCommand(root *RootOptions) *cobra.Command {
	opts := &recommendOptions{}
	defaults := climate.DefaultContext()

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Compute a recommendation estimate from a survey answers file",
		Example: "  recctl recommend --survey survey.json --catalog configs/catalog.yaml\n" +
			"  recctl recommend --survey survey.json --catalog catalog.yaml --uv-index 8",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.surveyPath, "survey", "s", "", "path to survey answers JSON file (required)")
	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "path to catalog YAML file (required)")
	cmd.Flags().IntVar(&opts.uvIndex, "uv-index", defaults.UVIndex, "UV index for the climate advisory")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", defaults.Temperature, "temperature in Celsius")
	cmd.Flags().Float64Var(&opts.humidity, "humidity", defaults.Humidity, "relative humidity percent")
	_ = cmd.MarkFlagRequired("survey")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runRecommend(cmd *cobra.Command, root *RootOptions, opts *recommendOptions) error {
	logger, err := root.newLogger()
	if err != nil {
		return err
	}

	raw, err := readSurvey(opts.surveyPath)
	if err != nil {
		return err
	}

	src, err := filecatalog.NewSource(opts.catalogPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	service := apprec.NewService(src, logger)
	climateCtx := &climate.Context{
		UVIndex:     opts.uvIndex,
		Temperature: opts.temperature,
		Humidity:    opts.humidity,
	}

	out, err := service.Recommend(cmd.Context(), raw, climateCtx)
	if err != nil {
		return err
	}
	return printJSON(out)
}

// readSurvey parses a survey answers JSON file.
func readSurvey(path string) (*survey.RawInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}
	var raw survey.RawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse survey file %s: %w", path, err)
	}
	return &raw, nil
}
