package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	filecatalog "github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/catalog/file"
)

// newCatalogCommand groups catalog authoring helpers.
func newCatalogCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate catalog files",
	}
	cmd.AddCommand(newCatalogValidateCommand(root))
	return cmd
}

// newCatalogValidateCommand checks that a catalog YAML file parses and
// satisfies every catalog invariant (unique keys, valid tiers, non-negative
// prices, no dangling conflict references).  Tags outside the survey
// vocabulary are reported as warnings: they are legal but unreachable by
// any survey answer, so they usually indicate a typo.
func newCatalogValidateCommand(root *RootOptions) *cobra.Command {
	var (
		catalogPath string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Validate a catalog YAML file",
		Example: "  recctl catalog validate --catalog configs/catalog.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.newLogger()
			if err != nil {
				return err
			}

			src, err := filecatalog.NewSource(catalogPath, logger)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			snap, err := src.LoadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			warnings := vocabularyWarnings(snap)
			for _, w := range warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("catalog %s has %d vocabulary warnings", catalogPath, len(warnings))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s is valid: %d entries\n", catalogPath, snap.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to catalog YAML file (required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat vocabulary warnings as errors")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

// vocabularyWarnings lists catalog tags that no survey answer can ever
// match, entry by entry.
func vocabularyWarnings(snap *catalog.Snapshot) []string {
	var out []string
	for _, e := range snap.Entries() {
		for _, t := range e.Tags.Concerns {
			if _, ok := survey.KnownConcerns[t]; !ok {
				out = append(out, fmt.Sprintf("entry %q: concern tag %q is outside the survey vocabulary", e.Key, t))
			}
		}
		for _, t := range e.Tags.Goals {
			if _, ok := survey.KnownGoals[t]; !ok {
				out = append(out, fmt.Sprintf("entry %q: goal tag %q is outside the survey vocabulary", e.Key, t))
			}
		}
		for _, t := range e.Tags.Areas {
			if _, ok := survey.KnownAreas[t]; !ok {
				out = append(out, fmt.Sprintf("entry %q: area tag %q is outside the survey vocabulary", e.Key, t))
			}
		}
		for _, t := range e.Contraindications {
			if _, ok := survey.KnownConditions[t]; !ok {
				out = append(out, fmt.Sprintf("entry %q: contraindication %q is outside the survey vocabulary", e.Key, t))
			}
		}
	}
	return out
}
