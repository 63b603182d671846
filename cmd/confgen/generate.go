package main

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-confgen/pkg/generator"
	"github.com/goliatone/go-confgen/pkg/report"
	"github.com/goliatone/go-confgen/pkg/values"
)

var (
	generateDir   string
	generateQuiet bool

	generateCmd = &cobra.Command{
		Use:   "generate [environment]",
		Short: "Render every discovered template and write the results",
		Long: `Render every discovered template against the app_config value document
and write each result next to its template with the .erb suffix stripped.

An optional environment argument selects app_config.<environment>.yml
(or .json/.toml) instead of the default document. When no environment is
given, the default document is missing, and environment variants exist,
confgen asks which one to use (on a terminal only).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().StringVar(&generateDir, "dir", "", "Directory to run in (defaults to the current directory)")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "Suppress progress output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	environment := ""
	if len(args) == 1 {
		environment = args[0]
	}

	var reporter report.Reporter = report.NewConsole(cmd.OutOrStdout())
	if generateQuiet {
		reporter = report.Discard{}
	}

	loaderOptions := []values.LoaderOption{}
	if generateDir != "" {
		loaderOptions = append(loaderOptions, values.WithBaseDir(generateDir))
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		loaderOptions = append(loaderOptions, values.WithPrompter(surveyPrompter{}))
	}

	gen := generator.New(
		generator.WithBaseDir(generateDir),
		generator.WithLoader(values.NewLoader(loaderOptions...)),
		generator.WithReporter(reporter),
	)
	return gen.Generate(cmd.Context(), environment)
}

// surveyPrompter asks the user to pick among the environment variants found
// on disk when no environment was supplied and no default document exists.
type surveyPrompter struct{}

func (surveyPrompter) SelectEnvironment(environments []string) (string, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Select an environment:",
		Options: environments,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}
