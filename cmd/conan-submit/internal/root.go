package internal

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "conan-submit",
	Short: "Submit a Conan dependency graph to the GitHub Dependency Graph",
	Long: `conan-submit runs the Conan package manager against a repository's
conanfile, converts the resolved dependency graph into Package URLs, and
submits it to GitHub's Dependency Submission API.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger; --debug switches to a development
// console at debug level.
func newLogger() *zap.Logger {
	if debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug output")
}
