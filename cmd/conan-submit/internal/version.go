package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/github/conan-dependency-submission/internal/conan"
	"github.com/github/conan-dependency-submission/internal/version"
)

var versionConanPath string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tool and detected Conan versions",
	RunE:  runVersionCmd,
}

func runVersionCmd(cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "conan-submit %s\n", version.Tool)

	runner := conan.New(versionConanPath, "", nil)
	conanVersion, err := runner.Version(cmd.Context())
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "conan: not found")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "conan %s\n", conanVersion)
	return nil
}

func init() {
	versionCmd.Flags().StringVar(&versionConanPath, "conan-path", "", "Path to the conan executable")
	rootCmd.AddCommand(versionCmd)
}
