package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/typemark/typemark/sdk/go/accounts"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "typemark",
	Short: "typemark - discriminator-tagged record coder",
	Long: `typemark encodes and decodes typed binary records. Every record is
prefixed with an 8-byte discriminator derived from its type name, so the
type can be recovered from the raw bytes without an external registry.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("idl", "i", "", "IDL document describing the account types (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log coder construction details")
	_ = rootCmd.MarkPersistentFlagRequired("idl")
}

// loadCoder builds a coder from the IDL file named by the persistent flag,
// choosing the parser from the file extension.
func loadCoder(cmd *cobra.Command) (*accounts.Coder, error) {
	path, _ := cmd.Flags().GetString("idl")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read IDL: %w", err)
	}

	var opts []accounts.Option
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, accounts.WithLogger(logger))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return accounts.NewCoderFromYAML(data, opts...)
	case ".json":
		return accounts.NewCoderFromJSON(data, opts...)
	default:
		return nil, fmt.Errorf("unsupported IDL extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}
