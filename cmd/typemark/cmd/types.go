package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the account types in the IDL with their discriminators",
	RunE: func(cmd *cobra.Command, args []string) error {
		coder, err := loadCoder(cmd)
		if err != nil {
			return err
		}
		for _, name := range coder.Types() {
			tag := coder.DiscriminatorFor(name)
			fmt.Printf("%s  %s\n", hex.EncodeToString(tag[:]), name)
		}
		fmt.Printf("schema fingerprint: %016x\n", coder.Fingerprint())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
