package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-record>",
	Short: "Decode a discriminator-prefixed record back to JSON",
	Long: `Decode a record given as hex. With --type the record is decoded as
that account type (verifying the embedded discriminator); without it the
type is resolved from the discriminator.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coder, err := loadCoder(cmd)
		if err != nil {
			return err
		}
		record, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("parse record hex: %w", err)
		}

		typeName, _ := cmd.Flags().GetString("type")
		var value any
		if typeName == "" {
			typeName, value, err = coder.DecodeAny(record)
		} else if unchecked, _ := cmd.Flags().GetBool("unchecked"); unchecked {
			value, err = coder.DecodeUnchecked(typeName, record)
		} else {
			value, err = coder.Decode(typeName, record)
		}
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", typeName, out)
		return nil
	},
}

func init() {
	decodeCmd.Flags().StringP("type", "t", "", "Account type name (resolved from the discriminator when omitted)")
	decodeCmd.Flags().Bool("unchecked", false, "Skip the embedded discriminator check")
	rootCmd.AddCommand(decodeCmd)
}
