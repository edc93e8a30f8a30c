package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a JSON value as a discriminator-prefixed record",
	RunE: func(cmd *cobra.Command, args []string) error {
		coder, err := loadCoder(cmd)
		if err != nil {
			return err
		}
		typeName, _ := cmd.Flags().GetString("type")
		valueJSON, _ := cmd.Flags().GetString("value")

		// UseNumber keeps u64 values exact; plain float64 decoding would
		// round anything above 2^53.
		dec := json.NewDecoder(strings.NewReader(valueJSON))
		dec.UseNumber()
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("parse value: %w", err)
		}

		record, err := coder.Encode(typeName, value)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(record))
		return nil
	},
}

func init() {
	encodeCmd.Flags().StringP("type", "t", "", "Account type name")
	encodeCmd.Flags().String("value", "", "Value to encode, as JSON")
	_ = encodeCmd.MarkFlagRequired("type")
	_ = encodeCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(encodeCmd)
}
