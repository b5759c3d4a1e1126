package main

import (
	"fmt"
	"strconv"

	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/spf13/cobra"
)

func newShowCommand(cc *commandContext) *cobra.Command {
	var chainID uint64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print tokens of the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strg, err := cc.storage()
			if err != nil {
				return err
			}
			list, err := strg.TokenList.Load(cmd.Context())
			if err != nil {
				return err
			}

			headers, rows, aligns := tokenRows(list.Tokens, chainID)
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tokens")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain", 0, "show only tokens of the chain")
	return cmd
}

func tokenRows(tokens []storage.Token, chainID uint64) ([]string, [][]string, []columnAlignment) {
	headers := []string{"Chain", "Address", "Symbol", "Name", "Decimals"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}

	rows := make([][]string, 0, len(tokens))
	for i := range tokens {
		if chainID != 0 && tokens[i].ChainID != chainID {
			continue
		}
		rows = append(rows, []string{
			strconv.FormatUint(tokens[i].ChainID, 10),
			tokens[i].Address,
			tokens[i].Symbol,
			tokens[i].Name,
			strconv.FormatUint(tokens[i].Decimals, 10),
		})
	}
	return headers, rows, aligns
}
