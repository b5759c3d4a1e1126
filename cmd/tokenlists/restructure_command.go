package main

import (
	"github.com/dipdup-io/token-lists/internal/restructure"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRestructureCommand(cc *commandContext) *cobra.Command {
	var (
		root   string
		chains []uint
	)

	cmd := &cobra.Command{
		Use:   "restructure",
		Short: "Move flat <chain>/<address>.png logos into per-token directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := restructure.Config{
				Root:   cc.cfg.Restructure.Root,
				Chains: cc.cfg.Restructure.Chains,
			}
			if cmd.Flags().Changed("root") {
				cfg.Root = root
			}
			if cmd.Flags().Changed("chains") {
				cfg.Chains = make([]uint64, len(chains))
				for i := range chains {
					cfg.Chains[i] = uint64(chains[i])
				}
			}

			moved, err := restructure.New(cfg).Run(cmd.Context())
			if err != nil {
				return err
			}
			log.Info().Int("moved", moved).Msg("restructuring finished")
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "images directory containing one folder per chain")
	cmd.Flags().UintSliceVar(&chains, "chains", nil, "chain ids to process (default 100,1)")
	return cmd
}
