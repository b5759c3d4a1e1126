package main

import (
	"github.com/dipdup-io/token-lists/internal/payload"
	"github.com/dipdup-io/token-lists/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSyncCommands(cc *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newPayloadCommand(cc, storage.OperationAddToken, "Add a token to the list or update the existing one"),
		newPayloadCommand(cc, storage.OperationRemoveToken, "Remove a token from the list by address"),
		newPayloadCommand(cc, storage.OperationAddImage, "Refresh info.json of a token"),
		{
			Use:   string(storage.OperationSortList),
			Short: "Sort the token list by chain id and address",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := cc.synchronizer()
				if err != nil {
					return err
				}
				return s.SortList(cmd.Context())
			},
		},
	}
}

func newPayloadCommand(cc *commandContext, op storage.Operation, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(op) + " <payload.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := payload.Load(args[0])
			if err != nil {
				return err
			}
			log.Debug().Interface("payload", p).Str("operation", string(op)).Msg("payload loaded")

			s, err := cc.synchronizer()
			if err != nil {
				return err
			}
			return s.Run(cmd.Context(), op, p)
		},
	}
}
