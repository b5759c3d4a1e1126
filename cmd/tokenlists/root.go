package main

import (
	"os"

	"github.com/dipdup-io/token-lists/internal/storage/jsonfile"
	"github.com/dipdup-io/token-lists/internal/synchronizer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "tokenlists.yml"

type commandContext struct {
	configPath string
	cfg        Config
}

func newRootCommand() *cobra.Command {
	cc := new(commandContext)

	rootCmd := &cobra.Command{
		Use:           "tokenlists",
		Short:         "Maintenance helpers for the token list repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.load(cmd.Flags().Changed("config"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", defaultConfigPath, "path to YAML config file")

	for _, cmd := range newSyncCommands(cc) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newRestructureCommand(cc))
	rootCmd.AddCommand(newRequestCommand(cc))
	rootCmd.AddCommand(newShowCommand(cc))

	return rootCmd
}

// load - the config file is optional unless it is set explicitly
func (cc *commandContext) load(explicit bool) error {
	if _, err := os.Stat(cc.configPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "config")
		}
		cc.cfg = fromEnv()
	} else {
		cfg, err := Load(cc.configPath)
		if err != nil {
			return errors.Wrap(err, "config")
		}
		cc.cfg = cfg
	}

	if err := setupLogger(cc.cfg.LogLevel); err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	log.Debug().Str("path", cc.configPath).Msg("config loaded")
	return nil
}

func (cc *commandContext) storage() (jsonfile.Storage, error) {
	return jsonfile.Create(jsonfile.Config{
		ListPath:   cc.cfg.ListPath,
		ImagesRoot: cc.cfg.ImagesRoot,
	})
}

func (cc *commandContext) synchronizer() (*synchronizer.Synchronizer, error) {
	strg, err := cc.storage()
	if err != nil {
		return nil, err
	}
	return synchronizer.New(strg.TokenList, strg.Info), nil
}
