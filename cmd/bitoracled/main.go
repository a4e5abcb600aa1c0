package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/crypto"

	"github.com/GPTx-global/bitoracle/oracle/config"
	"github.com/GPTx-global/bitoracle/oracle/log"
	"github.com/GPTx-global/bitoracle/oracle/simulator"
	"github.com/GPTx-global/bitoracle/x/bitoracle"
	"github.com/GPTx-global/bitoracle/x/bitoracle/client/cli"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagLogFile  = "log_file"
	envPrefix    = "BITORACLE"
)

// ModuleBasics provides the client commands of the modules served by a
// bitoracle chain.
var ModuleBasics = module.NewBasicManager(
	bitoracle.AppModuleBasic{},
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bitoracled"
	}
	return filepath.Join(home, ".bitoracled")
}

// NewRootCmd builds the bitoracled command tree. Flags may also be set
// through BITORACLE_* environment variables.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "bitoracled",
		Short:         "Binary commit-reveal oracle toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			level := v.GetString(flagLogLevel)
			if err := log.InitLogger(level); err != nil {
				return err
			}
			if v.GetBool(flagLogFile) {
				return log.ResetLogger(v.GetString(flagHome), level)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, defaultHome(), "directory for config and logs")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (debug|info|error|none)")
	rootCmd.PersistentFlags().Bool(flagLogFile, false, "write logs to <home>/logs instead of stdout")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(
		newHashCmd(),
		newNonceCmd(),
		newSimulateCmd(v),
		newTxCmd(),
		newQueryCmd(),
	)
	return rootCmd
}

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	ModuleBasics.AddTxCommands(cmd)
	return cmd
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	ModuleBasics.AddQueryCommands(cmd)
	return cmd
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [true|false] [nonce-hex]",
		Short: "Print the commitment digest of a vote and a 32 byte nonce",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vote, err := cli.ParseVote(args[0])
			if err != nil {
				return err
			}
			nonce, err := cli.ParseNonce(args[1])
			if err != nil {
				return err
			}
			digest, err := types.CalculateHash(vote, nonce)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(digest))
			return nil
		},
	}
}

func newNonceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nonce",
		Short: "Print a fresh random nonce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(crypto.CRandBytes(types.NonceLength)))
			return nil
		},
	}
}

func newSimulateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run the scenario in <home>/config.toml against an in-memory chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(v.GetString(flagHome)); err != nil {
				return err
			}
			config.Print()

			sim, err := simulator.New(config.Get(), log.Logger())
			if err != nil {
				return err
			}
			if err := sim.Start(); err != nil {
				return err
			}

			reports, err := sim.Run()
			for _, r := range reports {
				r.Print()
				if rerr := r.Err(); rerr != nil {
					return rerr
				}
			}
			return err
		},
	}
}
