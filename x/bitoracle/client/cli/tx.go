package cli

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

const (
	FlagMaxNodes = "max-nodes"
	FlagTieBreak = "tie-break"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("%s transactions subcommands", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		NewCreateOracleCmd(),
		NewJoinNetworkCmd(),
		NewStartRequestCmd(),
		NewCommitCmd(),
		NewRevealCmd(),
		NewSlashColludingCmd(),
		NewResolveCmd(),
	)

	return cmd
}

// NewCreateOracleCmd implements the create oracle command
func NewCreateOracleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-oracle [required-collateral]",
		Short: "Deploy a new binary oracle with the sender as authority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			collateral, err := sdk.ParseCoinNormalized(args[0])
			if err != nil {
				return err
			}
			maxNodes, err := cmd.Flags().GetUint64(FlagMaxNodes)
			if err != nil {
				return err
			}
			tieBreakArg, err := cmd.Flags().GetString(FlagTieBreak)
			if err != nil {
				return err
			}
			tieBreak, err := types.ParseTieBreakPolicy(tieBreakArg)
			if err != nil {
				return err
			}

			msg := types.NewMsgCreateOracle(clientCtx.GetFromAddress(), collateral, maxNodes, tieBreak)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Uint64(FlagMaxNodes, 0, "maximum number of active nodes, 0 for unlimited")
	cmd.Flags().String(FlagTieBreak, types.TieBreakFalse.String(), "resolution of equal vote counts (TIE_BREAK_FALSE|TIE_BREAK_TRUE)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// NewJoinNetworkCmd implements the join network command
func NewJoinNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [oracle-id] [collateral]",
		Short: "Post collateral and join an oracle as a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := ParseOracleId(args[0])
			if err != nil {
				return err
			}
			collateral, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return err
			}

			msg := types.NewMsgJoinNetwork(id, clientCtx.GetFromAddress(), collateral)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// NewStartRequestCmd implements the start request command
func NewStartRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-request [oracle-id] [reveal-duration]",
		Short: "Open a new commit round; the duration is in seconds or a Go duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := ParseOracleId(args[0])
			if err != nil {
				return err
			}
			duration, err := ParseRevealDuration(args[1])
			if err != nil {
				return err
			}

			msg := types.NewMsgStartRequest(id, clientCtx.GetFromAddress(), duration)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// NewCommitCmd implements the commit command
func NewCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit [oracle-id] [commitment-hex]",
		Short: "Commit a vote digest for the current request",
		Long:  "Commit a vote digest for the current request. Compute the digest with the calculate-hash query.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := ParseOracleId(args[0])
			if err != nil {
				return err
			}
			digest, err := DecodeHex(args[1])
			if err != nil {
				return fmt.Errorf("failed to decode commitment: %w", err)
			}

			msg := types.NewMsgCommit(id, clientCtx.GetFromAddress(), digest)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// NewRevealCmd implements the reveal command
func NewRevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal [oracle-id] [true|false] [nonce-hex]",
		Short: "Reveal the vote and nonce behind a commitment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := ParseOracleId(args[0])
			if err != nil {
				return err
			}
			vote, err := ParseVote(args[1])
			if err != nil {
				return err
			}
			nonce, err := ParseNonce(args[2])
			if err != nil {
				return err
			}

			msg := types.NewMsgReveal(id, clientCtx.GetFromAddress(), vote, nonce)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// NewSlashColludingCmd implements the slash command
func NewSlashColludingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slash [oracle-id] [colluding-node] [true|false] [nonce-hex]",
		Short: "Slash a node whose vote and nonce were disclosed before the reveal",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := ParseOracleId(args[0])
			if err != nil {
				return err
			}
			colluding, err := sdk.AccAddressFromBech32(args[1])
			if err != nil {
				return err
			}
			vote, err := ParseVote(args[2])
			if err != nil {
				return err
			}
			nonce, err := ParseNonce(args[3])
			if err != nil {
				return err
			}

			msg := types.NewMsgSlashColluding(id, clientCtx.GetFromAddress(), colluding, vote, nonce)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// NewResolveCmd implements the resolve command
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [oracle-id] [node-address]...",
		Short: "Resolve the current request over the listed nodes, or all nodes when none are given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := ParseOracleId(args[0])
			if err != nil {
				return err
			}
			nodes := make([]sdk.AccAddress, 0, len(args)-1)
			for _, arg := range args[1:] {
				addr, err := sdk.AccAddressFromBech32(arg)
				if err != nil {
					return err
				}
				nodes = append(nodes, addr)
			}

			msg := types.NewMsgResolve(id, clientCtx.GetFromAddress(), nodes)
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
