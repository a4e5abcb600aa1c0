package cli

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("Querying commands for the %s module", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		GetCmdQueryOracle(),
		GetCmdQueryOracles(),
		GetCmdQueryNode(),
		GetCmdQueryNodes(),
		GetCmdCalculateHash(),
	)

	return cmd
}

func queryRoute(parts ...string) string {
	route := fmt.Sprintf("custom/%s", types.QuerierRoute)
	for _, p := range parts {
		route += "/" + p
	}
	return route
}

// GetCmdQueryOracle implements the oracle query command
func GetCmdQueryOracle() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracle [oracle-id]",
		Short: "Query an oracle, its effective phase and escrow balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			if _, err := ParseOracleId(args[0]); err != nil {
				return err
			}

			res, _, err := clientCtx.QueryWithData(queryRoute(types.QueryOracle, args[0]), nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(res) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryOracles implements the oracles query command
func GetCmdQueryOracles() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracles",
		Short: "Query all oracles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, _, err := clientCtx.QueryWithData(queryRoute(types.QueryOracles), nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(res) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryNode implements the node query command
func GetCmdQueryNode() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node [oracle-id] [node-address]",
		Short: "Query a node of an oracle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			if _, err := ParseOracleId(args[0]); err != nil {
				return err
			}

			res, _, err := clientCtx.QueryWithData(queryRoute(types.QueryNode, args[0], args[1]), nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(res) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryNodes implements the nodes query command
func GetCmdQueryNodes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes [oracle-id]",
		Short: "Query every node registered on an oracle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			if _, err := ParseOracleId(args[0]); err != nil {
				return err
			}

			res, _, err := clientCtx.QueryWithData(queryRoute(types.QueryNodes, args[0]), nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(res) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdCalculateHash implements the calculate-hash query command
func GetCmdCalculateHash() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate-hash [true|false] [nonce-hex]",
		Short: "Compute the commitment digest of a vote and nonce",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			vote, err := ParseVote(args[0])
			if err != nil {
				return err
			}
			nonce, err := ParseNonce(args[1])
			if err != nil {
				return err
			}

			bz, err := types.ModuleCdc.MarshalJSON(types.QueryCalculateHashParams{Vote: vote, Nonce: nonce})
			if err != nil {
				return err
			}
			res, _, err := clientCtx.QueryWithData(queryRoute(types.QueryCalculateHash), bz)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(res) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
