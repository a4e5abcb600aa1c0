package simulator

import (
	"fmt"
	"sort"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/crypto"
	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/GPTx-global/bitoracle/oracle/config"
	"github.com/GPTx-global/bitoracle/oracle/log"
	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// Participant is a configured node with its derived address and the secret
// of its current commitment.
type Participant struct {
	config.NodeConfig
	Address sdk.AccAddress
	nonce   []byte
}

// AddressFor derives a deterministic account address from a node name.
func AddressFor(name string) sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKeyFromSecret([]byte(name)).PubKey().Address())
}

// Report is the outcome of one simulated round.
type Report struct {
	Round       int
	Resolution  types.Resolution
	Slashed     []string
	Failures    []string
	Escrow      sdk.Coin
	Balances    map[string]sdk.Coin
	Invariants  string
	InvariantOK bool
}

// Simulator plays a configured scenario against an in-memory chain.
type Simulator struct {
	cfg       config.ConfigData
	chain     *Chain
	authority sdk.AccAddress
	nodes     []*Participant
	oracleId  uint64
}

// New builds the chain and funds every participant from the configuration.
func New(cfg config.ConfigData, logger tmlog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chain, err := NewChain(cfg.Chain.ID, GenesisTime, logger)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:       cfg,
		chain:     chain,
		authority: AddressFor("authority"),
	}

	for _, n := range cfg.Nodes {
		p := &Participant{NodeConfig: n, Address: AddressFor(n.Name)}
		balance, err := sdk.ParseCoinsNormalized(n.Balance)
		if err != nil {
			return nil, err
		}
		if err := chain.Fund(p.Address, balance); err != nil {
			return nil, err
		}
		s.nodes = append(s.nodes, p)
	}
	chain.Advance(0)

	return s, nil
}

func (s *Simulator) Chain() *Chain {
	return s.chain
}

func (s *Simulator) Participants() []*Participant {
	return s.nodes
}

func (s *Simulator) OracleId() uint64 {
	return s.oracleId
}

func (s *Simulator) participant(name string) *Participant {
	for _, p := range s.nodes {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Start deploys the oracle and lets every participant join.
func (s *Simulator) Start() error {
	collateral := s.cfg.Collateral()
	res, err := s.chain.Deliver(types.NewMsgCreateOracle(s.authority, collateral, s.cfg.Oracle.MaxNodes, s.cfg.TieBreak()))
	if err != nil {
		return fmt.Errorf("failed to create oracle: %w", err)
	}
	var created types.MsgCreateOracleResponse
	if err := types.ModuleCdc.UnmarshalJSON(res.Data, &created); err != nil {
		return err
	}
	s.oracleId = created.OracleId
	log.Infof("oracle %d created, escrow %s", s.oracleId, types.EscrowAddress(s.oracleId))

	for _, p := range s.nodes {
		if _, err := s.chain.Deliver(types.NewMsgJoinNetwork(s.oracleId, p.Address, collateral)); err != nil {
			log.Errorf("node %s failed to join: %v", p.Name, err)
			continue
		}
		log.Debugf("node %s joined as %s", p.Name, p.Address)
	}
	s.chain.Advance(s.cfg.BlockTime())
	return nil
}

// Run plays every configured round and returns one report per round.
func (s *Simulator) Run() ([]Report, error) {
	reports := make([]Report, 0, s.cfg.Oracle.Rounds)
	for round := 1; round <= s.cfg.Oracle.Rounds; round++ {
		report, err := s.RunRound(round)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// RunRound drives one request through commit, leak slashing, reveal and
// resolution. Rejected node messages are recorded in the report; a failure
// of the authority aborts the round.
func (s *Simulator) RunRound(round int) (Report, error) {
	report := Report{Round: round}
	fail := func(name, step string, err error) {
		log.Errorf("round %d: %s %s failed: %v", round, name, step, err)
		report.Failures = append(report.Failures, fmt.Sprintf("%s %s: %v", name, step, err))
	}

	duration := int64(s.cfg.RevealDuration() / time.Second)
	if _, err := s.chain.Deliver(types.NewMsgStartRequest(s.oracleId, s.authority, duration)); err != nil {
		return report, fmt.Errorf("failed to start request: %w", err)
	}
	log.Infof("round %d: request started, reveal window %s", round, s.cfg.RevealDuration())
	s.chain.Advance(s.cfg.BlockTime())

	for _, p := range s.nodes {
		if !p.Commit {
			continue
		}
		p.nonce = crypto.CRandBytes(types.NonceLength)
		digest := types.MustCalculateHash(p.Vote, p.nonce)
		res, err := s.chain.Deliver(types.NewMsgCommit(s.oracleId, p.Address, digest))
		if err != nil {
			fail(p.Name, "commit", err)
			p.nonce = nil
			continue
		}
		var out types.MsgCommitResponse
		if err := types.ModuleCdc.UnmarshalJSON(res.Data, &out); err == nil && out.RevealStarted {
			log.Infof("round %d: all active nodes committed", round)
		}
	}
	s.chain.Advance(s.cfg.BlockTime())

	for _, p := range s.nodes {
		if p.LeakTo == "" || p.nonce == nil {
			continue
		}
		slasher := s.participant(p.LeakTo)
		if _, err := s.chain.Deliver(types.NewMsgSlashColluding(s.oracleId, slasher.Address, p.Address, p.Vote, p.nonce)); err != nil {
			fail(slasher.Name, "slash "+p.Name, err)
			continue
		}
		report.Slashed = append(report.Slashed, p.Name)
		log.Infof("round %d: %s slashed %s with the leaked secret", round, slasher.Name, p.Name)
	}

	for _, p := range s.nodes {
		if !p.Reveal || p.nonce == nil {
			continue
		}
		if _, err := s.chain.Deliver(types.NewMsgReveal(s.oracleId, p.Address, p.Vote, p.nonce)); err != nil {
			fail(p.Name, "reveal", err)
		}
	}

	// past the deadline
	s.chain.Advance(s.cfg.RevealDuration() + time.Second)

	res, err := s.chain.Deliver(types.NewMsgResolve(s.oracleId, s.authority, nil))
	if err != nil {
		return report, fmt.Errorf("failed to resolve: %w", err)
	}
	var out types.MsgResolveResponse
	if err := types.ModuleCdc.UnmarshalJSON(res.Data, &out); err != nil {
		return report, err
	}
	report.Resolution = out.Resolution
	s.chain.Advance(s.cfg.BlockTime())

	for _, p := range s.nodes {
		p.nonce = nil
	}
	s.fillBalances(&report)
	return report, nil
}

func (s *Simulator) fillBalances(report *Report) {
	ctx := s.chain.Context()
	oracle, found := s.chain.Keeper.GetOracle(ctx, s.oracleId)
	if !found {
		return
	}

	report.Escrow = s.chain.Keeper.EscrowBalance(ctx, oracle)
	report.Balances = make(map[string]sdk.Coin, len(s.nodes))
	for _, p := range s.nodes {
		report.Balances[p.Name] = s.chain.Bank.GetBalance(ctx, p.Address, oracle.RequiredCollateral.Denom)
	}
	msg, broken := s.chain.AssertInvariants()
	report.InvariantOK = !broken
	if broken {
		report.Invariants = msg
	}
}

// Print logs a report in a stable order.
func (r Report) Print() {
	res := r.Resolution
	log.Infof("round %d resolved %t (true=%d false=%d)", r.Round, res.ResolutionBit, res.CountTrue, res.CountFalse)
	log.Infof("forfeited %s, reward per winner %s, remainder %s", res.Forfeited, res.RewardPerNode, res.Remainder)
	if len(r.Slashed) > 0 {
		log.Infof("slashed for collusion: %v", r.Slashed)
	}
	for _, f := range r.Failures {
		log.Infof("rejected: %s", f)
	}

	names := make([]string, 0, len(r.Balances))
	for name := range r.Balances {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Infof("%-15s: %s", name, r.Balances[name])
	}
	log.Infof("%-15s: %s", "escrow", r.Escrow)
	if !r.InvariantOK {
		log.Errorf("invariant broken: %s", r.Invariants)
	}
}

// Err reports a broken invariant as an error.
func (r Report) Err() error {
	if r.InvariantOK {
		return nil
	}
	return errorsmod.Wrap(errBrokenInvariant, r.Invariants)
}

var errBrokenInvariant = errorsmod.Register("simulator", 2, "invariant broken")
