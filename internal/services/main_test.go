package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/ledger"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

const (
	testPlatformFee  = 10
	testVerifierFee  = 10
	testRoleRent     = 1_000
	testRosterRent   = 100
	testSponsorPool  = 1_000
	testEntryFee     = 100
	testOrganizerFee = 1_000 // 10%
)

func newKey(t *testing.T) solana.PublicKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*types.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event *types.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) ofType(typ types.EventType) []*types.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*types.Event
	for _, e := range p.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// harness is an initialized engine with an organizer, an operator, three
// verifiers and one approved asset mint.
type harness struct {
	t         *testing.T
	ctx       context.Context
	db        *db.MemoryDatabase
	svc       *Service
	publisher *recordingPublisher

	deployer  solana.PublicKey
	admin     solana.PublicKey
	wallet    solana.PublicKey
	feeMint   solana.PublicKey
	asset     solana.PublicKey
	organizer solana.PublicKey
	operator  solana.PublicKey
	sponsor   solana.PublicKey
	verifiers []solana.PublicKey
}

func newTestConfig(t *testing.T, deployer solana.PublicKey) *config.Config {
	return &config.Config{
		Engine: config.EngineConfig{
			ProgramID:       newKey(t).String(),
			Deployer:        deployer.String(),
			RoleRecordRent:  testRoleRent,
			RosterEntryRent: testRosterRent,
		},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:         t,
		ctx:       context.Background(),
		db:        db.NewMemoryDatabase(),
		publisher: &recordingPublisher{},
		deployer:  newKey(t),
		admin:     newKey(t),
		wallet:    newKey(t),
		feeMint:   newKey(t),
		asset:     newKey(t),
		organizer: newKey(t),
		operator:  newKey(t),
		sponsor:   newKey(t),
	}
	h.svc = NewService(newTestConfig(t, h.deployer), h.db, h.publisher)

	require.NoError(t, h.svc.Initialize(h.ctx, h.deployer, h.initializeRequest()))

	h.fund(h.admin, ledger.NativeMint, 1_000_000)
	h.fund(h.wallet, h.feeMint, 10_000)
	h.fund(h.organizer, h.feeMint, 1_000)
	h.fund(h.sponsor, h.asset, 100_000)

	h.grant(h.organizer, types.RoleOrganizer)
	h.grant(h.operator, types.RoleOperator)
	for i := 0; i < 3; i++ {
		verifier := newKey(t)
		h.grant(verifier, types.RoleVerifier)
		h.verifiers = append(h.verifiers, verifier)
	}

	require.NoError(t, h.svc.ApproveToken(h.ctx, h.operator, ApproveTokenRequest{
		Mint:           h.asset,
		MinSponsorPool: 100,
		MinEntryFee:    10,
	}))
	return h
}

func (h *harness) initializeRequest() InitializeRequest {
	return InitializeRequest{
		Admin:           h.admin,
		PlatformWallet:  h.wallet,
		FeeMint:         h.feeMint,
		PlatformFee:     testPlatformFee,
		VerifierFee:     testVerifierFee,
		MaxOrganizerFee: 5_000,
		MinTeams:        2,
		MaxTeams:        20,
		ConsensusRate:   60,
		FalsePrecision:  0.000065,
	}
}

func (h *harness) fund(owner, mint solana.PublicKey, amount uint64) {
	h.t.Helper()
	require.NoError(h.t, h.svc.Credit(h.ctx, h.deployer, CreditRequest{Owner: owner, Mint: mint, Amount: amount}))
}

func (h *harness) grant(target solana.PublicKey, role types.Role) {
	h.t.Helper()
	require.NoError(h.t, h.svc.GrantRole(h.ctx, h.admin, RoleRequest{Target: target, Role: role}))
}

func (h *harness) balance(owner, mint solana.PublicKey) uint64 {
	h.t.Helper()
	acc, err := h.svc.GetTokenAccount(h.ctx, owner, mint)
	require.NoError(h.t, err)
	return acc.Amount
}

func (h *harness) tournamentConfig() model.TournamentConfig {
	return model.TournamentConfig{
		OrganizerFee:   testOrganizerFee,
		SponsorPool:    testSponsorPool,
		EntryFee:       testEntryFee,
		ExpirationTime: time.Now().Add(time.Hour).Unix(),
		TeamSize:       2,
		MinTeams:       2,
		MaxTeams:       4,
	}
}

func (h *harness) createTournament(mutate func(c *model.TournamentConfig)) (*model.TournamentDocument, error) {
	h.t.Helper()
	c := h.tournamentConfig()
	if mutate != nil {
		mutate(&c)
	}
	err := h.svc.ApproveDelegate(h.ctx, h.sponsor, ApproveDelegateRequest{
		Delegate: h.organizer,
		Mint:     h.asset,
		Amount:   c.SponsorPool,
	})
	require.NoError(h.t, err)
	return h.svc.CreateTournament(h.ctx, h.organizer, CreateTournamentRequest{
		Sponsor:   h.sponsor,
		AssetMint: h.asset,
		Config:    c,
	})
}

func (h *harness) mustCreateTournament() uint32 {
	h.t.Helper()
	tournament, err := h.createTournament(nil)
	require.NoError(h.t, err)
	return tournament.ID
}

// player returns a new identity holding enough of the asset to pay entry fees.
func (h *harness) player() solana.PublicKey {
	h.t.Helper()
	p := newKey(h.t)
	h.fund(p, h.asset, 10*testEntryFee)
	return p
}

func (h *harness) register(caller solana.PublicKey, id uint32, captain solana.PublicKey, teammates ...solana.PublicKey) error {
	return h.svc.RegisterTournament(h.ctx, caller, RegisterTournamentRequest{
		TournamentID: id,
		Captain:      captain,
		Teammates:    teammates,
	})
}

func (h *harness) tournament(id uint32) *model.TournamentDocument {
	h.t.Helper()
	tournament, err := h.svc.GetTournament(h.ctx, id)
	require.NoError(h.t, err)
	return tournament
}

func (h *harness) claimable(identity solana.PublicKey, role types.Role) uint64 {
	h.t.Helper()
	record, err := h.svc.GetRole(h.ctx, identity, role)
	require.NoError(h.t, err)
	return record.ClaimableBalance
}

// requirePoolConsistent checks the prize pool against the escrow balance
// and the running totals of the tournament.
func (h *harness) requirePoolConsistent(id uint32) {
	h.t.Helper()
	tournament := h.tournament(id)
	require.Equal(h.t, h.balance(tournament.Escrow, tournament.AssetMint), tournament.PrizePool)
	expected := tournament.EntryFeesCollected + tournament.Config.SponsorPool - tournament.RefundsPaid - tournament.RewardsPaid
	require.Equal(h.t, expected, tournament.PrizePool)
}
