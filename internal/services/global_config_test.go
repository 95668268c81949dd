package services

import (
	"testing"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	h := newHarness(t)

	t.Run("config is stored", func(t *testing.T) {
		cfg, err := h.svc.GetGlobalConfig(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, h.admin, cfg.Admin)
		assert.Equal(t, uint16(DefaultMaxVerifiers), cfg.MaxVerifiers)
		assert.Len(t, cfg.Verifiers, 3)
		assert.Equal(t, uint64(3*testRosterRent), cfg.RosterRent)
		assert.Len(t, h.publisher.ofType(types.EventConfigInitialized), 1)
	})

	t.Run("second initialize fails", func(t *testing.T) {
		err := h.svc.Initialize(h.ctx, h.deployer, h.initializeRequest())
		require.ErrorIs(t, err, types.ErrAlreadyInitialized)
		assert.Equal(t, types.KindLifecycle, types.KindOf(err))
	})

	t.Run("only the deployer may initialize", func(t *testing.T) {
		svc := NewService(newTestConfig(t, h.deployer), db.NewMemoryDatabase(), nil)
		err := svc.Initialize(h.ctx, h.admin, h.initializeRequest())
		require.ErrorIs(t, err, types.ErrNotAllowed)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		svc := NewService(newTestConfig(t, h.deployer), db.NewMemoryDatabase(), nil)
		cases := []struct {
			name   string
			mutate func(req *InitializeRequest)
			err    error
		}{
			{"roster not empty", func(req *InitializeRequest) { req.Verifiers = []solana.PublicKey{newKey(t)} }, types.ErrInvalidParams},
			{"zero consensus rate", func(req *InitializeRequest) { req.ConsensusRate = 0 }, types.ErrInvalidParams},
			{"consensus rate above 100", func(req *InitializeRequest) { req.ConsensusRate = 101 }, types.ErrInvalidParams},
			{"min teams above max", func(req *InitializeRequest) { req.MinTeams = 30 }, types.ErrInvalidParams},
			{"zero precision", func(req *InitializeRequest) { req.FalsePrecision = 0 }, types.ErrInvalidPrecision},
			{"precision above one", func(req *InitializeRequest) { req.FalsePrecision = 1.5 }, types.ErrInvalidPrecision},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := h.initializeRequest()
				tc.mutate(&req)
				require.ErrorIs(t, svc.Initialize(h.ctx, h.deployer, req), tc.err)
			})
		}
		_, err := svc.GetGlobalConfig(h.ctx)
		require.ErrorIs(t, err, types.ErrAccountNotInitialized)
	})
}

func TestSetBloomPrecision(t *testing.T) {
	h := newHarness(t)

	t.Run("admin updates precision", func(t *testing.T) {
		require.NoError(t, h.svc.SetBloomPrecision(h.ctx, h.admin, SetBloomPrecisionRequest{Precision: 0.01}))
		cfg, err := h.svc.GetGlobalConfig(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.01, cfg.FalsePrecision)
	})
	t.Run("out of range precision", func(t *testing.T) {
		err := h.svc.SetBloomPrecision(h.ctx, h.admin, SetBloomPrecisionRequest{Precision: 0})
		require.ErrorIs(t, err, types.ErrInvalidPrecision)
	})
	t.Run("non admin rejected", func(t *testing.T) {
		err := h.svc.SetBloomPrecision(h.ctx, h.organizer, SetBloomPrecisionRequest{Precision: 0.5})
		require.ErrorIs(t, err, types.ErrNotAllowed)
	})
	t.Run("administrator role holder accepted", func(t *testing.T) {
		delegate := newKey(t)
		h.grant(delegate, types.RoleAdministrator)
		require.NoError(t, h.svc.SetBloomPrecision(h.ctx, delegate, SetBloomPrecisionRequest{Precision: 0.5}))
	})
}

func TestWithdrawPlatformFee(t *testing.T) {
	h := newHarness(t)
	before := h.balance(h.wallet, h.feeMint)

	require.NoError(t, h.svc.WithdrawPlatformFee(h.ctx, h.admin, WithdrawPlatformFeeRequest{Amount: 500}))
	assert.Equal(t, before-500, h.balance(h.wallet, h.feeMint))
	assert.Equal(t, uint64(500), h.balance(h.admin, h.feeMint))

	err := h.svc.WithdrawPlatformFee(h.ctx, h.admin, WithdrawPlatformFeeRequest{Amount: before})
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	err = h.svc.WithdrawPlatformFee(h.ctx, h.organizer, WithdrawPlatformFeeRequest{Amount: 1})
	require.ErrorIs(t, err, types.ErrNotAllowed)
}

func TestBridge(t *testing.T) {
	h := newHarness(t)
	bridgeAdmin := newKey(t)

	t.Run("only the deployer initializes", func(t *testing.T) {
		err := h.svc.InitializeBridge(h.ctx, h.admin, InitializeBridgeRequest{Admin: bridgeAdmin})
		require.ErrorIs(t, err, types.ErrNotAllowed)
	})
	t.Run("initialize once", func(t *testing.T) {
		req := InitializeBridgeRequest{Admin: bridgeAdmin, UtsProgram: newKey(t), BridgeFee: 5, ChainID: 1}
		require.NoError(t, h.svc.InitializeBridge(h.ctx, h.deployer, req))
		require.ErrorIs(t, h.svc.InitializeBridge(h.ctx, h.deployer, req), types.ErrAlreadyInitialized)
	})
	t.Run("fee setter is gated by the bridge admin", func(t *testing.T) {
		err := h.svc.SetBridgeFee(h.ctx, h.admin, SetBridgeFeeRequest{Fee: 7})
		require.ErrorIs(t, err, types.ErrNotAllowed)

		require.NoError(t, h.svc.SetBridgeFee(h.ctx, bridgeAdmin, SetBridgeFeeRequest{Fee: 7}))
		bridge, err := h.svc.GetBridgeConfig(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), bridge.BridgeFee)
	})
}
