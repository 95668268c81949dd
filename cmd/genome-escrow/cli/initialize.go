package cli

import (
	"errors"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	dbmodel "github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/services"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/NightRunnerEB/Genome-sub000/pkg"
	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// InitializeCmd creates the global configuration from the genesis section.
// Usage: ./genome-escrow initialize --config config.yml [--caller <base58>]
func InitializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initialize",
		Short: "Creates the global configuration from the genesis section of the config",
		Args:  cobra.ExactArgs(0),
		RunE:  initialize,
	}

	cmd.Flags().String("caller", "", "Identity submitting the action (defaults to the engine deployer)")

	return cmd
}

func initialize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Genesis == nil {
		return errors.New("config has no genesis section")
	}

	caller, err := resolveCaller(cmd, cfg)
	if err != nil {
		return err
	}
	req, err := initializeRequest(cfg.Genesis)
	if err != nil {
		return err
	}

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return fmt.Errorf("failed to setup db model: %w", err)
	}
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	service := services.NewService(cfg, db.NewDbWithMetrics(dbClient), nil)
	result, err := service.Submit(ctx, services.Action{
		Name:    types.ActionInitialize,
		Caller:  caller,
		Payload: req,
	})
	if err != nil {
		return fmt.Errorf("initialize rejected: %w", err)
	}

	log.Info().Stringer("caller", caller).Msg("Global config initialized")
	spew.Dump(result.Snapshot)
	return nil
}

func resolveCaller(cmd *cobra.Command, cfg *config.Config) (solana.PublicKey, error) {
	raw, err := cmd.Flags().GetString("caller")
	if err != nil {
		return solana.PublicKey{}, err
	}
	if raw != "" {
		return pkg.ParseIdentity(raw)
	}
	if deployer := cfg.Engine.DeployerKey(); deployer != nil {
		return *deployer, nil
	}
	return solana.PublicKey{}, errors.New("no deployer configured, pass --caller")
}

func initializeRequest(genesis *config.GenesisConfig) (services.InitializeRequest, error) {
	admin, err := pkg.ParseIdentity(genesis.Admin)
	if err != nil {
		return services.InitializeRequest{}, err
	}
	wallet, err := pkg.ParseIdentity(genesis.PlatformWallet)
	if err != nil {
		return services.InitializeRequest{}, err
	}
	feeMint, err := pkg.ParseIdentity(genesis.FeeMint)
	if err != nil {
		return services.InitializeRequest{}, err
	}

	return services.InitializeRequest{
		Admin:           admin,
		PlatformWallet:  wallet,
		FeeMint:         feeMint,
		PlatformFee:     genesis.PlatformFee,
		VerifierFee:     genesis.VerifierFee,
		MaxOrganizerFee: genesis.MaxOrganizerFee,
		MinTeams:        genesis.MinTeams,
		MaxTeams:        genesis.MaxTeams,
		ConsensusRate:   genesis.ConsensusRate,
		FalsePrecision:  genesis.FalsePrecision,
		MaxVerifiers:    genesis.MaxVerifiers,
	}, nil
}
