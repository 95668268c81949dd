package cli

import (
	"fmt"
	"os"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func DumpStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-state",
		Short: "Prints the persisted engine records",
		Args:  cobra.ExactArgs(0),
		RunE:  dumpState,
	}

	cmd.Flags().Int64("tournament", -1, "Only dump the tournament with this id and its teams")

	return cmd
}

func dumpState(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}
	only, err := cmd.Flags().GetInt64("tournament")
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}

	printer := spew.ConfigState{Indent: "  ", SortKeys: true}

	if only < 0 {
		globalConfig, err := dbClient.GetGlobalConfig(ctx)
		if err != nil && !db.IsNotFoundError(err) {
			return err
		}
		fmt.Println("Global config:")
		printer.Fdump(os.Stdout, globalConfig)

		bridge, err := dbClient.GetBridgeConfig(ctx)
		if err != nil && !db.IsNotFoundError(err) {
			return err
		}
		fmt.Println("Bridge config:")
		printer.Fdump(os.Stdout, bridge)
	}

	var tournaments []*model.TournamentDocument
	if only >= 0 {
		tournament, err := dbClient.GetTournament(ctx, uint32(only))
		if err != nil {
			return err
		}
		tournaments = append(tournaments, tournament)
	} else {
		tournaments, err = dbClient.FindTournaments(ctx)
		if err != nil {
			return err
		}
	}

	for _, tournament := range tournaments {
		teams, err := dbClient.FindTeamsByTournament(ctx, tournament.ID)
		if err != nil {
			return err
		}
		// the filter bits are not readable
		tournament.Bloom = nil

		fmt.Printf("Tournament %d (%s), %d teams:\n", tournament.ID, tournament.Status, len(teams))
		printer.Fdump(os.Stdout, tournament)
		for _, team := range teams {
			printer.Fdump(os.Stdout, team)
		}
	}
	return nil
}
