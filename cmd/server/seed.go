package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/services/roster"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create random knights in the configured store",
	Long:  `Roll random knights and create them through the knight service. Nickname collisions are skipped.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 10, fmt.Sprintf("number of knights to roll (1-%d)", roster.MaxCount))
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := buildStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	rosterService, err := roster.New(&roster.Config{
		Roller: dice.DefaultRoller,
		Clock:  st.clock,
	})
	if err != nil {
		return fmt.Errorf("failed to create roster: %w", err)
	}

	out, err := rosterService.Generate(ctx, &roster.GenerateInput{Count: seedCount})
	if err != nil {
		return fmt.Errorf("failed to roll knights: %w", err)
	}

	created, skipped := 0, 0
	for _, input := range out.Knights {
		res, err := st.knights.CreateKnight(ctx, input)
		if errors.IsAlreadyExists(err) {
			skipped++
			slog.DebugContext(ctx, "skipping taken nickname", "nickname", input.Nickname)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create knight %s: %w", input.Nickname, err)
		}

		created++
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-32s  age %-3d attack %-3d exp %d\n",
			res.Knight.ID, res.Knight.Nickname, res.Knight.Age, res.Knight.Attack, res.Knight.Exp)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\ncreated %d knights, skipped %d nickname collisions\n", created, skipped)
	return nil
}
