package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List knights",
	Long:  `List every knight, or only the fallen ones with --filter heroes.`,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get <knight-id>",
	Short: "Get a knight by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var renameCmd = &cobra.Command{
	Use:   "rename <knight-id> <nickname>",
	Short: "Change a knight's nickname",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var killCmd = &cobra.Command{
	Use:   "kill <knight-id>",
	Short: "Mark a knight dead, making it a hero",
	Args:  cobra.ExactArgs(1),
	RunE:  runKill,
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", `Listing filter ("" or "heroes")`)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	knights, err := newAPIClient(apiURL, timeout).listKnights(ctx, listFilter)
	if err != nil {
		return fmt.Errorf("failed to list knights: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(knights) == 0 {
		fmt.Fprintln(out, "no knights found")
		return nil
	}
	for i := range knights {
		printKnight(out, &knights[i])
	}
	fmt.Fprintf(out, "\n%d knights\n", len(knights))
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	knight, err := newAPIClient(apiURL, timeout).getKnight(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get knight: %w", err)
	}

	printKnight(cmd.OutOrStdout(), knight)
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	knight, err := newAPIClient(apiURL, timeout).renameKnight(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to rename knight: %w", err)
	}

	printKnight(cmd.OutOrStdout(), knight)
	return nil
}

func runKill(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := newAPIClient(apiURL, timeout).deleteKnight(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to kill knight: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "knight %s has fallen and joins the heroes\n", args[0])
	return nil
}
