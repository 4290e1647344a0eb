package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const directorPath = apiPath + "/director"

// directorCmd builds a command that sends one director request and prints the resulting view
func directorCmd(use, short string, args cobra.PositionalArgs, send func(ctx context.Context, args []string) (GameState, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := send(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func playerPath(id string) string {
	return "/players/" + url.PathEscape(id)
}

func newStateCmd() *cobra.Command {
	return directorCmd("state", "Show the full director view", cobra.NoArgs,
		func(ctx context.Context, _ []string) (GameState, error) {
			return client.director(ctx, http.MethodGet, "/state", nil)
		})
}

func newStartCmd() *cobra.Command {
	return directorCmd("start", "Start the round (lobby only)", cobra.NoArgs,
		func(ctx context.Context, _ []string) (GameState, error) {
			return client.director(ctx, http.MethodPost, "/game/start", nil)
		})
}

func newResetCmd() *cobra.Command {
	return directorCmd("reset", "Return to the lobby", cobra.NoArgs,
		func(ctx context.Context, _ []string) (GameState, error) {
			return client.director(ctx, http.MethodPost, "/game/reset", nil)
		})
}

func newZoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Zone commands",
	}

	cmd.AddCommand(directorCmd("set <latitude> <longitude> <radius>", "Replace the zone (radius in metres)", cobra.ExactArgs(3),
		func(ctx context.Context, args []string) (GameState, error) {
			values := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return GameState{}, fmt.Errorf("%q is not a number", arg)
				}
				values[i] = v
			}

			body := map[string]float64{
				"latitude":  values[0],
				"longitude": values[1],
				"radius":    values[2],
			}
			return client.director(ctx, http.MethodPut, "/zone", body)
		}))

	return cmd
}

func newSayCmd() *cobra.Command {
	return directorCmd("say <message...>", "Broadcast a banner to every connection", cobra.MinimumNArgs(1),
		func(ctx context.Context, args []string) (GameState, error) {
			body := map[string]string{"text": strings.Join(args, " ")}
			return client.director(ctx, http.MethodPost, "/messages", body)
		})
}

func newKickCmd() *cobra.Command {
	return directorCmd("kick <player-id>", "Remove a player", cobra.ExactArgs(1),
		func(ctx context.Context, args []string) (GameState, error) {
			return client.director(ctx, http.MethodDelete, playerPath(args[0]), nil)
		})
}

func newMoveCmd() *cobra.Command {
	return directorCmd("move <player-id> <team>", "Move a player to a team", cobra.ExactArgs(2),
		func(ctx context.Context, args []string) (GameState, error) {
			team, err := strconv.Atoi(args[1])
			if err != nil || team < 1 {
				return GameState{}, fmt.Errorf("team must be a positive integer")
			}

			body := map[string]int{"team_id": team}
			return client.director(ctx, http.MethodPut, playerPath(args[0])+"/team", body)
		})
}

func newSeekerCmd() *cobra.Command {
	return directorCmd("seeker <player-id>", "Make the player's team the seekers", cobra.ExactArgs(1),
		func(ctx context.Context, args []string) (GameState, error) {
			return client.director(ctx, http.MethodPost, playerPath(args[0])+"/seeker", nil)
		})
}

func newPairCmd() *cobra.Command {
	return directorCmd("pair", "Shuffle the roster into teams of two", cobra.NoArgs,
		func(ctx context.Context, _ []string) (GameState, error) {
			return client.director(ctx, http.MethodPost, "/teams/auto-pair", nil)
		})
}

func newHintCmd() *cobra.Command {
	return directorCmd("hint", "Reveal a hider to the seekers now", cobra.NoArgs,
		func(ctx context.Context, _ []string) (GameState, error) {
			return client.director(ctx, http.MethodPost, "/hints", nil)
		})
}
