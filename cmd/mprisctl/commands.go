package main

import (
	"errors"

	"github.com/genricoloni/mprisctl/internal/config"
	"github.com/genricoloni/mprisctl/internal/domain"
	"github.com/spf13/cobra"
)

const defaultServiceName = "org.mpris.MediaPlayer2.spotify"

// rootFlags holds the options shared by every subcommand
type rootFlags struct {
	serviceName string
	configPath  string
	verbose     bool
}

// executeFunc carries out one parsed command
type executeFunc func(cmd *cobra.Command, c domain.Command) error

// newRootCmd builds the command tree. Each leaf parses its arguments into a
// domain.Command and hands it to exec.
func newRootCmd(flags *rootFlags, exec executeFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "mprisctl",
		Short:         "Control an MPRIS media player from the command line",
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.serviceName, "service-name", "s", "",
		"bus name of the player (default "+defaultServiceName+")")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"config file (default "+config.DefaultConfigPath()+")")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		simpleCmd(domain.CommandNext, "Skip to the next track", exec),
		simpleCmd(domain.CommandPrevious, "Skip to the previous track", exec),
		simpleCmd(domain.CommandPlayPause, "Toggle playback", exec),
		simpleCmd(domain.CommandNowPlaying, "Show a notification for the current track", exec),
		newPlaySongCmd(exec),
	)

	return root
}

func simpleCmd(kind domain.CommandKind, short string, exec executeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return exec(cmd, domain.Command{Kind: kind})
		},
	}
}

func newPlaySongCmd(exec executeFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play-song",
		Short: "Play a track by URI or by searching for it",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return errors.New(`play-song needs a mode: "uri" or "search"`)
		},
	}

	uri := &cobra.Command{
		Use:   "uri <uri>",
		Short: "Play a URI as is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return exec(cmd, domain.Command{
				Kind: domain.CommandPlaySong,
				Play: domain.PlayMode{URI: args[0]},
			})
		},
	}

	var list bool
	var count int
	search := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Search for a track and play the first or a chosen result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return exec(cmd, domain.Command{
				Kind: domain.CommandPlaySong,
				Play: domain.PlayMode{Search: &domain.SearchMode{
					Terms: args,
					List:  list,
					Count: count,
				}},
			})
		},
	}
	search.Flags().BoolVarP(&list, "list", "l", false, "list results and ask which one to play")
	search.Flags().IntVarP(&count, "count", "c", domain.DefaultDisplayCount, "number of results to list")

	cmd.AddCommand(uri, search)
	return cmd
}
