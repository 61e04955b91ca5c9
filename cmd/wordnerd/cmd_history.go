package main

import (
	"sort"

	"github.com/spf13/cobra"

	"wordnerd/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show recorded solve sessions",
	Long: `History lists recorded sessions, newest first. With a session id it
prints that session's full guess trace instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 1 {
			guesses, err := st.SessionGuesses(args[0])
			if err != nil {
				return err
			}
			if len(guesses) == 0 {
				cmd.Printf("no guesses recorded for session %s\n", args[0])
				return nil
			}
			for _, g := range guesses {
				cmd.Printf("%2d  %s  %s\n", g.Attempt, g.Word, g.Pattern)
			}
			return nil
		}

		sessions, err := st.Sessions(historyLimit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			cmd.Println("no sessions recorded yet")
			return nil
		}
		for _, s := range sessions {
			secret := s.Secret
			if secret == "" {
				secret = "-"
			}
			cmd.Printf("%s  %s  %-8s  %-10s  secret=%-6s  %d guesses  %s\n",
				s.ID[:8], s.StartedAt.Format("2006-01-02 15:04"),
				s.Mode, s.Outcome, secret, s.Attempts, s.Elapsed.Round(timeRound))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate solve statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.ReadStats()
		if err != nil {
			return err
		}
		if stats.Total == 0 {
			cmd.Println("no sessions recorded yet")
			return nil
		}
		cmd.Printf("Sessions: %d  Won: %d  Win rate: %.1f%%\n",
			stats.Total, stats.Won, stats.WinRate()*100)

		attempts := make([]int, 0, len(stats.Distribution))
		for n := range stats.Distribution {
			attempts = append(attempts, n)
		}
		sort.Ints(attempts)
		for _, n := range attempts {
			cmd.Printf("%2d guesses: %d\n", n, stats.Distribution[n])
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum sessions to list")
}
