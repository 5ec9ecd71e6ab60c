package cmd

import (
	"fmt"

	"github.com/abhisek/socra/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		res, err := s.DB().Exec("DELETE FROM sessions")
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		n, _ := res.RowsAffected()
		fmt.Printf("Deleted %d session(s).\n", n)
		return nil
	},
}
