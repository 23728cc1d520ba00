package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

var (
	// Token flags
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an admin bearer token signed with ADMIN_JWT_SECRET",
	Long: `Print an admin JWT for the write routes. The server only checks tokens
when ADMIN_JWT_SECRET is set.

Examples:
  weddingshades token                     # valid for 24 hours
  weddingshades token --ttl 720h --sub cms`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.AdminJWTSecret == "" {
			return errors.New("ADMIN_JWT_SECRET is not set")
		}

		token, err := utils.GenerateJWT([]byte(cfg.AdminJWTSecret), tokenSubject, utils.AdminRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "admin", "Subject claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
