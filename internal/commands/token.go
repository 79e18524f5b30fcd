package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/spf13/cobra"
)

func newTokenCommand(flags *globalFlags) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.JWTExpiryDuration
			}
			token, err := middleware.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "client identifier stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
