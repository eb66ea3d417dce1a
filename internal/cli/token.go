package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/config"
	"github.com/sangkips/fishledger/pkg/utils"
	"github.com/spf13/cobra"
)

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	Owner string
	Email string
}

// NewTokenCommand creates the token command. It signs a bearer token for an
// existing owner id with the configured secret, for local development.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for an owner",
		Long: `Print a bearer token for an owner, signed with JWT_SECRET.

Example:
  fishledger token --owner 3f1c2a9e-8f55-4c1e-9d7e-2b8f0a6c1d42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := uuid.Parse(opts.Owner)
			if err != nil || ownerID == uuid.Nil {
				return fmt.Errorf("--owner must be a non-nil UUID")
			}

			cfg := config.Load()
			token, err := mintToken(cfg, ownerID, opts.Email)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Owner, "owner", "", "owner UUID (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "optional email claim")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func mintToken(cfg *config.Config, ownerID uuid.UUID, email string) (string, error) {
	if cfg.JWT.Secret == "" {
		return "", fmt.Errorf("JWT_SECRET must be set")
	}
	return utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours).GenerateAccessToken(ownerID, email)
}
