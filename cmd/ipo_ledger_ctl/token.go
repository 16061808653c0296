package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/platform/config"
	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/google/subcommands"
)

// tokenCmd signs a bearer token with the server's JWT_SECRET for local development
// and smoke tests. Production tokens come from the identity provider.
type tokenCmd struct {
	out io.Writer

	userID string
	role   string
	ttl    time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "sign a development JWT for the API" }
func (*tokenCmd) Usage() string {
	return `token -user <id> [-role investor|admin] [-ttl 1h]

  Prints a JWT signed with JWT_SECRET and issued by JWT_ISSUER.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.userID, "user", "", "User ID placed in the sub claim (required)")
	f.StringVar(&c.role, "role", utils.RoleInvestor, "Role claim: investor or admin")
	f.DurationVar(&c.ttl, "ttl", time.Hour, "Token lifetime")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		return subcommands.ExitUsageError
	}
	if c.role != utils.RoleInvestor && c.role != utils.RoleAdmin {
		fmt.Fprintf(os.Stderr, "Error: unknown role %q\n", c.role)
		return subcommands.ExitUsageError
	}
	if c.ttl <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ttl must be positive")
		return subcommands.ExitUsageError
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	token, err := utils.GenerateJWT(c.userID, c.role, cfg.JWTSecret, c.ttl, cfg.JWTIssuer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, token)
	return subcommands.ExitSuccess
}
