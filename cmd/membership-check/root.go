package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	membership "github.com/goliatone/go-membership"
	"github.com/goliatone/go-membership/adapters/gocommand"
	"github.com/goliatone/go-membership/adapters/zaplog"
	"github.com/goliatone/go-membership/core"
	"github.com/goliatone/go-membership/login"
	sqlstore "github.com/goliatone/go-membership/store/sql"
)

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	var roles []string
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "membership-check <user-id> <email>",
		Short: "Apply the membership login hook for a single user",
		Long: "Queries the CRM for an active membership by email and grants or revokes the configured roles.\n" +
			"Configuration is read from SHEEP_* environment variables.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), stdout, stderr, membership.User{
				ID:    strings.TrimSpace(args[0]),
				Email: strings.TrimSpace(args[1]),
				Roles: roles,
			}, checkOnly)
		},
	}
	cmd.Flags().StringSliceVar(&roles, "role", nil, "roles the user already holds (repeatable)")
	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "only report the membership status, leave roles untouched")
	return cmd
}

func run(ctx context.Context, stdout io.Writer, stderr io.Writer, user membership.User, checkOnly bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	envCfg, err := parseEnv()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	logger := zaplog.New(stderr, envCfg.debugEnabled())
	defer func() { _ = logger.Sync() }()

	opts := []membership.Option{
		membership.WithLoggerProvider(logger),
		membership.WithConfigProvider(core.NewCfgxConfigProvider(envCfg)),
	}
	if strings.TrimSpace(envCfg.RoleDBDriver) != "" {
		client, err := sqlstore.Open(ctx, sqlstore.Config{
			Driver: envCfg.RoleDBDriver,
			DSN:    envCfg.RoleDBDSN,
			Debug:  envCfg.debugEnabled(),
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return err
		}
		defer func() { _ = client.Close() }()
		store, err := sqlstore.NewRoleStore(client)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return err
		}
		opts = append(opts, membership.WithRoleAssigner(store))
	} else {
		store := login.NewMemoryRoleStore()
		store.Seed(user.ID, user.Roles...)
		opts = append(opts, membership.WithRoleAssigner(store))
	}

	facade, err := membership.New(ctx, membership.Config{}, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	if checkOnly {
		return checkMembership(ctx, stdout, stderr, facade, user)
	}

	decision, err := facade.OnLogin(ctx, user)
	fmt.Fprintf(stdout, "user %s: %s\n", user.ID, decision)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", membership.SystemErrorMessage(err))
		return err
	}
	if reader, ok := facade.Roles().(core.RoleReader); ok {
		if current, err := reader.Roles(ctx, user.ID); err == nil {
			fmt.Fprintf(stdout, "roles: %s\n", strings.Join(current, ","))
		}
	}
	return nil
}

// checkMembership answers the membership query over the go-command dispatcher.
func checkMembership(
	ctx context.Context,
	stdout io.Writer,
	stderr io.Writer,
	facade *membership.Facade,
	user membership.User,
) error {
	subscriptions, err := gocommand.RegisterFacade(gocommand.NewRegistryAdapter(nil), facade)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	defer subscriptions.Unsubscribe()

	member, err := gocommand.HasActiveMembership(ctx, user.Email)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", membership.SystemErrorMessage(err))
		return err
	}
	fmt.Fprintf(stdout, "%s active membership: %t\n", user.Email, member)
	return nil
}
