// Command echallan is a terminal dashboard for the eChallan enforcement
// platform. It drives the same session store, API client, auth service, and
// route guard that any other frontend would.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/echallan/enforcement-platform/pkg/client"
)

type commandFn func(cctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	// requiredRole gates the command through the route guard before it runs.
	// Empty means any authenticated identity; public commands skip the guard.
	requiredRole string
	public       bool
	run          commandFn
}

type commandContext struct {
	ctx   context.Context
	api   *client.APIClient
	auth  *client.AuthService
	guard *client.Guard
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2)
	}

	baseURL := os.Getenv("ECHALLAN_API")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	store := client.NewSessionStore(stateDir())
	api := client.NewAPIClient(baseURL, store)
	auth := client.NewAuthService(api, store)
	guard := client.NewGuard(auth)

	// Rehydrate before any guard decision.
	auth.Initialize()

	cctx := &commandContext{
		ctx:   context.Background(),
		api:   api,
		auth:  auth,
		guard: guard,
	}

	if !cmd.public {
		switch guard.Evaluate(cmd.requiredRole) {
		case client.DecisionPending:
			fmt.Fprintln(os.Stderr, "session still loading, try again")
			os.Exit(1)
		case client.DecisionDenied:
			fmt.Fprintln(os.Stderr, "access denied: please login first (echallan login <identifier> <password>)")
			os.Exit(1)
		}
	}

	if err := cmd.run(cctx, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmdName, err)
		os.Exit(1)
	}
}

// stateDir is where the session record lives, e.g. ~/.config/echallan.
func stateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "echallan")
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in with an email/username and password",
			public:      true,
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and clear the stored session",
			public:      true,
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the current session",
			run:         runWhoami,
		},
		"violations": {
			name:         "violations",
			description:  "Live detection feed (admin)",
			requiredRole: client.RoleAdmin,
			run:          runViolations,
		},
		"challans": {
			name:        "challans",
			description: "List challans (admin: all, citizen: own vehicle)",
			run:         runChallans,
		},
		"cameras": {
			name:         "cameras",
			description:  "List registered cameras (admin)",
			requiredRole: client.RoleAdmin,
			run:          runCameras,
		},
		"stream": {
			name:         "stream",
			description:  "Show stream metadata for a camera (admin)",
			requiredRole: client.RoleAdmin,
			run:          runStream,
		},
		"stats": {
			name:         "stats",
			description:  "Platform statistics (admin)",
			requiredRole: client.RoleAdmin,
			run:          runStats,
		},
		"pay": {
			name:         "pay",
			description:  "Pay a challan by id (citizen)",
			requiredRole: client.RoleUser,
			run:          runPay,
		},
		"payments": {
			name:         "payments",
			description:  "Payment history (citizen)",
			requiredRole: client.RoleUser,
			run:          runPayments,
		},
		"profile": {
			name:         "profile",
			description:  "Show or update the profile (citizen)",
			requiredRole: client.RoleUser,
			run:          runProfile,
		},
		"support": {
			name:         "support",
			description:  "List or create support tickets (citizen)",
			requiredRole: client.RoleUser,
			run:          runSupport,
		},
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: echallan <command> [args]")
	fmt.Fprintln(os.Stderr)

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cmds[name].description)
	}
	w.Flush()
}
