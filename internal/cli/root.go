// Package cli implements the wardrobe command-line interface. The CLI plays
// the roles the engine leaves to collaborators: it loads the catalog, keeps
// records and selections in SQLite, and stands in for the economy service.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/internal/paths"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// defaultUser is the user ID when --user is not given.
const defaultUser = "local"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	user      string
	jsonMode  bool
	strict    bool
}

// app is the state shared by one command tree.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	log       *logger.Logger
}

// NewRootCmd creates the top-level "wardrobe" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	root := &cobra.Command{
		Use:   "wardrobe",
		Short: "Compose avatars from layered parts",
		Long: "Wardrobe composes SVG avatars from a catalog of layered parts and\n" +
			"enforces the XP, premium, and purchase rules that gate them.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().StringVarP(&a.flags.user, "user", "u", defaultUser, "user whose wardrobe to operate on")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&a.flags.strict, "strict", false, "reject selection invariant violations (overrides config.yaml)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCatalogCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newSelectCmd(a))
	root.AddCommand(newColorCmd(a))
	root.AddCommand(newResetCmd(a))
	root.AddCommand(newComposeCmd(a))
	root.AddCommand(newPurchaseCmd(a))
	root.AddCommand(newUnlockCmd(a))
	root.AddCommand(newGrantCmd(a))
	root.AddCommand(newLedgerCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wardrobe:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Set(cfgKeyStrict, a.flags.strict)
	}

	log, err := logger.New(cfg.GetString(cfgKeyLogMode))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.configDir = configDir
	a.cfg = cfg
	a.log = log.With("user", a.flags.user)
	return nil
}

// errUsage marks invalid command input not covered by a domain error.
var errUsage = errors.New("usage")

// userErrors are failures caused by the request rather than the system.
var userErrors = []error{
	types.ErrPartLocked,
	types.ErrInsufficientCredits,
	types.ErrInsufficientEntitlement,
	types.ErrInvalidPrice,
	types.ErrNegativeBalance,
	types.ErrCategoryNotFound,
	types.ErrPartNotFound,
	types.ErrCategoryRequired,
	types.ErrInvariantViolation,
	types.ErrConfiguration,
	types.ErrInvalidID,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	errInvalidColor,
	errUsage,
}

// exitCode maps an error to exitUserError or exitSysError.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
