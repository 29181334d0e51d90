// Package cli implements the scorg command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/internal/logging"
	"github.com/mesh-intelligence/scorg/internal/paths"
	"github.com/mesh-intelligence/scorg/internal/services"
	"github.com/mesh-intelligence/scorg/internal/sqlite"
	"github.com/mesh-intelligence/scorg/pkg/scorg"
	"github.com/mesh-intelligence/scorg/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// env carries flags, resolved settings and the opened store through one
// command invocation.
type env struct {
	configFlag string
	dataFlag   string
	logLevel   string
	jsonMode   bool

	settings settings
	dirs     paths.Dirs

	dao      types.Dao
	students *services.StudentService
	scores   *services.ScoreService

	cleanup []func()
}

// systemError marks failures of the environment rather than of the input.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

// NewRootCmd creates the top-level "scorg" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *env) {
	e := &env{}
	root := &cobra.Command{
		Use:     "scorg",
		Short:   "Track students and their timed-test scores",
		Long:    "scorg stores students and their correct/incorrect scores in a local\nSQLite database, imports them from spreadsheets and charts them.",
		Version: scorg.Version,
		// Errors are printed once by Execute.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
	}

	root.PersistentFlags().StringVar(&e.configFlag, "config-dir", "", "configuration directory (default: $(CWD)/.scorg)")
	root.PersistentFlags().StringVar(&e.dataFlag, "data-dir", "", "data directory (default: $(CWD)/.scorg-db)")
	root.PersistentFlags().BoolVar(&e.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(e))
	root.AddCommand(newStudentCmd(e))
	root.AddCommand(newScoreCmd(e))
	root.AddCommand(newImportCmd(e))
	root.AddCommand(newChartCmd(e))
	root.AddCommand(newExportCmd(e))
	root.AddCommand(newRestoreCmd(e))
	return root, e
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root, e := newRoot()
	defer e.close()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(stderr, "Error: ")
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	var sys systemError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &sys), errors.Is(err, types.ErrStore), errors.Is(err, types.ErrClosed):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup resolves directories and settings and installs the logger.
func (e *env) setup(cmd *cobra.Command, args []string) error {
	dirs, err := paths.Resolve(e.configFlag, e.dataFlag, func(configDir string) (string, error) {
		s, err := loadSettings(configDir)
		if err != nil {
			return "", err
		}
		e.settings = s
		return s.DataDir, nil
	})
	if err != nil {
		return systemError{err}
	}
	e.dirs = dirs

	level := e.logLevel
	if level == "" {
		level = e.settings.LogLevel
	}
	undo, err := logging.Setup(level)
	if err != nil {
		return err
	}
	e.cleanup = append(e.cleanup, undo)
	return nil
}

// open opens and initialises the store on first use.
func (e *env) open() error {
	if e.dao != nil {
		return nil
	}
	if err := e.dirs.Ensure(); err != nil {
		return systemError{err}
	}
	dao, err := sqlite.Open(e.settings.storeConfig(e.dirs.Data))
	if err != nil {
		return systemError{fmt.Errorf("open store: %w", err)}
	}
	e.cleanup = append(e.cleanup, func() { dao.Close() })

	e.dao = dao
	e.students = services.NewStudentService(dao)
	e.scores = services.NewScoreService(dao)
	if err := e.students.Init(); err != nil {
		return fmt.Errorf("initialise store: %w", err)
	}
	return nil
}

// close runs cleanups in reverse order.
func (e *env) close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.cleanup = nil
}
