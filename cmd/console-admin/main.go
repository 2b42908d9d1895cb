package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/accredly/console-api/config"
	"github.com/accredly/console-api/internal/bootstrap"
	"github.com/accredly/console-api/internal/domain/notification"
	"github.com/accredly/console-api/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultCommandTimeout = 30 * time.Second

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the accreditation API and persist the token",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "End the current session and clear stored tokens",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the currently authenticated user",
			run:         runWhoami,
		},
		"notifications": {
			name:        "notifications",
			description: "List notifications for the current user",
			run:         runNotifications,
		},
		"mark-read": {
			name:        "mark-read",
			description: "Mark a notification as read",
			run:         runMarkRead,
		},
		"mark-all-read": {
			name:        "mark-all-read",
			description: "Mark all notifications as read",
			run:         runMarkAllRead,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: console-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

type loginOptions struct {
	Email    string
	Password string
}

type notificationsOptions struct {
	Page       int
	PerPage    int
	UnreadOnly bool
	Type       string
}

type markReadOptions struct {
	ID int64
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	if opts.Password == "" {
		opts.Password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, closeFn, err := buildServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	result := services.Sessions.Login(ctx, opts.Email, opts.Password)
	if !result.Success {
		return printLoginFailure(result)
	}

	if err := writef(os.Stdout, "Logged in as %s (%s)\n", result.Data.User.Name, result.Data.User.Role); err != nil {
		return err
	}
	if result.UserStatus != "" && !result.IsActive {
		if err := writef(os.Stdout, "Account status: %s (pending approval)\n", result.UserStatus); err != nil {
			return err
		}
	}
	return nil
}

func printLoginFailure(result service.AuthResult) error {
	if err := writef(os.Stderr, "Login failed: %s\n", result.Err); err != nil {
		return err
	}
	for field, messages := range result.Fields {
		if err := writef(os.Stderr, "  %s: %s\n", field, strings.Join(messages, "; ")); err != nil {
			return err
		}
	}
	return errors.New("login failed")
}

func runLogout(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("logout takes no arguments, got %d", len(args))
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, closeFn, err := buildServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	services.Sessions.EnsureChecked(ctx)
	services.Sessions.Logout(ctx)
	return writeln(os.Stdout, "Logged out")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("whoami takes no arguments, got %d", len(args))
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, closeFn, err := buildServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	services.Sessions.EnsureChecked(ctx)
	snap := services.Sessions.Snapshot()
	if !snap.Authenticated || snap.User == nil {
		return errors.New("not authenticated; run `console-admin login` first")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS"); err != nil {
		return err
	}
	u := snap.User
	if err := writef(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status); err != nil {
		return err
	}
	return tw.Flush()
}

func runNotifications(cmdCtx *commandContext, args []string) error {
	opts, err := parseNotificationsFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, closeFn, err := buildServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(ctx, services.Sessions); err != nil {
		return err
	}

	filters := notification.ListFilters{UnreadOnly: opts.UnreadOnly, Type: opts.Type}
	services.Notifications.Fetch(ctx, filters, opts.Page, opts.PerPage)
	state := services.Notifications.State()
	if state.Err != "" {
		return fmt.Errorf("fetch notifications: %s", state.Err)
	}

	if len(state.Items) == 0 {
		return writeln(os.Stdout, "(no notifications)")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tREAD\tTITLE\tCREATED"); err != nil {
		return err
	}
	for _, n := range state.Items {
		read := " "
		if n.IsRead {
			read = "x"
		}
		if err := writef(tw, "%d\t[%s]\t%s\t%s\n", n.ID, read, n.Title, n.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "\nUnread: %d  Page %d/%d  Total %d\n",
		state.UnreadCount, state.Page.CurrentPage, state.Page.LastPage, state.Page.Total)
}

func runMarkRead(cmdCtx *commandContext, args []string) error {
	opts, err := parseMarkReadFlags(args)
	if err != nil {
		return err
	}
	if opts.ID <= 0 {
		return errors.New("--id is required and must be a positive integer")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, closeFn, err := buildServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(ctx, services.Sessions); err != nil {
		return err
	}
	if err := services.Notifications.MarkRead(ctx, opts.ID); err != nil {
		return fmt.Errorf("mark notification %d read: %w", opts.ID, err)
	}
	return writef(os.Stdout, "Notification %d marked read\n", opts.ID)
}

func runMarkAllRead(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("mark-all-read takes no arguments, got %d", len(args))
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, closeFn, err := buildServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(ctx, services.Sessions); err != nil {
		return err
	}
	if err := services.Notifications.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return writeln(os.Stdout, "All notifications marked read")
}

func requireAuth(ctx context.Context, sessions *service.SessionManager) error {
	sessions.EnsureChecked(ctx)
	snap := sessions.Snapshot()
	if !snap.Authenticated {
		return errors.New("not authenticated; run `console-admin login` first")
	}
	return nil
}

func buildServices(cmdCtx *commandContext) (bootstrap.ServiceContainer, func(), error) {
	stores, err := bootstrap.BuildStores(cmdCtx.Config.Storage, cmdCtx.Logger)
	if err != nil {
		return bootstrap.ServiceContainer{}, nil, err
	}
	closeFn := func() {
		if cerr := stores.Close(); cerr != nil {
			cmdCtx.Logger.Warn("close stores failed", "error", cerr)
		}
	}
	return bootstrap.BuildServices(cmdCtx.Config, stores, cmdCtx.Logger), closeFn, nil
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password (prompted when omitted)")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	if opts.Email == "" {
		return loginOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

func parseNotificationsFlags(args []string) (notificationsOptions, error) {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts notificationsOptions
	fs.IntVar(&opts.Page, "page", 1, "Page number")
	fs.IntVar(&opts.PerPage, "per-page", 0, "Items per page (server default when 0)")
	fs.BoolVar(&opts.UnreadOnly, "unread", false, "Only unread notifications")
	fs.StringVar(&opts.Type, "type", "", "Optional type filter")

	if err := fs.Parse(args); err != nil {
		return notificationsOptions{}, err
	}
	return opts, nil
}

func parseMarkReadFlags(args []string) (markReadOptions, error) {
	fs := flag.NewFlagSet("mark-read", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts markReadOptions
	fs.Int64Var(&opts.ID, "id", 0, "Notification ID (required)")

	if err := fs.Parse(args); err != nil {
		return markReadOptions{}, err
	}
	return opts, nil
}

func promptPassword() (string, error) {
	if err := write(os.Stderr, "Password: "); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
