package blogctl

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptyInput       = errors.New("value must not be empty")
)

const usage = `Usage: blogctl [-t driver] [-d dsn] [-c config] <command>

Commands:
  migrate       apply database migrations
  create-user   register an account (the first one becomes the admin)
  help          show this message`

// valueFlags take a separate value argument and are skipped when looking
// for the command name.
var valueFlags = map[string]struct{}{
	"-a": {}, "-t": {}, "-d": {}, "-s": {}, "-e": {}, "-j": {}, "-l": {}, "-c": {}, "-config": {},
}

type App struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	users *services.UserService
	in    *bufio.Reader
	out   io.Writer
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	db, rm, err := repomanager.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return &App{
		db:    db,
		rm:    rm,
		users: services.NewUserService(db, rm),
		in:    bufio.NewReader(in),
		out:   out,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// CommandName returns the first argument that is neither a flag nor a
// flag's value.
func CommandName(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if _, ok := valueFlags[arg]; ok {
				i++
			}
			continue
		}
		return arg
	}
	return ""
}

func (a *App) Run(ctx context.Context, command string) error {
	switch command {
	case "migrate":
		return a.Migrate(ctx)
	case "create-user":
		if err := a.rm.RunMigrations(ctx, a.db); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		return a.CreateUser(ctx)
	case "", "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (a *App) Migrate(ctx context.Context) error {
	if err := a.rm.RunMigrations(ctx, a.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	fmt.Fprintln(a.out, "Migrations applied")
	return nil
}

func (a *App) CreateUser(ctx context.Context) error {
	email, err := a.readRequired("Email")
	if err != nil {
		return err
	}
	name, err := a.readRequired("Name")
	if err != nil {
		return err
	}

	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return fmt.Errorf("password: %w", ErrEmptyInput)
	}
	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if string(password) != string(confirm) {
		return ErrPasswordMismatch
	}

	user, err := a.users.Register(ctx, email, name, string(password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorEmailTaken):
			return fmt.Errorf("email %s is already registered: %w", email, err)
		case errors.Is(err, common.ErrorNameTaken):
			return fmt.Errorf("name %s is already taken: %w", name, err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Created user %s (id %d)\n", user.Name, user.ID)
	if services.IsAdmin(user) {
		fmt.Fprintln(a.out, "This account is the blog admin")
	}
	return nil
}

func (a *App) readRequired(prompt string) (string, error) {
	v, err := GetSimpleText(a.in, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(prompt), ErrEmptyInput)
	}
	return v, nil
}
