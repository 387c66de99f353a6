package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spec-kit/refund-service/internal/api/dto"
	"github.com/spec-kit/refund-service/internal/config"
	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/persistence"
	"github.com/spec-kit/refund-service/internal/repository"
	"github.com/spec-kit/refund-service/internal/service"
	"github.com/spec-kit/refund-service/internal/validation"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Login email")
	role := fs.String("role", string(domain.RoleEmployee), "employee or manager")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -name <name> -email <email> [-role employee|manager] [-password <password>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: name, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	values, err := validation.Validate(dto.UserCreateSchema, map[string]any{
		"name":     *name,
		"email":    *email,
		"password": password,
		"role":     *role,
	})
	if err != nil {
		return describe(err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer pg.Close()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: repository.NewUserRepository(pg.PoolHandle()),
	})
	user, err := authService.RegisterUser(ctx, service.RegisterInput{
		Name:     values.String("name"),
		Email:    values.String("email"),
		Password: values.String("password"),
		Role:     domain.Role(values.String("role")),
	})
	if err != nil {
		return describe(err)
	}

	fmt.Fprintf(stdout, "User %s (%s) created with ID %s\n", user.Email, user.Role, user.ID)
	return nil
}

// describe turns a domain error into a one-line CLI message.
func describe(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.HTTPStatus < 500 {
		if domainErr.Field != "" {
			return fmt.Errorf("%s: %s", domainErr.Field, domainErr.Message)
		}
		return errors.New(domainErr.Message)
	}
	return err
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
