// Package user holds account administration commands.
package user

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/estatery/estatery/internal/application/user/usecases"
	"github.com/estatery/estatery/internal/infrastructure/auth"
	"github.com/estatery/estatery/internal/infrastructure/database"
	"github.com/estatery/estatery/internal/infrastructure/repository"
	"github.com/estatery/estatery/internal/interfaces/cli/bootstrap"
	"github.com/estatery/estatery/internal/shared/constants"
)

// passwordEnv is read when --password is not given.
const passwordEnv = "ESTATERY_ADMIN_PASSWORD"

var (
	env      string
	email    string
	name     string
	password string
	seedPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.AddCommand(newCreateAdminCommand())

	return cmd
}

func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator or grant ADMIN to an existing account",
		Long: `Create an administrator account. If the email already belongs to a user,
ADMIN is added to that user's roles. Use --from to seed several admins from a YAML file.`,
		RunE: runCreateAdmin,
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&name, "name", "Administrator", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password (default: $"+passwordEnv+")")
	cmd.Flags().StringVar(&seedPath, "from", "", "YAML seed file with an admins list")

	return cmd
}

// AdminSeed is one entry of the seed file.
type AdminSeed struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type seedFile struct {
	Admins []AdminSeed `yaml:"admins"`
}

// LoadSeed parses a seed file of the form:
//
//	admins:
//	  - email: root@example.com
//	    name: Root
//	    password: secret123
func LoadSeed(r io.Reader) ([]AdminSeed, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, a := range f.Admins {
		if strings.TrimSpace(a.Email) == "" {
			return nil, fmt.Errorf("admins[%d]: email is required", i)
		}
		if strings.TrimSpace(a.Name) == "" {
			f.Admins[i].Name = "Administrator"
		}
	}
	return f.Admins, nil
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	seeds, err := collectSeeds()
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer database.Close()

	uc := usecases.NewCreateAdminUseCase(
		repository.NewUserRepository(database.Get()),
		auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		log,
	)

	for _, s := range seeds {
		out, err := uc.Execute(context.Background(), usecases.CreateAdminCommand{
			Email:    s.Email,
			Name:     s.Name,
			Password: s.Password,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin %s: %w", s.Email, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin ready: id=%d email=%s roles=%s\n", out.ID, out.Email, strings.Join(out.Roles, ","))
	}
	return nil
}

func collectSeeds() ([]AdminSeed, error) {
	if seedPath != "" {
		f, err := os.Open(seedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()
		return LoadSeed(f)
	}

	if email == "" {
		return nil, fmt.Errorf("either --email or --from is required")
	}
	pw := password
	if pw == "" {
		pw = os.Getenv(passwordEnv)
	}
	return []AdminSeed{{Email: email, Name: name, Password: pw}}, nil
}
