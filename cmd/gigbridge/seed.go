package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/db"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed catalog data and admin accounts",
	}

	cmd.AddCommand(newSeedCatalogCmd())
	cmd.AddCommand(newSeedAdminCmd())
	return cmd
}

func newSeedCatalogCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Upsert the skill and tool catalog from config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedCatalog(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gigbridge.yaml", "path to GigBridge config file")
	return cmd
}

func runSeedCatalog(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := connectFromConfig(cfg)
	if err != nil {
		return err
	}

	skills := make([]db.CatalogSkill, 0, len(cfg.Catalog.Skills))
	for _, s := range cfg.Catalog.Skills {
		skills = append(skills, db.CatalogSkill{NameEn: s.NameEn, NameRu: s.NameRu})
	}
	if err := db.SeedSkills(gormDB, skills); err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d skills\n", len(skills))

	if err := db.SeedTools(gormDB, cfg.Catalog.Tools); err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d tools\n", len(cfg.Catalog.Tools))
	return nil
}

func newSeedAdminCmd() *cobra.Command {
	var (
		configPath string
		email      string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an account, prompting for its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedAdmin(cmd, configPath, email, name)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gigbridge.yaml", "path to GigBridge config file")
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&name, "name", "Admin", "account display name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func runSeedAdmin(cmd *cobra.Command, configPath, email, name string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	gormDB, err := connectFromConfig(cfg)
	if err != nil {
		return err
	}

	user, err := auth.Register(gormDB, auth.RegisterOpts{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	fmt.Fprintf(out, "Created account %s (%s)\n", user.Email, user.ID)
	return nil
}

// readPassword prompts on the terminal without echo. When stdin is not
// a terminal it falls back to reading a line, so the command stays
// scriptable.
func readPassword(cmd *cobra.Command) (string, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return "", fmt.Errorf("read password: no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func connectFromConfig(cfg *config.Config) (*gorm.DB, error) {
	gormDB, err := db.Connect(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Database.Name, err)
	}
	return gormDB, nil
}
