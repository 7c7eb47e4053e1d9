package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/servery/servery/internal/domain/repository"
	pkgAuth "github.com/servery/servery/internal/pkg/auth"
	"github.com/servery/servery/internal/usecase"
)

// Data is the sample-data file layout: accounts with plaintext passwords that
// get hashed on load, and restaurants with their staff and menus.
type Data struct {
	Accounts    []Account    `yaml:"accounts"`
	Restaurants []Restaurant `yaml:"restaurants"`
}

// Account describes one seeded account.
type Account struct {
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Address    string `yaml:"address"`
	CardNumber string `yaml:"card_number"`
	CardExpiry string `yaml:"card_expiry"`
	CardCode   string `yaml:"card_code"`
}

// Restaurant describes one seeded restaurant with staff and menu.
type Restaurant struct {
	Name      string     `yaml:"name"`
	Owner     string     `yaml:"owner"`
	Employees []string   `yaml:"employees"`
	Menu      []MenuItem `yaml:"menu"`
}

// MenuItem describes one seeded dish. Price is a decimal string like "3.45".
type MenuItem struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Load reads and parses a fixtures file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &data, nil
}

// Apply seeds the store with the sample data. The operation is idempotent:
// accounts whose username already exists and restaurants already present under
// the same name and owner are skipped, so restarts never duplicate rows.
func Apply(ctx context.Context, data *Data, store repository.Store, hasher pkgAuth.PasswordHasher, logger *slog.Logger) error {
	return store.WithinTransaction(ctx, func(repos repository.Factory) error {
		for _, account := range data.Accounts {
			if err := applyAccount(ctx, repos, hasher, account); err != nil {
				return fmt.Errorf("fixture account %s: %w", account.Username, err)
			}
		}

		existing, err := repos.Restaurants().List(ctx)
		if err != nil {
			return err
		}
		present := make(map[[2]string]bool, len(existing))
		for _, restaurant := range existing {
			present[[2]string{restaurant.Name, restaurant.Owner}] = true
		}

		var seeded int
		for _, restaurant := range data.Restaurants {
			if present[[2]string{restaurant.Name, restaurant.Owner}] {
				continue
			}
			if err := applyRestaurant(ctx, repos, restaurant); err != nil {
				return fmt.Errorf("fixture restaurant %s: %w", restaurant.Name, err)
			}
			seeded++
		}

		logger.Info("fixtures applied",
			"accounts", len(data.Accounts),
			"restaurants_seeded", seeded,
			"restaurants_skipped", len(data.Restaurants)-seeded,
		)
		return nil
	})
}

func applyAccount(ctx context.Context, repos repository.Factory, hasher pkgAuth.PasswordHasher, account Account) error {
	if _, err := repos.Accounts().GetByUsername(ctx, account.Username); err == nil {
		return nil
	}

	hash, err := hasher.Hash(account.Password)
	if err != nil {
		return err
	}
	created, err := repos.Accounts().Create(ctx, account.Username, hash, account.FirstName, account.LastName)
	if err != nil {
		return err
	}

	if account.Address == "" && account.CardNumber == "" {
		return nil
	}
	created.Address = account.Address
	created.CardNumber = account.CardNumber
	created.CardExpiry = account.CardExpiry
	created.CardCode = account.CardCode
	return repos.Accounts().UpdateProfile(ctx, created)
}

func applyRestaurant(ctx context.Context, repos repository.Factory, restaurant Restaurant) error {
	created, err := repos.Restaurants().Create(ctx, restaurant.Name, restaurant.Owner)
	if err != nil {
		return err
	}
	if err := repos.Restaurants().AddEmployee(ctx, created.ID, restaurant.Owner); err != nil {
		return err
	}
	for _, employee := range restaurant.Employees {
		if err := repos.Restaurants().AddEmployee(ctx, created.ID, employee); err != nil {
			return err
		}
	}
	for _, item := range restaurant.Menu {
		priceCents, err := usecase.ParsePrice(item.Price)
		if err != nil {
			return fmt.Errorf("item %s: %w", item.Name, err)
		}
		if _, err := repos.Restaurants().AddMenuItem(ctx, created.ID, item.Name, priceCents); err != nil {
			return err
		}
	}
	return nil
}
