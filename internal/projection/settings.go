package projection

import (
	"context"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/validation"
)

// SettingsReader looks up a named setting, falling back to def when absent.
type SettingsReader interface {
	GetSetting(ctx context.Context, name, def string) (string, error)
}

// Settings are the per-run parameters read from the store.
type Settings struct {
	PriorYear    int
	InterestRate float64
}

// LoadSettings reads PRIOR_YEAR and INT_RATE, applying their defaults.
func LoadSettings(ctx context.Context, r SettingsReader) (Settings, error) {
	rawYear, err := r.GetSetting(ctx, ledger.SettingPriorYear, ledger.DefaultPriorYear)
	if err != nil {
		return Settings{}, err
	}
	priorYear, err := validation.ParsePriorYear(rawYear)
	if err != nil {
		return Settings{}, err
	}

	rawRate, err := r.GetSetting(ctx, ledger.SettingInterestRate, ledger.DefaultInterestRate)
	if err != nil {
		return Settings{}, err
	}
	rate, err := validation.ParseInterestRate(rawRate)
	if err != nil {
		return Settings{}, err
	}

	return Settings{PriorYear: priorYear, InterestRate: rate.InexactFloat64()}, nil
}
