package verusd

import (
	"context"
	"fmt"

	"github.com/mtlprog/verusns/internal/domain"
)

// ListCurrencies returns the full currency catalog known to the daemon.
// A single malformed entry fails the whole call.
func (c *Client) ListCurrencies(ctx context.Context) ([]domain.CurrencyInfo, error) {
	var listed []ListedCurrency
	if err := c.call(ctx, "listcurrencies", nil, &listed); err != nil {
		return nil, fmt.Errorf("listing currencies: %w", err)
	}

	infos := make([]domain.CurrencyInfo, 0, len(listed))
	for i, entry := range listed {
		if entry.CurrencyDefinition == nil {
			return nil, fmt.Errorf("listing currencies: entry %d: %w", i, missing("currencydefinition"))
		}
		def := entry.CurrencyDefinition
		if err := def.validateCatalog(); err != nil {
			return nil, fmt.Errorf("listing currencies: entry %d (%s): %w", i, def.Name, err)
		}
		if entry.BestCurrencyState == nil {
			return nil, fmt.Errorf("listing currencies: entry %d (%s): %w", i, def.Name, missing("bestcurrencystate"))
		}
		if err := entry.BestCurrencyState.validate(); err != nil {
			return nil, fmt.Errorf("listing currencies: entry %d (%s): %w", i, def.Name, err)
		}
		infos = append(infos, domain.CurrencyInfo{
			Definition: def.toDomain(),
			State:      entry.BestCurrencyState.toDomain(),
		})
	}

	return infos, nil
}

// GetCurrency looks up a single currency by name or i-address.
func (c *Client) GetCurrency(ctx context.Context, nameOrID string) (domain.CurrencyDetail, error) {
	var resp CurrencyResponse
	if err := c.call(ctx, "getcurrency", []any{nameOrID}, &resp); err != nil {
		return domain.CurrencyDetail{}, fmt.Errorf("getting currency %s: %w", nameOrID, err)
	}
	if err := resp.validateLookup(); err != nil {
		return domain.CurrencyDetail{}, fmt.Errorf("getting currency %s: %w", nameOrID, err)
	}

	detail := domain.CurrencyDetail{
		CurrencyDefinition: resp.toDomain(),
		CurrencyNames:      resp.CurrencyNames,
	}
	if resp.BestCurrencyState != nil {
		if err := resp.BestCurrencyState.validate(); err != nil {
			return domain.CurrencyDetail{}, fmt.Errorf("getting currency %s: %w", nameOrID, err)
		}
		state := resp.BestCurrencyState.toDomain()
		detail.State = &state
	}
	return detail, nil
}

// GetRootCurrency looks up the native currency of a chain by its ticker.
func (c *Client) GetRootCurrency(ctx context.Context, ticker string) (domain.RootCurrency, error) {
	var def CurrencyDefinition
	if err := c.call(ctx, "getcurrency", []any{ticker}, &def); err != nil {
		return domain.RootCurrency{}, fmt.Errorf("getting root currency %s: %w", ticker, err)
	}
	if err := def.validateRoot(); err != nil {
		return domain.RootCurrency{}, fmt.Errorf("getting root currency %s: %w", ticker, err)
	}

	return domain.RootCurrency{
		Name:               def.Name,
		CurrencyID:         def.CurrencyID,
		IDRegistrationFees: def.IDRegistrationFees.Decimal,
		IDReferralLevels:   *def.IDReferralLevels,
	}, nil
}

// GetBlockCount returns the daemon's current block height.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	var height int64
	if err := c.call(ctx, "getblockcount", nil, &height); err != nil {
		return 0, fmt.Errorf("getting block count: %w", err)
	}
	return height, nil
}
