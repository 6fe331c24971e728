// Package ledger owns the canonical asset collection and its mutation rules:
// add with stock stacking, patch, replace and delete. Every mutation is one
// atomic transition from a consistent snapshot to the next, persisted as a
// whole and broadcast on the event bus.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
	"github.com/mlefebvre/patrimoine-backend/internal/events"
)

// Service maintains the authoritative set of assets and guarantees cost-basis
// correctness for stacked stock purchases.
//
// The mutex serializes mutations: the mutation model is single-writer, but the
// HTTP adapter serves concurrent requests, so the collection needs a
// mutual-exclusion discipline around it.
type Service struct {
	repo     domain.AssetRepository
	bus      *events.Bus
	log      zerolog.Logger
	defaults []domain.Asset
	now      func() time.Time

	mu     sync.RWMutex
	assets []domain.Asset
}

// New creates a new ledger service. defaults is the built-in sample
// collection used when no snapshot was ever persisted or the stored one
// cannot be decoded.
func New(repo domain.AssetRepository, bus *events.Bus, log zerolog.Logger, defaults []domain.Asset) *Service {
	return &Service{
		repo:     repo,
		bus:      bus,
		log:      log.With().Str("component", "ledger").Logger(),
		defaults: defaults,
		now:      time.Now,
	}
}

// Load initializes the in-memory collection from the persisted snapshot.
// A missing or corrupt snapshot falls back to the default sample collection,
// which is persisted immediately so the next start finds it.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets, err := s.repo.LoadCollection(ctx)
	switch {
	case err == nil:
		s.assets = assets
		s.log.Info().Int("assets", len(assets)).Msg("Loaded asset collection")
		return nil
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.log.Info().Msg("No persisted collection, seeding defaults")
	case errors.Is(err, domain.ErrSnapshotCorrupt):
		s.log.Warn().Err(err).Msg("Persisted collection is corrupt, falling back to defaults")
	default:
		return fmt.Errorf("failed to load asset collection: %w", err)
	}

	seeded := domain.CloneCollection(s.defaults)
	if err := s.repo.SaveCollection(ctx, seeded); err != nil {
		return fmt.Errorf("failed to persist default collection: %w", err)
	}
	s.assets = seeded
	return nil
}

// Assets returns a deep copy of the current collection snapshot.
// Aggregation views and HTTP collaborators only ever read these copies.
func (s *Service) Assets() []domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCollection(s.assets)
}

// AddAsset inserts a candidate asset (submitted without an identifier) into
// the collection and returns the resulting asset.
//
// Stock stacking: when a stock purchase arrives for a ticker already held in
// the same investment account (ticker match is case-insensitive), the
// purchase is merged into the existing holding instead of creating a new row:
// quantities accumulate, the purchase price becomes the weighted average of
// all purchases, and a buy transaction is appended to the holding's history.
// stacked reports whether this path was taken.
//
// Precondition: the candidate has been validated upstream. In particular a
// stock purchase carries a positive quantity, so the weighted-average
// denominator can never be zero.
func (s *Service) AddAsset(ctx context.Context, candidate domain.Asset) (asset domain.Asset, stacked bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if candidate.Type == domain.AssetTypeStock && candidate.Stock != nil {
		if idx := s.findStockPosition(candidate.Stock.Symbol, candidate.Stock.InvestmentAccountID); idx >= 0 {
			merged, err := s.stackPurchase(ctx, idx, candidate, now)
			if err != nil {
				return domain.Asset{}, false, err
			}
			return merged, true, nil
		}
	}

	asset = candidate.Clone()
	asset.ID = uuid.New().String()
	asset.CreatedAt = now
	asset.UpdatedAt = now

	switch {
	case asset.Type == domain.AssetTypeStock && asset.Stock != nil:
		// Seed the history with the initial purchase and keep the total
		// value consistent with quantity and cost basis.
		asset.Stock.Transactions = []domain.Transaction{
			domain.NewBuyTransaction(asset.Stock.Quantity, asset.Stock.PurchasePrice, now),
		}
		asset.Value = asset.Stock.Quantity.Mul(asset.Stock.PurchasePrice)
	case asset.Type == domain.AssetTypeCrypto && asset.Crypto != nil:
		asset.Crypto.Transactions = []domain.Transaction{
			domain.NewBuyTransaction(asset.Crypto.Quantity, asset.Crypto.PurchasePrice, now),
		}
	}

	next := append(domain.CloneCollection(s.assets), asset)
	if err := s.commit(ctx, next); err != nil {
		return domain.Asset{}, false, err
	}

	s.log.Info().
		Str("asset_id", asset.ID).
		Str("type", string(asset.Type)).
		Str("name", asset.Name).
		Msg("Asset added")
	s.publish("added", asset.ID)

	return asset.Clone(), false, nil
}

// stackPurchase merges a new purchase into the existing holding at idx.
// Caller holds the write lock.
func (s *Service) stackPurchase(ctx context.Context, idx int, candidate domain.Asset, now time.Time) (domain.Asset, error) {
	existing := s.assets[idx].Clone()

	purchaseQty := candidate.Stock.Quantity
	purchasePrice := candidate.Stock.PurchasePrice
	purchaseCost := purchaseQty.Mul(purchasePrice)

	newQuantity := existing.Stock.Quantity.Add(purchaseQty)
	newValue := existing.Value.Add(purchaseCost)
	newAveragePrice := newValue.Div(newQuantity)

	existing.Stock.Quantity = newQuantity
	existing.Stock.PurchasePrice = newAveragePrice
	existing.Stock.Transactions = append(existing.Stock.Transactions,
		domain.NewBuyTransaction(purchaseQty, purchasePrice, now))
	existing.Value = newValue
	existing.UpdatedAt = now

	next := domain.CloneCollection(s.assets)
	next[idx] = existing
	if err := s.commit(ctx, next); err != nil {
		return domain.Asset{}, err
	}

	s.log.Info().
		Str("asset_id", existing.ID).
		Str("symbol", existing.Stock.Symbol).
		Str("quantity", newQuantity.String()).
		Str("average_price", newAveragePrice.String()).
		Msg("Stock purchase stacked onto existing holding")
	s.publish("stacked", existing.ID)

	return existing.Clone(), nil
}

// Patch describes a partial update. Nil fields are left untouched; a non-nil
// variant pointer replaces that variant wholesale.
type Patch struct {
	Name        *string
	Value       *decimal.Decimal
	Performance *decimal.Decimal

	Stock             *domain.StockHolding
	Crypto            *domain.CryptoHolding
	BankAccount       *domain.BankAccountDetails
	SavingsAccount    *domain.SavingsAccountDetails
	InvestmentAccount *domain.InvestmentAccountDetails
	CryptoAccount     *domain.CryptoAccountDetails
	RealEstate        *domain.RealEstateDetails
}

// PatchAsset applies the named fields to the asset with the given identifier.
// Unknown identifiers are a silent no-op, mirroring the permissive behavior
// of update forms that race with deletions.
func (s *Service) PatchAsset(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(id)
	if idx < 0 {
		s.log.Debug().Str("asset_id", id).Msg("Patch ignored, asset not found")
		return nil
	}

	updated := s.assets[idx].Clone()
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Value != nil {
		updated.Value = *patch.Value
	}
	if patch.Performance != nil {
		updated.Performance = patch.Performance
	}
	if patch.Stock != nil {
		updated.Stock = patch.Stock
	}
	if patch.Crypto != nil {
		updated.Crypto = patch.Crypto
	}
	if patch.BankAccount != nil {
		updated.BankAccount = patch.BankAccount
	}
	if patch.SavingsAccount != nil {
		updated.SavingsAccount = patch.SavingsAccount
	}
	if patch.InvestmentAccount != nil {
		updated.InvestmentAccount = patch.InvestmentAccount
	}
	if patch.CryptoAccount != nil {
		updated.CryptoAccount = patch.CryptoAccount
	}
	if patch.RealEstate != nil {
		updated.RealEstate = patch.RealEstate
	}
	s.finishMutation(&updated)

	next := domain.CloneCollection(s.assets)
	next[idx] = updated
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info().Str("asset_id", id).Msg("Asset patched")
	s.publish("patched", id)
	return nil
}

// ReplaceAsset replaces the stored asset whose identifier matches asset.ID
// wholesale. Unknown identifiers are a silent no-op.
func (s *Service) ReplaceAsset(ctx context.Context, asset domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(asset.ID)
	if idx < 0 {
		s.log.Debug().Str("asset_id", asset.ID).Msg("Replace ignored, asset not found")
		return nil
	}

	updated := asset.Clone()
	updated.CreatedAt = s.assets[idx].CreatedAt
	s.finishMutation(&updated)

	next := domain.CloneCollection(s.assets)
	next[idx] = updated
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info().Str("asset_id", asset.ID).Msg("Asset replaced")
	s.publish("replaced", asset.ID)
	return nil
}

// DeleteAsset removes the asset with the given identifier, if present.
// Unknown identifiers are a silent no-op.
//
// There is no cascading deletion: holdings referencing the deleted asset
// through InvestmentAccountID or CryptoAccountID keep their reference and are
// rendered against an unresolvable account by the read side.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(id)
	if idx < 0 {
		s.log.Debug().Str("asset_id", id).Msg("Delete ignored, asset not found")
		return nil
	}

	next := domain.CloneCollection(s.assets)
	next = append(next[:idx], next[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info().Str("asset_id", id).Msg("Asset deleted")
	s.publish("deleted", id)
	return nil
}

// finishMutation restores the invariants a mutation must leave behind:
// UpdatedAt reflects the mutation, and a stock's total value always equals
// quantity times cost basis.
func (s *Service) finishMutation(asset *domain.Asset) {
	asset.UpdatedAt = s.now()
	if asset.Type == domain.AssetTypeStock && asset.Stock != nil {
		asset.Value = asset.Stock.Quantity.Mul(asset.Stock.PurchasePrice)
	}
}

// commit persists the next snapshot and, only on success, makes it the
// current collection. On persistence failure the in-memory state is left
// untouched, keeping the operation atomic. Caller holds the write lock.
func (s *Service) commit(ctx context.Context, next []domain.Asset) error {
	if err := s.repo.SaveCollection(ctx, next); err != nil {
		return fmt.Errorf("failed to persist asset collection: %w", err)
	}
	s.assets = next
	return nil
}

// publish broadcasts the collection change. Caller holds the write lock.
func (s *Service) publish(action, assetID string) {
	total := decimal.Zero
	for i := range s.assets {
		total = total.Add(s.assets[i].Value)
	}
	s.bus.Publish(&events.AssetsChangedData{
		Action:  action,
		AssetID: assetID,
		Count:   len(s.assets),
		Total:   total.String(),
	})
}

func (s *Service) findByID(id string) int {
	for i := range s.assets {
		if s.assets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findStockPosition(symbol, investmentAccountID string) int {
	for i := range s.assets {
		if s.assets[i].MatchesStockPosition(symbol, investmentAccountID) {
			return i
		}
	}
	return -1
}
