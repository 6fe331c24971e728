package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/aggregation"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/ledger"
)

// AssetHandlers handles the asset CRUD endpoints
type AssetHandlers struct {
	ledger *ledger.Service
	log    zerolog.Logger
}

// NewAssetHandlers creates a new asset handlers instance
func NewAssetHandlers(ledgerService *ledger.Service, log zerolog.Logger) *AssetHandlers {
	return &AssetHandlers{
		ledger: ledgerService,
		log:    log.With().Str("component", "asset_handlers").Logger(),
	}
}

// assetView decorates an asset with the resolved parent account label.
// When the parent account was deleted the reference dangles and the label
// falls back to "Compte {id}".
type assetView struct {
	domain.Asset
	AccountLabel string `json:"accountLabel,omitempty"`
}

func newAssetView(collection []domain.Asset, asset domain.Asset) assetView {
	view := assetView{Asset: asset}

	var accountID string
	switch {
	case asset.Type == domain.AssetTypeStock && asset.Stock != nil:
		accountID = asset.Stock.InvestmentAccountID
	case asset.Type == domain.AssetTypeCrypto && asset.Crypto != nil:
		accountID = asset.Crypto.CryptoAccountID
	}
	if accountID == "" {
		return view
	}

	view.AccountLabel = "Compte " + accountID
	for i := range collection {
		if collection[i].ID == accountID {
			view.AccountLabel = collection[i].Name
			break
		}
	}
	return view
}

func newAssetViews(collection []domain.Asset, assets []domain.Asset) []assetView {
	views := make([]assetView, 0, len(assets))
	for _, asset := range assets {
		views = append(views, newAssetView(collection, asset))
	}
	return views
}

// HandleList returns the full collection snapshot
func (h *AssetHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	assets := h.ledger.Assets()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assets":     newAssetViews(assets, assets),
		"totalValue": aggregation.TotalValue(assets),
	})
}

// HandleGrouped returns the collection split by asset type, with per-group
// totals and performance rollups
func (h *AssetHandlers) HandleGrouped(w http.ResponseWriter, r *http.Request) {
	assets := h.ledger.Assets()
	groups := aggregation.GroupByType(assets)

	type groupView struct {
		Assets             []assetView     `json:"assets"`
		Total              decimal.Decimal `json:"total"`
		AveragePerformance decimal.Decimal `json:"averagePerformance"`
	}
	response := make(map[domain.AssetType]groupView, len(groups))
	for assetType, grouped := range groups {
		response[assetType] = groupView{
			Assets:             newAssetViews(assets, grouped),
			Total:              aggregation.TotalValue(grouped),
			AveragePerformance: aggregation.AveragePerformance(grouped),
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"groups": response})
}

// HandleAdd validates a candidate asset and submits it to the ledger.
// This is the validation boundary: a candidate that fails domain validation
// is rejected here and the ledger is never invoked.
func (h *AssetHandlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var candidate domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	candidate.ID = ""

	if err := candidate.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, stacked, err := h.ledger.AddAsset(r.Context(), candidate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to add asset")
		respondError(w, http.StatusInternalServerError, "failed to add asset")
		return
	}

	message := "Actif ajouté"
	status := http.StatusCreated
	if stacked {
		message = "Action ajoutée au stack"
		status = http.StatusOK
	}
	respondJSON(w, status, map[string]interface{}{
		"message": message,
		"asset":   newAssetView(h.ledger.Assets(), asset),
	})
}

// assetPatchRequest mirrors ledger.Patch; absent fields stay untouched
type assetPatchRequest struct {
	Name        *string          `json:"name"`
	Value       *decimal.Decimal `json:"value"`
	Performance *decimal.Decimal `json:"performance"`

	Stock             *domain.StockHolding             `json:"stock"`
	Crypto            *domain.CryptoHolding            `json:"crypto"`
	BankAccount       *domain.BankAccountDetails       `json:"bankAccount"`
	SavingsAccount    *domain.SavingsAccountDetails    `json:"savingsAccount"`
	InvestmentAccount *domain.InvestmentAccountDetails `json:"investmentAccount"`
	CryptoAccount     *domain.CryptoAccountDetails     `json:"cryptoAccount"`
	RealEstate        *domain.RealEstateDetails        `json:"realEstate"`
}

// HandlePatch applies a partial update to one asset
func (h *AssetHandlers) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req assetPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.ledger.PatchAsset(r.Context(), chi.URLParam(r, "id"), ledger.Patch{
		Name:              req.Name,
		Value:             req.Value,
		Performance:       req.Performance,
		Stock:             req.Stock,
		Crypto:            req.Crypto,
		BankAccount:       req.BankAccount,
		SavingsAccount:    req.SavingsAccount,
		InvestmentAccount: req.InvestmentAccount,
		CryptoAccount:     req.CryptoAccount,
		RealEstate:        req.RealEstate,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to patch asset")
		respondError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Actif mis à jour"})
}

// HandleReplace replaces one asset wholesale
func (h *AssetHandlers) HandleReplace(w http.ResponseWriter, r *http.Request) {
	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset.ID = chi.URLParam(r, "id")

	if err := asset.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.ReplaceAsset(r.Context(), asset); err != nil {
		h.log.Error().Err(err).Msg("Failed to replace asset")
		respondError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Actif mis à jour"})
}

// HandleDelete removes one asset
func (h *AssetHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete asset")
		respondError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Actif supprimé"})
}
