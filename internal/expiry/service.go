package expiry

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

// Service owns the mutable side of expiry tracking: manual overrides,
// standing ignores, and the expiring-soon report that reconciles both.
type Service struct {
	expiries repository.ExpiryRepository
	runs     repository.RunRepository
	logger   *slog.Logger
}

func NewService(expiries repository.ExpiryRepository, runs repository.RunRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{expiries: expiries, runs: runs, logger: logger}
}

// OverrideBatch is the user-submitted payload splitting one pick entry's
// quantity across several expiry dates.
type OverrideBatch struct {
	PickEntryID string `json:"pick_entry_id"`
	Overrides   []struct {
		ExpiryDate string `json:"expiry_date"`
		Quantity   int    `json:"quantity"`
	} `json:"overrides"`
}

// ApplyOverrides validates and applies an override batch, replacing any
// previous override set for the entry. Override quantities must sum to the
// entry's count when the count is known; the core does not let a split
// misrepresent the entry's total.
func (s *Service) ApplyOverrides(ctx context.Context, payload []byte) ([]*entity.ExpiryOverride, error) {
	if err := validateJSONAgainstSchema(BuildOverrideBatchSchema(), payload); err != nil {
		return nil, common.InvalidArgumentErrorf("override batch: %v", err)
	}
	var batch OverrideBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, common.InvalidArgumentErrorf("override batch: %v", err)
	}

	entryID, err := uuid.Parse(batch.PickEntryID)
	if err != nil {
		return nil, common.InvalidArgumentError("pick_entry_id must be a UUID")
	}
	entry, err := s.runs.GetPickEntry(ctx, entryID)
	if err != nil {
		s.logger.Error("pick entry not found for override batch", "pick_entry_id", entryID, "error", err)
		return nil, common.NotFoundError("pick entry not found")
	}

	sum := 0
	seen := make(map[string]struct{}, len(batch.Overrides))
	for _, o := range batch.Overrides {
		if _, dup := seen[o.ExpiryDate]; dup {
			return nil, common.InvalidArgumentErrorf("duplicate expiry date %s in override batch", o.ExpiryDate)
		}
		seen[o.ExpiryDate] = struct{}{}
		sum += o.Quantity
	}
	if entry.Count != nil && sum != *entry.Count {
		return nil, common.InvalidArgumentErrorf("override quantities sum to %d, entry count is %d", sum, *entry.Count)
	}

	now := time.Now().UTC()
	overrides := make([]*entity.ExpiryOverride, 0, len(batch.Overrides))
	for _, o := range batch.Overrides {
		overrides = append(overrides, &entity.ExpiryOverride{
			ID:          uuid.New(),
			PickEntryID: entryID,
			ExpiryDate:  o.ExpiryDate,
			Quantity:    o.Quantity,
			CreatedAt:   now,
		})
	}
	if err := s.expiries.ReplaceOverrides(ctx, entryID, overrides); err != nil {
		s.logger.Error("failed to apply override batch", "pick_entry_id", entryID, "error", err)
		return nil, common.InternalError("apply overrides failed")
	}
	s.logger.Info("applied override batch", "pick_entry_id", entryID, "overrides", len(overrides))
	return overrides, nil
}

// DatedQuantity is one (expiry date, quantity) slice of a pick entry.
type DatedQuantity struct {
	ExpiryDate string `json:"expiry_date"`
	Quantity   int    `json:"quantity"`
}

// EffectiveDates reports the authoritative expiry split for a pick entry:
// the override set when one exists, otherwise the single computed date with
// the entry's full count. Consumers must never mix the two, or quantity
// would be double-counted.
func (s *Service) EffectiveDates(ctx context.Context, pickEntryID uuid.UUID) ([]DatedQuantity, error) {
	overrides, err := s.expiries.ListOverrides(ctx, pickEntryID)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		out := make([]DatedQuantity, 0, len(overrides))
		for _, o := range overrides {
			out = append(out, DatedQuantity{ExpiryDate: o.ExpiryDate, Quantity: o.Quantity})
		}
		return out, nil
	}

	entry, err := s.runs.GetPickEntry(ctx, pickEntryID)
	if err != nil {
		return nil, err
	}
	if entry.ExpiryDate == nil || entry.Count == nil {
		return nil, nil
	}
	return []DatedQuantity{{ExpiryDate: *entry.ExpiryDate, Quantity: *entry.Count}}, nil
}

// Ignore records (or refreshes) a standing exemption for a coil item, date
// and quantity. Idempotent: reapplying updates quantity and ignored_at.
func (s *Service) Ignore(ctx context.Context, companyID, coilItemID uuid.UUID, expiryDate string, quantity int) (*entity.ExpiryIgnore, error) {
	if _, err := time.Parse(DateFormat, expiryDate); err != nil {
		return nil, common.InvalidArgumentErrorf("expiry_date must be YYYY-MM-DD: %v", err)
	}
	if quantity <= 0 {
		return nil, common.InvalidArgumentError("quantity must be positive")
	}
	return s.expiries.UpsertIgnore(ctx, companyID, coilItemID, expiryDate, quantity)
}

// ExpiringSoon reports quantities expiring within horizonDays of asOf,
// expanding overrides and suppressing ignored quantities. Output order is
// fixed: date, then SKU name, then entry ID.
func (s *Service) ExpiringSoon(ctx context.Context, companyID uuid.UUID, asOf time.Time, horizonDays int) ([]*entity.ExpiringItem, error) {
	horizon := asOf.UTC().AddDate(0, 0, horizonDays).Format(DateFormat)

	candidates, err := s.expiries.ListCandidates(ctx, companyID)
	if err != nil {
		return nil, err
	}
	ignores, err := s.expiries.ListIgnores(ctx, companyID)
	if err != nil {
		return nil, err
	}
	ignored := make(map[string]int, len(ignores))
	for _, ig := range ignores {
		ignored[ig.CoilItemID.String()+"|"+ig.ExpiryDate] = ig.Quantity
	}

	var out []*entity.ExpiringItem
	for _, c := range candidates {
		slices, err := s.candidateDates(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, dq := range slices {
			// dates are YYYY-MM-DD, so string order is calendar order
			if dq.ExpiryDate > horizon {
				continue
			}
			qty := dq.Quantity - ignored[c.CoilItemID.String()+"|"+dq.ExpiryDate]
			if qty <= 0 {
				continue
			}
			out = append(out, &entity.ExpiringItem{
				PickEntryID: c.PickEntryID,
				CoilItemID:  c.CoilItemID,
				ExpiryDate:  dq.ExpiryDate,
				Quantity:    qty,
				SkuName:     c.SkuName,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ExpiryDate != out[j].ExpiryDate {
			return out[i].ExpiryDate < out[j].ExpiryDate
		}
		ni, nj := "", ""
		if out[i].SkuName != nil {
			ni = *out[i].SkuName
		}
		if out[j].SkuName != nil {
			nj = *out[j].SkuName
		}
		if ni != nj {
			return ni < nj
		}
		return out[i].PickEntryID.String() < out[j].PickEntryID.String()
	})
	return out, nil
}

func (s *Service) candidateDates(ctx context.Context, c *repository.ExpiryCandidate) ([]DatedQuantity, error) {
	overrides, err := s.expiries.ListOverrides(ctx, c.PickEntryID)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		out := make([]DatedQuantity, 0, len(overrides))
		for _, o := range overrides {
			out = append(out, DatedQuantity{ExpiryDate: o.ExpiryDate, Quantity: o.Quantity})
		}
		return out, nil
	}
	if c.ExpiryDate == nil || c.Count == nil {
		return nil, nil
	}
	return []DatedQuantity{{ExpiryDate: *c.ExpiryDate, Quantity: *c.Count}}, nil
}
