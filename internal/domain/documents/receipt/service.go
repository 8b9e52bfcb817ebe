package receipt

import (
	"context"
	"fmt"
	"sort"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
	"sklad/internal/core/tx"
	"sklad/internal/core/types"
	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/domain/registers/balance"
	"sklad/pkg/logger"
)

// Service is the transactional use-case layer for receipts and their lines.
// Every public operation validates first (read-only), then applies all
// mutations - line rows and balance rows - inside one transaction.
type Service struct {
	repo      Repository
	balances  *balance.Service
	validator *Validator
	lines     *LineValidator
	txManager tx.Manager
}

// NewService creates a receipt service with its validators.
func NewService(
	repo Repository,
	resources resource.Repository,
	units unit.Repository,
	balances *balance.Service,
	txManager tx.Manager,
) *Service {
	lineValidator := NewLineValidator(resources, units, balances)
	return &Service{
		repo:      repo,
		balances:  balances,
		validator: NewValidator(repo, balances, lineValidator),
		lines:     lineValidator,
		txManager: txManager,
	}
}

// Validator exposes the receipt validator (used by tests and read-side
// callers that need a dry-run check).
func (s *Service) Validator() *Validator {
	return s.validator
}

// GetByID retrieves a receipt with its lines.
func (s *Service) GetByID(ctx context.Context, receiptID id.ID) (*Receipt, error) {
	rec, err := s.repo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	rec.Lines = lines

	return rec, nil
}

// Create persists a new receipt header and, when an initial line set is
// provided, its lines plus the matching balance increases.
func (s *Service) Create(ctx context.Context, rec *Receipt) error {
	if err := rec.Validate(ctx); err != nil {
		return err
	}
	if err := s.validator.ValidateForCreate(ctx, rec, rec.Lines); err != nil {
		return err
	}

	for i := range rec.Lines {
		if id.IsNil(rec.Lines[i].ID) {
			rec.Lines[i].ID = id.New()
		}
		rec.Lines[i].ReceiptID = rec.ID
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rec); err != nil {
			return fmt.Errorf("create receipt: %w", err)
		}
		if len(rec.Lines) > 0 {
			if err := s.repo.InsertLines(ctx, rec.Lines); err != nil {
				return fmt.Errorf("insert lines: %w", err)
			}
			for _, line := range rec.Lines {
				if err := s.balances.Increase(ctx, line.ResourceID, line.UnitID, line.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "receipt created",
		"id", rec.ID, "number", rec.Number, "lines", len(rec.Lines))
	return nil
}

// Update rewrites number and date of an existing receipt. Lines are not
// touched here; use AddLine / ReplaceLines / DeleteLine.
func (s *Service) Update(ctx context.Context, rec *Receipt) error {
	existing, err := s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}

	if err := rec.Validate(ctx); err != nil {
		return err
	}

	// Current lines stand in for the new set: no line is changed or removed,
	// so only header-level rules apply.
	currentLines, err := s.repo.GetLines(ctx, rec.ID)
	if err != nil {
		return fmt.Errorf("get lines: %w", err)
	}
	if err := s.validator.ValidateForUpdate(ctx, rec, currentLines); err != nil {
		return err
	}

	existing.Number = rec.Number
	existing.Date = rec.Date

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, existing)
	})
	if err != nil {
		return err
	}

	rec.Lines = currentLines
	logger.Info(ctx, "receipt updated", "id", rec.ID, "number", rec.Number)
	return nil
}

// Delete removes a receipt after verifying every line's quantity can be
// released. The decreases run again under row locks inside the transaction,
// so a concurrent consumer between pre-check and commit rolls the whole
// deletion back instead of driving a balance negative.
func (s *Service) Delete(ctx context.Context, receiptID id.ID) error {
	if err := s.validator.ValidateForDelete(ctx, receiptID); err != nil {
		return err
	}

	lines, err := s.repo.GetLines(ctx, receiptID)
	if err != nil {
		return fmt.Errorf("get lines: %w", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, line := range lines {
			if err := s.balances.Decrease(ctx, line.ResourceID, line.UnitID, line.Quantity); err != nil {
				return err
			}
		}
		// Line rows cascade with the header.
		return s.repo.Delete(ctx, receiptID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "receipt deleted", "id", receiptID, "lines", len(lines))
	return nil
}

// AddLine appends a line to an existing receipt and increases the balance.
func (s *Service) AddLine(ctx context.Context, line *Line) error {
	if _, err := s.repo.GetByID(ctx, line.ReceiptID); err != nil {
		return err
	}

	if err := s.lines.Validate(ctx, *line, nil); err != nil {
		return err
	}

	if id.IsNil(line.ID) {
		line.ID = id.New()
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertLines(ctx, []Line{*line}); err != nil {
			return fmt.Errorf("insert line: %w", err)
		}
		return s.balances.Increase(ctx, line.ResourceID, line.UnitID, line.Quantity)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "receipt line added",
		"receipt_id", line.ReceiptID, "resource_id", line.ResourceID,
		"unit_id", line.UnitID, "quantity", line.Quantity)
	return nil
}

// ReplaceLines swaps the entire line set of a receipt. Balance deltas are
// aggregated per (resource, unit) pair across the old and new sets - not per
// individual line - and all decreases are applied strictly before increases
// to avoid transient over-commitment.
func (s *Service) ReplaceLines(ctx context.Context, receiptID id.ID, newLines []Line) error {
	if _, err := s.repo.GetByID(ctx, receiptID); err != nil {
		return err
	}

	oldLines, err := s.repo.GetLines(ctx, receiptID)
	if err != nil {
		return fmt.Errorf("get lines: %w", err)
	}

	for i := range newLines {
		newLines[i].ReceiptID = receiptID
		oldLine := MatchLine(oldLines, newLines[i])
		if err := s.lines.Validate(ctx, newLines[i], oldLine); err != nil {
			return err
		}
	}

	decreases, increases := AggregateDeltas(oldLines, newLines)

	// Pre-check every net decrease before opening the transaction.
	for _, d := range decreases {
		ok, err := s.balances.CheckAvailability(ctx, d.Pair.ResourceID, d.Pair.UnitID, d.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return s.insufficientForDecrease(ctx, d)
		}
	}

	for i := range newLines {
		if id.IsNil(newLines[i].ID) {
			newLines[i].ID = id.New()
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, d := range decreases {
			if err := s.balances.Decrease(ctx, d.Pair.ResourceID, d.Pair.UnitID, d.Quantity); err != nil {
				return err
			}
		}
		for _, i := range increases {
			if err := s.balances.Increase(ctx, i.Pair.ResourceID, i.Pair.UnitID, i.Quantity); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteLines(ctx, receiptID); err != nil {
			return fmt.Errorf("delete old lines: %w", err)
		}
		if len(newLines) > 0 {
			if err := s.repo.InsertLines(ctx, newLines); err != nil {
				return fmt.Errorf("insert new lines: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "receipt lines replaced",
		"receipt_id", receiptID,
		"old_lines", len(oldLines), "new_lines", len(newLines),
		"decreases", len(decreases), "increases", len(increases))
	return nil
}

// DeleteLine removes a single line and releases its quantity.
func (s *Service) DeleteLine(ctx context.Context, lineID id.ID) error {
	line, err := s.repo.GetLineByID(ctx, lineID)
	if err != nil {
		return err
	}

	ok, err := s.balances.CheckAvailability(ctx, line.ResourceID, line.UnitID, line.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return s.insufficientForDecrease(ctx, PairDelta{
			Pair:     line.PairOf(),
			Quantity: line.Quantity,
		})
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.balances.Decrease(ctx, line.ResourceID, line.UnitID, line.Quantity); err != nil {
			return err
		}
		return s.repo.DeleteLine(ctx, lineID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "receipt line deleted",
		"line_id", lineID, "receipt_id", line.ReceiptID)
	return nil
}

// PairDelta is a net balance change for one (resource, unit) pair.
type PairDelta struct {
	Pair     Pair
	Quantity types.Quantity
}

// AggregateDeltas diffs the summed quantities per pair between old and new
// line sets. Returned quantities are positive; membership in decreases or
// increases carries the sign. Slices are ordered deterministically.
func AggregateDeltas(oldLines, newLines []Line) (decreases, increases []PairDelta) {
	oldSums := sumByPair(oldLines)
	newSums := sumByPair(newLines)

	pairs := make(map[Pair]struct{}, len(oldSums)+len(newSums))
	for p := range oldSums {
		pairs[p] = struct{}{}
	}
	for p := range newSums {
		pairs[p] = struct{}{}
	}

	keys := make([]Pair, 0, len(pairs))
	for p := range pairs {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ResourceID != keys[j].ResourceID {
			return keys[i].ResourceID.String() < keys[j].ResourceID.String()
		}
		return keys[i].UnitID.String() < keys[j].UnitID.String()
	})

	for _, p := range keys {
		oldQty := oldSums[p]
		newQty := newSums[p]
		delta := newQty.Sub(oldQty)
		switch {
		case delta.Sign() < 0:
			decreases = append(decreases, PairDelta{Pair: p, Quantity: delta.Neg()})
		case delta.Sign() > 0:
			increases = append(increases, PairDelta{Pair: p, Quantity: delta})
		}
	}
	return decreases, increases
}

func sumByPair(lines []Line) map[Pair]types.Quantity {
	sums := make(map[Pair]types.Quantity, len(lines))
	for _, l := range lines {
		sums[l.PairOf()] = sums[l.PairOf()].Add(l.Quantity)
	}
	return sums
}

func (s *Service) insufficientForDecrease(ctx context.Context, d PairDelta) error {
	return apperror.NewValidationList([]string{fmt.Sprintf(
		"insufficient stock of '%s' (%s) to release %s",
		s.lines.resourceName(ctx, d.Pair.ResourceID),
		s.lines.unitName(ctx, d.Pair.UnitID),
		d.Quantity,
	)})
}
