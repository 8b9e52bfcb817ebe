package receipt

import (
	"context"
	"fmt"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/domain/registers/balance"
)

// LineValidator validates a single receipt line against catalog state and
// stock levels. All checks are read-only; mutation happens later in the
// service under the same transaction.
type LineValidator struct {
	resources resource.Repository
	units     unit.Repository
	balances  *balance.Service
}

// NewLineValidator creates a line validator.
func NewLineValidator(resources resource.Repository, units unit.Repository, balances *balance.Service) *LineValidator {
	return &LineValidator{
		resources: resources,
		units:     units,
		balances:  balances,
	}
}

// Validate checks newLine, optionally against the persisted line it
// replaces. Structural errors (missing or archived catalog entries,
// non-positive quantity) are collected first; stock checks run only when the
// structure is sound.
//
// Keeping an already-archived (resource, unit) pair unchanged is allowed;
// switching to an archived pair, even as a replacement, is not.
func (v *LineValidator) Validate(ctx context.Context, newLine Line, oldLine *Line) error {
	var errs []string

	allowArchived := oldLine != nil &&
		oldLine.ResourceID == newLine.ResourceID &&
		oldLine.UnitID == newLine.UnitID

	res, err := v.lookupResource(ctx, newLine.ResourceID)
	if err != nil {
		return err
	}
	if res == nil {
		errs = append(errs, fmt.Sprintf("resource with id %s not found", newLine.ResourceID))
	} else if !allowArchived && res.IsArchived() {
		errs = append(errs, fmt.Sprintf("resource '%s' is archived and cannot be selected", res.Name))
	}

	u, err := v.lookupUnit(ctx, newLine.UnitID)
	if err != nil {
		return err
	}
	if u == nil {
		errs = append(errs, fmt.Sprintf("unit with id %s not found", newLine.UnitID))
	} else if !allowArchived && u.IsArchived() {
		errs = append(errs, fmt.Sprintf("unit '%s' is archived and cannot be selected", u.Name))
	}

	if newLine.Quantity.Sign() <= 0 {
		errs = append(errs, "quantity must be greater than zero")
	}

	// Fail fast on structural errors - stock checks against a broken line
	// would be meaningless.
	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}

	if oldLine != nil {
		if oldLine.PairOf() == newLine.PairOf() {
			// Same pair: only a shrinking quantity requires stock.
			delta := oldLine.Quantity.Sub(newLine.Quantity)
			if delta.Sign() > 0 {
				ok, err := v.balances.CheckAvailability(ctx, newLine.ResourceID, newLine.UnitID, delta)
				if err != nil {
					return err
				}
				if !ok {
					errs = append(errs, fmt.Sprintf(
						"insufficient stock of '%s' (%s) to reduce the quantity by %s",
						res.Name, u.Name, delta))
				}
			}
		} else {
			// Pair switch: the entire old line must be releasable.
			ok, err := v.balances.CheckAvailability(ctx, oldLine.ResourceID, oldLine.UnitID, oldLine.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				errs = append(errs, fmt.Sprintf(
					"insufficient stock of '%s' (%s) to replace the line (need to release %s)",
					v.resourceName(ctx, oldLine.ResourceID),
					v.unitName(ctx, oldLine.UnitID),
					oldLine.Quantity))
			}
		}
	}

	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}
	return nil
}

func (v *LineValidator) lookupResource(ctx context.Context, resourceID id.ID) (*resource.Resource, error) {
	res, err := v.resources.GetByID(ctx, resourceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (v *LineValidator) lookupUnit(ctx context.Context, unitID id.ID) (*unit.Unit, error) {
	u, err := v.units.GetByID(ctx, unitID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (v *LineValidator) resourceName(ctx context.Context, resourceID id.ID) string {
	if res, err := v.resources.GetByID(ctx, resourceID); err == nil {
		return res.Name
	}
	return resourceID.String()
}

func (v *LineValidator) unitName(ctx context.Context, unitID id.ID) string {
	if u, err := v.units.GetByID(ctx, unitID); err == nil {
		return u.Name
	}
	return unitID.String()
}

// Validator validates receipt-level invariants and orchestrates line
// validation across a full create/update/delete of a document.
type Validator struct {
	repo     Repository
	balances *balance.Service
	lines    *LineValidator
}

// NewValidator creates a receipt validator.
func NewValidator(repo Repository, balances *balance.Service, lines *LineValidator) *Validator {
	return &Validator{
		repo:     repo,
		balances: balances,
		lines:    lines,
	}
}

// ValidateForCreate checks number uniqueness and validates every line with
// no predecessor. Errors across lines are aggregated, not fail-fast.
func (v *Validator) ValidateForCreate(ctx context.Context, rec *Receipt, newLines []Line) error {
	var errs []string

	unique, err := v.isNumberUnique(ctx, rec.Number, id.Nil())
	if err != nil {
		return err
	}
	if !unique {
		errs = append(errs, fmt.Sprintf("receipt with number '%s' already exists", rec.Number))
	}

	// An empty line list is legal - a receipt may exist as a bare header.
	for _, line := range newLines {
		if err := v.lines.Validate(ctx, line, nil); err != nil {
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				return err
			}
			errs = append(errs, appErr.Errors()...)
		}
	}

	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}
	return nil
}

// ValidateForUpdate checks the receipt exists, number uniqueness excluding
// itself, validates each new line against its matched persisted line, and
// verifies every removed line's full quantity can still be released.
func (v *Validator) ValidateForUpdate(ctx context.Context, rec *Receipt, newLines []Line) error {
	if _, err := v.repo.GetByID(ctx, rec.ID); err != nil {
		return err
	}

	var errs []string

	unique, err := v.isNumberUnique(ctx, rec.Number, rec.ID)
	if err != nil {
		return err
	}
	if !unique {
		errs = append(errs, fmt.Sprintf("receipt with number '%s' already exists", rec.Number))
	}

	oldLines, err := v.repo.GetLines(ctx, rec.ID)
	if err != nil {
		return fmt.Errorf("get current lines: %w", err)
	}

	for _, newLine := range newLines {
		oldLine := MatchLine(oldLines, newLine)
		if err := v.lines.Validate(ctx, newLine, oldLine); err != nil {
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				return err
			}
			errs = append(errs, appErr.Errors()...)
		}
	}

	for _, removed := range removedLines(oldLines, newLines) {
		ok, err := v.balances.CheckAvailability(ctx, removed.ResourceID, removed.UnitID, removed.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, fmt.Sprintf(
				"insufficient stock of '%s' (%s) to remove the line (need to release %s)",
				v.lines.resourceName(ctx, removed.ResourceID),
				v.lines.unitName(ctx, removed.UnitID),
				removed.Quantity))
		}
	}

	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}
	return nil
}

// ValidateForDelete checks the receipt exists and that the full quantity of
// every persisted line can be released from stock.
func (v *Validator) ValidateForDelete(ctx context.Context, receiptID id.ID) error {
	if _, err := v.repo.GetByID(ctx, receiptID); err != nil {
		return err
	}

	lines, err := v.repo.GetLines(ctx, receiptID)
	if err != nil {
		return fmt.Errorf("get lines: %w", err)
	}

	var errs []string
	for _, line := range lines {
		ok, err := v.balances.CheckAvailability(ctx, line.ResourceID, line.UnitID, line.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, fmt.Sprintf(
				"insufficient stock of '%s' (%s) to delete the receipt (need to release %s)",
				v.lines.resourceName(ctx, line.ResourceID),
				v.lines.unitName(ctx, line.UnitID),
				line.Quantity))
		}
	}

	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}
	return nil
}

func (v *Validator) isNumberUnique(ctx context.Context, number string, excludeID id.ID) (bool, error) {
	exists, err := v.repo.NumberExists(ctx, NormalizeNumber(number), excludeID)
	if err != nil {
		return false, fmt.Errorf("check number uniqueness: %w", err)
	}
	return !exists, nil
}

// MatchLine finds the persisted line a new line corresponds to: by line id
// when set, else by (resource, unit) pair. The id scan runs over the whole
// set before the pair fallback, so a duplicate pair earlier in the set
// cannot shadow an id match. Returns nil when the new line has no
// predecessor.
func MatchLine(oldLines []Line, newLine Line) *Line {
	if !id.IsNil(newLine.ID) {
		for i := range oldLines {
			if oldLines[i].ID == newLine.ID {
				return &oldLines[i]
			}
		}
	}
	for i := range oldLines {
		if oldLines[i].PairOf() == newLine.PairOf() {
			return &oldLines[i]
		}
	}
	return nil
}

// removedLines returns persisted lines that have no counterpart in the new
// set - their quantities must be released from stock.
func removedLines(oldLines, newLines []Line) []Line {
	var removed []Line
	for _, ol := range oldLines {
		matched := false
		for _, nl := range newLines {
			if (!id.IsNil(nl.ID) && nl.ID == ol.ID) || nl.PairOf() == ol.PairOf() {
				matched = true
				break
			}
		}
		if !matched {
			removed = append(removed, ol)
		}
	}
	return removed
}
