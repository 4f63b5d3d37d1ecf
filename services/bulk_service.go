package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"checkin-guide/apperr"
	"checkin-guide/models"
	"checkin-guide/validation"
)

const bulkConcurrency = 4

type TargetResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkReport tells which targets took a bulk write.
type BulkReport struct {
	Requested int            `json:"requested"`
	Applied   int            `json:"applied"`
	Failed    int            `json:"failed"`
	Skipped   []string       `json:"skipped"`
	Results   []TargetResult `json:"results"`
}

func (r *BulkReport) Summary() string {
	return fmt.Sprintf("Применено к %d из %d", r.Applied, r.Requested)
}

// BulkService applies one patch to many apartments.
type BulkService struct {
	Deps
	apartments *ApartmentService
}

func NewBulkService(d Deps, apartments *ApartmentService) *BulkService {
	return &BulkService{Deps: d, apartments: apartments}
}

// targets drops blanks, duplicates and exclude, and returns what was dropped.
func targets(ids []string, exclude string) (keep, skipped []string) {
	seen := make(map[string]bool, len(ids))
	skipped = []string{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if id == exclude || seen[id] {
			skipped = append(skipped, id)
			continue
		}
		seen[id] = true
		keep = append(keep, id)
	}
	return keep, skipped
}

func (s *BulkService) MassUpdate(ctx context.Context, ids []string, patch models.ApartmentPatch) (*BulkReport, error) {
	keep, skipped := targets(ids, "")
	if len(keep) == 0 {
		return nil, apperr.Validation("Выберите хотя бы одну квартиру", map[string]string{"ids": "Не выбраны квартиры"})
	}
	if patch.IsEmpty() {
		return nil, apperr.Validation("Укажите хотя бы одно поле для изменения", map[string]string{"patch": "Нет изменений"})
	}
	if res := validation.ValidatePartial(fieldValues(patch.Values()), validation.ApartmentRules); !res.IsValid {
		return nil, apperr.Validation(msgInvalidForm, res.Errors)
	}

	report := s.apply(ctx, keep, patch)
	report.Skipped = skipped
	s.Log.LogBulk("mass_update", report.Requested, report.Applied, report.Failed, len(skipped))
	return report, nil
}

// CopySettings copies the named fields of the source apartment to each
// target. The source is read once; a field it has no value for is copied
// as empty.
func (s *BulkService) CopySettings(ctx context.Context, sourceID string, targetIDs []string, fields []models.Field) (*BulkReport, error) {
	if strings.TrimSpace(sourceID) == "" {
		return nil, apperr.Validation("Выберите квартиру-источник", map[string]string{"source_id": "Обязательное поле"})
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("Выберите поля для копирования", map[string]string{"fields": "Не выбраны поля"})
	}
	for _, f := range fields {
		if !models.IsCopyable(f) {
			return nil, apperr.Validation("Поле нельзя копировать", map[string]string{"fields": string(f)})
		}
	}
	keep, skipped := targets(targetIDs, sourceID)
	if len(keep) == 0 {
		return nil, apperr.Validation("Выберите хотя бы одну квартиру", map[string]string{"target_ids": "Не выбраны квартиры"})
	}

	src, err := s.apartments.load(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	var patch models.ApartmentPatch
	for _, f := range fields {
		v, _ := src.Value(f)
		patch.Set(f, v)
	}

	report := s.apply(ctx, keep, patch)
	report.Skipped = skipped
	s.Log.LogBulk("copy_settings", report.Requested, report.Applied, report.Failed, len(skipped))
	return report, nil
}

// CopyTargets lists the apartments settings can be copied to.
func (s *BulkService) CopyTargets(ctx context.Context, sourceID string) ([]models.Apartment, error) {
	if _, err := s.apartments.Get(ctx, sourceID); err != nil {
		return nil, err
	}
	all, err := s.apartments.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]models.Apartment, 0, len(all))
	for _, a := range all {
		if a.ID != sourceID {
			out = append(out, a)
		}
	}
	return out, nil
}

// apply writes patch to every id. Targets are independent: one failing
// does not stop or undo the others.
func (s *BulkService) apply(ctx context.Context, ids []string, patch models.ApartmentPatch) *BulkReport {
	results := make([]TargetResult, len(ids))
	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			_, err := s.apartments.Update(ctx, id, patch)
			results[i] = TargetResult{ID: id, OK: err == nil}
			if err != nil {
				results[i].Error = UserMessage(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := &BulkReport{Requested: len(ids), Results: results}
	for _, r := range results {
		if r.OK {
			report.Applied++
		} else {
			report.Failed++
		}
	}
	return report
}
