package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

type SchemaPatchServiceInterface interface {
	ListPatches() []response_models.PatchInfo
	RunPatches(ctx context.Context, names ...string) (response_models.PatchReport, error)
	ListRuns(ctx context.Context, patch string, limit int) ([]db_models.SchemaPatchRun, error)
}

// schemaPatch is one named, idempotent fix. apply never aborts: every step records its own outcome.
type schemaPatch struct {
	name        string
	description string
	apply       func(ctx context.Context, run *patchRun)
}

type SchemaPatchService struct {
	tableRepo repositories.TableRepository
	patchRepo repositories.SchemaPatchRepository
	cityRepo  repositories.CityRepository
	guideRepo repositories.GuideRepository
	logger    *zap.Logger
	registry  []schemaPatch
}

func NewSchemaPatchService(
	tableRepo repositories.TableRepository,
	patchRepo repositories.SchemaPatchRepository,
	cityRepo repositories.CityRepository,
	guideRepo repositories.GuideRepository,
	logger *zap.Logger,
) SchemaPatchServiceInterface {
	s := &SchemaPatchService{
		tableRepo: tableRepo,
		patchRepo: patchRepo,
		cityRepo:  cityRepo,
		guideRepo: guideRepo,
		logger:    logger,
	}
	s.registry = []schemaPatch{
		{
			name:        "city_slug",
			description: "Adds city_slug to every content table and back-fills per-city tables from their name",
			apply:       s.patchCitySlug,
		},
		{
			name:        "city_name",
			description: "Adds city_name to every content table and back-fills per-city tables from the cities table",
			apply:       s.patchCityName,
		},
		{
			name:        "google_map_link",
			description: "Adds google_map_link to every content table",
			apply:       s.patchGoogleMapLink,
		},
		{
			name:        "booking_content_refs",
			description: "Adds attraction_id, restaurant_id and activity_id to bookings",
			apply:       s.patchBookingRefs,
		},
		{
			name:        "city_guides",
			description: "Creates the city_guides junction table and fills it from guide locations",
			apply:       s.patchCityGuides,
		},
	}
	return s
}

func (s *SchemaPatchService) ListPatches() []response_models.PatchInfo {
	out := make([]response_models.PatchInfo, 0, len(s.registry))
	for _, p := range s.registry {
		out = append(out, response_models.PatchInfo{Name: p.name, Description: p.description})
	}
	return out
}

// RunPatches applies the named patches in registry order, or all of them when names is empty.
// There is no transaction and no rollback.
func (s *SchemaPatchService) RunPatches(ctx context.Context, names ...string) (response_models.PatchReport, error) {
	selected, err := s.selectPatches(names)
	if err != nil {
		return response_models.PatchReport{}, err
	}

	report := &response_models.PatchReport{Success: true, Steps: make([]response_models.PatchStep, 0)}
	for _, p := range selected {
		if ctx.Err() != nil {
			return *report, ctx.Err()
		}
		s.logger.Info("running schema patch", zap.String("patch", p.name))
		p.apply(ctx, &patchRun{ctx: ctx, svc: s, patch: p.name, report: report})
	}
	return *report, nil
}

func (s *SchemaPatchService) ListRuns(ctx context.Context, patch string, limit int) ([]db_models.SchemaPatchRun, error) {
	runs, err := s.patchRepo.ListRuns(ctx, patch, limit)
	if err != nil {
		s.logger.Error("listing patch runs failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return runs, nil
}

func (s *SchemaPatchService) selectPatches(names []string) ([]schemaPatch, error) {
	if len(names) == 0 {
		return s.registry, nil
	}

	wanted := map[string]bool{}
	for _, n := range names {
		found := false
		for _, p := range s.registry {
			if p.name == n {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", utils.ErrUnknownPatch, n)
		}
		wanted[n] = true
	}

	out := make([]schemaPatch, 0, len(wanted))
	for _, p := range s.registry {
		if wanted[p.name] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *SchemaPatchService) patchCitySlug(ctx context.Context, run *patchRun) {
	for _, category := range utils.Categories {
		run.ensureColumn(ctx, category.Table(), "city_slug", "TEXT", nil)
		for _, table := range run.cityTables(ctx, category) {
			run.ensureColumn(ctx, table, "city_slug", "TEXT", utils.CitySlugFromTable(category, table))
		}
	}
}

func (s *SchemaPatchService) patchCityName(ctx context.Context, run *patchRun) {
	for _, category := range utils.Categories {
		run.ensureColumn(ctx, category.Table(), "city_name", "TEXT", nil)
		for _, table := range run.cityTables(ctx, category) {
			var fill interface{}
			slug := utils.CitySlugFromTable(category, table)
			city, err := s.cityRepo.GetBySlug(ctx, slug)
			if err != nil {
				s.logger.Warn("city lookup failed", zap.String("city", slug), zap.Error(err))
			}
			if city != nil {
				fill = city.Name
			}
			run.ensureColumn(ctx, table, "city_name", "TEXT", fill)
		}
	}
}

func (s *SchemaPatchService) patchGoogleMapLink(ctx context.Context, run *patchRun) {
	for _, category := range utils.Categories {
		run.ensureColumn(ctx, category.Table(), "google_map_link", "TEXT", nil)
		for _, table := range run.cityTables(ctx, category) {
			run.ensureColumn(ctx, table, "google_map_link", "TEXT", nil)
		}
	}
}

func (s *SchemaPatchService) patchBookingRefs(ctx context.Context, run *patchRun) {
	for _, column := range []string{"attraction_id", "restaurant_id", "activity_id"} {
		run.ensureColumn(ctx, "bookings", column, "VARCHAR(64)", nil)
	}
}

func (s *SchemaPatchService) patchCityGuides(ctx context.Context, run *patchRun) {
	if err := s.patchRepo.EnsureModel(ctx, &db_models.CityGuide{}); err != nil {
		run.record("city_guides", "ensure_table", "", err)
		return
	}
	run.record("city_guides", "ensure_table", "", nil)

	guides, err := s.guideRepo.List(ctx)
	if err != nil {
		run.record("city_guides", "backfill", "", err)
		return
	}

	linked := 0
	for _, g := range guides {
		for _, loc := range g.Locations {
			slug := urlCitySlug(loc)
			if slug == "" {
				continue
			}
			if err := s.guideRepo.LinkCity(ctx, slug, g.ID); err != nil {
				run.record("city_guides", "backfill", g.ID.String()+"/"+slug, err)
				continue
			}
			linked++
		}
	}
	run.record("city_guides", "backfill", fmt.Sprintf("%d links", linked), nil)
}

// patchRun collects step outcomes for one patch and mirrors them into schema_patch_runs.
type patchRun struct {
	ctx    context.Context
	svc    *SchemaPatchService
	patch  string
	report *response_models.PatchReport
}

func (r *patchRun) record(target, action, detail string, err error) {
	step := response_models.PatchStep{Patch: r.patch, Target: target, Action: action, Detail: detail}
	audit := &db_models.SchemaPatchRun{Patch: r.patch, Target: target, Action: action, Success: err == nil}
	if err != nil {
		step.Error = err.Error()
		audit.Error = err.Error()
		r.report.Success = false
		r.svc.logger.Warn("schema patch step failed",
			zap.String("patch", r.patch), zap.String("target", target), zap.String("action", action), zap.Error(err))
	}
	r.report.Steps = append(r.report.Steps, step)

	// Audit rows are written even after ctx is cancelled.
	if aerr := r.svc.patchRepo.RecordRun(context.WithoutCancel(r.ctx), audit); aerr != nil {
		r.svc.logger.Warn("recording patch step failed", zap.String("patch", r.patch), zap.Error(aerr))
	}
}

func (r *patchRun) cityTables(ctx context.Context, category utils.Category) []string {
	tables, err := r.svc.tableRepo.CityTables(ctx, category)
	if err != nil {
		r.record(category.TablePrefix()+"*", "discover", "", err)
		return nil
	}
	return tables
}

// ensureColumn adds column when missing, then back-fills NULL or empty cells with fill when it is non-nil.
func (r *patchRun) ensureColumn(ctx context.Context, table, column, sqlType string, fill interface{}) {
	target := table + "." + column
	repo := r.svc.tableRepo

	exists, err := repo.HasTable(ctx, table)
	if err != nil {
		r.record(target, "ensure_column", "", err)
		return
	}
	if !exists {
		r.record(target, "ensure_column", "", fmt.Errorf("%w: %s", utils.ErrTableNotFound, table))
		return
	}

	has, err := repo.HasColumn(ctx, table, column)
	if err != nil {
		r.record(target, "ensure_column", "", err)
		return
	}
	if has {
		r.record(target, "ensure_column", "already present", nil)
	} else {
		if err := repo.AddColumn(ctx, table, column, sqlType); err != nil {
			r.record(target, "add_column", "", err)
			return
		}
		r.record(target, "add_column", sqlType, nil)
	}

	if fill == nil {
		return
	}
	n, err := repo.BackfillColumn(ctx, table, column, fill)
	if err != nil {
		r.record(target, "backfill", "", err)
		return
	}
	r.record(target, "backfill", fmt.Sprintf("%d rows", n), nil)
}
