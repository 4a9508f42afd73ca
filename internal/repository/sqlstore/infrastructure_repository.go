package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/domain/repository"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/query"
)

type infrastructureRepository struct {
	db      *sqlx.DB
	dialect query.Dialect
	logger  *zap.Logger
}

func NewInfrastructureRepository(db *DB) repository.InfrastructureRepository {
	return &infrastructureRepository{
		db:      db.DB,
		dialect: db.dialect,
		logger:  db.logger,
	}
}

// Search выполняет план. Пустое множество доступных объектов даёт пустую
// выдачу без обращения к хранилищу.
func (r *infrastructureRepository) Search(ctx context.Context, plan *query.Plan) ([]*domain.SearchItem, error) {
	items := []*domain.SearchItem{}
	if plan.Empty() {
		return items, nil
	}

	q, args, err := query.Compile(plan, r.dialect)
	if err != nil {
		r.logger.Error("Failed to compile search plan",
			zap.Strings("predicates", plan.Kinds()),
			zap.Error(err))
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		r.logger.Error("Failed to execute search query",
			zap.Strings("predicates", plan.Kinds()),
			zap.Int("args", len(args)),
			zap.Any("params", args),
			zap.Int("limit", plan.Limit),
			zap.Error(err))
		return nil, classify(err)
	}

	for _, item := range items {
		item.NormalizePosition()
	}

	return items, nil
}

type weekdayRow struct {
	InfrastructureID string `db:"infrastructure_id"`
	Weekday          string `db:"weekday"`
}

type exceptionRow struct {
	InfrastructureID string `db:"infrastructure_id"`
	domain.ScheduleException
}

// ListSchedules загружает недельные дни всех расписаний и только те
// исключения, что пересекают [from, to]
func (r *infrastructureRepository) ListSchedules(ctx context.Context, from, to time.Time) ([]domain.Schedule, error) {
	var weekdays []weekdayRow
	err := r.db.SelectContext(ctx, &weekdays, r.db.Rebind(`
		SELECT s.infrastructure_id, w.weekday
		FROM schedules s
		JOIN schedule_weekdays w ON w.schedule_id = s.id
	`))
	if err != nil {
		r.logger.Error("Failed to load schedule weekdays", zap.Error(err))
		return nil, classify(err)
	}

	var exceptions []exceptionRow
	err = r.db.SelectContext(ctx, &exceptions, r.db.Rebind(`
		SELECT s.infrastructure_id, e.start_date, e.end_date, e.kind
		FROM schedules s
		JOIN schedule_exceptions e ON e.schedule_id = s.id
		WHERE e.start_date <= ? AND e.end_date >= ?
	`), domain.DateOf(to), domain.DateOf(from))
	if err != nil {
		r.logger.Error("Failed to load schedule exceptions", zap.Error(err))
		return nil, classify(err)
	}

	byID := make(map[string]*domain.Schedule)
	get := func(id string) *domain.Schedule {
		s, ok := byID[id]
		if !ok {
			s = &domain.Schedule{InfrastructureID: id}
			byID[id] = s
		}
		return s
	}

	for _, w := range weekdays {
		day, err := domain.ParseWeekday(w.Weekday)
		if err != nil {
			r.logger.Warn("Skipping unknown weekday label",
				zap.String("infrastructure_id", w.InfrastructureID),
				zap.String("weekday", w.Weekday))
			continue
		}
		s := get(w.InfrastructureID)
		s.Weekly = s.Weekly.Add(day)
	}

	for _, e := range exceptions {
		if !e.Kind.Valid() {
			r.logger.Warn("Skipping unknown exception kind",
				zap.String("infrastructure_id", e.InfrastructureID),
				zap.String("kind", string(e.Kind)))
			continue
		}
		s := get(e.InfrastructureID)
		s.Exceptions = append(s.Exceptions, e.ScheduleException)
	}

	schedules := make([]domain.Schedule, 0, len(byID))
	for _, s := range byID {
		schedules = append(schedules, *s)
	}
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].InfrastructureID < schedules[j].InfrastructureID
	})

	return schedules, nil
}

// ListFacets - значения фасетов из справочников и максимальная вместимость
func (r *infrastructureRepository) ListFacets(ctx context.Context) (*domain.Facets, error) {
	facets := domain.EmptyFacets()

	lists := []struct {
		table string
		dest  *[]string
	}{
		{"room_types", &facets.RoomTypes},
		{"equipment_types", &facets.EquipmentTypes},
		{"accessibility_types", &facets.AccessibilityTypes},
	}
	for _, l := range lists {
		if err := r.db.SelectContext(ctx, l.dest, "SELECT DISTINCT name FROM "+l.table+" ORDER BY name"); err != nil {
			r.logger.Error("Failed to list facet values", zap.String("table", l.table), zap.Error(err))
			return nil, classify(err)
		}
	}

	if err := r.db.GetContext(ctx, &facets.MaxCapacity,
		"SELECT COALESCE(MAX(capacity), 0) FROM infrastructures"); err != nil {
		r.logger.Error("Failed to get max capacity", zap.Error(err))
		return nil, classify(err)
	}

	return facets, nil
}

// GetByID возвращает карточку объекта. Текст сообщения, активного на asOf,
// заменяет устаревшее статическое поле note.
func (r *infrastructureRepository) GetByID(ctx context.Context, id string, asOf time.Time) (*domain.InfrastructureDetail, error) {
	var infra domain.Infrastructure
	err := r.db.GetContext(ctx, &infra, r.db.Rebind(`
		SELECT id, name, address, latitude, longitude, note, in_service, capacity, owner_id
		FROM infrastructures
		WHERE id = ?
	`), id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrInfrastructureNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get infrastructure", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}

	detail := &domain.InfrastructureDetail{
		Infrastructure:  infra,
		Information:     infra.Note,
		RoomTypes:       []string{},
		Equipments:      []domain.Equipment{},
		Accessibilities: []string{},
	}

	day := domain.DateOf(asOf)
	var notes []domain.InformationalNote
	err = r.db.SelectContext(ctx, &notes, r.db.Rebind(`
		SELECT body, appears_on, expires_on
		FROM informational_notes
		WHERE infrastructure_id = ?
		  AND appears_on <= ?
		  AND (expires_on IS NULL OR expires_on >= ?)
		ORDER BY appears_on DESC, id DESC
		LIMIT 1
	`), id, day, day)
	if err != nil {
		r.logger.Error("Failed to get informational note", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}
	if len(notes) > 0 && notes[0].ActiveOn(day) {
		text := notes[0].Text
		detail.Information = &text
	}

	if err := r.db.SelectContext(ctx, &detail.RoomTypes, r.db.Rebind(`
		SELECT t.name
		FROM infrastructure_room_types l
		JOIN room_types t ON t.id = l.room_type_id
		WHERE l.infrastructure_id = ?
		ORDER BY t.name
	`), id); err != nil {
		r.logger.Error("Failed to get room types", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}

	if err := r.db.SelectContext(ctx, &detail.Equipments, r.db.Rebind(`
		SELECT e.id, e.name, t.name AS type
		FROM infrastructure_equipment e
		JOIN equipment_types t ON t.id = e.equipment_type_id
		WHERE e.infrastructure_id = ?
		ORDER BY t.name, e.name
	`), id); err != nil {
		r.logger.Error("Failed to get equipment", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}

	if err := r.db.SelectContext(ctx, &detail.Accessibilities, r.db.Rebind(`
		SELECT t.name
		FROM infrastructure_accessibility l
		JOIN accessibility_types t ON t.id = l.accessibility_type_id
		WHERE l.infrastructure_id = ?
		ORDER BY t.name
	`), id); err != nil {
		r.logger.Error("Failed to get accessibility", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}

	return detail, nil
}

// GetSchedule возвращает расписание объекта со всеми исключениями.
// Объект без расписания получает пустое расписание (никогда не открыт).
func (r *infrastructureRepository) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind(
		"SELECT EXISTS (SELECT 1 FROM infrastructures WHERE id = ?)"), id)
	if err != nil {
		r.logger.Error("Failed to check infrastructure", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}
	if !exists {
		return nil, errors.ErrInfrastructureNotFound
	}

	var labels []string
	err = r.db.SelectContext(ctx, &labels, r.db.Rebind(`
		SELECT w.weekday
		FROM schedules s
		JOIN schedule_weekdays w ON w.schedule_id = s.id
		WHERE s.infrastructure_id = ?
	`), id)
	if err != nil {
		r.logger.Error("Failed to get schedule weekdays", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}

	schedule := &domain.Schedule{InfrastructureID: id, Exceptions: []domain.ScheduleException{}}
	for _, label := range labels {
		day, err := domain.ParseWeekday(label)
		if err != nil {
			r.logger.Warn("Skipping unknown weekday label", zap.String("id", id), zap.String("weekday", label))
			continue
		}
		schedule.Weekly = schedule.Weekly.Add(day)
	}

	var exceptions []domain.ScheduleException
	err = r.db.SelectContext(ctx, &exceptions, r.db.Rebind(`
		SELECT e.start_date, e.end_date, e.kind
		FROM schedules s
		JOIN schedule_exceptions e ON e.schedule_id = s.id
		WHERE s.infrastructure_id = ?
		ORDER BY e.start_date, e.end_date
	`), id)
	if err != nil {
		r.logger.Error("Failed to get schedule exceptions", zap.String("id", id), zap.Error(err))
		return nil, classify(err)
	}
	for _, e := range exceptions {
		if e.Kind.Valid() {
			schedule.Exceptions = append(schedule.Exceptions, e)
		}
	}

	return schedule, nil
}

func (r *infrastructureRepository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}
