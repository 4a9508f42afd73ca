package testhelpers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/infrastructure-search/internal/domain"
)

// Infrastructure - строка фикстуры объекта
type Infrastructure struct {
	ID        string
	Name      string
	Address   string
	Lat       *float64
	Lon       *float64
	Capacity  *float64
	Note      *string
	Withdrawn bool
	OwnerID   *string
}

// InsertInfrastructure inserts infrastructure rows
func InsertInfrastructure(ctx context.Context, db *sqlx.DB, infras ...Infrastructure) error {
	for _, i := range infras {
		_, err := db.ExecContext(ctx, db.Rebind(`
			INSERT INTO infrastructures (id, name, address, latitude, longitude, note, in_service, capacity, owner_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`), i.ID, i.Name, i.Address, i.Lat, i.Lon, i.Note, !i.Withdrawn, i.Capacity, i.OwnerID)
		if err != nil {
			return fmt.Errorf("insert infrastructure %s: %w", i.ID, err)
		}
	}
	return nil
}

var facetTables = map[domain.Facet][2]string{
	domain.FacetRoomType:      {"room_types", "INSERT INTO infrastructure_room_types (infrastructure_id, room_type_id) VALUES (?, ?)"},
	domain.FacetEquipment:     {"equipment_types", "INSERT INTO infrastructure_equipment (infrastructure_id, equipment_type_id, name) VALUES (?, ?, ?)"},
	domain.FacetAccessibility: {"accessibility_types", "INSERT INTO infrastructure_accessibility (infrastructure_id, accessibility_type_id) VALUES (?, ?)"},
}

// InsertFacetValue добавляет значение в справочник фасета (дубликаты допускаются)
// и возвращает его id
func InsertFacetValue(ctx context.Context, db *sqlx.DB, facet domain.Facet, name string) (int64, error) {
	id, err := insertID(ctx, db, "INSERT INTO "+facetTables[facet][0]+" (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("insert %s value %q: %w", facet, name, err)
	}
	return id, nil
}

// insertID выполняет INSERT и возвращает сгенерированный id.
// MySQL не поддерживает RETURNING, там id берётся из LastInsertId.
func insertID(ctx context.Context, db *sqlx.DB, stmt string, args ...interface{}) (int64, error) {
	if db.DriverName() == "mysql" {
		res, err := db.ExecContext(ctx, stmt, args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	var id int64
	err := db.GetContext(ctx, &id, db.Rebind(stmt+" RETURNING id"), args...)
	return id, err
}

// LinkFacet связывает объект со значением фасета, создавая значение справочника
func LinkFacet(ctx context.Context, db *sqlx.DB, facet domain.Facet, infraID, name string) error {
	var typeID int64
	err := db.GetContext(ctx, &typeID, db.Rebind(
		"SELECT id FROM "+facetTables[facet][0]+" WHERE name = ? ORDER BY id LIMIT 1"), name)
	if errors.Is(err, sql.ErrNoRows) {
		typeID, err = InsertFacetValue(ctx, db, facet, name)
	}
	if err != nil {
		return err
	}

	args := []interface{}{infraID, typeID}
	if facet == domain.FacetEquipment {
		args = append(args, name)
	}
	if _, err := db.ExecContext(ctx, db.Rebind(facetTables[facet][1]), args...); err != nil {
		return fmt.Errorf("link %s %q to %s: %w", facet, name, infraID, err)
	}
	return nil
}

// SetSchedule создаёт расписание объекта с днями недели и исключениями
func SetSchedule(ctx context.Context, db *sqlx.DB, infraID string, weekly domain.WeekdaySet, exceptions ...domain.ScheduleException) error {
	scheduleID, err := insertID(ctx, db, "INSERT INTO schedules (infrastructure_id) VALUES (?)", infraID)
	if err != nil {
		return fmt.Errorf("insert schedule for %s: %w", infraID, err)
	}

	for _, label := range weekly.Labels() {
		if _, err := db.ExecContext(ctx, db.Rebind(
			"INSERT INTO schedule_weekdays (schedule_id, weekday) VALUES (?, ?)"), scheduleID, label); err != nil {
			return fmt.Errorf("insert weekday %s: %w", label, err)
		}
	}

	for _, e := range exceptions {
		if _, err := db.ExecContext(ctx, db.Rebind(
			"INSERT INTO schedule_exceptions (schedule_id, start_date, end_date, kind) VALUES (?, ?, ?, ?)"),
			scheduleID, e.Start, e.End, strings.ToUpper(string(e.Kind))); err != nil {
			return fmt.Errorf("insert exception: %w", err)
		}
	}
	return nil
}

// InsertNote добавляет информационное сообщение
func InsertNote(ctx context.Context, db *sqlx.DB, infraID, body string, appearsOn time.Time, expiresOn *time.Time) error {
	_, err := db.ExecContext(ctx, db.Rebind(
		"INSERT INTO informational_notes (infrastructure_id, body, appears_on, expires_on) VALUES (?, ?, ?, ?)"),
		infraID, body, appearsOn, expiresOn)
	if err != nil {
		return fmt.Errorf("insert note for %s: %w", infraID, err)
	}
	return nil
}
