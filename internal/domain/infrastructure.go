package domain

import "time"

// Infrastructure - зарегистрированный спортивный объект
type Infrastructure struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Address   string   `json:"address" db:"address"`
	Latitude  *float64 `json:"lat" db:"latitude"`
	Longitude *float64 `json:"lon" db:"longitude"`
	Note      *string  `json:"-" db:"note"`
	InService bool     `json:"in_service" db:"in_service"`
	Capacity  *float64 `json:"capacity,omitempty" db:"capacity"`
	OwnerID   *string  `json:"-" db:"owner_id"`
}

// Position возвращает координаты объекта. Если известна только одна из
// координат, позиция считается неизвестной.
func (i *Infrastructure) Position() (Point, bool) {
	if i.Latitude == nil || i.Longitude == nil {
		return Point{}, false
	}
	return Point{Lat: *i.Latitude, Lon: *i.Longitude}, true
}

// IsVisibleTo - выведенный из эксплуатации объект виден только владельцу
func (i *Infrastructure) IsVisibleTo(viewerID string) bool {
	if i.InService {
		return true
	}
	return viewerID != "" && i.OwnerID != nil && *i.OwnerID == viewerID
}

// SearchItem - элемент выдачи поиска и выборки для карты
type SearchItem struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Address    string   `json:"address" db:"address"`
	Lat        *float64 `json:"lat" db:"latitude"`
	Lon        *float64 `json:"lon" db:"longitude"`
	DistanceKm *float64 `json:"distanceKm,omitempty" db:"distance_km"`
}

// Position - как у Infrastructure: одна координата без другой не считается
func (s *SearchItem) Position() (Point, bool) {
	if s.Lat == nil || s.Lon == nil {
		return Point{}, false
	}
	return Point{Lat: *s.Lat, Lon: *s.Lon}, true
}

// NormalizePosition обнуляет «половинчатые» координаты
func (s *SearchItem) NormalizePosition() {
	if s.Lat == nil || s.Lon == nil {
		s.Lat = nil
		s.Lon = nil
	}
}

// Facets - значения фильтров для панели поиска
type Facets struct {
	RoomTypes          []string `json:"pieces"`
	EquipmentTypes     []string `json:"equipements"`
	AccessibilityTypes []string `json:"accessibilites"`
	MaxCapacity        float64  `json:"jaugeMax"`
}

// EmptyFacets - форма ответа при недоступном хранилище
func EmptyFacets() *Facets {
	return &Facets{
		RoomTypes:          []string{},
		EquipmentTypes:     []string{},
		AccessibilityTypes: []string{},
	}
}

// Equipment - оборудование объекта
type Equipment struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`
}

// InformationalNote - информационное сообщение с окном публикации
type InformationalNote struct {
	Text      string     `json:"text" db:"body"`
	AppearsOn time.Time  `json:"appears_on" db:"appears_on"`
	ExpiresOn *time.Time `json:"expires_on,omitempty" db:"expires_on"`
}

// ActiveOn - сообщение опубликовано и ещё не истекло на указанную дату
func (n InformationalNote) ActiveOn(day time.Time) bool {
	day = DateOf(day)
	if DateOf(n.AppearsOn).After(day) {
		return false
	}
	return n.ExpiresOn == nil || !DateOf(*n.ExpiresOn).Before(day)
}

// InfrastructureDetail - карточка объекта
type InfrastructureDetail struct {
	Infrastructure
	Information     *string     `json:"informations"`
	RoomTypes       []string    `json:"pieces"`
	Equipments      []Equipment `json:"equipments"`
	Accessibilities []string    `json:"accessibilites"`
	IsOwner         bool        `json:"isResponsable"`
}
