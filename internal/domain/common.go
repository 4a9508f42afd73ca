package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// BoundingBox - видимая область карты. West > East означает, что
// область пересекает линию перемены дат.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// LatRange возвращает широты в порядке [min, max] независимо от того,
// как клиент передал north/south
func (b BoundingBox) LatRange() (float64, float64) {
	if b.South <= b.North {
		return b.South, b.North
	}
	return b.North, b.South
}

// CrossesDateline - west > east
func (b BoundingBox) CrossesDateline() bool {
	return b.West > b.East
}

// Contains проверяет попадание точки с учётом перехода через линию перемены дат
func (b BoundingBox) Contains(p Point) bool {
	minLat, maxLat := b.LatRange()
	if p.Lat < minLat || p.Lat > maxLat {
		return false
	}
	if b.CrossesDateline() {
		return p.Lon >= b.West || p.Lon <= b.East
	}
	return p.Lon >= b.West && p.Lon <= b.East
}
