package utils

import "math"

const earthRadiusKm = 6371.0

// kmPerDegree - длина дуги в один градус широты
const kmPerDegree = earthRadiusKm * math.Pi / 180.0

// DistanceKm вычисляет расстояние по большому кругу по формуле гаверсинусов.
// Для совпадающих точек результат ровно 0. Подкоренное выражение
// ограничивается [0, 1]: ошибка округления для антиподов иначе даёт NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dPhi := phi2 - phi1
	dLambda := (lon2 - lon1) * math.Pi / 180.0

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(ClampUnit(a)))
}

// ClampUnit ограничивает значение отрезком [-1, 1]
func ClampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// RadiusBounds возвращает грубый прямоугольник вокруг точки, гарантированно
// покрывающий окружность радиуса radiusKm. lonBounded == false, если долготу
// ограничить нельзя (окружность захватывает полюс или весь круг долгот).
// При пересечении линии перемены дат west > east.
func RadiusBounds(lat, lon, radiusKm float64) (minLat, maxLat, west, east float64, lonBounded bool) {
	dLat := radiusKm / kmPerDegree
	minLat = math.Max(-90, lat-dLat)
	maxLat = math.Min(90, lat+dLat)

	if minLat <= -90 || maxLat >= 90 {
		return minLat, maxLat, -180, 180, false
	}

	// ширина по долготе считается по самой «широкой» параллели прямоугольника
	widest := math.Max(math.Abs(minLat), math.Abs(maxLat))
	cosLat := math.Cos(widest * math.Pi / 180.0)
	if cosLat <= 0 {
		return minLat, maxLat, -180, 180, false
	}
	dLon := dLat / cosLat
	if dLon >= 180 {
		return minLat, maxLat, -180, 180, false
	}

	return minLat, maxLat, NormalizeLon(lon - dLon), NormalizeLon(lon + dLon), true
}

// NormalizeLon приводит долготу к диапазону [-180, 180]
func NormalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return IsFinite(lat) && IsFinite(lon) && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// IsFinite - не NaN и не ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
