package query

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Dialect - целевой диалект SQL хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// ParseDialect сопоставляет имя драйвера из конфигурации с диалектом
func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// BindType - стиль плейсхолдеров для sqlx.Rebind
func (d Dialect) BindType() int {
	if d == Postgres {
		return sqlx.DOLLAR
	}
	return sqlx.QUESTION
}

// sampleKey - выражение глобального ключа выборки с одним плейсхолдером для seed.
// Зависит только от id и seed, но не от прямоугольника запроса.
func (d Dialect) sampleKey() string {
	if d == Postgres {
		return "md5(CAST(i.id AS TEXT) || CAST(? AS TEXT))"
	}
	return "CRC32(CONCAT(i.id, ?))"
}
