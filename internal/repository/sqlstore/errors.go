package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/infrastructure-search/internal/pkg/errors"
)

// classify отделяет недоступность хранилища (таймаут, разрыв соединения)
// от ошибок самого запроса
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return errors.ErrUpstreamUnavailable.Wrap(err)
	}
	return errors.ErrDatabaseError.Wrap(err)
}

func isUnavailable(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, driver.ErrBadConn) ||
		stderrors.Is(err, sql.ErrConnDone) ||
		stderrors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if stderrors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return stderrors.As(err, &netErr)
}
