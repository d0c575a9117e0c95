package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ruteri/trainer-intake/interfaces"
)

// Postgres SQLSTATE codes the store reacts to.
const (
	codeUniqueViolation    = "23505"
	codeUndefinedTable     = "42P01"
	codeUndefinedColumn    = "42703"
	codeInvalidSchemaName  = "3F000"
	codeAdminShutdown      = "57P01"
	codeCannotConnectNow   = "57P03"
	codeTooManyConnections = "53300"
)

// crefConstraint is the unique index on personal_trainers.cref.
const crefConstraint = "personal_trainers_cref_key"

// classifyError wraps a driver error with the matching interfaces sentinel.
// Errors that fit no category are returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == crefConstraint:
			return fmt.Errorf("%w: %w", interfaces.ErrDuplicateCref, err)
		case pgErr.Code == codeUndefinedTable, pgErr.Code == codeUndefinedColumn, pgErr.Code == codeInvalidSchemaName:
			return fmt.Errorf("%w: %w", interfaces.ErrStorageNotReady, err)
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCannotConnectNow,
			pgErr.Code == codeTooManyConnections:
			return fmt.Errorf("%w: %w", interfaces.ErrStorageUnreachable, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %w", interfaces.ErrStorageUnreachable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", interfaces.ErrStorageUnreachable, err)
	}

	return err
}
