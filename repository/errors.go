package repository

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

// PostgreSQL integrity constraint violation codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

var pgKeyDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)

// TranslateError maps a storage error onto the application taxonomy. resource names the entity
// for not-found results. Errors already in the taxonomy pass through unchanged.
func TranslateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(resource)
	}
	if cv := constraintFromError(err); cv != nil {
		return cv
	}
	return apperrors.NewPersistenceError(err)
}

func constraintFromError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(pgErr)
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.NewConstraintViolation(apperrors.ConstraintUnique, "", "value already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.NewConstraintViolation(apperrors.ConstraintForeignKey, "", "referenced record does not exist or is still in use", err)
	}

	return fromSQLiteMessage(err)
}

func fromPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgUniqueViolation:
		column := pgErr.ColumnName
		if m := pgKeyDetail.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			column = m[1]
		}
		return apperrors.NewConstraintViolation(apperrors.ConstraintUnique, pgErr.ConstraintName,
			duplicateMessage(column), pgErr)
	case pgForeignKeyViolation:
		return apperrors.NewConstraintViolation(apperrors.ConstraintForeignKey, pgErr.ConstraintName,
			"referenced record does not exist or is still in use", pgErr)
	case pgNotNullViolation:
		return apperrors.NewConstraintViolation(apperrors.ConstraintNotNull, pgErr.TableName+"."+pgErr.ColumnName,
			pgErr.ColumnName+" is required", pgErr)
	case pgCheckViolation:
		return apperrors.NewConstraintViolation(apperrors.ConstraintCheck, pgErr.ConstraintName,
			"value violates constraint "+pgErr.ConstraintName, pgErr)
	}
	return nil
}

// SQLite reports constraint failures only through the message text, e.g.
// "UNIQUE constraint failed: users.email".
func fromSQLiteMessage(err error) error {
	msg := err.Error()
	target := func(prefix string) string {
		i := strings.Index(msg, prefix)
		if i < 0 {
			return ""
		}
		return strings.TrimSpace(msg[i+len(prefix):])
	}

	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		name := target("UNIQUE constraint failed:")
		column := name
		if i := strings.LastIndex(name, "."); i >= 0 {
			column = name[i+1:]
		}
		return apperrors.NewConstraintViolation(apperrors.ConstraintUnique, name, duplicateMessage(column), err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return apperrors.NewConstraintViolation(apperrors.ConstraintForeignKey, "",
			"referenced record does not exist or is still in use", err)
	case strings.Contains(msg, "NOT NULL constraint failed"):
		name := target("NOT NULL constraint failed:")
		return apperrors.NewConstraintViolation(apperrors.ConstraintNotNull, name, name+" is required", err)
	case strings.Contains(msg, "CHECK constraint failed"):
		name := target("CHECK constraint failed:")
		return apperrors.NewConstraintViolation(apperrors.ConstraintCheck, name, "value violates constraint "+name, err)
	}
	return nil
}

func duplicateMessage(column string) string {
	if column == "" {
		return "value already exists"
	}
	return column + " already exists"
}
