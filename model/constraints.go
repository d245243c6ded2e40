package model

import (
	"fmt"

	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

// Hook-level constraint failures use the same names AutoMigrate gives the DB constraints.

func notNull(table, column string) error {
	return apperrors.NewConstraintViolation(apperrors.ConstraintNotNull, table+"."+column,
		fmt.Sprintf("%s is required", column), nil)
}

func checkFailed(table, column, message string) error {
	return apperrors.NewConstraintViolation(apperrors.ConstraintCheck,
		fmt.Sprintf("chk_%s_%s", table, column), message, nil)
}

func nonNegative(table, column string, value float64) error {
	if value < 0 {
		return checkFailed(table, column, column+" must not be negative")
	}
	return nil
}
