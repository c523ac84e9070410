package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/Wallian169/p2p-tg-bot/internal/errs"
)

// SQLite extended result codes for constraint failures.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

var (
	uniqueKeyPattern      = regexp.MustCompile(`_([^_]+)_(?:key|ukey|pkey)$`)
	sqliteConstraintCause = regexp.MustCompile(`(UNIQUE|NOT NULL|CHECK|FOREIGN KEY) constraint failed(?::\s*([^\s(]+))?`)
)

// Classify reports the category of a driver error anywhere in err's chain.
// It understands PostgreSQL and SQLite errors as well as *Error.
func Classify(err error) Code {
	if sqlErr, ok := Convert(err); ok {
		return sqlErr.Code
	}
	return Other
}

// Convert normalises a driver error found in err's chain.
func Convert(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr), true
	}

	return convertSQLiteError(err)
}

// ConvertPgError converts a raw PostgreSQL error, keeping the SQLSTATE and
// the table/column/constraint metadata.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// convertSQLiteError recognises SQLite constraint failures by extended
// result code, falling back to the message text.
func convertSQLiteError(err error) (*Error, bool) {
	code := Other
	dbCode := ""

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		dbCode = fmt.Sprint(coded.Code())
		switch coded.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			code = UniqueViolation
		case sqliteConstraintForeignKey:
			code = ForeignKeyViolation
		case sqliteConstraintNotNull:
			code = NotNullViolation
		case sqliteConstraintCheck:
			code = CheckViolation
		}
	}

	msg := err.Error()
	match := sqliteConstraintCause.FindStringSubmatch(msg)
	if code == Other && match != nil {
		switch match[1] {
		case "UNIQUE":
			code = UniqueViolation
		case "FOREIGN KEY":
			code = ForeignKeyViolation
		case "NOT NULL":
			code = NotNullViolation
		case "CHECK":
			code = CheckViolation
		}
	}
	if code == Other {
		return nil, false
	}

	sqlErr := &Error{
		Code:         code,
		Severity:     SeverityError,
		DatabaseCode: dbCode,
		Message:      msg,
		driverErr:    err,
	}

	// "UNIQUE constraint failed: users.uuid" names table.column; CHECK
	// failures name the constraint.
	if match != nil && match[2] != "" {
		target := strings.Split(match[2], ",")[0]
		if table, column, ok := strings.Cut(target, "."); ok {
			sqlErr.TableName = table
			sqlErr.ColumnName = column
		} else {
			sqlErr.ConstraintName = target
		}
	}

	return sqlErr, true
}

// generateErrorCode builds a machine-friendly code such as
// CURRENCY_ALREADY_EXISTS from the table and violation kind.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "IES") && len(domain) > 3 {
		domain = domain[:len(domain)-3] + "Y"
	} else if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(entityName))

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName))

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers the "<entity>_id" column of a foreign key, then the
// singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		switch {
		case strings.HasSuffix(entity, "ies") && len(entity) > 3:
			entity = entity[:len(entity)-3] + "y"
		case strings.HasSuffix(entity, "s") && len(entity) > 1:
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "payment_method" into "Payment Method".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from constraint names
// shaped "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a storage error into an *errs.HTTPError:
//   - *errs.HTTPError is returned unchanged
//   - unique and composite key violations become 409
//   - foreign key, not-null and check violations become 400
//   - missing rows become 404
//   - anything else becomes 500
//
// The original error stays reachable through Unwrap.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr, ok := Convert(err); ok {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil).WithCause(err)

		case UniqueViolation:
			columnName := sqlErr.ColumnName
			if columnName == "" {
				columnName = extractColumnForUniqueViolation(sqlErr.ConstraintName)
			}
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, &errorCode).WithCause(err)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors).WithCause(err)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil).WithCause(err)

		default:
			return errs.NewInternalServerError().WithCause(err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		// Repositories prefix not-found errors with "table:<name>:".
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := getEntityName(table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil).WithCause(err)
		}
		return errs.NewNotFoundError("Resource not found", false, nil).WithCause(err)
	}

	return errs.NewInternalServerError().WithCause(err)
}
