package repository

import (
	"errors"

	"github.com/godror/godror"
	"github.com/sijms/go-ora/v2/network"
)

// Oracle error codes the services translate into domain errors.
const (
	oraUniqueViolation   = 1    // ORA-00001: unique constraint violated
	oraParentKeyNotFound = 2291 // ORA-02291: parent key not found
	oraChildRecordFound  = 2292 // ORA-02292: child record found
)

// oracleErrorCode extracts the ORA code from err regardless of which driver
// produced it. go-ora surfaces *network.OracleError; godror wraps *OraErr.
func oracleErrorCode(err error) (int, bool) {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode, true
	}
	if gErr, ok := godror.AsOraErr(err); ok {
		return gErr.Code(), true
	}
	return 0, false
}

// IsUniqueViolation reports whether err is ORA-00001, a unique constraint
// rejection.
func IsUniqueViolation(err error) bool {
	code, ok := oracleErrorCode(err)
	return ok && code == oraUniqueViolation
}

// IsParentKeyNotFound reports whether err is ORA-02291: an insert or update
// referenced a parent row that does not exist.
func IsParentKeyNotFound(err error) bool {
	code, ok := oracleErrorCode(err)
	return ok && code == oraParentKeyNotFound
}

// IsChildRecordFound reports whether err is ORA-02292: a delete was blocked
// because child rows still reference the target.
func IsChildRecordFound(err error) bool {
	code, ok := oracleErrorCode(err)
	return ok && code == oraChildRecordFound
}
