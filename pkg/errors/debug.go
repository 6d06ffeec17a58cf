package errors

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	SQLState   string `json:"sql_state,omitempty"`
	SQLNumber  uint16 `json:"sql_number,omitempty"`
	SQLMessage string `json:"sql_message,omitempty"`
	SQLTable   string `json:"sql_table,omitempty"`
	SQLDetail  string `json:"sql_detail,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		d.SQLNumber = myErr.Number
		d.SQLState = string(myErr.SQLState[:])
		d.SQLMessage = myErr.Message
		return d
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		d.SQLState = pgErr.Code
		d.SQLTable = pgErr.TableName
		d.SQLDetail = pgErr.Detail
		d.SQLMessage = pgErr.Message
		return d
	}

	return d
}
