package sql

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/syssam/modelgen/dialect"
)

// redacted replaces passwords in data source names.
const redacted = "xxxxx"

var pgPasswordRe = regexp.MustCompile(`(?i)(password\s*=\s*)('(?:[^'\\]|\\.)*'|\S+)`)

// Redact returns the data source name with its password masked, suitable
// for logs and error messages.
func Redact(dialectName, source string) string {
	switch dialect.Normalize(dialectName) {
	case dialect.MySQL:
		cfg, err := mysql.ParseDSN(source)
		if err != nil {
			return redactURL(source)
		}
		if cfg.Passwd != "" {
			cfg.Passwd = redacted
		}
		return cfg.FormatDSN()
	case dialect.Postgres:
		if strings.Contains(source, "://") {
			return redactURL(source)
		}
		return pgPasswordRe.ReplaceAllString(source, "${1}"+redacted)
	default:
		return redactURL(source)
	}
}

func redactURL(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.User == nil {
		return source
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redacted)
	}
	return u.String()
}
