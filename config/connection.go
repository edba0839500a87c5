package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/magiconair/properties"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/dialect"
	"github.com/syssam/modelgen/dialect/sql"
)

// Connection property keys.
const (
	KeyDriver   = "db.driver"
	KeyURL      = "db.url"
	KeyUsername = "db.username"
	KeyPassword = "db.password"
)

// driverClasses maps JDBC driver class names to dialects.
var driverClasses = map[string]string{
	"org.postgresql.Driver":    dialect.Postgres,
	"com.mysql.jdbc.Driver":    dialect.MySQL,
	"com.mysql.cj.jdbc.Driver": dialect.MySQL,
	"org.mariadb.jdbc.Driver":  dialect.MySQL,
	"org.sqlite.JDBC":          dialect.SQLite,
}

// Connection describes how to reach the database of an entity.
type Connection struct {
	// Dialect is the database/sql driver name.
	Dialect string
	// Source is the driver data source name, credentials included.
	Source string
	// Path is the properties file the connection was loaded from.
	Path string
}

// Redacted returns the data source name with its password masked.
func (c *Connection) Redacted() string {
	return sql.Redact(c.Dialect, c.Source)
}

// Open opens a driver for the connection. The database is not contacted.
func (c *Connection) Open() (*sql.Driver, error) {
	drv, err := sql.Open(c.Dialect, c.Source)
	if err != nil {
		return nil, modelgen.NewConnectionError(c.Dialect, c.Redacted(), err)
	}
	return drv, nil
}

// LoadConnection reads a connection properties file with the keys db.driver,
// db.url, db.username and db.password. Only db.url is required; the dialect
// is inferred from the URL when db.driver is absent.
func LoadConnection(path string) (*Connection, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadFile(path)
	if err != nil {
		return nil, modelgen.NewConfigError("", "load connection properties "+path, err)
	}
	rawURL, ok := p.Get(KeyURL)
	if !ok || strings.TrimSpace(rawURL) == "" {
		return nil, modelgen.NewConfigError(KeyURL, "missing property in "+path, nil)
	}
	conn, err := ParseConnection(
		p.GetString(KeyDriver, ""),
		strings.TrimSpace(rawURL),
		p.GetString(KeyUsername, ""),
		p.GetString(KeyPassword, ""),
	)
	if err != nil {
		return nil, err
	}
	conn.Path = path
	return conn, nil
}

// ParseConnection translates connection settings to a dialect and a data
// source name. The URL is either a JDBC URL (jdbc:postgresql://, jdbc:mysql://,
// jdbc:sqlite:) or a data source name understood by the Go driver. The driver
// is a JDBC driver class, a dialect name or empty.
func ParseConnection(driver, rawURL, user, password string) (*Connection, error) {
	name, err := resolveDialect(driver, rawURL)
	if err != nil {
		return nil, err
	}
	var source string
	switch name {
	case dialect.Postgres:
		source, err = postgresSource(rawURL, user, password)
	case dialect.MySQL:
		source, err = mysqlSource(rawURL, user, password)
	case dialect.SQLite:
		source = strings.TrimPrefix(strings.TrimPrefix(rawURL, "jdbc:"), "sqlite:")
	}
	if err != nil {
		return nil, modelgen.NewConfigError(KeyURL, "invalid "+name+" url", err)
	}
	return &Connection{Dialect: name, Source: source}, nil
}

func resolveDialect(driver, rawURL string) (string, error) {
	driver = strings.TrimSpace(driver)
	if driver != "" {
		if name, ok := driverClasses[driver]; ok {
			return name, nil
		}
		if name := dialect.Normalize(driver); dialect.Supported(name) {
			return name, nil
		}
		return "", modelgen.NewConfigError(KeyDriver, fmt.Sprintf("unsupported driver %q", driver), nil)
	}
	u := strings.TrimPrefix(rawURL, "jdbc:")
	switch {
	case strings.HasPrefix(u, "postgresql:"), strings.HasPrefix(u, "postgres:"):
		return dialect.Postgres, nil
	case strings.HasPrefix(u, "mysql:"), strings.HasPrefix(u, "mariadb:"):
		return dialect.MySQL, nil
	case strings.HasPrefix(u, "sqlite:"), strings.HasPrefix(u, "file:"):
		return dialect.SQLite, nil
	}
	if _, err := mysql.ParseDSN(rawURL); err == nil && strings.Contains(rawURL, "@") {
		return dialect.MySQL, nil
	}
	return "", modelgen.NewConfigError(KeyURL, "cannot infer the database dialect; set "+KeyDriver, nil)
}

// postgresSource accepts jdbc:postgresql:// URLs, postgres:// URLs and
// key=value data source names.
func postgresSource(rawURL, user, password string) (string, error) {
	s := strings.TrimPrefix(rawURL, "jdbc:")
	if strings.HasPrefix(s, "postgresql:") && !strings.HasPrefix(s, "postgresql://") {
		// jdbc:postgresql:shop is a database on localhost.
		s = "postgresql://localhost/" + strings.TrimPrefix(s, "postgresql:")
	}
	if !strings.Contains(s, "://") {
		var b strings.Builder
		b.WriteString(s)
		if user != "" && !strings.Contains(s, "user=") {
			fmt.Fprintf(&b, " user=%s", quoteValue(user))
		}
		if password != "" && !strings.Contains(s, "password=") {
			fmt.Fprintf(&b, " password=%s", quoteValue(password))
		}
		return strings.TrimSpace(b.String()), nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", err
	}
	u.Scheme = "postgres"
	q := u.Query()
	if user == "" {
		user = q.Get("user")
	}
	if password == "" {
		password = q.Get("password")
	}
	q.Del("user")
	q.Del("password")
	u.RawQuery = q.Encode()
	switch {
	case user != "" && password != "":
		u.User = url.UserPassword(user, password)
	case user != "":
		u.User = url.User(user)
	}
	return u.String(), nil
}

// mysqlSource accepts jdbc:mysql:// URLs and go-sql-driver data source names.
// JDBC query parameters are driver specific and dropped.
func mysqlSource(rawURL, user, password string) (string, error) {
	s := strings.TrimPrefix(rawURL, "jdbc:")
	if !strings.HasPrefix(s, "mysql://") && !strings.HasPrefix(s, "mariadb://") {
		cfg, err := mysql.ParseDSN(s)
		if err != nil {
			return "", err
		}
		if user != "" {
			cfg.User = user
		}
		if password != "" {
			cfg.Passwd = password
		}
		return cfg.FormatDSN(), nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", err
	}
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Hostname() + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	q := u.Query()
	cfg.User, cfg.Passwd = q.Get("user"), q.Get("password")
	if u.User != nil {
		cfg.User = u.User.Username()
		if p, ok := u.User.Password(); ok {
			cfg.Passwd = p
		}
	}
	if user != "" {
		cfg.User = user
	}
	if password != "" {
		cfg.Passwd = password
	}
	return cfg.FormatDSN(), nil
}

func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
