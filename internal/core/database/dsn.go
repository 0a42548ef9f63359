package database

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
)

// normalizeMySQLDSN 兼容 jdbc:mysql:// 与 mysql:// URL，转成 go-sql-driver 语法
// 已是 user:pass@tcp(...) 形式的原样返回；override 只作用于 URL 形式
func normalizeMySQLDSN(input, userOverride, passOverride string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return "", fmt.Errorf("mysql: empty dsn")
	}
	in = strings.TrimPrefix(in, "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in, checkMySQL(in)
	}

	u, err := url.Parse(in)
	if err != nil {
		return "", fmt.Errorf("mysql: parse url: %w", err)
	}
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	for k, dst := range map[string]*string{"user": &user, "password": &pass} {
		if v := q.Get(k); v != "" {
			*dst = v
		}
		q.Del(k)
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	// JDBC 参数映射
	if v := q.Get("characterEncoding"); v != "" && q.Get("charset") == "" {
		q.Set("charset", v)
	}
	for _, k := range []string{"characterEncoding", "useUnicode", "zeroDateTimeBehavior"} {
		q.Del(k)
	}
	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		switch v {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify", "preferred":
			q.Set("tls", v)
		default:
			q.Set("tls", "false")
		}
		q.Del("useSSL")
	}
	if tz := q.Get("serverTimezone"); tz != "" {
		q.Set("loc", tz)
		q.Del("serverTimezone")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn, checkMySQL(dsn)
}

func checkMySQL(dsn string) error {
	if _, err := mysqldrv.ParseDSN(dsn); err != nil {
		return fmt.Errorf("mysql: invalid dsn %q: %w", maskDSN("mysql", dsn), err)
	}
	return nil
}

func checkPostgres(dsn string) error {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return fmt.Errorf("postgres: invalid dsn %q: %w", maskDSN("postgres", dsn), err)
	}
	return nil
}

var (
	kvPassword  = regexp.MustCompile(`(?i)(password=)('[^']*'|\S+)`)
	urlPassword = regexp.MustCompile(`(://[^:/@]*:)[^@]*@`)
)

// maskDSN 日志/错误里用，密码替换为 ****
func maskDSN(driver, dsn string) string {
	switch driver {
	case "mysql":
		if c, err := mysqldrv.ParseDSN(dsn); err == nil {
			if c.Passwd != "" {
				c.Passwd = "****"
			}
			return c.FormatDSN()
		}
	case "postgres":
		if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
			if _, ok := u.User.Password(); ok {
				u.User = url.UserPassword(u.User.Username(), "****")
			}
			return u.String()
		}
	}
	dsn = urlPassword.ReplaceAllString(dsn, "${1}****@")
	return kvPassword.ReplaceAllString(dsn, "${1}****")
}
