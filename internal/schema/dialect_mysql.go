package schema

import (
	"fmt"
	"strings"
)

// MySQLDialect renders statements for MySQL/MariaDB. MySQL has no ON CONFLICT
// clause: the ignore policy maps to INSERT IGNORE and the single-column
// update policy to ON DUPLICATE KEY UPDATE. Key text columns are varchar
// because TEXT cannot be indexed without a prefix length.
type MySQLDialect struct{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) Placeholder(int) string { return "?" }

func (MySQLDialect) QuoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

func (MySQLDialect) TypeName(c Column) string {
	switch c.Type {
	case Int:
		return "int"
	case Float:
		return "double"
	case Timestamp:
		return "datetime(3)"
	default:
		if c.PrimaryKey {
			return "varchar(255)"
		}
		return "text"
	}
}

func (d MySQLDialect) SerialDef(col string) string {
	return d.QuoteIdent(col) + " bigint NOT NULL AUTO_INCREMENT PRIMARY KEY"
}

func (d MySQLDialect) InsertIgnore(t Table) string {
	return strings.Replace(Insert(d, t), "INSERT INTO", "INSERT IGNORE INTO", 1)
}

func (d MySQLDialect) InsertUpdating(t Table, col string) string {
	q := d.QuoteIdent(col)
	return fmt.Sprintf("%s ON DUPLICATE KEY UPDATE %s = VALUES(%s)", Insert(d, t), q, q)
}
