package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ExecScript executes the SQL statements read from the script one after another. A statement
// ends on the line that contains a ';'. Lines starting with "--" are ignored.
func ExecScript(ctx context.Context, db *sqlx.DB, script io.Reader) (int, error) {
	scanner := bufio.NewScanner(script)
	scanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	executed := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			statement := builder.String()
			if _, err := db.ExecContext(ctx, statement); err != nil {
				return executed, fmt.Errorf("statement %d: %w", executed+1, err)
			}
			executed++
			builder = strings.Builder{}
		}
	}
	if err := scanner.Err(); err != nil {
		return executed, fmt.Errorf("read script: %w", err)
	}
	if rest := strings.TrimSpace(builder.String()); rest != "" {
		return executed, fmt.Errorf("statement %d is not terminated by ';'", executed+1)
	}
	return executed, nil
}
