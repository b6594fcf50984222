// Package assets embeds the default movie corpus and the SQL migrations
// for the optional corpus database.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed movies.txt
var corpusFS embed.FS

// Migrations holds goose migrations under "migrations/".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

func readLines(name string) ([]string, error) {
	f, err := corpusFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// MoviesList returns the raw embedded movie titles.
func MoviesList() ([]string, error) {
	return readLines("movies.txt")
}
