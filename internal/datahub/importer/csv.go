package importer

import (
	"bufio"
	"io"
	"strings"
)

// Record is one parsed directory row.
type Record struct {
	Region      string
	Departement string
	Commune     string
	Quartier    string
	Filiere     string
	Telephone   string
	Prenom      string
	Nom         string
	Metier      string
}

// ParseResult reports what a parse pass consumed.
type ParseResult struct {
	Records []Record
	Skipped int
}

// minColumns is the number of columns a row must carry to be usable. The
// ninth column (metier) is optional.
const minColumns = 8

// ParseCSV reads a semicolon-delimited directory export with the column order
// REGION;DEPARTEMENT;COMMUNE;QUARTIER;FILIERE_PMN;TELEPHONE;PRENOM;NOM;FILIERE.
// A leading header row is recognized and dropped. Rows with fewer than eight
// columns are counted as skipped, never fatal: source files are hand-edited
// and one broken line must not abort an import.
func ParseCSV(r io.Reader) (ParseResult, error) {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cols := strings.Split(line, ";")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		if first {
			first = false
			if strings.EqualFold(cols[0], "REGION") {
				continue
			}
		}

		if len(cols) < minColumns {
			result.Skipped++
			continue
		}

		rec := Record{
			Region:      cols[0],
			Departement: cols[1],
			Commune:     cols[2],
			Quartier:    cols[3],
			Filiere:     cols[4],
			Telephone:   cols[5],
			Prenom:      cols[6],
			Nom:         cols[7],
		}
		if len(cols) > 8 {
			rec.Metier = cols[8]
		}

		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, err
	}

	return result, nil
}
