package opening

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/herohde/chesspractice/pkg/pgn"
	"github.com/seekerror/stdlib/pkg/lang"
)

// catalogColumns are the required header names, in any order.
var catalogColumns = []string{"opening_name", "variation_name", "type", "side", "eco_code", "moves"}

// LoadCatalog reads a CSV opening catalog with columns {opening_name,
// variation_name, type, side, eco_code, moves} and returns the entries
// whose type is exactly "Opening". The moves column is tokenized with the
// same movetext dialect PGN games use.
func LoadCatalog(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("opening catalog: reading header: %w", err)
	}
	index := map[string]int{}
	for i, name := range header {
		index[name] = i
	}
	for _, col := range catalogColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("opening catalog: missing required column %q", col)
		}
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}

		if record[index["type"]] != "Opening" {
			continue
		}

		var variation lang.Optional[string]
		if v := record[index["variation_name"]]; v != "" {
			variation = lang.Some(v)
		}

		entries = append(entries, Entry{
			Name:      record[index["opening_name"]],
			Variation: variation,
			Moves:     pgn.TokenizeMovetext(record[index["moves"]]),
		})
	}

	return entries, nil
}
