package adaptorvec

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// VectorParser defines the interface for parsing vectors from various sources.
type VectorParser interface {
	// ParseVectors parses vectors from a source and returns them.
	ParseVectors(source string) ([]*Vector, error)
}

// ParserForFile picks a parser from the file extension. Anything that is not
// .csv is treated as JSON.
func ParserForFile(path string) VectorParser {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return &CSVParser{}
	}
	return &JSONParser{}
}

// JSONParser parses vectors from JSON files.
//
// Expected format:
//
//	[
//	  {"encryption_key": "02...", "adaptor_signature": "03...", "valid": true},
//	  {"message": "...", "public_key": "03...", "encryption_key": "02...", ...}
//	]
type JSONParser struct{}

// ParseVectors parses vectors from a JSON file.
func (p *JSONParser) ParseVectors(jsonFile string) ([]*Vector, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Decode(file)
}

// Decode parses vectors from a JSON stream.
func (p *JSONParser) Decode(r io.Reader) ([]*Vector, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var records []*record
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	vectors := make([]*Vector, 0, len(records))
	for i, rec := range records {
		v, err := rec.toVector()
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

// WriteJSON writes vectors in the format read by JSONParser.
func WriteJSON(w io.Writer, vectors []*Vector) error {
	records := make([]*record, 0, len(vectors))
	for _, v := range vectors {
		records = append(records, v.toRecord())
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// CSVParser parses vectors from CSV files. The header row names the columns;
// encryption_key and adaptor_signature are required, the rest optional.
type CSVParser struct{}

// csvColumns lists the recognised header names.
var csvColumns = []string{
	"name",
	"message",
	"public_key",
	"encryption_key",
	"adaptor_signature",
	"signature",
	"decryption_key",
	"valid",
}

// ParseVectors parses vectors from a CSV file.
func (p *CSVParser) ParseVectors(csvFile string) ([]*Vector, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, required := range []string{"encryption_key", "adaptor_signature"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	for col := range index {
		if !isCSVColumn(col) {
			return nil, fmt.Errorf("unknown column: %s", col)
		}
	}

	vectors := make([]*Vector, 0)
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		get := func(col string) string {
			if i, ok := index[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rec := &record{
			Name:             get("name"),
			Message:          get("message"),
			PublicKey:        get("public_key"),
			EncryptionKey:    get("encryption_key"),
			AdaptorSignature: get("adaptor_signature"),
			Signature:        get("signature"),
			DecryptionKey:    get("decryption_key"),
		}
		if s := get("valid"); s != "" {
			valid, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: failed to parse valid: %w", line, err)
			}
			rec.Valid = valid
		}

		v, err := rec.toVector()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		vectors = append(vectors, v)
	}

	return vectors, nil
}

func isCSVColumn(col string) bool {
	for _, c := range csvColumns {
		if c == col {
			return true
		}
	}
	return false
}
