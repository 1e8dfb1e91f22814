package types

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GeographyPoint is a PostGIS geography(Point,4326) value. Mover base
// locations and order endpoints use it; longitude comes first on the wire,
// latitude first in the struct because that is how the rest of the code
// talks about coordinates.
type GeographyPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ewkbSRIDFlag marks an EWKB geometry that carries an explicit SRID.
const ewkbSRIDFlag = 0x20000000

// Value encodes the point as EWKT, which Postgres casts to geography.
func (g GeographyPoint) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", g.Lng, g.Lat), nil
}

// Scan accepts the three shapes Postgres hands back: hex-encoded EWKB (the
// usual form for geography columns), WKT/EWKT text, and raw WKB bytes.
func (g *GeographyPoint) Scan(value interface{}) error {
	if value == nil {
		*g = GeographyPoint{}
		return nil
	}

	switch v := value.(type) {
	case string:
		return g.scanText(v)
	case []byte:
		text := strings.TrimSpace(string(v))
		if looksLikeWKT(text) {
			return g.scanWKT(text)
		}
		if decoded, err := hex.DecodeString(text); err == nil {
			return g.scanWKB(decoded)
		}
		return g.scanWKB(v)
	default:
		if stringer, ok := value.(fmt.Stringer); ok {
			return g.scanText(stringer.String())
		}
		return fmt.Errorf("geography: unsupported scan type %T", value)
	}
}

func (g *GeographyPoint) scanText(raw string) error {
	raw = strings.TrimSpace(raw)
	if looksLikeWKT(raw) {
		return g.scanWKT(raw)
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("geography: unsupported text %q", raw)
	}
	return g.scanWKB(decoded)
}

func looksLikeWKT(raw string) bool {
	upper := strings.ToUpper(raw)
	return strings.HasPrefix(upper, "SRID=") || strings.HasPrefix(upper, "POINT(")
}

func (g *GeographyPoint) scanWKT(raw string) error {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToUpper(raw), "SRID=") {
		if idx := strings.Index(raw, ";"); idx != -1 {
			raw = strings.TrimSpace(raw[idx+1:])
		}
	}
	if !strings.HasPrefix(strings.ToUpper(raw), "POINT(") || !strings.HasSuffix(raw, ")") {
		return fmt.Errorf("geography: unsupported text %q", raw)
	}

	coords := strings.Fields(strings.TrimSpace(raw[len("POINT(") : len(raw)-1]))
	if len(coords) != 2 {
		return fmt.Errorf("geography: unexpected POINT content %q", raw)
	}

	lng, err := parseCoordinate(coords[0])
	if err != nil {
		return err
	}
	lat, err := parseCoordinate(coords[1])
	if err != nil {
		return err
	}
	g.Lng, g.Lat = lng, lat
	return nil
}

func (g *GeographyPoint) scanWKB(raw []byte) error {
	if len(raw) < 21 {
		return fmt.Errorf("geography: wkb too short (%d bytes)", len(raw))
	}

	var order binary.ByteOrder
	switch raw[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return fmt.Errorf("geography: invalid byte order %d", raw[0])
	}

	geomType := order.Uint32(raw[1:5])
	offset := 5
	if geomType&ewkbSRIDFlag != 0 {
		geomType &^= ewkbSRIDFlag
		offset += 4
	}
	if geomType != 1 {
		return fmt.Errorf("geography: unexpected geometry type %d", geomType)
	}
	if len(raw) < offset+16 {
		return fmt.Errorf("geography: wkb truncated")
	}

	g.Lng = math.Float64frombits(order.Uint64(raw[offset : offset+8]))
	g.Lat = math.Float64frombits(order.Uint64(raw[offset+8 : offset+16]))
	return nil
}

func parseCoordinate(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("geography: empty coordinate")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("geography: parse coordinate %w", err)
	}
	return f, nil
}
