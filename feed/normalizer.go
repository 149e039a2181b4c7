package feed

import (
	"strconv"
	"strings"
)

// DefaultSpeedKMH replaces an absent or unparseable reported speed: a
// conservative typical urban speed.
const DefaultSpeedKMH = 20.0

// headingDegrees maps the feed's compass-octant code onto degrees clockwise
// from north, 45 degrees per step.
var headingDegrees = [8]float64{0, 45, 90, 135, 180, 225, 270, 315}

// Key variants seen in the pre-structured record form.
var (
	plateKeys     = []string{"patente", "Patente", "PATENTE"}
	latKeys       = []string{"lat", "Latitud"}
	lonKeys       = []string{"lon", "Longitud"}
	speedKeys     = []string{"vel", "Velocidad Instantánea"}
	serviceKeys   = []string{"servicio", "Nombre Comercial del Servicio"}
	directionKeys = []string{"sentido", "Sentido"}
	dirGeoKeys    = []string{"dir_geo", "Direccion Geografica"}
)

// NormalizeAndFilter turns a decoded payload into the deduplicated canonical
// record set, optionally filtered by service and direction (case-insensitive
// exact match). Malformed records are dropped, never reported.
func NormalizeAndFilter(payload map[string]any, service, direction string) []PositionRecord {
	return NormalizeItems(Decode(payload), service, direction)
}

// NormalizeItems normalizes an already-decoded item sequence. The per-plate
// table is scoped to this call; iterating in feed order makes the last record
// for a plate win.
func NormalizeItems(items []Item, service, direction string) []PositionRecord {
	latest := make(map[string]Item, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		plate := itemPlate(it)
		if plate == "" {
			continue
		}
		if _, seen := latest[plate]; !seen {
			order = append(order, plate)
		}
		latest[plate] = it
	}

	records := make([]PositionRecord, 0, len(latest))
	for _, plate := range order {
		rec, ok := normalizeItem(plate, latest[plate])
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if service != "" {
		records = filterBy(records, service, func(r PositionRecord) string { return r.Service })
	}
	if direction != "" {
		records = filterBy(records, direction, func(r PositionRecord) string { return r.Direction })
	}
	return records
}

func itemPlate(it Item) string {
	if it.Tuple != nil {
		return strings.TrimSpace(it.Tuple[fieldPlate])
	}
	return pickString(it.Fields, plateKeys)
}

// normalizeItem converts one item into a canonical record. A record whose
// latitude or longitude does not parse cannot be geolocated and is dropped.
func normalizeItem(plate string, it Item) (PositionRecord, bool) {
	var latS, lonS, speedS, dirGeoS, svc, dir string
	var raw map[string]any
	if it.Tuple != nil {
		raw = make(map[string]any, recordFieldCount)
		for i, name := range tupleFieldNames {
			raw[name] = it.Tuple[i]
		}
		latS = it.Tuple[fieldLat]
		lonS = it.Tuple[fieldLon]
		speedS = it.Tuple[fieldSpeed]
		dirGeoS = it.Tuple[fieldDirGeo]
		svc = it.Tuple[fieldService]
		dir = it.Tuple[fieldDirection]
	} else {
		raw = it.Fields
		latS = pickString(it.Fields, latKeys)
		lonS = pickString(it.Fields, lonKeys)
		speedS = pickString(it.Fields, speedKeys)
		dirGeoS = pickString(it.Fields, dirGeoKeys)
		svc = pickString(it.Fields, serviceKeys)
		dir = pickString(it.Fields, directionKeys)
	}

	lat, okLat := parseLocaleFloat(latS)
	lon, okLon := parseLocaleFloat(lonS)
	if !okLat || !okLon {
		return PositionRecord{}, false
	}

	rec := PositionRecord{
		VehicleID: plate,
		Lat:       lat,
		Lon:       lon,
		SpeedKMH:  DefaultSpeedKMH,
		Service:   strings.TrimSpace(svc),
		Direction: strings.TrimSpace(dir),
		Raw:       raw,
	}
	if sp, ok := parseLocaleFloat(speedS); ok {
		rec.SpeedKMH = sp
	}
	if code, err := strconv.Atoi(strings.TrimSpace(dirGeoS)); err == nil {
		deg := headingDegrees[((code%8)+8)%8]
		rec.HeadingCode = &code
		rec.HeadingDeg = &deg
	}
	return rec, true
}

// parseLocaleFloat parses a float, tolerating the feed's comma decimal
// separator.
func parseLocaleFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func pickString(m map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(anyToString(v)); s != "" {
			return s
		}
	}
	return ""
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

func filterBy(records []PositionRecord, want string, field func(PositionRecord) string) []PositionRecord {
	out := make([]PositionRecord, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(field(r), want) {
			out = append(out, r)
		}
	}
	return out
}
