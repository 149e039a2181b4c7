package feed

// Tuple field positions of the delimiter-encoded record form, in the order
// documented for the positioning web service.
const (
	fieldCaptureTS = iota
	fieldPlate
	fieldLat
	fieldLon
	fieldSpeed
	fieldDirGeo
	fieldOperator
	fieldService
	fieldDirection
	fieldRouteConsole
	fieldRouteSynoptic
	fieldInsertTS
)

const recordFieldCount = 12

// tupleFieldNames maps tuple positions onto the feed's field names, used to
// retain the original record in PositionRecord.Raw for traceability.
var tupleFieldNames = [recordFieldCount]string{
	"fecha_gps",
	"patente",
	"lat",
	"lon",
	"vel",
	"dir_geo",
	"num_operador",
	"servicio",
	"sentido",
	"ruta_consola",
	"ruta_sinoptico",
	"fecha_insert",
}

// Item is one feed entry after payload decoding: either a complete 12-field
// tuple split out of a delimiter-encoded string, or a pre-structured mapping.
// Exactly one of the two fields is set.
type Item struct {
	Tuple  []string
	Fields map[string]any
}

// PositionRecord is the canonical shape of one vehicle report after
// normalization and deduplication.
type PositionRecord struct {
	VehicleID   string
	Lat         float64
	Lon         float64
	SpeedKMH    float64
	Service     string
	Direction   string
	HeadingCode *int
	HeadingDeg  *float64

	// Raw carries the source fields verbatim. It is never used in
	// computation.
	Raw map[string]any
}
