package sites

// Site is one row of the site table.
type Site struct {
	Name     string  `json:"name"`
	Region   string  `json:"region"`
	Province string  `json:"province"`
	Status   string  `json:"status"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Field names a filterable site attribute.
type Field string

const (
	FieldRegion   Field = "region"
	FieldProvince Field = "province"
	FieldStatus   Field = "status"
)

// Value returns the attribute of s named by f.
func (s Site) Value(f Field) string {
	switch f {
	case FieldRegion:
		return s.Region
	case FieldProvince:
		return s.Province
	case FieldStatus:
		return s.Status
	default:
		return ""
	}
}
