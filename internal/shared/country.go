package shared

// Country partitions country-scoped resources. Users see only rows tagged
// with their own country, independent of category/action grants.
type Country string

const (
	CountryIndia   Country = "INDIA"
	CountryAmerica Country = "AMERICA"
)

// Valid reports whether the country is a known partition.
func (c Country) Valid() bool {
	switch c {
	case CountryIndia, CountryAmerica:
		return true
	}
	return false
}
