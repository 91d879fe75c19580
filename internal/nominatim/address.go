package nominatim

// Address is the addressdetails block of a reverse response. Every field is
// optional; which ones are filled depends on the country and the zoom level.
type Address struct {
	Village       string `json:"village"`
	Hamlet        string `json:"hamlet"`
	Locality      string `json:"locality"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Municipality  string `json:"municipality"`
	Taluka        string `json:"taluka"`
	Subdistrict   string `json:"subdistrict"`
	County        string `json:"county"`
	District      string `json:"district"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Region        string `json:"region"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
}

// Place is a decoded jsonv2 reverse response
type Place struct {
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	AddressType string  `json:"addresstype"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
	Error       string  `json:"error"`
}

// FeatureText is the most specific place-type hint the response carries
func (p *Place) FeatureText() string {
	if p.AddressType != "" {
		return p.AddressType
	}
	return p.Type
}
